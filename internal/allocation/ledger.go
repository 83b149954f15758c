package allocation

import (
	"context"

	"github.com/tired-surtr/stretch-backend/internal/model"
)

// Ledger is the durable seat store the coordinator allocates against.
// Implementations must provide transactional isolation: everything
// done through a Tx is observed atomically by other transactions.
// The production implementation lives in internal/repository and is
// backed by MySQL; tests substitute an in-memory fake.
type Ledger interface {
	// Begin opens a new transaction.  The returned Tx must be closed
	// with exactly one Commit or Rollback call.
	Begin(ctx context.Context) (Tx, error)
}

// Tx is a single allocation unit of work.  Lock methods block until
// any conflicting transaction for the same session commits or rolls
// back, which is what serializes concurrent allocation attempts.
type Tx interface {
	// LockSession acquires an exclusive lock on the session row and
	// returns it.  It returns ErrSessionNotFound when no such session
	// exists.
	LockSession(ctx context.Context, sessionID uint64) (*model.Session, error)

	// LockOccupancy acquires exclusive locks on all active (PENDING or
	// CONFIRMED) booking rows of the session and returns the set of
	// seat numbers they occupy.
	LockOccupancy(ctx context.Context, sessionID uint64) (map[uint32]struct{}, error)

	// InsertBooking durably inserts the booking and populates its ID
	// and timestamps.  It returns ErrDuplicateSeat when the storage
	// uniqueness constraint on (session_id, seat_number) is violated.
	InsertBooking(ctx context.Context, b *model.Booking) error

	// Commit makes the transaction's writes durable and releases its locks.
	Commit() error

	// Rollback discards the transaction's writes and releases its
	// locks.  Calling Rollback after Commit is a no-op.
	Rollback() error
}
