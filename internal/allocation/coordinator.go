package allocation

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/tired-surtr/stretch-backend/internal/model"
	"github.com/tired-surtr/stretch-backend/internal/queue"
)

// PublishFunc delivers a SeatBookedEvent to the message broker.  A nil
// function disables publishing.  Publish failures are logged and
// otherwise ignored – the booking has already committed and the event
// feed is best effort.
type PublishFunc func(ctx context.Context, event queue.SeatBookedEvent) error

// Coordinator validates and commits seat allocations.  It is the only
// place booking business rules live; the ledger underneath enforces
// nothing beyond data integrity and the uniqueness constraint.
//
// Concurrency correctness rests on two independent defenses.  First,
// LockSession/LockOccupancy serialize allocation attempts per session,
// so the occupancy check and the insert form one critical section.
// Second, the ledger's uniqueness constraint catches any race the
// locking fails to close; InsertBooking's ErrDuplicateSeat is remapped
// to ErrSeatTaken rather than leaking as a storage error.
type Coordinator struct {
	ledger      Ledger
	requireUser bool
	publish     PublishFunc
}

// NewCoordinator constructs a Coordinator over the given ledger.
// When requireUser is true, anonymous allocations are rejected with
// ErrUserRequired before any transaction is opened.
func NewCoordinator(ledger Ledger, requireUser bool, publish PublishFunc) *Coordinator {
	if ledger == nil {
		panic("nil ledger passed to NewCoordinator")
	}
	return &Coordinator{ledger: ledger, requireUser: requireUser, publish: publish}
}

// Allocate attempts to book seat seatNumber of session sessionID for
// userID (nil means anonymous).  On success it returns the committed
// CONFIRMED booking.  Preconditions are checked in order inside a
// single transaction; every rejection path rolls the transaction back
// so no partial state escapes.
func (co *Coordinator) Allocate(ctx context.Context, sessionID uint64, seatNumber uint32, userID *uint64) (*model.Booking, error) {
	if sessionID == 0 || seatNumber == 0 {
		return nil, ErrInvalidRequest
	}
	if co.requireUser && userID == nil {
		return nil, ErrUserRequired
	}

	tx, err := co.ledger.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin allocation: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	sess, err := tx.LockSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("lock session %d: %w", sessionID, err)
	}
	if seatNumber > sess.Capacity {
		return nil, ErrInvalidSeat
	}

	occupied, err := tx.LockOccupancy(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("lock occupancy of session %d: %w", sessionID, err)
	}
	if _, taken := occupied[seatNumber]; taken {
		return nil, ErrSeatTaken
	}

	b := &model.Booking{
		SessionID:  sessionID,
		SeatNumber: seatNumber,
		Status:     model.BookingConfirmed,
		UserID:     userID,
	}
	if err := tx.InsertBooking(ctx, b); err != nil {
		if errors.Is(err, ErrDuplicateSeat) {
			// The constraint fired even though the lock scan saw the
			// seat as free.  Treat it as an ordinary conflict.
			return nil, ErrSeatTaken
		}
		return nil, fmt.Errorf("insert booking session=%d seat=%d: %w", sessionID, seatNumber, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit booking session=%d seat=%d: %w", sessionID, seatNumber, err)
	}
	committed = true

	if co.publish != nil {
		ev := queue.SeatBookedEvent{
			BookingID:   b.ID,
			SessionID:   sess.ID,
			SeatNumber:  b.SeatNumber,
			Status:      b.Status,
			Title:       sess.Title,
			SessionDate: sess.SessionDate,
			StartTime:   sess.StartTime,
			BookedAt:    b.CreatedAt.UTC().Format(time.RFC3339),
		}
		if userID != nil {
			ev.UserID = userID
		}
		if err := co.publish(ctx, ev); err != nil {
			log.Printf("allocation: publish seat.booked failed for booking %d: %v", b.ID, err)
		}
	}
	return b, nil
}
