// Package allocation implements the seat-allocation coordinator: the
// transactional protocol that claims one seat of one session and
// guarantees that no seat is ever double-booked under concurrency.
package allocation

import "errors"

// Terminal errors returned by Allocate.  They are deterministic for a
// given request: the caller must change the request to make progress.
// Any other error from Allocate is a storage failure and is safe to
// retry.
var (
	// ErrInvalidRequest indicates a missing or malformed session ID or
	// seat number.  Handlers should translate this into HTTP 400.
	ErrInvalidRequest = errors.New("session_id and seat_number are required")

	// ErrSessionNotFound indicates that the referenced session does not
	// exist.  Handlers should translate this into HTTP 404.
	ErrSessionNotFound = errors.New("session not found")

	// ErrInvalidSeat indicates a seat number outside 1..capacity.
	// Handlers should translate this into HTTP 400.
	ErrInvalidSeat = errors.New("invalid seat number")

	// ErrSeatTaken indicates that another booking already occupies the
	// requested seat.  This is an expected outcome under concurrency,
	// not a bug.  Handlers should translate this into HTTP 409.
	ErrSeatTaken = errors.New("seat already booked")

	// ErrUserRequired indicates that the service is configured to
	// reject anonymous bookings and no caller identity was supplied.
	// Handlers should translate this into HTTP 401.
	ErrUserRequired = errors.New("authentication required to book")
)

// ErrDuplicateSeat is the ledger-side constraint violation: the
// storage layer refused an insert because an active booking already
// holds the (session, seat) pair.  Ledger implementations must return
// it from InsertBooking so the coordinator can remap it to
// ErrSeatTaken instead of surfacing a raw storage error.
var ErrDuplicateSeat = errors.New("duplicate seat for session")
