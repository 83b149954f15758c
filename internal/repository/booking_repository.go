package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/tired-surtr/stretch-backend/internal/allocation"
	"github.com/tired-surtr/stretch-backend/internal/model"
)

// activeStatuses is the SQL predicate for bookings that occupy a seat.
// PENDING rows count: a pending booking still holds its seat.
const activeStatuses = `status IN ('PENDING','CONFIRMED')`

// BookingLedger is the MySQL implementation of allocation.Ledger.  Row
// locks (SELECT ... FOR UPDATE) serialize concurrent allocations per
// session, and the UNIQUE KEY on (session_id, seat_number) backs the
// coordinator's constraint defense.  The ledger runs no business
// logic: capacity bounds and status transitions belong to the
// coordinator.
type BookingLedger struct {
	db *sql.DB
}

// NewBookingLedger returns a BookingLedger bound to the given database.
func NewBookingLedger(db *sql.DB) *BookingLedger {
	return &BookingLedger{db: db}
}

// Begin opens a transaction at the connection's default isolation level.
func (l *BookingLedger) Begin(ctx context.Context) (allocation.Tx, error) {
	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &bookingTx{tx: tx}, nil
}

// bookingTx wraps a *sql.Tx with the ledger operations the coordinator
// needs.  All methods run against the wrapped transaction so their
// effects are observed atomically.
type bookingTx struct {
	tx *sql.Tx
}

// LockSession takes an exclusive lock on the session row for the
// duration of the transaction and returns the session.  A concurrent
// allocation for the same session blocks here until this transaction
// commits or rolls back.
func (t *bookingTx) LockSession(ctx context.Context, sessionID uint64) (*model.Session, error) {
	const q = `SELECT id, title, description, session_date, start_time, duration_minutes, capacity, created_at
	           FROM sessions WHERE id = ? FOR UPDATE`
	var s model.Session
	var desc sql.NullString
	err := t.tx.QueryRowContext(ctx, q, sessionID).Scan(
		&s.ID, &s.Title, &desc, &s.SessionDate, &s.StartTime, &s.DurationMinutes, &s.Capacity, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, allocation.ErrSessionNotFound
		}
		return nil, err
	}
	if desc.Valid {
		d := desc.String
		s.Description = &d
	}
	return &s, nil
}

// LockOccupancy locks all active booking rows of the session and
// returns the occupied seat numbers.  The lock keeps the occupancy
// snapshot stable until the transaction ends.
func (t *bookingTx) LockOccupancy(ctx context.Context, sessionID uint64) (map[uint32]struct{}, error) {
	const q = `SELECT seat_number FROM bookings
	           WHERE session_id = ? AND ` + activeStatuses + `
	           FOR UPDATE`
	rows, err := t.tx.QueryContext(ctx, q, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	occupied := make(map[uint32]struct{})
	for rows.Next() {
		var seat uint32
		if err := rows.Scan(&seat); err != nil {
			return nil, err
		}
		occupied[seat] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return occupied, nil
}

// InsertBooking inserts the booking row and reads it back to populate
// the generated ID and timestamps.  A duplicate-key violation on
// (session_id, seat_number) is reported as allocation.ErrDuplicateSeat
// independently of the lock-based occupancy check.
func (t *bookingTx) InsertBooking(ctx context.Context, b *model.Booking) error {
	const q = `INSERT INTO bookings (session_id, seat_number, status, user_id) VALUES (?, ?, ?, ?)`
	res, err := t.tx.ExecContext(ctx, q, b.SessionID, b.SeatNumber, b.Status, b.UserID)
	if err != nil {
		if isDuplicateKey(err) {
			return allocation.ErrDuplicateSeat
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	const sel = `SELECT id, session_id, seat_number, status, user_id, created_at, updated_at
	             FROM bookings WHERE id = ?`
	var userID sql.NullInt64
	if err := t.tx.QueryRowContext(ctx, sel, b.ID).Scan(
		&b.ID, &b.SessionID, &b.SeatNumber, &b.Status, &userID, &b.CreatedAt, &b.UpdatedAt,
	); err != nil {
		return err
	}
	if userID.Valid {
		uid := uint64(userID.Int64)
		b.UserID = &uid
	}
	return nil
}

func (t *bookingTx) Commit() error   { return t.tx.Commit() }
func (t *bookingTx) Rollback() error { return t.tx.Rollback() }

// BookingRepo provides read access to bookings outside of allocation
// transactions.  These queries may observe slightly stale data and must
// never be used to decide allocation outcomes.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// BookedSeats returns the seat numbers of all active bookings for a
// session in ascending order.
func (r *BookingRepo) BookedSeats(ctx context.Context, sessionID uint64) ([]uint32, error) {
	const q = `SELECT seat_number FROM bookings
	           WHERE session_id = ? AND ` + activeStatuses + `
	           ORDER BY seat_number`
	rows, err := r.db.QueryContext(ctx, q, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	seats := make([]uint32, 0)
	for rows.Next() {
		var seat uint32
		if err := rows.Scan(&seat); err != nil {
			return nil, err
		}
		seats = append(seats, seat)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return seats, nil
}

// SessionSummary is the embedded session info returned with each of a
// user's bookings.
type SessionSummary struct {
	ID          uint64 `json:"id"`
	Title       string `json:"title"`
	SessionDate string `json:"session_date"`
	StartTime   string `json:"start_time"`
}

// UserBookingDetail is a booking joined with its session summary, as
// returned by ListByUser for display to customers.
type UserBookingDetail struct {
	ID         uint64         `json:"id"`
	SessionID  uint64         `json:"session_id"`
	SeatNumber uint32         `json:"seat_number"`
	Status     string         `json:"status"`
	CreatedAt  string         `json:"created_at"`
	Session    SessionSummary `json:"session"`
}

// ListByUser returns the user's bookings newest first, each with the
// session it belongs to.  When no bookings exist, an empty slice is
// returned.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64) ([]UserBookingDetail, error) {
	const q = `SELECT b.id, b.session_id, b.seat_number, b.status, b.created_at,
	                  s.id, s.title, s.session_date, s.start_time
	           FROM bookings b
	           JOIN sessions s ON s.id = b.session_id
	           WHERE b.user_id = ?
	           ORDER BY b.created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	details := make([]UserBookingDetail, 0)
	for rows.Next() {
		var d UserBookingDetail
		var createdAt sql.NullTime
		if err := rows.Scan(
			&d.ID, &d.SessionID, &d.SeatNumber, &d.Status, &createdAt,
			&d.Session.ID, &d.Session.Title, &d.Session.SessionDate, &d.Session.StartTime,
		); err != nil {
			return nil, err
		}
		if createdAt.Valid {
			d.CreatedAt = createdAt.Time.UTC().Format(time.RFC3339)
		}
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return details, nil
}
