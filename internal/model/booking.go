package model

import "time"

// Booking status values.  The allocation protocol only ever writes
// CONFIRMED, but PENDING rows still occupy their seat: both statuses
// participate in the occupancy scan and the uniqueness constraint.
const (
	BookingPending   = "PENDING"
	BookingConfirmed = "CONFIRMED"
)

// Booking claims exactly one seat of one session.  The pair
// (SessionID, SeatNumber) is unique among active bookings – this is
// the invariant the whole allocation subsystem exists to protect.
//
// Fields:
//  ID         – primary key identifier.
//  SessionID  – session whose seat is claimed.
//  SeatNumber – 1-based seat number, within the session capacity.
//  Status     – PENDING or CONFIRMED.
//  UserID     – owning user; nil for anonymous bookings.
//  CreatedAt  – creation timestamp.
//  UpdatedAt  – last update timestamp.
type Booking struct {
	ID         uint64    // bookings.id
	SessionID  uint64    // bookings.session_id
	SeatNumber uint32    // bookings.seat_number
	Status     string    // bookings.status
	UserID     *uint64   // bookings.user_id (nullable)
	CreatedAt  time.Time // bookings.created_at
	UpdatedAt  time.Time // bookings.updated_at
}
