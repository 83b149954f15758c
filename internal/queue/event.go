// Package queue defines message payloads exchanged over the message broker
// and the background consumer that drains them.
package queue

// SeatBookedEvent is published when a seat allocation commits.  It carries
// enough context for downstream consumers to log or run analytics without
// querying the primary database.
type SeatBookedEvent struct {
	BookingID   uint64  `json:"booking_id"`
	SessionID   uint64  `json:"session_id"`
	SeatNumber  uint32  `json:"seat_number"`
	Status      string  `json:"status"`
	UserID      *uint64 `json:"user_id,omitempty"`
	Title       string  `json:"session_title"`
	SessionDate string  `json:"session_date"`
	StartTime   string  `json:"start_time"`
	BookedAt    string  `json:"booked_at"`
}
