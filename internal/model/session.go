package model

import "time"

// Session represents a bookable event with a fixed seat capacity.
// Sessions are immutable after creation: the catalog only ever
// inserts and reads them.  Date and start time are stored in the
// DB-native DATE ("2006-01-02") and TIME ("15:04:05") formats.
//
// Fields:
//  ID              – primary key identifier.
//  Title           – human readable name of the session.
//  Description     – optional longer description.
//  SessionDate     – calendar date the session takes place.
//  StartTime       – time of day the session begins.
//  DurationMinutes – length of the session in minutes.
//  Capacity        – number of seats available (>= 1).
//  CreatedAt       – creation timestamp.
type Session struct {
	ID              uint64    // sessions.id
	Title           string    // sessions.title
	Description     *string   // sessions.description (nullable)
	SessionDate     string    // sessions.session_date ("YYYY-MM-DD")
	StartTime       string    // sessions.start_time ("HH:MM:SS")
	DurationMinutes uint32    // sessions.duration_minutes
	Capacity        uint32    // sessions.capacity
	CreatedAt       time.Time // sessions.created_at
}
