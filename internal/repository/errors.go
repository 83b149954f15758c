// Package repository contains the data access layer: the transactional
// seat ledger plus plain read/query repositories for sessions, bookings
// and users.  Sentinel errors defined here and next to each repository
// let handlers distinguish failure scenarios without string matching.
package repository

import (
	"errors"
	"strings"
)

// ErrSessionNotFound indicates that a session was not located in the DB.
// Handlers should translate this into an HTTP 404 response.
var ErrSessionNotFound = errors.New("session not found")

// ErrEmailExists is returned when registering a user whose email is
// already taken.  Handlers should translate this into HTTP 409.
var ErrEmailExists = errors.New("email already exists")

// isDuplicateKey reports whether err is a MySQL duplicate-key violation
// (error 1062).  The driver surfaces it as a plain error, so the code is
// sniffed from the message.
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(strings.ToLower(err.Error()), "1062")
}
