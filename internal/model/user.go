package model

import "time"

// User roles.  ADMIN may create sessions; USER may only book seats.
const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// User represents an application user record as stored in the
// `users` table.  The json tags are omitted because these structs
// are used internally by the repository layer; handlers define
// separate response types with appropriate JSON tags.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Name         – optional display name.
//  Email        – unique email address.
//  PasswordHash – bcrypt hashed password.
//  Role         – ADMIN or USER.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64    // users.id
	Name         *string   // users.name (nullable)
	Email        string    // users.email
	PasswordHash string    // users.password_hash
	Role         string    // users.role
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}
