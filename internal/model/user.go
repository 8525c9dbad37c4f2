// Package model defines the data structures used throughout the application.
package model

import (
	"strings"
	"time"
)

// User represents a registered account.
//
// WHY int64 IDs?
// The database assigns IDs via INTEGER PRIMARY KEY AUTOINCREMENT, and SQLite
// rowids are 64-bit. Using int64 throughout means no conversions between the
// driver, the model, and the JWT subject claim (which stores the ID as a
// decimal string).
//
// WHY json:"-" ON PasswordHash?
// The hash must never appear in any API response — not even as an empty
// string. The `json:"-"` tag makes encoding/json skip the field entirely,
// so GET /api/auth/me returns a user object with no password field at all.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"` // stored lower-cased and trimmed
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	CreatedAt    time.Time `json:"createdAt"` // UTC, set once at creation
	IsActive     bool      `json:"isActive"`
}

// NormalizeEmail trims whitespace and lower-cases an email address.
//
// Every email that touches the users table goes through this first — both on
// registration (before the uniqueness check) and on login lookup. That's what
// makes "  Alice@Example.COM " and "alice@example.com" the same account.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
