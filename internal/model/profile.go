package model

import "time"

// UserProfile is a standalone address-book record.
//
// Despite the name, it has NO relation to User or Todo — no foreign keys, no
// authentication. It's a separate resource with its own unauthenticated CRUD
// endpoints under /api/userprofiles.
type UserProfile struct {
	ID        int64     `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	BirthDate time.Time `json:"birthDate"` // must be strictly in the past
}
