package model

import (
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sakif/todo-api/internal/apperror"
)

// Validation bounds. Defined as constants (not magic numbers in code) so
// they're easy to find, change, and reference in error messages.
const (
	MinPasswordLength = 6
	// MaxPasswordLength matches bcrypt's 72-byte input limit, so the hasher
	// never has to truncate or reject a password that passed validation.
	MaxPasswordLength = 72
	MinNameLength     = 2
	MaxNameLength     = 100
	MinTitleLength    = 1
	MaxTitleLength    = 200

	// user profiles have their own, tighter name bounds
	MaxProfileNameLength  = 50
	MaxProfileEmailLength = 100
)

// VALIDATION DESIGN:
// Each request type has an explicit Validate method that checks every field
// and returns the full field → messages map in one pass. Handlers decode the
// JSON body, services call Validate before any business logic runs, and a
// non-empty result becomes an apperror.ValidationFailed — so the client sees
// ALL the problems with their request at once, not just the first.

// RegisterRequest is the body of POST /api/auth/register.
type RegisterRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
}

// Validate checks all registration fields. Returns an empty map when the
// request is valid.
func (r *RegisterRequest) Validate() apperror.FieldErrors {
	errs := apperror.FieldErrors{}

	validateEmail(errs, "email", r.Email)

	// Password bounds deliberately count bytes, not characters — the upper
	// bound exists because bcrypt reads at most 72 BYTES of input.
	switch {
	case r.Password == "":
		errs.Add("password", "password is required")
	case len(r.Password) < MinPasswordLength:
		errs.Add("password", fmt.Sprintf("password must be at least %d characters", MinPasswordLength))
	case len(r.Password) > MaxPasswordLength:
		errs.Add("password", fmt.Sprintf("password must be %d characters or fewer", MaxPasswordLength))
	}

	if r.ConfirmPassword != r.Password {
		errs.Add("confirmPassword", "confirm password must match password")
	}

	validateName(errs, "firstName", r.FirstName, MaxNameLength)
	validateName(errs, "lastName", r.LastName, MaxNameLength)

	return errs
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate only checks presence. Deliberately loose: a malformed email on
// login should produce the same generic invalid-credentials error as a wrong
// password, so format checking here would leak information.
func (r *LoginRequest) Validate() apperror.FieldErrors {
	errs := apperror.FieldErrors{}
	if strings.TrimSpace(r.Email) == "" {
		errs.Add("email", "email is required")
	}
	if r.Password == "" {
		errs.Add("password", "password is required")
	}
	return errs
}

// TodoRequest is the body of POST /api/todo and PUT /api/todo/{id}.
type TodoRequest struct {
	Title  string `json:"title"`
	IsDone bool   `json:"isDone"`
}

// Validate enforces the 1–200 character title bound.
func (r *TodoRequest) Validate() apperror.FieldErrors {
	errs := apperror.FieldErrors{}
	switch {
	case strings.TrimSpace(r.Title) == "":
		errs.Add("title", "title is required")
	case utf8.RuneCountInString(r.Title) > MaxTitleLength:
		errs.Add("title", fmt.Sprintf("title must be between %d and %d characters", MinTitleLength, MaxTitleLength))
	}
	return errs
}

// UserProfileRequest is the body of POST /api/userprofiles and
// PUT /api/userprofiles/{id}.
type UserProfileRequest struct {
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	BirthDate time.Time `json:"birthDate"`
}

// Validate checks all profile fields, including that the birth date is
// strictly in the past.
func (r *UserProfileRequest) Validate() apperror.FieldErrors {
	errs := apperror.FieldErrors{}

	validateName(errs, "firstName", r.FirstName, MaxProfileNameLength)
	validateName(errs, "lastName", r.LastName, MaxProfileNameLength)
	validateEmail(errs, "email", r.Email)
	if utf8.RuneCountInString(r.Email) > MaxProfileEmailLength {
		errs.Add("email", fmt.Sprintf("email must be %d characters or fewer", MaxProfileEmailLength))
	}

	switch {
	case r.BirthDate.IsZero():
		errs.Add("birthDate", "birth date is required")
	case !r.BirthDate.Before(time.Now()):
		errs.Add("birthDate", "birth date must be in the past")
	}

	return errs
}

// validateEmail adds errors for a missing or malformed email address.
//
// net/mail's parser implements RFC 5322 address syntax, which is the
// closest thing the standard library has to "is this a real email".
// We reject addresses with a display name ("Alice <a@b.com>") by requiring
// the parsed address to round-trip to the bare input.
func validateEmail(errs apperror.FieldErrors, field, email string) {
	trimmed := strings.TrimSpace(email)
	if trimmed == "" {
		errs.Add(field, "email is required")
		return
	}
	addr, err := mail.ParseAddress(trimmed)
	if err != nil || addr.Address != trimmed {
		errs.Add(field, "email is not a valid email address")
	}
}

// validateName adds errors for a name field outside [MinNameLength, max]
// after trimming. Bounds count characters, not bytes — "Müller" is six
// characters even though it is seven bytes.
func validateName(errs apperror.FieldErrors, field, value string, max int) {
	trimmed := strings.TrimSpace(value)
	n := utf8.RuneCountInString(trimmed)
	switch {
	case trimmed == "":
		errs.Add(field, fmt.Sprintf("%s is required", field))
	case n < MinNameLength || n > max:
		errs.Add(field, fmt.Sprintf("%s must be between %d and %d characters", field, MinNameLength, max))
	}
}
