// Package apperror defines the application's error taxonomy.
//
// WHY A DEDICATED ERROR PACKAGE?
// Services return these errors, and the HTTP layer translates them to status
// codes in exactly one place (handler/response.go). The service layer never
// mentions HTTP, and the handler layer never inspects SQL errors — each layer
// speaks its own language and this package is the shared vocabulary.
//
// The taxonomy mirrors the API's failure categories:
//
//	ErrValidation         → 400 (malformed/missing input, with per-field messages)
//	ErrConflict           → 400 (duplicate email on registration)
//	ErrInvalidCredentials → 400 (login failed — deliberately generic)
//	ErrUnauthorized       → 401 (missing/invalid/expired token)
//	ErrNotFound           → 404 (absent resource, or owned by someone else)
//
// Anything that doesn't wrap one of these sentinels is treated as an
// unexpected internal error (500) and its details are never sent to clients.
package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrValidation         = errors.New("validation failed")
	ErrConflict           = errors.New("conflict")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
)

// FieldErrors maps a request field name to the list of validation messages
// for that field. Request types build one of these in their Validate method;
// the HTTP layer serializes it as the "errors" object in the error body.
type FieldErrors map[string][]string

// Add appends a message to the given field's list, creating it if needed.
func (f FieldErrors) Add(field, message string) {
	f[field] = append(f[field], message)
}

// AppError is a categorised application error.
//
// Err holds one of the sentinel errors above so callers can use errors.Is;
// Message is the human-readable detail shown to the client; Fields is only
// populated for validation errors.
type AppError struct {
	Err     error
	Message string
	Fields  FieldErrors
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NotFound returns an AppError for a missing (or not-owned) resource.
//
// The message deliberately does not say WHY the resource is missing — an
// item owned by another user produces the same error as one that never
// existed, so callers cannot probe for existence.
func NotFound(resource string, id int64) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s with id %d was not found", resource, id),
	}
}

// ValidationFailed returns an AppError carrying per-field messages.
// The detail message is generic; the specifics live in Fields.
func ValidationFailed(fields FieldErrors) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: "one or more validation errors occurred",
		Fields:  fields,
	}
}

// Conflict returns an AppError for a uniqueness violation.
func Conflict(message string) *AppError {
	return &AppError{
		Err:     ErrConflict,
		Message: message,
	}
}

// InvalidCredentials returns the single, fixed error used for every login
// failure.
//
// Absent user, inactive user, and wrong password all funnel through this one
// constructor, so the response bodies are byte-identical (apart from the
// trace ID) and an attacker can't tell which part of the credentials was
// wrong.
func InvalidCredentials() *AppError {
	return &AppError{
		Err:     ErrInvalidCredentials,
		Message: "incorrect email or password",
	}
}

// Unauthorized returns an AppError for a failed authentication check.
// HTTP handlers map this to 401.
func Unauthorized(message string) *AppError {
	return &AppError{
		Err:     ErrUnauthorized,
		Message: message,
	}
}
