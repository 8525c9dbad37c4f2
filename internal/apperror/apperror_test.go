package apperror

import (
	"errors"
	"fmt"
	"testing"
)

// =========================================================================
// SENTINEL / UNWRAP TESTS
// =========================================================================

func TestNotFound_MatchesSentinel(t *testing.T) {
	err := NotFound("todo item", 42)

	if !errors.Is(err, ErrNotFound) {
		t.Error("NotFound() should match ErrNotFound via errors.Is")
	}
	if errors.Is(err, ErrValidation) {
		t.Error("NotFound() should not match ErrValidation")
	}
}

func TestWrappedError_StillMatches(t *testing.T) {
	// Services wrap repository errors with %w — the sentinel must survive
	// the whole chain.
	err := fmt.Errorf("updating todo: %w", NotFound("todo item", 7))

	if !errors.Is(err, ErrNotFound) {
		t.Error("wrapped NotFound() should still match ErrNotFound")
	}

	var appErr *AppError
	if !errors.As(err, &appErr) {
		t.Fatal("errors.As should extract *AppError from the chain")
	}
	if appErr.Message == "" {
		t.Error("extracted AppError has no message")
	}
}

func TestConflict_MatchesSentinel(t *testing.T) {
	err := Conflict("a user with this email already exists")

	if !errors.Is(err, ErrConflict) {
		t.Error("Conflict() should match ErrConflict")
	}
	if err.Error() != "a user with this email already exists" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestUnauthorized_MatchesSentinel(t *testing.T) {
	err := Unauthorized("a valid bearer token is required")

	if !errors.Is(err, ErrUnauthorized) {
		t.Error("Unauthorized() should match ErrUnauthorized")
	}
}

// =========================================================================
// INVALID CREDENTIALS TESTS
// =========================================================================

func TestInvalidCredentials_AlwaysIdentical(t *testing.T) {
	// Every login failure path calls this constructor; the message must be
	// a single fixed string so response bodies can't leak which check
	// failed.
	a := InvalidCredentials()
	b := InvalidCredentials()

	if a.Message != b.Message {
		t.Errorf("InvalidCredentials() messages differ: %q vs %q", a.Message, b.Message)
	}
	if !errors.Is(a, ErrInvalidCredentials) {
		t.Error("InvalidCredentials() should match ErrInvalidCredentials")
	}
}

// =========================================================================
// FIELD ERRORS TESTS
// =========================================================================

func TestFieldErrors_Add(t *testing.T) {
	errs := FieldErrors{}
	errs.Add("email", "email is required")
	errs.Add("password", "password is required")
	errs.Add("password", "password must be at least 6 characters")

	if len(errs) != 2 {
		t.Fatalf("len(errs) = %d, want 2 fields", len(errs))
	}
	if len(errs["password"]) != 2 {
		t.Errorf("password messages = %d, want 2", len(errs["password"]))
	}
}

func TestValidationFailed_CarriesFields(t *testing.T) {
	errs := FieldErrors{}
	errs.Add("title", "title is required")

	err := ValidationFailed(errs)

	if !errors.Is(err, ErrValidation) {
		t.Error("ValidationFailed() should match ErrValidation")
	}

	var appErr *AppError
	if !errors.As(err, &appErr) {
		t.Fatal("errors.As should extract *AppError")
	}
	if got := appErr.Fields["title"]; len(got) != 1 || got[0] != "title is required" {
		t.Errorf("Fields[title] = %v", got)
	}
}
