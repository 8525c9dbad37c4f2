// Package auth — password hashing utilities.
//
// WHY BCRYPT?
// bcrypt is a password hashing function specifically designed to be slow.
// That slowness is a security feature: it makes brute-force attacks
// expensive. bcrypt automatically generates a random salt and embeds it,
// along with the cost, in the output hash — no separate salt column needed,
// and two users with the same password get different hashes.
package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// defaultCost is the bcrypt work factor.
// Cost 12 takes roughly ~250ms on a modern server — negligible for a login,
// brutal for an attacker trying billions of guesses.
const defaultCost = 12

// PasswordService provides bcrypt hashing and verification.
//
// It's a struct (not free functions) so the cost can be injected in tests —
// cost 4 (the bcrypt minimum) makes tests fast without changing the logic
// under test.
type PasswordService struct {
	cost int
}

// NewPasswordService creates a PasswordService with the default cost (12).
func NewPasswordService() *PasswordService {
	return &PasswordService{cost: defaultCost}
}

// NewPasswordServiceWithCost creates a PasswordService with a custom cost.
// Use bcrypt.MinCost (4) in tests; do NOT lower the cost in production.
func NewPasswordServiceWithCost(cost int) *PasswordService {
	return &PasswordService{cost: cost}
}

// Hash hashes the given plaintext password with bcrypt.
//
// The output is a self-contained string like
//
//	$2a$12$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy
//
// which includes the salt and cost. Store it directly; Verify knows how to
// decode it. Plaintext passwords are never persisted or logged anywhere.
func (p *PasswordService) Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), p.cost)
	if err != nil {
		// bcrypt rejects passwords longer than 72 bytes. Request validation
		// enforces the same cap, so this only fires for callers that skipped
		// validation.
		return "", fmt.Errorf("auth: hashing password: %w", err)
	}
	return string(hashed), nil
}

// errMismatch is the single error returned for every verification failure.
// Wrong password and malformed stored hash are indistinguishable to callers,
// so no code path can leak which one happened.
var errMismatch = bcrypt.ErrMismatchedHashAndPassword

// Verify checks whether a plaintext password matches a stored bcrypt hash.
//
// Returns nil on a match. Any failure — mismatch, truncated hash, garbage in
// the hash column — returns the same non-match error.
//
// TIMING SAFETY:
// bcrypt.CompareHashAndPassword compares in constant time relative to the
// stored salt/cost, so response timing doesn't reveal how close a guess was.
func (p *PasswordService) Verify(hash, plaintext string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)); err != nil {
		return errMismatch
	}
	return nil
}
