// Package auth provides JWT token issuance/validation and password hashing
// for the todo API.
//
// AUTHENTICATION FLOW OVERVIEW:
// 1. Client registers or logs in with email + password
// 2. Server verifies the password hash and issues a signed JWT
// 3. Client sends the JWT on every request: Authorization: Bearer <token>
// 4. RequireAuth middleware validates the token and puts the user ID in the
//    request context — handlers never parse tokens themselves
//
// WHY JWT?
// JWT is stateless — the server stores no session data. Everything needed
// (user ID, expiry) is inside the signed token, and the HMAC signature
// ensures nobody can tamper with it without the secret key.
package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// TokenTTL is the validity window of issued tokens. The same instant is
	// embedded in the token's exp claim and returned to the client as
	// expiresAt, so the two can never disagree.
	TokenTTL = 7 * 24 * time.Hour

	tokenIssuer   = "todo-api"
	tokenAudience = "todo-api-users"
)

// TokenService handles JWT creation and validation.
//
// It holds the HMAC secret used to sign and verify tokens. The same secret
// must be used for both operations — it is process-wide configuration and
// startup fails if it isn't provided (there is no insecure default).
type TokenService struct {
	secret []byte
}

// NewTokenService creates a TokenService with the given secret.
// The secret should be at least 32 bytes of random data in production.
// Example: JWT_SECRET=$(openssl rand -hex 32)
func NewTokenService(secret string) (*TokenService, error) {
	if len(secret) < 16 {
		return nil, errors.New("auth: JWT secret must be at least 16 characters")
	}
	return &TokenService{secret: []byte(secret)}, nil
}

// claims is the JWT payload. It embeds jwt.RegisteredClaims which includes
// the standard fields: Issuer, Subject, Audience, ExpiresAt, IssuedAt.
//
// The "sub" (Subject) claim carries the user's numeric ID as a decimal
// string — the standard claim for identifying who a token belongs to.
type claims struct {
	jwt.RegisteredClaims
}

// Generate creates and signs a JWT for the given user ID.
//
// It returns the signed token and the exact expiry instant embedded in it,
// so callers can report expiresAt to the client without recomputing it.
//
// Signing algorithm: HS256 (HMAC-SHA256) — symmetric, same key signs and
// verifies. Fine for a single-server deployment like this one.
func (s *TokenService) Generate(userID int64) (string, time.Time, error) {
	return s.generate(userID, TokenTTL)
}

// GenerateWithDuration creates a token with a custom validity window.
// Used by tests to mint already-expired tokens.
func (s *TokenService) GenerateWithDuration(userID int64, d time.Duration) (string, time.Time, error) {
	return s.generate(userID, d)
}

func (s *TokenService) generate(userID int64, d time.Duration) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(d)

	c := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			Issuer:    tokenIssuer,
			Audience:  jwt.ClaimStrings{tokenAudience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("auth: signing token: %w", err)
	}

	return signed, expiresAt, nil
}

// Validate parses and verifies a JWT string.
// Returns the user ID from the "sub" claim if the token is valid.
//
// VALIDATION CHECKS:
//   - Signature is valid (token wasn't tampered with)
//   - Algorithm is HS256 (prevents algorithm confusion attacks)
//   - Issuer is "todo-api" and audience is "todo-api-users"
//   - Token is not expired — with zero leeway, expiry is exact
//   - Subject is present and parses as a numeric user ID
func (s *TokenService) Validate(tokenStr string) (int64, error) {
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&claims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("auth: unexpected signing method: %v", token.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithAudience(tokenAudience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, fmt.Errorf("auth: token expired")
		}
		return 0, fmt.Errorf("auth: invalid token: %w", err)
	}

	c, ok := token.Claims.(*claims)
	if !ok || !token.Valid {
		return 0, fmt.Errorf("auth: invalid token claims")
	}

	userID, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return 0, fmt.Errorf("auth: token subject is not a valid user ID")
	}

	return userID, nil
}
