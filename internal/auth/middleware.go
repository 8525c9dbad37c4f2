package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/sakif/todo-api/internal/apperror"
)

// contextKey is an unexported type used for context keys in this package.
//
// WHY A CUSTOM TYPE FOR CONTEXT KEYS?
// context.WithValue keys are compared by type AND value. A package-private
// type means only this package can create the key, so no other package can
// read or shadow the authenticated user ID in the context.
type contextKey string

const userIDKey contextKey = "userID"

// ErrorWriter writes an error as an HTTP response in the API's shared error
// body shape. The server wires this to handler.WriteError — the auth package
// stays ignorant of status-code mapping and response serialization.
type ErrorWriter func(w http.ResponseWriter, r *http.Request, err error)

// RequireAuth is a middleware that enforces authentication on protected
// routes.
//
// It reads the JWT from the Authorization header ("Bearer <token>"),
// validates it, and stores the numeric user ID in the request context. If
// the header is missing or the token invalid, it responds 401 and stops the
// chain — handlers behind it can assume a valid identity is present.
//
// The acting user is re-derived from the token on EVERY request; there is no
// server-side session state anywhere.
func RequireAuth(tokens *TokenService, writeError ErrorWriter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := extractUserID(r, tokens)
			if err != nil {
				writeError(w, r, apperror.Unauthorized("a valid bearer token is required"))
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromContext retrieves the authenticated user's ID from the request
// context.
//
// Returns (0, false) if the request carries no authenticated identity — that
// only happens on routes not protected by RequireAuth, or in handler tests
// that skip the middleware.
func UserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok && id > 0
}

// WithUserID returns a context carrying the given user ID, exactly as
// RequireAuth would set it. Exported for handler tests that call handlers
// directly without the middleware stack.
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// extractUserID reads and validates the bearer token from the Authorization
// header.
//
// HEADER FORMAT: "Authorization: Bearer eyJhbGciOi..."
// The scheme comparison is case-insensitive, as HTTP auth schemes are.
func extractUserID(r *http.Request, tokens *TokenService) (int64, error) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return 0, apperror.Unauthorized("missing bearer token")
	}

	return tokens.Validate(strings.TrimSpace(token))
}
