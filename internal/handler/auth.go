package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/todo-api/internal/apperror"
	"github.com/sakif/todo-api/internal/auth"
	"github.com/sakif/todo-api/internal/model"
	"github.com/sakif/todo-api/internal/service"
)

// AuthHandler manages registration, login, and the current-user endpoint.
//
// HANDLER RESPONSIBILITIES:
//   - HandleRegister → POST /api/auth/register
//   - HandleLogin    → POST /api/auth/login
//   - HandleMe       → GET  /api/auth/me (behind RequireAuth)
//
// The handler only decodes JSON and writes responses; everything else —
// validation, normalization, hashing, token issuance — lives in AuthService.
type AuthHandler struct {
	svc    *service.AuthService
	logger *slog.Logger
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(svc *service.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, logger: logger}
}

// HandleRegister creates a new account and returns a token.
//
// HTTP: POST /api/auth/register
// BODY: {"email", "password", "confirmPassword", "firstName", "lastName"}
//
// 200 → {"token", "email", "firstName", "lastName", "expiresAt"}
// 400 → validation errors or duplicate email
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.svc.Register(r.Context(), req)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// HandleLogin verifies credentials and returns a token.
//
// HTTP: POST /api/auth/login
// BODY: {"email", "password"}
//
// The success response has exactly the same shape as HandleRegister's, and
// every credential failure returns the same 400 body.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.svc.Login(r.Context(), req)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// HandleMe returns the authenticated user's record.
//
// HTTP: GET /api/auth/me
// Auth: required (RequireAuth sets the user ID in the context)
//
// 401 if the middleware found no valid token; 404 if the account was deleted
// after the token was issued. The response never contains the password hash —
// the model omits the field from JSON entirely.
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		// Unreachable behind RequireAuth, but don't assume the wiring.
		WriteError(w, r, apperror.Unauthorized("a valid bearer token is required"))
		return
	}

	user, err := h.svc.GetUserByID(r.Context(), userID)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}
