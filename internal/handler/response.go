// Package handler implements the HTTP layer: request decoding, response
// encoding, and the translation of application errors to HTTP statuses.
package handler

// RESPONSE HELPERS:
// These functions standardise how the API writes JSON and errors. Every
// failure — from a handler, the auth middleware, or the router's not-found
// fallback — goes through WriteError, so every error body has the same
// RFC 7807-style shape and carries the request's trace ID. This is the ONE
// place where error categories become HTTP status codes.

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sakif/todo-api/internal/apperror"
	"github.com/sakif/todo-api/internal/middleware"
	"github.com/sakif/todo-api/internal/model"
)

// writeJSON sends a JSON response with the given status code.
//
// Headers must be set BEFORE WriteHeader, and WriteHeader before the body —
// once the body starts, header changes are silently ignored.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// Headers are already sent — all we can do is log it.
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// WriteError maps an application error to an HTTP status and writes the
// shared error body.
//
// MAPPING (the only status-code switch in the codebase):
//
//	ErrValidation         → 400 + per-field errors
//	ErrConflict           → 400 (duplicate email on registration)
//	ErrInvalidCredentials → 400 (generic — never says which part was wrong)
//	ErrUnauthorized       → 401
//	ErrNotFound           → 404
//	anything else         → 500 with a fixed generic detail
//
// Errors that fall through to 500 are logged here in full — method, path,
// trace ID, and the wrapped error chain — since the generic body is the last
// the client ever sees of them. Expected failures (4xx) are not logged; they
// are normal outcomes, not incidents.
//
// Exported because the server wires it into the auth middleware and the
// router's not-found fallback — they emit the same body as handlers do.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	resp := model.ErrorResponse{
		Type:    model.ProblemTypeInternal,
		Title:   "Internal server error",
		Status:  http.StatusInternalServerError,
		Detail:  "an unexpected error occurred, please try again later",
		TraceID: middleware.TraceIDFromContext(r.Context()),
	}

	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		switch {
		case errors.Is(err, apperror.ErrValidation):
			resp.Type = model.ProblemTypeBadRequest
			resp.Title = "Validation failed"
			resp.Status = http.StatusBadRequest
			resp.Detail = appErr.Message
			resp.Errors = appErr.Fields
		case errors.Is(err, apperror.ErrConflict):
			resp.Type = model.ProblemTypeBadRequest
			resp.Title = "Registration failed"
			resp.Status = http.StatusBadRequest
			resp.Detail = appErr.Message
		case errors.Is(err, apperror.ErrInvalidCredentials):
			resp.Type = model.ProblemTypeBadRequest
			resp.Title = "Login failed"
			resp.Status = http.StatusBadRequest
			resp.Detail = appErr.Message
		case errors.Is(err, apperror.ErrUnauthorized):
			resp.Type = model.ProblemTypeUnauthorized
			resp.Title = "Unauthorized"
			resp.Status = http.StatusUnauthorized
			resp.Detail = appErr.Message
		case errors.Is(err, apperror.ErrNotFound):
			resp.Type = model.ProblemTypeNotFound
			resp.Title = "Resource not found"
			resp.Status = http.StatusNotFound
			resp.Detail = appErr.Message
		}
		// An AppError with an unknown sentinel falls through to the 500
		// defaults above — internals are never exposed to the client.
	}

	if resp.Status == http.StatusInternalServerError {
		slog.Error("request failed with internal error",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("traceId", resp.TraceID),
			slog.String("error", err.Error()),
		)
	}

	writeJSON(w, resp.Status, resp)
}

// NotFoundHandler is the router's fallback for unmatched paths (including
// non-numeric {id} segments, which the route patterns reject). It produces
// the same body shape as every other error.
func NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	WriteError(w, r, &apperror.AppError{
		Err:     apperror.ErrNotFound,
		Message: "the requested resource was not found",
	})
}

// decodeJSON reads the request body into dst. On failure it writes a 400 in
// the shared error shape and returns false — the caller just returns.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		WriteError(w, r, &apperror.AppError{
			Err:     apperror.ErrValidation,
			Message: "request body must be valid JSON",
		})
		return false
	}
	return true
}
