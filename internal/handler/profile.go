package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/sakif/todo-api/internal/model"
	"github.com/sakif/todo-api/internal/service"
)

// ProfileHandler manages CRUD for the standalone user-profile resource.
//
// These endpoints are NOT authenticated — user profiles have no relation to
// accounts or todos. The handler mirrors TodoHandler minus the identity
// plumbing.
type ProfileHandler struct {
	svc    *service.ProfileService
	logger *slog.Logger
}

// NewProfileHandler creates a ProfileHandler.
func NewProfileHandler(svc *service.ProfileService, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{svc: svc, logger: logger}
}

// HandleList returns all profiles.
//
// HTTP: GET /api/userprofiles
func (h *ProfileHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.svc.List(r.Context())
	if err != nil {
		WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, profiles)
}

// HandleGet returns a single profile.
//
// HTTP: GET /api/userprofiles/{id}
// 200 → the profile; 404 if absent
func (h *ProfileHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	profile, err := h.svc.Get(r.Context(), pathID(r))
	if err != nil {
		WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

// HandleCreate stores a new profile.
//
// HTTP: POST /api/userprofiles
// BODY: {"firstName", "lastName", "email", "birthDate"}
// 201 → the created profile, with a Location header pointing at it
func (h *ProfileHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req model.UserProfileRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	profile, err := h.svc.Create(r.Context(), req)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/userprofiles/%d", profile.ID))
	writeJSON(w, http.StatusCreated, profile)
}

// HandleUpdate replaces all fields of an existing profile.
//
// HTTP: PUT /api/userprofiles/{id}
// 204 on success; 400 on validation failure; 404 if absent
func (h *ProfileHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req model.UserProfileRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.svc.Update(r.Context(), pathID(r), req); err != nil {
		WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleDelete removes a profile.
//
// HTTP: DELETE /api/userprofiles/{id}
// 204 on success; 404 if absent
func (h *ProfileHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), pathID(r)); err != nil {
		WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
