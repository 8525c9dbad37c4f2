package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/todo-api/internal/apperror"
	"github.com/sakif/todo-api/internal/auth"
	"github.com/sakif/todo-api/internal/model"
	"github.com/sakif/todo-api/internal/service"
)

// TodoHandler manages CRUD operations for to-do items.
//
// All routes sit behind RequireAuth; the acting user is re-read from the
// request context on every call and passed to the service explicitly. The
// handler never decides ownership — the service and repository do, and a
// foreign item comes back as a plain not-found.
type TodoHandler struct {
	svc    *service.TodoService
	logger *slog.Logger
}

// NewTodoHandler creates a TodoHandler.
func NewTodoHandler(svc *service.TodoService, logger *slog.Logger) *TodoHandler {
	return &TodoHandler{svc: svc, logger: logger}
}

// HandleList returns all of the caller's items.
//
// HTTP: GET /api/todo
// 200 → JSON array (empty array when the user has no items, never null)
func (h *TodoHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	todos, err := h.svc.List(r.Context(), userID)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, todos)
}

// HandleGet returns a single item.
//
// HTTP: GET /api/todo/{id}
// 200 → the item; 404 if absent or owned by another user
func (h *TodoHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	todo, err := h.svc.Get(r.Context(), pathID(r), userID)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, todo)
}

// HandleCreate stores a new item owned by the caller.
//
// HTTP: POST /api/todo
// BODY: {"title", "isDone"}
// 201 → the created item, with a Location header pointing at it
func (h *TodoHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	var req model.TodoRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	todo, err := h.svc.Create(r.Context(), userID, req)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	// Location must be set before writeJSON sends the headers.
	w.Header().Set("Location", fmt.Sprintf("/api/todo/%d", todo.ID))
	writeJSON(w, http.StatusCreated, todo)
}

// HandleUpdate replaces an item's title and done flag.
//
// HTTP: PUT /api/todo/{id}
// BODY: {"title", "isDone"}
// 204 on success; 400 on validation failure; 404 if absent or foreign
func (h *TodoHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	var req model.TodoRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.svc.Update(r.Context(), pathID(r), userID, req); err != nil {
		WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleDelete removes an item.
//
// HTTP: DELETE /api/todo/{id}
// 204 on success; 404 if absent or foreign
func (h *TodoHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), pathID(r), userID); err != nil {
		WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// currentUserID reads the authenticated user from the context, writing a 401
// and returning ok=false if it's missing. Behind RequireAuth it can't be,
// but handlers shouldn't depend on wiring they can't see.
func currentUserID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		WriteError(w, r, apperror.Unauthorized("a valid bearer token is required"))
		return 0, false
	}
	return userID, true
}

// pathID extracts the numeric {id} URL parameter.
//
// The route patterns constrain {id} to digits ({id:[0-9]+}), so parsing can
// only fail on overflow — which no real row ID reaches; the resulting 0
// simply finds nothing and surfaces as a 404.
func pathID(r *http.Request) int64 {
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id
}
