// Package repository defines the storage interfaces the service layer
// programs against. The concrete SQLite implementation lives in
// repository/sqlite; tests substitute in-memory fakes.
package repository

import (
	"context"

	"github.com/sakif/todo-api/internal/model"
)

// UserRepository persists registered accounts.
//
// Emails are stored normalized (lower-cased, trimmed); callers normalize
// before lookup. Create returns apperror.ErrConflict when the normalized
// email already exists.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	// Delete removes a user; the schema cascades deletion to their todos.
	Delete(ctx context.Context, id int64) error
}

// TodoRepository persists to-do items.
//
// OWNERSHIP SCOPING:
// Every read and mutation takes the acting user's ID and filters by it in
// SQL. There is no way to reach another user's item through this interface —
// a foreign item and a nonexistent item both yield apperror.ErrNotFound.
type TodoRepository interface {
	ListByUser(ctx context.Context, userID int64) ([]model.Todo, error)
	GetByID(ctx context.Context, id, userID int64) (*model.Todo, error)
	Create(ctx context.Context, todo *model.Todo) error
	Update(ctx context.Context, todo *model.Todo) error
	Delete(ctx context.Context, id, userID int64) error
}

// UserProfileRepository persists the standalone address-book records.
// No ownership, no auth — a plain CRUD store.
type UserProfileRepository interface {
	List(ctx context.Context) ([]model.UserProfile, error)
	GetByID(ctx context.Context, id int64) (*model.UserProfile, error)
	Create(ctx context.Context, profile *model.UserProfile) error
	Update(ctx context.Context, profile *model.UserProfile) error
	Delete(ctx context.Context, id int64) error
}
