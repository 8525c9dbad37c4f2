package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/sakif/todo-api/internal/apperror"
	"github.com/sakif/todo-api/internal/model"
)

// ============================================================
// CREATE
// ============================================================

func TestUserDB_Create_AssignsIDAndCreatedAt(t *testing.T) {
	db := newTestDB(t)

	user := createTestUser(t, db, "alice@example.com")

	if user.ID == 0 {
		t.Error("expected Create to fill in the generated ID, got 0")
	}
	if user.CreatedAt.IsZero() {
		t.Error("expected Create to fill in CreatedAt, got zero time")
	}
}

func TestUserDB_Create_DuplicateEmailIsConflict(t *testing.T) {
	db := newTestDB(t)

	createTestUser(t, db, "alice@example.com")

	dup := &model.User{
		Email:        "alice@example.com",
		PasswordHash: "x",
		FirstName:    "Other",
		LastName:     "Person",
		IsActive:     true,
	}
	err := db.Users().Create(context.Background(), dup)
	if err == nil {
		t.Fatal("expected error for duplicate email, got nil")
	}
	if !errors.Is(err, apperror.ErrConflict) {
		t.Errorf("expected apperror.ErrConflict, got %v", err)
	}
}

// ============================================================
// GET
// ============================================================

func TestUserDB_GetByID(t *testing.T) {
	db := newTestDB(t)
	created := createTestUser(t, db, "alice@example.com")

	got, err := db.Users().GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("GetByID error = %v", err)
	}
	if got.Email != "alice@example.com" {
		t.Errorf("Email = %q, want %q", got.Email, "alice@example.com")
	}
	if got.FirstName != "Test" || got.LastName != "User" {
		t.Errorf("name = %q %q, want Test User", got.FirstName, got.LastName)
	}
	if !got.IsActive {
		t.Error("IsActive = false, want true")
	}
}

func TestUserDB_GetByID_Missing(t *testing.T) {
	db := newTestDB(t)

	_, err := db.Users().GetByID(context.Background(), 9999)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("expected apperror.ErrNotFound, got %v", err)
	}
}

func TestUserDB_GetByEmail(t *testing.T) {
	db := newTestDB(t)
	created := createTestUser(t, db, "bob@example.com")

	got, err := db.Users().GetByEmail(context.Background(), "bob@example.com")
	if err != nil {
		t.Fatalf("GetByEmail error = %v", err)
	}
	if got.ID != created.ID {
		t.Errorf("ID = %d, want %d", got.ID, created.ID)
	}
}

func TestUserDB_GetByEmail_Missing(t *testing.T) {
	db := newTestDB(t)

	_, err := db.Users().GetByEmail(context.Background(), "nobody@example.com")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("expected apperror.ErrNotFound, got %v", err)
	}
}

// ============================================================
// DELETE (cascade)
// ============================================================

func TestUserDB_Delete_CascadesToTodos(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	user := createTestUser(t, db, "alice@example.com")
	createTestTodo(t, db, user.ID, "buy milk")
	createTestTodo(t, db, user.ID, "walk dog")

	if err := db.Users().Delete(ctx, user.ID); err != nil {
		t.Fatalf("Delete error = %v", err)
	}

	// The FK's ON DELETE CASCADE must have removed the items too.
	todos, err := db.Todos().ListByUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("ListByUser after delete error = %v", err)
	}
	if len(todos) != 0 {
		t.Errorf("expected 0 todos after user delete, got %d", len(todos))
	}
}

func TestUserDB_Delete_Missing(t *testing.T) {
	db := newTestDB(t)

	err := db.Users().Delete(context.Background(), 9999)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("expected apperror.ErrNotFound, got %v", err)
	}
}
