package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sakif/todo-api/internal/apperror"
	"github.com/sakif/todo-api/internal/model"
)

func createTestProfile(t *testing.T, db *DB, email string) *model.UserProfile {
	t.Helper()

	profile := &model.UserProfile{
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     email,
		BirthDate: time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC),
	}
	if err := db.Profiles().Create(context.Background(), profile); err != nil {
		t.Fatalf("failed to create test profile %q: %v", email, err)
	}
	return profile
}

func TestProfileDB_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	created := createTestProfile(t, db, "jane@example.com")

	if created.ID == 0 {
		t.Fatal("expected Create to fill in the generated ID, got 0")
	}

	got, err := db.Profiles().GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("GetByID error = %v", err)
	}
	if got.Email != "jane@example.com" {
		t.Errorf("Email = %q, want %q", got.Email, "jane@example.com")
	}
	if !got.BirthDate.Equal(created.BirthDate) {
		t.Errorf("BirthDate = %v, want %v", got.BirthDate, created.BirthDate)
	}
}

func TestProfileDB_GetByID_Missing(t *testing.T) {
	db := newTestDB(t)

	_, err := db.Profiles().GetByID(context.Background(), 9999)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("expected apperror.ErrNotFound, got %v", err)
	}
}

func TestProfileDB_List(t *testing.T) {
	db := newTestDB(t)

	profiles, err := db.Profiles().List(context.Background())
	if err != nil {
		t.Fatalf("List error = %v", err)
	}
	if profiles == nil {
		t.Fatal("expected empty slice, got nil")
	}

	createTestProfile(t, db, "a@example.com")
	createTestProfile(t, db, "b@example.com")

	profiles, err = db.Profiles().List(context.Background())
	if err != nil {
		t.Fatalf("List error = %v", err)
	}
	if len(profiles) != 2 {
		t.Errorf("expected 2 profiles, got %d", len(profiles))
	}
}

func TestProfileDB_Update(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	profile := createTestProfile(t, db, "jane@example.com")

	profile.FirstName = "Janet"
	profile.Email = "janet@example.com"
	if err := db.Profiles().Update(ctx, profile); err != nil {
		t.Fatalf("Update error = %v", err)
	}

	got, err := db.Profiles().GetByID(ctx, profile.ID)
	if err != nil {
		t.Fatalf("GetByID after update error = %v", err)
	}
	if got.FirstName != "Janet" || got.Email != "janet@example.com" {
		t.Errorf("after update got %q/%q, want Janet/janet@example.com", got.FirstName, got.Email)
	}
}

func TestProfileDB_Update_Missing(t *testing.T) {
	db := newTestDB(t)

	ghost := &model.UserProfile{
		ID:        9999,
		FirstName: "No",
		LastName:  "Body",
		Email:     "nobody@example.com",
		BirthDate: time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := db.Profiles().Update(context.Background(), ghost); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("expected apperror.ErrNotFound, got %v", err)
	}
}

func TestProfileDB_Delete(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	profile := createTestProfile(t, db, "jane@example.com")

	if err := db.Profiles().Delete(ctx, profile.ID); err != nil {
		t.Fatalf("Delete error = %v", err)
	}
	if _, err := db.Profiles().GetByID(ctx, profile.ID); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("expected apperror.ErrNotFound after delete, got %v", err)
	}
}

func TestProfileDB_Delete_Missing(t *testing.T) {
	db := newTestDB(t)

	if err := db.Profiles().Delete(context.Background(), 9999); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("expected apperror.ErrNotFound, got %v", err)
	}
}
