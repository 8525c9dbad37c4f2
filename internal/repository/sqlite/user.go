package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/sakif/todo-api/internal/apperror"
	"github.com/sakif/todo-api/internal/model"
	"github.com/sakif/todo-api/internal/repository"
)

// UserDB is the user store view of the shared connection pool.
// Obtain one via DB.Users.
type UserDB struct {
	conn *sql.DB
}

// Compile-time check that *UserDB implements repository.UserRepository.
var _ repository.UserRepository = (*UserDB)(nil)

// Create inserts a new user and fills in the generated ID and CreatedAt.
//
// The caller (AuthService) normalizes the email and checks for duplicates
// before calling, but concurrent registrations can still race — the UNIQUE
// constraint on email is the authoritative guard, and a constraint failure
// is surfaced as the same conflict error the pre-check produces.
func (db *UserDB) Create(ctx context.Context, user *model.User) error {
	user.CreatedAt = time.Now().UTC()

	res, err := db.conn.ExecContext(ctx,
		`INSERT INTO users (email, password_hash, first_name, last_name, created_at, is_active)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		user.Email,
		user.PasswordHash,
		user.FirstName,
		user.LastName,
		user.CreatedAt,
		user.IsActive,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict("a user with this email already exists")
		}
		return fmt.Errorf("sqlite: inserting user: %w", err)
	}

	// LastInsertId returns the AUTOINCREMENT value SQLite assigned.
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading new user id: %w", err)
	}
	user.ID = id

	return nil
}

// GetByID retrieves a user by their numeric ID.
// Returns apperror.ErrNotFound if no such user exists.
func (db *UserDB) GetByID(ctx context.Context, id int64) (*model.User, error) {
	row := db.conn.QueryRowContext(ctx,
		`SELECT id, email, password_hash, first_name, last_name, created_at, is_active
		 FROM users WHERE id = ?`,
		id,
	)
	return scanUser(row, id)
}

// GetByEmail retrieves a user by their normalized email.
// Returns apperror.ErrNotFound if no such user exists — callers on the login
// path must NOT forward that detail to the client.
func (db *UserDB) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	row := db.conn.QueryRowContext(ctx,
		`SELECT id, email, password_hash, first_name, last_name, created_at, is_active
		 FROM users WHERE email = ?`,
		email,
	)
	return scanUser(row, 0)
}

// Delete removes a user row. The ON DELETE CASCADE clause on todos.user_id
// removes all of their items in the same statement — no application-level
// cleanup loop.
func (db *UserDB) Delete(ctx context.Context, id int64) error {
	res, err := db.conn.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting user %d: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking user delete result: %w", err)
	}
	if affected == 0 {
		return apperror.NotFound("user", id)
	}

	return nil
}

func scanUser(row *sql.Row, id int64) (*model.User, error) {
	var u model.User
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.FirstName,
		&u.LastName,
		&u.CreatedAt,
		&u.IsActive,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("user", id)
		}
		return nil, fmt.Errorf("sqlite: scanning user: %w", err)
	}
	return &u, nil
}

// isUniqueViolation reports whether err is a UNIQUE constraint failure.
// modernc.org/sqlite doesn't export a typed constraint error, so we match
// the stable message SQLite itself produces.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
