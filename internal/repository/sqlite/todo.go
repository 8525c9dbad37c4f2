package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sakif/todo-api/internal/apperror"
	"github.com/sakif/todo-api/internal/model"
	"github.com/sakif/todo-api/internal/repository"
)

// TodoDB is the to-do item store view of the shared connection pool.
// Obtain one via DB.Todos.
type TodoDB struct {
	conn *sql.DB
}

// Compile-time check that *TodoDB implements repository.TodoRepository.
var _ repository.TodoRepository = (*TodoDB)(nil)

// OWNERSHIP IN SQL, NOT IN GO:
// Every query below includes `user_id = ?`. The alternative — fetch by ID,
// then compare owners in Go — has two problems: it's easy to forget on one
// code path, and a "wrong owner" branch is tempted to return 403, leaking
// that the item exists. With the filter in the WHERE clause there is exactly
// one outcome for both "absent" and "not yours": zero rows → not found.

// ListByUser returns all items owned by the given user, oldest first.
// No pagination — the API contract returns the full list.
func (db *TodoDB) ListByUser(ctx context.Context, userID int64) ([]model.Todo, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, title, is_done, user_id FROM todos WHERE user_id = ? ORDER BY id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing todos for user %d: %w", userID, err)
	}
	defer rows.Close()

	// Initialise to an empty slice (not nil) so an empty list serializes as
	// [] rather than null.
	todos := []model.Todo{}
	for rows.Next() {
		var t model.Todo
		if err := rows.Scan(&t.ID, &t.Title, &t.IsDone, &t.UserID); err != nil {
			return nil, fmt.Errorf("sqlite: scanning todo: %w", err)
		}
		todos = append(todos, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating todos: %w", err)
	}

	return todos, nil
}

// GetByID retrieves a single item owned by userID.
// Returns apperror.ErrNotFound if the item is absent OR owned by another
// user — callers cannot tell the difference.
func (db *TodoDB) GetByID(ctx context.Context, id, userID int64) (*model.Todo, error) {
	var t model.Todo
	err := db.conn.QueryRowContext(ctx,
		`SELECT id, title, is_done, user_id FROM todos WHERE id = ? AND user_id = ?`,
		id, userID,
	).Scan(&t.ID, &t.Title, &t.IsDone, &t.UserID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("todo item", id)
		}
		return nil, fmt.Errorf("sqlite: getting todo %d: %w", id, err)
	}

	return &t, nil
}

// Create inserts a new item and fills in the generated ID.
// todo.UserID must already be set to the acting user.
func (db *TodoDB) Create(ctx context.Context, todo *model.Todo) error {
	res, err := db.conn.ExecContext(ctx,
		`INSERT INTO todos (title, is_done, user_id) VALUES (?, ?, ?)`,
		todo.Title,
		todo.IsDone,
		todo.UserID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting todo: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading new todo id: %w", err)
	}
	todo.ID = id

	return nil
}

// Update replaces the title and done flag of an item owned by todo.UserID.
// RowsAffected == 0 means absent-or-foreign → not found.
func (db *TodoDB) Update(ctx context.Context, todo *model.Todo) error {
	res, err := db.conn.ExecContext(ctx,
		`UPDATE todos SET title = ?, is_done = ? WHERE id = ? AND user_id = ?`,
		todo.Title,
		todo.IsDone,
		todo.ID,
		todo.UserID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating todo %d: %w", todo.ID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking todo update result: %w", err)
	}
	if affected == 0 {
		return apperror.NotFound("todo item", todo.ID)
	}

	return nil
}

// Delete removes an item owned by userID.
func (db *TodoDB) Delete(ctx context.Context, id, userID int64) error {
	res, err := db.conn.ExecContext(ctx,
		`DELETE FROM todos WHERE id = ? AND user_id = ?`,
		id, userID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: deleting todo %d: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking todo delete result: %w", err)
	}
	if affected == 0 {
		return apperror.NotFound("todo item", id)
	}

	return nil
}
