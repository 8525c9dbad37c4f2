package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sakif/todo-api/internal/apperror"
	"github.com/sakif/todo-api/internal/model"
	"github.com/sakif/todo-api/internal/repository"
)

// ProfileDB is the user-profile store view of the shared connection pool.
// Obtain one via DB.Profiles.
type ProfileDB struct {
	conn *sql.DB
}

// Compile-time check that *ProfileDB implements repository.UserProfileRepository.
var _ repository.UserProfileRepository = (*ProfileDB)(nil)

// List returns all user profiles, oldest first.
func (db *ProfileDB) List(ctx context.Context) ([]model.UserProfile, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, first_name, last_name, email, birth_date FROM user_profiles ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing user profiles: %w", err)
	}
	defer rows.Close()

	profiles := []model.UserProfile{}
	for rows.Next() {
		var p model.UserProfile
		if err := rows.Scan(&p.ID, &p.FirstName, &p.LastName, &p.Email, &p.BirthDate); err != nil {
			return nil, fmt.Errorf("sqlite: scanning user profile: %w", err)
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating user profiles: %w", err)
	}

	return profiles, nil
}

// GetByID retrieves a single profile.
// Returns apperror.ErrNotFound if no profile exists with that ID.
func (db *ProfileDB) GetByID(ctx context.Context, id int64) (*model.UserProfile, error) {
	var p model.UserProfile
	err := db.conn.QueryRowContext(ctx,
		`SELECT id, first_name, last_name, email, birth_date FROM user_profiles WHERE id = ?`,
		id,
	).Scan(&p.ID, &p.FirstName, &p.LastName, &p.Email, &p.BirthDate)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("user profile", id)
		}
		return nil, fmt.Errorf("sqlite: getting user profile %d: %w", id, err)
	}

	return &p, nil
}

// Create inserts a new profile and fills in the generated ID.
func (db *ProfileDB) Create(ctx context.Context, profile *model.UserProfile) error {
	res, err := db.conn.ExecContext(ctx,
		`INSERT INTO user_profiles (first_name, last_name, email, birth_date)
		 VALUES (?, ?, ?, ?)`,
		profile.FirstName,
		profile.LastName,
		profile.Email,
		profile.BirthDate,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting user profile: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading new user profile id: %w", err)
	}
	profile.ID = id

	return nil
}

// Update replaces all mutable fields of an existing profile.
func (db *ProfileDB) Update(ctx context.Context, profile *model.UserProfile) error {
	res, err := db.conn.ExecContext(ctx,
		`UPDATE user_profiles SET first_name = ?, last_name = ?, email = ?, birth_date = ?
		 WHERE id = ?`,
		profile.FirstName,
		profile.LastName,
		profile.Email,
		profile.BirthDate,
		profile.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating user profile %d: %w", profile.ID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking user profile update result: %w", err)
	}
	if affected == 0 {
		return apperror.NotFound("user profile", profile.ID)
	}

	return nil
}

// Delete removes a profile.
func (db *ProfileDB) Delete(ctx context.Context, id int64) error {
	res, err := db.conn.ExecContext(ctx, `DELETE FROM user_profiles WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting user profile %d: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking user profile delete result: %w", err)
	}
	if affected == 0 {
		return apperror.NotFound("user profile", id)
	}

	return nil
}
