package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/resume-builder/internal/profile"
)

// -----------------------------------------------------------------------------
// Profile Methods
// -----------------------------------------------------------------------------

// SaveProfile inserts or replaces the configuration stored under name
func (db *DB) SaveProfile(ctx context.Context, name string, config map[string]any, updatedBy *uuid.UUID) error {
	jsonBytes, err := json.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal profile %s: %w", name, err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO profiles (name, config, updated_by)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (name) DO UPDATE SET config = $2, updated_by = $3, updated_at = NOW()`,
		name, jsonBytes, updatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save profile %s: %w", name, err)
	}
	return nil
}

// GetProfile retrieves a stored profile by name. It returns nil when none exists.
func (db *DB) GetProfile(ctx context.Context, name string) (*StoredProfile, error) {
	var p StoredProfile
	var config []byte
	err := db.pool.QueryRow(ctx,
		`SELECT name, config, updated_by, created_at, updated_at
		 FROM profiles WHERE name = $1`,
		name,
	).Scan(&p.Name, &config, &p.UpdatedBy, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get profile %s: %w", name, err)
	}

	if err := json.Unmarshal(config, &p.Config); err != nil {
		return nil, fmt.Errorf("failed to decode profile %s: %w", name, err)
	}
	return &p, nil
}

// ListProfiles returns the names of all stored profiles in alphabetical order
func (db *DB) ListProfiles(ctx context.Context) ([]string, error) {
	rows, err := db.pool.Query(ctx, `SELECT name FROM profiles ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan profile name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	return names, nil
}

// DeleteProfile removes a stored profile. It reports whether a row was deleted.
func (db *DB) DeleteProfile(ctx context.Context, name string) (bool, error) {
	tag, err := db.pool.Exec(ctx, `DELETE FROM profiles WHERE name = $1`, name)
	if err != nil {
		return false, fmt.Errorf("failed to delete profile %s: %w", name, err)
	}
	return tag.RowsAffected() > 0, nil
}

// -----------------------------------------------------------------------------
// Profile Source
// -----------------------------------------------------------------------------

// profileStore is the subset of DB used by ProfileSource
type profileStore interface {
	GetProfile(ctx context.Context, name string) (*StoredProfile, error)
	ListProfiles(ctx context.Context) ([]string, error)
}

// ProfileSource serves profiles from the database
type ProfileSource struct {
	store profileStore
}

// NewProfileSource returns a profile.Source backed by db
func NewProfileSource(db *DB) *ProfileSource {
	return &ProfileSource{store: db}
}

// Load implements profile.Source
func (s *ProfileSource) Load(ctx context.Context, name string) (*profile.Profile, error) {
	stored, err := s.store.GetProfile(ctx, name)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, &profile.ProfileNotFoundError{Name: name, Path: "database"}
	}
	return stored.Profile()
}

// List implements profile.Source
func (s *ProfileSource) List(ctx context.Context) ([]string, error) {
	return s.store.ListProfiles(ctx)
}
