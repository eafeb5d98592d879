package db

import (
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-builder/internal/profile"
)

// StoredProfile is a profile configuration persisted in the profiles table
type StoredProfile struct {
	Name      string         `json:"name"`
	Config    map[string]any `json:"config"`
	UpdatedBy *uuid.UUID     `json:"updated_by,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// Profile checks the stored configuration and returns the typed profile
func (s *StoredProfile) Profile() (*profile.Profile, error) {
	return profile.FromMap(s.Name, s.Config)
}
