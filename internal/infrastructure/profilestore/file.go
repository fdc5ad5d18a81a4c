package profilestore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dietcheck/backend/internal/domain"
)

// FileStore persists the dietary profile as an indented JSON document at a
// fixed path.
type FileStore struct {
	path string
}

// NewFileStore creates a file-backed profile store.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the saved profile. A missing file is not an error; it returns
// (nil, nil) meaning "no saved profile".
func (s *FileStore) Load() (*domain.DietaryProfile, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading profile file: %w", err)
	}

	var profile domain.DietaryProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("parsing profile file: %w", err)
	}
	return &profile, nil
}

// Save writes the profile, creating the parent directory if needed.
func (s *FileStore) Save(profile *domain.DietaryProfile) error {
	if profile == nil {
		return domain.ErrInvalidRequest
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating profile directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding profile: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("writing profile file: %w", err)
	}
	return nil
}

// Delete removes the saved profile document. Deleting an absent file is a
// no-op.
func (s *FileStore) Delete() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing profile file: %w", err)
	}
	return nil
}
