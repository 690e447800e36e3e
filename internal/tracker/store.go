package tracker

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"courtside/pkg/models"
)

// Store persists the tracked-item sequence. FileStore is the real
// implementation; tests substitute in-memory doubles.
type Store interface {
	Load() ([]models.TrackedItem, error)
	Save(items []models.TrackedItem) error
}

// FileStore keeps the sequence as a JSON array in a single file. Every save
// rewrites the file in full, there are no partial or merge writes.
type FileStore struct {
	path string
}

// NewFileStore creates a store backed by the file at path. The file does not
// need to exist yet.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the whole sequence. A missing file is an empty sequence;
// unreadable content is an error for the caller to degrade on.
func (s *FileStore) Load() ([]models.TrackedItem, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read tracked items: %w", err)
	}

	var items []models.TrackedItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to parse tracked items: %w", err)
	}
	return items, nil
}

// Save rewrites the whole sequence.
func (s *FileStore) Save(items []models.TrackedItem) error {
	if items == nil {
		items = []models.TrackedItem{}
	}

	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode tracked items: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create storage directory: %w", err)
		}
	}

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write tracked items: %w", err)
	}
	return nil
}
