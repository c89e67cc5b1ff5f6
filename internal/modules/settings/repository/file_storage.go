package repository

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/reshetovitsme/tg-link-rewriter/internal/modules/settings/domain"
	"github.com/samber/oops"
)

// FileStorage implements Repository on a JSON file.
type FileStorage struct {
	path string
}

// NewFileStorage creates a file-based settings repository.
func NewFileStorage(path string) (Repository, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, oops.With("path", path, "context", "failed to create storage directory").Wrap(err)
	}
	return &FileStorage{path: path}, nil
}

func (s *FileStorage) Load() (*domain.Settings, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, oops.With("path", s.path, "context", "failed to read settings").Wrap(err)
	}

	var settings domain.Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, oops.With("path", s.path, "context", "failed to unmarshal settings").Wrap(err)
	}
	return &settings, nil
}

func (s *FileStorage) Save(settings *domain.Settings) error {
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return oops.With("path", s.path, "context", "failed to marshal settings").Wrap(err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return oops.With("path", s.path, "context", "failed to write settings").Wrap(err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return oops.With("path", s.path, "context", "failed to replace settings").Wrap(err)
	}
	return nil
}
