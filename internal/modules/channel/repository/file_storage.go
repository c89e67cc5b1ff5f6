package repository

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/reshetovitsme/tg-link-rewriter/internal/modules/channel/domain"
	"github.com/samber/oops"
)

const fileHeader = `# Watched channel list
# One channel per line, either of:
#   -1001234567890
#   @channel_username
# Lines starting with # are ignored.

`

// FileStorage implements Repository on a line-oriented text file.
type FileStorage struct {
	path string
}

// NewFileStorage creates a file-based channel repository.
func NewFileStorage(path string) (Repository, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, oops.With("path", path, "context", "failed to create storage directory").Wrap(err)
	}
	return &FileStorage{path: path}, nil
}

// Load reads the channel list. A missing file yields an empty list. Blank
// lines and # comments are skipped; malformed lines are logged and skipped,
// never fatal.
func (s *FileStorage) Load() ([]domain.Identifier, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, oops.With("path", s.path, "context", "failed to read channel list").Wrap(err)
	}

	var channels []domain.Identifier
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		id, err := domain.Parse(line)
		if err != nil {
			slog.Warn("Skipping malformed channel entry", "path", s.path, "line", line)
			continue
		}
		channels = append(channels, id)
	}
	return channels, nil
}

// Save rewrites the whole file, header comment included. The write goes to a
// temp file in the same directory and is renamed into place so a crash never
// leaves a truncated list.
func (s *FileStorage) Save(channels []domain.Identifier) error {
	var b strings.Builder
	b.WriteString(fileHeader)
	for _, id := range channels {
		b.WriteString(id.String())
		b.WriteByte('\n')
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, []byte(b.String()), 0644); err != nil {
		return oops.With("path", s.path, "context", "failed to write channel list").Wrap(err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return oops.With("path", s.path, "context", "failed to replace channel list").Wrap(err)
	}
	return nil
}
