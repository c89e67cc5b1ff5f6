package service

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/reshetovitsme/tg-link-rewriter/internal/modules/settings/domain"
	"github.com/reshetovitsme/tg-link-rewriter/internal/modules/settings/repository"
	"github.com/reshetovitsme/tg-link-rewriter/internal/shared/errors"
	"github.com/samber/oops"
)

// Store holds the current settings snapshot, mirrored write-through to the
// repository. Updates are serialized; Get reads the snapshot pointer without
// observing partial writes.
type Store struct {
	repo repository.Repository
	now  func() time.Time

	mu      sync.RWMutex
	current *domain.Settings
}

// New loads settings, creating the default record when no file exists yet.
// A failed write of the defaults is logged, not fatal: the store still runs
// with in-memory defaults and the next successful update persists them.
func New(repo repository.Repository) (*Store, error) {
	return newStore(repo, time.Now)
}

func newStore(repo repository.Repository, now func() time.Time) (*Store, error) {
	settings, err := repo.Load()
	if err != nil {
		return nil, oops.With("context", "failed to load settings").Wrap(err)
	}
	if settings == nil {
		def := domain.Default(now())
		settings = &def
		if err := repo.Save(settings); err != nil {
			slog.Warn("Failed to write default settings, continuing in memory", "error", err)
		} else {
			slog.Info("Created default settings", "created_at", def.CreatedAt)
		}
	}
	return &Store{repo: repo, now: now, current: settings}, nil
}

// Get returns the current settings snapshot.
func (s *Store) Get() domain.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return *s.current
}

// UpdateDetectionText sets the detection marker. Empty text after trimming is
// rejected without touching the stored record.
func (s *Store) UpdateDetectionText(text string) (domain.Settings, error) {
	return s.update(func(next *domain.Settings, v string) { next.DetectionText = v }, text)
}

// UpdateLinkText sets the rewritten-link display label. Same validation as
// UpdateDetectionText.
func (s *Store) UpdateLinkText(text string) (domain.Settings, error) {
	return s.update(func(next *domain.Settings, v string) { next.LinkText = v }, text)
}

func (s *Store) update(apply func(*domain.Settings, string), text string) (domain.Settings, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return s.Get(), errors.ErrEmptyText
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := *s.current // created_at carries over untouched
	apply(&next, text)
	next.LastUpdated = s.now().Format(domain.DateLayout)

	if err := s.repo.Save(&next); err != nil {
		return *s.current, oops.With("context", "failed to persist settings").Wrap(err)
	}
	s.current = &next
	return next, nil
}
