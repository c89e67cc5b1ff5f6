package service

import (
	"sync"

	"github.com/reshetovitsme/tg-link-rewriter/internal/modules/channel/domain"
	"github.com/reshetovitsme/tg-link-rewriter/internal/modules/channel/repository"
	"github.com/samber/lo"
	"github.com/samber/oops"
)

// Store is the in-memory watched-channel set, mirrored write-through to the
// repository. Mutations are serialized; reads see an immutable snapshot that
// is replaced atomically after a successful persist, so a failed write never
// becomes visible.
type Store struct {
	repo repository.Repository

	mu       sync.RWMutex
	channels []domain.Identifier // immutable snapshot, insertion order
}

// New loads the durable channel list into a new store.
func New(repo repository.Repository) (*Store, error) {
	channels, err := repo.Load()
	if err != nil {
		return nil, oops.With("context", "failed to load channel list").Wrap(err)
	}
	return &Store{repo: repo, channels: channels}, nil
}

// List returns the watched channels in insertion order.
func (s *Store) List() []domain.Identifier {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Identifier(nil), s.channels...)
}

// Count returns the number of watched channels.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.channels)
}

// Add appends a channel if not already present. Returns false when the
// channel was already watched; that is not an error. The new list is
// persisted before it becomes visible.
func (s *Store) Add(id domain.Identifier) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if lo.ContainsBy(s.channels, func(c domain.Identifier) bool { return c.Key() == id.Key() }) {
		return false, nil
	}

	next := append(append([]domain.Identifier(nil), s.channels...), id)
	if err := s.repo.Save(next); err != nil {
		return false, oops.With("channel", id.String(), "context", "failed to persist channel list").Wrap(err)
	}
	s.channels = next
	return true, nil
}

// Remove deletes a channel. Returns false when it was not present; that is
// not an error.
func (s *Store) Remove(id domain.Identifier) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := lo.Reject(s.channels, func(c domain.Identifier, _ int) bool { return c.Key() == id.Key() })
	if len(next) == len(s.channels) {
		return false, nil
	}

	if err := s.repo.Save(next); err != nil {
		return false, oops.With("channel", id.String(), "context", "failed to persist channel list").Wrap(err)
	}
	s.channels = next
	return true, nil
}

// Contains reports whether a Telegram chat is a watched channel, matching by
// numeric ID or by username (case-insensitive, with or without @).
func (s *Store) Contains(chatID int64, username string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.channels {
		if c.Matches(chatID, username) {
			return true
		}
	}
	return false
}
