package repository

import (
	"github.com/reshetovitsme/tg-link-rewriter/internal/modules/settings/domain"
)

// Repository persists the settings record.
type Repository interface {
	// Load returns nil, nil when no settings file exists yet.
	Load() (*domain.Settings, error)
	Save(settings *domain.Settings) error
}
