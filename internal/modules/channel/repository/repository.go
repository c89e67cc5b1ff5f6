package repository

import (
	"github.com/reshetovitsme/tg-link-rewriter/internal/modules/channel/domain"
)

// Repository persists the ordered watched-channel list.
type Repository interface {
	Load() ([]domain.Identifier, error)
	Save(channels []domain.Identifier) error
}
