package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/odovalley/odo-valley-api/internal/domain"
)

type HeroCardRepository interface {
	Create(ctx context.Context, card *domain.HeroCard) (*domain.HeroCard, error)
	Update(ctx context.Context, id uuid.UUID, update domain.HeroCardUpdate) (*domain.HeroCard, error)
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.HeroCard, error)
	ListActive(ctx context.Context) ([]domain.HeroCard, error)
	ListAll(ctx context.Context) ([]domain.HeroCard, error)
	ToggleActive(ctx context.Context, id uuid.UUID) (*domain.HeroCard, error)
}
