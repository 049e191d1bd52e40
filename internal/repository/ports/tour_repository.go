package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/odovalley/odo-valley-api/internal/domain"
)

type TourRepository interface {
	Create(ctx context.Context, tour *domain.Tour) (*domain.Tour, error)
	Update(ctx context.Context, id uuid.UUID, update domain.TourUpdate) (*domain.Tour, error)
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Tour, error)
	List(ctx context.Context, filter domain.TourListFilter) ([]domain.Tour, error)
}
