package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/odovalley/odo-valley-api/internal/domain"
)

type GalleryRepository interface {
	Create(ctx context.Context, item *domain.GalleryItem) (*domain.GalleryItem, error)
	Update(ctx context.Context, id uuid.UUID, update domain.GalleryUpdate) (*domain.GalleryItem, error)
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.GalleryItem, error)
	List(ctx context.Context, filter domain.GalleryListFilter) ([]domain.GalleryItem, error)
	ListCategories(ctx context.Context) ([]string, error)
	Reorder(ctx context.Context, updates []domain.GalleryOrderUpdate) error
}
