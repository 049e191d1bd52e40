package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/odovalley/odo-valley-api/internal/domain"
)

type TestimonialRepository interface {
	Create(ctx context.Context, testimonial *domain.Testimonial) (*domain.Testimonial, error)
	Update(ctx context.Context, id uuid.UUID, update domain.TestimonialUpdate) (*domain.Testimonial, error)
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Testimonial, error)
	List(ctx context.Context, filter domain.TestimonialListFilter) ([]domain.Testimonial, error)
}
