package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/odovalley/odo-valley-api/internal/domain"
	"github.com/odovalley/odo-valley-api/internal/repository/ports"
)

type GalleryInput struct {
	Alt      *string
	Category *string
	Color    *string
	Featured *string
	Order    *string
	SrcURL   *string
	Image    *Upload
}

type GalleryService struct {
	gallery ports.GalleryRepository
	uploads *Uploader
}

func NewGalleryService(gallery ports.GalleryRepository, uploads *Uploader) *GalleryService {
	return &GalleryService{gallery: gallery, uploads: uploads}
}

// List filters by category when one is given; "all" means no filter, matching
// the admin UI's category dropdown.
func (s *GalleryService) List(ctx context.Context, category string, featuredOnly bool) ([]domain.GalleryItem, error) {
	category = strings.TrimSpace(category)
	if strings.EqualFold(category, "all") {
		category = ""
	}
	return s.gallery.List(ctx, domain.GalleryListFilter{Category: category, FeaturedOnly: featuredOnly})
}

func (s *GalleryService) Categories(ctx context.Context) ([]string, error) {
	return s.gallery.ListCategories(ctx)
}

func (s *GalleryService) Get(ctx context.Context, id uuid.UUID) (*domain.GalleryItem, error) {
	item, err := s.gallery.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrGalleryItemNotFound
		}
		return nil, err
	}
	return item, nil
}

func (s *GalleryService) Create(ctx context.Context, input GalleryInput) (*domain.GalleryItem, error) {
	errs := fieldErrors{}

	alt, ok := textValue(input.Alt)
	if !ok {
		errs.add("alt", "Title is required")
	}
	category, ok := textValue(input.Category)
	if !ok {
		errs.add("category", "Category is required")
	}

	order := 0
	if raw, ok := textValue(input.Order); ok {
		if v, valid := parseIntField(raw); valid && v >= 0 {
			order = v
		} else {
			errs.add("order", "Order must be a non-negative integer")
		}
	}

	srcURL, hasSrcURL := textValue(input.SrcURL)
	if input.Image == nil && !hasSrcURL {
		errs.add("src", "Image is required")
	}

	if err := errs.err(); err != nil {
		return nil, err
	}

	color := defaultColor
	if v, ok := textValue(input.Color); ok {
		color = v
	}
	featured := false
	if raw, ok := textValue(input.Featured); ok {
		if flag := parseBoolFlag(raw); flag != nil {
			featured = *flag
		}
	}

	src := srcURL
	if input.Image != nil {
		stored, err := s.uploads.Store(ctx, input.Image)
		if err != nil {
			return nil, err
		}
		src = stored
	}

	return s.gallery.Create(ctx, &domain.GalleryItem{
		Src:      src,
		Alt:      alt,
		Category: category,
		Color:    color,
		Featured: featured,
		Order:    order,
	})
}

func (s *GalleryService) Update(ctx context.Context, id uuid.UUID, input GalleryInput) (*domain.GalleryItem, error) {
	errs := fieldErrors{}
	update := domain.GalleryUpdate{}

	if v, ok := textValue(input.Alt); ok {
		update.Alt = &v
	}
	if v, ok := textValue(input.Category); ok {
		update.Category = &v
	}
	if v, ok := textValue(input.Color); ok {
		update.Color = &v
	}
	if raw, ok := textValue(input.Order); ok {
		if v, valid := parseIntField(raw); valid && v >= 0 {
			update.Order = &v
		} else {
			errs.add("order", "Order must be a non-negative integer")
		}
	}
	if raw, ok := textValue(input.Featured); ok {
		update.Featured = parseBoolFlag(raw)
	}

	if err := errs.err(); err != nil {
		return nil, err
	}

	if input.Image != nil {
		stored, err := s.uploads.Store(ctx, input.Image)
		if err != nil {
			return nil, err
		}
		update.Src = &stored
	} else if v, ok := textValue(input.SrcURL); ok {
		update.Src = &v
	}

	item, err := s.gallery.Update(ctx, id, update)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrGalleryItemNotFound
		}
		return nil, err
	}
	return item, nil
}

func (s *GalleryService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.gallery.Delete(ctx, id); err != nil {
		if isNotFound(err) {
			return ErrGalleryItemNotFound
		}
		return err
	}
	return nil
}

func (s *GalleryService) Reorder(ctx context.Context, items []domain.GalleryOrderUpdate) error {
	if len(items) == 0 {
		return &ValidationError{Fields: map[string]string{"items": "Items array is required"}}
	}
	for _, item := range items {
		if item.ID == uuid.Nil {
			return &ValidationError{Fields: map[string]string{"items": "Each item needs a valid id"}}
		}
	}
	return s.gallery.Reorder(ctx, items)
}
