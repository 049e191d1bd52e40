package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/odovalley/odo-valley-api/internal/domain"
	"github.com/odovalley/odo-valley-api/internal/repository/ports"
)

const (
	defaultRating = 4.5
	defaultColor  = "#3B82F6"
)

// DestinationInput carries the raw multipart form values for a create or
// update. Nil means the field was absent; list fields arrive JSON-encoded.
type DestinationInput struct {
	Title       *string
	Description *string
	Price       *string
	Rating      *string
	Color       *string
	Featured    *string
	Tags        *string
	Highlights  *string
	ImageURL    *string
	Image       *Upload
}

type DestinationService struct {
	destinations ports.DestinationRepository
	uploads      *Uploader
}

func NewDestinationService(destinations ports.DestinationRepository, uploads *Uploader) *DestinationService {
	return &DestinationService{destinations: destinations, uploads: uploads}
}

func (s *DestinationService) List(ctx context.Context, featuredOnly bool) ([]domain.Destination, error) {
	return s.destinations.List(ctx, domain.DestinationListFilter{FeaturedOnly: featuredOnly})
}

func (s *DestinationService) Get(ctx context.Context, id uuid.UUID) (*domain.Destination, error) {
	dest, err := s.destinations.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrDestinationNotFound
		}
		return nil, err
	}
	return dest, nil
}

func (s *DestinationService) Create(ctx context.Context, input DestinationInput) (*domain.Destination, error) {
	errs := fieldErrors{}

	title, ok := textValue(input.Title)
	if !ok {
		errs.add("title", "Title is required")
	}
	description, ok := textValue(input.Description)
	if !ok {
		errs.add("description", "Description is required")
	}
	price, ok := textValue(input.Price)
	if !ok {
		errs.add("price", "Price is required")
	}

	rating := defaultRating
	if raw, ok := textValue(input.Rating); ok {
		if v, valid := parseRating(raw, 0, 5); valid {
			rating = v
		} else {
			errs.add("rating", "Rating must be a number between 0 and 5")
		}
	}

	tags := []string{}
	if raw, ok := textValue(input.Tags); ok {
		if list, valid := parseStringList(raw); valid {
			tags = list
		} else {
			errs.add("tags", "Invalid tags format")
		}
	}
	highlights := []string{}
	if raw, ok := textValue(input.Highlights); ok {
		if list, valid := parseStringList(raw); valid {
			highlights = list
		} else {
			errs.add("highlights", "Invalid highlights format")
		}
	}

	imageURL, hasImageURL := textValue(input.ImageURL)
	if input.Image == nil && !hasImageURL {
		errs.add("image", "Image is required")
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

	image := imageURL
	if input.Image != nil {
		stored, err := s.uploads.Store(ctx, input.Image)
		if err != nil {
			return nil, err
		}
		image = stored
	}

	return s.destinations.Create(ctx, &domain.Destination{
		Title:       title,
		Description: description,
		Image:       image,
		Rating:      rating,
		Price:       price,
		Color:       color,
		Tags:        tags,
		Highlights:  highlights,
		Featured:    featured,
	})
}

func (s *DestinationService) Update(ctx context.Context, id uuid.UUID, input DestinationInput) (*domain.Destination, error) {
	errs := fieldErrors{}
	update := domain.DestinationUpdate{}

	if v, ok := textValue(input.Title); ok {
		update.Title = &v
	}
	if v, ok := textValue(input.Description); ok {
		update.Description = &v
	}
	if v, ok := textValue(input.Price); ok {
		update.Price = &v
	}
	if v, ok := textValue(input.Color); ok {
		update.Color = &v
	}
	if raw, ok := textValue(input.Rating); ok {
		if v, valid := parseRating(raw, 0, 5); valid {
			update.Rating = &v
		} else {
			errs.add("rating", "Rating must be a number between 0 and 5")
		}
	}
	if raw, ok := textValue(input.Tags); ok {
		if list, valid := parseStringList(raw); valid {
			update.Tags = &list
		} else {
			errs.add("tags", "Invalid tags format")
		}
	}
	if raw, ok := textValue(input.Highlights); ok {
		if list, valid := parseStringList(raw); valid {
			update.Highlights = &list
		} else {
			errs.add("highlights", "Invalid highlights format")
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
		update.Image = &stored
	} else if v, ok := textValue(input.ImageURL); ok {
		update.Image = &v
	}

	dest, err := s.destinations.Update(ctx, id, update)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrDestinationNotFound
		}
		return nil, err
	}
	return dest, nil
}

func (s *DestinationService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.destinations.Delete(ctx, id); err != nil {
		if isNotFound(err) {
			return ErrDestinationNotFound
		}
		return err
	}
	return nil
}
