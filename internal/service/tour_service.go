package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/odovalley/odo-valley-api/internal/domain"
	"github.com/odovalley/odo-valley-api/internal/repository/ports"
)

type TourInput struct {
	Title       *string
	Description *string
	Days        *string
	Price       *string
	Rating      *string
	Color       *string
	Featured    *string
	Features    *string
	Locations   *string
	ImageURL    *string
	Image       *Upload
}

type TourService struct {
	tours   ports.TourRepository
	uploads *Uploader
}

func NewTourService(tours ports.TourRepository, uploads *Uploader) *TourService {
	return &TourService{tours: tours, uploads: uploads}
}

func (s *TourService) List(ctx context.Context, featuredOnly bool) ([]domain.Tour, error) {
	return s.tours.List(ctx, domain.TourListFilter{FeaturedOnly: featuredOnly})
}

func (s *TourService) Get(ctx context.Context, id uuid.UUID) (*domain.Tour, error) {
	tour, err := s.tours.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrTourNotFound
		}
		return nil, err
	}
	return tour, nil
}

func (s *TourService) Create(ctx context.Context, input TourInput) (*domain.Tour, error) {
	errs := fieldErrors{}

	title, ok := textValue(input.Title)
	if !ok {
		errs.add("title", "Title is required")
	}
	description, ok := textValue(input.Description)
	if !ok {
		errs.add("description", "Description is required")
	}

	var days int
	if raw, ok := textValue(input.Days); ok {
		if v, valid := parseIntField(raw); valid && v >= 1 {
			days = v
		} else {
			errs.add("days", "Days must be a positive integer")
		}
	} else {
		errs.add("days", "Days is required")
	}

	var price float64
	if raw, ok := textValue(input.Price); ok {
		if v, valid := parseFloatField(raw); valid && v >= 0 {
			price = v
		} else {
			errs.add("price", "Price must be a number")
		}
	} else {
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

	features := []string{}
	if raw, ok := textValue(input.Features); ok {
		if list, valid := parseStringList(raw); valid {
			features = list
		} else {
			errs.add("features", "Invalid features format")
		}
	}
	locations := []string{}
	if raw, ok := textValue(input.Locations); ok {
		if list, valid := parseStringList(raw); valid {
			locations = list
		} else {
			errs.add("locations", "Invalid locations format")
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

	return s.tours.Create(ctx, &domain.Tour{
		Title:       title,
		Description: description,
		Image:       image,
		Days:        days,
		Price:       price,
		Rating:      rating,
		Color:       color,
		Features:    features,
		Locations:   locations,
		Featured:    featured,
	})
}

func (s *TourService) Update(ctx context.Context, id uuid.UUID, input TourInput) (*domain.Tour, error) {
	errs := fieldErrors{}
	update := domain.TourUpdate{}

	if v, ok := textValue(input.Title); ok {
		update.Title = &v
	}
	if v, ok := textValue(input.Description); ok {
		update.Description = &v
	}
	if v, ok := textValue(input.Color); ok {
		update.Color = &v
	}
	if raw, ok := textValue(input.Days); ok {
		if v, valid := parseIntField(raw); valid && v >= 1 {
			update.Days = &v
		} else {
			errs.add("days", "Days must be a positive integer")
		}
	}
	if raw, ok := textValue(input.Price); ok {
		if v, valid := parseFloatField(raw); valid && v >= 0 {
			update.Price = &v
		} else {
			errs.add("price", "Price must be a number")
		}
	}
	if raw, ok := textValue(input.Rating); ok {
		if v, valid := parseRating(raw, 0, 5); valid {
			update.Rating = &v
		} else {
			errs.add("rating", "Rating must be a number between 0 and 5")
		}
	}
	if raw, ok := textValue(input.Features); ok {
		if list, valid := parseStringList(raw); valid {
			update.Features = &list
		} else {
			errs.add("features", "Invalid features format")
		}
	}
	if raw, ok := textValue(input.Locations); ok {
		if list, valid := parseStringList(raw); valid {
			update.Locations = &list
		} else {
			errs.add("locations", "Invalid locations format")
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

	tour, err := s.tours.Update(ctx, id, update)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrTourNotFound
		}
		return nil, err
	}
	return tour, nil
}

func (s *TourService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.tours.Delete(ctx, id); err != nil {
		if isNotFound(err) {
			return ErrTourNotFound
		}
		return err
	}
	return nil
}
