package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/odovalley/odo-valley-api/internal/domain"
	"github.com/odovalley/odo-valley-api/internal/repository/ports"
)

type TestimonialInput struct {
	Name     *string
	Role     *string
	Content  *string
	Location *string
	Rating   *string
	Color    *string
	Featured *string
	ImageURL *string
	Image    *Upload
}

type TestimonialService struct {
	testimonials ports.TestimonialRepository
	uploads      *Uploader
}

func NewTestimonialService(testimonials ports.TestimonialRepository, uploads *Uploader) *TestimonialService {
	return &TestimonialService{testimonials: testimonials, uploads: uploads}
}

func (s *TestimonialService) List(ctx context.Context, featuredOnly bool) ([]domain.Testimonial, error) {
	return s.testimonials.List(ctx, domain.TestimonialListFilter{FeaturedOnly: featuredOnly})
}

func (s *TestimonialService) Get(ctx context.Context, id uuid.UUID) (*domain.Testimonial, error) {
	testimonial, err := s.testimonials.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrTestimonialNotFound
		}
		return nil, err
	}
	return testimonial, nil
}

func (s *TestimonialService) Create(ctx context.Context, input TestimonialInput) (*domain.Testimonial, error) {
	errs := fieldErrors{}

	name, ok := textValue(input.Name)
	if !ok {
		errs.add("name", "Name is required")
	}
	role, ok := textValue(input.Role)
	if !ok {
		errs.add("role", "Role is required")
	}
	content, ok := textValue(input.Content)
	if !ok {
		errs.add("content", "Content is required")
	}
	location, ok := textValue(input.Location)
	if !ok {
		errs.add("location", "Location is required")
	}

	// Testimonial rating has no default; the author must rate 1-5.
	var rating float64
	if raw, ok := textValue(input.Rating); ok {
		if v, valid := parseRating(raw, 1, 5); valid {
			rating = v
		} else {
			errs.add("rating", "Rating must be a number between 1 and 5")
		}
	} else {
		errs.add("rating", "Rating is required")
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

	return s.testimonials.Create(ctx, &domain.Testimonial{
		Name:     name,
		Role:     role,
		Image:    image,
		Content:  content,
		Location: location,
		Rating:   rating,
		Color:    color,
		Featured: featured,
	})
}

func (s *TestimonialService) Update(ctx context.Context, id uuid.UUID, input TestimonialInput) (*domain.Testimonial, error) {
	errs := fieldErrors{}
	update := domain.TestimonialUpdate{}

	if v, ok := textValue(input.Name); ok {
		update.Name = &v
	}
	if v, ok := textValue(input.Role); ok {
		update.Role = &v
	}
	if v, ok := textValue(input.Content); ok {
		update.Content = &v
	}
	if v, ok := textValue(input.Location); ok {
		update.Location = &v
	}
	if v, ok := textValue(input.Color); ok {
		update.Color = &v
	}
	if raw, ok := textValue(input.Rating); ok {
		if v, valid := parseRating(raw, 1, 5); valid {
			update.Rating = &v
		} else {
			errs.add("rating", "Rating must be a number between 1 and 5")
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

	testimonial, err := s.testimonials.Update(ctx, id, update)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrTestimonialNotFound
		}
		return nil, err
	}
	return testimonial, nil
}

func (s *TestimonialService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.testimonials.Delete(ctx, id); err != nil {
		if isNotFound(err) {
			return ErrTestimonialNotFound
		}
		return err
	}
	return nil
}
