package service

import (
	"context"
	"net/url"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/odovalley/odo-valley-api/internal/domain"
	"github.com/odovalley/odo-valley-api/internal/repository/ports"
)

const (
	defaultHeroIcon  = "🌱"
	defaultHeroColor = "from-green-400 to-emerald-500"
)

// HeroCardInput is the JSON payload for hero card create/update. Hero cards
// are the one resource without file uploads; the image is always a URL.
type HeroCardInput struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Icon        *string `json:"icon"`
	Image       *string `json:"image"`
	Stat        *string `json:"stat"`
	StatLabel   *string `json:"statLabel"`
	Color       *string `json:"color"`
	Order       *int    `json:"order"`
	IsActive    *bool   `json:"isActive"`
}

type HeroCardService struct {
	cards ports.HeroCardRepository
}

func NewHeroCardService(cards ports.HeroCardRepository) *HeroCardService {
	return &HeroCardService{cards: cards}
}

// ListActive is the public listing; inactive cards never appear.
func (s *HeroCardService) ListActive(ctx context.Context) ([]domain.HeroCard, error) {
	return s.cards.ListActive(ctx)
}

func (s *HeroCardService) ListAll(ctx context.Context) ([]domain.HeroCard, error) {
	return s.cards.ListAll(ctx)
}

func (s *HeroCardService) Get(ctx context.Context, id uuid.UUID) (*domain.HeroCard, error) {
	card, err := s.cards.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrHeroCardNotFound
		}
		return nil, err
	}
	return card, nil
}

func (s *HeroCardService) Create(ctx context.Context, input HeroCardInput) (*domain.HeroCard, error) {
	errs := fieldErrors{}

	title := requireBounded(errs, "title", input.Title, 100, "Title must be 1-100 characters")
	description := requireBounded(errs, "description", input.Description, 500, "Description must be 1-500 characters")
	stat := requireBounded(errs, "stat", input.Stat, 20, "Stat must be 1-20 characters")
	statLabel := requireBounded(errs, "statLabel", input.StatLabel, 50, "Stat label must be 1-50 characters")

	icon := defaultHeroIcon
	if raw, ok := textValue(input.Icon); ok {
		if utf8.RuneCountInString(raw) > 10 {
			errs.add("icon", "Icon must be 1-10 characters")
		} else {
			icon = raw
		}
	}
	color := defaultHeroColor
	if raw, ok := textValue(input.Color); ok {
		if utf8.RuneCountInString(raw) > 100 {
			errs.add("color", "Color must be 1-100 characters")
		} else {
			color = raw
		}
	}

	image, ok := textValue(input.Image)
	if !ok || !isHTTPURL(image) {
		errs.add("image", "Image must be a valid URL")
	}

	order := 0
	if input.Order != nil {
		if *input.Order < 0 {
			errs.add("order", "Order must be a non-negative integer")
		} else {
			order = *input.Order
		}
	}

	if err := errs.err(); err != nil {
		return nil, err
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	return s.cards.Create(ctx, &domain.HeroCard{
		Title:       title,
		Description: description,
		Icon:        icon,
		Image:       image,
		Stat:        stat,
		StatLabel:   statLabel,
		Color:       color,
		Order:       order,
		IsActive:    isActive,
	})
}

func (s *HeroCardService) Update(ctx context.Context, id uuid.UUID, input HeroCardInput) (*domain.HeroCard, error) {
	errs := fieldErrors{}
	update := domain.HeroCardUpdate{}

	if v := boundedUpdate(errs, "title", input.Title, 100, "Title must be 1-100 characters"); v != nil {
		update.Title = v
	}
	if v := boundedUpdate(errs, "description", input.Description, 500, "Description must be 1-500 characters"); v != nil {
		update.Description = v
	}
	if v := boundedUpdate(errs, "icon", input.Icon, 10, "Icon must be 1-10 characters"); v != nil {
		update.Icon = v
	}
	if v := boundedUpdate(errs, "stat", input.Stat, 20, "Stat must be 1-20 characters"); v != nil {
		update.Stat = v
	}
	if v := boundedUpdate(errs, "statLabel", input.StatLabel, 50, "Stat label must be 1-50 characters"); v != nil {
		update.StatLabel = v
	}
	if v := boundedUpdate(errs, "color", input.Color, 100, "Color must be 1-100 characters"); v != nil {
		update.Color = v
	}
	if raw, ok := textValue(input.Image); ok {
		if isHTTPURL(raw) {
			update.Image = &raw
		} else {
			errs.add("image", "Image must be a valid URL")
		}
	}
	if input.Order != nil {
		if *input.Order < 0 {
			errs.add("order", "Order must be a non-negative integer")
		} else {
			update.Order = input.Order
		}
	}
	update.IsActive = input.IsActive

	if err := errs.err(); err != nil {
		return nil, err
	}

	card, err := s.cards.Update(ctx, id, update)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrHeroCardNotFound
		}
		return nil, err
	}
	return card, nil
}

// Toggle flips isActive and nothing else, returning the updated card.
func (s *HeroCardService) Toggle(ctx context.Context, id uuid.UUID) (*domain.HeroCard, error) {
	card, err := s.cards.ToggleActive(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrHeroCardNotFound
		}
		return nil, err
	}
	return card, nil
}

func (s *HeroCardService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.cards.Delete(ctx, id); err != nil {
		if isNotFound(err) {
			return ErrHeroCardNotFound
		}
		return err
	}
	return nil
}

func requireBounded(errs fieldErrors, field string, raw *string, maxRunes int, message string) string {
	v, ok := textValue(raw)
	if !ok || utf8.RuneCountInString(v) > maxRunes {
		errs.add(field, message)
		return ""
	}
	return v
}

func boundedUpdate(errs fieldErrors, field string, raw *string, maxRunes int, message string) *string {
	v, ok := textValue(raw)
	if !ok {
		return nil
	}
	if utf8.RuneCountInString(v) > maxRunes {
		errs.add(field, message)
		return nil
	}
	return &v
}

func isHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
