package service

import (
	"bytes"
	"context"
	"database/sql"
	"io"
	"sort"

	"github.com/google/uuid"

	"github.com/odovalley/odo-valley-api/internal/domain"
)

func str(v string) *string {
	return &v
}

// captureStorage records uploads and serves them back as /uploads paths.
type captureStorage struct {
	uploads  int
	lastName string
	lastType string
	lastData []byte
	err      error
}

func (s *captureStorage) Upload(ctx context.Context, bucket, objectName, contentType string, reader io.Reader, size int64) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	s.uploads++
	s.lastName = objectName
	s.lastType = contentType
	s.lastData = data
	return "/uploads/" + objectName, nil
}

func newTestUploader(storage *captureStorage) *Uploader {
	return NewUploader(storage, nil, "odo-images", 0)
}

func testUpload(data, name, contentType string) *Upload {
	return &Upload{
		Reader:      bytes.NewReader([]byte(data)),
		Size:        int64(len(data)),
		FileName:    name,
		ContentType: contentType,
	}
}

type memoryDestinationRepo struct {
	items map[uuid.UUID]*domain.Destination
	order []uuid.UUID
}

func newMemoryDestinationRepo() *memoryDestinationRepo {
	return &memoryDestinationRepo{items: make(map[uuid.UUID]*domain.Destination)}
}

func (r *memoryDestinationRepo) Create(ctx context.Context, dest *domain.Destination) (*domain.Destination, error) {
	stored := *dest
	stored.ID = uuid.New()
	r.items[stored.ID] = &stored
	r.order = append(r.order, stored.ID)
	out := stored
	return &out, nil
}

func (r *memoryDestinationRepo) Update(ctx context.Context, id uuid.UUID, update domain.DestinationUpdate) (*domain.Destination, error) {
	stored, ok := r.items[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	if update.Title != nil {
		stored.Title = *update.Title
	}
	if update.Description != nil {
		stored.Description = *update.Description
	}
	if update.Image != nil {
		stored.Image = *update.Image
	}
	if update.Rating != nil {
		stored.Rating = *update.Rating
	}
	if update.Price != nil {
		stored.Price = *update.Price
	}
	if update.Color != nil {
		stored.Color = *update.Color
	}
	if update.Tags != nil {
		stored.Tags = append([]string(nil), *update.Tags...)
	}
	if update.Highlights != nil {
		stored.Highlights = append([]string(nil), *update.Highlights...)
	}
	if update.Featured != nil {
		stored.Featured = *update.Featured
	}
	out := *stored
	return &out, nil
}

func (r *memoryDestinationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.items[id]; !ok {
		return sql.ErrNoRows
	}
	delete(r.items, id)
	return nil
}

func (r *memoryDestinationRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Destination, error) {
	stored, ok := r.items[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	out := *stored
	return &out, nil
}

func (r *memoryDestinationRepo) List(ctx context.Context, filter domain.DestinationListFilter) ([]domain.Destination, error) {
	out := []domain.Destination{}
	for _, id := range r.order {
		stored, ok := r.items[id]
		if !ok {
			continue
		}
		if filter.FeaturedOnly && !stored.Featured {
			continue
		}
		out = append(out, *stored)
	}
	return out, nil
}

type memoryTourRepo struct {
	items map[uuid.UUID]*domain.Tour
	order []uuid.UUID
}

func newMemoryTourRepo() *memoryTourRepo {
	return &memoryTourRepo{items: make(map[uuid.UUID]*domain.Tour)}
}

func (r *memoryTourRepo) Create(ctx context.Context, tour *domain.Tour) (*domain.Tour, error) {
	stored := *tour
	stored.ID = uuid.New()
	r.items[stored.ID] = &stored
	r.order = append(r.order, stored.ID)
	out := stored
	return &out, nil
}

func (r *memoryTourRepo) Update(ctx context.Context, id uuid.UUID, update domain.TourUpdate) (*domain.Tour, error) {
	stored, ok := r.items[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	if update.Title != nil {
		stored.Title = *update.Title
	}
	if update.Description != nil {
		stored.Description = *update.Description
	}
	if update.Image != nil {
		stored.Image = *update.Image
	}
	if update.Days != nil {
		stored.Days = *update.Days
	}
	if update.Price != nil {
		stored.Price = *update.Price
	}
	if update.Rating != nil {
		stored.Rating = *update.Rating
	}
	if update.Color != nil {
		stored.Color = *update.Color
	}
	if update.Features != nil {
		stored.Features = append([]string(nil), *update.Features...)
	}
	if update.Locations != nil {
		stored.Locations = append([]string(nil), *update.Locations...)
	}
	if update.Featured != nil {
		stored.Featured = *update.Featured
	}
	out := *stored
	return &out, nil
}

func (r *memoryTourRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.items[id]; !ok {
		return sql.ErrNoRows
	}
	delete(r.items, id)
	return nil
}

func (r *memoryTourRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Tour, error) {
	stored, ok := r.items[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	out := *stored
	return &out, nil
}

func (r *memoryTourRepo) List(ctx context.Context, filter domain.TourListFilter) ([]domain.Tour, error) {
	out := []domain.Tour{}
	for _, id := range r.order {
		stored, ok := r.items[id]
		if !ok {
			continue
		}
		if filter.FeaturedOnly && !stored.Featured {
			continue
		}
		out = append(out, *stored)
	}
	return out, nil
}

type memoryTestimonialRepo struct {
	items map[uuid.UUID]*domain.Testimonial
	order []uuid.UUID
}

func newMemoryTestimonialRepo() *memoryTestimonialRepo {
	return &memoryTestimonialRepo{items: make(map[uuid.UUID]*domain.Testimonial)}
}

func (r *memoryTestimonialRepo) Create(ctx context.Context, testimonial *domain.Testimonial) (*domain.Testimonial, error) {
	stored := *testimonial
	stored.ID = uuid.New()
	r.items[stored.ID] = &stored
	r.order = append(r.order, stored.ID)
	out := stored
	return &out, nil
}

func (r *memoryTestimonialRepo) Update(ctx context.Context, id uuid.UUID, update domain.TestimonialUpdate) (*domain.Testimonial, error) {
	stored, ok := r.items[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	if update.Name != nil {
		stored.Name = *update.Name
	}
	if update.Role != nil {
		stored.Role = *update.Role
	}
	if update.Image != nil {
		stored.Image = *update.Image
	}
	if update.Content != nil {
		stored.Content = *update.Content
	}
	if update.Location != nil {
		stored.Location = *update.Location
	}
	if update.Rating != nil {
		stored.Rating = *update.Rating
	}
	if update.Color != nil {
		stored.Color = *update.Color
	}
	if update.Featured != nil {
		stored.Featured = *update.Featured
	}
	out := *stored
	return &out, nil
}

func (r *memoryTestimonialRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.items[id]; !ok {
		return sql.ErrNoRows
	}
	delete(r.items, id)
	return nil
}

func (r *memoryTestimonialRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Testimonial, error) {
	stored, ok := r.items[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	out := *stored
	return &out, nil
}

func (r *memoryTestimonialRepo) List(ctx context.Context, filter domain.TestimonialListFilter) ([]domain.Testimonial, error) {
	out := []domain.Testimonial{}
	for _, id := range r.order {
		stored, ok := r.items[id]
		if !ok {
			continue
		}
		if filter.FeaturedOnly && !stored.Featured {
			continue
		}
		out = append(out, *stored)
	}
	return out, nil
}

type memoryGalleryRepo struct {
	items map[uuid.UUID]*domain.GalleryItem
	order []uuid.UUID
}

func newMemoryGalleryRepo() *memoryGalleryRepo {
	return &memoryGalleryRepo{items: make(map[uuid.UUID]*domain.GalleryItem)}
}

func (r *memoryGalleryRepo) Create(ctx context.Context, item *domain.GalleryItem) (*domain.GalleryItem, error) {
	stored := *item
	stored.ID = uuid.New()
	r.items[stored.ID] = &stored
	r.order = append(r.order, stored.ID)
	out := stored
	return &out, nil
}

func (r *memoryGalleryRepo) Update(ctx context.Context, id uuid.UUID, update domain.GalleryUpdate) (*domain.GalleryItem, error) {
	stored, ok := r.items[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	if update.Src != nil {
		stored.Src = *update.Src
	}
	if update.Alt != nil {
		stored.Alt = *update.Alt
	}
	if update.Category != nil {
		stored.Category = *update.Category
	}
	if update.Color != nil {
		stored.Color = *update.Color
	}
	if update.Featured != nil {
		stored.Featured = *update.Featured
	}
	if update.Order != nil {
		stored.Order = *update.Order
	}
	out := *stored
	return &out, nil
}

func (r *memoryGalleryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.items[id]; !ok {
		return sql.ErrNoRows
	}
	delete(r.items, id)
	return nil
}

func (r *memoryGalleryRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.GalleryItem, error) {
	stored, ok := r.items[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	out := *stored
	return &out, nil
}

func (r *memoryGalleryRepo) List(ctx context.Context, filter domain.GalleryListFilter) ([]domain.GalleryItem, error) {
	out := []domain.GalleryItem{}
	for _, id := range r.order {
		stored, ok := r.items[id]
		if !ok {
			continue
		}
		if filter.Category != "" && stored.Category != filter.Category {
			continue
		}
		if filter.FeaturedOnly && !stored.Featured {
			continue
		}
		out = append(out, *stored)
	}
	return out, nil
}

func (r *memoryGalleryRepo) ListCategories(ctx context.Context) ([]string, error) {
	seen := make(map[string]bool)
	for _, stored := range r.items {
		seen[stored.Category] = true
	}
	out := make([]string, 0, len(seen))
	for category := range seen {
		out = append(out, category)
	}
	sort.Strings(out)
	return out, nil
}

func (r *memoryGalleryRepo) Reorder(ctx context.Context, updates []domain.GalleryOrderUpdate) error {
	for _, update := range updates {
		if stored, ok := r.items[update.ID]; ok {
			stored.Order = update.Order
		}
	}
	return nil
}

type memoryHeroCardRepo struct {
	items map[uuid.UUID]*domain.HeroCard
	order []uuid.UUID
}

func newMemoryHeroCardRepo() *memoryHeroCardRepo {
	return &memoryHeroCardRepo{items: make(map[uuid.UUID]*domain.HeroCard)}
}

func (r *memoryHeroCardRepo) Create(ctx context.Context, card *domain.HeroCard) (*domain.HeroCard, error) {
	stored := *card
	stored.ID = uuid.New()
	r.items[stored.ID] = &stored
	r.order = append(r.order, stored.ID)
	out := stored
	return &out, nil
}

func (r *memoryHeroCardRepo) Update(ctx context.Context, id uuid.UUID, update domain.HeroCardUpdate) (*domain.HeroCard, error) {
	stored, ok := r.items[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	if update.Title != nil {
		stored.Title = *update.Title
	}
	if update.Description != nil {
		stored.Description = *update.Description
	}
	if update.Icon != nil {
		stored.Icon = *update.Icon
	}
	if update.Image != nil {
		stored.Image = *update.Image
	}
	if update.Stat != nil {
		stored.Stat = *update.Stat
	}
	if update.StatLabel != nil {
		stored.StatLabel = *update.StatLabel
	}
	if update.Color != nil {
		stored.Color = *update.Color
	}
	if update.Order != nil {
		stored.Order = *update.Order
	}
	if update.IsActive != nil {
		stored.IsActive = *update.IsActive
	}
	out := *stored
	return &out, nil
}

func (r *memoryHeroCardRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.items[id]; !ok {
		return sql.ErrNoRows
	}
	delete(r.items, id)
	return nil
}

func (r *memoryHeroCardRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.HeroCard, error) {
	stored, ok := r.items[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	out := *stored
	return &out, nil
}

func (r *memoryHeroCardRepo) ListActive(ctx context.Context) ([]domain.HeroCard, error) {
	out := []domain.HeroCard{}
	for _, id := range r.order {
		stored, ok := r.items[id]
		if !ok || !stored.IsActive {
			continue
		}
		out = append(out, *stored)
	}
	return out, nil
}

func (r *memoryHeroCardRepo) ListAll(ctx context.Context) ([]domain.HeroCard, error) {
	out := []domain.HeroCard{}
	for _, id := range r.order {
		stored, ok := r.items[id]
		if !ok {
			continue
		}
		out = append(out, *stored)
	}
	return out, nil
}

func (r *memoryHeroCardRepo) ToggleActive(ctx context.Context, id uuid.UUID) (*domain.HeroCard, error) {
	stored, ok := r.items[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	stored.IsActive = !stored.IsActive
	out := *stored
	return &out, nil
}

type memoryUserRepo struct {
	byID    map[uuid.UUID]*domain.User
	byEmail map[string]*domain.User
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{
		byID:    make(map[uuid.UUID]*domain.User),
		byEmail: make(map[string]*domain.User),
	}
}

func (r *memoryUserRepo) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	stored := *user
	if stored.ID == uuid.Nil {
		stored.ID = uuid.New()
	}
	r.byID[stored.ID] = &stored
	r.byEmail[stored.Email] = &stored
	out := stored
	return &out, nil
}

func (r *memoryUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	stored, ok := r.byEmail[email]
	if !ok {
		return nil, sql.ErrNoRows
	}
	out := *stored
	return &out, nil
}

func (r *memoryUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	stored, ok := r.byID[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	out := *stored
	return &out, nil
}
