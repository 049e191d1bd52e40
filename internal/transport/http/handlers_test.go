package http

import (
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/odovalley/odo-valley-api/internal/domain"
	"github.com/odovalley/odo-valley-api/internal/service"
	"github.com/odovalley/odo-valley-api/internal/util"
)

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
	if update.Price != nil {
		stored.Price = *update.Price
	}
	if update.Image != nil {
		stored.Image = *update.Image
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
		if stored, ok := r.items[id]; ok && stored.IsActive {
			out = append(out, *stored)
		}
	}
	return out, nil
}

func (r *memoryHeroCardRepo) ListAll(ctx context.Context) ([]domain.HeroCard, error) {
	out := []domain.HeroCard{}
	for _, id := range r.order {
		if stored, ok := r.items[id]; ok {
			out = append(out, *stored)
		}
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

type nullStorage struct{}

func (nullStorage) Upload(ctx context.Context, bucket, objectName, contentType string, reader io.Reader, size int64) (string, error) {
	return "/uploads/" + objectName, nil
}

// testServer wires an Echo instance against in-memory repositories and a
// seeded admin user, returning a bearer token for the admin routes.
type testServer struct {
	e            *echo.Echo
	auth         *service.AuthService
	destinations *memoryDestinationRepo
	cards        *memoryHeroCardRepo
	adminToken   string
	userToken    string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	users := newMemoryUserRepo()
	hash, salt, err := util.DerivePassword("admin-pw")
	if err != nil {
		t.Fatalf("DerivePassword returned error: %v", err)
	}
	admin, err := users.Create(context.Background(), &domain.User{
		Email:        "admin@odovalley.com",
		Name:         "Admin",
		PasswordHash: hash,
		PasswordSalt: salt,
		Role:         domain.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("seeding admin returned error: %v", err)
	}
	viewer, err := users.Create(context.Background(), &domain.User{
		Email:        "viewer@odovalley.com",
		Name:         "Viewer",
		PasswordHash: hash,
		PasswordSalt: salt,
		Role:         "viewer",
	})
	if err != nil {
		t.Fatalf("seeding viewer returned error: %v", err)
	}

	jwtManager := util.NewJWTManager("test-secret", time.Hour)
	auth := service.NewAuthService(users, jwtManager, "")

	adminToken, _, err := jwtManager.Generate(admin.ID, admin.Email, admin.Role)
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	userToken, _, err := jwtManager.Generate(viewer.ID, viewer.Email, viewer.Role)
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	destRepo := newMemoryDestinationRepo()
	cardRepo := newMemoryHeroCardRepo()
	uploader := service.NewUploader(nullStorage{}, nil, "odo-images", 0)

	e := NewRouter(RouterConfig{AllowOrigins: []string{"*"}})
	RegisterAuth(e, auth)
	RegisterDestinations(e, auth, service.NewDestinationService(destRepo, uploader))
	RegisterHeroCards(e, auth, service.NewHeroCardService(cardRepo))

	return &testServer{
		e:            e,
		auth:         auth,
		destinations: destRepo,
		cards:        cardRepo,
		adminToken:   adminToken,
		userToken:    userToken,
	}
}

func (ts *testServer) request(t *testing.T, method, path, token, contentType string, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	ts.e.ServeHTTP(rec, req)
	return rec
}

func (ts *testServer) postForm(t *testing.T, path, token string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	return ts.request(t, http.MethodPost, path, token, echo.MIMEApplicationForm, form.Encode())
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v (%s)", err, rec.Body.String())
	}
	return body
}
