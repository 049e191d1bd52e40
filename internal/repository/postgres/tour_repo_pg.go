package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/odovalley/odo-valley-api/internal/domain"
	"github.com/odovalley/odo-valley-api/internal/repository/ports"
)

const tourColumns = `id, title, description, image, days, price, rating, color, features, locations, featured, created_at, updated_at`

type TourRepository struct {
	db *sqlx.DB
}

func NewTourRepo(db *sqlx.DB) *TourRepository {
	return &TourRepository{db: db}
}

func (r *TourRepository) Create(ctx context.Context, tour *domain.Tour) (*domain.Tour, error) {
	const query = `
		INSERT INTO tour (title, description, image, days, price, rating, color, features, locations, featured)
		VALUES (:title, :description, :image, :days, :price, :rating, :color, :features, :locations, :featured)
		RETURNING ` + tourColumns

	rows, err := r.db.NamedQueryContext(ctx, query, map[string]any{
		"title":       tour.Title,
		"description": tour.Description,
		"image":       tour.Image,
		"days":        tour.Days,
		"price":       tour.Price,
		"rating":      tour.Rating,
		"color":       tour.Color,
		"features":    stringArray(tour.Features),
		"locations":   stringArray(tour.Locations),
		"featured":    tour.Featured,
	})
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if rows.Next() {
		var stored domain.Tour
		if err = rows.StructScan(&stored); err != nil {
			return nil, err
		}
		return &stored, nil
	}
	return nil, sql.ErrNoRows
}

func (r *TourRepository) Update(ctx context.Context, id uuid.UUID, update domain.TourUpdate) (*domain.Tour, error) {
	setParts := []string{"updated_at = NOW()"}
	args := []any{}
	idx := 1

	appendSet := func(column string, value any) {
		setParts = append(setParts, fmt.Sprintf("%s = $%d", column, idx))
		args = append(args, value)
		idx++
	}

	if update.Title != nil {
		appendSet("title", *update.Title)
	}
	if update.Description != nil {
		appendSet("description", *update.Description)
	}
	if update.Image != nil {
		appendSet("image", *update.Image)
	}
	if update.Days != nil {
		appendSet("days", *update.Days)
	}
	if update.Price != nil {
		appendSet("price", *update.Price)
	}
	if update.Rating != nil {
		appendSet("rating", *update.Rating)
	}
	if update.Color != nil {
		appendSet("color", *update.Color)
	}
	if update.Features != nil {
		appendSet("features", pq.StringArray(*update.Features))
	}
	if update.Locations != nil {
		appendSet("locations", pq.StringArray(*update.Locations))
	}
	if update.Featured != nil {
		appendSet("featured", *update.Featured)
	}

	query := fmt.Sprintf(`
		UPDATE tour
		SET %s
		WHERE id = $%d
		RETURNING %s
	`, strings.Join(setParts, ", "), idx, tourColumns)
	args = append(args, id)

	var tour domain.Tour
	if err := r.db.GetContext(ctx, &tour, query, args...); err != nil {
		return nil, err
	}
	return &tour, nil
}

func (r *TourRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tour WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *TourRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Tour, error) {
	query := `SELECT ` + tourColumns + ` FROM tour WHERE id = $1`
	var tour domain.Tour
	if err := r.db.GetContext(ctx, &tour, query, id); err != nil {
		return nil, err
	}
	return &tour, nil
}

func (r *TourRepository) List(ctx context.Context, filter domain.TourListFilter) ([]domain.Tour, error) {
	var builder strings.Builder
	builder.WriteString(`SELECT ` + tourColumns + ` FROM tour`)
	if filter.FeaturedOnly {
		builder.WriteString(` WHERE featured = TRUE`)
	}
	builder.WriteString(` ORDER BY created_at DESC`)

	tours := make([]domain.Tour, 0)
	if err := r.db.SelectContext(ctx, &tours, builder.String()); err != nil {
		return nil, err
	}
	return tours, nil
}

var _ ports.TourRepository = (*TourRepository)(nil)
