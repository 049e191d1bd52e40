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

const destinationColumns = `id, title, description, image, rating, price, color, tags, highlights, featured, created_at, updated_at`

type DestinationRepository struct {
	db *sqlx.DB
}

func NewDestinationRepo(db *sqlx.DB) *DestinationRepository {
	return &DestinationRepository{db: db}
}

func (r *DestinationRepository) Create(ctx context.Context, dest *domain.Destination) (*domain.Destination, error) {
	const query = `
		INSERT INTO destination (title, description, image, rating, price, color, tags, highlights, featured)
		VALUES (:title, :description, :image, :rating, :price, :color, :tags, :highlights, :featured)
		RETURNING ` + destinationColumns

	rows, err := r.db.NamedQueryContext(ctx, query, map[string]any{
		"title":       dest.Title,
		"description": dest.Description,
		"image":       dest.Image,
		"rating":      dest.Rating,
		"price":       dest.Price,
		"color":       dest.Color,
		"tags":        stringArray(dest.Tags),
		"highlights":  stringArray(dest.Highlights),
		"featured":    dest.Featured,
	})
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if rows.Next() {
		var stored domain.Destination
		if err = rows.StructScan(&stored); err != nil {
			return nil, err
		}
		return &stored, nil
	}
	return nil, sql.ErrNoRows
}

func (r *DestinationRepository) Update(ctx context.Context, id uuid.UUID, update domain.DestinationUpdate) (*domain.Destination, error) {
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
	if update.Rating != nil {
		appendSet("rating", *update.Rating)
	}
	if update.Price != nil {
		appendSet("price", *update.Price)
	}
	if update.Color != nil {
		appendSet("color", *update.Color)
	}
	if update.Tags != nil {
		appendSet("tags", pq.StringArray(*update.Tags))
	}
	if update.Highlights != nil {
		appendSet("highlights", pq.StringArray(*update.Highlights))
	}
	if update.Featured != nil {
		appendSet("featured", *update.Featured)
	}

	query := fmt.Sprintf(`
		UPDATE destination
		SET %s
		WHERE id = $%d
		RETURNING %s
	`, strings.Join(setParts, ", "), idx, destinationColumns)
	args = append(args, id)

	var dest domain.Destination
	if err := r.db.GetContext(ctx, &dest, query, args...); err != nil {
		return nil, err
	}
	return &dest, nil
}

func (r *DestinationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM destination WHERE id = $1`, id)
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

func (r *DestinationRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Destination, error) {
	query := `SELECT ` + destinationColumns + ` FROM destination WHERE id = $1`
	var dest domain.Destination
	if err := r.db.GetContext(ctx, &dest, query, id); err != nil {
		return nil, err
	}
	return &dest, nil
}

func (r *DestinationRepository) List(ctx context.Context, filter domain.DestinationListFilter) ([]domain.Destination, error) {
	var builder strings.Builder
	builder.WriteString(`SELECT ` + destinationColumns + ` FROM destination`)
	if filter.FeaturedOnly {
		builder.WriteString(` WHERE featured = TRUE`)
	}
	builder.WriteString(` ORDER BY created_at DESC`)

	destinations := make([]domain.Destination, 0)
	if err := r.db.SelectContext(ctx, &destinations, builder.String()); err != nil {
		return nil, err
	}
	return destinations, nil
}

func stringArray(values []string) pq.StringArray {
	if values == nil {
		return pq.StringArray{}
	}
	return pq.StringArray(values)
}

var _ ports.DestinationRepository = (*DestinationRepository)(nil)
