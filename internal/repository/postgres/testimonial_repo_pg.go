package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/odovalley/odo-valley-api/internal/domain"
	"github.com/odovalley/odo-valley-api/internal/repository/ports"
)

const testimonialColumns = `id, name, role, image, content, location, rating, color, featured, created_at, updated_at`

type TestimonialRepository struct {
	db *sqlx.DB
}

func NewTestimonialRepo(db *sqlx.DB) *TestimonialRepository {
	return &TestimonialRepository{db: db}
}

func (r *TestimonialRepository) Create(ctx context.Context, testimonial *domain.Testimonial) (*domain.Testimonial, error) {
	const query = `
		INSERT INTO testimonial (name, role, image, content, location, rating, color, featured)
		VALUES (:name, :role, :image, :content, :location, :rating, :color, :featured)
		RETURNING ` + testimonialColumns

	rows, err := r.db.NamedQueryContext(ctx, query, map[string]any{
		"name":     testimonial.Name,
		"role":     testimonial.Role,
		"image":    testimonial.Image,
		"content":  testimonial.Content,
		"location": testimonial.Location,
		"rating":   testimonial.Rating,
		"color":    testimonial.Color,
		"featured": testimonial.Featured,
	})
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if rows.Next() {
		var stored domain.Testimonial
		if err = rows.StructScan(&stored); err != nil {
			return nil, err
		}
		return &stored, nil
	}
	return nil, sql.ErrNoRows
}

func (r *TestimonialRepository) Update(ctx context.Context, id uuid.UUID, update domain.TestimonialUpdate) (*domain.Testimonial, error) {
	setParts := []string{"updated_at = NOW()"}
	args := []any{}
	idx := 1

	appendSet := func(column string, value any) {
		setParts = append(setParts, fmt.Sprintf("%s = $%d", column, idx))
		args = append(args, value)
		idx++
	}

	if update.Name != nil {
		appendSet("name", *update.Name)
	}
	if update.Role != nil {
		appendSet("role", *update.Role)
	}
	if update.Image != nil {
		appendSet("image", *update.Image)
	}
	if update.Content != nil {
		appendSet("content", *update.Content)
	}
	if update.Location != nil {
		appendSet("location", *update.Location)
	}
	if update.Rating != nil {
		appendSet("rating", *update.Rating)
	}
	if update.Color != nil {
		appendSet("color", *update.Color)
	}
	if update.Featured != nil {
		appendSet("featured", *update.Featured)
	}

	query := fmt.Sprintf(`
		UPDATE testimonial
		SET %s
		WHERE id = $%d
		RETURNING %s
	`, strings.Join(setParts, ", "), idx, testimonialColumns)
	args = append(args, id)

	var testimonial domain.Testimonial
	if err := r.db.GetContext(ctx, &testimonial, query, args...); err != nil {
		return nil, err
	}
	return &testimonial, nil
}

func (r *TestimonialRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM testimonial WHERE id = $1`, id)
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

func (r *TestimonialRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Testimonial, error) {
	query := `SELECT ` + testimonialColumns + ` FROM testimonial WHERE id = $1`
	var testimonial domain.Testimonial
	if err := r.db.GetContext(ctx, &testimonial, query, id); err != nil {
		return nil, err
	}
	return &testimonial, nil
}

func (r *TestimonialRepository) List(ctx context.Context, filter domain.TestimonialListFilter) ([]domain.Testimonial, error) {
	var builder strings.Builder
	builder.WriteString(`SELECT ` + testimonialColumns + ` FROM testimonial`)
	if filter.FeaturedOnly {
		builder.WriteString(` WHERE featured = TRUE`)
	}
	builder.WriteString(` ORDER BY created_at DESC`)

	testimonials := make([]domain.Testimonial, 0)
	if err := r.db.SelectContext(ctx, &testimonials, builder.String()); err != nil {
		return nil, err
	}
	return testimonials, nil
}

var _ ports.TestimonialRepository = (*TestimonialRepository)(nil)
