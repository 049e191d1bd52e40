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

const galleryColumns = `id, src, alt, category, color, featured, ordering, created_at, updated_at`

type GalleryRepository struct {
	db *sqlx.DB
}

func NewGalleryRepo(db *sqlx.DB) *GalleryRepository {
	return &GalleryRepository{db: db}
}

func (r *GalleryRepository) Create(ctx context.Context, item *domain.GalleryItem) (*domain.GalleryItem, error) {
	const query = `
		INSERT INTO gallery_item (src, alt, category, color, featured, ordering)
		VALUES (:src, :alt, :category, :color, :featured, :ordering)
		RETURNING ` + galleryColumns

	rows, err := r.db.NamedQueryContext(ctx, query, map[string]any{
		"src":      item.Src,
		"alt":      item.Alt,
		"category": item.Category,
		"color":    item.Color,
		"featured": item.Featured,
		"ordering": item.Order,
	})
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if rows.Next() {
		var stored domain.GalleryItem
		if err = rows.StructScan(&stored); err != nil {
			return nil, err
		}
		return &stored, nil
	}
	return nil, sql.ErrNoRows
}

func (r *GalleryRepository) Update(ctx context.Context, id uuid.UUID, update domain.GalleryUpdate) (*domain.GalleryItem, error) {
	setParts := []string{"updated_at = NOW()"}
	args := []any{}
	idx := 1

	appendSet := func(column string, value any) {
		setParts = append(setParts, fmt.Sprintf("%s = $%d", column, idx))
		args = append(args, value)
		idx++
	}

	if update.Src != nil {
		appendSet("src", *update.Src)
	}
	if update.Alt != nil {
		appendSet("alt", *update.Alt)
	}
	if update.Category != nil {
		appendSet("category", *update.Category)
	}
	if update.Color != nil {
		appendSet("color", *update.Color)
	}
	if update.Featured != nil {
		appendSet("featured", *update.Featured)
	}
	if update.Order != nil {
		appendSet("ordering", *update.Order)
	}

	query := fmt.Sprintf(`
		UPDATE gallery_item
		SET %s
		WHERE id = $%d
		RETURNING %s
	`, strings.Join(setParts, ", "), idx, galleryColumns)
	args = append(args, id)

	var item domain.GalleryItem
	if err := r.db.GetContext(ctx, &item, query, args...); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *GalleryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM gallery_item WHERE id = $1`, id)
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

func (r *GalleryRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.GalleryItem, error) {
	query := `SELECT ` + galleryColumns + ` FROM gallery_item WHERE id = $1`
	var item domain.GalleryItem
	if err := r.db.GetContext(ctx, &item, query, id); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *GalleryRepository) List(ctx context.Context, filter domain.GalleryListFilter) ([]domain.GalleryItem, error) {
	var builder strings.Builder
	builder.WriteString(`SELECT ` + galleryColumns + ` FROM gallery_item`)

	conditions := make([]string, 0, 2)
	params := make([]any, 0, 1)
	if category := strings.TrimSpace(filter.Category); category != "" {
		conditions = append(conditions, fmt.Sprintf("category = $%d", len(params)+1))
		params = append(params, category)
	}
	if filter.FeaturedOnly {
		conditions = append(conditions, "featured = TRUE")
	}
	if len(conditions) > 0 {
		builder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	builder.WriteString(` ORDER BY ordering ASC, created_at DESC`)

	items := make([]domain.GalleryItem, 0)
	if err := r.db.SelectContext(ctx, &items, builder.String(), params...); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GalleryRepository) ListCategories(ctx context.Context) ([]string, error) {
	categories := make([]string, 0)
	if err := r.db.SelectContext(ctx, &categories, `SELECT DISTINCT category FROM gallery_item ORDER BY category ASC`); err != nil {
		return nil, err
	}
	return categories, nil
}

// Reorder applies all ordering updates in a single transaction so a partial
// failure leaves the previous ordering intact.
func (r *GalleryRepository) Reorder(ctx context.Context, updates []domain.GalleryOrderUpdate) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, update := range updates {
		if _, err := tx.ExecContext(ctx, `UPDATE gallery_item SET ordering = $1, updated_at = NOW() WHERE id = $2`, update.Order, update.ID); err != nil {
			return err
		}
	}
	return tx.Commit()
}

var _ ports.GalleryRepository = (*GalleryRepository)(nil)
