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

const heroCardColumns = `id, title, description, icon, image, stat, stat_label, color, ordering, is_active, created_at, updated_at`

type HeroCardRepository struct {
	db *sqlx.DB
}

func NewHeroCardRepo(db *sqlx.DB) *HeroCardRepository {
	return &HeroCardRepository{db: db}
}

func (r *HeroCardRepository) Create(ctx context.Context, card *domain.HeroCard) (*domain.HeroCard, error) {
	const query = `
		INSERT INTO hero_card (title, description, icon, image, stat, stat_label, color, ordering, is_active)
		VALUES (:title, :description, :icon, :image, :stat, :stat_label, :color, :ordering, :is_active)
		RETURNING ` + heroCardColumns

	rows, err := r.db.NamedQueryContext(ctx, query, map[string]any{
		"title":       card.Title,
		"description": card.Description,
		"icon":        card.Icon,
		"image":       card.Image,
		"stat":        card.Stat,
		"stat_label":  card.StatLabel,
		"color":       card.Color,
		"ordering":    card.Order,
		"is_active":   card.IsActive,
	})
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if rows.Next() {
		var stored domain.HeroCard
		if err = rows.StructScan(&stored); err != nil {
			return nil, err
		}
		return &stored, nil
	}
	return nil, sql.ErrNoRows
}

func (r *HeroCardRepository) Update(ctx context.Context, id uuid.UUID, update domain.HeroCardUpdate) (*domain.HeroCard, error) {
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
	if update.Icon != nil {
		appendSet("icon", *update.Icon)
	}
	if update.Image != nil {
		appendSet("image", *update.Image)
	}
	if update.Stat != nil {
		appendSet("stat", *update.Stat)
	}
	if update.StatLabel != nil {
		appendSet("stat_label", *update.StatLabel)
	}
	if update.Color != nil {
		appendSet("color", *update.Color)
	}
	if update.Order != nil {
		appendSet("ordering", *update.Order)
	}
	if update.IsActive != nil {
		appendSet("is_active", *update.IsActive)
	}

	query := fmt.Sprintf(`
		UPDATE hero_card
		SET %s
		WHERE id = $%d
		RETURNING %s
	`, strings.Join(setParts, ", "), idx, heroCardColumns)
	args = append(args, id)

	var card domain.HeroCard
	if err := r.db.GetContext(ctx, &card, query, args...); err != nil {
		return nil, err
	}
	return &card, nil
}

func (r *HeroCardRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM hero_card WHERE id = $1`, id)
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

func (r *HeroCardRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.HeroCard, error) {
	query := `SELECT ` + heroCardColumns + ` FROM hero_card WHERE id = $1`
	var card domain.HeroCard
	if err := r.db.GetContext(ctx, &card, query, id); err != nil {
		return nil, err
	}
	return &card, nil
}

func (r *HeroCardRepository) ListActive(ctx context.Context) ([]domain.HeroCard, error) {
	query := `SELECT ` + heroCardColumns + ` FROM hero_card WHERE is_active = TRUE ORDER BY ordering ASC, created_at DESC`
	cards := make([]domain.HeroCard, 0)
	if err := r.db.SelectContext(ctx, &cards, query); err != nil {
		return nil, err
	}
	return cards, nil
}

func (r *HeroCardRepository) ListAll(ctx context.Context) ([]domain.HeroCard, error) {
	query := `SELECT ` + heroCardColumns + ` FROM hero_card ORDER BY ordering ASC, created_at DESC`
	cards := make([]domain.HeroCard, 0)
	if err := r.db.SelectContext(ctx, &cards, query); err != nil {
		return nil, err
	}
	return cards, nil
}

// ToggleActive flips is_active atomically in the store so concurrent toggles
// always alternate instead of racing a read-modify-write.
func (r *HeroCardRepository) ToggleActive(ctx context.Context, id uuid.UUID) (*domain.HeroCard, error) {
	query := `
		UPDATE hero_card
		SET is_active = NOT is_active, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + heroCardColumns
	var card domain.HeroCard
	if err := r.db.GetContext(ctx, &card, query, id); err != nil {
		return nil, err
	}
	return &card, nil
}

var _ ports.HeroCardRepository = (*HeroCardRepository)(nil)
