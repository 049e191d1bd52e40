package domain

import (
	"time"

	"github.com/google/uuid"
)

type HeroCard struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	Icon        string    `db:"icon" json:"icon"`
	Image       string    `db:"image" json:"image"`
	Stat        string    `db:"stat" json:"stat"`
	StatLabel   string    `db:"stat_label" json:"statLabel"`
	Color       string    `db:"color" json:"color"`
	Order       int       `db:"ordering" json:"order"`
	IsActive    bool      `db:"is_active" json:"isActive"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}

type HeroCardUpdate struct {
	Title       *string
	Description *string
	Icon        *string
	Image       *string
	Stat        *string
	StatLabel   *string
	Color       *string
	Order       *int
	IsActive    *bool
}
