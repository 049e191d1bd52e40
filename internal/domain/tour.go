package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Tour struct {
	ID          uuid.UUID      `db:"id" json:"id"`
	Title       string         `db:"title" json:"title"`
	Description string         `db:"description" json:"description"`
	Image       string         `db:"image" json:"image"`
	Days        int            `db:"days" json:"days"`
	Price       float64        `db:"price" json:"price"`
	Rating      float64        `db:"rating" json:"rating"`
	Color       string         `db:"color" json:"color"`
	Features    pq.StringArray `db:"features" json:"features"`
	Locations   pq.StringArray `db:"locations" json:"locations"`
	Featured    bool           `db:"featured" json:"featured"`
	CreatedAt   time.Time      `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time      `db:"updated_at" json:"updatedAt"`
}

type TourUpdate struct {
	Title       *string
	Description *string
	Image       *string
	Days        *int
	Price       *float64
	Rating      *float64
	Color       *string
	Features    *[]string
	Locations   *[]string
	Featured    *bool
}

type TourListFilter struct {
	FeaturedOnly bool
}
