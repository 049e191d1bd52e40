package domain

import (
	"time"

	"github.com/google/uuid"
)

type GalleryItem struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Src       string    `db:"src" json:"src"`
	Alt       string    `db:"alt" json:"alt"`
	Category  string    `db:"category" json:"category"`
	Color     string    `db:"color" json:"color"`
	Featured  bool      `db:"featured" json:"featured"`
	Order     int       `db:"ordering" json:"order"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

type GalleryUpdate struct {
	Src      *string
	Alt      *string
	Category *string
	Color    *string
	Featured *bool
	Order    *int
}

type GalleryListFilter struct {
	Category     string
	FeaturedOnly bool
}

// GalleryOrderUpdate is one entry of a bulk reorder request.
type GalleryOrderUpdate struct {
	ID    uuid.UUID `json:"id"`
	Order int       `json:"order"`
}
