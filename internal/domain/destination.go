package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Destination struct {
	ID          uuid.UUID      `db:"id" json:"id"`
	Title       string         `db:"title" json:"title"`
	Description string         `db:"description" json:"description"`
	Image       string         `db:"image" json:"image"`
	Rating      float64        `db:"rating" json:"rating"`
	Price       string         `db:"price" json:"price"`
	Color       string         `db:"color" json:"color"`
	Tags        pq.StringArray `db:"tags" json:"tags"`
	Highlights  pq.StringArray `db:"highlights" json:"highlights"`
	Featured    bool           `db:"featured" json:"featured"`
	CreatedAt   time.Time      `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time      `db:"updated_at" json:"updatedAt"`
}

// DestinationUpdate carries the fields of a partial update. Nil means the
// stored value is kept; list fields are replaced wholesale when set.
type DestinationUpdate struct {
	Title       *string
	Description *string
	Image       *string
	Rating      *float64
	Price       *string
	Color       *string
	Tags        *[]string
	Highlights  *[]string
	Featured    *bool
}

type DestinationListFilter struct {
	FeaturedOnly bool
}
