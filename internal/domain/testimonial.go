package domain

import (
	"time"

	"github.com/google/uuid"
)

type Testimonial struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Role      string    `db:"role" json:"role"`
	Image     string    `db:"image" json:"image"`
	Content   string    `db:"content" json:"content"`
	Location  string    `db:"location" json:"location"`
	Rating    float64   `db:"rating" json:"rating"`
	Color     string    `db:"color" json:"color"`
	Featured  bool      `db:"featured" json:"featured"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

type TestimonialUpdate struct {
	Name     *string
	Role     *string
	Image    *string
	Content  *string
	Location *string
	Rating   *float64
	Color    *string
	Featured *bool
}

type TestimonialListFilter struct {
	FeaturedOnly bool
}
