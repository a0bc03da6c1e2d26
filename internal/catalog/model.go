package catalog

import "time"

// Item kinds. A tour is an itinerary with a duration in days; a stay is a room
// at a partner accommodation priced per package.
const (
	KindTour = "tour"
	KindStay = "stay"
)

type Item struct {
	ID           int       `db:"id" json:"id"`
	Kind         string    `db:"kind" json:"kind"`
	Name         string    `db:"name" json:"name"`
	Location     string    `db:"location" json:"location"`
	Price        int64     `db:"price" json:"price"`
	DurationDays int       `db:"duration_days" json:"duration_days"`
	Description  string    `db:"description" json:"description"`
	Active       bool      `db:"active" json:"active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

type CreateItemRequest struct {
	Kind         string `json:"kind" binding:"required,oneof=tour stay"`
	Name         string `json:"name" binding:"required"`
	Location     string `json:"location" binding:"required"`
	Price        int64  `json:"price" binding:"required,min=1"`
	DurationDays int    `json:"duration_days" binding:"required,min=1"`
	Description  string `json:"description"`
}
