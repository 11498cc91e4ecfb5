package domain

import (
	"time"

	"github.com/google/uuid"
)

// Challenge is a location+password pair that reveals one letter of the
// hidden message when unlocked. The password never leaves the server on
// player-facing endpoints.
type Challenge struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	Description     *string   `json:"description"`
	Password        string    `json:"-"`
	Letter          string    `json:"letter"`
	Latitude        float64   `json:"latitude"`
	Longitude       float64   `json:"longitude"`
	RadiusMeters    int       `json:"radius_meters"`
	SortOrder       int       `json:"sort_order"`
	GiftDescription *string   `json:"gift_description"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
