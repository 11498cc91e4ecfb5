package domain

import (
	"time"

	"github.com/google/uuid"
)

// LocationRetention is the default rolling window for GPS pings. Rows
// older than this are deleted eagerly after every insert.
const LocationRetention = 7 * 24 * time.Hour

// PlayerLocation is one entry in the append-only GPS ping log.
type PlayerLocation struct {
	ID         int64     `json:"id"`
	PlayerID   uuid.UUID `json:"player_id"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	RecordedAt time.Time `json:"recorded_at"`
}

// LocationWithPlayer joins a ping with the player's display name for the
// admin tracking feed.
type LocationWithPlayer struct {
	PlayerLocation
	PlayerName string `json:"player_name"`
}
