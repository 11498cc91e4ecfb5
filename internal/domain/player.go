package domain

import (
	"time"

	"github.com/google/uuid"
)

// Player is a hunt participant. The access code is the only credential;
// it is stored uppercase and compared against uppercased trimmed input.
type Player struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}
