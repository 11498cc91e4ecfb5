package domain

import (
	"time"

	"github.com/google/uuid"
)

// PlayerProgress records that a player has unlocked a challenge. At most
// one row exists per (player, challenge) pair; the uniqueness constraint
// in the database makes the unlock an atomic conditional insert.
type PlayerProgress struct {
	ID          uuid.UUID `json:"id"`
	PlayerID    uuid.UUID `json:"player_id"`
	ChallengeID uuid.UUID `json:"challenge_id"`
	CompletedAt time.Time `json:"completed_at"`
}
