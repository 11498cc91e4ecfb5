package domain

import (
	"time"

	"github.com/google/uuid"
)

// AdminUser is an operator account for the admin console.
type AdminUser struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
