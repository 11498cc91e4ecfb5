package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lettertrail/platform/internal/domain"
)

// DBTX abstracts pgx.Tx and pgxpool.Pool so repositories work with both.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// PlayerRepository provides access to players.
type PlayerRepository interface {
	// FindByID returns a player by ID, or nil if absent.
	FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.Player, error)

	// FindByCode returns a player by access code. The code must already be
	// normalized (uppercased, trimmed).
	FindByCode(ctx context.Context, db DBTX, code string) (*domain.Player, error)

	// List returns all players, newest first.
	List(ctx context.Context, db DBTX) ([]domain.Player, error)

	// Create inserts a player and fills in its generated ID.
	Create(ctx context.Context, db DBTX, player *domain.Player) error

	// ToggleActive flips a player's is_active flag.
	ToggleActive(ctx context.Context, db DBTX, id uuid.UUID) error

	// Delete removes a player and, via cascade, their pings and progress.
	Delete(ctx context.Context, db DBTX, id uuid.UUID) error
}

// ChallengeRepository provides access to challenges.
type ChallengeRepository interface {
	// FindByID returns a challenge by ID, or nil if absent.
	FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.Challenge, error)

	// ListActive returns active challenges ordered by sort_order.
	ListActive(ctx context.Context, db DBTX) ([]domain.Challenge, error)

	// List returns all challenges ordered by sort_order.
	List(ctx context.Context, db DBTX) ([]domain.Challenge, error)

	// Create inserts a challenge and fills in its generated ID.
	Create(ctx context.Context, db DBTX, ch *domain.Challenge) error

	// Update replaces all editable fields of a challenge.
	Update(ctx context.Context, db DBTX, ch *domain.Challenge) error

	// ToggleActive flips a challenge's is_active flag.
	ToggleActive(ctx context.Context, db DBTX, id uuid.UUID) error

	// Delete removes a challenge and its progress rows.
	Delete(ctx context.Context, db DBTX, id uuid.UUID) error
}

// LocationRepository provides access to the GPS ping log.
type LocationRepository interface {
	// Insert appends a ping and fills in its ID and recorded_at.
	Insert(ctx context.Context, db DBTX, loc *domain.PlayerLocation) error

	// DeleteOlderThan removes pings recorded before the cutoff, returning
	// the number of rows deleted.
	DeleteOlderThan(ctx context.Context, db DBTX, cutoff time.Time) (int64, error)

	// ListRecent returns the latest pings joined with player names,
	// newest first.
	ListRecent(ctx context.Context, db DBTX, limit int) ([]domain.LocationWithPlayer, error)
}

// ProgressRepository provides access to player_progress.
type ProgressRepository interface {
	// ListByPlayer returns a player's unlocked challenges.
	ListByPlayer(ctx context.Context, db DBTX, playerID uuid.UUID) ([]domain.PlayerProgress, error)

	// Record inserts a progress row if absent. The unique constraint on
	// (player_id, challenge_id) makes this an atomic conditional insert;
	// the return value reports whether a new row was created.
	Record(ctx context.Context, db DBTX, playerID, challengeID uuid.UUID) (bool, error)

	// HasIncompleteBefore reports whether any active challenge with a lower
	// sort_order is still incomplete for the player.
	HasIncompleteBefore(ctx context.Context, db DBTX, playerID uuid.UUID, sortOrder int) (bool, error)
}

// AdminUserRepository provides access to admin_users.
type AdminUserRepository interface {
	// FindByEmail returns an admin user by email, or nil if absent.
	FindByEmail(ctx context.Context, db DBTX, email string) (*domain.AdminUser, error)

	// Create inserts a new admin user.
	Create(ctx context.Context, db DBTX, user *domain.AdminUser) error
}

// OutboxRepository provides access to the event_outbox table.
type OutboxRepository interface {
	// Insert writes an outbox event.
	Insert(ctx context.Context, db DBTX, draft domain.OutboxDraft) error

	// FetchUnpublished returns pending events in insertion order.
	FetchUnpublished(ctx context.Context, db DBTX, limit int) ([]domain.OutboxDraft, error)

	// MarkPublished removes events that have been handed to the broker.
	MarkPublished(ctx context.Context, db DBTX, ids []int64) error
}
