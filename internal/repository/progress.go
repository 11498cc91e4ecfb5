package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/lettertrail/platform/internal/domain"
)

type progressRepo struct{}

// NewProgressRepository returns a pgx-backed ProgressRepository.
func NewProgressRepository() ProgressRepository {
	return &progressRepo{}
}

func (r *progressRepo) ListByPlayer(ctx context.Context, db DBTX, playerID uuid.UUID) ([]domain.PlayerProgress, error) {
	rows, err := db.Query(ctx, `
		SELECT id, player_id, challenge_id, completed_at
		FROM player_progress WHERE player_id = $1
		ORDER BY completed_at ASC`, playerID)
	if err != nil {
		return nil, fmt.Errorf("list progress: %w", err)
	}
	defer rows.Close()

	var progress []domain.PlayerProgress
	for rows.Next() {
		var p domain.PlayerProgress
		if err := rows.Scan(&p.ID, &p.PlayerID, &p.ChallengeID, &p.CompletedAt); err != nil {
			return nil, fmt.Errorf("scan progress: %w", err)
		}
		progress = append(progress, p)
	}
	return progress, rows.Err()
}

// Record relies on the unique (player_id, challenge_id) constraint: the
// insert is a single atomic conditional write, never read-then-write.
func (r *progressRepo) Record(ctx context.Context, db DBTX, playerID, challengeID uuid.UUID) (bool, error) {
	tag, err := db.Exec(ctx, `
		INSERT INTO player_progress (player_id, challenge_id)
		VALUES ($1, $2)
		ON CONFLICT (player_id, challenge_id) DO NOTHING`,
		playerID, challengeID)
	if err != nil {
		return false, fmt.Errorf("record progress: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *progressRepo) HasIncompleteBefore(ctx context.Context, db DBTX, playerID uuid.UUID, sortOrder int) (bool, error) {
	var locked bool
	err := db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM challenges c
			WHERE c.is_active = true AND c.sort_order < $2
			  AND NOT EXISTS (
				SELECT 1 FROM player_progress pp
				WHERE pp.player_id = $1 AND pp.challenge_id = c.id
			  )
		)`, playerID, sortOrder).Scan(&locked)
	if err != nil {
		return false, fmt.Errorf("check prerequisites: %w", err)
	}
	return locked, nil
}
