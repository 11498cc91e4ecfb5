package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/lettertrail/platform/internal/domain"
)

type challengeRepo struct{}

// NewChallengeRepository returns a pgx-backed ChallengeRepository.
func NewChallengeRepository() ChallengeRepository {
	return &challengeRepo{}
}

const challengeColumns = `id, title, description, password, letter, latitude, longitude,
	radius_meters, sort_order, gift_description, is_active, created_at, updated_at`

func (r *challengeRepo) FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.Challenge, error) {
	row := db.QueryRow(ctx, `
		SELECT `+challengeColumns+` FROM challenges WHERE id = $1`, id)

	ch, err := scanChallenge(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return ch, nil
}

func (r *challengeRepo) ListActive(ctx context.Context, db DBTX) ([]domain.Challenge, error) {
	return r.list(ctx, db, `
		SELECT `+challengeColumns+` FROM challenges
		WHERE is_active = true ORDER BY sort_order ASC`)
}

func (r *challengeRepo) List(ctx context.Context, db DBTX) ([]domain.Challenge, error) {
	return r.list(ctx, db, `
		SELECT `+challengeColumns+` FROM challenges ORDER BY sort_order ASC`)
}

func (r *challengeRepo) list(ctx context.Context, db DBTX, query string) ([]domain.Challenge, error) {
	rows, err := db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list challenges: %w", err)
	}
	defer rows.Close()

	var challenges []domain.Challenge
	for rows.Next() {
		ch, err := scanChallenge(rows)
		if err != nil {
			return nil, err
		}
		challenges = append(challenges, *ch)
	}
	return challenges, rows.Err()
}

func (r *challengeRepo) Create(ctx context.Context, db DBTX, ch *domain.Challenge) error {
	row := db.QueryRow(ctx, `
		INSERT INTO challenges (title, description, password, letter, latitude, longitude,
			radius_meters, sort_order, gift_description, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at`,
		ch.Title, ch.Description, ch.Password, ch.Letter, ch.Latitude, ch.Longitude,
		ch.RadiusMeters, ch.SortOrder, ch.GiftDescription, ch.IsActive)
	if err := row.Scan(&ch.ID, &ch.CreatedAt, &ch.UpdatedAt); err != nil {
		return fmt.Errorf("insert challenge: %w", err)
	}
	return nil
}

func (r *challengeRepo) Update(ctx context.Context, db DBTX, ch *domain.Challenge) error {
	_, err := db.Exec(ctx, `
		UPDATE challenges SET
			title = $2, description = $3, password = $4, letter = $5,
			latitude = $6, longitude = $7, radius_meters = $8, sort_order = $9,
			gift_description = $10, is_active = $11, updated_at = now()
		WHERE id = $1`,
		ch.ID, ch.Title, ch.Description, ch.Password, ch.Letter,
		ch.Latitude, ch.Longitude, ch.RadiusMeters, ch.SortOrder,
		ch.GiftDescription, ch.IsActive)
	if err != nil {
		return fmt.Errorf("update challenge: %w", err)
	}
	return nil
}

func (r *challengeRepo) ToggleActive(ctx context.Context, db DBTX, id uuid.UUID) error {
	_, err := db.Exec(ctx,
		`UPDATE challenges SET is_active = NOT is_active, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("toggle challenge: %w", err)
	}
	return nil
}

func (r *challengeRepo) Delete(ctx context.Context, db DBTX, id uuid.UUID) error {
	_, err := db.Exec(ctx, `DELETE FROM challenges WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete challenge: %w", err)
	}
	return nil
}

func scanChallenge(row pgx.Row) (*domain.Challenge, error) {
	var ch domain.Challenge
	err := row.Scan(&ch.ID, &ch.Title, &ch.Description, &ch.Password, &ch.Letter,
		&ch.Latitude, &ch.Longitude, &ch.RadiusMeters, &ch.SortOrder,
		&ch.GiftDescription, &ch.IsActive, &ch.CreatedAt, &ch.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scan challenge: %w", err)
	}
	return &ch, nil
}
