package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/lettertrail/platform/internal/domain"
)

type playerRepo struct{}

// NewPlayerRepository returns a pgx-backed PlayerRepository.
func NewPlayerRepository() PlayerRepository {
	return &playerRepo{}
}

const playerColumns = `id, name, code, is_active, created_at`

func (r *playerRepo) FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.Player, error) {
	row := db.QueryRow(ctx, `
		SELECT `+playerColumns+` FROM players WHERE id = $1`, id)
	return scanPlayer(row)
}

func (r *playerRepo) FindByCode(ctx context.Context, db DBTX, code string) (*domain.Player, error) {
	row := db.QueryRow(ctx, `
		SELECT `+playerColumns+` FROM players WHERE code = $1`, code)
	return scanPlayer(row)
}

func (r *playerRepo) List(ctx context.Context, db DBTX) ([]domain.Player, error) {
	rows, err := db.Query(ctx, `
		SELECT `+playerColumns+` FROM players ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	defer rows.Close()

	var players []domain.Player
	for rows.Next() {
		var p domain.Player
		if err := rows.Scan(&p.ID, &p.Name, &p.Code, &p.IsActive, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan player: %w", err)
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

func (r *playerRepo) Create(ctx context.Context, db DBTX, player *domain.Player) error {
	row := db.QueryRow(ctx, `
		INSERT INTO players (name, code, is_active)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`,
		player.Name, player.Code, player.IsActive)
	if err := row.Scan(&player.ID, &player.CreatedAt); err != nil {
		return fmt.Errorf("insert player: %w", err)
	}
	return nil
}

func (r *playerRepo) ToggleActive(ctx context.Context, db DBTX, id uuid.UUID) error {
	_, err := db.Exec(ctx, `UPDATE players SET is_active = NOT is_active WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("toggle player: %w", err)
	}
	return nil
}

func (r *playerRepo) Delete(ctx context.Context, db DBTX, id uuid.UUID) error {
	_, err := db.Exec(ctx, `DELETE FROM players WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete player: %w", err)
	}
	return nil
}

func scanPlayer(row pgx.Row) (*domain.Player, error) {
	var p domain.Player
	err := row.Scan(&p.ID, &p.Name, &p.Code, &p.IsActive, &p.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan player: %w", err)
	}
	return &p, nil
}
