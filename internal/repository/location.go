package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/lettertrail/platform/internal/domain"
)

type locationRepo struct{}

// NewLocationRepository returns a pgx-backed LocationRepository.
func NewLocationRepository() LocationRepository {
	return &locationRepo{}
}

func (r *locationRepo) Insert(ctx context.Context, db DBTX, loc *domain.PlayerLocation) error {
	row := db.QueryRow(ctx, `
		INSERT INTO player_locations (player_id, latitude, longitude)
		VALUES ($1, $2, $3)
		RETURNING id, recorded_at`,
		loc.PlayerID, loc.Latitude, loc.Longitude)
	if err := row.Scan(&loc.ID, &loc.RecordedAt); err != nil {
		return fmt.Errorf("insert location: %w", err)
	}
	return nil
}

func (r *locationRepo) DeleteOlderThan(ctx context.Context, db DBTX, cutoff time.Time) (int64, error) {
	tag, err := db.Exec(ctx, `DELETE FROM player_locations WHERE recorded_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete stale locations: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *locationRepo) ListRecent(ctx context.Context, db DBTX, limit int) ([]domain.LocationWithPlayer, error) {
	rows, err := db.Query(ctx, `
		SELECT pl.id, pl.player_id, pl.latitude, pl.longitude, pl.recorded_at, p.name
		FROM player_locations pl
		JOIN players p ON p.id = pl.player_id
		ORDER BY pl.recorded_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()

	var locations []domain.LocationWithPlayer
	for rows.Next() {
		var l domain.LocationWithPlayer
		if err := rows.Scan(&l.ID, &l.PlayerID, &l.Latitude, &l.Longitude, &l.RecordedAt, &l.PlayerName); err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		locations = append(locations, l)
	}
	return locations, rows.Err()
}
