//go:build integration

package testutil

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
)

// DecodeJSON reads and decodes a JSON response body into dst.
func DecodeJSON(t *testing.T, resp *http.Response, dst interface{}) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		t.Fatalf("DecodeJSON: %v", err)
	}
}

// AssertStatus checks that the response has the expected HTTP status code.
func AssertStatus(t *testing.T, resp *http.Response, expected int) {
	t.Helper()
	if resp.StatusCode != expected {
		t.Errorf("expected status %d, got %d", expected, resp.StatusCode)
	}
}

// AssertPlayerError checks the flat player-API error shape.
func AssertPlayerError(t *testing.T, resp *http.Response, expectedMessage string) {
	t.Helper()
	var errResp struct {
		Error string `json:"error"`
	}
	DecodeJSON(t, resp, &errResp)
	if errResp.Error != expectedMessage {
		t.Errorf("expected error %q, got %q", expectedMessage, errResp.Error)
	}
}

// CountProgress returns the number of progress rows for a player/challenge pair.
func CountProgress(t *testing.T, env *TestEnv, playerID, challengeID uuid.UUID) int {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var count int
	err := env.Pool.QueryRow(ctx,
		"SELECT COUNT(*) FROM player_progress WHERE player_id = $1 AND challenge_id = $2",
		playerID, challengeID).Scan(&count)
	if err != nil {
		t.Fatalf("CountProgress: %v", err)
	}
	return count
}

// CountLocations returns the number of location rows for a player.
func CountLocations(t *testing.T, env *TestEnv, playerID uuid.UUID) int {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var count int
	err := env.Pool.QueryRow(ctx,
		"SELECT COUNT(*) FROM player_locations WHERE player_id = $1", playerID).Scan(&count)
	if err != nil {
		t.Fatalf("CountLocations: %v", err)
	}
	return count
}

// CountOutboxEvents returns the number of outbox events for a player.
func CountOutboxEvents(t *testing.T, env *TestEnv, playerID uuid.UUID) int {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var count int
	err := env.Pool.QueryRow(ctx,
		"SELECT COUNT(*) FROM event_outbox WHERE aggregate_id = $1", playerID.String()).Scan(&count)
	if err != nil {
		t.Fatalf("CountOutboxEvents: %v", err)
	}
	return count
}
