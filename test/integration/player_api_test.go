//go:build integration

package integration

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/lettertrail/platform/internal/domain"
	"github.com/lettertrail/platform/test/integration/testutil"
)

func strPtr(s string) *string { return &s }

func seedBenchChallenge(env *testutil.TestEnv) uuid.UUID {
	return env.SeedChallenge(domain.Challenge{
		Title:           "The bench by the pond",
		Password:        "firstdate",
		Letter:          "M",
		Latitude:        52.3676,
		Longitude:       4.9041,
		RadiusMeters:    100,
		SortOrder:       1,
		GiftDescription: strPtr("picnic basket"),
		IsActive:        true,
	})
}

func TestPlayerLogin(t *testing.T) {
	env := testutil.NewTestEnv(t)
	env.SeedPlayer("Maartje", "LOVE2024", true)
	env.SeedPlayer("Old account", "RETIRED", false)

	t.Run("lowercase code logs in", func(t *testing.T) {
		resp := env.PlayerAction(map[string]interface{}{"action": "login", "code": "love2024"})
		testutil.AssertStatus(t, resp, http.StatusOK)

		var result struct {
			Player struct {
				ID   uuid.UUID `json:"id"`
				Name string    `json:"name"`
			} `json:"player"`
		}
		testutil.DecodeJSON(t, resp, &result)
		if result.Player.Name != "Maartje" {
			t.Errorf("expected player name Maartje, got %q", result.Player.Name)
		}
	})

	t.Run("unknown code rejected", func(t *testing.T) {
		resp := env.PlayerAction(map[string]interface{}{"action": "login", "code": "NOPE"})
		testutil.AssertStatus(t, resp, http.StatusUnauthorized)
		testutil.AssertPlayerError(t, resp, "Invalid code")
	})

	t.Run("inactive player rejected with the same message", func(t *testing.T) {
		resp := env.PlayerAction(map[string]interface{}{"action": "login", "code": "RETIRED"})
		testutil.AssertStatus(t, resp, http.StatusUnauthorized)
		testutil.AssertPlayerError(t, resp, "Invalid code")
	})
}

func TestGetChallenges(t *testing.T) {
	env := testutil.NewTestEnv(t)
	seedBenchChallenge(env)
	env.SeedChallenge(domain.Challenge{
		Title: "Retired spot", Password: "old", Letter: "X",
		Latitude: 0, Longitude: 0, RadiusMeters: 50, SortOrder: 2, IsActive: false,
	})

	resp := env.PlayerAction(map[string]interface{}{"action": "get-challenges"})
	testutil.AssertStatus(t, resp, http.StatusOK)

	var result struct {
		Challenges []map[string]interface{} `json:"challenges"`
	}
	testutil.DecodeJSON(t, resp, &result)

	if len(result.Challenges) != 1 {
		t.Fatalf("expected 1 active challenge, got %d", len(result.Challenges))
	}
	if _, leaked := result.Challenges[0]["password"]; leaked {
		t.Error("challenge password leaked to players")
	}
}

func TestAttemptChallenge(t *testing.T) {
	env := testutil.NewTestEnv(t)
	playerID := env.SeedPlayer("Maartje", "LOVE2024", true)
	challengeID := seedBenchChallenge(env)

	attempt := func(password string, lat, lon float64) *http.Response {
		return env.PlayerAction(map[string]interface{}{
			"action":       "attempt-challenge",
			"player_id":    playerID.String(),
			"challenge_id": challengeID.String(),
			"password":     password,
			"latitude":     lat,
			"longitude":    lon,
		})
	}

	t.Run("too far rejected with distance before password check", func(t *testing.T) {
		resp := attempt("wrong-password", 52.38, 4.91)
		testutil.AssertStatus(t, resp, http.StatusForbidden)

		var body struct {
			Error    string `json:"error"`
			Distance int    `json:"distance"`
		}
		testutil.DecodeJSON(t, resp, &body)
		if body.Error != "Too far from challenge location" {
			t.Errorf("unexpected error: %q", body.Error)
		}
		if body.Distance <= 100 {
			t.Errorf("expected distance beyond radius, got %d", body.Distance)
		}
		if n := testutil.CountProgress(t, env, playerID, challengeID); n != 0 {
			t.Errorf("expected no progress rows, got %d", n)
		}
	})

	t.Run("wrong password within radius", func(t *testing.T) {
		resp := attempt("guess", 52.3676, 4.9041)
		testutil.AssertStatus(t, resp, http.StatusUnauthorized)
		testutil.AssertPlayerError(t, resp, "Wrong password")
	})

	t.Run("unlock is idempotent with trimmed case-folded password", func(t *testing.T) {
		first := attempt("  FIRSTDATE ", 52.3676, 4.9041)
		testutil.AssertStatus(t, first, http.StatusOK)

		var reward struct {
			Success        bool    `json:"success"`
			Letter         string  `json:"letter"`
			Gift           *string `json:"gift"`
			ChallengeTitle string  `json:"challenge_title"`
		}
		testutil.DecodeJSON(t, first, &reward)
		if reward.Letter != "M" || reward.Gift == nil || *reward.Gift != "picnic basket" {
			t.Errorf("unexpected reward: %+v", reward)
		}

		second := attempt("firstdate", 52.3676, 4.9041)
		testutil.AssertStatus(t, second, http.StatusOK)

		var repeat struct {
			Letter string `json:"letter"`
		}
		testutil.DecodeJSON(t, second, &repeat)
		if repeat.Letter != reward.Letter {
			t.Errorf("repeat attempt changed the reward: %q vs %q", repeat.Letter, reward.Letter)
		}
		if n := testutil.CountProgress(t, env, playerID, challengeID); n != 1 {
			t.Errorf("expected exactly one progress row, got %d", n)
		}
	})

	t.Run("progress listing reflects the unlock", func(t *testing.T) {
		resp := env.PlayerAction(map[string]interface{}{
			"action":    "get-progress",
			"player_id": playerID.String(),
		})
		testutil.AssertStatus(t, resp, http.StatusOK)

		var result struct {
			Progress []struct {
				ChallengeID uuid.UUID `json:"challenge_id"`
			} `json:"progress"`
		}
		testutil.DecodeJSON(t, resp, &result)
		if len(result.Progress) != 1 || result.Progress[0].ChallengeID != challengeID {
			t.Errorf("unexpected progress: %+v", result.Progress)
		}
	})

	t.Run("unknown challenge is 404", func(t *testing.T) {
		resp := env.PlayerAction(map[string]interface{}{
			"action":       "attempt-challenge",
			"player_id":    playerID.String(),
			"challenge_id": uuid.NewString(),
			"password":     "x",
			"latitude":     52.3676,
			"longitude":    4.9041,
		})
		testutil.AssertStatus(t, resp, http.StatusNotFound)
	})
}

func TestTrackLocation(t *testing.T) {
	env := testutil.NewTestEnv(t)
	playerID := env.SeedPlayer("Maartje", "LOVE2024", true)

	t.Run("records a ping and an outbox event", func(t *testing.T) {
		resp := env.PlayerAction(map[string]interface{}{
			"action":    "track-location",
			"player_id": playerID.String(),
			"latitude":  52.37,
			"longitude": 4.89,
		})
		testutil.AssertStatus(t, resp, http.StatusOK)

		if n := testutil.CountLocations(t, env, playerID); n != 1 {
			t.Errorf("expected 1 location row, got %d", n)
		}
		if n := testutil.CountOutboxEvents(t, env, playerID); n != 1 {
			t.Errorf("expected 1 outbox event, got %d", n)
		}
	})

	t.Run("stale pings are pruned on the next insert", func(t *testing.T) {
		stale := time.Now().Add(-8 * 24 * time.Hour)
		_, err := env.Pool.Exec(context.Background(),
			`INSERT INTO player_locations (player_id, latitude, longitude, recorded_at) VALUES ($1, 0, 0, $2)`,
			playerID, stale)
		if err != nil {
			t.Fatalf("seed stale ping: %v", err)
		}

		resp := env.PlayerAction(map[string]interface{}{
			"action":    "track-location",
			"player_id": playerID.String(),
			"latitude":  52.37,
			"longitude": 4.89,
		})
		testutil.AssertStatus(t, resp, http.StatusOK)

		if n := testutil.CountLocations(t, env, playerID); n != 2 {
			t.Errorf("expected stale ping pruned (2 fresh rows), got %d", n)
		}
	})

	t.Run("out of range coordinates rejected", func(t *testing.T) {
		resp := env.PlayerAction(map[string]interface{}{
			"action":    "track-location",
			"player_id": playerID.String(),
			"latitude":  91.0,
			"longitude": 0.0,
		})
		testutil.AssertStatus(t, resp, http.StatusBadRequest)
	})
}

func TestUnknownAction(t *testing.T) {
	env := testutil.NewTestEnv(t)
	resp := env.PlayerAction(map[string]interface{}{"action": "self-destruct"})
	testutil.AssertStatus(t, resp, http.StatusBadRequest)
	testutil.AssertPlayerError(t, resp, "Unknown action")
}
