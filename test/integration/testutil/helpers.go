//go:build integration

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/lettertrail/platform/internal/domain"
)

// SeedPlayer inserts a player directly and returns its ID.
func (env *TestEnv) SeedPlayer(name, code string, active bool) uuid.UUID {
	env.t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var id uuid.UUID
	err := env.Pool.QueryRow(ctx,
		`INSERT INTO players (name, code, is_active) VALUES ($1, $2, $3) RETURNING id`,
		name, domain.NormalizeCode(code), active).Scan(&id)
	if err != nil {
		env.t.Fatalf("SeedPlayer: %v", err)
	}
	return id
}

// SeedChallenge inserts a challenge directly and returns its ID.
func (env *TestEnv) SeedChallenge(ch domain.Challenge) uuid.UUID {
	env.t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var id uuid.UUID
	err := env.Pool.QueryRow(ctx, `
		INSERT INTO challenges (title, description, password, letter, latitude, longitude,
			radius_meters, sort_order, gift_description, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`,
		ch.Title, ch.Description, ch.Password, ch.Letter, ch.Latitude, ch.Longitude,
		ch.RadiusMeters, ch.SortOrder, ch.GiftDescription, ch.IsActive).Scan(&id)
	if err != nil {
		env.t.Fatalf("SeedChallenge: %v", err)
	}
	return id
}

// SeedAdmin inserts an admin user with a bcrypt hash and returns a login token.
func (env *TestEnv) SeedAdmin(email, password string) string {
	env.t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		env.t.Fatalf("SeedAdmin: hash: %v", err)
	}
	_, err = env.Pool.Exec(ctx,
		`INSERT INTO admin_users (email, password_hash) VALUES ($1, $2)`, email, string(hash))
	if err != nil {
		env.t.Fatalf("SeedAdmin: insert: %v", err)
	}

	resp := env.POST("/admin/login", map[string]string{"email": email, "password": password}, "")
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		env.t.Fatalf("SeedAdmin: login: expected 200, got %d", resp.StatusCode)
	}

	var result struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		env.t.Fatalf("SeedAdmin: decode: %v", err)
	}
	return result.Token
}

// PlayerAction posts an action envelope to /player-api.
func (env *TestEnv) PlayerAction(body map[string]interface{}) *http.Response {
	env.t.Helper()
	return env.POST("/player-api", body, "")
}

// GET performs an unauthenticated GET request.
func (env *TestEnv) GET(path string) *http.Response {
	env.t.Helper()
	resp, err := http.Get(env.Server.URL + path)
	if err != nil {
		env.t.Fatalf("GET %s: %v", path, err)
	}
	return resp
}

// POST performs a POST request with optional auth token.
func (env *TestEnv) POST(path string, body interface{}, token string) *http.Response {
	env.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			env.t.Fatalf("POST %s: encode: %v", path, err)
		}
	}
	req, err := http.NewRequest("POST", env.Server.URL+path, &buf)
	if err != nil {
		env.t.Fatalf("POST %s: new request: %v", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		env.t.Fatalf("POST %s: %v", path, err)
	}
	return resp
}

// AuthGET performs an authenticated GET request.
func (env *TestEnv) AuthGET(path, token string) *http.Response {
	env.t.Helper()
	req, err := http.NewRequest("GET", env.Server.URL+path, nil)
	if err != nil {
		env.t.Fatalf("AuthGET %s: new request: %v", path, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		env.t.Fatalf("AuthGET %s: %v", path, err)
	}
	return resp
}

// AuthDo performs an authenticated request with an arbitrary method and body.
func (env *TestEnv) AuthDo(method, path string, body interface{}, token string) *http.Response {
	env.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			env.t.Fatalf("%s %s: encode: %v", method, path, err)
		}
	}
	req, err := http.NewRequest(method, env.Server.URL+path, &buf)
	if err != nil {
		env.t.Fatalf("%s %s: new request: %v", method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		env.t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}
