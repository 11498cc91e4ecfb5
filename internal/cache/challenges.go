// Package cache holds Redis-backed caches for read-heavy queries.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lettertrail/platform/internal/domain"
	"github.com/redis/go-redis/v9"
)

const activeChallengesKey = "challenges:active"

// cachedChallenge re-exposes the password, which the domain type hides from
// JSON. Server-side password checks must survive a round-trip through Redis.
type cachedChallenge struct {
	domain.Challenge
	Password string `json:"password"`
}

// ChallengeCache caches the active challenge list. Every player polls this
// list, so it is served cache-aside with invalidation on admin writes.
type ChallengeCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewChallengeCache creates a challenge cache with the default TTL.
func NewChallengeCache(client *redis.Client) *ChallengeCache {
	return &ChallengeCache{client: client, ttl: 5 * time.Minute}
}

// GetActive returns the cached active challenge list, or nil on a miss.
func (c *ChallengeCache) GetActive(ctx context.Context) ([]domain.Challenge, error) {
	data, err := c.client.Get(ctx, activeChallengesKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get cached challenges: %w", err)
	}

	var entries []cachedChallenge
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decode cached challenges: %w", err)
	}

	challenges := make([]domain.Challenge, len(entries))
	for i, e := range entries {
		ch := e.Challenge
		ch.Password = e.Password
		challenges[i] = ch
	}
	return challenges, nil
}

// SetActive stores the active challenge list.
func (c *ChallengeCache) SetActive(ctx context.Context, challenges []domain.Challenge) error {
	entries := make([]cachedChallenge, len(challenges))
	for i, ch := range challenges {
		entries[i] = cachedChallenge{Challenge: ch, Password: ch.Password}
	}

	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode challenges: %w", err)
	}
	if err := c.client.Set(ctx, activeChallengesKey, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("set cached challenges: %w", err)
	}
	return nil
}

// Invalidate drops the cached list. Called after any admin challenge write.
func (c *ChallengeCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, activeChallengesKey).Err(); err != nil {
		return fmt.Errorf("invalidate challenges: %w", err)
	}
	return nil
}
