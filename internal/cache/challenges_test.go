package cache

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lettertrail/platform/internal/domain"
)

func newTestCache(t *testing.T) (*ChallengeCache, *miniredis.Miniredis) {
	t.Helper()
	mini := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mini.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewChallengeCache(client), mini
}

func sampleChallenges() []domain.Challenge {
	desc := "find the bench by the pond"
	return []domain.Challenge{
		{
			ID:           uuid.New(),
			Title:        "First kiss spot",
			Description:  &desc,
			Password:     "kiss",
			Letter:       "L",
			Latitude:     52.3676,
			Longitude:    4.9041,
			RadiusMeters: 100,
			SortOrder:    1,
			IsActive:     true,
		},
		{
			ID:           uuid.New(),
			Title:        "Coffee corner",
			Password:     "espresso",
			Letter:       "O",
			Latitude:     52.37,
			Longitude:    4.89,
			RadiusMeters: 50,
			SortOrder:    2,
			IsActive:     true,
		},
	}
}

func TestChallengeCache(t *testing.T) {
	ctx := context.Background()

	t.Run("miss returns nil", func(t *testing.T) {
		c, _ := newTestCache(t)
		got, err := c.GetActive(ctx)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("set then get round-trips passwords", func(t *testing.T) {
		c, _ := newTestCache(t)
		want := sampleChallenges()

		require.NoError(t, c.SetActive(ctx, want))

		got, err := c.GetActive(ctx)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, want[0].ID, got[0].ID)
		assert.Equal(t, "kiss", got[0].Password)
		assert.Equal(t, "espresso", got[1].Password)
		assert.Equal(t, want[0].Description, got[0].Description)
	})

	t.Run("invalidate drops the entry", func(t *testing.T) {
		c, _ := newTestCache(t)
		require.NoError(t, c.SetActive(ctx, sampleChallenges()))
		require.NoError(t, c.Invalidate(ctx))

		got, err := c.GetActive(ctx)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("entry expires after ttl", func(t *testing.T) {
		c, mini := newTestCache(t)
		require.NoError(t, c.SetActive(ctx, sampleChallenges()))

		mini.FastForward(c.ttl * 2)

		got, err := c.GetActive(ctx)
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}
