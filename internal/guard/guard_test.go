package guard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiter(t *testing.T) {
	t.Run("allows up to the limit", func(t *testing.T) {
		rl := NewRateLimiter(3, time.Minute)
		for i := 0; i < 3; i++ {
			assert.True(t, rl.Allow("1.2.3.4"), "request %d should pass", i)
		}
		assert.False(t, rl.Allow("1.2.3.4"))
	})

	t.Run("keys are independent", func(t *testing.T) {
		rl := NewRateLimiter(1, time.Minute)
		assert.True(t, rl.Allow("1.2.3.4"))
		assert.False(t, rl.Allow("1.2.3.4"))
		assert.True(t, rl.Allow("5.6.7.8"))
	})

	t.Run("window slides", func(t *testing.T) {
		rl := NewRateLimiter(1, 10*time.Millisecond)
		assert.True(t, rl.Allow("1.2.3.4"))
		assert.False(t, rl.Allow("1.2.3.4"))

		time.Sleep(20 * time.Millisecond)
		assert.True(t, rl.Allow("1.2.3.4"))
	})

	t.Run("idle keys are evicted", func(t *testing.T) {
		rl := NewRateLimiter(5, 10*time.Millisecond)
		assert.True(t, rl.Allow("1.2.3.4"))
		assert.True(t, rl.Allow("5.6.7.8"))

		time.Sleep(20 * time.Millisecond)
		assert.True(t, rl.Allow("9.9.9.9"))

		rl.mu.Lock()
		defer rl.mu.Unlock()
		assert.Len(t, rl.windows, 1, "expired keys should be gone after the sweep")
		assert.Contains(t, rl.windows, "9.9.9.9")
	})
}
