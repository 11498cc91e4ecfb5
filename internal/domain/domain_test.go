package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeCode(t *testing.T) {
	assert.Equal(t, "LOVE2024", NormalizeCode("love2024"))
	assert.Equal(t, "LOVE2024", NormalizeCode("  Love2024  "))
	assert.Equal(t, "ABC123", NormalizeCode("ABC123"))
}

func TestValidateCode(t *testing.T) {
	assert.NoError(t, ValidateCode("ABC123"))
	assert.Error(t, ValidateCode(""))
	assert.Error(t, ValidateCode("   "))
	assert.Error(t, ValidateCode(strings.Repeat("A", MaxCodeLength+1)))
	assert.NoError(t, ValidateCode(strings.Repeat("A", MaxCodeLength)))
}

func TestValidateAttemptPassword(t *testing.T) {
	assert.NoError(t, ValidateAttemptPassword("kiss"))
	assert.Error(t, ValidateAttemptPassword(""))
	assert.Error(t, ValidateAttemptPassword(strings.Repeat("x", MaxPasswordLength+1)))
}

func TestPasswordsMatch(t *testing.T) {
	assert.True(t, PasswordsMatch("Kiss ", "kiss"))
	assert.True(t, PasswordsMatch("KISS", " kiss"))
	assert.True(t, PasswordsMatch("kiss", "kiss"))
	assert.False(t, PasswordsMatch("hug", "kiss"))
	assert.False(t, PasswordsMatch("", "kiss"))
}

func TestAppError(t *testing.T) {
	t.Run("too far carries rounded distance", func(t *testing.T) {
		err := ErrTooFar(149.6)
		assert.Equal(t, 150, err.DistanceMeters)
		assert.Equal(t, 403, err.Status)
		assert.Equal(t, "TOO_FAR", err.Code)
	})

	t.Run("error string includes cause", func(t *testing.T) {
		cause := assert.AnError
		err := ErrInternal("query failed", cause)
		assert.Contains(t, err.Error(), "INTERNAL_ERROR")
		assert.ErrorIs(t, err, cause)
	})

	t.Run("statuses", func(t *testing.T) {
		assert.Equal(t, 400, ErrValidation("x").Status)
		assert.Equal(t, 401, ErrUnauthorized("x").Status)
		assert.Equal(t, 401, ErrWrongPassword().Status)
		assert.Equal(t, 403, ErrChallengeLocked().Status)
		assert.Equal(t, 404, ErrNotFound("player", "1").Status)
		assert.Equal(t, 409, ErrConflict("x").Status)
	})
}

func TestNewLocationPingedEvent(t *testing.T) {
	loc := PlayerLocation{Latitude: 52.37, Longitude: 4.9}
	draft, err := NewLocationPingedEvent(loc)
	require.NoError(t, err)
	assert.Equal(t, AggregatePlayer, draft.AggregateType)
	assert.Equal(t, EventLocationPinged, draft.EventType)
	assert.NotEmpty(t, draft.EventID)
	assert.Contains(t, string(draft.Payload), "52.37")
}
