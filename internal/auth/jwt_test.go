package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTManager(t *testing.T) {
	mgr := NewJWTManager("test-secret", 8*time.Hour)
	adminID := uuid.New()

	t.Run("generate and validate admin token", func(t *testing.T) {
		token, err := mgr.GenerateToken(RealmAdmin, adminID, "ops@example.com")
		require.NoError(t, err)

		claims, err := mgr.ValidateTokenForRealm(token, RealmAdmin)
		require.NoError(t, err)
		assert.Equal(t, adminID.String(), claims.Subject)
		assert.Equal(t, "ops@example.com", claims.Email)
		assert.Equal(t, RealmAdmin, claims.Realm)
	})

	t.Run("unknown realm rejected at generation", func(t *testing.T) {
		_, err := mgr.GenerateToken(Realm("player"), adminID, "")
		require.Error(t, err)
	})

	t.Run("wrong secret rejected", func(t *testing.T) {
		token, err := mgr.GenerateToken(RealmAdmin, adminID, "")
		require.NoError(t, err)

		other := NewJWTManager("different-secret", 8*time.Hour)
		_, err = other.ValidateToken(token)
		require.Error(t, err)
	})

	t.Run("expired token rejected", func(t *testing.T) {
		short := NewJWTManager("test-secret", -time.Minute)
		token, err := short.GenerateToken(RealmAdmin, adminID, "")
		require.NoError(t, err)

		_, err = mgr.ValidateToken(token)
		require.Error(t, err)
	})

	t.Run("garbage token rejected", func(t *testing.T) {
		_, err := mgr.ValidateToken("not.a.jwt")
		require.Error(t, err)
	})
}

func TestAuthenticateAdmin(t *testing.T) {
	mgr := NewJWTManager("test-secret", 8*time.Hour)
	adminID := uuid.New()

	protected := AuthenticateAdmin(mgr)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, adminID.String(), SubjectFromContext(r.Context()))
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("valid bearer token", func(t *testing.T) {
		token, err := mgr.GenerateToken(RealmAdmin, adminID, "")
		require.NoError(t, err)

		r := httptest.NewRequest(http.MethodGet, "/admin/players", nil)
		r.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		protected.ServeHTTP(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("token query parameter accepted", func(t *testing.T) {
		token, err := mgr.GenerateToken(RealmAdmin, adminID, "")
		require.NoError(t, err)

		r := httptest.NewRequest(http.MethodGet, "/admin/locations/live?token="+token, nil)
		w := httptest.NewRecorder()
		protected.ServeHTTP(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing token rejected", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/admin/players", nil)
		w := httptest.NewRecorder()
		protected.ServeHTTP(w, r)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed header rejected", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/admin/players", nil)
		r.Header.Set("Authorization", "Token abc")
		w := httptest.NewRecorder()
		protected.ServeHTTP(w, r)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
