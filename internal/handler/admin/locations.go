package admin

import (
	"net/http"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lettertrail/platform/internal/domain"
	"github.com/lettertrail/platform/internal/handler"
	"github.com/lettertrail/platform/internal/repository"
)

const (
	defaultLocationLimit = 100
	maxLocationLimit     = 1000
)

// LocationAdminHandler serves the recent-pings feed for the console map.
type LocationAdminHandler struct {
	pool      *pgxpool.Pool
	locations repository.LocationRepository
}

// NewLocationAdminHandler creates a new LocationAdminHandler.
func NewLocationAdminHandler(pool *pgxpool.Pool, locations repository.LocationRepository) *LocationAdminHandler {
	return &LocationAdminHandler{pool: pool, locations: locations}
}

// ListRecent handles GET /admin/locations?limit=N.
func (h *LocationAdminHandler) ListRecent(w http.ResponseWriter, r *http.Request) {
	limit := defaultLocationLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			handler.RespondError(w, domain.ErrValidation("limit must be a positive integer"))
			return
		}
		if n > maxLocationLimit {
			n = maxLocationLimit
		}
		limit = n
	}

	locations, err := h.locations.ListRecent(r.Context(), h.pool, limit)
	if err != nil {
		handler.RespondError(w, domain.ErrInternal("list locations", err))
		return
	}
	if locations == nil {
		locations = []domain.LocationWithPlayer{}
	}
	handler.RespondJSON(w, http.StatusOK, locations)
}
