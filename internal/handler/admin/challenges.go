// Package admin holds the JWT-protected console handlers.
package admin

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lettertrail/platform/internal/domain"
	"github.com/lettertrail/platform/internal/handler"
	"github.com/lettertrail/platform/internal/repository"
)

// CacheInvalidator drops the cached active challenge list after a write.
type CacheInvalidator interface {
	Invalidate(ctx context.Context) error
}

// ChallengeAdminHandler handles admin challenge management.
type ChallengeAdminHandler struct {
	pool       *pgxpool.Pool
	challenges repository.ChallengeRepository
	cache      CacheInvalidator // optional
}

// NewChallengeAdminHandler creates a new ChallengeAdminHandler.
func NewChallengeAdminHandler(pool *pgxpool.Pool, challenges repository.ChallengeRepository, cache CacheInvalidator) *ChallengeAdminHandler {
	return &ChallengeAdminHandler{pool: pool, challenges: challenges, cache: cache}
}

// challengeRow is the admin view of a challenge. Unlike the player-facing
// JSON shape it includes the password.
type challengeRow struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	Description     *string   `json:"description"`
	Password        string    `json:"password"`
	Letter          string    `json:"letter"`
	Latitude        float64   `json:"latitude"`
	Longitude       float64   `json:"longitude"`
	RadiusMeters    int       `json:"radius_meters"`
	SortOrder       int       `json:"sort_order"`
	GiftDescription *string   `json:"gift_description"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func toChallengeRow(ch domain.Challenge) challengeRow {
	return challengeRow{
		ID:              ch.ID,
		Title:           ch.Title,
		Description:     ch.Description,
		Password:        ch.Password,
		Letter:          ch.Letter,
		Latitude:        ch.Latitude,
		Longitude:       ch.Longitude,
		RadiusMeters:    ch.RadiusMeters,
		SortOrder:       ch.SortOrder,
		GiftDescription: ch.GiftDescription,
		IsActive:        ch.IsActive,
		CreatedAt:       ch.CreatedAt,
		UpdatedAt:       ch.UpdatedAt,
	}
}

type challengeInput struct {
	Title           string  `json:"title"`
	Description     *string `json:"description"`
	Password        string  `json:"password"`
	Letter          string  `json:"letter"`
	Latitude        float64 `json:"latitude"`
	Longitude       float64 `json:"longitude"`
	RadiusMeters    int     `json:"radius_meters"`
	SortOrder       int     `json:"sort_order"`
	GiftDescription *string `json:"gift_description"`
	IsActive        *bool   `json:"is_active"`
}

func (in *challengeInput) validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return domain.ErrValidation("title is required")
	}
	if strings.TrimSpace(in.Password) == "" {
		return domain.ErrValidation("password is required")
	}
	if l := strings.TrimSpace(in.Letter); len(l) != 1 {
		return domain.ErrValidation("letter must be a single character")
	}
	if err := domain.ValidateCoordinates(in.Latitude, in.Longitude); err != nil {
		return domain.ErrValidation(err.Error())
	}
	if in.RadiusMeters <= 0 {
		return domain.ErrValidation("radius_meters must be positive")
	}
	return nil
}

// ListChallenges handles GET /admin/challenges.
func (h *ChallengeAdminHandler) ListChallenges(w http.ResponseWriter, r *http.Request) {
	challenges, err := h.challenges.List(r.Context(), h.pool)
	if err != nil {
		handler.RespondError(w, domain.ErrInternal("list challenges", err))
		return
	}

	rows := make([]challengeRow, len(challenges))
	for i, ch := range challenges {
		rows[i] = toChallengeRow(ch)
	}
	handler.RespondJSON(w, http.StatusOK, rows)
}

// CreateChallenge handles POST /admin/challenges.
func (h *ChallengeAdminHandler) CreateChallenge(w http.ResponseWriter, r *http.Request) {
	var input challengeInput
	if err := handler.DecodeJSON(r, &input); err != nil {
		handler.RespondJSON(w, http.StatusBadRequest, map[string]string{
			"code": "VALIDATION_ERROR", "message": "invalid request body",
		})
		return
	}
	if err := input.validate(); err != nil {
		handler.RespondError(w, err)
		return
	}

	ch := domain.Challenge{
		Title:           strings.TrimSpace(input.Title),
		Description:     input.Description,
		Password:        strings.TrimSpace(input.Password),
		Letter:          strings.ToUpper(strings.TrimSpace(input.Letter)),
		Latitude:        input.Latitude,
		Longitude:       input.Longitude,
		RadiusMeters:    input.RadiusMeters,
		SortOrder:       input.SortOrder,
		GiftDescription: input.GiftDescription,
		IsActive:        true,
	}
	if input.IsActive != nil {
		ch.IsActive = *input.IsActive
	}

	if err := h.challenges.Create(r.Context(), h.pool, &ch); err != nil {
		handler.RespondError(w, domain.ErrInternal("create challenge", err))
		return
	}
	h.invalidate(r.Context())

	handler.RespondJSON(w, http.StatusCreated, toChallengeRow(ch))
}

// UpdateChallenge handles PUT /admin/challenges/{id}.
func (h *ChallengeAdminHandler) UpdateChallenge(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		handler.RespondError(w, domain.ErrValidation("invalid challenge id"))
		return
	}

	var input challengeInput
	if err := handler.DecodeJSON(r, &input); err != nil {
		handler.RespondJSON(w, http.StatusBadRequest, map[string]string{
			"code": "VALIDATION_ERROR", "message": "invalid request body",
		})
		return
	}
	if err := input.validate(); err != nil {
		handler.RespondError(w, err)
		return
	}

	existing, err := h.challenges.FindByID(r.Context(), h.pool, id)
	if err != nil {
		handler.RespondError(w, domain.ErrInternal("find challenge", err))
		return
	}
	if existing == nil {
		handler.RespondError(w, domain.ErrNotFound("challenge", id.String()))
		return
	}

	existing.Title = strings.TrimSpace(input.Title)
	existing.Description = input.Description
	existing.Password = strings.TrimSpace(input.Password)
	existing.Letter = strings.ToUpper(strings.TrimSpace(input.Letter))
	existing.Latitude = input.Latitude
	existing.Longitude = input.Longitude
	existing.RadiusMeters = input.RadiusMeters
	existing.SortOrder = input.SortOrder
	existing.GiftDescription = input.GiftDescription
	if input.IsActive != nil {
		existing.IsActive = *input.IsActive
	}

	if err := h.challenges.Update(r.Context(), h.pool, existing); err != nil {
		handler.RespondError(w, domain.ErrInternal("update challenge", err))
		return
	}
	h.invalidate(r.Context())

	handler.RespondJSON(w, http.StatusOK, toChallengeRow(*existing))
}

// ToggleChallenge handles PATCH /admin/challenges/{id}/toggle.
func (h *ChallengeAdminHandler) ToggleChallenge(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		handler.RespondError(w, domain.ErrValidation("invalid challenge id"))
		return
	}

	if err := h.challenges.ToggleActive(r.Context(), h.pool, id); err != nil {
		handler.RespondError(w, domain.ErrInternal("toggle challenge", err))
		return
	}
	h.invalidate(r.Context())

	handler.RespondJSON(w, http.StatusOK, map[string]string{"status": "toggled"})
}

// DeleteChallenge handles DELETE /admin/challenges/{id}.
func (h *ChallengeAdminHandler) DeleteChallenge(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		handler.RespondError(w, domain.ErrValidation("invalid challenge id"))
		return
	}

	if err := h.challenges.Delete(r.Context(), h.pool, id); err != nil {
		handler.RespondError(w, domain.ErrInternal("delete challenge", err))
		return
	}
	h.invalidate(r.Context())

	handler.RespondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *ChallengeAdminHandler) invalidate(ctx context.Context) {
	if h.cache != nil {
		// Stale reads self-heal at TTL expiry; invalidation failure is not fatal.
		_ = h.cache.Invalidate(ctx)
	}
}
