package admin

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lettertrail/platform/internal/domain"
	"github.com/lettertrail/platform/internal/handler"
	"github.com/lettertrail/platform/internal/repository"
)

// PlayerAdminHandler handles admin player management.
type PlayerAdminHandler struct {
	pool    *pgxpool.Pool
	players repository.PlayerRepository
}

// NewPlayerAdminHandler creates a new PlayerAdminHandler.
func NewPlayerAdminHandler(pool *pgxpool.Pool, players repository.PlayerRepository) *PlayerAdminHandler {
	return &PlayerAdminHandler{pool: pool, players: players}
}

// ListPlayers handles GET /admin/players.
func (h *PlayerAdminHandler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	players, err := h.players.List(r.Context(), h.pool)
	if err != nil {
		handler.RespondError(w, domain.ErrInternal("list players", err))
		return
	}
	if players == nil {
		players = []domain.Player{}
	}
	handler.RespondJSON(w, http.StatusOK, players)
}

// CreatePlayer handles POST /admin/players.
func (h *PlayerAdminHandler) CreatePlayer(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name string `json:"name"`
		Code string `json:"code"`
	}
	if err := handler.DecodeJSON(r, &input); err != nil {
		handler.RespondJSON(w, http.StatusBadRequest, map[string]string{
			"code": "VALIDATION_ERROR", "message": "invalid request body",
		})
		return
	}

	if strings.TrimSpace(input.Name) == "" {
		handler.RespondError(w, domain.ErrValidation("name is required"))
		return
	}
	if err := domain.ValidateCode(input.Code); err != nil {
		handler.RespondError(w, domain.ErrValidation(err.Error()))
		return
	}

	player := domain.Player{
		Name:     strings.TrimSpace(input.Name),
		Code:     domain.NormalizeCode(input.Code),
		IsActive: true,
	}
	if err := h.players.Create(r.Context(), h.pool, &player); err != nil {
		if repository.IsUniqueViolation(err) {
			handler.RespondError(w, domain.ErrConflict("access code already in use"))
			return
		}
		handler.RespondError(w, domain.ErrInternal("create player", err))
		return
	}

	handler.RespondJSON(w, http.StatusCreated, player)
}

// TogglePlayer handles PATCH /admin/players/{id}/toggle.
func (h *PlayerAdminHandler) TogglePlayer(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		handler.RespondError(w, domain.ErrValidation("invalid player id"))
		return
	}

	if err := h.players.ToggleActive(r.Context(), h.pool, id); err != nil {
		handler.RespondError(w, domain.ErrInternal("toggle player", err))
		return
	}

	handler.RespondJSON(w, http.StatusOK, map[string]string{"status": "toggled"})
}

// DeletePlayer handles DELETE /admin/players/{id}. Progress and location
// rows go with the player via FK cascade.
func (h *PlayerAdminHandler) DeletePlayer(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		handler.RespondError(w, domain.ErrValidation("invalid player id"))
		return
	}

	if err := h.players.Delete(r.Context(), h.pool, id); err != nil {
		handler.RespondError(w, domain.ErrInternal("delete player", err))
		return
	}

	handler.RespondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
