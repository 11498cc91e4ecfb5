package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/lettertrail/platform/internal/domain"
	"github.com/lettertrail/platform/internal/service"
)

// Action is the closed set of player API request kinds. The dispatch switch
// below is exhaustive over these values; anything else is a 400.
type Action string

const (
	ActionLogin            Action = "login"
	ActionGetChallenges    Action = "get-challenges"
	ActionGetProgress      Action = "get-progress"
	ActionTrackLocation    Action = "track-location"
	ActionAttemptChallenge Action = "attempt-challenge"
)

// GameAPI is the service surface the player endpoint dispatches to.
type GameAPI interface {
	Login(ctx context.Context, code string) (*domain.Player, error)
	ActiveChallenges(ctx context.Context) ([]domain.Challenge, error)
	ProgressFor(ctx context.Context, playerID uuid.UUID) ([]domain.PlayerProgress, error)
	TrackLocation(ctx context.Context, playerID uuid.UUID, latitude, longitude float64) error
	AttemptChallenge(ctx context.Context, input service.AttemptInput) (*service.AttemptResult, error)
}

// PlayerAPIHandler serves the single public player endpoint. All five
// actions arrive as POST bodies with an "action" discriminator; responses
// use the flat {"error": ...} shape the hunt client expects, unlike the
// admin routes.
type PlayerAPIHandler struct {
	game GameAPI
}

// NewPlayerAPIHandler creates a new PlayerAPIHandler.
func NewPlayerAPIHandler(game GameAPI) *PlayerAPIHandler {
	return &PlayerAPIHandler{game: game}
}

type actionEnvelope struct {
	Action Action `json:"action"`
}

type loginRequest struct {
	Code string `json:"code"`
}

type progressRequest struct {
	PlayerID uuid.UUID `json:"player_id"`
}

// Coordinates are pointers so an absent field is distinguishable from 0,0.
type trackLocationRequest struct {
	PlayerID  uuid.UUID `json:"player_id"`
	Latitude  *float64  `json:"latitude"`
	Longitude *float64  `json:"longitude"`
}

type attemptChallengeRequest struct {
	PlayerID    uuid.UUID `json:"player_id"`
	ChallengeID uuid.UUID `json:"challenge_id"`
	Password    string    `json:"password"`
	Latitude    *float64  `json:"latitude"`
	Longitude   *float64  `json:"longitude"`
}

// Handle serves POST /player-api.
func (h *PlayerAPIHandler) Handle(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writePlayerError(w, domain.ErrValidation("Invalid request"))
		return
	}

	var env actionEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		writePlayerError(w, domain.ErrValidation("Invalid request"))
		return
	}

	switch env.Action {
	case ActionLogin:
		h.login(w, r, body)
	case ActionGetChallenges:
		h.getChallenges(w, r)
	case ActionGetProgress:
		h.getProgress(w, r, body)
	case ActionTrackLocation:
		h.trackLocation(w, r, body)
	case ActionAttemptChallenge:
		h.attemptChallenge(w, r, body)
	default:
		writePlayerError(w, domain.ErrValidation("Unknown action"))
	}
}

func (h *PlayerAPIHandler) login(w http.ResponseWriter, r *http.Request, body []byte) {
	var req loginRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writePlayerError(w, domain.ErrValidation("Invalid request"))
		return
	}

	player, err := h.game.Login(r.Context(), req.Code)
	if err != nil {
		writePlayerError(w, err)
		return
	}

	RespondJSON(w, http.StatusOK, map[string]interface{}{
		"player": map[string]interface{}{
			"id":   player.ID,
			"name": player.Name,
		},
	})
}

func (h *PlayerAPIHandler) getChallenges(w http.ResponseWriter, r *http.Request) {
	challenges, err := h.game.ActiveChallenges(r.Context())
	if err != nil {
		writePlayerError(w, err)
		return
	}
	if challenges == nil {
		challenges = []domain.Challenge{}
	}

	RespondJSON(w, http.StatusOK, map[string]interface{}{"challenges": challenges})
}

func (h *PlayerAPIHandler) getProgress(w http.ResponseWriter, r *http.Request, body []byte) {
	var req progressRequest
	if err := json.Unmarshal(body, &req); err != nil || req.PlayerID == uuid.Nil {
		writePlayerError(w, domain.ErrValidation("Invalid player ID"))
		return
	}

	progress, err := h.game.ProgressFor(r.Context(), req.PlayerID)
	if err != nil {
		writePlayerError(w, err)
		return
	}
	if progress == nil {
		progress = []domain.PlayerProgress{}
	}

	RespondJSON(w, http.StatusOK, map[string]interface{}{"progress": progress})
}

func (h *PlayerAPIHandler) trackLocation(w http.ResponseWriter, r *http.Request, body []byte) {
	var req trackLocationRequest
	if err := json.Unmarshal(body, &req); err != nil || req.PlayerID == uuid.Nil {
		writePlayerError(w, domain.ErrValidation("Invalid player ID"))
		return
	}
	if req.Latitude == nil || req.Longitude == nil {
		writePlayerError(w, domain.ErrValidation("Location required"))
		return
	}

	if err := h.game.TrackLocation(r.Context(), req.PlayerID, *req.Latitude, *req.Longitude); err != nil {
		writePlayerError(w, err)
		return
	}

	RespondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *PlayerAPIHandler) attemptChallenge(w http.ResponseWriter, r *http.Request, body []byte) {
	var req attemptChallengeRequest
	if err := json.Unmarshal(body, &req); err != nil || req.PlayerID == uuid.Nil || req.ChallengeID == uuid.Nil {
		writePlayerError(w, domain.ErrValidation("Invalid request"))
		return
	}
	if req.Latitude == nil || req.Longitude == nil {
		writePlayerError(w, domain.ErrValidation("Location required"))
		return
	}

	result, err := h.game.AttemptChallenge(r.Context(), service.AttemptInput{
		PlayerID:    req.PlayerID,
		ChallengeID: req.ChallengeID,
		Password:    req.Password,
		Latitude:    *req.Latitude,
		Longitude:   *req.Longitude,
	})
	if err != nil {
		writePlayerError(w, err)
		return
	}

	RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success":         true,
		"letter":          result.Letter,
		"gift":            result.Gift,
		"challenge_title": result.ChallengeTitle,
	})
}

// writePlayerError writes the player-facing error shape: a flat "error"
// message plus, on proximity failures, the rounded distance in meters.
func writePlayerError(w http.ResponseWriter, err error) {
	appErr, ok := err.(*domain.AppError)
	if !ok {
		RespondJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		return
	}

	body := map[string]interface{}{"error": appErr.Message}
	if appErr.Code == "TOO_FAR" {
		body["distance"] = appErr.DistanceMeters
	}
	if appErr.Status >= 500 {
		body["error"] = "Internal server error"
	}
	RespondJSON(w, appErr.Status, body)
}
