package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/lettertrail/platform/internal/domain"
	"github.com/lettertrail/platform/internal/repository"
)

// Broadcaster pushes events to connected admin consoles.
type Broadcaster interface {
	Publish(event string, data interface{})
}

// ChallengeCache is the cache-aside store for the active challenge list.
type ChallengeCache interface {
	GetActive(ctx context.Context) ([]domain.Challenge, error)
	SetActive(ctx context.Context, challenges []domain.Challenge) error
}

// Policy holds the configurable hunt rules.
type Policy struct {
	// EnforceChallengeOrder requires every active challenge with a lower
	// sort_order to be completed before a later one can be unlocked.
	EnforceChallengeOrder bool
	// LocationRetention is the rolling window for GPS pings.
	LocationRetention time.Duration
}

// DefaultPolicy matches the original hunt rules: any order, 7-day retention.
func DefaultPolicy() Policy {
	return Policy{
		EnforceChallengeOrder: false,
		LocationRetention:     domain.LocationRetention,
	}
}

// GameDeps holds the dependencies for a GameService.
type GameDeps struct {
	DB         repository.DBTX
	Players    repository.PlayerRepository
	Challenges repository.ChallengeRepository
	Locations  repository.LocationRepository
	Progress   repository.ProgressRepository
	Outbox     repository.OutboxRepository
	Cache      ChallengeCache // optional
	Feed       Broadcaster    // optional
	Policy     Policy
	Logger     *slog.Logger
}

// GameService implements the player-facing actions: login, challenge
// listing, progress, location tracking and challenge attempts. It owns the
// gating invariants; handlers stay thin.
type GameService struct {
	db         repository.DBTX
	players    repository.PlayerRepository
	challenges repository.ChallengeRepository
	locations  repository.LocationRepository
	progress   repository.ProgressRepository
	outbox     repository.OutboxRepository
	cache      ChallengeCache
	feed       Broadcaster
	policy     Policy
	logger     *slog.Logger
}

// NewGameService creates a GameService.
func NewGameService(deps GameDeps) *GameService {
	return &GameService{
		db:         deps.DB,
		players:    deps.Players,
		challenges: deps.Challenges,
		locations:  deps.Locations,
		progress:   deps.Progress,
		outbox:     deps.Outbox,
		cache:      deps.Cache,
		feed:       deps.Feed,
		policy:     deps.Policy,
		logger:     deps.Logger,
	}
}

// Login resolves an access code to a player. Codes are compared uppercased
// and trimmed; unknown and inactive players get the same answer so the
// response does not reveal which codes exist.
func (s *GameService) Login(ctx context.Context, code string) (*domain.Player, error) {
	if err := domain.ValidateCode(code); err != nil {
		return nil, domain.ErrValidation("Invalid code")
	}

	player, err := s.players.FindByCode(ctx, s.db, domain.NormalizeCode(code))
	if err != nil {
		return nil, domain.ErrInternal("find player", err)
	}
	if player == nil || !player.IsActive {
		return nil, domain.ErrUnauthorized("Invalid code")
	}
	return player, nil
}

// ActiveChallenges returns the active challenge list in sort order,
// cache-aside when a cache is configured. Cache failures degrade to the
// database, never to an error.
func (s *GameService) ActiveChallenges(ctx context.Context) ([]domain.Challenge, error) {
	if s.cache != nil {
		cached, err := s.cache.GetActive(ctx)
		if err != nil {
			s.logger.Warn("challenge cache read failed", "error", err)
		} else if cached != nil {
			return cached, nil
		}
	}

	challenges, err := s.challenges.ListActive(ctx, s.db)
	if err != nil {
		return nil, domain.ErrInternal("list challenges", err)
	}

	if s.cache != nil {
		if err := s.cache.SetActive(ctx, challenges); err != nil {
			s.logger.Warn("challenge cache write failed", "error", err)
		}
	}
	return challenges, nil
}

// ProgressFor returns the progress rows for a player.
func (s *GameService) ProgressFor(ctx context.Context, playerID uuid.UUID) ([]domain.PlayerProgress, error) {
	progress, err := s.progress.ListByPlayer(ctx, s.db, playerID)
	if err != nil {
		return nil, domain.ErrInternal("list progress", err)
	}
	return progress, nil
}

// TrackLocation appends a GPS ping and applies the retention window. The
// retention delete and the outbox/feed publication are advisory: their
// failure is logged but never fails the ping.
func (s *GameService) TrackLocation(ctx context.Context, playerID uuid.UUID, latitude, longitude float64) error {
	if err := domain.ValidateCoordinates(latitude, longitude); err != nil {
		return domain.ErrValidation(err.Error())
	}

	player, err := s.players.FindByID(ctx, s.db, playerID)
	if err != nil {
		return domain.ErrInternal("find player", err)
	}
	if player == nil || !player.IsActive {
		return domain.ErrUnauthorized("Unknown player")
	}

	loc := &domain.PlayerLocation{
		PlayerID:  playerID,
		Latitude:  latitude,
		Longitude: longitude,
	}
	if err := s.locations.Insert(ctx, s.db, loc); err != nil {
		return domain.ErrInternal("insert location", err)
	}

	if draft, err := domain.NewLocationPingedEvent(*loc); err != nil {
		s.logger.Warn("build location event failed", "error", err)
	} else if err := s.outbox.Insert(ctx, s.db, draft); err != nil {
		s.logger.Warn("outbox insert failed", "error", err, "player_id", playerID)
	}

	cutoff := time.Now().Add(-s.policy.LocationRetention)
	if deleted, err := s.locations.DeleteOlderThan(ctx, s.db, cutoff); err != nil {
		s.logger.Warn("location retention delete failed", "error", err)
	} else if deleted > 0 {
		s.logger.Info("pruned stale locations", "deleted", deleted)
	}

	if s.feed != nil {
		s.feed.Publish(domain.EventLocationPinged, domain.LocationWithPlayer{
			PlayerLocation: *loc,
			PlayerName:     player.Name,
		})
	}
	return nil
}

// AttemptInput holds an attempt-challenge request.
type AttemptInput struct {
	PlayerID    uuid.UUID
	ChallengeID uuid.UUID
	Password    string
	Latitude    float64
	Longitude   float64
}

// AttemptResult is the reward payload for a successful unlock. Repeat
// attempts return the same payload without creating a second progress row.
type AttemptResult struct {
	Letter           string
	Gift             *string
	ChallengeTitle   string
	AlreadyCompleted bool
}

// AttemptChallenge validates an unlock attempt. Check order is fixed:
// identity, challenge existence, proximity, password, ordering policy.
// Proximity before password, so a too-far attempt never learns whether its
// password was right.
func (s *GameService) AttemptChallenge(ctx context.Context, input AttemptInput) (*AttemptResult, error) {
	if err := domain.ValidateAttemptPassword(input.Password); err != nil {
		return nil, domain.ErrValidation(err.Error())
	}
	if err := domain.ValidateCoordinates(input.Latitude, input.Longitude); err != nil {
		return nil, domain.ErrValidation(err.Error())
	}

	player, err := s.players.FindByID(ctx, s.db, input.PlayerID)
	if err != nil {
		return nil, domain.ErrInternal("find player", err)
	}
	if player == nil || !player.IsActive {
		return nil, domain.ErrUnauthorized("Unknown player")
	}

	challenge, err := s.challenges.FindByID(ctx, s.db, input.ChallengeID)
	if err != nil {
		return nil, domain.ErrInternal("find challenge", err)
	}
	if challenge == nil {
		return nil, domain.ErrNotFound("challenge", input.ChallengeID.String())
	}

	distance := domain.Haversine(input.Latitude, input.Longitude, challenge.Latitude, challenge.Longitude)
	if distance > float64(challenge.RadiusMeters) {
		return nil, domain.ErrTooFar(distance)
	}

	if !domain.PasswordsMatch(input.Password, challenge.Password) {
		return nil, domain.ErrWrongPassword()
	}

	if s.policy.EnforceChallengeOrder {
		locked, err := s.progress.HasIncompleteBefore(ctx, s.db, input.PlayerID, challenge.SortOrder)
		if err != nil {
			return nil, domain.ErrInternal("check prerequisites", err)
		}
		if locked {
			return nil, domain.ErrChallengeLocked()
		}
	}

	inserted, err := s.progress.Record(ctx, s.db, input.PlayerID, input.ChallengeID)
	if err != nil {
		return nil, domain.ErrInternal("record progress", err)
	}

	return &AttemptResult{
		Letter:           challenge.Letter,
		Gift:             challenge.GiftDescription,
		ChallengeTitle:   challenge.Title,
		AlreadyCompleted: !inserted,
	}, nil
}
