// Package app assembles the HTTP router. Both cmd/api and the integration
// tests build the server through NewRouter.
package app

import (
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/lettertrail/platform/internal/auth"
	"github.com/lettertrail/platform/internal/cache"
	"github.com/lettertrail/platform/internal/guard"
	"github.com/lettertrail/platform/internal/handler"
	adminhandler "github.com/lettertrail/platform/internal/handler/admin"
	"github.com/lettertrail/platform/internal/repository"
	"github.com/lettertrail/platform/internal/service"
	"github.com/lettertrail/platform/internal/ws"
)

// RouterDeps holds all dependencies needed by NewRouter.
type RouterDeps struct {
	Pool   *pgxpool.Pool
	Redis  *redis.Client // nil disables the challenge cache
	JWTMgr *auth.JWTManager
	Logger *slog.Logger
	Hub    *ws.Hub // nil disables the live location feed

	EnforceChallengeOrder bool
	LocationRetention     time.Duration
	CORSAllowedOrigins    string
	RateLimitPerMinute    int // zero disables
}

// NewRouter assembles the chi.Router with all routes and middleware.
func NewRouter(deps RouterDeps) chi.Router {
	pool := deps.Pool
	jwtMgr := deps.JWTMgr
	logger := deps.Logger

	// Repositories
	playerRepo := repository.NewPlayerRepository()
	challengeRepo := repository.NewChallengeRepository()
	locationRepo := repository.NewLocationRepository()
	progressRepo := repository.NewProgressRepository()
	adminUserRepo := repository.NewAdminUserRepository()
	outboxRepo := repository.NewOutboxRepository()

	// Optional challenge cache
	var challengeCache *cache.ChallengeCache
	if deps.Redis != nil {
		challengeCache = cache.NewChallengeCache(deps.Redis)
	}

	policy := service.DefaultPolicy()
	policy.EnforceChallengeOrder = deps.EnforceChallengeOrder
	if deps.LocationRetention > 0 {
		policy.LocationRetention = deps.LocationRetention
	}

	// Services
	gameDeps := service.GameDeps{
		DB:         pool,
		Players:    playerRepo,
		Challenges: challengeRepo,
		Locations:  locationRepo,
		Progress:   progressRepo,
		Outbox:     outboxRepo,
		Policy:     policy,
		Logger:     logger,
	}
	if challengeCache != nil {
		gameDeps.Cache = challengeCache
	}
	if deps.Hub != nil {
		gameDeps.Feed = deps.Hub
	}
	gameSvc := service.NewGameService(gameDeps)
	adminAuthSvc := service.NewAdminAuthService(pool, adminUserRepo, jwtMgr)

	// Handlers
	playerAPI := handler.NewPlayerAPIHandler(gameSvc)
	adminAuth := handler.NewAdminAuthHandler(adminAuthSvc)

	var invalidator adminhandler.CacheInvalidator
	if challengeCache != nil {
		invalidator = challengeCache
	}
	challengeAdmin := adminhandler.NewChallengeAdminHandler(pool, challengeRepo, invalidator)
	playerAdmin := adminhandler.NewPlayerAdminHandler(pool, playerRepo)
	locationAdmin := adminhandler.NewLocationAdminHandler(pool, locationRepo)

	// Router
	r := chi.NewRouter()

	// Global middleware (order matters)
	r.Use(handler.Recovery(logger))
	r.Use(handler.RequestID)
	r.Use(handler.RequestLogger(logger))
	r.Use(handler.CORSWithOrigins(deps.CORSAllowedOrigins))

	// Health (no auth)
	r.Group(func(r chi.Router) {
		r.Use(handler.JSONContentType)
		r.Get("/health", handler.HealthHandler(pool))

		// Public endpoints carry the brute-force throttle; codes and
		// challenge passwords are guessable secrets.
		r.Group(func(r chi.Router) {
			if deps.RateLimitPerMinute > 0 {
				limiter := guard.NewRateLimiter(deps.RateLimitPerMinute, time.Minute)
				r.Use(handler.RateLimit(limiter))
			}

			// Player API: one public endpoint, action dispatch in the handler
			r.Post("/player-api", playerAPI.Handle)

			// Admin login (no auth)
			r.Post("/admin/login", adminAuth.Login)
		})

		// Admin console routes
		r.Route("/admin", func(r chi.Router) {
			r.Use(auth.AuthenticateAdmin(jwtMgr))

			r.Route("/challenges", func(r chi.Router) {
				r.Get("/", challengeAdmin.ListChallenges)
				r.Post("/", challengeAdmin.CreateChallenge)
				r.Put("/{id}", challengeAdmin.UpdateChallenge)
				r.Patch("/{id}/toggle", challengeAdmin.ToggleChallenge)
				r.Delete("/{id}", challengeAdmin.DeleteChallenge)
			})

			r.Route("/players", func(r chi.Router) {
				r.Get("/", playerAdmin.ListPlayers)
				r.Post("/", playerAdmin.CreatePlayer)
				r.Patch("/{id}/toggle", playerAdmin.TogglePlayer)
				r.Delete("/{id}", playerAdmin.DeletePlayer)
			})

			r.Get("/locations", locationAdmin.ListRecent)
		})
	})

	// WebSocket feed outside the JSON group; the upgrade writes no JSON body.
	if deps.Hub != nil {
		wsHandler := ws.NewHandler(deps.Hub, deps.CORSAllowedOrigins, logger)
		r.Group(func(r chi.Router) {
			r.Use(auth.AuthenticateAdmin(jwtMgr))
			r.Get("/admin/locations/live", wsHandler.Serve)
		})
	}

	return r
}
