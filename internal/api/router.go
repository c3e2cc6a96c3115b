package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tilematch/backend/internal/api/handler"
	"github.com/tilematch/backend/internal/api/middleware"
	"github.com/tilematch/backend/internal/services/achievement"
	"github.com/tilematch/backend/internal/services/identity"
	"github.com/tilematch/backend/internal/services/ingest"
	"github.com/tilematch/backend/internal/services/leaderboard"
	"github.com/tilematch/backend/internal/services/multiplayer"
	"github.com/tilematch/backend/internal/services/progression"
	"github.com/tilematch/backend/internal/services/theme"
	"github.com/tilematch/backend/internal/services/user"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger             *slog.Logger
	IngestFacade       *ingest.Facade
	ProgressionService *progression.Service
	LeaderboardService *leaderboard.Service
	AchievementService *achievement.Service
	MultiplayerService *multiplayer.Service
	IdentityService    *identity.Service
	UserService        *user.Service
	ThemeService       *theme.Service
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	gameHandler := handler.NewGameHandler(cfg.IngestFacade, cfg.ProgressionService, cfg.MultiplayerService)
	leaderboardHandler := handler.NewLeaderboardHandler(cfg.LeaderboardService)
	achievementHandler := handler.NewAchievementHandler(cfg.AchievementService)
	authHandler := handler.NewAuthHandler(cfg.IdentityService)
	userHandler := handler.NewUserHandler(cfg.UserService, cfg.IdentityService)
	themeHandler := handler.NewThemeHandler(cfg.ThemeService)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.IdentityService)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Result submission and progress routes. Submissions are trusted by
	// user ID, matching the mobile client contract.
	api.HandleFunc("/game/level-result", gameHandler.SubmitLevelResult).Methods(http.MethodPost)
	api.HandleFunc("/game/arcade-result", gameHandler.SubmitArcadeResult).Methods(http.MethodPost)
	api.HandleFunc("/game/multiplayer-result", gameHandler.SubmitMultiplayerResult).Methods(http.MethodPost)
	api.HandleFunc("/game/progress/{user_id}", gameHandler.GetProgress).Methods(http.MethodGet)
	api.HandleFunc("/game/sessions/{user_id}", gameHandler.GetSessions).Methods(http.MethodGet)
	api.HandleFunc("/game/multiplayer/{user_id}", gameHandler.GetMultiplayerHistory).Methods(http.MethodGet)

	// Leaderboard routes
	api.HandleFunc("/leaderboard", leaderboardHandler.Get).Methods(http.MethodGet)

	// Achievement routes
	api.HandleFunc("/achievements/progress", achievementHandler.ReportProgress).Methods(http.MethodPost)
	api.HandleFunc("/achievements/unlock", achievementHandler.Unlock).Methods(http.MethodPost)
	api.HandleFunc("/achievements/{user_id}", achievementHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/achievements/{user_id}/stats", achievementHandler.GetStats).Methods(http.MethodGet)

	// Auth routes
	api.HandleFunc("/auth/register", authHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)

	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(authMiddleware)
	authProtected.HandleFunc("/logout", authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", authHandler.GetMe).Methods(http.MethodGet)

	// User profile routes; mutations require an authenticated session
	api.HandleFunc("/users/{user_id}", userHandler.GetProfile).Methods(http.MethodGet)

	userProtected := api.PathPrefix("/users").Subrouter()
	userProtected.Use(authMiddleware)
	userProtected.HandleFunc("/{user_id}/settings", userHandler.UpdateSettings).Methods(http.MethodPatch)
	userProtected.HandleFunc("/{user_id}", userHandler.Delete).Methods(http.MethodDelete)

	// Theme catalog routes
	api.HandleFunc("/themes", themeHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/themes/{name}", themeHandler.Get).Methods(http.MethodGet)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
