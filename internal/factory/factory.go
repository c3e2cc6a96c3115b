package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/tilematch/backend/internal/dependencies/clock"
	"github.com/tilematch/backend/internal/dependencies/random"
	"github.com/tilematch/backend/internal/services/achievement"
	"github.com/tilematch/backend/internal/services/identity"
	"github.com/tilematch/backend/internal/services/ingest"
	"github.com/tilematch/backend/internal/services/leaderboard"
	"github.com/tilematch/backend/internal/services/multiplayer"
	"github.com/tilematch/backend/internal/services/progression"
	"github.com/tilematch/backend/internal/services/theme"
	"github.com/tilematch/backend/internal/services/user"
	"github.com/tilematch/backend/internal/storage"
	"github.com/tilematch/backend/internal/storage/memory"
	redisstorage "github.com/tilematch/backend/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	ProgressionService *progression.Service
	LeaderboardService *leaderboard.Service
	AchievementService *achievement.Service
	MultiplayerService *multiplayer.Service
	IngestFacade       *ingest.Facade
	IdentityService    *identity.Service
	UserService        *user.Service
	ThemeService       *theme.Service
}

// Config holds configuration for the application factory
type Config struct {
	// IdentityConfig holds configuration for the identity service (optional)
	// If zero value, defaults to identity.DefaultConfig()
	IdentityConfig identity.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	// Create external dependencies
	clk := clock.New()
	rnd := random.New()

	// Use default identity config if not provided
	identityCfg := cfg.IdentityConfig
	if identityCfg.SessionDuration == 0 {
		identityCfg = identity.DefaultConfig()
	}

	return newWithDependencies(store, clk, rnd, identityCfg, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, identityCfg identity.Config, logger *slog.Logger) *App {
	// Create services
	progressionService := progression.New(store, clk, logger)
	leaderboardService := leaderboard.New(store, logger)
	achievementService := achievement.New(store, clk, logger)
	multiplayerService := multiplayer.New(store, clk, logger)
	ingestFacade := ingest.New(progressionService, achievementService, multiplayerService, logger)
	identityService := identity.New(store, clk, rnd, logger, identityCfg)
	userService := user.New(store, clk, logger)
	themeService := theme.New(store, logger)

	return &App{
		Storage:            store,
		Clock:              clk,
		Random:             rnd,
		ProgressionService: progressionService,
		LeaderboardService: leaderboardService,
		AchievementService: achievementService,
		MultiplayerService: multiplayerService,
		IngestFacade:       ingestFacade,
		IdentityService:    identityService,
		UserService:        userService,
		ThemeService:       themeService,
	}
}
