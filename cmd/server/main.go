package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/tilematch/backend/internal/api"
	"github.com/tilematch/backend/internal/config"
	"github.com/tilematch/backend/internal/factory"
	redisstorage "github.com/tilematch/backend/internal/storage/redis"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(cfg.LogLevel),
	}))
	slog.SetDefault(logger)

	// Build factory config
	factoryCfg := factory.Config{
		Logger:      logger,
		StorageType: cfg.StorageType,
	}

	// Configure Redis if storage type is redis
	if factoryCfg.StorageType == factory.StorageTypeRedis {
		if cfg.RedisURL == "" {
			logger.Error("REDIS_URL required when STORAGE_TYPE=redis")
			os.Exit(1)
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.RedisURL
		factoryCfg.RedisConfig = &redisCfg
	}

	// Create application factory
	app, err := factory.New(factoryCfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Install built-in themes
	if err := app.ThemeService.SeedDefaults(context.Background()); err != nil {
		logger.Warn("could not seed themes", slog.String("error", err.Error()))
	}

	// Create API router
	router := api.NewRouter(api.RouterConfig{
		Logger:             logger,
		IngestFacade:       app.IngestFacade,
		ProgressionService: app.ProgressionService,
		LeaderboardService: app.LeaderboardService,
		AchievementService: app.AchievementService,
		MultiplayerService: app.MultiplayerService,
		IdentityService:    app.IdentityService,
		UserService:        app.UserService,
		ThemeService:       app.ThemeService,
	})

	// Create server
	serverConfig := api.DefaultServerConfig()
	serverConfig.Host = cfg.Host
	serverConfig.Port = cfg.Port
	server := api.NewServer(router, serverConfig, logger)

	// Handle graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started", slog.String("addr", server.Addr()))

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}

func logLevel(raw string) slog.Level {
	switch strings.ToLower(raw) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
