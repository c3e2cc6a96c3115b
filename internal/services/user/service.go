package user

import (
	"context"
	"log/slog"

	"github.com/tilematch/backend/internal/dependencies/clock"
	"github.com/tilematch/backend/internal/model"
	"github.com/tilematch/backend/internal/services/progression"
	"github.com/tilematch/backend/internal/storage"
)

// Profile is a user document with its derived experience level
type Profile struct {
	User  *model.User
	Level int
}

// Service serves user profiles and settings
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new user Service
func New(storage storage.Storage, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		logger:  logger,
	}
}

// GetProfile returns a user's profile. The experience level is derived
// from total XP rather than stored.
func (s *Service) GetProfile(ctx context.Context, userID model.UserID) (*Profile, error) {
	u, err := s.storage.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &Profile{
		User:  u,
		Level: progression.LevelForXP(u.TotalXP),
	}, nil
}

// UpdateSettings merges the given settings into the user's stored
// settings. Keys not present in the update are left untouched.
func (s *Service) UpdateSettings(ctx context.Context, userID model.UserID, settings map[string]any) (*model.User, error) {
	u, err := s.storage.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if u.Settings == nil {
		u.Settings = map[string]any{}
	}
	for k, v := range settings {
		u.Settings[k] = v
	}
	u.LastUpdated = s.clock.Now()

	if err := s.storage.SaveUser(ctx, u); err != nil {
		return nil, err
	}

	s.logger.Info("user settings updated", slog.String("user_id", string(userID)))
	return u, nil
}
