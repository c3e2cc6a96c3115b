package theme

import (
	"context"
	"errors"
	"log/slog"

	"github.com/tilematch/backend/internal/model"
	"github.com/tilematch/backend/internal/storage"
)

// Service serves the tile theme catalog
type Service struct {
	storage storage.Storage
	logger  *slog.Logger
}

// New creates a new theme Service
func New(storage storage.Storage, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		logger:  logger,
	}
}

// List returns every theme in the catalog
func (s *Service) List(ctx context.Context) ([]*model.Theme, error) {
	return s.storage.ListThemes(ctx)
}

// Get returns a single theme by name
func (s *Service) Get(ctx context.Context, name string) (*model.Theme, error) {
	return s.storage.GetTheme(ctx, name)
}

// defaultThemes is the built-in catalog
var defaultThemes = []*model.Theme{
	{
		Name:        "animals",
		DisplayName: "Animals",
		Tiles:       []string{"🐶", "🐱", "🐰", "🦊", "🐻", "🐼", "🐨", "🦁"},
	},
	{
		Name:        "fruits",
		DisplayName: "Fruits",
		Tiles:       []string{"🍎", "🍌", "🍇", "🍓", "🍊", "🍉", "🍒", "🥝"},
	},
	{
		Name:        "shapes",
		DisplayName: "Shapes",
		Tiles:       []string{"🔷", "🔶", "⬛", "⭕", "🔺", "⬜", "💠", "🔻"},
	},
	{
		Name:        "space",
		DisplayName: "Space",
		Tiles:       []string{"🚀", "🌙", "⭐", "🪐", "☄️", "🛸", "🌍", "🌞"},
		IsPremium:   true,
	},
	{
		Name:        "ocean",
		DisplayName: "Ocean",
		Tiles:       []string{"🐠", "🐙", "🦀", "🐬", "🐳", "🦈", "🐡", "🪸"},
		IsPremium:   true,
	},
}

// SeedDefaults installs the built-in themes that are not already stored.
// Existing entries are left alone so catalog edits survive restarts.
func (s *Service) SeedDefaults(ctx context.Context) error {
	for _, t := range defaultThemes {
		_, err := s.storage.GetTheme(ctx, t.Name)
		if err == nil {
			continue
		}
		if !errors.Is(err, model.ErrThemeNotFound) {
			return err
		}
		if err := s.storage.SaveTheme(ctx, t); err != nil {
			return err
		}
		s.logger.Debug("seeded theme", slog.String("name", t.Name))
	}
	return nil
}
