package storage

import (
	"context"

	"github.com/tilematch/backend/internal/model"
)

// Storage defines the interface for data persistence.
//
// The store is the sole point of concurrency control: each engine operation
// is a read-modify-write over these primitives with last-writer-wins
// semantics. List operations return candidates ordered by their ranking key;
// any further filtering or deduplication happens in the service layer.
type Storage interface {
	// User operations
	SaveUser(ctx context.Context, user *model.User) error
	GetUser(ctx context.Context, id model.UserID) (*model.User, error)
	DeleteUser(ctx context.Context, id model.UserID) error

	// Level progress operations
	SaveLevelProgress(ctx context.Context, progress *model.LevelProgress) error
	// SaveLevelProgressBatch writes all rows as a single atomic batch: a
	// cancelled or failed call leaves no partial set visible to readers.
	SaveLevelProgressBatch(ctx context.Context, rows []*model.LevelProgress) error
	GetLevelProgress(ctx context.Context, userID model.UserID, levelNumber int) (*model.LevelProgress, error)
	GetLevelProgressForUser(ctx context.Context, userID model.UserID) ([]*model.LevelProgress, error)
	// ListLevelProgressByBestScore returns up to limit rows ordered by
	// bestScore descending, across all users.
	ListLevelProgressByBestScore(ctx context.Context, limit int) ([]*model.LevelProgress, error)
	DeleteLevelProgressForUser(ctx context.Context, userID model.UserID) error

	// Arcade session operations (append-only log)
	SaveArcadeSession(ctx context.Context, session *model.ArcadeSession) error
	// GetArcadeSessionsForUser returns up to limit sessions ordered by
	// completedAt descending.
	GetArcadeSessionsForUser(ctx context.Context, userID model.UserID, limit int) ([]*model.ArcadeSession, error)
	// ListArcadeSessionsByScore returns up to limit sessions ordered by
	// score descending, across all users.
	ListArcadeSessionsByScore(ctx context.Context, limit int) ([]*model.ArcadeSession, error)
	DeleteArcadeSessionsForUser(ctx context.Context, userID model.UserID) error

	// Multiplayer game operations (immutable records)
	SaveMultiplayerGame(ctx context.Context, game *model.MultiplayerGame) error
	// GetMultiplayerGamesForUser returns up to limit games ordered by
	// timestamp descending.
	GetMultiplayerGamesForUser(ctx context.Context, userID model.UserID, limit int) ([]*model.MultiplayerGame, error)
	DeleteMultiplayerGamesForUser(ctx context.Context, userID model.UserID) error

	// Achievement operations
	SaveAchievement(ctx context.Context, achievement *model.Achievement) error
	GetAchievement(ctx context.Context, userID model.UserID, achievementType, name string) (*model.Achievement, error)
	GetAchievementsForUser(ctx context.Context, userID model.UserID) ([]*model.Achievement, error)
	DeleteAchievementsForUser(ctx context.Context, userID model.UserID) error

	// Credential operations
	SaveCredential(ctx context.Context, cred *model.Credential) error
	GetCredential(ctx context.Context, userID model.UserID) (*model.Credential, error)
	GetCredentialByEmail(ctx context.Context, email string) (*model.Credential, error)
	DeleteCredential(ctx context.Context, userID model.UserID) error

	// Theme catalog operations
	SaveTheme(ctx context.Context, theme *model.Theme) error
	GetTheme(ctx context.Context, name string) (*model.Theme, error)
	ListThemes(ctx context.Context) ([]*model.Theme, error)
}
