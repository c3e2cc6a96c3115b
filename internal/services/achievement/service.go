package achievement

import (
	"context"
	"errors"
	"log/slog"
	"math"

	"github.com/google/uuid"

	"github.com/tilematch/backend/internal/dependencies/clock"
	"github.com/tilematch/backend/internal/model"
	"github.com/tilematch/backend/internal/storage"
)

// Service tracks achievement progress per (user, type, name) key.
//
// Each key moves through absent -> in-progress -> unlocked. Unlocked is
// terminal: later reports are accepted but can never lower progress or
// clear the unlock timestamp.
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new achievement Service
func New(storage storage.Storage, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		logger:  logger,
	}
}

// ReportProgress records progress toward an achievement, creating the row on
// first sight. A report only takes effect when it is strictly greater than
// the stored progress; crossing the unlock threshold stamps UnlockedAt
// exactly once. Returns the stored row and whether this call unlocked it.
func (s *Service) ReportProgress(ctx context.Context, userID model.UserID, achievementType, name, description string, progress int) (*model.Achievement, bool, error) {
	if !model.ValidProgress(progress) {
		return nil, false, model.ErrInvalidProgress
	}

	now := s.clock.Now()

	existing, err := s.storage.GetAchievement(ctx, userID, achievementType, name)
	if err != nil && !errors.Is(err, model.ErrAchievementNotFound) {
		return nil, false, err
	}

	if existing == nil {
		row := &model.Achievement{
			ID:              uuid.NewString(),
			UserID:          userID,
			AchievementType: achievementType,
			Name:            name,
			Description:     description,
			Progress:        progress,
			IsUnlocked:      progress >= model.ProgressComplete,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if row.IsUnlocked {
			row.UnlockedAt = now
		}
		if err := s.storage.SaveAchievement(ctx, row); err != nil {
			return nil, false, err
		}
		if row.IsUnlocked {
			s.logger.Info("achievement unlocked",
				slog.String("user_id", string(userID)),
				slog.String("name", name),
			)
		}
		return row, row.IsUnlocked, nil
	}

	if progress <= existing.Progress {
		// Stale or duplicate report; terminal and monotonic state hold
		return existing, false, nil
	}

	updated := *existing
	updated.Progress = progress
	updated.UpdatedAt = now

	newlyUnlocked := false
	if progress >= model.ProgressComplete && !existing.IsUnlocked {
		updated.IsUnlocked = true
		updated.UnlockedAt = now
		newlyUnlocked = true
	}

	if err := s.storage.SaveAchievement(ctx, &updated); err != nil {
		return nil, false, err
	}

	if newlyUnlocked {
		s.logger.Info("achievement unlocked",
			slog.String("user_id", string(userID)),
			slog.String("name", name),
		)
	}
	return &updated, newlyUnlocked, nil
}

// Unlock records an achievement as fully complete in one step
func (s *Service) Unlock(ctx context.Context, userID model.UserID, achievementType, name, description string) (*model.Achievement, bool, error) {
	return s.ReportProgress(ctx, userID, achievementType, name, description, model.ProgressComplete)
}

// ListForUser returns the user's achievements, most recently unlocked first
func (s *Service) ListForUser(ctx context.Context, userID model.UserID) ([]*model.Achievement, error) {
	return s.storage.GetAchievementsForUser(ctx, userID)
}

// Stats summarizes a user's achievement state
type Stats struct {
	Total           int
	Unlocked        int
	Locked          int
	AverageProgress int
	CompletionRate  int
}

// GetStats computes achievement counts and average progress for a user.
// A user with no achievements yields all zeros, never a division by zero.
func (s *Service) GetStats(ctx context.Context, userID model.UserID) (*Stats, error) {
	rows, err := s.storage.GetAchievementsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats := &Stats{Total: len(rows)}
	if len(rows) == 0 {
		return stats, nil
	}

	progressSum := 0
	for _, row := range rows {
		progressSum += row.Progress
		if row.IsUnlocked {
			stats.Unlocked++
		}
	}
	stats.Locked = stats.Total - stats.Unlocked
	stats.AverageProgress = int(math.Round(float64(progressSum) / float64(stats.Total)))
	stats.CompletionRate = int(math.Round(float64(stats.Unlocked) / float64(stats.Total) * 100))
	return stats, nil
}
