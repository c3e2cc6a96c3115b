package progression

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/tilematch/backend/internal/dependencies/clock"
	"github.com/tilematch/backend/internal/model"
	"github.com/tilematch/backend/internal/storage"
)

// Service is the progression engine: it turns raw game-result submissions
// into updated per-level records, unlock state and aggregate user stats.
//
// Every operation is a read-modify-write against storage with
// last-writer-wins semantics; merges are monotonic and commutative, so
// concurrent submissions for the same key cannot regress a record.
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new progression Service
func New(storage storage.Storage, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		logger:  logger,
	}
}

// LevelResultInput is a validated level submission
type LevelResultInput struct {
	LevelNumber int
	Score       int
	TimeTaken   int
	Moves       int
	Theme       string
	Completed   bool
}

// LevelResultOutcome is the normalized result of a level submission
type LevelResultOutcome struct {
	NewBest      bool
	PreviousBest int
	StarsEarned  int
	UnlockedNext bool
}

// SubmitLevelResult merges a level submission into the player's progress,
// runs the unlock cascade and accrues aggregate user stats.
func (s *Service) SubmitLevelResult(ctx context.Context, userID model.UserID, input LevelResultInput) (*LevelResultOutcome, error) {
	if !model.ValidLevelNumber(input.LevelNumber) {
		return nil, model.ErrInvalidLevelNumber
	}

	stars := ComputeStars(input.Moves, input.TimeTaken)
	now := s.clock.Now()

	existing, err := s.storage.GetLevelProgress(ctx, userID, input.LevelNumber)
	if err != nil && !errors.Is(err, model.ErrLevelProgressNotFound) {
		return nil, err
	}

	previousBest := 0
	if existing != nil {
		previousBest = existing.BestScore
	}
	newBest := input.Score > previousBest

	var row *model.LevelProgress
	if existing == nil {
		row = &model.LevelProgress{
			UserID:      userID,
			LevelNumber: input.LevelNumber,
			Stars:       stars,
			BestScore:   input.Score,
			BestTime:    input.TimeTaken,
			BestMoves:   input.Moves,
			IsUnlocked:  true,
			IsCompleted: input.Completed || stars > 0,
			TimesPlayed: 1,
			LastPlayed:  now,
			UpdatedAt:   now,
		}
	} else {
		row = mergeResult(existing, input, stars, now)
	}

	if err := s.storage.SaveLevelProgress(ctx, row); err != nil {
		s.logger.Error("failed to save level progress",
			slog.String("user_id", string(userID)),
			slog.Int("level", input.LevelNumber),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	unlockedNext := false
	if stars > 0 && input.LevelNumber < model.MaxLevel {
		if err := s.unlockNextLevel(ctx, userID, input.LevelNumber+1, now); err != nil {
			return nil, err
		}
		unlockedNext = true
	}

	// Best-effort: the level result is already durable, a failed stat
	// accrual is logged rather than failing the submission
	s.accrueUserStats(ctx, userID, input.Score, stars > 0)

	s.logger.Info("level result recorded",
		slog.String("user_id", string(userID)),
		slog.Int("level", input.LevelNumber),
		slog.Int("stars", stars),
		slog.Bool("new_best", newBest),
	)

	return &LevelResultOutcome{
		NewBest:      newBest,
		PreviousBest: previousBest,
		StarsEarned:  stars,
		UnlockedNext: unlockedNext,
	}, nil
}

// mergeResult applies a submission to an existing row monotonically. A row
// with zero progress (timesPlayed == 0, created by initialization or the
// unlock cascade) merges exactly like a missing row.
func mergeResult(existing *model.LevelProgress, input LevelResultInput, stars int, now time.Time) *model.LevelProgress {
	merged := *existing

	merged.Stars = max(existing.Stars, stars)
	merged.BestScore = max(existing.BestScore, input.Score)
	merged.BestTime = minPlayed(existing.BestTime, input.TimeTaken)
	merged.BestMoves = minPlayed(existing.BestMoves, input.Moves)
	merged.IsUnlocked = true
	merged.IsCompleted = existing.IsCompleted || input.Completed || stars > 0
	merged.TimesPlayed = existing.TimesPlayed + 1
	merged.LastPlayed = now
	merged.UpdatedAt = now

	return &merged
}

// minPlayed treats a zero stored value as "never played" rather than a best
func minPlayed(old, new int) int {
	if old == 0 {
		return new
	}
	return min(old, new)
}

// unlockNextLevel ensures a row exists for the next level with
// isUnlocked = true, never regressing any other field
func (s *Service) unlockNextLevel(ctx context.Context, userID model.UserID, levelNumber int, now time.Time) error {
	next, err := s.storage.GetLevelProgress(ctx, userID, levelNumber)
	if err != nil {
		if !errors.Is(err, model.ErrLevelProgressNotFound) {
			return err
		}
		row := model.NewLevelProgress(userID, levelNumber)
		row.IsUnlocked = true
		row.UpdatedAt = now
		return s.storage.SaveLevelProgress(ctx, row)
	}

	if next.IsUnlocked {
		return nil
	}
	next.IsUnlocked = true
	next.UpdatedAt = now
	return s.storage.SaveLevelProgress(ctx, next)
}

// ArcadeResultInput is a validated arcade submission
type ArcadeResultInput struct {
	SessionID string
	Score     int
	Time      int
	Moves     int
	Bonus     int
	Stars     int
	Theme     string
	GridSize  string
}

// ArcadeResultOutcome is the normalized result of an arcade submission
type ArcadeResultOutcome struct {
	SessionID model.SessionID
	Score     int
}

// SubmitArcadeResult appends an immutable arcade session. Sessions are never
// merged or deduplicated at write time; best-of computation happens at read
// time in the leaderboard.
func (s *Service) SubmitArcadeResult(ctx context.Context, userID model.UserID, input ArcadeResultInput) (*ArcadeResultOutcome, error) {
	now := s.clock.Now()

	sessionID := model.SessionID(input.SessionID)
	if sessionID == "" {
		sessionID = model.SessionID(uuid.NewString())
	}

	theme := input.Theme
	if theme == "" {
		theme = "Random"
	}
	gridSize := input.GridSize
	if gridSize == "" {
		gridSize = "Random"
	}

	session := &model.ArcadeSession{
		ID:          sessionID,
		UserID:      userID,
		Score:       input.Score,
		Time:        input.Time,
		Moves:       input.Moves,
		Bonus:       input.Bonus,
		Stars:       input.Stars,
		Theme:       theme,
		GridSize:    gridSize,
		CompletedAt: now,
		CreatedAt:   now,
	}

	if err := s.storage.SaveArcadeSession(ctx, session); err != nil {
		s.logger.Error("failed to save arcade session",
			slog.String("user_id", string(userID)),
			slog.String("session_id", string(sessionID)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	// A finished arcade run always counts as a win; stars only affect display
	s.accrueUserStats(ctx, userID, input.Score+input.Bonus, true)

	s.logger.Info("arcade session recorded",
		slog.String("user_id", string(userID)),
		slog.String("session_id", string(sessionID)),
		slog.Int("score", input.Score),
	)

	return &ArcadeResultOutcome{SessionID: sessionID, Score: input.Score}, nil
}

// InitializeLevels creates the 16-level campaign for a user with only level 1
// unlocked. Idempotent: if the user already has any progress rows it is a
// no-op, so it is safe to race with a result submission for the same user.
func (s *Service) InitializeLevels(ctx context.Context, userID model.UserID) error {
	existing, err := s.storage.GetLevelProgressForUser(ctx, userID)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	now := s.clock.Now()
	rows := make([]*model.LevelProgress, 0, model.MaxLevel)
	for n := model.MinLevel; n <= model.MaxLevel; n++ {
		row := model.NewLevelProgress(userID, n)
		row.UpdatedAt = now
		rows = append(rows, row)
	}

	// One atomic batch: a cancelled init never leaves a partial campaign
	if err := s.storage.SaveLevelProgressBatch(ctx, rows); err != nil {
		return err
	}

	s.logger.Info("levels initialized", slog.String("user_id", string(userID)))
	return nil
}

// ProgressSummary is the full campaign view for one user
type ProgressSummary struct {
	Levels         []*model.LevelProgress
	TotalStars     int
	CompletedCount int
}

// GetProgress returns the user's campaign state, lazily initializing the
// 16 levels for a user the engine has never seen.
func (s *Service) GetProgress(ctx context.Context, userID model.UserID) (*ProgressSummary, error) {
	rows, err := s.storage.GetLevelProgressForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		if err := s.InitializeLevels(ctx, userID); err != nil {
			return nil, err
		}
		rows, err = s.storage.GetLevelProgressForUser(ctx, userID)
		if err != nil {
			return nil, err
		}
	}

	summary := &ProgressSummary{Levels: rows}
	for _, row := range rows {
		summary.TotalStars += row.Stars
		if row.IsCompleted {
			summary.CompletedCount++
		}
	}
	return summary, nil
}

// RecentSessions returns the user's latest arcade sessions, newest first
func (s *Service) RecentSessions(ctx context.Context, userID model.UserID, limit int) ([]*model.ArcadeSession, error) {
	return s.storage.GetArcadeSessionsForUser(ctx, userID, limit)
}

// accrueUserStats applies the commutative aggregate update
// (totalXP += xpDelta, totalGamesPlayed += 1, gamesWon += 1 on a win),
// creating the User row on first sight. A win is a starred result; legacy
// isWin flags from old clients are ignored. Failures are logged, never
// surfaced: the primary result was already durably recorded.
func (s *Service) accrueUserStats(ctx context.Context, userID model.UserID, xpDelta int, won bool) {
	now := s.clock.Now()

	user, err := s.storage.GetUser(ctx, userID)
	if err != nil {
		if !errors.Is(err, model.ErrUserNotFound) {
			s.logger.Warn("skipping user stat accrual",
				slog.String("user_id", string(userID)),
				slog.String("error", err.Error()),
			)
			return
		}
		user = &model.User{ID: userID, CreatedAt: now}
	}

	user.TotalXP += xpDelta
	user.TotalGamesPlayed++
	if won {
		user.GamesWon++
	}
	user.LastUpdated = now

	if err := s.storage.SaveUser(ctx, user); err != nil {
		s.logger.Warn("failed to accrue user stats",
			slog.String("user_id", string(userID)),
			slog.String("error", err.Error()),
		)
	}
}
