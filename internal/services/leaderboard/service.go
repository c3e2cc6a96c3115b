package leaderboard

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/tilematch/backend/internal/model"
	"github.com/tilematch/backend/internal/storage"
)

// Mode selects the leaderboard source collection
type Mode string

const (
	ModeArcade    Mode = "ARCADE"
	ModeAdventure Mode = "ADVENTURE"
)

// DefaultLimit is the number of entries returned when the caller gives none
const DefaultLimit = 10

// scanMultiplier bounds how many candidate rows are fetched per requested
// entry. Many rows per player exist in the source collections, so the scan
// must cover a superset of limit; 3x keeps latency bounded instead of
// walking the whole collection.
const scanMultiplier = 3

// Entry is one ranked leaderboard row
type Entry struct {
	UserID      model.UserID
	Username    string
	Score       int
	TimeTaken   int
	CompletedAt time.Time
}

// Service produces ranked, deduplicated-by-player views over the arcade
// session log and the level progress collection. Read-only: it never writes.
type Service struct {
	storage storage.Storage
	logger  *slog.Logger
}

// New creates a new leaderboard Service
func New(storage storage.Storage, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		logger:  logger,
	}
}

// Get returns up to limit entries for the given mode, ranked by score
// descending. A player appears at most once, represented by their single
// highest-ranked record; missing profiles rank as "Anonymous" rather than
// failing the whole board.
func (s *Service) Get(ctx context.Context, mode Mode, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	var candidates []Entry
	var err error
	switch mode {
	case ModeAdventure:
		candidates, err = s.adventureCandidates(ctx, limit*scanMultiplier)
	default:
		candidates, err = s.arcadeCandidates(ctx, limit*scanMultiplier)
	}
	if err != nil {
		return nil, err
	}

	// Candidates arrive sorted by score; keep first sighting of each player
	seen := make(map[model.UserID]bool, limit)
	entries := make([]Entry, 0, limit)
	for _, c := range candidates {
		if seen[c.UserID] {
			continue
		}
		seen[c.UserID] = true
		c.Username = s.resolveUsername(ctx, c.UserID)
		entries = append(entries, c)
		if len(entries) == limit {
			break
		}
	}

	return entries, nil
}

func (s *Service) arcadeCandidates(ctx context.Context, scanLimit int) ([]Entry, error) {
	sessions, err := s.storage.ListArcadeSessionsByScore(ctx, scanLimit)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(sessions))
	for _, session := range sessions {
		entries = append(entries, Entry{
			UserID:      session.UserID,
			Score:       session.Score,
			TimeTaken:   session.Time,
			CompletedAt: session.CompletedAt,
		})
	}
	return entries, nil
}

func (s *Service) adventureCandidates(ctx context.Context, scanLimit int) ([]Entry, error) {
	rows, err := s.storage.ListLevelProgressByBestScore(ctx, scanLimit)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, Entry{
			UserID:      row.UserID,
			Score:       row.BestScore,
			TimeTaken:   row.BestTime,
			CompletedAt: row.LastPlayed,
		})
	}
	return entries, nil
}

// resolveUsername looks up the display name for an entry. An absent profile
// is expected (results can arrive before a profile write) and renders as
// Anonymous; any other storage error degrades the same way rather than
// failing the read.
func (s *Service) resolveUsername(ctx context.Context, userID model.UserID) string {
	user, err := s.storage.GetUser(ctx, userID)
	if err != nil {
		if !errors.Is(err, model.ErrUserNotFound) {
			s.logger.Warn("leaderboard username lookup failed",
				slog.String("user_id", string(userID)),
				slog.String("error", err.Error()),
			)
		}
		return "Anonymous"
	}
	if user.Username == "" {
		return "Anonymous"
	}
	return user.Username
}
