package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/tilematch/backend/internal/model"
	"github.com/tilematch/backend/internal/services/achievement"
	"github.com/tilematch/backend/internal/services/multiplayer"
	"github.com/tilematch/backend/internal/services/progression"
)

// ValidationError reports a structurally invalid submission. Raised before
// any store access; a submission that fails validation has no side effects.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing or invalid field: %s", e.Field)
}

// Facade is the single entry point for raw result payloads. It validates
// shape, delegates to the progression engine and achievement tracker, and
// assembles the unified response contract. It never touches storage itself.
type Facade struct {
	progression  *progression.Service
	achievements *achievement.Service
	multiplayer  *multiplayer.Service
	logger       *slog.Logger
}

// New creates a new ingestion Facade
func New(
	progression *progression.Service,
	achievements *achievement.Service,
	multiplayer *multiplayer.Service,
	logger *slog.Logger,
) *Facade {
	return &Facade{
		progression:  progression,
		achievements: achievements,
		multiplayer:  multiplayer,
		logger:       logger,
	}
}

// LevelSubmission is a raw level result payload. Numeric fields are pointers
// so a missing field is distinguishable from an honest zero; negative values
// are accepted structurally, callers are trusted to submit real telemetry.
type LevelSubmission struct {
	UserID      string
	LevelNumber *int
	Score       *int
	TimeTaken   *int
	Moves       *int
	Theme       string
	Completed   bool
	// IsWin is a deprecated legacy flag; completion wins are derived from
	// the star rating instead
	IsWin *bool
}

// LevelOutcome is the unified response for a level submission
type LevelOutcome struct {
	Success      bool
	StarsEarned  int
	IsNewBest    bool
	UnlockedNext bool
}

// SubmitLevel validates and ingests a level result
func (f *Facade) SubmitLevel(ctx context.Context, sub LevelSubmission) (*LevelOutcome, error) {
	if sub.UserID == "" {
		return nil, &ValidationError{Field: "userId"}
	}
	if sub.LevelNumber == nil {
		return nil, &ValidationError{Field: "levelNumber"}
	}
	if sub.Score == nil {
		return nil, &ValidationError{Field: "score"}
	}
	if sub.TimeTaken == nil {
		return nil, &ValidationError{Field: "timeTaken"}
	}
	if sub.Moves == nil {
		return nil, &ValidationError{Field: "moves"}
	}

	userID := model.UserID(sub.UserID)
	outcome, err := f.progression.SubmitLevelResult(ctx, userID, progression.LevelResultInput{
		LevelNumber: *sub.LevelNumber,
		Score:       *sub.Score,
		TimeTaken:   *sub.TimeTaken,
		Moves:       *sub.Moves,
		Theme:       sub.Theme,
		Completed:   sub.Completed,
	})
	if err != nil {
		return nil, err
	}

	f.awardLevelAchievements(ctx, userID, outcome)

	return &LevelOutcome{
		Success:      true,
		StarsEarned:  outcome.StarsEarned,
		IsNewBest:    outcome.NewBest,
		UnlockedNext: outcome.UnlockedNext,
	}, nil
}

// ArcadeSubmission is a raw arcade result payload
type ArcadeSubmission struct {
	UserID    string
	SessionID string
	Score     *int
	Time      *int
	Moves     *int
	Bonus     int
	Stars     int
	Theme     string
	GridSize  string
}

// ArcadeOutcome is the unified response for an arcade submission
type ArcadeOutcome struct {
	Success   bool
	SessionID model.SessionID
	Score     int
}

// SubmitArcade validates and ingests an arcade result
func (f *Facade) SubmitArcade(ctx context.Context, sub ArcadeSubmission) (*ArcadeOutcome, error) {
	if sub.UserID == "" {
		return nil, &ValidationError{Field: "userId"}
	}
	if sub.Score == nil {
		return nil, &ValidationError{Field: "score"}
	}
	if sub.Time == nil {
		return nil, &ValidationError{Field: "time"}
	}
	if sub.Moves == nil {
		return nil, &ValidationError{Field: "moves"}
	}

	userID := model.UserID(sub.UserID)
	outcome, err := f.progression.SubmitArcadeResult(ctx, userID, progression.ArcadeResultInput{
		SessionID: sub.SessionID,
		Score:     *sub.Score,
		Time:      *sub.Time,
		Moves:     *sub.Moves,
		Bonus:     sub.Bonus,
		Stars:     sub.Stars,
		Theme:     sub.Theme,
		GridSize:  sub.GridSize,
	})
	if err != nil {
		return nil, err
	}

	f.awardArcadeAchievements(ctx, userID, *sub.Score)

	return &ArcadeOutcome{
		Success:   true,
		SessionID: outcome.SessionID,
		Score:     outcome.Score,
	}, nil
}

// MultiplayerSubmission is a raw multiplayer result payload
type MultiplayerSubmission struct {
	UserID       string
	Theme        string
	Player1Score *int
	Player2Score *int
	TimeTaken    int
	TotalMoves   int
	Timestamp    time.Time
}

// MultiplayerOutcome is the unified response for a multiplayer submission
type MultiplayerOutcome struct {
	GameID model.GameID
	Winner model.Winner
}

// SubmitMultiplayer validates and ingests a two-player result
func (f *Facade) SubmitMultiplayer(ctx context.Context, sub MultiplayerSubmission) (*MultiplayerOutcome, error) {
	if sub.UserID == "" {
		return nil, &ValidationError{Field: "userId"}
	}
	if sub.Theme == "" {
		return nil, &ValidationError{Field: "theme"}
	}
	if sub.Player1Score == nil {
		return nil, &ValidationError{Field: "player1Score"}
	}
	if sub.Player2Score == nil {
		return nil, &ValidationError{Field: "player2Score"}
	}

	game, err := f.multiplayer.SubmitResult(ctx, model.UserID(sub.UserID), multiplayer.ResultInput{
		Theme:        sub.Theme,
		Player1Score: *sub.Player1Score,
		Player2Score: *sub.Player2Score,
		TimeTaken:    sub.TimeTaken,
		TotalMoves:   sub.TotalMoves,
		Timestamp:    sub.Timestamp,
	})
	if err != nil {
		return nil, err
	}

	return &MultiplayerOutcome{GameID: game.ID, Winner: game.Winner}, nil
}

// awardLevelAchievements fires achievement predicates for a level result.
// Best-effort: the result is already durable, so tracker failures are
// logged and absorbed. The tracker's monotonic merge makes repeat awards
// no-ops.
func (f *Facade) awardLevelAchievements(ctx context.Context, userID model.UserID, outcome *progression.LevelResultOutcome) {
	if outcome.StarsEarned > 0 {
		f.award(ctx, userID, "gameplay", "first_win", "Complete your first level")
	}
	if outcome.StarsEarned == model.MaxStars {
		f.award(ctx, userID, "gameplay", "perfect_clear", "Finish a level with three stars")
	}
}

// awardArcadeAchievements fires achievement predicates for an arcade result
func (f *Facade) awardArcadeAchievements(ctx context.Context, userID model.UserID, score int) {
	if score >= 1000 {
		f.award(ctx, userID, "arcade", "arcade_ace", "Score 1000 points in a single arcade run")
	}
}

func (f *Facade) award(ctx context.Context, userID model.UserID, achievementType, name, description string) {
	if _, _, err := f.achievements.Unlock(ctx, userID, achievementType, name, description); err != nil {
		f.logger.Warn("achievement award failed",
			slog.String("user_id", string(userID)),
			slog.String("name", name),
			slog.String("error", err.Error()),
		)
	}
}
