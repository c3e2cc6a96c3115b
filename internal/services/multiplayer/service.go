package multiplayer

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/tilematch/backend/internal/dependencies/clock"
	"github.com/tilematch/backend/internal/model"
	"github.com/tilematch/backend/internal/storage"
)

// Service records local two-player results. Records are immutable once
// written; the winner is always derived from the two scores.
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new multiplayer Service
func New(storage storage.Storage, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		logger:  logger,
	}
}

// ResultInput is a validated multiplayer submission
type ResultInput struct {
	Theme        string
	Player1Score int
	Player2Score int
	TimeTaken    int
	TotalMoves   int
	Timestamp    time.Time
}

// SubmitResult appends an immutable multiplayer game record
func (s *Service) SubmitResult(ctx context.Context, userID model.UserID, input ResultInput) (*model.MultiplayerGame, error) {
	now := s.clock.Now()

	timestamp := input.Timestamp
	if timestamp.IsZero() {
		timestamp = now
	}

	game := &model.MultiplayerGame{
		ID:           model.GameID(uuid.NewString()),
		UserID:       userID,
		Theme:        input.Theme,
		Player1Score: input.Player1Score,
		Player2Score: input.Player2Score,
		Winner:       model.DeriveWinner(input.Player1Score, input.Player2Score),
		TimeTaken:    input.TimeTaken,
		TotalMoves:   input.TotalMoves,
		Timestamp:    timestamp,
		CreatedAt:    now,
	}

	if err := s.storage.SaveMultiplayerGame(ctx, game); err != nil {
		s.logger.Error("failed to save multiplayer game",
			slog.String("user_id", string(userID)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	s.logger.Info("multiplayer game recorded",
		slog.String("user_id", string(userID)),
		slog.String("game_id", string(game.ID)),
		slog.String("winner", string(game.Winner)),
	)

	return game, nil
}

// History returns the user's latest multiplayer games, newest first
func (s *Service) History(ctx context.Context, userID model.UserID, limit int) ([]*model.MultiplayerGame, error) {
	return s.storage.GetMultiplayerGamesForUser(ctx, userID, limit)
}
