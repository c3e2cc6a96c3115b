package multiplayer

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/tilematch/backend/internal/dependencies/mocks"
	"github.com/tilematch/backend/internal/model"
	"github.com/tilematch/backend/internal/storage/memory"
	"github.com/tilematch/backend/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.service = New(s.storage, s.clock, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *ServiceSuite) TestSubmitDerivesPlayer1Winner() {
	game, err := s.service.SubmitResult(s.ctx, "u1", ResultInput{
		Theme: "animals", Player1Score: 300, Player2Score: 200,
	})
	s.Require().NoError(err)

	s.Equal(model.WinnerPlayer1, game.Winner)
	s.NotEmpty(game.ID)
}

func (s *ServiceSuite) TestSubmitDerivesPlayer2Winner() {
	game, err := s.service.SubmitResult(s.ctx, "u1", ResultInput{
		Theme: "animals", Player1Score: 100, Player2Score: 200,
	})
	s.Require().NoError(err)
	s.Equal(model.WinnerPlayer2, game.Winner)
}

func (s *ServiceSuite) TestSubmitDerivesTie() {
	game, err := s.service.SubmitResult(s.ctx, "u1", ResultInput{
		Theme: "animals", Player1Score: 250, Player2Score: 250,
	})
	s.Require().NoError(err)
	s.Equal(model.WinnerTie, game.Winner)
}

func (s *ServiceSuite) TestSubmitDefaultsTimestampToNow() {
	game, err := s.service.SubmitResult(s.ctx, "u1", ResultInput{
		Theme: "animals", Player1Score: 1, Player2Score: 2,
	})
	s.Require().NoError(err)
	s.Equal(s.clock.Now(), game.Timestamp)
}

func (s *ServiceSuite) TestSubmitKeepsClientTimestamp() {
	at := time.Date(2023, 6, 15, 8, 0, 0, 0, time.UTC)
	game, err := s.service.SubmitResult(s.ctx, "u1", ResultInput{
		Theme: "animals", Player1Score: 1, Player2Score: 2, Timestamp: at,
	})
	s.Require().NoError(err)
	s.Equal(at, game.Timestamp)
}

func (s *ServiceSuite) TestHistoryNewestFirst() {
	for i, scores := range [][2]int{{100, 50}, {200, 250}, {300, 300}} {
		_, err := s.service.SubmitResult(s.ctx, "u1", ResultInput{
			Theme: "animals", Player1Score: scores[0], Player2Score: scores[1],
		})
		s.Require().NoError(err)
		s.clock.Advance(time.Duration(i+1) * time.Minute)
	}

	games, err := s.service.History(s.ctx, "u1", 10)
	s.Require().NoError(err)
	s.Require().Len(games, 3)
	s.Equal(300, games[0].Player1Score)
	s.Equal(100, games[2].Player1Score)
}

func (s *ServiceSuite) TestHistoryIsPerUser() {
	_, _ = s.service.SubmitResult(s.ctx, "u1", ResultInput{Theme: "a", Player1Score: 1, Player2Score: 2})
	_, _ = s.service.SubmitResult(s.ctx, "u2", ResultInput{Theme: "a", Player1Score: 3, Player2Score: 4})

	games, err := s.service.History(s.ctx, "u1", 10)
	s.Require().NoError(err)
	s.Len(games, 1)
	s.Equal(model.UserID("u1"), games[0].UserID)
}
