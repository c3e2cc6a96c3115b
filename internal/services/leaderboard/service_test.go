package leaderboard

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/tilematch/backend/internal/model"
	"github.com/tilematch/backend/internal/storage/memory"
	"github.com/tilematch/backend/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.service = New(s.storage, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *ServiceSuite) addUser(id model.UserID, username string) {
	s.Require().NoError(s.storage.SaveUser(s.ctx, &model.User{
		ID:       id,
		Username: username,
	}))
}

func (s *ServiceSuite) addSession(userID model.UserID, score int, at time.Time) {
	s.Require().NoError(s.storage.SaveArcadeSession(s.ctx, &model.ArcadeSession{
		ID:          model.SessionID(fmt.Sprintf("%s-%d", userID, score)),
		UserID:      userID,
		Score:       score,
		Time:        60,
		CompletedAt: at,
	}))
}

func (s *ServiceSuite) addProgress(userID model.UserID, level, bestScore int) {
	s.Require().NoError(s.storage.SaveLevelProgress(s.ctx, &model.LevelProgress{
		UserID:      userID,
		LevelNumber: level,
		BestScore:   bestScore,
		BestTime:    30,
		IsUnlocked:  true,
	}))
}

func (s *ServiceSuite) TestArcadeRanksByScoreDescending() {
	now := time.Now()
	s.addUser("u1", "Alice")
	s.addUser("u2", "Bob")
	s.addUser("u3", "Carol")
	s.addSession("u1", 500, now)
	s.addSession("u2", 900, now)
	s.addSession("u3", 700, now)

	entries, err := s.service.Get(s.ctx, ModeArcade, 10)
	s.Require().NoError(err)
	s.Require().Len(entries, 3)
	s.Equal("Bob", entries[0].Username)
	s.Equal(900, entries[0].Score)
	s.Equal("Carol", entries[1].Username)
	s.Equal("Alice", entries[2].Username)
}

func (s *ServiceSuite) TestPlayerAppearsAtMostOnce() {
	now := time.Now()
	s.addUser("u1", "Alice")
	s.addUser("u2", "Bob")
	s.addSession("u1", 900, now)
	s.addSession("u1", 800, now.Add(time.Minute))
	s.addSession("u1", 700, now.Add(2*time.Minute))
	s.addSession("u2", 500, now)

	entries, err := s.service.Get(s.ctx, ModeArcade, 10)
	s.Require().NoError(err)
	s.Require().Len(entries, 2)
	s.Equal(model.UserID("u1"), entries[0].UserID)
	s.Equal(900, entries[0].Score)
	s.Equal(model.UserID("u2"), entries[1].UserID)
}

func (s *ServiceSuite) TestLimitTruncatesEntries() {
	now := time.Now()
	for i := 0; i < 5; i++ {
		id := model.UserID(fmt.Sprintf("u%d", i))
		s.addUser(id, fmt.Sprintf("Player%d", i))
		s.addSession(id, 100*(i+1), now)
	}

	entries, err := s.service.Get(s.ctx, ModeArcade, 3)
	s.Require().NoError(err)
	s.Len(entries, 3)
	s.Equal(500, entries[0].Score)
}

func (s *ServiceSuite) TestMissingUserRendersAnonymous() {
	s.addSession("ghost", 400, time.Now())

	entries, err := s.service.Get(s.ctx, ModeArcade, 10)
	s.Require().NoError(err)
	s.Require().Len(entries, 1)
	s.Equal("Anonymous", entries[0].Username)
}

func (s *ServiceSuite) TestEmptyUsernameRendersAnonymous() {
	s.addUser("u1", "")
	s.addSession("u1", 400, time.Now())

	entries, err := s.service.Get(s.ctx, ModeArcade, 10)
	s.Require().NoError(err)
	s.Equal("Anonymous", entries[0].Username)
}

func (s *ServiceSuite) TestAdventureUsesBestLevelScore() {
	s.addUser("u1", "Alice")
	s.addUser("u2", "Bob")
	s.addProgress("u1", 1, 300)
	s.addProgress("u1", 2, 800)
	s.addProgress("u2", 1, 500)

	entries, err := s.service.Get(s.ctx, ModeAdventure, 10)
	s.Require().NoError(err)
	s.Require().Len(entries, 2)
	s.Equal("Alice", entries[0].Username)
	s.Equal(800, entries[0].Score)
	s.Equal("Bob", entries[1].Username)
	s.Equal(500, entries[1].Score)
}

func (s *ServiceSuite) TestZeroLimitUsesDefault() {
	now := time.Now()
	for i := 0; i < DefaultLimit+5; i++ {
		id := model.UserID(fmt.Sprintf("u%d", i))
		s.addUser(id, fmt.Sprintf("Player%d", i))
		s.addSession(id, 100+i, now)
	}

	entries, err := s.service.Get(s.ctx, ModeArcade, 0)
	s.Require().NoError(err)
	s.Len(entries, DefaultLimit)
}

func (s *ServiceSuite) TestEmptyBoard() {
	entries, err := s.service.Get(s.ctx, ModeArcade, 10)
	s.Require().NoError(err)
	s.Empty(entries)
}
