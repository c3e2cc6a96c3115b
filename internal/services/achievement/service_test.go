package achievement

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

func (s *ServiceSuite) TestReportCreatesRow() {
	a, unlocked, err := s.service.ReportProgress(s.ctx, "u1", "gameplay", "combo_10", "Chain 10 combos", 40)
	s.Require().NoError(err)

	s.False(unlocked)
	s.Equal(40, a.Progress)
	s.False(a.IsUnlocked)
	s.True(a.UnlockedAt.IsZero())
	s.NotEmpty(a.ID)
}

func (s *ServiceSuite) TestReportHigherProgressAdvances() {
	_, _, _ = s.service.ReportProgress(s.ctx, "u1", "gameplay", "combo_10", "", 40)
	a, unlocked, err := s.service.ReportProgress(s.ctx, "u1", "gameplay", "combo_10", "", 70)
	s.Require().NoError(err)

	s.False(unlocked)
	s.Equal(70, a.Progress)
}

func (s *ServiceSuite) TestReportLowerProgressIsIgnored() {
	_, _, _ = s.service.ReportProgress(s.ctx, "u1", "gameplay", "combo_10", "", 70)
	a, unlocked, err := s.service.ReportProgress(s.ctx, "u1", "gameplay", "combo_10", "", 30)
	s.Require().NoError(err)

	s.False(unlocked)
	s.Equal(70, a.Progress)
}

func (s *ServiceSuite) TestCrossingThresholdUnlocksOnce() {
	_, _, _ = s.service.ReportProgress(s.ctx, "u1", "gameplay", "combo_10", "", 70)

	unlockTime := s.clock.Now()
	a, unlocked, err := s.service.ReportProgress(s.ctx, "u1", "gameplay", "combo_10", "", 100)
	s.Require().NoError(err)
	s.True(unlocked)
	s.True(a.IsUnlocked)
	s.Equal(unlockTime, a.UnlockedAt)

	// A later report never restamps the unlock time
	s.clock.Advance(time.Hour)
	a2, unlocked2, err := s.service.ReportProgress(s.ctx, "u1", "gameplay", "combo_10", "", 100)
	s.Require().NoError(err)
	s.False(unlocked2)
	s.Equal(unlockTime, a2.UnlockedAt)
}

func (s *ServiceSuite) TestCreateAtFullProgressUnlocksImmediately() {
	a, unlocked, err := s.service.ReportProgress(s.ctx, "u1", "gameplay", "first_win", "", 100)
	s.Require().NoError(err)

	s.True(unlocked)
	s.True(a.IsUnlocked)
	s.Equal(s.clock.Now(), a.UnlockedAt)
}

func (s *ServiceSuite) TestUnlockedStateIsTerminal() {
	_, _, _ = s.service.ReportProgress(s.ctx, "u1", "gameplay", "first_win", "", 100)

	a, _, err := s.service.ReportProgress(s.ctx, "u1", "gameplay", "first_win", "", 50)
	s.Require().NoError(err)
	s.True(a.IsUnlocked)
	s.Equal(100, a.Progress)
}

func (s *ServiceSuite) TestInvalidProgressRejected() {
	_, _, err := s.service.ReportProgress(s.ctx, "u1", "gameplay", "combo_10", "", -1)
	s.ErrorIs(err, model.ErrInvalidProgress)

	_, _, err = s.service.ReportProgress(s.ctx, "u1", "gameplay", "combo_10", "", 101)
	s.ErrorIs(err, model.ErrInvalidProgress)

	// Nothing was stored
	_, err = s.storage.GetAchievement(s.ctx, "u1", "gameplay", "combo_10")
	s.ErrorIs(err, model.ErrAchievementNotFound)
}

func (s *ServiceSuite) TestKeysAreIndependent() {
	_, _, _ = s.service.ReportProgress(s.ctx, "u1", "gameplay", "combo_10", "", 40)
	_, _, _ = s.service.ReportProgress(s.ctx, "u1", "arcade", "combo_10", "", 80)
	_, _, _ = s.service.ReportProgress(s.ctx, "u2", "gameplay", "combo_10", "", 20)

	a, err := s.storage.GetAchievement(s.ctx, "u1", "gameplay", "combo_10")
	s.Require().NoError(err)
	s.Equal(40, a.Progress)

	b, err := s.storage.GetAchievement(s.ctx, "u1", "arcade", "combo_10")
	s.Require().NoError(err)
	s.Equal(80, b.Progress)
}

func (s *ServiceSuite) TestUnlockIsIdempotent() {
	_, first, err := s.service.Unlock(s.ctx, "u1", "gameplay", "first_win", "First victory")
	s.Require().NoError(err)
	s.True(first)

	_, second, err := s.service.Unlock(s.ctx, "u1", "gameplay", "first_win", "First victory")
	s.Require().NoError(err)
	s.False(second)
}

func (s *ServiceSuite) TestGetStatsEmpty() {
	stats, err := s.service.GetStats(s.ctx, "u1")
	s.Require().NoError(err)

	s.Equal(0, stats.Total)
	s.Equal(0, stats.Unlocked)
	s.Equal(0, stats.AverageProgress)
	s.Equal(0, stats.CompletionRate)
}

func (s *ServiceSuite) TestGetStatsAggregates() {
	_, _, _ = s.service.ReportProgress(s.ctx, "u1", "gameplay", "a", "", 100)
	_, _, _ = s.service.ReportProgress(s.ctx, "u1", "gameplay", "b", "", 50)
	_, _, _ = s.service.ReportProgress(s.ctx, "u1", "gameplay", "c", "", 25)

	stats, err := s.service.GetStats(s.ctx, "u1")
	s.Require().NoError(err)

	s.Equal(3, stats.Total)
	s.Equal(1, stats.Unlocked)
	s.Equal(2, stats.Locked)
	s.Equal(58, stats.AverageProgress) // round(175/3)
	s.Equal(33, stats.CompletionRate)  // round(1/3*100)
}
