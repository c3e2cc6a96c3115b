package factory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/tilematch/backend/internal/model"
	"github.com/tilematch/backend/internal/services/ingest"
	"github.com/tilematch/backend/internal/services/leaderboard"
)

type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp()
	s.ctx = context.Background()
}

func (s *IntegrationSuite) register(email, username string) model.UserID {
	session, err := s.app.IdentityService.Register(s.ctx, email, username, "secret123")
	s.Require().NoError(err)
	return session.UserID
}

func (s *IntegrationSuite) submitLevel(userID model.UserID, level, score, timeTaken, moves int) *ingest.LevelOutcome {
	outcome, err := s.app.IngestFacade.SubmitLevel(s.ctx, ingest.LevelSubmission{
		UserID:      string(userID),
		LevelNumber: &level,
		Score:       &score,
		TimeTaken:   &timeTaken,
		Moves:       &moves,
		Completed:   true,
	})
	s.Require().NoError(err)
	return outcome
}

func (s *IntegrationSuite) submitArcade(userID model.UserID, score int) *ingest.ArcadeOutcome {
	gameTime := 60
	moves := 40
	outcome, err := s.app.IngestFacade.SubmitArcade(s.ctx, ingest.ArcadeSubmission{
		UserID: string(userID),
		Score:  &score,
		Time:   &gameTime,
		Moves:  &moves,
	})
	s.Require().NoError(err)
	return outcome
}

// Test: Complete player journey from registration through progression
func (s *IntegrationSuite) TestPlayerJourney() {
	userID := s.register("alice@example.com", "alice")

	// First level: perfect run earns 3 stars and unlocks level 2
	outcome := s.submitLevel(userID, 1, 500, 25, 12)
	s.Equal(3, outcome.StarsEarned)
	s.True(outcome.IsNewBest)
	s.True(outcome.UnlockedNext)

	// Second level: slower run earns 2 stars
	outcome = s.submitLevel(userID, 2, 400, 40, 18)
	s.Equal(2, outcome.StarsEarned)

	// Progress aggregates both levels
	progress, err := s.app.ProgressionService.GetProgress(s.ctx, userID)
	s.Require().NoError(err)
	s.Len(progress.Levels, model.MaxLevel)
	s.Equal(5, progress.TotalStars)
	s.Equal(2, progress.CompletedCount)
	s.True(progress.Levels[2].IsUnlocked)

	// Level completions accrued XP onto the profile
	profile, err := s.app.UserService.GetProfile(s.ctx, userID)
	s.Require().NoError(err)
	s.Equal(900, profile.User.TotalXP)
	s.Equal(2, profile.User.TotalGamesPlayed)
	s.Equal(2, profile.User.GamesWon)
	s.Greater(profile.Level, 1)

	// Gameplay achievements fired along the way
	first, err := s.app.Storage.GetAchievement(s.ctx, userID, "gameplay", "first_win")
	s.Require().NoError(err)
	s.True(first.IsUnlocked)

	perfect, err := s.app.Storage.GetAchievement(s.ctx, userID, "gameplay", "perfect_clear")
	s.Require().NoError(err)
	s.True(perfect.IsUnlocked)
}

// Test: Leaderboard resolves usernames for registered players
func (s *IntegrationSuite) TestArcadeLeaderboardResolvesUsernames() {
	alice := s.register("alice@example.com", "alice")
	s.submitArcade(alice, 800)
	s.submitArcade(alice, 300)
	s.submitArcade("ghost", 500)

	entries, err := s.app.LeaderboardService.Get(s.ctx, leaderboard.ModeArcade, 10)
	s.Require().NoError(err)
	s.Require().Len(entries, 2)

	// Best score per player, registered name resolved
	s.Equal("alice", entries[0].Username)
	s.Equal(800, entries[0].Score)
	s.Equal("Anonymous", entries[1].Username)
	s.Equal(500, entries[1].Score)
}

// Test: Adventure leaderboard ranks by best level score
func (s *IntegrationSuite) TestAdventureLeaderboard() {
	alice := s.register("alice@example.com", "alice")
	bob := s.register("bob@example.com", "bob")

	s.submitLevel(alice, 1, 700, 25, 12)
	s.submitLevel(bob, 1, 900, 25, 12)

	entries, err := s.app.LeaderboardService.Get(s.ctx, leaderboard.ModeAdventure, 10)
	s.Require().NoError(err)
	s.Require().Len(entries, 2)
	s.Equal("bob", entries[0].Username)
	s.Equal(900, entries[0].Score)
	s.Equal("alice", entries[1].Username)
}

// Test: Achievement unlock timestamps come from the clock
func (s *IntegrationSuite) TestAchievementUnlockTimestamp() {
	userID := s.register("alice@example.com", "alice")

	unlockTime := s.app.MockClock.Now()
	s.submitLevel(userID, 1, 500, 25, 12)

	first, err := s.app.Storage.GetAchievement(s.ctx, userID, "gameplay", "first_win")
	s.Require().NoError(err)
	s.True(first.UnlockedAt.Equal(unlockTime))

	// A later starred run does not restamp the unlock
	s.app.MockClock.Advance(time.Hour)
	s.submitLevel(userID, 2, 500, 25, 12)

	first, err = s.app.Storage.GetAchievement(s.ctx, userID, "gameplay", "first_win")
	s.Require().NoError(err)
	s.True(first.UnlockedAt.Equal(unlockTime))
}

// Test: Deleting an account removes every trace of it
func (s *IntegrationSuite) TestAccountDeletionCascade() {
	userID := s.register("alice@example.com", "alice")

	s.submitLevel(userID, 1, 500, 25, 12)
	s.submitArcade(userID, 1200)

	p1, p2 := 300, 200
	_, err := s.app.IngestFacade.SubmitMultiplayer(s.ctx, ingest.MultiplayerSubmission{
		UserID:       string(userID),
		Theme:        "animals",
		Player1Score: &p1,
		Player2Score: &p2,
	})
	s.Require().NoError(err)

	s.Require().NoError(s.app.IdentityService.DeleteUser(s.ctx, userID))

	_, err = s.app.Storage.GetUser(s.ctx, userID)
	s.ErrorIs(err, model.ErrUserNotFound)

	rows, err := s.app.Storage.GetLevelProgressForUser(s.ctx, userID)
	s.Require().NoError(err)
	s.Empty(rows)

	sessions, err := s.app.Storage.GetArcadeSessionsForUser(s.ctx, userID, 10)
	s.Require().NoError(err)
	s.Empty(sessions)

	games, err := s.app.Storage.GetMultiplayerGamesForUser(s.ctx, userID, 10)
	s.Require().NoError(err)
	s.Empty(games)

	achievements, err := s.app.Storage.GetAchievementsForUser(s.ctx, userID)
	s.Require().NoError(err)
	s.Empty(achievements)

	_, err = s.app.Storage.GetCredentialByEmail(s.ctx, "alice@example.com")
	s.ErrorIs(err, model.ErrCredentialNotFound)

	// The email is free for re-registration
	_, err = s.app.IdentityService.Register(s.ctx, "alice@example.com", "alice2", "secret123")
	s.NoError(err)
}

// Test: Deleted players fall off the leaderboard
func (s *IntegrationSuite) TestDeletedPlayerLeavesLeaderboard() {
	alice := s.register("alice@example.com", "alice")
	bob := s.register("bob@example.com", "bob")

	s.submitArcade(alice, 900)
	s.submitArcade(bob, 500)

	s.Require().NoError(s.app.IdentityService.DeleteUser(s.ctx, alice))

	entries, err := s.app.LeaderboardService.Get(s.ctx, leaderboard.ModeArcade, 10)
	s.Require().NoError(err)
	s.Require().Len(entries, 1)
	s.Equal("bob", entries[0].Username)
}
