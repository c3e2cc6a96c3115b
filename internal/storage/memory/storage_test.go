package memory

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/tilematch/backend/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

// User tests

func (s *StorageSuite) TestSaveAndGetUser() {
	user := &model.User{
		ID:       "u1",
		Username: "alice",
		TotalXP:  500,
	}

	err := s.storage.SaveUser(s.ctx, user)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetUser(s.ctx, "u1")
	s.Require().NoError(err)
	s.Equal(user.Username, retrieved.Username)
	s.Equal(500, retrieved.TotalXP)
}

func (s *StorageSuite) TestGetUserNotFound() {
	_, err := s.storage.GetUser(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *StorageSuite) TestDeleteUser() {
	_ = s.storage.SaveUser(s.ctx, &model.User{ID: "u1"})

	err := s.storage.DeleteUser(s.ctx, "u1")
	s.Require().NoError(err)

	_, err = s.storage.GetUser(s.ctx, "u1")
	s.ErrorIs(err, model.ErrUserNotFound)
}

// Level progress tests

func (s *StorageSuite) progressRow(userID model.UserID, level, bestScore int) *model.LevelProgress {
	return &model.LevelProgress{
		UserID:      userID,
		LevelNumber: level,
		Stars:       2,
		BestScore:   bestScore,
		IsUnlocked:  true,
	}
}

func (s *StorageSuite) TestSaveAndGetLevelProgress() {
	err := s.storage.SaveLevelProgress(s.ctx, s.progressRow("u1", 3, 450))
	s.Require().NoError(err)

	retrieved, err := s.storage.GetLevelProgress(s.ctx, "u1", 3)
	s.Require().NoError(err)
	s.Equal(450, retrieved.BestScore)
	s.Equal(2, retrieved.Stars)
}

func (s *StorageSuite) TestGetLevelProgressNotFound() {
	_, err := s.storage.GetLevelProgress(s.ctx, "u1", 1)
	s.ErrorIs(err, model.ErrLevelProgressNotFound)
}

func (s *StorageSuite) TestGetLevelProgressForUserSortedByLevel() {
	_ = s.storage.SaveLevelProgress(s.ctx, s.progressRow("u1", 5, 100))
	_ = s.storage.SaveLevelProgress(s.ctx, s.progressRow("u1", 2, 200))
	_ = s.storage.SaveLevelProgress(s.ctx, s.progressRow("u2", 1, 300))

	rows, err := s.storage.GetLevelProgressForUser(s.ctx, "u1")
	s.Require().NoError(err)
	s.Require().Len(rows, 2)
	s.Equal(2, rows[0].LevelNumber)
	s.Equal(5, rows[1].LevelNumber)
}

func (s *StorageSuite) TestSaveLevelProgressBatch() {
	rows := []*model.LevelProgress{
		s.progressRow("u1", 1, 0),
		s.progressRow("u1", 2, 0),
		s.progressRow("u1", 3, 0),
	}

	err := s.storage.SaveLevelProgressBatch(s.ctx, rows)
	s.Require().NoError(err)

	stored, err := s.storage.GetLevelProgressForUser(s.ctx, "u1")
	s.Require().NoError(err)
	s.Len(stored, 3)
}

func (s *StorageSuite) TestSaveLevelProgressBatchCancelledContext() {
	ctx, cancel := context.WithCancel(s.ctx)
	cancel()

	err := s.storage.SaveLevelProgressBatch(ctx, []*model.LevelProgress{
		s.progressRow("u1", 1, 0),
	})
	s.Require().Error(err)

	rows, _ := s.storage.GetLevelProgressForUser(s.ctx, "u1")
	s.Empty(rows)
}

func (s *StorageSuite) TestListLevelProgressByBestScore() {
	_ = s.storage.SaveLevelProgress(s.ctx, s.progressRow("u1", 1, 100))
	_ = s.storage.SaveLevelProgress(s.ctx, s.progressRow("u2", 1, 300))
	_ = s.storage.SaveLevelProgress(s.ctx, s.progressRow("u3", 1, 200))

	rows, err := s.storage.ListLevelProgressByBestScore(s.ctx, 2)
	s.Require().NoError(err)
	s.Require().Len(rows, 2)
	s.Equal(300, rows[0].BestScore)
	s.Equal(200, rows[1].BestScore)
}

func (s *StorageSuite) TestDeleteLevelProgressForUser() {
	_ = s.storage.SaveLevelProgress(s.ctx, s.progressRow("u1", 1, 100))
	_ = s.storage.SaveLevelProgress(s.ctx, s.progressRow("u1", 2, 200))
	_ = s.storage.SaveLevelProgress(s.ctx, s.progressRow("u2", 1, 300))

	err := s.storage.DeleteLevelProgressForUser(s.ctx, "u1")
	s.Require().NoError(err)

	rows, _ := s.storage.GetLevelProgressForUser(s.ctx, "u1")
	s.Empty(rows)

	others, _ := s.storage.GetLevelProgressForUser(s.ctx, "u2")
	s.Len(others, 1)
}

// Arcade session tests

func (s *StorageSuite) arcadeSession(id model.SessionID, userID model.UserID, score int, completedAt time.Time) *model.ArcadeSession {
	return &model.ArcadeSession{
		ID:          id,
		UserID:      userID,
		Score:       score,
		CompletedAt: completedAt,
	}
}

func (s *StorageSuite) TestGetArcadeSessionsForUserNewestFirst() {
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	_ = s.storage.SaveArcadeSession(s.ctx, s.arcadeSession("s1", "u1", 100, base))
	_ = s.storage.SaveArcadeSession(s.ctx, s.arcadeSession("s2", "u1", 200, base.Add(time.Hour)))
	_ = s.storage.SaveArcadeSession(s.ctx, s.arcadeSession("s3", "u2", 300, base))

	sessions, err := s.storage.GetArcadeSessionsForUser(s.ctx, "u1", 10)
	s.Require().NoError(err)
	s.Require().Len(sessions, 2)
	s.Equal(model.SessionID("s2"), sessions[0].ID)
	s.Equal(model.SessionID("s1"), sessions[1].ID)
}

func (s *StorageSuite) TestGetArcadeSessionsForUserLimit() {
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		id := model.SessionID(fmt.Sprintf("s%d", i))
		sess := s.arcadeSession(id, "u1", i*100, base.Add(time.Duration(i)*time.Minute))
		_ = s.storage.SaveArcadeSession(s.ctx, sess)
	}

	sessions, err := s.storage.GetArcadeSessionsForUser(s.ctx, "u1", 3)
	s.Require().NoError(err)
	s.Len(sessions, 3)
}

func (s *StorageSuite) TestListArcadeSessionsByScore() {
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	_ = s.storage.SaveArcadeSession(s.ctx, s.arcadeSession("s1", "u1", 100, base))
	_ = s.storage.SaveArcadeSession(s.ctx, s.arcadeSession("s2", "u2", 500, base))
	_ = s.storage.SaveArcadeSession(s.ctx, s.arcadeSession("s3", "u3", 300, base))

	sessions, err := s.storage.ListArcadeSessionsByScore(s.ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(sessions, 3)
	s.Equal(500, sessions[0].Score)
	s.Equal(300, sessions[1].Score)
	s.Equal(100, sessions[2].Score)
}

func (s *StorageSuite) TestDeleteArcadeSessionsForUser() {
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	_ = s.storage.SaveArcadeSession(s.ctx, s.arcadeSession("s1", "u1", 100, base))
	_ = s.storage.SaveArcadeSession(s.ctx, s.arcadeSession("s2", "u2", 200, base))

	err := s.storage.DeleteArcadeSessionsForUser(s.ctx, "u1")
	s.Require().NoError(err)

	sessions, _ := s.storage.GetArcadeSessionsForUser(s.ctx, "u1", 10)
	s.Empty(sessions)

	others, _ := s.storage.GetArcadeSessionsForUser(s.ctx, "u2", 10)
	s.Len(others, 1)
}

// Multiplayer game tests

func (s *StorageSuite) TestGetMultiplayerGamesForUserNewestFirst() {
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	_ = s.storage.SaveMultiplayerGame(s.ctx, &model.MultiplayerGame{ID: "g1", UserID: "u1", Timestamp: base})
	_ = s.storage.SaveMultiplayerGame(s.ctx, &model.MultiplayerGame{ID: "g2", UserID: "u1", Timestamp: base.Add(time.Hour)})

	games, err := s.storage.GetMultiplayerGamesForUser(s.ctx, "u1", 10)
	s.Require().NoError(err)
	s.Require().Len(games, 2)
	s.Equal(model.GameID("g2"), games[0].ID)
}

func (s *StorageSuite) TestDeleteMultiplayerGamesForUser() {
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	_ = s.storage.SaveMultiplayerGame(s.ctx, &model.MultiplayerGame{ID: "g1", UserID: "u1", Timestamp: base})

	err := s.storage.DeleteMultiplayerGamesForUser(s.ctx, "u1")
	s.Require().NoError(err)

	games, _ := s.storage.GetMultiplayerGamesForUser(s.ctx, "u1", 10)
	s.Empty(games)
}

// Achievement tests

func (s *StorageSuite) TestSaveAndGetAchievement() {
	achievement := &model.Achievement{
		ID:              "a1",
		UserID:          "u1",
		AchievementType: "gameplay",
		Name:            "first_win",
		Progress:        100,
		IsUnlocked:      true,
	}

	err := s.storage.SaveAchievement(s.ctx, achievement)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetAchievement(s.ctx, "u1", "gameplay", "first_win")
	s.Require().NoError(err)
	s.Equal(100, retrieved.Progress)
	s.True(retrieved.IsUnlocked)
}

func (s *StorageSuite) TestGetAchievementNotFound() {
	_, err := s.storage.GetAchievement(s.ctx, "u1", "gameplay", "missing")
	s.ErrorIs(err, model.ErrAchievementNotFound)
}

func (s *StorageSuite) TestAchievementKeyedByTypeAndName() {
	_ = s.storage.SaveAchievement(s.ctx, &model.Achievement{
		UserID: "u1", AchievementType: "gameplay", Name: "one", Progress: 10,
	})
	_ = s.storage.SaveAchievement(s.ctx, &model.Achievement{
		UserID: "u1", AchievementType: "arcade", Name: "one", Progress: 90,
	})

	gameplay, err := s.storage.GetAchievement(s.ctx, "u1", "gameplay", "one")
	s.Require().NoError(err)
	s.Equal(10, gameplay.Progress)

	arcade, err := s.storage.GetAchievement(s.ctx, "u1", "arcade", "one")
	s.Require().NoError(err)
	s.Equal(90, arcade.Progress)
}

func (s *StorageSuite) TestGetAchievementsForUser() {
	_ = s.storage.SaveAchievement(s.ctx, &model.Achievement{UserID: "u1", AchievementType: "gameplay", Name: "one"})
	_ = s.storage.SaveAchievement(s.ctx, &model.Achievement{UserID: "u1", AchievementType: "gameplay", Name: "two"})
	_ = s.storage.SaveAchievement(s.ctx, &model.Achievement{UserID: "u2", AchievementType: "gameplay", Name: "one"})

	achievements, err := s.storage.GetAchievementsForUser(s.ctx, "u1")
	s.Require().NoError(err)
	s.Len(achievements, 2)
}

func (s *StorageSuite) TestDeleteAchievementsForUser() {
	_ = s.storage.SaveAchievement(s.ctx, &model.Achievement{UserID: "u1", AchievementType: "gameplay", Name: "one"})

	err := s.storage.DeleteAchievementsForUser(s.ctx, "u1")
	s.Require().NoError(err)

	achievements, _ := s.storage.GetAchievementsForUser(s.ctx, "u1")
	s.Empty(achievements)
}

// Credential tests

func (s *StorageSuite) TestSaveAndGetCredential() {
	cred := &model.Credential{
		UserID:       "u1",
		Email:        "alice@example.com",
		PasswordHash: "hash",
	}

	err := s.storage.SaveCredential(s.ctx, cred)
	s.Require().NoError(err)

	byID, err := s.storage.GetCredential(s.ctx, "u1")
	s.Require().NoError(err)
	s.Equal("alice@example.com", byID.Email)

	byEmail, err := s.storage.GetCredentialByEmail(s.ctx, "alice@example.com")
	s.Require().NoError(err)
	s.Equal(model.UserID("u1"), byEmail.UserID)
}

func (s *StorageSuite) TestGetCredentialNotFound() {
	_, err := s.storage.GetCredential(s.ctx, "u1")
	s.ErrorIs(err, model.ErrCredentialNotFound)

	_, err = s.storage.GetCredentialByEmail(s.ctx, "nobody@example.com")
	s.ErrorIs(err, model.ErrCredentialNotFound)
}

func (s *StorageSuite) TestDeleteCredentialClearsEmailIndex() {
	_ = s.storage.SaveCredential(s.ctx, &model.Credential{
		UserID: "u1", Email: "alice@example.com", PasswordHash: "hash",
	})

	err := s.storage.DeleteCredential(s.ctx, "u1")
	s.Require().NoError(err)

	_, err = s.storage.GetCredentialByEmail(s.ctx, "alice@example.com")
	s.ErrorIs(err, model.ErrCredentialNotFound)
}

// Theme tests

func (s *StorageSuite) TestSaveAndGetTheme() {
	theme := &model.Theme{Name: "animals", DisplayName: "Animals", Tiles: []string{"a", "b"}}

	err := s.storage.SaveTheme(s.ctx, theme)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetTheme(s.ctx, "animals")
	s.Require().NoError(err)
	s.Equal("Animals", retrieved.DisplayName)
}

func (s *StorageSuite) TestGetThemeNotFound() {
	_, err := s.storage.GetTheme(s.ctx, "missing")
	s.ErrorIs(err, model.ErrThemeNotFound)
}

func (s *StorageSuite) TestListThemesSortedByName() {
	_ = s.storage.SaveTheme(s.ctx, &model.Theme{Name: "shapes"})
	_ = s.storage.SaveTheme(s.ctx, &model.Theme{Name: "animals"})
	_ = s.storage.SaveTheme(s.ctx, &model.Theme{Name: "fruits"})

	themes, err := s.storage.ListThemes(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(themes, 3)
	s.Equal("animals", themes[0].Name)
	s.Equal("fruits", themes[1].Name)
	s.Equal("shapes", themes[2].Name)
}
