package response

import (
	"time"

	"github.com/tilematch/backend/internal/model"
	"github.com/tilematch/backend/internal/services/achievement"
	"github.com/tilematch/backend/internal/services/identity"
	"github.com/tilematch/backend/internal/services/leaderboard"
	"github.com/tilematch/backend/internal/services/progression"
	"github.com/tilematch/backend/internal/services/user"
)

// LevelResult is the response after submitting a level result
type LevelResult struct {
	Success      bool `json:"success"`
	StarsEarned  int  `json:"starsEarned"`
	IsNewBest    bool `json:"isNewBest"`
	UnlockedNext bool `json:"unlockedNext"`
}

// ArcadeResult is the response after submitting an arcade result
type ArcadeResult struct {
	Success   bool   `json:"success"`
	SessionID string `json:"sessionId"`
	Score     int    `json:"score"`
}

// MultiplayerResult is the response after submitting a two-player result
type MultiplayerResult struct {
	GameID string `json:"gameId"`
	Winner string `json:"winner"`
}

// LevelProgress represents one level's progress in API responses
type LevelProgress struct {
	LevelNumber int        `json:"levelNumber"`
	Stars       int        `json:"stars"`
	BestScore   int        `json:"bestScore"`
	BestTime    int        `json:"bestTime"`
	BestMoves   int        `json:"bestMoves"`
	IsUnlocked  bool       `json:"isUnlocked"`
	IsCompleted bool       `json:"isCompleted"`
	TimesPlayed int        `json:"timesPlayed"`
	LastPlayed  *time.Time `json:"lastPlayed,omitempty"`
}

// LevelProgressFromModel converts a model.LevelProgress
func LevelProgressFromModel(p *model.LevelProgress) LevelProgress {
	return LevelProgress{
		LevelNumber: p.LevelNumber,
		Stars:       p.Stars,
		BestScore:   p.BestScore,
		BestTime:    p.BestTime,
		BestMoves:   p.BestMoves,
		IsUnlocked:  p.IsUnlocked,
		IsCompleted: p.IsCompleted,
		TimesPlayed: p.TimesPlayed,
		LastPlayed:  optionalTime(p.LastPlayed),
	}
}

// Progress is the response for a user's full adventure progress
type Progress struct {
	Levels         []LevelProgress `json:"levels"`
	TotalStars     int             `json:"totalStars"`
	CompletedCount int             `json:"completedCount"`
}

// ProgressFromSummary converts a progression.ProgressSummary
func ProgressFromSummary(s *progression.ProgressSummary) Progress {
	levels := make([]LevelProgress, len(s.Levels))
	for i, p := range s.Levels {
		levels[i] = LevelProgressFromModel(p)
	}
	return Progress{
		Levels:         levels,
		TotalStars:     s.TotalStars,
		CompletedCount: s.CompletedCount,
	}
}

// ArcadeSession represents an arcade run in API responses
type ArcadeSession struct {
	SessionID   string    `json:"sessionId"`
	Score       int       `json:"score"`
	Time        int       `json:"time"`
	Moves       int       `json:"moves"`
	Bonus       int       `json:"bonus"`
	Stars       int       `json:"stars"`
	Theme       string    `json:"theme"`
	GridSize    string    `json:"gridSize"`
	CompletedAt time.Time `json:"completedAt"`
}

// ArcadeSessionFromModel converts a model.ArcadeSession
func ArcadeSessionFromModel(s *model.ArcadeSession) ArcadeSession {
	return ArcadeSession{
		SessionID:   string(s.ID),
		Score:       s.Score,
		Time:        s.Time,
		Moves:       s.Moves,
		Bonus:       s.Bonus,
		Stars:       s.Stars,
		Theme:       s.Theme,
		GridSize:    s.GridSize,
		CompletedAt: s.CompletedAt,
	}
}

// MultiplayerGame represents a recorded two-player game in API responses
type MultiplayerGame struct {
	GameID       string    `json:"gameId"`
	Theme        string    `json:"theme"`
	Player1Score int       `json:"player1Score"`
	Player2Score int       `json:"player2Score"`
	Winner       string    `json:"winner"`
	TimeTaken    int       `json:"timeTaken"`
	TotalMoves   int       `json:"totalMoves"`
	Timestamp    time.Time `json:"timestamp"`
}

// MultiplayerGameFromModel converts a model.MultiplayerGame
func MultiplayerGameFromModel(g *model.MultiplayerGame) MultiplayerGame {
	return MultiplayerGame{
		GameID:       string(g.ID),
		Theme:        g.Theme,
		Player1Score: g.Player1Score,
		Player2Score: g.Player2Score,
		Winner:       string(g.Winner),
		TimeTaken:    g.TimeTaken,
		TotalMoves:   g.TotalMoves,
		Timestamp:    g.Timestamp,
	}
}

// LeaderboardEntry represents one ranked row
type LeaderboardEntry struct {
	Rank        int       `json:"rank"`
	UserID      string    `json:"userId"`
	Username    string    `json:"username"`
	Score       int       `json:"score"`
	TimeTaken   int       `json:"timeTaken"`
	CompletedAt time.Time `json:"completedAt"`
}

// Leaderboard is the response for a leaderboard query
type Leaderboard struct {
	Mode    string             `json:"mode"`
	Entries []LeaderboardEntry `json:"entries"`
}

// LeaderboardFromEntries converts ranked leaderboard entries
func LeaderboardFromEntries(mode leaderboard.Mode, entries []leaderboard.Entry) Leaderboard {
	rows := make([]LeaderboardEntry, len(entries))
	for i, e := range entries {
		rows[i] = LeaderboardEntry{
			Rank:        i + 1,
			UserID:      string(e.UserID),
			Username:    e.Username,
			Score:       e.Score,
			TimeTaken:   e.TimeTaken,
			CompletedAt: e.CompletedAt,
		}
	}
	return Leaderboard{
		Mode:    string(mode),
		Entries: rows,
	}
}

// Achievement represents an achievement in API responses
type Achievement struct {
	ID              string     `json:"id"`
	AchievementType string     `json:"achievementType"`
	Name            string     `json:"name"`
	Description     string     `json:"description,omitempty"`
	Progress        int        `json:"progress"`
	IsUnlocked      bool       `json:"isUnlocked"`
	UnlockedAt      *time.Time `json:"unlockedAt,omitempty"`
}

// AchievementFromModel converts a model.Achievement
func AchievementFromModel(a *model.Achievement) Achievement {
	return Achievement{
		ID:              a.ID,
		AchievementType: a.AchievementType,
		Name:            a.Name,
		Description:     a.Description,
		Progress:        a.Progress,
		IsUnlocked:      a.IsUnlocked,
		UnlockedAt:      optionalTime(a.UnlockedAt),
	}
}

// AchievementReport is the response after reporting achievement progress
type AchievementReport struct {
	Achievement Achievement `json:"achievement"`
	Unlocked    bool        `json:"unlocked"`
}

// AchievementStats is the response for a user's achievement stats
type AchievementStats struct {
	Total           int `json:"total"`
	Unlocked        int `json:"unlocked"`
	Locked          int `json:"locked"`
	AverageProgress int `json:"averageProgress"`
	CompletionRate  int `json:"completionRate"`
}

// AchievementStatsFromService converts achievement.Stats
func AchievementStatsFromService(s *achievement.Stats) AchievementStats {
	return AchievementStats{
		Total:           s.Total,
		Unlocked:        s.Unlocked,
		Locked:          s.Locked,
		AverageProgress: s.AverageProgress,
		CompletionRate:  s.CompletionRate,
	}
}

// User represents a user profile in API responses
type User struct {
	ID               string         `json:"id"`
	Username         string         `json:"username"`
	Email            string         `json:"email,omitempty"`
	Level            int            `json:"level"`
	TotalXP          int            `json:"totalXP"`
	TotalGamesPlayed int            `json:"totalGamesPlayed"`
	GamesWon         int            `json:"gamesWon"`
	CurrentStreak    int            `json:"currentStreak"`
	BestStreak       int            `json:"bestStreak"`
	Settings         map[string]any `json:"settings,omitempty"`
	CreatedAt        time.Time      `json:"createdAt"`
}

// UserFromProfile converts a user.Profile
func UserFromProfile(p *user.Profile) User {
	u := UserFromModel(p.User)
	u.Level = p.Level
	return u
}

// UserFromModel converts a model.User
func UserFromModel(m *model.User) User {
	return User{
		ID:               string(m.ID),
		Username:         m.Username,
		Email:            m.Email,
		TotalXP:          m.TotalXP,
		TotalGamesPlayed: m.TotalGamesPlayed,
		GamesWon:         m.GamesWon,
		CurrentStreak:    m.CurrentStreak,
		BestStreak:       m.BestStreak,
		Settings:         m.Settings,
		CreatedAt:        m.CreatedAt,
	}
}

// AuthResponse is the response for authentication endpoints
type AuthResponse struct {
	User         User   `json:"user"`
	SessionToken string `json:"sessionToken"`
}

// AuthResponseFromSession creates an AuthResponse from a session
func AuthResponseFromSession(s *identity.Session) AuthResponse {
	return AuthResponse{
		User:         UserFromModel(&s.User),
		SessionToken: s.Token,
	}
}

// Theme represents a tile theme in API responses
type Theme struct {
	Name        string   `json:"name"`
	DisplayName string   `json:"displayName"`
	Tiles       []string `json:"tiles"`
	IsPremium   bool     `json:"isPremium"`
}

// ThemeFromModel converts a model.Theme
func ThemeFromModel(t *model.Theme) Theme {
	return Theme{
		Name:        t.Name,
		DisplayName: t.DisplayName,
		Tiles:       t.Tiles,
		IsPremium:   t.IsPremium,
	}
}

func optionalTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
