package request

import "time"

// Required numeric fields are pointers so a missing field is
// distinguishable from a legitimate zero.

// LevelResultRequest is the request body for submitting a level result
type LevelResultRequest struct {
	UserID      string `json:"userId"`
	LevelNumber *int   `json:"levelNumber"`
	Score       *int   `json:"score"`
	TimeTaken   *int   `json:"timeTaken"`
	Moves       *int   `json:"moves"`
	Theme       string `json:"theme,omitempty"`
	Completed   bool   `json:"completed"`
	// IsWin is accepted for older clients but ignored; wins are derived
	// from stars
	IsWin *bool `json:"isWin,omitempty"`
}

// ArcadeResultRequest is the request body for submitting an arcade result
type ArcadeResultRequest struct {
	UserID    string `json:"userId"`
	SessionID string `json:"sessionId,omitempty"`
	Score     *int   `json:"score"`
	Time      *int   `json:"time"`
	Moves     *int   `json:"moves"`
	Bonus     int    `json:"bonus,omitempty"`
	Stars     int    `json:"stars,omitempty"`
	Theme     string `json:"theme,omitempty"`
	GridSize  string `json:"gridSize,omitempty"`
}

// MultiplayerResultRequest is the request body for submitting a
// two-player result
type MultiplayerResultRequest struct {
	UserID       string    `json:"userId"`
	Theme        string    `json:"theme"`
	Player1Score *int      `json:"player1Score"`
	Player2Score *int      `json:"player2Score"`
	TimeTaken    int       `json:"timeTaken,omitempty"`
	TotalMoves   int       `json:"totalMoves,omitempty"`
	Timestamp    time.Time `json:"timestamp,omitempty"`
}

// AchievementProgressRequest is the request body for reporting
// achievement progress
type AchievementProgressRequest struct {
	UserID          string `json:"userId"`
	AchievementType string `json:"achievementType"`
	Name            string `json:"name"`
	Description     string `json:"description,omitempty"`
	Progress        *int   `json:"progress"`
}

// AchievementUnlockRequest is the request body for unlocking an
// achievement outright
type AchievementUnlockRequest struct {
	UserID          string `json:"userId"`
	AchievementType string `json:"achievementType"`
	Name            string `json:"name"`
	Description     string `json:"description,omitempty"`
}

// RegisterRequest is the request body for registering an account
type RegisterRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateSettingsRequest is the request body for updating user settings
type UpdateSettingsRequest struct {
	Settings map[string]any `json:"settings"`
}
