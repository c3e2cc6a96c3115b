package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case LevelResult:
		o.printLevelResult(v)
	case ArcadeResult:
		o.printArcadeResult(v)
	case MultiplayerResult:
		o.printMultiplayerResult(v)
	case Progress:
		o.printProgress(v)
	case []ArcadeSession:
		o.printSessions(v)
	case Leaderboard:
		o.printLeaderboard(v)
	case []Achievement:
		o.printAchievements(v)
	case AchievementStats:
		o.printAchievementStats(v)
	case User:
		o.printUser(v)
	case AuthResult:
		o.printAuthResult(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// LevelResult response type (matches API)
type LevelResult struct {
	Success      bool `json:"success"`
	StarsEarned  int  `json:"starsEarned"`
	IsNewBest    bool `json:"isNewBest"`
	UnlockedNext bool `json:"unlockedNext"`
}

// ArcadeResult response type
type ArcadeResult struct {
	Success   bool   `json:"success"`
	SessionID string `json:"sessionId"`
	Score     int    `json:"score"`
}

// MultiplayerResult response type
type MultiplayerResult struct {
	GameID string `json:"gameId"`
	Winner string `json:"winner"`
}

// LevelProgress response type
type LevelProgress struct {
	LevelNumber int  `json:"levelNumber"`
	Stars       int  `json:"stars"`
	BestScore   int  `json:"bestScore"`
	BestTime    int  `json:"bestTime"`
	BestMoves   int  `json:"bestMoves"`
	IsUnlocked  bool `json:"isUnlocked"`
	IsCompleted bool `json:"isCompleted"`
	TimesPlayed int  `json:"timesPlayed"`
}

// Progress response type
type Progress struct {
	Levels         []LevelProgress `json:"levels"`
	TotalStars     int             `json:"totalStars"`
	CompletedCount int             `json:"completedCount"`
}

// ArcadeSession response type
type ArcadeSession struct {
	SessionID   string    `json:"sessionId"`
	Score       int       `json:"score"`
	Time        int       `json:"time"`
	Moves       int       `json:"moves"`
	Stars       int       `json:"stars"`
	Theme       string    `json:"theme"`
	CompletedAt time.Time `json:"completedAt"`
}

// LeaderboardEntry response type
type LeaderboardEntry struct {
	Rank     int    `json:"rank"`
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Score    int    `json:"score"`
}

// Leaderboard response type
type Leaderboard struct {
	Mode    string             `json:"mode"`
	Entries []LeaderboardEntry `json:"entries"`
}

// Achievement response type
type Achievement struct {
	AchievementType string `json:"achievementType"`
	Name            string `json:"name"`
	Description     string `json:"description,omitempty"`
	Progress        int    `json:"progress"`
	IsUnlocked      bool   `json:"isUnlocked"`
}

// AchievementStats response type
type AchievementStats struct {
	Total           int `json:"total"`
	Unlocked        int `json:"unlocked"`
	Locked          int `json:"locked"`
	AverageProgress int `json:"averageProgress"`
	CompletionRate  int `json:"completionRate"`
}

// User response type
type User struct {
	ID               string `json:"id"`
	Username         string `json:"username"`
	Level            int    `json:"level"`
	TotalXP          int    `json:"totalXP"`
	TotalGamesPlayed int    `json:"totalGamesPlayed"`
	GamesWon         int    `json:"gamesWon"`
}

// AuthResult combines user and token
type AuthResult struct {
	User         User   `json:"user"`
	SessionToken string `json:"sessionToken"`
}

// HealthResult is the health endpoint response, annotated client-side with
// which server answered and how fast
type HealthResult struct {
	Status  string `json:"status"`
	Server  string `json:"server,omitempty"`
	Latency string `json:"latency,omitempty"`
}

func (o *Output) printLevelResult(r LevelResult) {
	fmt.Printf("Stars earned: %s\n", stars(r.StarsEarned))
	if r.IsNewBest {
		fmt.Println("New best score!")
	}
	if r.UnlockedNext {
		fmt.Println("Next level unlocked!")
	}
}

func (o *Output) printArcadeResult(r ArcadeResult) {
	fmt.Printf("Session: %s\n", r.SessionID)
	fmt.Printf("Score: %d\n", r.Score)
}

func (o *Output) printMultiplayerResult(r MultiplayerResult) {
	fmt.Printf("Game: %s\n", r.GameID)
	fmt.Printf("Winner: %s\n", r.Winner)
}

func (o *Output) printProgress(p Progress) {
	fmt.Printf("Total stars: %d\n", p.TotalStars)
	fmt.Printf("Completed levels: %d\n", p.CompletedCount)
	fmt.Println("Levels:")
	for _, l := range p.Levels {
		state := "locked"
		if l.IsUnlocked {
			state = "unlocked"
		}
		fmt.Printf("  %2d. %s %s best=%d (played %d)\n",
			l.LevelNumber, stars(l.Stars), state, l.BestScore, l.TimesPlayed)
	}
}

func (o *Output) printSessions(sessions []ArcadeSession) {
	if len(sessions) == 0 {
		fmt.Println("No arcade sessions")
		return
	}
	for _, s := range sessions {
		fmt.Printf("%s  score=%d time=%ds moves=%d %s (%s)\n",
			s.CompletedAt.Format(time.RFC3339), s.Score, s.Time, s.Moves, stars(s.Stars), s.Theme)
	}
}

func (o *Output) printLeaderboard(l Leaderboard) {
	fmt.Printf("Leaderboard (%s):\n", l.Mode)
	for _, e := range l.Entries {
		fmt.Printf("  %2d. %-20s %d\n", e.Rank, e.Username, e.Score)
	}
}

func (o *Output) printAchievements(achievements []Achievement) {
	if len(achievements) == 0 {
		fmt.Println("No achievements")
		return
	}
	for _, a := range achievements {
		status := fmt.Sprintf("%d%%", a.Progress)
		if a.IsUnlocked {
			status = "unlocked"
		}
		fmt.Printf("  [%s] %s/%s - %s\n", status, a.AchievementType, a.Name, a.Description)
	}
}

func (o *Output) printAchievementStats(s AchievementStats) {
	fmt.Printf("Achievements: %d unlocked / %d total\n", s.Unlocked, s.Total)
	fmt.Printf("Average progress: %d%%\n", s.AverageProgress)
	fmt.Printf("Completion rate: %d%%\n", s.CompletionRate)
}

func (o *Output) printUser(u User) {
	fmt.Printf("User: %s (%s)\n", u.Username, u.ID)
	fmt.Printf("Level: %d (%d XP)\n", u.Level, u.TotalXP)
	fmt.Printf("Games: %d played, %d won\n", u.TotalGamesPlayed, u.GamesWon)
}

func (o *Output) printAuthResult(a AuthResult) {
	o.printUser(a.User)
	fmt.Printf("Token: %s\n", a.SessionToken)
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
	if h.Server != "" {
		fmt.Printf("Server: %s\n", h.Server)
	}
	if h.Latency != "" {
		fmt.Printf("Latency: %s\n", h.Latency)
	}
}

func stars(n int) string {
	if n <= 0 {
		return "---"
	}
	return strings.Repeat("*", n)
}
