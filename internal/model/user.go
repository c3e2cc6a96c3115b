package model

import "time"

// UserID uniquely identifies a player across the system.
// It is issued by the identity service and treated as opaque everywhere else.
type UserID string

// User is the aggregate profile for a player. The counter fields only ever
// move forward: totalXP, totalGamesPlayed and gamesWon are monotonically
// non-decreasing, and every update is applied as (old state, event) -> new
// state rather than through ambient mutation.
type User struct {
	ID               UserID
	Username         string
	Email            string
	TotalXP          int
	TotalGamesPlayed int
	GamesWon         int
	CurrentStreak    int
	BestStreak       int
	Settings         map[string]any
	CreatedAt        time.Time
	LastUpdated      time.Time
}
