package model

import "time"

// Level number bounds for the adventure mode campaign.
const (
	MinLevel = 1
	MaxLevel = 16
)

// Star rating bounds. Zero stars only ever appears as the never-played state;
// any submission earns at least one star.
const (
	MinStars = 0
	MaxStars = 3
)

// LevelProgress is the durable per-(user, level) record. Exactly one row
// exists per pair at steady state, and a missing row is equivalent to a row
// with zero progress.
//
// All fields except LastPlayed merge monotonically: Stars and BestScore only
// go up, BestTime and BestMoves only go down (lower is better), IsUnlocked
// and IsCompleted only flip false -> true, TimesPlayed only increments.
type LevelProgress struct {
	UserID      UserID
	LevelNumber int
	Stars       int
	BestScore   int
	BestTime    int
	BestMoves   int
	IsUnlocked  bool
	IsCompleted bool
	TimesPlayed int
	LastPlayed  time.Time
	UpdatedAt   time.Time
}

// NewLevelProgress returns a zero-progress row for the given level.
// Level 1 is unlocked by default for every user.
func NewLevelProgress(userID UserID, levelNumber int) *LevelProgress {
	return &LevelProgress{
		UserID:      userID,
		LevelNumber: levelNumber,
		IsUnlocked:  levelNumber == MinLevel,
	}
}

// ValidLevelNumber reports whether n is a playable level.
func ValidLevelNumber(n int) bool {
	return n >= MinLevel && n <= MaxLevel
}
