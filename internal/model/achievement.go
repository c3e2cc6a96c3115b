package model

import "time"

// Achievement progress bounds. An achievement unlocks when progress reaches
// ProgressComplete and stays unlocked forever after.
const (
	ProgressMin      = 0
	ProgressComplete = 100
)

// Achievement tracks progress toward a single unlockable, keyed by
// (user, type, name). Progress is monotonic max once created; UnlockedAt is
// set exactly once, on the transition to unlocked, and never cleared.
type Achievement struct {
	ID              string
	UserID          UserID
	AchievementType string
	Name            string
	Description     string
	Progress        int
	IsUnlocked      bool
	UnlockedAt      time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ValidProgress reports whether p is an acceptable progress value.
func ValidProgress(p int) bool {
	return p >= ProgressMin && p <= ProgressComplete
}
