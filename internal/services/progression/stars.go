package progression

import "math"

// Star rating thresholds. A submission always earns at least one star; zero
// stars exists only as the never-played state on a progress row.
const (
	threeStarMoves = 15
	threeStarTime  = 30
	twoStarMoves   = 20
	twoStarTime    = 45
)

// ComputeStars grades a completed level from moves and completion time.
// Pure function of its inputs; the thresholds are fixed across all levels.
func ComputeStars(moves, timeTaken int) int {
	switch {
	case moves <= threeStarMoves && timeTaken <= threeStarTime:
		return 3
	case moves <= twoStarMoves && timeTaken <= twoStarTime:
		return 2
	default:
		return 1
	}
}

// BaseXPPerLevel anchors the XP curve: reaching level n+1 from n costs
// floor(BaseXPPerLevel * n^1.2).
const BaseXPPerLevel = 100

// LevelForXP derives a player level from accumulated XP. The level is never
// stored ahead of totalXP; it is recomputed on every read.
func LevelForXP(totalXP int) int {
	level := 1
	remaining := totalXP
	for {
		cost := xpForNextLevel(level)
		if remaining < cost {
			return level
		}
		remaining -= cost
		level++
	}
}

// xpForNextLevel returns XP required to go from currentLevel to the next one
func xpForNextLevel(currentLevel int) int {
	if currentLevel < 1 {
		currentLevel = 1
	}
	return int(float64(BaseXPPerLevel) * math.Pow(float64(currentLevel), 1.2))
}
