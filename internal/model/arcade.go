package model

import "time"

// SessionID identifies a single arcade run.
type SessionID string

// ArcadeSession is one completed arcade run. Sessions form an append-only
// log: they are never updated or merged after being written, and best-of
// computation happens at read time in the leaderboard.
type ArcadeSession struct {
	ID          SessionID
	UserID      UserID
	Score       int
	Time        int
	Moves       int
	Bonus       int
	Stars       int
	Theme       string
	GridSize    string
	CompletedAt time.Time
	CreatedAt   time.Time
}
