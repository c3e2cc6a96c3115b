package model

import "time"

// Credential holds a user's login credential. Stored separately from the
// User profile so password material never travels with gameplay reads.
type Credential struct {
	UserID       UserID
	Email        string // login email (immutable)
	PasswordHash string // bcrypt hash
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
