package model

import "errors"

// Common errors used across the application
var (
	// User errors
	ErrUserNotFound = errors.New("user not found")

	// Level progress errors
	ErrLevelProgressNotFound = errors.New("level progress not found")
	ErrInvalidLevelNumber    = errors.New("level number out of range")

	// Arcade errors
	ErrSessionNotFound = errors.New("arcade session not found")

	// Multiplayer errors
	ErrGameNotFound = errors.New("multiplayer game not found")

	// Achievement errors
	ErrAchievementNotFound = errors.New("achievement not found")
	ErrInvalidProgress     = errors.New("achievement progress out of range")

	// Theme errors
	ErrThemeNotFound = errors.New("theme not found")

	// Credential errors
	ErrCredentialNotFound = errors.New("credential not found")
)
