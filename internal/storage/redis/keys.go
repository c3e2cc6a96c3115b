package redis

import (
	"fmt"

	"github.com/tilematch/backend/internal/model"
)

// Key prefix for all game-related data
const keyPrefix = "tilematch"

// Key generation functions for each entity type

// userKey returns the Redis key for a User
func userKey(id model.UserID) string {
	return fmt.Sprintf("%s:user:%s", keyPrefix, id)
}

// progressKey returns the Redis key for a LevelProgress row
func progressKey(userID model.UserID, levelNumber int) string {
	return fmt.Sprintf("%s:progress:%s:%d", keyPrefix, userID, levelNumber)
}

// progressForUserIndexKey returns the Redis key for the SET of a user's progress rows
func progressForUserIndexKey(userID model.UserID) string {
	return fmt.Sprintf("%s:idx:progress_for_user:%s", keyPrefix, userID)
}

// progressByScoreIndexKey returns the Redis key for the global bestScore ZSET
func progressByScoreIndexKey() string {
	return fmt.Sprintf("%s:idx:progress_by_score", keyPrefix)
}

// arcadeSessionKey returns the Redis key for an ArcadeSession
func arcadeSessionKey(id model.SessionID) string {
	return fmt.Sprintf("%s:arcade:%s", keyPrefix, id)
}

// arcadeForUserIndexKey returns the Redis key for a user's sessions ZSET (scored by completedAt)
func arcadeForUserIndexKey(userID model.UserID) string {
	return fmt.Sprintf("%s:idx:arcade_for_user:%s", keyPrefix, userID)
}

// arcadeByScoreIndexKey returns the Redis key for the global arcade score ZSET
func arcadeByScoreIndexKey() string {
	return fmt.Sprintf("%s:idx:arcade_by_score", keyPrefix)
}

// multiplayerGameKey returns the Redis key for a MultiplayerGame
func multiplayerGameKey(id model.GameID) string {
	return fmt.Sprintf("%s:mpgame:%s", keyPrefix, id)
}

// multiplayerForUserIndexKey returns the Redis key for a user's games ZSET (scored by timestamp)
func multiplayerForUserIndexKey(userID model.UserID) string {
	return fmt.Sprintf("%s:idx:mpgames_for_user:%s", keyPrefix, userID)
}

// achievementKey returns the Redis key for an Achievement
func achievementKey(userID model.UserID, achievementType, name string) string {
	return fmt.Sprintf("%s:achievement:%s:%s:%s", keyPrefix, userID, achievementType, name)
}

// achievementsForUserIndexKey returns the Redis key for the SET of a user's achievements
func achievementsForUserIndexKey(userID model.UserID) string {
	return fmt.Sprintf("%s:idx:achievements_for_user:%s", keyPrefix, userID)
}

// credentialKey returns the Redis key for a Credential
func credentialKey(userID model.UserID) string {
	return fmt.Sprintf("%s:credential:%s", keyPrefix, userID)
}

// emailIndexKey returns the Redis key for the email -> user_id index
func emailIndexKey(email string) string {
	return fmt.Sprintf("%s:idx:email:%s", keyPrefix, email)
}

// themeKey returns the Redis key for a Theme
func themeKey(name string) string {
	return fmt.Sprintf("%s:theme:%s", keyPrefix, name)
}

// themesIndexKey returns the Redis key for the SET of theme keys
func themesIndexKey() string {
	return fmt.Sprintf("%s:idx:themes", keyPrefix)
}
