package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tilematch/backend/internal/model"
	"github.com/tilematch/backend/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface.
//
// Entities are stored as JSON documents under typed keys. Score-ordered
// listings are served from ZSET indexes maintained alongside each write, so
// leaderboard reads never scan the whole keyspace. Multi-key writes go
// through pipelines, which keeps index updates and the batched level
// initialization all-or-nothing.
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// User operations

func (s *Storage) SaveUser(ctx context.Context, user *model.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, userKey(user.ID), data, 0).Err()
}

func (s *Storage) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	data, err := s.client.Get(ctx, userKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}

	var user model.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Storage) DeleteUser(ctx context.Context, id model.UserID) error {
	return s.client.Del(ctx, userKey(id)).Err()
}

// Level progress operations

func (s *Storage) SaveLevelProgress(ctx context.Context, progress *model.LevelProgress) error {
	data, err := json.Marshal(progress)
	if err != nil {
		return err
	}

	pKey := progressKey(progress.UserID, progress.LevelNumber)

	// Pipeline keeps the document and both indexes in step
	pipe := s.client.Pipeline()
	pipe.Set(ctx, pKey, data, 0)
	pipe.SAdd(ctx, progressForUserIndexKey(progress.UserID), pKey)
	pipe.ZAdd(ctx, progressByScoreIndexKey(), redis.Z{
		Score:  float64(progress.BestScore),
		Member: pKey,
	})
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) SaveLevelProgressBatch(ctx context.Context, rows []*model.LevelProgress) error {
	if len(rows) == 0 {
		return nil
	}

	// Marshal everything before queueing so a bad row fails with no writes
	docs := make([][]byte, len(rows))
	for i, row := range rows {
		data, err := json.Marshal(row)
		if err != nil {
			return err
		}
		docs[i] = data
	}

	pipe := s.client.Pipeline()
	for i, row := range rows {
		pKey := progressKey(row.UserID, row.LevelNumber)
		pipe.Set(ctx, pKey, docs[i], 0)
		pipe.SAdd(ctx, progressForUserIndexKey(row.UserID), pKey)
		pipe.ZAdd(ctx, progressByScoreIndexKey(), redis.Z{
			Score:  float64(row.BestScore),
			Member: pKey,
		})
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (s *Storage) GetLevelProgress(ctx context.Context, userID model.UserID, levelNumber int) (*model.LevelProgress, error) {
	data, err := s.client.Get(ctx, progressKey(userID, levelNumber)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrLevelProgressNotFound
		}
		return nil, err
	}

	var progress model.LevelProgress
	if err := json.Unmarshal(data, &progress); err != nil {
		return nil, err
	}
	return &progress, nil
}

func (s *Storage) GetLevelProgressForUser(ctx context.Context, userID model.UserID) ([]*model.LevelProgress, error) {
	keys, err := s.client.SMembers(ctx, progressForUserIndexKey(userID)).Result()
	if err != nil {
		return nil, err
	}
	rows, err := s.fetchProgressRows(ctx, keys)
	if err != nil {
		return nil, err
	}
	sortProgressByLevel(rows)
	return rows, nil
}

func (s *Storage) ListLevelProgressByBestScore(ctx context.Context, limit int) ([]*model.LevelProgress, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit) - 1
	}
	keys, err := s.client.ZRevRange(ctx, progressByScoreIndexKey(), 0, stop).Result()
	if err != nil {
		return nil, err
	}
	return s.fetchProgressRows(ctx, keys)
}

func (s *Storage) DeleteLevelProgressForUser(ctx context.Context, userID model.UserID) error {
	indexKey := progressForUserIndexKey(userID)
	keys, err := s.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	for _, key := range keys {
		pipe.Del(ctx, key)
		pipe.ZRem(ctx, progressByScoreIndexKey(), key)
	}
	pipe.Del(ctx, indexKey)
	_, err = pipe.Exec(ctx)
	return err
}

// fetchProgressRows bulk-fetches progress documents via MGET, skipping
// members whose document has gone missing
func (s *Storage) fetchProgressRows(ctx context.Context, keys []string) ([]*model.LevelProgress, error) {
	if len(keys) == 0 {
		return []*model.LevelProgress{}, nil
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	rows := make([]*model.LevelProgress, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue
		}
		var row model.LevelProgress
		if err := json.Unmarshal([]byte(val.(string)), &row); err != nil {
			continue
		}
		rows = append(rows, &row)
	}
	return rows, nil
}

// Arcade session operations

func (s *Storage) SaveArcadeSession(ctx context.Context, session *model.ArcadeSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}

	sKey := arcadeSessionKey(session.ID)

	pipe := s.client.Pipeline()
	pipe.Set(ctx, sKey, data, 0)
	pipe.ZAdd(ctx, arcadeForUserIndexKey(session.UserID), redis.Z{
		Score:  float64(session.CompletedAt.Unix()),
		Member: sKey,
	})
	pipe.ZAdd(ctx, arcadeByScoreIndexKey(), redis.Z{
		Score:  float64(session.Score),
		Member: sKey,
	})
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetArcadeSessionsForUser(ctx context.Context, userID model.UserID, limit int) ([]*model.ArcadeSession, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit) - 1
	}
	keys, err := s.client.ZRevRange(ctx, arcadeForUserIndexKey(userID), 0, stop).Result()
	if err != nil {
		return nil, err
	}
	return s.fetchSessions(ctx, keys)
}

func (s *Storage) ListArcadeSessionsByScore(ctx context.Context, limit int) ([]*model.ArcadeSession, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit) - 1
	}
	keys, err := s.client.ZRevRange(ctx, arcadeByScoreIndexKey(), 0, stop).Result()
	if err != nil {
		return nil, err
	}
	return s.fetchSessions(ctx, keys)
}

func (s *Storage) DeleteArcadeSessionsForUser(ctx context.Context, userID model.UserID) error {
	indexKey := arcadeForUserIndexKey(userID)
	keys, err := s.client.ZRange(ctx, indexKey, 0, -1).Result()
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	for _, key := range keys {
		pipe.Del(ctx, key)
		pipe.ZRem(ctx, arcadeByScoreIndexKey(), key)
	}
	pipe.Del(ctx, indexKey)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) fetchSessions(ctx context.Context, keys []string) ([]*model.ArcadeSession, error) {
	if len(keys) == 0 {
		return []*model.ArcadeSession{}, nil
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	sessions := make([]*model.ArcadeSession, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue
		}
		var session model.ArcadeSession
		if err := json.Unmarshal([]byte(val.(string)), &session); err != nil {
			continue
		}
		sessions = append(sessions, &session)
	}
	return sessions, nil
}

// Multiplayer game operations

func (s *Storage) SaveMultiplayerGame(ctx context.Context, game *model.MultiplayerGame) error {
	data, err := json.Marshal(game)
	if err != nil {
		return err
	}

	gKey := multiplayerGameKey(game.ID)

	pipe := s.client.Pipeline()
	pipe.Set(ctx, gKey, data, 0)
	pipe.ZAdd(ctx, multiplayerForUserIndexKey(game.UserID), redis.Z{
		Score:  float64(game.Timestamp.Unix()),
		Member: gKey,
	})
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetMultiplayerGamesForUser(ctx context.Context, userID model.UserID, limit int) ([]*model.MultiplayerGame, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit) - 1
	}
	keys, err := s.client.ZRevRange(ctx, multiplayerForUserIndexKey(userID), 0, stop).Result()
	if err != nil {
		return nil, err
	}

	if len(keys) == 0 {
		return []*model.MultiplayerGame{}, nil
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	games := make([]*model.MultiplayerGame, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue
		}
		var game model.MultiplayerGame
		if err := json.Unmarshal([]byte(val.(string)), &game); err != nil {
			continue
		}
		games = append(games, &game)
	}
	return games, nil
}

func (s *Storage) DeleteMultiplayerGamesForUser(ctx context.Context, userID model.UserID) error {
	indexKey := multiplayerForUserIndexKey(userID)
	keys, err := s.client.ZRange(ctx, indexKey, 0, -1).Result()
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	for _, key := range keys {
		pipe.Del(ctx, key)
	}
	pipe.Del(ctx, indexKey)
	_, err = pipe.Exec(ctx)
	return err
}

// Achievement operations

func (s *Storage) SaveAchievement(ctx context.Context, achievement *model.Achievement) error {
	data, err := json.Marshal(achievement)
	if err != nil {
		return err
	}

	aKey := achievementKey(achievement.UserID, achievement.AchievementType, achievement.Name)

	pipe := s.client.Pipeline()
	pipe.Set(ctx, aKey, data, 0)
	pipe.SAdd(ctx, achievementsForUserIndexKey(achievement.UserID), aKey)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetAchievement(ctx context.Context, userID model.UserID, achievementType, name string) (*model.Achievement, error) {
	data, err := s.client.Get(ctx, achievementKey(userID, achievementType, name)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrAchievementNotFound
		}
		return nil, err
	}

	var achievement model.Achievement
	if err := json.Unmarshal(data, &achievement); err != nil {
		return nil, err
	}
	return &achievement, nil
}

func (s *Storage) GetAchievementsForUser(ctx context.Context, userID model.UserID) ([]*model.Achievement, error) {
	keys, err := s.client.SMembers(ctx, achievementsForUserIndexKey(userID)).Result()
	if err != nil {
		return nil, err
	}

	if len(keys) == 0 {
		return []*model.Achievement{}, nil
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	achievements := make([]*model.Achievement, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue
		}
		var achievement model.Achievement
		if err := json.Unmarshal([]byte(val.(string)), &achievement); err != nil {
			continue
		}
		achievements = append(achievements, &achievement)
	}
	return achievements, nil
}

func (s *Storage) DeleteAchievementsForUser(ctx context.Context, userID model.UserID) error {
	indexKey := achievementsForUserIndexKey(userID)
	keys, err := s.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	for _, key := range keys {
		pipe.Del(ctx, key)
	}
	pipe.Del(ctx, indexKey)
	_, err = pipe.Exec(ctx)
	return err
}

// Credential operations

func (s *Storage) SaveCredential(ctx context.Context, cred *model.Credential) error {
	data, err := json.Marshal(cred)
	if err != nil {
		return err
	}

	// Pipeline for atomic save + email index update
	pipe := s.client.Pipeline()
	pipe.Set(ctx, credentialKey(cred.UserID), data, 0)
	pipe.Set(ctx, emailIndexKey(cred.Email), string(cred.UserID), 0)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetCredential(ctx context.Context, userID model.UserID) (*model.Credential, error) {
	data, err := s.client.Get(ctx, credentialKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrCredentialNotFound
		}
		return nil, err
	}

	var cred model.Credential
	if err := json.Unmarshal(data, &cred); err != nil {
		return nil, err
	}
	return &cred, nil
}

func (s *Storage) GetCredentialByEmail(ctx context.Context, email string) (*model.Credential, error) {
	userIDStr, err := s.client.Get(ctx, emailIndexKey(email)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrCredentialNotFound
		}
		return nil, err
	}

	return s.GetCredential(ctx, model.UserID(userIDStr))
}

func (s *Storage) DeleteCredential(ctx context.Context, userID model.UserID) error {
	cred, err := s.GetCredential(ctx, userID)
	if err != nil {
		if errors.Is(err, model.ErrCredentialNotFound) {
			return nil
		}
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Del(ctx, credentialKey(userID))
	pipe.Del(ctx, emailIndexKey(cred.Email))
	_, err = pipe.Exec(ctx)
	return err
}

// Theme catalog operations

func (s *Storage) SaveTheme(ctx context.Context, theme *model.Theme) error {
	data, err := json.Marshal(theme)
	if err != nil {
		return err
	}

	tKey := themeKey(theme.Name)

	pipe := s.client.Pipeline()
	pipe.Set(ctx, tKey, data, 0)
	pipe.SAdd(ctx, themesIndexKey(), tKey)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetTheme(ctx context.Context, name string) (*model.Theme, error) {
	data, err := s.client.Get(ctx, themeKey(name)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrThemeNotFound
		}
		return nil, err
	}

	var theme model.Theme
	if err := json.Unmarshal(data, &theme); err != nil {
		return nil, err
	}
	return &theme, nil
}

func (s *Storage) ListThemes(ctx context.Context) ([]*model.Theme, error) {
	keys, err := s.client.SMembers(ctx, themesIndexKey()).Result()
	if err != nil {
		return nil, err
	}

	if len(keys) == 0 {
		return []*model.Theme{}, nil
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	themes := make([]*model.Theme, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue
		}
		var theme model.Theme
		if err := json.Unmarshal([]byte(val.(string)), &theme); err != nil {
			continue
		}
		themes = append(themes, &theme)
	}
	sortThemesByName(themes)
	return themes, nil
}
