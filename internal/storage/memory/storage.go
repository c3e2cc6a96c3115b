package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/tilematch/backend/internal/model"
	"github.com/tilematch/backend/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	users        map[model.UserID]*model.User
	progress     map[progressKey]*model.LevelProgress
	sessions     map[model.SessionID]*model.ArcadeSession
	games        map[model.GameID]*model.MultiplayerGame
	achievements map[achievementKey]*model.Achievement
	credentials  map[model.UserID]*model.Credential
	emailIndex   map[string]model.UserID
	themes       map[string]*model.Theme
}

type progressKey struct {
	userID      model.UserID
	levelNumber int
}

type achievementKey struct {
	userID          model.UserID
	achievementType string
	name            string
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		users:        make(map[model.UserID]*model.User),
		progress:     make(map[progressKey]*model.LevelProgress),
		sessions:     make(map[model.SessionID]*model.ArcadeSession),
		games:        make(map[model.GameID]*model.MultiplayerGame),
		achievements: make(map[achievementKey]*model.Achievement),
		credentials:  make(map[model.UserID]*model.Credential),
		emailIndex:   make(map[string]model.UserID),
		themes:       make(map[string]*model.Theme),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// User operations

func (s *Storage) SaveUser(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.ID] = user
	return nil
}

func (s *Storage) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return user, nil
}

func (s *Storage) DeleteUser(ctx context.Context, id model.UserID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, id)
	return nil
}

// Level progress operations

func (s *Storage) SaveLevelProgress(ctx context.Context, progress *model.LevelProgress) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := progressKey{userID: progress.UserID, levelNumber: progress.LevelNumber}
	s.progress[key] = progress
	return nil
}

func (s *Storage) SaveLevelProgressBatch(ctx context.Context, rows []*model.LevelProgress) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	// Single lock hold makes the batch all-or-nothing for concurrent readers
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, row := range rows {
		key := progressKey{userID: row.UserID, levelNumber: row.LevelNumber}
		s.progress[key] = row
	}
	return nil
}

func (s *Storage) GetLevelProgress(ctx context.Context, userID model.UserID, levelNumber int) (*model.LevelProgress, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	key := progressKey{userID: userID, levelNumber: levelNumber}
	progress, ok := s.progress[key]
	if !ok {
		return nil, model.ErrLevelProgressNotFound
	}
	return progress, nil
}

func (s *Storage) GetLevelProgressForUser(ctx context.Context, userID model.UserID) ([]*model.LevelProgress, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var rows []*model.LevelProgress
	for key, row := range s.progress {
		if key.userID == userID {
			rows = append(rows, row)
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].LevelNumber < rows[j].LevelNumber
	})
	return rows, nil
}

func (s *Storage) ListLevelProgressByBestScore(ctx context.Context, limit int) ([]*model.LevelProgress, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows := make([]*model.LevelProgress, 0, len(s.progress))
	for _, row := range s.progress {
		rows = append(rows, row)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].BestScore > rows[j].BestScore
	})
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

func (s *Storage) DeleteLevelProgressForUser(ctx context.Context, userID model.UserID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key := range s.progress {
		if key.userID == userID {
			delete(s.progress, key)
		}
	}
	return nil
}

// Arcade session operations

func (s *Storage) SaveArcadeSession(ctx context.Context, session *model.ArcadeSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = session
	return nil
}

func (s *Storage) GetArcadeSessionsForUser(ctx context.Context, userID model.UserID, limit int) ([]*model.ArcadeSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var sessions []*model.ArcadeSession
	for _, session := range s.sessions {
		if session.UserID == userID {
			sessions = append(sessions, session)
		}
	}
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].CompletedAt.After(sessions[j].CompletedAt)
	})
	if limit > 0 && len(sessions) > limit {
		sessions = sessions[:limit]
	}
	return sessions, nil
}

func (s *Storage) ListArcadeSessionsByScore(ctx context.Context, limit int) ([]*model.ArcadeSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sessions := make([]*model.ArcadeSession, 0, len(s.sessions))
	for _, session := range s.sessions {
		sessions = append(sessions, session)
	}
	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].Score > sessions[j].Score
	})
	if limit > 0 && len(sessions) > limit {
		sessions = sessions[:limit]
	}
	return sessions, nil
}

func (s *Storage) DeleteArcadeSessionsForUser(ctx context.Context, userID model.UserID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, session := range s.sessions {
		if session.UserID == userID {
			delete(s.sessions, id)
		}
	}
	return nil
}

// Multiplayer game operations

func (s *Storage) SaveMultiplayerGame(ctx context.Context, game *model.MultiplayerGame) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.games[game.ID] = game
	return nil
}

func (s *Storage) GetMultiplayerGamesForUser(ctx context.Context, userID model.UserID, limit int) ([]*model.MultiplayerGame, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var games []*model.MultiplayerGame
	for _, game := range s.games {
		if game.UserID == userID {
			games = append(games, game)
		}
	}
	sort.Slice(games, func(i, j int) bool {
		return games[i].Timestamp.After(games[j].Timestamp)
	})
	if limit > 0 && len(games) > limit {
		games = games[:limit]
	}
	return games, nil
}

func (s *Storage) DeleteMultiplayerGamesForUser(ctx context.Context, userID model.UserID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, game := range s.games {
		if game.UserID == userID {
			delete(s.games, id)
		}
	}
	return nil
}

// Achievement operations

func (s *Storage) SaveAchievement(ctx context.Context, achievement *model.Achievement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := achievementKey{
		userID:          achievement.UserID,
		achievementType: achievement.AchievementType,
		name:            achievement.Name,
	}
	s.achievements[key] = achievement
	return nil
}

func (s *Storage) GetAchievement(ctx context.Context, userID model.UserID, achievementType, name string) (*model.Achievement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	key := achievementKey{userID: userID, achievementType: achievementType, name: name}
	achievement, ok := s.achievements[key]
	if !ok {
		return nil, model.ErrAchievementNotFound
	}
	return achievement, nil
}

func (s *Storage) GetAchievementsForUser(ctx context.Context, userID model.UserID) ([]*model.Achievement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var achievements []*model.Achievement
	for key, achievement := range s.achievements {
		if key.userID == userID {
			achievements = append(achievements, achievement)
		}
	}
	sort.Slice(achievements, func(i, j int) bool {
		return achievements[i].UnlockedAt.After(achievements[j].UnlockedAt)
	})
	return achievements, nil
}

func (s *Storage) DeleteAchievementsForUser(ctx context.Context, userID model.UserID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key := range s.achievements {
		if key.userID == userID {
			delete(s.achievements, key)
		}
	}
	return nil
}

// Credential operations

func (s *Storage) SaveCredential(ctx context.Context, cred *model.Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.credentials[cred.UserID] = cred
	s.emailIndex[cred.Email] = cred.UserID
	return nil
}

func (s *Storage) GetCredential(ctx context.Context, userID model.UserID) (*model.Credential, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cred, ok := s.credentials[userID]
	if !ok {
		return nil, model.ErrCredentialNotFound
	}
	return cred, nil
}

func (s *Storage) GetCredentialByEmail(ctx context.Context, email string) (*model.Credential, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	userID, ok := s.emailIndex[email]
	if !ok {
		return nil, model.ErrCredentialNotFound
	}
	cred, ok := s.credentials[userID]
	if !ok {
		return nil, model.ErrCredentialNotFound
	}
	return cred, nil
}

func (s *Storage) DeleteCredential(ctx context.Context, userID model.UserID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cred, ok := s.credentials[userID]; ok {
		delete(s.emailIndex, cred.Email)
		delete(s.credentials, userID)
	}
	return nil
}

// Theme catalog operations

func (s *Storage) SaveTheme(ctx context.Context, theme *model.Theme) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.themes[theme.Name] = theme
	return nil
}

func (s *Storage) GetTheme(ctx context.Context, name string) (*model.Theme, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	theme, ok := s.themes[name]
	if !ok {
		return nil, model.ErrThemeNotFound
	}
	return theme, nil
}

func (s *Storage) ListThemes(ctx context.Context) ([]*model.Theme, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	themes := make([]*model.Theme, 0, len(s.themes))
	for _, theme := range s.themes {
		themes = append(themes, theme)
	}
	sort.Slice(themes, func(i, j int) bool {
		return themes[i].Name < themes[j].Name
	})
	return themes, nil
}
