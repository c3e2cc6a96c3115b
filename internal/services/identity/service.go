package identity

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/tilematch/backend/internal/dependencies/clock"
	"github.com/tilematch/backend/internal/dependencies/random"
	"github.com/tilematch/backend/internal/model"
	"github.com/tilematch/backend/internal/storage"
)

// Errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidSession     = errors.New("invalid or expired session")
	ErrEmailExists        = errors.New("email already registered")
)

// Session represents an authenticated session
type Session struct {
	Token     string
	UserID    model.UserID
	User      model.User
	CreatedAt time.Time
	ExpiresAt time.Time
}

// idAlphabet is the character set for generated user IDs and session tokens
const idAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// idLength gives roughly 128 bits of entropy over idAlphabet
const idLength = 22

// Service handles account credentials and session management
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	random  random.Random
	logger  *slog.Logger

	mu       sync.RWMutex
	sessions map[string]*Session

	sessionDuration time.Duration
}

// Config holds configuration for the identity service
type Config struct {
	SessionDuration time.Duration
}

// DefaultConfig returns default identity configuration
func DefaultConfig() Config {
	return Config{
		SessionDuration: 24 * time.Hour,
	}
}

// New creates a new identity Service
func New(storage storage.Storage, clock clock.Clock, rnd random.Random, logger *slog.Logger, cfg Config) *Service {
	if cfg.SessionDuration == 0 {
		cfg.SessionDuration = DefaultConfig().SessionDuration
	}
	return &Service{
		storage:         storage,
		clock:           clock,
		random:          rnd,
		logger:          logger,
		sessions:        make(map[string]*Session),
		sessionDuration: cfg.SessionDuration,
	}
}

// Register creates a user account with credentials and opens a session
func (s *Service) Register(ctx context.Context, email, username, password string) (*Session, error) {
	_, err := s.storage.GetCredentialByEmail(ctx, email)
	if err == nil {
		return nil, ErrEmailExists
	}
	if !errors.Is(err, model.ErrCredentialNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	userID := model.UserID(s.generateID("u_"))
	now := s.clock.Now()

	user := &model.User{
		ID:          userID,
		Username:    username,
		Email:       email,
		Settings:    map[string]any{},
		CreatedAt:   now,
		LastUpdated: now,
	}

	credential := &model.Credential{
		UserID:       userID,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.storage.SaveUser(ctx, user); err != nil {
		return nil, err
	}
	if err := s.storage.SaveCredential(ctx, credential); err != nil {
		// Roll back the user doc so a failed registration leaves no
		// orphaned account behind the still-unclaimed email
		if delErr := s.storage.DeleteUser(ctx, userID); delErr != nil {
			s.logger.Error("failed to roll back user after credential save error",
				slog.String("user_id", string(userID)),
				slog.String("error", delErr.Error()),
			)
		}
		return nil, err
	}

	s.logger.Info("user registered", slog.String("user_id", string(userID)))

	return s.createSession(user), nil
}

// Login authenticates a user and opens a session
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	credential, err := s.storage.GetCredentialByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrCredentialNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(credential.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	user, err := s.storage.GetUser(ctx, credential.UserID)
	if err != nil {
		return nil, err
	}

	return s.createSession(user), nil
}

// ValidateSession checks a session token and returns the session
func (s *Service) ValidateSession(token string) (*Session, error) {
	s.mu.RLock()
	session, ok := s.sessions[token]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrInvalidSession
	}

	if s.clock.Now().After(session.ExpiresAt) {
		s.mu.Lock()
		delete(s.sessions, token)
		s.mu.Unlock()
		return nil, ErrInvalidSession
	}

	return session, nil
}

// InvalidateSession removes a session
func (s *Service) InvalidateSession(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

// DeleteUser removes a user account and every record attached to it. The
// user document goes last so a partial failure leaves the account
// discoverable for a retried delete.
func (s *Service) DeleteUser(ctx context.Context, userID model.UserID) error {
	user, err := s.storage.GetUser(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.storage.DeleteLevelProgressForUser(ctx, userID); err != nil {
		return err
	}
	if err := s.storage.DeleteArcadeSessionsForUser(ctx, userID); err != nil {
		return err
	}
	if err := s.storage.DeleteMultiplayerGamesForUser(ctx, userID); err != nil {
		return err
	}
	if err := s.storage.DeleteAchievementsForUser(ctx, userID); err != nil {
		return err
	}
	if err := s.storage.DeleteCredential(ctx, userID); err != nil && !errors.Is(err, model.ErrCredentialNotFound) {
		return err
	}
	if err := s.storage.DeleteUser(ctx, userID); err != nil {
		return err
	}

	s.dropSessionsForUser(userID)

	s.logger.Info("user deleted",
		slog.String("user_id", string(userID)),
		slog.String("username", user.Username),
	)
	return nil
}

// createSession opens a new session for a user
func (s *Service) createSession(user *model.User) *Session {
	token := s.generateID("sess_")
	now := s.clock.Now()

	session := &Session{
		Token:     token,
		UserID:    user.ID,
		User:      *user,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionDuration),
	}

	s.mu.Lock()
	s.sessions[token] = session
	s.mu.Unlock()

	return session
}

func (s *Service) dropSessionsForUser(userID model.UserID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for token, session := range s.sessions {
		if session.UserID == userID {
			delete(s.sessions, token)
		}
	}
}

// generateID generates a random ID with a prefix
func (s *Service) generateID(prefix string) string {
	return prefix + s.random.String(idLength, idAlphabet)
}

// CleanExpiredSessions removes expired sessions (call periodically)
func (s *Service) CleanExpiredSessions() {
	now := s.clock.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	for token, session := range s.sessions {
		if now.After(session.ExpiresAt) {
			delete(s.sessions, token)
		}
	}
}
