package account

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/eytgaming/eytgaming/internal/dependencies/clock"
	"github.com/eytgaming/eytgaming/internal/model"
	"github.com/eytgaming/eytgaming/internal/storage"
)

// Errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidSession     = errors.New("invalid or expired session")
	ErrUsernameExists     = errors.New("username already exists")
)

// Session represents an authenticated session
type Session struct {
	Token     string
	UserID    model.UserID
	User      model.User
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Config holds configuration for the account service
type Config struct {
	SessionDuration time.Duration
	// OnlineWindow is how recently a user must have been seen to count
	// as online
	OnlineWindow time.Duration
}

// DefaultConfig returns default account configuration
func DefaultConfig() Config {
	return Config{
		SessionDuration: 24 * time.Hour,
		OnlineWindow:    5 * time.Minute,
	}
}

// Service handles registration, authentication, privacy settings, presence
// and match recording
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger

	mu       sync.RWMutex
	sessions map[string]*Session

	cfg Config
}

// New creates a new account service
func New(storage storage.Storage, clock clock.Clock, cfg Config, logger *slog.Logger) *Service {
	if cfg.SessionDuration == 0 {
		cfg.SessionDuration = DefaultConfig().SessionDuration
	}
	if cfg.OnlineWindow == 0 {
		cfg.OnlineWindow = DefaultConfig().OnlineWindow
	}
	return &Service{
		storage:  storage,
		clock:    clock,
		logger:   logger,
		sessions: make(map[string]*Session),
		cfg:      cfg,
	}
}

// Register creates a user account and a session. New accounts start with
// every visibility flag off: nothing is shared until the owner opts in.
func (s *Service) Register(ctx context.Context, username, password, displayName string) (*Session, error) {
	// Check if username exists
	_, err := s.storage.GetUserByUsername(ctx, username)
	if err == nil {
		return nil, ErrUsernameExists
	}
	if !errors.Is(err, model.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	user := &model.User{
		ID:          model.UserID("u_" + uuid.NewString()),
		Username:    username,
		DisplayName: displayName,
		LastSeenAt:  now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	creds := &model.Credentials{
		UserID:       user.ID,
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.storage.SaveUser(ctx, user); err != nil {
		return nil, err
	}
	if err := s.storage.SaveCredentials(ctx, creds); err != nil {
		return nil, err
	}

	return s.createSession(user)
}

// Login authenticates a user and creates a session
func (s *Service) Login(ctx context.Context, username, password string) (*Session, error) {
	user, err := s.storage.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	creds, err := s.storage.GetCredentials(ctx, user.ID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(creds.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.createSession(user)
}

// ValidateSession checks if a session token is valid and returns the session
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

// GetUser retrieves a user by id
func (s *Service) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	return s.storage.GetUser(ctx, id)
}

// GetUserByUsername retrieves a user by username
func (s *Service) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	return s.storage.GetUserByUsername(ctx, username)
}

// UpdatePrivacy replaces the user's visibility flags and private-profile
// setting
func (s *Service) UpdatePrivacy(ctx context.Context, userID model.UserID, flags model.VisibilityFlags, privateProfile bool) (*model.User, error) {
	user, err := s.storage.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.Visibility = flags
	user.PrivateProfile = privateProfile
	user.UpdatedAt = s.clock.Now()

	if err := s.storage.SaveUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Touch records that the user was just seen, driving online status
func (s *Service) Touch(ctx context.Context, userID model.UserID) error {
	user, err := s.storage.GetUser(ctx, userID)
	if err != nil {
		return err
	}
	user.LastSeenAt = s.clock.Now()
	return s.storage.SaveUser(ctx, user)
}

// IsOnline reports whether the user was seen within the online window
func (s *Service) IsOnline(user *model.User) bool {
	if user.LastSeenAt.IsZero() {
		return false
	}
	return s.clock.Now().Sub(user.LastSeenAt) < s.cfg.OnlineWindow
}

// RecordMatch folds a match result into the user's statistics and appends
// an activity feed entry
func (s *Service) RecordMatch(ctx context.Context, userID model.UserID, won bool) (*model.PlayerStatistics, error) {
	if _, err := s.storage.GetUser(ctx, userID); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	stats, err := s.storage.GetStatistics(ctx, userID)
	if err != nil {
		if !errors.Is(err, model.ErrUserNotFound) {
			return nil, err
		}
		stats = &model.PlayerStatistics{UserID: userID}
	}

	stats.MatchesPlayed++
	if won {
		stats.MatchesWon++
	}
	stats.UpdatedAt = now

	if err := s.storage.SaveStatistics(ctx, stats); err != nil {
		return nil, err
	}

	outcome := "lost"
	if won {
		outcome = "won"
	}
	entry := model.ActivityEntry{
		Kind:       "match_played",
		Message:    fmt.Sprintf("Played a match and %s", outcome),
		OccurredAt: now,
	}
	if err := s.storage.AppendActivity(ctx, userID, entry); err != nil {
		s.logger.Warn("failed to record match activity",
			slog.String("user_id", string(userID)),
			slog.String("error", err.Error()),
		)
	}

	return stats, nil
}

// createSession creates a new session for a user
func (s *Service) createSession(user *model.User) (*Session, error) {
	token := generateToken()
	now := s.clock.Now()

	session := &Session{
		Token:     token,
		UserID:    user.ID,
		User:      *user,
		CreatedAt: now,
		ExpiresAt: now.Add(s.cfg.SessionDuration),
	}

	s.mu.Lock()
	s.sessions[token] = session
	s.mu.Unlock()

	return session, nil
}

// generateToken generates a random session token
func generateToken() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return "sess_" + base64.RawURLEncoding.EncodeToString(b)
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
