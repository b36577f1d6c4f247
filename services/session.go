package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"civicsync/kvstore"
	"civicsync/logger"
	"civicsync/models"
)

// SessionKey is the storage key of the persisted current user.
const SessionKey = "user"

// SessionState is where a Session is in its lifecycle.
type SessionState int

const (
	// SessionLoading means Restore has not run yet.
	SessionLoading SessionState = iota
	SessionUnauthenticated
	SessionAuthenticated
)

func (s SessionState) String() string {
	switch s {
	case SessionLoading:
		return "loading"
	case SessionUnauthenticated:
		return "unauthenticated"
	case SessionAuthenticated:
		return "authenticated"
	default:
		return fmt.Sprintf("SessionState(%d)", int(s))
	}
}

// Session owns the single current user of this client and its persisted copy.
type Session struct {
	mu       sync.RWMutex
	storage  kvstore.Storage
	verifier CredentialVerifier
	logger   *logger.Logger
	user     *models.User
	state    SessionState
}

// NewSession returns a session in the Loading state. Call Restore before use.
func NewSession(storage kvstore.Storage, verifier CredentialVerifier, log *logger.Logger) *Session {
	return &Session{
		storage:  storage,
		verifier: verifier,
		logger:   log,
		state:    SessionLoading,
	}
}

// Restore adopts the persisted user, if any, without re-validating it.
// An unreadable record counts as no record.
func (s *Session) Restore(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = nil
	s.state = SessionUnauthenticated

	data, err := s.storage.Get(ctx, SessionKey)
	if errors.Is(err, kvstore.ErrNotFound) {
		s.logger.Debug("Session: no persisted user")
		return nil
	}
	if err != nil {
		s.logger.Error("Session: failed to read persisted user", "error", err.Error())
		return fmt.Errorf("failed to read session: %w", err)
	}

	var user models.User
	if err := json.Unmarshal(data, &user); err != nil {
		s.logger.Warn("Session: ignoring unreadable persisted user", "error", err.Error())
		return nil
	}

	s.user = &user
	s.state = SessionAuthenticated
	s.logger.Info("Session: restored user", "user_id", user.ID)
	return nil
}

// Login authenticates email and password and makes the result the current user.
func (s *Session) Login(ctx context.Context, email, password string) (models.User, error) {
	if email == "" || password == "" {
		return models.User{}, models.ErrInvalidCredentials
	}

	user, err := s.verifier.Authenticate(ctx, email, password)
	if err != nil {
		s.logger.Info("Session: login rejected", "email", email, "error", err.Error())
		return models.User{}, err
	}

	if err := s.adopt(ctx, user); err != nil {
		return models.User{}, err
	}
	s.logger.Info("Session: logged in", "user_id", user.ID)
	return user, nil
}

// Register enrolls a new user and makes it the current user.
func (s *Session) Register(ctx context.Context, name, email, password string) (models.User, error) {
	if name == "" || email == "" || password == "" {
		return models.User{}, models.ErrRegistrationFailed
	}

	user, err := s.verifier.Enroll(ctx, name, email, password)
	if err != nil {
		s.logger.Info("Session: registration rejected", "email", email, "error", err.Error())
		return models.User{}, err
	}

	if err := s.adopt(ctx, user); err != nil {
		return models.User{}, err
	}
	s.logger.Info("Session: registered", "user_id", user.ID)
	return user, nil
}

// adopt persists user and then makes it current. A failed write leaves the session unchanged.
func (s *Session) adopt(ctx context.Context, user models.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.storage.Set(ctx, SessionKey, data); err != nil {
		s.logger.Error("Session: failed to persist user", "user_id", user.ID, "error", err.Error())
		return fmt.Errorf("failed to persist session: %w", err)
	}
	s.user = &user
	s.state = SessionAuthenticated
	return nil
}

// Logout clears the current user and its persisted copy. It always succeeds;
// a storage failure is only logged.
func (s *Session) Logout(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user != nil {
		s.logger.Info("Session: logged out", "user_id", s.user.ID)
	}
	s.user = nil
	s.state = SessionUnauthenticated

	if err := s.storage.Remove(ctx, SessionKey); err != nil {
		s.logger.Error("Session: failed to remove persisted user", "error", err.Error())
	}
}

// CurrentUser returns a copy of the current user.
func (s *Session) CurrentUser() (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return models.User{}, false
	}
	return *s.user, true
}

func (s *Session) State() SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Session) IsAuthenticated() bool {
	return s.State() == SessionAuthenticated
}

func (s *Session) IsLoading() bool {
	return s.State() == SessionLoading
}
