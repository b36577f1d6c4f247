package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"civicsync/models"
	"civicsync/store"
)

// CredentialVerifier turns login and registration input into a User.
// Callers have already rejected empty fields.
type CredentialVerifier interface {
	Authenticate(ctx context.Context, email, password string) (models.User, error)
	Enroll(ctx context.Context, name, email, password string) (models.User, error)
}

// NewUserID returns "user-" followed by nine random characters.
func NewUserID() string {
	token := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "user-" + token[:9]
}

// AcceptAnyCredentials accepts every non-empty credential and synthesizes a fresh user.
// It checks nothing. Use PasswordCredentials for real verification.
type AcceptAnyCredentials struct {
	Now func() time.Time
}

func (a AcceptAnyCredentials) now() time.Time {
	if a.Now != nil {
		return a.Now().UTC()
	}
	return time.Now().UTC()
}

func (a AcceptAnyCredentials) Authenticate(_ context.Context, email, _ string) (models.User, error) {
	name, _, _ := strings.Cut(email, "@")
	return models.User{
		ID:        NewUserID(),
		Email:     email,
		Name:      name,
		CreatedAt: a.now(),
	}, nil
}

func (a AcceptAnyCredentials) Enroll(_ context.Context, name, email, _ string) (models.User, error) {
	return models.User{
		ID:        NewUserID(),
		Email:     email,
		Name:      name,
		CreatedAt: a.now(),
	}, nil
}

// PasswordCredentials checks passwords against bcrypt hashes in a CredentialStore.
type PasswordCredentials struct {
	store store.CredentialStore
}

func NewPasswordCredentials(s store.CredentialStore) *PasswordCredentials {
	return &PasswordCredentials{store: s}
}

func (p *PasswordCredentials) Authenticate(ctx context.Context, email, password string) (models.User, error) {
	cred, err := p.store.GetByEmail(ctx, email)
	if errors.Is(err, store.ErrCredentialNotFound) {
		return models.User{}, models.ErrInvalidCredentials
	}
	if err != nil {
		return models.User{}, fmt.Errorf("failed to get credential: %w", err)
	}
	if !cred.ComparePassword(password) {
		return models.User{}, models.ErrInvalidCredentials
	}
	return cred.User, nil
}

func (p *PasswordCredentials) Enroll(ctx context.Context, name, email, password string) (models.User, error) {
	cred := models.Credential{
		Email: email,
		User: models.User{
			ID:        NewUserID(),
			Email:     email,
			Name:      name,
			CreatedAt: time.Now().UTC(),
		},
	}
	if err := cred.HashPassword(password); err != nil {
		return models.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	err := p.store.Create(ctx, cred)
	if errors.Is(err, store.ErrEmailTaken) {
		return models.User{}, fmt.Errorf("%w: %v", models.ErrRegistrationFailed, err)
	}
	if err != nil {
		return models.User{}, fmt.Errorf("failed to store credential: %w", err)
	}
	return cred.User, nil
}
