package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"civicsync/kvstore"
	"civicsync/logger"
	"civicsync/mocks"
	"civicsync/models"
	"civicsync/store"
)

func newTestSession(t *testing.T, storage kvstore.Storage) *Session {
	t.Helper()
	s := NewSession(storage, AcceptAnyCredentials{}, logger.Noop())
	require.NoError(t, s.Restore(context.Background()))
	return s
}

func TestSession_StartsLoading(t *testing.T) {
	s := NewSession(kvstore.NewMemory(), AcceptAnyCredentials{}, logger.Noop())

	assert.True(t, s.IsLoading())
	assert.False(t, s.IsAuthenticated())

	require.NoError(t, s.Restore(context.Background()))
	assert.False(t, s.IsLoading())
	assert.Equal(t, SessionUnauthenticated, s.State())
}

func TestSession_Login(t *testing.T) {
	ctx := context.Background()
	s := newTestSession(t, kvstore.NewMemory())

	user, err := s.Login(ctx, "a@b.com", "pw")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(user.ID, "user-"))
	assert.Len(t, user.ID, len("user-")+9)
	assert.Equal(t, "a@b.com", user.Email)
	assert.Equal(t, "a", user.Name)
	assert.False(t, user.CreatedAt.IsZero())

	current, ok := s.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, user, current)
	assert.True(t, s.IsAuthenticated())
}

func TestSession_Login_RejectsEmptyFields(t *testing.T) {
	ctx := context.Background()
	storage := kvstore.NewMemory()
	s := newTestSession(t, storage)

	_, err := s.Login(ctx, "", "pw")
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)
	_, err = s.Login(ctx, "a@b.com", "")
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)

	assert.False(t, s.IsAuthenticated())
	_, err = storage.Get(ctx, SessionKey)
	assert.ErrorIs(t, err, kvstore.ErrNotFound)
}

func TestSession_Register(t *testing.T) {
	ctx := context.Background()
	s := newTestSession(t, kvstore.NewMemory())

	user, err := s.Register(ctx, "Asha Rao", "asha@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "Asha Rao", user.Name)
	assert.Equal(t, "asha@example.com", user.Email)
	assert.True(t, s.IsAuthenticated())
}

func TestSession_Register_RejectsEmptyFields(t *testing.T) {
	ctx := context.Background()
	s := newTestSession(t, kvstore.NewMemory())

	for _, in := range [][3]string{{"", "a@b.com", "pw"}, {"A", "", "pw"}, {"A", "a@b.com", ""}} {
		_, err := s.Register(ctx, in[0], in[1], in[2])
		assert.ErrorIs(t, err, models.ErrRegistrationFailed)
	}
	assert.False(t, s.IsAuthenticated())
}

func TestSession_LoginSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	storage := kvstore.NewMemory()

	first := newTestSession(t, storage)
	user, err := first.Login(ctx, "a@b.com", "pw")
	require.NoError(t, err)

	restarted := newTestSession(t, storage)
	current, ok := restarted.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, user.ID, current.ID)
	assert.Equal(t, user.Email, current.Email)
	assert.True(t, user.CreatedAt.Equal(current.CreatedAt))
}

func TestSession_LogoutSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	storage := kvstore.NewMemory()

	first := newTestSession(t, storage)
	_, err := first.Login(ctx, "a@b.com", "pw")
	require.NoError(t, err)

	first.Logout(ctx)
	_, ok := first.CurrentUser()
	assert.False(t, ok)
	assert.Equal(t, SessionUnauthenticated, first.State())

	restarted := newTestSession(t, storage)
	assert.Equal(t, SessionUnauthenticated, restarted.State())
}

func TestSession_LoginReplacesCurrentUser(t *testing.T) {
	ctx := context.Background()
	s := newTestSession(t, kvstore.NewMemory())

	_, err := s.Login(ctx, "first@b.com", "pw")
	require.NoError(t, err)
	second, err := s.Login(ctx, "second@b.com", "pw")
	require.NoError(t, err)

	current, ok := s.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, second.ID, current.ID)
}

func TestSession_Restore_IgnoresCorruptRecord(t *testing.T) {
	ctx := context.Background()
	storage := kvstore.NewMemory()
	require.NoError(t, storage.Set(ctx, SessionKey, []byte("{not json")))

	s := newTestSession(t, storage)
	assert.Equal(t, SessionUnauthenticated, s.State())
}

func TestSession_Restore_StorageError(t *testing.T) {
	storage := &mocks.Storage{}
	storage.On("Get", mock.Anything, SessionKey).Return(nil, errors.New("permission denied"))

	s := NewSession(storage, AcceptAnyCredentials{}, logger.Noop())
	err := s.Restore(context.Background())
	require.Error(t, err)
	assert.Equal(t, SessionUnauthenticated, s.State())
}

func TestSession_Login_PersistFailureKeepsState(t *testing.T) {
	storage := &mocks.Storage{}
	storage.On("Get", mock.Anything, SessionKey).Return(nil, kvstore.ErrNotFound)
	storage.On("Set", mock.Anything, SessionKey, mock.Anything).Return(errors.New("read-only"))

	s := newTestSession(t, storage)
	_, err := s.Login(context.Background(), "a@b.com", "pw")
	require.Error(t, err)
	assert.False(t, s.IsAuthenticated())
	storage.AssertExpectations(t)
}

func TestSession_Logout_AlwaysSucceeds(t *testing.T) {
	storage := &mocks.Storage{}
	storage.On("Get", mock.Anything, SessionKey).Return(nil, kvstore.ErrNotFound)
	storage.On("Set", mock.Anything, SessionKey, mock.Anything).Return(nil)
	storage.On("Remove", mock.Anything, SessionKey).Return(errors.New("read-only"))

	s := newTestSession(t, storage)
	_, err := s.Login(context.Background(), "a@b.com", "pw")
	require.NoError(t, err)

	s.Logout(context.Background())
	assert.False(t, s.IsAuthenticated())
}

func TestSession_WithPasswordCredentials(t *testing.T) {
	ctx := context.Background()
	s := NewSession(kvstore.NewMemory(), NewPasswordCredentials(store.NewMemoryCredentialStore()), logger.Noop())
	require.NoError(t, s.Restore(ctx))

	_, err := s.Login(ctx, "asha@example.com", "secret")
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)

	registered, err := s.Register(ctx, "Asha", "asha@example.com", "secret")
	require.NoError(t, err)
	s.Logout(ctx)

	_, err = s.Login(ctx, "asha@example.com", "wrong")
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)
	assert.False(t, s.IsAuthenticated())

	loggedIn, err := s.Login(ctx, "asha@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, loggedIn.ID)

	_, err = s.Register(ctx, "Other", "asha@example.com", "pw")
	assert.ErrorIs(t, err, models.ErrRegistrationFailed)
}

func TestSessionState_String(t *testing.T) {
	assert.Equal(t, "loading", SessionLoading.String())
	assert.Equal(t, "authenticated", SessionAuthenticated.String())
}
