package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/ledgerview/txn-ui-api/internal/domain/auth"
	mockauth "github.com/ledgerview/txn-ui-api/internal/mocks/auth"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestSession(t *testing.T, store *mockauth.MemoryTokenStore, decoder *mockauth.StaticDecoder, idle time.Duration) *AuthSession {
	t.Helper()
	return NewAuthSession(AuthSessionOptions{
		SID:     "sid-1",
		Tokens:  store,
		Decoder: decoder,
		Config: SessionConfig{
			IdleTimeout: idle,
			AdminName:   "Admin",
			AdminEmail:  "admin@example.com",
		},
		Logger: discardLogger(),
	})
}

func TestAuthSession_StartsUnknown(t *testing.T) {
	s := newTestSession(t, mockauth.NewMemoryTokenStore(), mockauth.NewStaticDecoder("tok"), time.Minute)
	assert.Equal(t, domainauth.StatusUnknown, s.Status())
	_, ok := s.Identity()
	assert.False(t, ok)
}

func TestAuthSession_InitializeWithoutToken(t *testing.T) {
	s := newTestSession(t, mockauth.NewMemoryTokenStore(), mockauth.NewStaticDecoder("tok"), time.Minute)
	s.Initialize(context.Background())
	assert.Equal(t, domainauth.StatusUnauthenticated, s.Status())
}

func TestAuthSession_InitializeWithStoredToken(t *testing.T) {
	store := mockauth.NewMemoryTokenStore()
	require.NoError(t, store.Save(context.Background(), "sid-1", "tok"))

	s := newTestSession(t, store, mockauth.NewStaticDecoder("tok"), time.Minute)
	s.Initialize(context.Background())

	assert.Equal(t, domainauth.StatusAuthenticated, s.Status())
	identity, ok := s.Identity()
	require.True(t, ok)
	assert.Equal(t, "mock.user@example.com", identity.Email)
	assert.True(t, s.Federated())
}

func TestAuthSession_InitializeFailsClosedOnBadToken(t *testing.T) {
	store := mockauth.NewMemoryTokenStore()
	require.NoError(t, store.Save(context.Background(), "sid-1", "garbage"))

	s := newTestSession(t, store, mockauth.NewStaticDecoder("tok"), time.Minute)
	s.Initialize(context.Background())

	assert.Equal(t, domainauth.StatusUnauthenticated, s.Status())
	assert.False(t, store.Has("sid-1"), "rejected token must be cleared")
}

func TestAuthSession_InitializeFailsClosedOnExpiredToken(t *testing.T) {
	store := mockauth.NewMemoryTokenStore()
	require.NoError(t, store.Save(context.Background(), "sid-1", "tok"))

	decoder := &mockauth.StaticDecoder{
		Identities: map[string]domainauth.Identity{
			"tok": {
				Name:      "Mock User",
				Email:     "mock.user@example.com",
				ExpiresAt: time.Now().Add(-time.Minute),
			},
		},
	}

	s := newTestSession(t, store, decoder, time.Minute)
	s.Initialize(context.Background())

	assert.Equal(t, domainauth.StatusUnauthenticated, s.Status())
	assert.False(t, store.Has("sid-1"))
}

func TestAuthSession_InitializeIsIdempotent(t *testing.T) {
	store := mockauth.NewMemoryTokenStore()
	s := newTestSession(t, store, mockauth.NewStaticDecoder("tok"), time.Minute)

	s.Initialize(context.Background())
	require.Equal(t, domainauth.StatusUnauthenticated, s.Status())

	// A token appearing later must not flip an already resolved session.
	require.NoError(t, store.Save(context.Background(), "sid-1", "tok"))
	s.Initialize(context.Background())
	assert.Equal(t, domainauth.StatusUnauthenticated, s.Status())
}

func TestAuthSession_LoginPersistsCredential(t *testing.T) {
	store := mockauth.NewMemoryTokenStore()
	s := newTestSession(t, store, mockauth.NewStaticDecoder("tok"), time.Minute)

	require.NoError(t, s.Login(context.Background(), "tok", false))

	assert.Equal(t, domainauth.StatusAuthenticated, s.Status())
	assert.True(t, s.Federated())
	assert.True(t, store.Has("sid-1"))
}

func TestAuthSession_LoginRejectsExpiredCredential(t *testing.T) {
	store := mockauth.NewMemoryTokenStore()
	decoder := &mockauth.StaticDecoder{
		Identities: map[string]domainauth.Identity{
			"tok": {Name: "N", Email: "e@x", ExpiresAt: time.Now().Add(-time.Second)},
		},
	}
	s := newTestSession(t, store, decoder, time.Minute)

	err := s.Login(context.Background(), "tok", false)
	assert.ErrorIs(t, err, ErrCredentialExpired)
	assert.NotEqual(t, domainauth.StatusAuthenticated, s.Status())
	assert.False(t, store.Has("sid-1"))
}

func TestAuthSession_LoginRejectsUndecodableCredential(t *testing.T) {
	s := newTestSession(t, mockauth.NewMemoryTokenStore(), mockauth.NewStaticDecoder("tok"), time.Minute)
	err := s.Login(context.Background(), "nope", false)
	assert.Error(t, err)
}

func TestAuthSession_PrivilegedLoginSkipsPersistence(t *testing.T) {
	store := mockauth.NewMemoryTokenStore()
	s := newTestSession(t, store, mockauth.NewStaticDecoder("tok"), time.Minute)

	require.NoError(t, s.Login(context.Background(), "", true))

	assert.Equal(t, domainauth.StatusAuthenticated, s.Status())
	assert.False(t, s.Federated())
	assert.False(t, store.Has("sid-1"), "fallback login must not persist a credential")

	identity, ok := s.Identity()
	require.True(t, ok)
	assert.Equal(t, "admin@example.com", identity.Email)
}

func TestAuthSession_PrivilegedLoginSupersedesStoredCredential(t *testing.T) {
	store := mockauth.NewMemoryTokenStore()
	require.NoError(t, store.Save(context.Background(), "sid-1", "tok"))

	s := newTestSession(t, store, mockauth.NewStaticDecoder("tok"), time.Minute)
	require.NoError(t, s.Login(context.Background(), "", true))

	assert.False(t, store.Has("sid-1"),
		"a stale federated credential must not survive a privileged login")

	// A fresh session for the same sid must not resolve to the old identity.
	replacement := newTestSession(t, store, mockauth.NewStaticDecoder("tok"), time.Minute)
	replacement.Initialize(context.Background())
	assert.Equal(t, domainauth.StatusUnauthenticated, replacement.Status())
}

func TestAuthSession_LogoutClearsEverything(t *testing.T) {
	store := mockauth.NewMemoryTokenStore()
	s := newTestSession(t, store, mockauth.NewStaticDecoder("tok"), time.Minute)
	require.NoError(t, s.Login(context.Background(), "tok", false))

	require.NoError(t, s.Logout(context.Background()))

	assert.Equal(t, domainauth.StatusUnauthenticated, s.Status())
	_, ok := s.Identity()
	assert.False(t, ok)
	assert.False(t, store.Has("sid-1"))
}

func TestAuthSession_LogoutSignsOutEvenWhenStoreFails(t *testing.T) {
	store := mockauth.NewMemoryTokenStore()
	s := newTestSession(t, store, mockauth.NewStaticDecoder("tok"), time.Minute)
	require.NoError(t, s.Login(context.Background(), "tok", false))

	store.ClearErr = errors.New("redis down")
	err := s.Logout(context.Background())
	assert.Error(t, err)
	assert.Equal(t, domainauth.StatusUnauthenticated, s.Status())
}

func TestAuthSession_IdleExpirySignsOut(t *testing.T) {
	store := mockauth.NewMemoryTokenStore()
	s := newTestSession(t, store, mockauth.NewStaticDecoder("tok"), 30*time.Millisecond)
	require.NoError(t, s.Login(context.Background(), "tok", false))

	assert.Eventually(t, func() bool {
		return s.Status() == domainauth.StatusUnauthenticated
	}, time.Second, 5*time.Millisecond)
	assert.False(t, store.Has("sid-1"), "idle expiry clears the persisted credential")
}

func TestAuthSession_ActivityKeepsSessionAlive(t *testing.T) {
	s := newTestSession(t, mockauth.NewMemoryTokenStore(), mockauth.NewStaticDecoder("tok"), 60*time.Millisecond)
	require.NoError(t, s.Login(context.Background(), "tok", false))

	for i := 0; i < 4; i++ {
		time.Sleep(30 * time.Millisecond)
		s.NotifyActivity()
	}
	assert.Equal(t, domainauth.StatusAuthenticated, s.Status())
}
