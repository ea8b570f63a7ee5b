package auth

// Package auth contains simple hand-written test doubles for auth ports.
// These are lightweight and suitable for unit tests without codegen.

import (
	"context"
	"errors"
	"sync"
	"time"

	domainauth "github.com/ledgerview/txn-ui-api/internal/domain/auth"
	"github.com/ledgerview/txn-ui-api/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.TokenStore        = (*MemoryTokenStore)(nil)
	_ ports.CredentialDecoder = (*StaticDecoder)(nil)
)

// MemoryTokenStore is an in-memory token store for unit tests. It is safe
// for concurrent use because the idle-expiry callback clears tokens from a
// timer goroutine.
type MemoryTokenStore struct {
	mu     sync.Mutex
	tokens map[string]string

	// Optional fault injection.
	SaveErr  error
	LoadErr  error
	ClearErr error
}

// NewMemoryTokenStore creates an empty in-memory token store.
func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{tokens: make(map[string]string)}
}

func (m *MemoryTokenStore) Save(_ context.Context, sid, token string) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	if sid == "" {
		return errors.New("session id cannot be empty")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens[sid] = token
	return nil
}

func (m *MemoryTokenStore) Load(_ context.Context, sid string) (string, error) {
	if m.LoadErr != nil {
		return "", m.LoadErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	token, ok := m.tokens[sid]
	if !ok {
		return "", ports.ErrNoToken
	}
	return token, nil
}

func (m *MemoryTokenStore) Clear(_ context.Context, sid string) error {
	if m.ClearErr != nil {
		return m.ClearErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tokens, sid)
	return nil
}

// Has reports whether a token is stored for sid.
func (m *MemoryTokenStore) Has(sid string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.tokens[sid]
	return ok
}

// StaticDecoder maps known credential strings to fixed identities.
// Unknown credentials are rejected, which makes malformed-token paths easy
// to exercise.
type StaticDecoder struct {
	// Identities keys are accepted credentials.
	Identities map[string]domainauth.Identity

	// DecodeFunc overrides the lookup entirely when set.
	DecodeFunc func(ctx context.Context, credential string) (domainauth.Identity, error)
}

// NewStaticDecoder creates a decoder that accepts the given credential and
// returns an identity expiring an hour from now.
func NewStaticDecoder(credential string) *StaticDecoder {
	return &StaticDecoder{
		Identities: map[string]domainauth.Identity{
			credential: {
				Name:      "Mock User",
				Email:     "mock.user@example.com",
				ExpiresAt: time.Now().Add(time.Hour),
			},
		},
	}
}

func (d *StaticDecoder) Decode(ctx context.Context, credential string) (domainauth.Identity, error) {
	if d.DecodeFunc != nil {
		return d.DecodeFunc(ctx, credential)
	}
	identity, ok := d.Identities[credential]
	if !ok {
		return domainauth.Identity{}, errors.New("unrecognized credential")
	}
	return identity, nil
}
