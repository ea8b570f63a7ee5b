package ports

// Package ports defines interfaces (hexagonal ports) for the session
// lifecycle. Implementations live in internal/adapters; orchestration in
// internal/service.

import (
	"context"

	domainauth "github.com/ledgerview/txn-ui-api/internal/domain/auth"
)

// TokenStore persists the opaque session credential across page reloads.
// It is pure storage: expiry is always derived from the credential's own
// claims, never from the store.
type TokenStore interface {
	Save(ctx context.Context, sid, token string) error
	// Load returns ErrNoToken when no credential is persisted for sid.
	Load(ctx context.Context, sid string) (string, error)
	Clear(ctx context.Context, sid string) error
}

// ErrNoToken is returned by TokenStore.Load when no credential is persisted.
type noTokenError struct{}

func (noTokenError) Error() string { return "no persisted credential" }

var ErrNoToken error = noTokenError{}

// CredentialDecoder turns an opaque credential string into an identity.
// Implementations must fail with an explicit error on any shape problem
// rather than returning a partially populated identity.
type CredentialDecoder interface {
	Decode(ctx context.Context, credential string) (domainauth.Identity, error)
}
