package redis

// Package redis provides the Redis-backed token store. The persisted
// credential is the only durable client-side state in the system.

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ledgerview/txn-ui-api/internal/ports"
)

const defaultRetention = 30 * 24 * time.Hour

// TokenStore is a Redis-based ports.TokenStore. The retention TTL is a
// storage housekeeping bound, not session expiry: the credential's embedded
// expiry claim stays authoritative and is checked by the auth session.
type TokenStore struct {
	client    redis.UniversalClient
	prefix    string
	retention time.Duration
}

// TokenStoreOptions configures NewTokenStore.
type TokenStoreOptions struct {
	Client    redis.UniversalClient
	Prefix    string        // default "authtoken:"
	Retention time.Duration // default 30 days
}

// NewTokenStore creates a Redis-backed token store.
func NewTokenStore(opts TokenStoreOptions) *TokenStore {
	prefix := opts.Prefix
	if prefix == "" {
		prefix = "authtoken:"
	}
	retention := opts.Retention
	if retention <= 0 {
		retention = defaultRetention
	}
	return &TokenStore{
		client:    opts.Client,
		prefix:    prefix,
		retention: retention,
	}
}

func (s *TokenStore) Save(ctx context.Context, sid, token string) error {
	if sid == "" {
		return errors.New("session id cannot be empty")
	}
	if token == "" {
		return errors.New("token cannot be empty")
	}
	return s.client.Set(ctx, s.prefix+sid, token, s.retention).Err()
}

func (s *TokenStore) Load(ctx context.Context, sid string) (string, error) {
	if sid == "" {
		return "", ports.ErrNoToken
	}
	token, err := s.client.Get(ctx, s.prefix+sid).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ports.ErrNoToken
		}
		return "", fmt.Errorf("redis get: %w", err)
	}
	return token, nil
}

func (s *TokenStore) Clear(ctx context.Context, sid string) error {
	if sid == "" {
		return nil // nothing to clear
	}
	return s.client.Del(ctx, s.prefix+sid).Err()
}
