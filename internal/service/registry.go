package service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/ledgerview/txn-ui-api/internal/ports"
)

// UserSession bundles the per-session state: the auth lifecycle plus the
// two record views (the live listing and the soft-deleted restore view).
type UserSession struct {
	SID    string
	Auth   *AuthSession
	Browse *Browser
	Trash  *Browser
}

// RegistryOptions groups dependencies for SessionRegistry.
type RegistryOptions struct {
	Tokens  ports.TokenStore
	Decoder ports.CredentialDecoder
	Gateway ports.RecordGateway
	Config  SessionConfig
	Logger  *slog.Logger
}

// SessionRegistry owns the live sessions, keyed by the opaque session id
// carried in the browser cookie. Sessions are created lazily and evicted
// on logout; the credential persisted in the token store is what survives
// an eviction or restart.
type SessionRegistry struct {
	tokens  ports.TokenStore
	decoder ports.CredentialDecoder
	gateway ports.RecordGateway
	cfg     SessionConfig
	logger  *slog.Logger

	mu       sync.Mutex
	sessions map[string]*UserSession
}

// NewSessionRegistry constructs an empty registry.
func NewSessionRegistry(opts RegistryOptions) *SessionRegistry {
	if opts.Tokens == nil {
		panic("TokenStore is required")
	}
	if opts.Decoder == nil {
		panic("CredentialDecoder is required")
	}
	if opts.Gateway == nil {
		panic("RecordGateway is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionRegistry{
		tokens:   opts.Tokens,
		decoder:  opts.Decoder,
		gateway:  opts.Gateway,
		cfg:      opts.Config,
		logger:   logger,
		sessions: make(map[string]*UserSession),
	}
}

// NewSID mints a fresh opaque session id.
func (r *SessionRegistry) NewSID() string {
	return uuid.NewString()
}

// GetOrCreate returns the session for sid, creating and initializing it on
// first sight. Initialization resolves the Unknown auth status from the
// persisted credential, so a browser reload lands back in its signed-in
// session without re-presenting the credential.
func (r *SessionRegistry) GetOrCreate(ctx context.Context, sid string) *UserSession {
	r.mu.Lock()
	if sess, ok := r.sessions[sid]; ok {
		r.mu.Unlock()
		return sess
	}

	logger := r.logger.With("sid", sid)
	sess := &UserSession{
		SID: sid,
		Auth: NewAuthSession(AuthSessionOptions{
			SID:     sid,
			Tokens:  r.tokens,
			Decoder: r.decoder,
			Config:  r.cfg,
			Logger:  logger,
		}),
		Browse: NewBrowser(BrowserOptions{Gateway: r.gateway, Logger: logger}),
		Trash:  NewBrowser(BrowserOptions{Gateway: r.gateway, IncludeDeleted: true, Logger: logger}),
	}
	r.sessions[sid] = sess
	r.mu.Unlock()

	sess.Auth.Initialize(ctx)
	return sess
}

// Lookup returns the session for sid without creating one.
func (r *SessionRegistry) Lookup(sid string) (*UserSession, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sess, ok := r.sessions[sid]
	return sess, ok
}

// Evict signs the session out and drops it from the registry.
func (r *SessionRegistry) Evict(ctx context.Context, sid string) {
	r.mu.Lock()
	sess, ok := r.sessions[sid]
	delete(r.sessions, sid)
	r.mu.Unlock()

	if !ok {
		return
	}
	if err := sess.Auth.Logout(ctx); err != nil {
		r.logger.WarnContext(ctx, "session eviction cleanup failed", "sid", sid, "error", err)
	}
}

// Len reports the number of live sessions.
func (r *SessionRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
