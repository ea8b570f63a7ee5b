package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	domainauth "github.com/ledgerview/txn-ui-api/internal/domain/auth"
	"github.com/ledgerview/txn-ui-api/internal/ports"
)

// SessionConfig carries the tunables of the session lifecycle.
type SessionConfig struct {
	// IdleTimeout is the idle-expiry window re-armed by activity.
	IdleTimeout time.Duration
	// AdminName and AdminEmail form the fixed fallback identity used by
	// the privileged (non-federated) login path.
	AdminName  string
	AdminEmail string
}

// AuthSessionOptions groups dependencies for AuthSession.
type AuthSessionOptions struct {
	SID     string
	Tokens  ports.TokenStore
	Decoder ports.CredentialDecoder
	Config  SessionConfig
	Logger  *slog.Logger
}

// AuthSession owns the authentication lifecycle of one browser session:
// credential persistence, identity derivation, idle expiry, and the
// tri-state status the route guard consults.
//
// Status starts Unknown and resolves on Initialize. The identity is present
// if and only if the status is Authenticated.
type AuthSession struct {
	sid     string
	tokens  ports.TokenStore
	decoder ports.CredentialDecoder
	cfg     SessionConfig
	clock   *SessionClock
	logger  *slog.Logger

	mu        sync.Mutex
	status    domainauth.Status
	identity  *domainauth.Identity
	federated bool
}

// ErrCredentialExpired is returned by Login when the presented credential's
// embedded expiry has already passed.
var ErrCredentialExpired = errors.New("credential expired")

// NewAuthSession constructs an AuthSession in the Unknown state.
func NewAuthSession(opts AuthSessionOptions) *AuthSession {
	if opts.Tokens == nil {
		panic("TokenStore is required")
	}
	if opts.Decoder == nil {
		panic("CredentialDecoder is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	s := &AuthSession{
		sid:     opts.SID,
		tokens:  opts.Tokens,
		decoder: opts.Decoder,
		cfg:     opts.Config,
		logger:  logger,
		status:  domainauth.StatusUnknown,
	}
	s.clock = NewSessionClock(s.expireIdle)
	return s
}

// Initialize resolves the Unknown status from the persisted credential, if
// any. A missing token resolves to Unauthenticated; a decode failure or a
// lapsed expiry fails closed (token cleared, Unauthenticated) without
// returning an error to the caller. Calling Initialize on an already
// resolved session is a no-op.
func (s *AuthSession) Initialize(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != domainauth.StatusUnknown {
		return
	}

	token, err := s.tokens.Load(ctx, s.sid)
	if err != nil {
		if !errors.Is(err, ports.ErrNoToken) {
			s.logger.WarnContext(ctx, "token load failed, treating as signed out", "error", err)
		}
		s.status = domainauth.StatusUnauthenticated
		return
	}

	identity, err := s.decoder.Decode(ctx, token)
	if err != nil {
		s.logger.WarnContext(ctx, "stored credential rejected", "error", err)
		s.failClosedLocked(ctx)
		return
	}
	if identity.Expired(time.Now()) {
		s.logger.InfoContext(ctx, "stored credential expired", "expired_at", identity.ExpiresAt)
		s.failClosedLocked(ctx)
		return
	}

	s.identity = &identity
	s.federated = true
	s.status = domainauth.StatusAuthenticated
	s.clock.Start(s.idleWindow(identity))
}

// Login authenticates the session. When privileged is true the fixed
// fallback identity is synthesized and nothing is persisted; this path
// stays distinguishable from federated logins via Federated(). Otherwise
// the credential is decoded and persisted for cross-reload survival.
func (s *AuthSession) Login(ctx context.Context, credential string, privileged bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if privileged {
		// A privileged login supersedes any persisted federated credential;
		// left in place it would resurrect the old identity after a restart.
		if err := s.tokens.Clear(ctx, s.sid); err != nil {
			s.logger.WarnContext(ctx, "clear superseded credential failed", "error", err)
		}
		s.identity = &domainauth.Identity{Name: s.cfg.AdminName, Email: s.cfg.AdminEmail}
		s.federated = false
		s.status = domainauth.StatusAuthenticated
		s.clock.Start(s.cfg.IdleTimeout)
		return nil
	}

	identity, err := s.decoder.Decode(ctx, credential)
	if err != nil {
		return fmt.Errorf("decode credential: %w", err)
	}
	if identity.Expired(time.Now()) {
		return ErrCredentialExpired
	}
	if err := s.tokens.Save(ctx, s.sid, credential); err != nil {
		return fmt.Errorf("persist credential: %w", err)
	}

	s.identity = &identity
	s.federated = true
	s.status = domainauth.StatusAuthenticated
	s.clock.Start(s.idleWindow(identity))
	return nil
}

// Logout signs the session out: status Unauthenticated, identity and
// persisted credential cleared, idle clock stopped. The session stays
// signed out even if clearing the store fails; the error is reported so
// the caller can log it.
func (s *AuthSession) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.logoutLocked(ctx)
}

// NotifyActivity re-arms the idle window. Called on every authenticated
// request; ignored while signed out.
func (s *AuthSession) NotifyActivity() {
	s.mu.Lock()
	authenticated := s.status == domainauth.StatusAuthenticated
	s.mu.Unlock()
	if authenticated {
		s.clock.NotifyActivity()
	}
}

// Status returns the session's authentication status.
func (s *AuthSession) Status() domainauth.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Identity returns the derived identity and whether one is present.
func (s *AuthSession) Identity() (domainauth.Identity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.identity == nil {
		return domainauth.Identity{}, false
	}
	return *s.identity, true
}

// Federated reports whether the current login came from a real federated
// credential rather than the privileged escape hatch.
func (s *AuthSession) Federated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.federated && s.identity != nil
}

// expireIdle is the SessionClock callback: the idle window lapsed with no
// activity, so the session is forcibly signed out.
func (s *AuthSession) expireIdle() {
	ctx := context.Background()
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != domainauth.StatusAuthenticated {
		return
	}
	s.logger.InfoContext(ctx, "idle window elapsed, signing session out", "sid", s.sid)
	if err := s.logoutLocked(ctx); err != nil {
		s.logger.WarnContext(ctx, "idle logout cleanup failed", "error", err)
	}
}

func (s *AuthSession) logoutLocked(ctx context.Context) error {
	s.status = domainauth.StatusUnauthenticated
	s.identity = nil
	s.federated = false
	s.clock.Stop()
	if err := s.tokens.Clear(ctx, s.sid); err != nil {
		return fmt.Errorf("clear persisted credential: %w", err)
	}
	return nil
}

// failClosedLocked clears all credential state without surfacing an error:
// a bad stored token must resolve to signed-out, never crash startup.
func (s *AuthSession) failClosedLocked(ctx context.Context) {
	if err := s.tokens.Clear(ctx, s.sid); err != nil {
		s.logger.WarnContext(ctx, "clear rejected credential failed", "error", err)
	}
	s.identity = nil
	s.federated = false
	s.status = domainauth.StatusUnauthenticated
}

// idleWindow arms for the standard idle window, shortened to the
// credential's remaining lifetime when that is sooner.
func (s *AuthSession) idleWindow(identity domainauth.Identity) time.Duration {
	window := s.cfg.IdleTimeout
	if identity.ExpiresAt.IsZero() {
		return window
	}
	if remaining := time.Until(identity.ExpiresAt); remaining < window {
		return remaining
	}
	return window
}
