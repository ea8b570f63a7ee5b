package httpx

import (
	"context"

	"github.com/ledgerview/txn-ui-api/internal/service"
)

// sessionKey is an unexported context key type to avoid collisions across
// packages. Centralized here so middleware and handlers agree.
type sessionKey struct{}

// SetSessionInContext returns a child context carrying the user session.
// A nil session leaves ctx unchanged.
func SetSessionInContext(ctx context.Context, sess *service.UserSession) context.Context {
	if sess == nil {
		return ctx
	}
	return context.WithValue(ctx, sessionKey{}, sess)
}

// SessionFromContext returns the user session placed by the route guard and
// whether one is present.
func SessionFromContext(ctx context.Context) (*service.UserSession, bool) {
	if sess, ok := ctx.Value(sessionKey{}).(*service.UserSession); ok && sess != nil {
		return sess, true
	}
	return nil, false
}
