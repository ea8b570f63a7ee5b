package config

import (
	"fmt"
	"strings"
	"time"
)

// AuthMode selects how a federated credential is turned into an identity.
type AuthMode string

const (
	// AuthModeOIDC verifies credentials online against the issuer's keys.
	AuthModeOIDC AuthMode = "oidc"
	// AuthModeOffline decodes credential claims without signature
	// verification (matches the original client-side behavior; use for
	// development and tests).
	AuthModeOffline AuthMode = "offline"
)

// UnmarshalText implements encoding.TextUnmarshaler for AuthMode.
func (a *AuthMode) UnmarshalText(text []byte) error {
	v := strings.ToLower(string(text))
	switch v {
	case "oidc", "offline":
		*a = AuthMode(v)
		return nil
	default:
		return fmt.Errorf("invalid AuthMode: %q (valid options: oidc, offline)", v)
	}
}

// OIDCConfig contains issuer settings for online credential verification.
type OIDCConfig struct {
	IssuerURL string `env:"ISSUER_URL" envDefault:"https://accounts.google.com"`
	ClientID  string `env:"CLIENT_ID"`
}

// AdminConfig describes the privileged (non-federated) login escape hatch.
// PasswordHash is a bcrypt hash; when empty the password login is disabled
// unless dev mode seeds a default.
type AdminConfig struct {
	Username     string `env:"USERNAME"      envDefault:"admin"`
	Name         string `env:"NAME"          envDefault:"Zluri"`
	Email        string `env:"EMAIL"         envDefault:"admin@localhost"`
	PasswordHash string `env:"PASSWORD_HASH" envDefault:""`
}

// AuthConfig groups all authentication and session lifecycle configuration.
type AuthConfig struct {
	// Mode determines which credential decoder to use.
	Mode AuthMode `env:"AUTH_MODE" envDefault:"oidc"`

	// IdleTimeout is the idle-expiry window: an authenticated session is
	// logged out after this much time with no activity. Activity re-arms
	// the window. A historical variant of the app used 30m.
	IdleTimeout time.Duration `env:"AUTH_IDLE_TIMEOUT" envDefault:"5m"`

	// TokenTTL is the retention period for the persisted credential in
	// the token store. This is storage retention only; session expiry is
	// always derived from the credential's embedded expiry claim.
	TokenTTL time.Duration `env:"AUTH_TOKEN_TTL" envDefault:"720h"`

	// OIDC issuer configuration (used when Mode=oidc).
	OIDC OIDCConfig `envPrefix:"OIDC_"`

	// Admin login configuration.
	Admin AdminConfig `envPrefix:"ADMIN_"`
}

const (
	minIdleTimeout = 30 * time.Second
	maxIdleTimeout = 24 * time.Hour
)

// Sanitize applies guardrails to auth configuration values.
func (a *AuthConfig) Sanitize() {
	if a.IdleTimeout < minIdleTimeout {
		a.IdleTimeout = minIdleTimeout
	}
	if a.IdleTimeout > maxIdleTimeout {
		a.IdleTimeout = maxIdleTimeout
	}
	if a.TokenTTL <= 0 {
		a.TokenTTL = 720 * time.Hour
	}
}
