package config

import (
	"os"
	"strings"
)

// AppConfig is the main application configuration struct that composes
// domain-specific configuration from separate files.
//
// Configuration is loaded from environment variables using the
// github.com/caarlos0/env library. See individual domain config
// files for details on available environment variables:
//   - auth.go: Authentication and session lifecycle configuration
//   - http.go: HTTP server configuration
//   - redis.go: Redis (token store) configuration
//   - upstream.go: Remote transactions API configuration
//   - metrics.go: StatsD metrics configuration
type AppConfig struct {
	// IsDev controls development mode behavior (relaxed cookies, seeded
	// admin credential). Set DEV=true or NODE_ENV=development.
	IsDev bool `env:"DEV" envDefault:"false"`

	// Authentication and session lifecycle configuration
	Auth AuthConfig

	// Redis configuration (backs the persisted token store)
	Redis RedisConfig `envPrefix:"REDIS_"`

	// HTTP server configuration
	HTTP HTTPConfig

	// Remote transactions API configuration
	Upstream UpstreamConfig `envPrefix:"UPSTREAM_"`

	// StatsD metrics emission
	Metrics MetricsConfig
}

// Sanitize applies guardrails to configuration values loaded from env.
// This should be called after loading configuration from environment variables.
func (c *AppConfig) Sanitize() {
	c.Auth.Sanitize()
	c.HTTP.Sanitize()
	c.Upstream.Sanitize()

	// Check NODE_ENV for dev mode
	c.detectDevMode()
}

// detectDevMode checks both DEV and NODE_ENV environment variables.
// NODE_ENV is checked as a fallback (the SPA tooling sets it).
func (c *AppConfig) detectDevMode() {
	if !c.IsDev {
		nodeEnv := strings.ToLower(os.Getenv("NODE_ENV"))
		c.IsDev = nodeEnv == "development" || nodeEnv == "dev"
	}
}
