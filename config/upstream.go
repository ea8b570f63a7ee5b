package config

import "time"

// UpstreamConfig describes the remote transactions API this service
// consumes. The remote API owns all durable record state.
type UpstreamConfig struct {
	// BaseURL is the root of the transactions API (e.g., "https://api.example.com").
	BaseURL string `env:"BASE_URL,required"`

	// Timeout bounds each request to the remote API.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"15s"`
}

const (
	minUpstreamTimeout = time.Second
	maxUpstreamTimeout = 2 * time.Minute
)

// Sanitize applies guardrails to upstream configuration values.
func (u *UpstreamConfig) Sanitize() {
	if u.Timeout < minUpstreamTimeout {
		u.Timeout = minUpstreamTimeout
	}
	if u.Timeout > maxUpstreamTimeout {
		u.Timeout = maxUpstreamTimeout
	}
}
