package config

// MetricsConfig contains StatsD emission settings. Metrics are off unless
// explicitly enabled with an address.
type MetricsConfig struct {
	Enabled bool   `env:"STATSD_ENABLED" envDefault:"false"`
	Address string `env:"STATSD_ADDR"    envDefault:""`
	Prefix  string `env:"STATSD_PREFIX"  envDefault:"txn_ui_api"`
}
