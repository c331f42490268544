package config

import "time"

// Config holds runtime settings for the TesteMatch CLI.
//
// Fields:
//   - APIBaseURL: base URL of the backend REST API, including the /api prefix.
//   - RequestTimeout: per-request HTTP timeout.
//   - DataDir: directory for the local database and install secret.
type Config struct {
	APIBaseURL     string
	DataDir        string
	RequestTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:4000/api"
	c.RequestTimeout = 10 * time.Second
	c.DataDir = defaultDataDir()
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment, JSON (if present) and command-line flags. Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
