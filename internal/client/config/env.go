package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with values from the environment. A .env file in
// the working directory is loaded first when present; already-set variables
// win over the file, and a missing file is not an error.
//
// Recognized variables:
//
//	TESTEMATCH_API_URL   base URL of the backend REST API
//	TESTEMATCH_TIMEOUT   per-request timeout, e.g. "10s"
//	TESTEMATCH_DATA_DIR  directory for local state
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("TESTEMATCH_API_URL"); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv("TESTEMATCH_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.RequestTimeout = d
		}
	}
	if v := os.Getenv("TESTEMATCH_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
}

// defaultDataDir places local state under the user config dir, falling back
// to a dotted directory in the working directory when that is unavailable.
func defaultDataDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ".testematch"
	}
	return filepath.Join(base, "testematch")
}
