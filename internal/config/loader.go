package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config captures environment driven configuration values for the MindEase API.
type Config struct {
	HTTPPort    int
	SQLiteDSN   string
	TokenSecret string
	TokenTTL    time.Duration
	MockLatency time.Duration
}

// Load parses configuration values from the current process environment.
//
// A .env file in the working directory is honored when present. Optional
// fields fall back to defaults; required values and malformed entries are
// reported together so operators see every problem at once.
func Load() (Config, error) {
	// Missing .env is fine; real environments set variables directly.
	_ = godotenv.Load()

	cfg := Config{
		HTTPPort:    8080,
		SQLiteDSN:   "file:mindease.db?_foreign_keys=on",
		TokenTTL:    24 * time.Hour,
		MockLatency: 300 * time.Millisecond,
	}

	missing := make([]string, 0, 1)
	invalid := make([]string, 0, 2)

	if portValue := strings.TrimSpace(os.Getenv("MINDEASE_HTTP_PORT")); portValue != "" {
		port, err := strconv.Atoi(portValue)
		if err != nil || port <= 0 {
			invalid = append(invalid, "MINDEASE_HTTP_PORT")
		} else {
			cfg.HTTPPort = port
		}
	}

	if dsn := strings.TrimSpace(os.Getenv("MINDEASE_SQLITE_DSN")); dsn != "" {
		cfg.SQLiteDSN = dsn
	}

	if secret := strings.TrimSpace(os.Getenv("MINDEASE_TOKEN_SECRET")); secret == "" {
		missing = append(missing, "MINDEASE_TOKEN_SECRET")
	} else {
		cfg.TokenSecret = secret
	}

	if ttlValue := strings.TrimSpace(os.Getenv("MINDEASE_TOKEN_TTL")); ttlValue != "" {
		ttl, err := time.ParseDuration(ttlValue)
		if err != nil || ttl <= 0 {
			invalid = append(invalid, "MINDEASE_TOKEN_TTL")
		} else {
			cfg.TokenTTL = ttl
		}
	}

	if latencyValue := strings.TrimSpace(os.Getenv("MINDEASE_MOCK_LATENCY")); latencyValue != "" {
		latency, err := time.ParseDuration(latencyValue)
		if err != nil || latency < 0 {
			invalid = append(invalid, "MINDEASE_MOCK_LATENCY")
		} else {
			cfg.MockLatency = latency
		}
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables are not set: %s", strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("environment variables have invalid values: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}

// ClientConfig captures the environment for the command line client.
type ClientConfig struct {
	APIBaseURL string
	SessionDSN string
}

// LoadClient parses the client configuration. The session DSN names the
// local database holding the cached login, not the server's store. Nothing
// is required, so loading cannot fail.
func LoadClient() ClientConfig {
	_ = godotenv.Load()

	cfg := ClientConfig{
		APIBaseURL: "https://api.mindease.example",
		SessionDSN: "file:mindease-session.db",
	}

	if base := strings.TrimSpace(os.Getenv("MINDEASE_API_BASE_URL")); base != "" {
		cfg.APIBaseURL = base
	}
	if dsn := strings.TrimSpace(os.Getenv("MINDEASE_SESSION_DSN")); dsn != "" {
		cfg.SessionDSN = dsn
	}
	return cfg
}
