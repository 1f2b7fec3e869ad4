package config

import (
	"os"
	"time"
)

// Environment variables recognized by FromEnv. Each overrides the
// corresponding file setting.
const (
	EnvAPIURL    = "AGENTFORGE_API_URL"
	EnvWSURL     = "AGENTFORGE_WS_URL"
	EnvTokenPath = "AGENTFORGE_TOKEN_PATH"
)

// Defaults for a local backend.
const (
	DefaultAPIURL       = "http://localhost:8000"
	DefaultTokenPath    = "agentforge.db"
	DefaultCacheTTL     = 30 * time.Second
	DefaultRequestRetry = 3
)

// Settings is the resolved client configuration.
type Settings struct {
	// APIURL is the REST base URL (scheme + host, no path).
	APIURL string

	// WSURL is the WebSocket base URL. Empty means derive from APIURL.
	WSURL string

	// TokenPath is the SQLite file holding the persisted session.
	TokenPath string

	// CacheTTL bounds how long template lists are served from cache.
	CacheTTL time.Duration

	// RetryAttempts is the attempt budget for idempotent requests.
	RetryAttempts int
}

// Load resolves settings from an optional config file plus the
// environment, env winning. Path "" skips the file.
func Load(path string) (Settings, error) {
	cfg := New(nil)
	if path != "" {
		loaded, err := FromFile(path)
		if err != nil {
			return Settings{}, err
		}
		cfg = loaded
	}
	return FromEnv(cfg), nil
}

// FromEnv overlays environment variables on file-derived config and
// fills in defaults.
func FromEnv(cfg Config) Settings {
	s := Settings{
		APIURL:        cfg.String("api_url", DefaultAPIURL),
		WSURL:         cfg.String("ws_url", ""),
		TokenPath:     cfg.String("token_path", DefaultTokenPath),
		CacheTTL:      cfg.Duration("cache_ttl", DefaultCacheTTL),
		RetryAttempts: cfg.Int("retry_attempts", DefaultRequestRetry),
	}

	if v := os.Getenv(EnvAPIURL); v != "" {
		s.APIURL = v
	}
	if v := os.Getenv(EnvWSURL); v != "" {
		s.WSURL = v
	}
	if v := os.Getenv(EnvTokenPath); v != "" {
		s.TokenPath = v
	}
	return s
}

// SocketBase returns the base URL for WebSocket dials: WSURL when set,
// otherwise APIURL (the dialer maps http schemes to ws).
func (s Settings) SocketBase() string {
	if s.WSURL != "" {
		return s.WSURL
	}
	return s.APIURL
}
