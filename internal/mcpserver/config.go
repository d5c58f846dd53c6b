package mcpserver

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

// serverConfig holds all configurable MCP server defaults.
// Loaded once at startup from environment variables via loadConfig().
type serverConfig struct {
	// Cache settings.
	CacheEnabled       bool
	CacheMaxSize       int
	CacheArchiveTTL    time.Duration
	CacheContentTTL    time.Duration
	CacheSweepInterval time.Duration

	// Pagination defaults for list-shaped tool results.
	ListLimit   int
	DetailLimit int
	MaxLimit    int

	// Inline corpus limits.
	MaxInlineSize  int64
	MaxInlineFiles int

	// Analysis defaults.
	MetaValidation bool
}

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// loadConfig reads configuration from SCHEMAGRAPH_* environment variables.
// Invalid values log a warning and fall back to the hardcoded default.
func loadConfig() *serverConfig {
	return &serverConfig{
		CacheEnabled:       envBool("SCHEMAGRAPH_CACHE_ENABLED", true),
		CacheMaxSize:       envInt("SCHEMAGRAPH_CACHE_MAX_SIZE", 10),
		CacheArchiveTTL:    envDuration("SCHEMAGRAPH_CACHE_ARCHIVE_TTL", 15*time.Minute),
		CacheContentTTL:    envDuration("SCHEMAGRAPH_CACHE_CONTENT_TTL", 15*time.Minute),
		CacheSweepInterval: envDuration("SCHEMAGRAPH_CACHE_SWEEP_INTERVAL", 60*time.Second),
		ListLimit:          envInt("SCHEMAGRAPH_LIST_LIMIT", 100),
		DetailLimit:        envInt("SCHEMAGRAPH_DETAIL_LIMIT", 25),
		MaxLimit:           envInt("SCHEMAGRAPH_MAX_LIMIT", 1000),
		MaxInlineSize:      envInt64("SCHEMAGRAPH_MAX_INLINE_SIZE", 10*1024*1024),
		MaxInlineFiles:     envInt("SCHEMAGRAPH_MAX_INLINE_FILES", 500),
		MetaValidation:     envBool("SCHEMAGRAPH_META_VALIDATION", false),
	}
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid bool env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return b
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return n
}

func envInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return d
}
