package mcpserver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// clearSchemagraphEnv clears all SCHEMAGRAPH_* env vars to isolate tests from the ambient environment.
func clearSchemagraphEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"SCHEMAGRAPH_CACHE_ENABLED", "SCHEMAGRAPH_CACHE_MAX_SIZE",
		"SCHEMAGRAPH_CACHE_ARCHIVE_TTL", "SCHEMAGRAPH_CACHE_CONTENT_TTL",
		"SCHEMAGRAPH_CACHE_SWEEP_INTERVAL",
		"SCHEMAGRAPH_LIST_LIMIT", "SCHEMAGRAPH_DETAIL_LIMIT", "SCHEMAGRAPH_MAX_LIMIT",
		"SCHEMAGRAPH_MAX_INLINE_SIZE", "SCHEMAGRAPH_MAX_INLINE_FILES",
		"SCHEMAGRAPH_META_VALIDATION",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearSchemagraphEnv(t)

	c := loadConfig()

	assert.True(t, c.CacheEnabled)
	assert.Equal(t, 10, c.CacheMaxSize)
	assert.Equal(t, 15*time.Minute, c.CacheArchiveTTL)
	assert.Equal(t, 15*time.Minute, c.CacheContentTTL)
	assert.Equal(t, 60*time.Second, c.CacheSweepInterval)
	assert.Equal(t, 100, c.ListLimit)
	assert.Equal(t, 25, c.DetailLimit)
	assert.Equal(t, 1000, c.MaxLimit)
	assert.Equal(t, int64(10*1024*1024), c.MaxInlineSize)
	assert.Equal(t, 500, c.MaxInlineFiles)
	assert.False(t, c.MetaValidation)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	clearSchemagraphEnv(t)
	t.Setenv("SCHEMAGRAPH_CACHE_ENABLED", "false")
	t.Setenv("SCHEMAGRAPH_CACHE_MAX_SIZE", "50")
	t.Setenv("SCHEMAGRAPH_CACHE_ARCHIVE_TTL", "30m")
	t.Setenv("SCHEMAGRAPH_CACHE_CONTENT_TTL", "10m")
	t.Setenv("SCHEMAGRAPH_CACHE_SWEEP_INTERVAL", "30s")
	t.Setenv("SCHEMAGRAPH_LIST_LIMIT", "200")
	t.Setenv("SCHEMAGRAPH_DETAIL_LIMIT", "50")
	t.Setenv("SCHEMAGRAPH_MAX_LIMIT", "500")
	t.Setenv("SCHEMAGRAPH_MAX_INLINE_SIZE", "5242880")
	t.Setenv("SCHEMAGRAPH_MAX_INLINE_FILES", "20")
	t.Setenv("SCHEMAGRAPH_META_VALIDATION", "true")

	c := loadConfig()

	assert.False(t, c.CacheEnabled)
	assert.Equal(t, 50, c.CacheMaxSize)
	assert.Equal(t, 30*time.Minute, c.CacheArchiveTTL)
	assert.Equal(t, 10*time.Minute, c.CacheContentTTL)
	assert.Equal(t, 30*time.Second, c.CacheSweepInterval)
	assert.Equal(t, 200, c.ListLimit)
	assert.Equal(t, 50, c.DetailLimit)
	assert.Equal(t, 500, c.MaxLimit)
	assert.Equal(t, int64(5242880), c.MaxInlineSize)
	assert.Equal(t, 20, c.MaxInlineFiles)
	assert.True(t, c.MetaValidation)
}

func TestLoadConfigInvalidValues(t *testing.T) {
	clearSchemagraphEnv(t)
	t.Setenv("SCHEMAGRAPH_CACHE_ENABLED", "maybe")
	t.Setenv("SCHEMAGRAPH_CACHE_MAX_SIZE", "banana")
	t.Setenv("SCHEMAGRAPH_CACHE_ARCHIVE_TTL", "not-a-duration")
	t.Setenv("SCHEMAGRAPH_LIST_LIMIT", "-5")
	t.Setenv("SCHEMAGRAPH_MAX_LIMIT", "0")
	t.Setenv("SCHEMAGRAPH_MAX_INLINE_SIZE", "abc")

	c := loadConfig()

	// Invalid values should fall back to defaults.
	assert.True(t, c.CacheEnabled)
	assert.Equal(t, 10, c.CacheMaxSize)
	assert.Equal(t, 15*time.Minute, c.CacheArchiveTTL)
	assert.Equal(t, 100, c.ListLimit)
	assert.Equal(t, 1000, c.MaxLimit)
	assert.Equal(t, int64(10*1024*1024), c.MaxInlineSize)
}

func TestLoadConfigPartialOverrides(t *testing.T) {
	clearSchemagraphEnv(t)
	// Only override some values; others stay at defaults.
	t.Setenv("SCHEMAGRAPH_LIST_LIMIT", "42")
	t.Setenv("SCHEMAGRAPH_CACHE_CONTENT_TTL", "10m")

	c := loadConfig()

	assert.Equal(t, 42, c.ListLimit)
	assert.Equal(t, 10*time.Minute, c.CacheContentTTL)
	// Unchanged defaults:
	assert.Equal(t, 25, c.DetailLimit)
	assert.Equal(t, 15*time.Minute, c.CacheArchiveTTL)
	assert.True(t, c.CacheEnabled)
}
