package mcpserver

import (
	"context"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"lukechampine.com/blake3"

	"github.com/erraggy/schemagraph/pipeline"
)

// corpusInput represents the three ways a schema corpus can be provided to a
// tool. Exactly one of Dir, Archive, or Files must be set.
type corpusInput struct {
	Dir     string            `json:"dir,omitempty"     jsonschema:"Path to a directory of schema documents on disk"`
	Archive string            `json:"archive,omitempty" jsonschema:"Path to a txtar archive bundling schema documents"`
	Files   map[string]string `json:"files,omitempty"   jsonschema:"Inline schema documents keyed by relative path (JSON or YAML)"`
}

// cacheEntry holds a cached analysis result with LRU ordering and TTL expiry.
type cacheEntry struct {
	result    *pipeline.Result
	insertAt  time.Time
	expiresAt time.Time
}

// corpusCacheStore provides a session-scoped cache for analyzed corpora.
// Archive inputs are keyed by (absolutePath, modTime). Files inputs are keyed
// by a BLAKE3 hash over the sorted documents. Dir inputs are never cached
// because a directory's mod time does not reflect changes to nested files.
// Entries have per-type TTLs and a background sweeper removes expired entries.
type corpusCacheStore struct {
	mu             sync.Mutex
	entries        map[string]*cacheEntry
	maxSize        int
	sweeperStarted atomic.Bool
}

var corpusCache = &corpusCacheStore{
	entries: make(map[string]*cacheEntry),
	maxSize: cfg.CacheMaxSize,
}

// get returns a cached result or nil. Expired entries are lazily removed.
func (c *corpusCacheStore) get(key string) *pipeline.Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key]; ok {
		if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
			delete(c.entries, key)
			return nil
		}
		// Touch entry for LRU.
		e.insertAt = time.Now()
		return e.result
	}
	return nil
}

// putWithTTL stores a result with a specific TTL, evicting the oldest entry if at capacity.
func (c *corpusCacheStore) putWithTTL(key string, result *pipeline.Result, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	entry := &cacheEntry{result: result, insertAt: now, expiresAt: now.Add(ttl)}

	// If already cached, just update.
	if _, ok := c.entries[key]; ok {
		c.entries[key] = entry
		return
	}

	// Evict oldest if at capacity.
	if len(c.entries) >= c.maxSize {
		var oldestKey string
		var oldestTime time.Time
		for k, e := range c.entries {
			if oldestKey == "" || e.insertAt.Before(oldestTime) {
				oldestKey = k
				oldestTime = e.insertAt
			}
		}
		if oldestKey != "" {
			delete(c.entries, oldestKey)
		}
	}

	c.entries[key] = entry
}

// sweep removes all expired entries from the cache.
func (c *corpusCacheStore) sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now()
	for k, e := range c.entries {
		if !e.expiresAt.IsZero() && now.After(e.expiresAt) {
			delete(c.entries, k)
		}
	}
}

// startSweeper launches a background goroutine that periodically removes expired entries.
// It is safe to call multiple times; only the first call spawns a sweeper.
// It stops when ctx is cancelled.
func (c *corpusCacheStore) startSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	if !c.sweeperStarted.CompareAndSwap(false, true) {
		return
	}
	var sweeping atomic.Bool
	go func() {
		defer c.sweeperStarted.Store(false)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if !sweeping.CompareAndSwap(false, true) {
					continue
				}
				c.sweep()
				sweeping.Store(false)
			}
		}
	}()
}

// reset clears all cached entries. Used in tests.
func (c *corpusCacheStore) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*cacheEntry)
}

// size returns the number of cached entries.
func (c *corpusCacheStore) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// makeCacheKey creates a cache key for the given corpus input.
// Returns empty string when extra pipeline options are provided since we
// cannot distinguish option sets, and for dir inputs, which are not cacheable.
func makeCacheKey(in corpusInput, extraOpts []pipeline.Option) string {
	if len(extraOpts) > 0 {
		return ""
	}

	switch {
	case in.Archive != "":
		absPath, err := filepath.Abs(in.Archive)
		if err != nil {
			return ""
		}
		info, err := os.Stat(absPath)
		if err != nil {
			return "" // Can't stat, don't cache.
		}
		return fmt.Sprintf("archive:%s:%d", absPath, info.ModTime().UnixNano())
	case len(in.Files) > 0:
		h := blake3.New(32, nil)
		for _, path := range sortedPaths(in.Files) {
			h.Write([]byte(path))
			h.Write([]byte{0})
			h.Write([]byte(in.Files[path]))
			h.Write([]byte{0})
		}
		return fmt.Sprintf("files:%s", hex.EncodeToString(h.Sum(nil)))
	default:
		return ""
	}
}

func sortedPaths(files map[string]string) []string {
	paths := make([]string, 0, len(files))
	for p := range files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// resolve analyzes the corpus from whichever input was provided, using the
// cache for archive and inline-files inputs. Additional pipeline options can
// be passed to customize analysis behavior.
func (in corpusInput) resolve(extraOpts ...pipeline.Option) (*pipeline.Result, error) {
	count := 0
	if in.Dir != "" {
		count++
	}
	if in.Archive != "" {
		count++
	}
	if len(in.Files) > 0 {
		count++
	}
	if count != 1 {
		return nil, fmt.Errorf("exactly one of dir, archive, or files must be provided (got %d)", count)
	}

	// Enforce inline corpus limits.
	if len(in.Files) > cfg.MaxInlineFiles {
		return nil, fmt.Errorf("inline corpus has %d files, exceeding maximum %d; use dir or archive input instead, or set SCHEMAGRAPH_MAX_INLINE_FILES to increase",
			len(in.Files), cfg.MaxInlineFiles)
	}
	var total int64
	for _, content := range in.Files {
		total += int64(len(content))
	}
	if total > cfg.MaxInlineSize {
		return nil, fmt.Errorf("inline corpus size %d bytes exceeds maximum %d bytes; use dir or archive input instead, or set SCHEMAGRAPH_MAX_INLINE_SIZE to increase",
			total, cfg.MaxInlineSize)
	}

	// Determine cache key and TTL (skip when caching is disabled).
	var key string
	var ttl time.Duration
	if cfg.CacheEnabled {
		key = makeCacheKey(in, extraOpts)
		if in.Archive != "" {
			ttl = cfg.CacheArchiveTTL
		} else {
			ttl = cfg.CacheContentTTL
		}
	}

	if key != "" {
		if cached := corpusCache.get(key); cached != nil {
			return cached, nil
		}
	}

	var opts []pipeline.Option
	switch {
	case in.Dir != "":
		opts = append(opts, pipeline.WithDir(in.Dir))
	case in.Archive != "":
		opts = append(opts, pipeline.WithArchive(in.Archive))
	default:
		docs := make(map[string][]byte, len(in.Files))
		for path, content := range in.Files {
			docs[path] = []byte(content)
		}
		opts = append(opts, pipeline.WithDocuments(docs))
	}
	if cfg.MetaValidation {
		opts = append(opts, pipeline.WithMetaValidation(true))
	}
	opts = append(opts, extraOpts...)

	result, err := pipeline.Analyze(opts...)
	if err != nil {
		return nil, err
	}

	// Cache the result for future calls (key is empty when caching is disabled).
	if key != "" {
		corpusCache.putWithTTL(key, result, ttl)
	}

	return result, nil
}
