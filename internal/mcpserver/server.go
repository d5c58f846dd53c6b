// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes schemagraph analysis capabilities as MCP tools over stdio.
package mcpserver

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/schemagraph"
)

const serverInstructions = `schemagraph MCP server — analyzes corpora of interlinked schema documents: dependency graphs, cycles, type classification, and naming.

Configuration: All defaults are configurable via SCHEMAGRAPH_* environment variables set in your MCP client config. The Go MCP SDK does not support initializationOptions; use env vars instead.

Key settings:
- SCHEMAGRAPH_CACHE_ENABLED (default: true) — disable analysis caching entirely
- SCHEMAGRAPH_CACHE_ARCHIVE_TTL (default: 15m) — cache TTL for archive corpora
- SCHEMAGRAPH_CACHE_CONTENT_TTL (default: 15m) — cache TTL for inline corpora
- SCHEMAGRAPH_LIST_LIMIT (default: 100) — default result limit for list outputs
- SCHEMAGRAPH_DETAIL_LIMIT (default: 25) — default limit in detail mode
- SCHEMAGRAPH_MAX_INLINE_SIZE (default: 10485760) — max total bytes for inline files
- SCHEMAGRAPH_META_VALIDATION (default: false) — validate documents against the JSON Schema 2020-12 meta-schema

Corpus input: every tool takes the same corpus argument — exactly one of dir (directory path), archive (txtar bundle path), or files (inline path->content map). Analysis results are cached per session: archive entries use path+mtime as key (auto-invalidated on change), inline files use a content hash. Directory corpora are re-analyzed on every call. A background sweeper removes expired entries every 60s.`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	if cfg.CacheEnabled {
		corpusCache.startSweeper(ctx, cfg.CacheSweepInterval)
	}

	server := mcp.NewServer(
		&mcp.Implementation{Name: "schemagraph", Version: schemagraph.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "analyze",
		Description: "Analyze a schema corpus end to end. Returns run statistics (documents, nodes, edges, cyclic groups, classifications, name collisions) plus diagnostics with severity levels and schema locations. Use severity to focus on errors first, and offset/limit to paginate diagnostics. Start here: the same corpus input works for every other tool, and analysis results are cached per session.",
	}, handleAnalyze)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "cycles",
		Description: "Inspect strongly connected groups in the schema dependency graph. Returns groups in condensation (emission) order with members, cycle handling decision, and the edge severed to break each cycle. Only cyclic groups are returned by default; use all=true to include acyclic singleton groups and see the full condensation.",
	}, handleCycles)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "classify",
		Description: "Query type classifications for every schema in a corpus. Filter by kind (struct, enum, discriminated_union, newtype, collection, map, alias) or match identifiers with a glob (e.g. Pet*). Returns summaries (id, identifier, kind, synthetic status) by default or full detail (fields, variants, enum members, discriminator) with detail=true. Use group_by=kind to get distribution counts instead of individual items.",
	}, handleClassify)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "names",
		Description: "Query the identifier table produced by name resolution. Each entry maps a schema id to its final PascalCase identifier with the origin (direct_from_schema, synthetic_helper, disambiguated). Use collisions_only=true to see just the contested names, or match to filter identifiers with a glob. Use group_by=origin to get distribution counts.",
	}, handleNames)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "graph_deps",
		Description: "Query the dependency neighborhood of one schema. direction=deps lists what the schema references; direction=dependents lists what references it. Direct mode returns edges with their reference kinds; transitive=true returns the full closure instead (direction=dependents with transitive=true is the blast radius of changing the schema). Use kinds to restrict traversal to specific edge kinds.",
	}, handleGraphDeps)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "graph_orphans",
		Description: "List schemas nothing references. Orphans are grouped into expected roots (deployment entry points, normal), consumer-only schemas (tops of dependency chains), and isolated schemas (connected to nothing, worth investigating). Use category to filter by top-level corpus directory and isolated_only=true to focus on dead schemas.",
	}, handleGraphOrphans)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "dot",
		Description: "Export the schema dependency graph as Graphviz DOT for rendering. Use kinds to restrict the export to specific edge kinds (e.g. ref, extends, variant, field, runs_on). Node shapes encode document kinds and edge colors encode reference kinds; the output is deterministic for stable diffs.",
	}, handleDot)
}

// paginate applies offset/limit pagination to a slice, returning the
// requested page. A non-positive limit defaults to cfg.ListLimit.
func paginate[T any](items []T, offset, limit int) []T {
	if limit <= 0 {
		limit = cfg.ListLimit
	}
	if limit > cfg.MaxLimit {
		limit = cfg.MaxLimit
	}
	if offset < 0 || offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end < offset || end > len(items) { // overflow or beyond slice
		end = len(items)
	}
	return items[offset:end]
}

// detailLimit returns a lower default limit for detail mode output.
// When the user hasn't specified an explicit limit (limit <= 0),
// detail mode defaults to cfg.DetailLimit to keep output manageable.
func detailLimit(limit int) int {
	if limit <= 0 {
		return cfg.DetailLimit
	}
	return limit
}

// makeSlice returns nil when n is 0 (preserving omitempty JSON semantics),
// otherwise returns make([]T, 0, n) for pre-allocated appending.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}

// groupCount represents a single group in group_by results.
type groupCount struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// groupAndSort groups items by key, sorts by count descending (ties
// broken alphabetically by key), and returns the sorted groups.
func groupAndSort[T any](items []T, keyFn func(T) []string) []groupCount {
	counts := make(map[string]int)
	for _, item := range items {
		for _, key := range keyFn(item) {
			counts[key]++
		}
	}
	groups := make([]groupCount, 0, len(counts))
	for key, count := range counts {
		groups = append(groups, groupCount{Key: key, Count: count})
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Count != groups[j].Count {
			return groups[i].Count > groups[j].Count
		}
		return groups[i].Key < groups[j].Key
	})
	return groups
}

// validateGroupBy checks that group_by is a valid value and is not combined with detail.
func validateGroupBy(groupBy string, detail bool, allowed []string) error {
	if groupBy == "" {
		return nil
	}
	if detail {
		return fmt.Errorf("cannot use both group_by and detail")
	}
	for _, a := range allowed {
		if strings.EqualFold(groupBy, a) {
			return nil
		}
	}
	return fmt.Errorf("invalid group_by value %q; valid values: %s", groupBy, strings.Join(allowed, ", "))
}

// validateGlobPattern checks whether a glob pattern is syntactically valid.
// Call this once before a filter loop so matchGlobName never encounters an
// invalid pattern at match time.
func validateGlobPattern(pattern string) error {
	if pattern == "" || !strings.ContainsAny(pattern, "*?[") {
		return nil
	}
	if _, err := filepath.Match(pattern, ""); err != nil {
		return fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
	}
	return nil
}

// matchGlobName reports whether name matches the pattern, case-insensitively.
// Patterns without glob metacharacters require an exact (folded) match.
func matchGlobName(name, pattern string) bool {
	if strings.ContainsAny(pattern, "*?") {
		matched, err := filepath.Match(strings.ToLower(pattern), strings.ToLower(name))
		return err == nil && matched
	}
	return strings.EqualFold(name, pattern)
}
