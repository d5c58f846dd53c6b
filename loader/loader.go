package loader

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	json "github.com/goccy/go-json"
	"go.yaml.in/yaml/v4"
	"lukechampine.com/blake3"

	"github.com/erraggy/schemagraph/internal/issues"
	"github.com/erraggy/schemagraph/internal/severity"
	"github.com/erraggy/schemagraph/sgerrors"
)

// Issue describes a single non-fatal problem found while loading.
type Issue = issues.Issue

// Severity indicates the severity level of a load issue
type Severity = severity.Severity

const (
	// SeverityError indicates a document that could not be loaded
	SeverityError = severity.SeverityError
	// SeverityWarning indicates a document loaded with degraded fidelity
	SeverityWarning = severity.SeverityWarning
	// SeverityInfo indicates informational messages
	SeverityInfo = severity.SeverityInfo
	// SeverityCritical indicates critical issues
	SeverityCritical = severity.SeverityCritical
)

const (
	// CodeDecodeFailure marks a document that could not be decoded
	CodeDecodeFailure = issues.CodeDecodeFailure
	// CodeDuplicateDocument marks a duplicate schema ID or byte-identical content
	CodeDuplicateDocument = issues.CodeDuplicateDocument
	// CodeMetaSchemaViolation marks a document that violates the meta-schema
	CodeMetaSchemaViolation = issues.CodeMetaSchemaViolation
)

const (
	// defaultGlob matches the schema file extensions the loader understands.
	defaultGlob = "**/*.{json,yaml,yml}"
	// defaultMaxFileSize is the maximum size of a single schema file.
	defaultMaxFileSize = 10 * 1024 * 1024 // 10MB
	// defaultMaxDocuments bounds the corpus size, counting promoted definitions.
	defaultMaxDocuments = 10000
)

// SourceFormat represents the format of a source schema file
type SourceFormat string

const (
	// SourceFormatYAML indicates the source was in YAML format
	SourceFormatYAML SourceFormat = "yaml"
	// SourceFormatJSON indicates the source was in JSON format
	SourceFormatJSON SourceFormat = "json"
	// SourceFormatUnknown indicates the source format could not be determined
	SourceFormatUnknown SourceFormat = "unknown"
)

// Loader reads a corpus of schema documents from disk, archives, or memory.
type Loader struct {
	// Glob is the doublestar pattern used to discover schema files under a
	// directory. Defaults to "**/*.{json,yaml,yml}".
	Glob string
	// ValidateMeta enables validation of each root document against the
	// JSON Schema Draft 2020-12 meta-schema. Violations are reported as
	// warnings, not errors; many corpora carry harmless deviations.
	// Default: false
	ValidateMeta bool
	// Logger is the structured logger for debug output
	// If nil, logging is disabled (default)
	Logger Logger

	// Resource limits (0 means use default)

	// MaxFileSize is the maximum size in bytes for a single schema file.
	// Oversized files are skipped with an error-severity issue.
	// Default: 10MB
	MaxFileSize int64
	// MaxDocuments is the maximum number of documents in a corpus, counting
	// definitions promoted to their own nodes. Exceeding it is fatal.
	// Default: 10000
	MaxDocuments int
}

// New creates a new Loader instance with default settings
func New() *Loader {
	return &Loader{}
}

// log returns the configured logger, or a no-op logger if none is set.
func (l *Loader) log() Logger {
	if l.Logger != nil {
		return l.Logger
	}
	return NopLogger{}
}

func (l *Loader) glob() string {
	if l.Glob != "" {
		return l.Glob
	}
	return defaultGlob
}

func (l *Loader) maxFileSize() int64 {
	if l.MaxFileSize > 0 {
		return l.MaxFileSize
	}
	return defaultMaxFileSize
}

func (l *Loader) maxDocuments() int {
	if l.MaxDocuments > 0 {
		return l.MaxDocuments
	}
	return defaultMaxDocuments
}

// LoadResult contains the loaded corpus and metadata.
//
// Documents are sorted by ID, so iterating the slice is deterministic across
// runs regardless of filesystem ordering.
type LoadResult struct {
	// Documents contains every loaded document, including local definitions
	// promoted to their own nodes, sorted by ID.
	Documents []*Document
	// Issues contains non-fatal problems found while loading.
	Issues []Issue
	// DocumentCount is the number of root documents (files).
	DocumentCount int
	// DefinitionCount is the number of promoted local definitions.
	DefinitionCount int
	// TotalSize is the combined source size in bytes.
	TotalSize int64
	// CorpusSum is a fingerprint of the whole corpus: the root documents'
	// IDs and content sums hashed in ID order. Two corpora with the same
	// CorpusSum produce the same analysis.
	CorpusSum [32]byte
	// LoadTime is the time taken to read and decode the corpus.
	LoadTime time.Duration

	byID map[string]*Document
}

// Document returns the document with the given ID and whether it exists.
func (r *LoadResult) Document(id string) (*Document, bool) {
	d, ok := r.byID[id]
	return d, ok
}

// Roots returns only the root (file-level) documents, in ID order.
func (r *LoadResult) Roots() []*Document {
	roots := make([]*Document, 0, r.DocumentCount)
	for _, d := range r.Documents {
		if !d.IsDefinition() {
			roots = append(roots, d)
		}
	}
	return roots
}

// HasErrors reports whether any issue has error severity or worse.
func (r *LoadResult) HasErrors() bool {
	for _, issue := range r.Issues {
		if issue.Severity == SeverityError || issue.Severity == SeverityCritical {
			return true
		}
	}
	return false
}

// Load reads every schema file under dir that matches the discovery glob.
// Schema IDs are the forward-slashed paths relative to dir.
func (l *Loader) Load(dir string) (*LoadResult, error) {
	start := time.Now()

	info, err := os.Stat(dir)
	if err != nil {
		return nil, &sgerrors.LoadError{Path: dir, Message: "failed to stat corpus directory", Cause: err}
	}
	if !info.IsDir() {
		return nil, &sgerrors.LoadError{Path: dir, Message: "corpus path is not a directory"}
	}

	paths, err := discoverFiles(dir, l.glob())
	if err != nil {
		return nil, err
	}
	l.log().Debug("discovered schema files", "dir", dir, "count", len(paths))

	result := newLoadResult()
	for _, rel := range paths {
		data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(rel)))
		if err != nil {
			return nil, &sgerrors.LoadError{Path: rel, Message: "failed to read file", Cause: err}
		}
		l.loadBytes(result, rel, data)
	}

	return l.finish(result, start)
}

// LoadFiles reads the given schema files. Schema IDs are the cleaned,
// forward-slashed paths as given.
func (l *Loader) LoadFiles(paths ...string) (*LoadResult, error) {
	start := time.Now()

	result := newLoadResult()
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, &sgerrors.LoadError{Path: p, Message: "failed to read file", Cause: err}
		}
		id := filepath.ToSlash(filepath.Clean(p))
		id = strings.TrimPrefix(id, "./")
		l.loadBytes(result, id, data)
	}

	return l.finish(result, start)
}

// LoadBytes loads a single in-memory document under the given schema ID.
// The ID should look like a corpus-relative path ("entities/Moment.json") so
// that relative references between in-memory documents resolve.
func (l *Loader) LoadBytes(id string, data []byte) (*LoadResult, error) {
	return l.LoadDocuments(map[string][]byte{id: data})
}

// LoadDocuments loads a set of in-memory documents keyed by schema ID.
func (l *Loader) LoadDocuments(docs map[string][]byte) (*LoadResult, error) {
	start := time.Now()

	ids := make([]string, 0, len(docs))
	for id := range docs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	result := newLoadResult()
	for _, id := range ids {
		l.loadBytes(result, filepath.ToSlash(id), docs[id])
	}

	return l.finish(result, start)
}

func newLoadResult() *LoadResult {
	return &LoadResult{
		Documents: make([]*Document, 0),
		Issues:    make([]Issue, 0),
		byID:      make(map[string]*Document),
	}
}

// loadBytes decodes one source file and appends its documents to the result.
// Decode failures are node-local: an issue is recorded and the rest of the
// corpus continues loading.
func (l *Loader) loadBytes(result *LoadResult, id string, data []byte) {
	result.TotalSize += int64(len(data))

	if max := l.maxFileSize(); int64(len(data)) > max {
		result.Issues = append(result.Issues, Issue{
			Code:     issues.CodeDecodeFailure,
			SchemaID: id,
			Path:     id,
			Severity: SeverityError,
			Message:  fmt.Sprintf("file size %d exceeds limit %d, skipping", len(data), max),
		})
		return
	}

	format := detectFormatFromPath(id)
	if format == SourceFormatUnknown {
		format = detectFormatFromContent(data)
	}

	var raw map[string]interface{}
	var root *RawSchema

	// JSON fast-path: decode with the JSON codec directly instead of going
	// through the YAML machinery, which builds a full AST per document.
	if format == SourceFormatJSON {
		if err := json.Unmarshal(data, &raw); err != nil {
			result.Issues = append(result.Issues, Issue{
				Code:     issues.CodeDecodeFailure,
				SchemaID: id,
				Path:     id,
				Severity: SeverityError,
				Message:  fmt.Sprintf("failed to parse JSON: %v", err),
			})
			return
		}
		root = new(RawSchema)
		if err := json.Unmarshal(data, root); err != nil {
			result.Issues = append(result.Issues, Issue{
				Code:     issues.CodeDecodeFailure,
				SchemaID: id,
				Path:     id,
				Severity: SeverityWarning,
				Message:  fmt.Sprintf("typed decode failed, analysis uses the generic view: %v", err),
			})
			root = nil
		}
	} else {
		if err := yaml.Unmarshal(data, &raw); err != nil {
			result.Issues = append(result.Issues, Issue{
				Code:     issues.CodeDecodeFailure,
				SchemaID: id,
				Path:     id,
				Severity: SeverityError,
				Message:  fmt.Sprintf("failed to parse YAML: %v", err),
			})
			return
		}
		root = new(RawSchema)
		if err := yaml.Unmarshal(data, root); err != nil {
			result.Issues = append(result.Issues, Issue{
				Code:     issues.CodeDecodeFailure,
				SchemaID: id,
				Path:     id,
				Severity: SeverityWarning,
				Message:  fmt.Sprintf("typed decode failed, analysis uses the generic view: %v", err),
			})
			root = nil
		}
	}

	sum := blake3.Sum256(data)
	doc := &Document{
		ID:     id,
		Path:   id,
		Format: format,
		Root:   root,
		Raw:    raw,
		Sum:    sum,
		Size:   int64(len(data)),
		Kind:   rawString(raw, "x-familiar-kind"),
		Title:  rawString(raw, "title"),
	}

	l.addDocument(result, doc)
	l.expandDefinitions(result, doc)
}

// addDocument appends a document, recording collisions on duplicate IDs and
// informational issues for byte-identical content loaded under two IDs.
func (l *Loader) addDocument(result *LoadResult, doc *Document) {
	if prev, exists := result.byID[doc.ID]; exists {
		result.Issues = append(result.Issues, Issue{
			Code:     issues.CodeDuplicateDocument,
			SchemaID: doc.ID,
			Path:     doc.Path,
			Related:  []string{prev.Path},
			Severity: SeverityError,
			Message:  "schema ID already loaded, keeping the first document",
		})
		return
	}

	for _, other := range result.Documents {
		if !other.IsDefinition() && !doc.IsDefinition() && other.Sum == doc.Sum {
			result.Issues = append(result.Issues, Issue{
				Code:     issues.CodeDuplicateDocument,
				SchemaID: doc.ID,
				Path:     doc.Path,
				Related:  []string{other.ID},
				Severity: SeverityInfo,
				Message:  "content is byte-identical to another document",
			})
			break
		}
	}

	result.byID[doc.ID] = doc
	result.Documents = append(result.Documents, doc)
	if doc.IsDefinition() {
		result.DefinitionCount++
	} else {
		result.DocumentCount++
	}
}

// expandDefinitions promotes each top-level $defs / definitions entry of a
// root document to its own node with ID "path#Name". Nested definitions stay
// inside their parent; only file-level definitions become nodes.
func (l *Loader) expandDefinitions(result *LoadResult, parent *Document) {
	for _, key := range []string{"$defs", "definitions"} {
		sub, ok := parent.Raw[key].(map[string]interface{})
		if !ok {
			continue
		}

		names := make([]string, 0, len(sub))
		for name := range sub {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			entry, ok := sub[name].(map[string]interface{})
			if !ok {
				continue // boolean schemas cannot become nodes
			}

			var root *RawSchema
			if parent.Root != nil {
				if key == "$defs" {
					root = parent.Root.Defs[name]
				} else {
					root = parent.Root.Definitions[name]
				}
			}

			l.addDocument(result, &Document{
				ID:         issues.FormatID(parent.Path, name),
				Path:       parent.Path,
				Definition: name,
				Format:     parent.Format,
				Root:       root,
				Raw:        entry,
				Sum:        parent.Sum,
				Kind:       rawString(entry, "x-familiar-kind"),
				Title:      rawString(entry, "title"),
			})
		}
	}
}

// finish sorts the corpus, applies resource limits, and runs optional
// meta-schema validation.
func (l *Loader) finish(result *LoadResult, start time.Time) (*LoadResult, error) {
	if max := l.maxDocuments(); len(result.Documents) > max {
		return nil, &sgerrors.ResourceLimitError{
			ResourceType: "documents",
			Limit:        int64(max),
			Actual:       int64(len(result.Documents)),
			Message:      "corpus exceeds the document limit",
		}
	}

	sort.Slice(result.Documents, func(i, j int) bool {
		return result.Documents[i].ID < result.Documents[j].ID
	})
	result.CorpusSum = corpusSum(result.Documents)

	if l.ValidateMeta {
		l.validateMeta(result)
	}

	result.LoadTime = time.Since(start)
	l.log().Info("corpus loaded",
		"documents", result.DocumentCount,
		"definitions", result.DefinitionCount,
		"issues", len(result.Issues),
		"bytes", result.TotalSize)

	return result, nil
}

// corpusSum combines the per-document fingerprints into one corpus
// fingerprint. Root documents only: promoted definitions share their
// parent's content sum and would add no information.
func corpusSum(docs []*Document) [32]byte {
	h := blake3.New(32, nil)
	for _, d := range docs {
		if d.IsDefinition() {
			continue
		}
		h.Write([]byte(d.ID))
		h.Write([]byte{0})
		h.Write(d.Sum[:])
	}
	var sum [32]byte
	copy(sum[:], h.Sum(nil))
	return sum
}

// discoverFiles walks dir and returns the sorted forward-slashed relative
// paths matching the glob pattern.
func discoverFiles(dir, pattern string) ([]string, error) {
	var paths []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			// Skip hidden directories such as .git
			if name := d.Name(); name != "." && strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		matched, err := doublestar.Match(pattern, rel)
		if err != nil {
			return err
		}
		if matched {
			paths = append(paths, rel)
		}
		return nil
	})
	if err != nil {
		return nil, &sgerrors.LoadError{Path: dir, Message: "failed to walk corpus directory", Cause: err}
	}

	sort.Strings(paths)
	return paths, nil
}

// detectFormatFromPath detects the source format from a file path
func detectFormatFromPath(path string) SourceFormat {
	switch filepath.Ext(path) {
	case ".json":
		return SourceFormatJSON
	case ".yaml", ".yml":
		return SourceFormatYAML
	default:
		return SourceFormatUnknown
	}
}

// detectFormatFromContent attempts to detect the format from the content bytes
// JSON typically starts with '{' or '[', while YAML does not
func detectFormatFromContent(data []byte) SourceFormat {
	trimmed := bytes.TrimLeft(data, " \t\n\r")
	if len(trimmed) == 0 {
		return SourceFormatUnknown
	}
	if trimmed[0] == '{' || trimmed[0] == '[' {
		return SourceFormatJSON
	}
	return SourceFormatYAML
}

// rawString reads a top-level string key from a generic document map.
func rawString(m map[string]interface{}, key string) string {
	if m == nil {
		return ""
	}
	s, _ := m[key].(string)
	return s
}
