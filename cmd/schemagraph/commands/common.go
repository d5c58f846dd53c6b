// Package commands provides CLI command handlers for schemagraph.
package commands

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/schemagraph"
	"github.com/erraggy/schemagraph/internal/cliutil"
	"github.com/erraggy/schemagraph/loader"
	"github.com/erraggy/schemagraph/pipeline"
	"github.com/erraggy/schemagraph/resolver"
)

// Output format constants
const (
	FormatText  = "text"
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// cliLog is the only package-level logger in the repository. Library
// packages take a Logger through options; the CLI wires this one in when
// --verbose is set.
var cliLog = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))

// Writef writes formatted output to the writer.
func Writef(w io.Writer, format string, args ...any) {
	cliutil.Writef(w, format, args...)
}

// ValidateOutputFormat validates an output format and returns an error if invalid.
func ValidateOutputFormat(format string) error {
	switch format {
	case FormatText, FormatTable, FormatJSON, FormatYAML:
		return nil
	}
	return fmt.Errorf("invalid format '%s'. Valid formats: %s, %s, %s, %s",
		format, FormatText, FormatTable, FormatJSON, FormatYAML)
}

// OutputStructured outputs data in the specified format (json or yaml) to stdout.
// Returns an error if marshaling fails.
func OutputStructured(data any, format string) error {
	var bytes []byte
	var err error

	switch format {
	case FormatJSON:
		bytes, err = json.MarshalIndent(data, "", "  ")
	case FormatYAML:
		bytes, err = yaml.Marshal(data)
	default:
		return fmt.Errorf("invalid format for structured output: %s", format)
	}

	if err != nil {
		return fmt.Errorf("marshaling to %s: %w", format, err)
	}

	cliutil.Writeln(os.Stdout, string(bytes))
	return nil
}

// CorpusFlags contains the corpus input flags shared by every analysis command.
type CorpusFlags struct {
	Glob           string
	Workers        int
	MetaValidation bool
	Verbose        bool
}

// AddCorpusFlags registers the shared corpus flags on a FlagSet.
func AddCorpusFlags(fs *flag.FlagSet, flags *CorpusFlags) {
	fs.StringVar(&flags.Glob, "glob", "", "corpus discovery pattern for directory input (default **/*.{json,yaml,yml})")
	fs.IntVar(&flags.Workers, "workers", 0, "number of parallel analysis workers (default GOMAXPROCS)")
	fs.BoolVar(&flags.MetaValidation, "meta-validation", false, "validate documents against the JSON Schema 2020-12 meta-schema")
	fs.BoolVar(&flags.Verbose, "verbose", false, "enable debug logging to stderr")
}

// ResolveCorpus runs the analysis pipeline over the corpus at the given
// path. A directory is loaded with corpus discovery; a .txtar file is
// loaded as an archive.
func ResolveCorpus(corpusPath string, flags CorpusFlags) (*pipeline.Result, error) {
	info, err := os.Stat(corpusPath)
	if err != nil {
		return nil, fmt.Errorf("reading corpus path: %w", err)
	}

	var opts []pipeline.Option
	switch {
	case info.IsDir():
		opts = append(opts, pipeline.WithDir(corpusPath))
		if flags.Glob != "" {
			opts = append(opts, pipeline.WithGlob(flags.Glob))
		}
	case strings.HasSuffix(corpusPath, ".txtar"):
		if flags.Glob != "" {
			return nil, fmt.Errorf("--glob only applies to directory corpora")
		}
		opts = append(opts, pipeline.WithArchive(corpusPath))
	default:
		return nil, fmt.Errorf("corpus must be a directory or a .txtar archive, got file %s", corpusPath)
	}

	if flags.Workers > 0 {
		opts = append(opts, pipeline.WithWorkers(flags.Workers))
	}
	if flags.MetaValidation {
		opts = append(opts, pipeline.WithMetaValidation(true))
	}
	if flags.Verbose {
		opts = append(opts, pipeline.WithLogger(loader.NewSlogAdapter(cliLog)))
	}

	result, err := pipeline.Analyze(opts...)
	if err != nil {
		return nil, fmt.Errorf("analyzing corpus: %w", err)
	}
	return result, nil
}

// OutputRunHeader outputs the common run header to stderr: version, corpus
// path, and run statistics.
func OutputRunHeader(corpusPath string, result *pipeline.Result) {
	Writef(os.Stderr, "schemagraph version: %s\n", schemagraph.Version())
	Writef(os.Stderr, "Corpus: %s\n", corpusPath)
	Writef(os.Stderr, "Documents: %d (%d definitions)\n", result.Stats.Documents, result.Stats.Definitions)
	Writef(os.Stderr, "Source Size: %s\n", FormatBytes(result.Stats.TotalBytes))
	Writef(os.Stderr, "Nodes: %d\n", result.Stats.Nodes)
	Writef(os.Stderr, "Edges: %d\n", result.Stats.Edges)
	Writef(os.Stderr, "Groups: %d (%d cyclic)\n", result.Stats.Groups, result.Stats.CyclicGroups)
	Writef(os.Stderr, "Load Time: %v\n", result.LoadTime)
	Writef(os.Stderr, "Analyze Time: %v\n", result.AnalyzeTime)
}

// FormatBytes formats a byte count into a human-readable string using binary units (KiB, MiB, etc.)
func FormatBytes(size int64) string {
	if size < 0 {
		return fmt.Sprintf("%d B", size)
	}

	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}

	div, exp := int64(unit), 0
	for n := size / unit; n >= unit && exp < 5; n /= unit {
		div *= unit
		exp++
	}

	return fmt.Sprintf("%.1f %ciB", float64(size)/float64(div), "KMGTPE"[exp])
}

// ParseEdgeKinds maps a comma-separated list of edge kind labels to their
// EdgeKind values. An empty list means every kind.
func ParseEdgeKinds(csv string) ([]resolver.EdgeKind, error) {
	if csv == "" {
		return nil, nil
	}
	labels := strings.Split(csv, ",")
	kinds := make([]resolver.EdgeKind, 0, len(labels))
	for _, label := range labels {
		label = strings.TrimSpace(label)
		if label == "" {
			continue
		}
		kind, ok := resolver.ParseEdgeKind(strings.ToLower(label))
		if !ok {
			return nil, fmt.Errorf("invalid edge kind '%s'. Valid kinds: %s", label, strings.Join(edgeKindLabels(), ", "))
		}
		kinds = append(kinds, kind)
	}
	return kinds, nil
}

func edgeKindLabels() []string {
	all := resolver.EdgeKinds()
	labels := make([]string, len(all))
	for i, k := range all {
		labels[i] = k.String()
	}
	return labels
}

// ValidateOutputPath checks if the output path is safe to write to.
func ValidateOutputPath(outputPath string) error {
	cleaned := filepath.Clean(outputPath)
	if err := RejectSymlinkOutput(cleaned); err != nil {
		return err
	}
	if _, err := os.Stat(cleaned); err == nil {
		Writef(os.Stderr, "Warning: output file %s already exists and will be overwritten\n", outputPath)
	}
	return nil
}

// RejectSymlinkOutput checks if the output path is a symlink and returns an error if so.
// This prevents symlink attacks where a symlink could redirect output to an unintended location.
func RejectSymlinkOutput(cleanedPath string) error {
	info, err := os.Lstat(cleanedPath)
	if os.IsNotExist(err) {
		// File doesn't exist yet — safe to write.
		return nil
	}
	if err != nil {
		return fmt.Errorf("commands: checking output path: %w", err)
	}
	if info.Mode()&os.ModeSymlink != 0 {
		return fmt.Errorf("commands: refusing to write to symlink: %s", cleanedPath)
	}
	return nil
}
