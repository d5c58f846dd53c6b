package commands

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/erraggy/schemagraph/pipeline"
)

// AnalyzeFlags contains flags for the analyze command
type AnalyzeFlags struct {
	Format   string
	Severity string
	Quiet    bool
	Corpus   CorpusFlags
}

// SetupAnalyzeFlags creates and configures a FlagSet for the analyze command.
func SetupAnalyzeFlags() (*flag.FlagSet, *AnalyzeFlags) {
	fs := flag.NewFlagSet("analyze", flag.ContinueOnError)
	flags := &AnalyzeFlags{}

	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, table, json, or yaml")
	fs.StringVar(&flags.Severity, "severity", "", "only report diagnostics of this severity: error, warning, info, critical")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: only output diagnostics, no run header")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: only output diagnostics, no run header")
	AddCorpusFlags(fs, &flags.Corpus)

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: schemagraph analyze [flags] <dir|archive.txtar>\n\n")
		Writef(fs.Output(), "Run the full analysis pipeline over a schema corpus: load, resolve\n")
		Writef(fs.Output(), "references, build the graph, break cycles, classify types, and resolve\n")
		Writef(fs.Output(), "names. Reports run statistics and every diagnostic the stages produced.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nOutput Formats:\n")
		Writef(fs.Output(), "  text (default)  Human-readable text output\n")
		Writef(fs.Output(), "  table           Diagnostics and type distribution as bordered tables\n")
		Writef(fs.Output(), "  json            JSON format for programmatic processing\n")
		Writef(fs.Output(), "  yaml            YAML format for programmatic processing\n")
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  schemagraph analyze ./schemas\n")
		Writef(fs.Output(), "  schemagraph analyze --severity error ./schemas\n")
		Writef(fs.Output(), "  schemagraph analyze --format json corpus.txtar | jq '.success'\n")
		Writef(fs.Output(), "  schemagraph analyze --format table --meta-validation ./schemas\n")
		Writef(fs.Output(), "\nExit Codes:\n")
		Writef(fs.Output(), "  0    Analysis completed with no error-severity diagnostics\n")
		Writef(fs.Output(), "  1    Analysis failed or produced error diagnostics\n")
	}

	return fs, flags
}

// analyzeReport is the structured output of one analyze run.
type analyzeReport struct {
	Success      bool          `json:"success" yaml:"success"`
	Stats        statsReport   `json:"stats" yaml:"stats"`
	ErrorCount   int           `json:"error_count" yaml:"error_count"`
	WarningCount int           `json:"warning_count" yaml:"warning_count"`
	InfoCount    int           `json:"info_count" yaml:"info_count"`
	LoadTime     string        `json:"load_time" yaml:"load_time"`
	AnalyzeTime  string        `json:"analyze_time" yaml:"analyze_time"`
	Issues       []issueReport `json:"issues,omitempty" yaml:"issues,omitempty"`
}

type statsReport struct {
	Documents       int   `json:"documents" yaml:"documents"`
	Definitions     int   `json:"definitions" yaml:"definitions"`
	TotalBytes      int64 `json:"total_bytes" yaml:"total_bytes"`
	Nodes           int   `json:"nodes" yaml:"nodes"`
	Edges           int   `json:"edges" yaml:"edges"`
	DanglingEdges   int   `json:"dangling_edges" yaml:"dangling_edges"`
	Groups          int   `json:"groups" yaml:"groups"`
	CyclicGroups    int   `json:"cyclic_groups" yaml:"cyclic_groups"`
	BrokenEdges     int   `json:"broken_edges" yaml:"broken_edges"`
	Classifications int   `json:"classifications" yaml:"classifications"`
	Synthetics      int   `json:"synthetics" yaml:"synthetics"`
	Collisions      int   `json:"collisions" yaml:"collisions"`
}

type issueReport struct {
	Severity string   `json:"severity" yaml:"severity"`
	Code     string   `json:"code" yaml:"code"`
	SchemaID string   `json:"schema_id,omitempty" yaml:"schema_id,omitempty"`
	Path     string   `json:"path,omitempty" yaml:"path,omitempty"`
	Related  []string `json:"related,omitempty" yaml:"related,omitempty"`
	Message  string   `json:"message" yaml:"message"`
}

// HandleAnalyze executes the analyze command
func HandleAnalyze(args []string) error {
	fs, flags := SetupAnalyzeFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}
	sevFilter, filterSet, err := ParseSeverity(flags.Severity)
	if err != nil {
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("analyze command requires exactly one corpus directory or archive")
	}
	corpusPath := fs.Arg(0)

	result, err := ResolveCorpus(corpusPath, flags.Corpus)
	if err != nil {
		return err
	}

	reported := result.Issues
	if filterSet {
		reported = result.IssuesBySeverity(sevFilter)
	}

	// Structured output formats
	if flags.Format == FormatJSON || flags.Format == FormatYAML {
		report := analyzeReport{
			Success: result.Success,
			Stats: statsReport{
				Documents:       result.Stats.Documents,
				Definitions:     result.Stats.Definitions,
				TotalBytes:      result.Stats.TotalBytes,
				Nodes:           result.Stats.Nodes,
				Edges:           result.Stats.Edges,
				DanglingEdges:   result.Stats.DanglingEdges,
				Groups:          result.Stats.Groups,
				CyclicGroups:    result.Stats.CyclicGroups,
				BrokenEdges:     result.Stats.BrokenEdges,
				Classifications: result.Stats.Classifications,
				Synthetics:      result.Stats.Synthetics,
				Collisions:      result.Stats.Collisions,
			},
			ErrorCount:   result.ErrorCount,
			WarningCount: result.WarningCount,
			InfoCount:    result.InfoCount,
			LoadTime:     result.LoadTime.String(),
			AnalyzeTime:  result.AnalyzeTime.String(),
		}
		for _, iss := range reported {
			report.Issues = append(report.Issues, issueReport{
				Severity: iss.Severity.String(),
				Code:     string(iss.Code),
				SchemaID: iss.SchemaID,
				Path:     iss.Path,
				Related:  iss.Related,
				Message:  iss.Message,
			})
		}
		if err := OutputStructured(report, flags.Format); err != nil {
			return err
		}
		if result.HasErrors() {
			os.Exit(1)
		}
		return nil
	}

	if !flags.Quiet {
		OutputRunHeader(corpusPath, result)
		Writef(os.Stderr, "\n")
	}

	if flags.Format == FormatTable {
		renderAnalyzeTables(result, reported)
	} else {
		renderAnalyzeText(reported)
	}

	if !flags.Quiet {
		if result.Success {
			Writef(os.Stderr, "✓ Analysis passed")
			if result.WarningCount > 0 {
				Writef(os.Stderr, " with %d warning(s)", result.WarningCount)
			}
			Writef(os.Stderr, "\n")
		} else {
			Writef(os.Stderr, "✗ Analysis failed: %d error(s)", result.ErrorCount)
			if result.WarningCount > 0 {
				Writef(os.Stderr, ", %d warning(s)", result.WarningCount)
			}
			Writef(os.Stderr, "\n")
		}
	}

	if result.HasErrors() {
		os.Exit(1)
	}
	return nil
}

// renderAnalyzeText prints diagnostics grouped by severity, errors first.
func renderAnalyzeText(reported []pipeline.Issue) {
	order := []pipeline.Severity{
		pipeline.SeverityCritical,
		pipeline.SeverityError,
		pipeline.SeverityWarning,
		pipeline.SeverityInfo,
	}
	for _, sev := range order {
		var lines []string
		for _, iss := range reported {
			if iss.Severity != sev {
				continue
			}
			line := fmt.Sprintf("  [%s] %s", iss.Code, iss.Message)
			if iss.SchemaID != "" {
				line = fmt.Sprintf("  [%s] %s: %s", iss.Code, iss.SchemaID, iss.Message)
			}
			lines = append(lines, line)
		}
		if len(lines) == 0 {
			continue
		}
		title := strings.ToUpper(sev.String()[:1]) + sev.String()[1:]
		Writef(os.Stdout, "%ss (%d):\n", title, len(lines))
		for _, line := range lines {
			Writef(os.Stdout, "%s\n", line)
		}
		Writef(os.Stdout, "\n")
	}
}

// renderAnalyzeTables prints the diagnostics and the classification kind
// distribution as bordered tables.
func renderAnalyzeTables(result *pipeline.Result, reported []pipeline.Issue) {
	if len(reported) > 0 {
		rows := make([][]string, 0, len(reported))
		for _, iss := range reported {
			rows = append(rows, []string{
				iss.Severity.String(),
				string(iss.Code),
				iss.SchemaID,
				iss.Message,
			})
		}
		RenderPrettyTable(os.Stdout, "Diagnostics", []string{"SEVERITY", "CODE", "SCHEMA", "MESSAGE"}, rows)
	}

	counts := make(map[string]int)
	for _, cl := range result.Classifications {
		counts[cl.Kind.String()]++
	}
	if len(counts) > 0 {
		kinds := make([]string, 0, len(counts))
		for kind := range counts {
			kinds = append(kinds, kind)
		}
		// Largest family first, ties by name.
		for i := 1; i < len(kinds); i++ {
			for j := i; j > 0; j-- {
				a, b := kinds[j-1], kinds[j]
				if counts[b] > counts[a] || (counts[b] == counts[a] && b < a) {
					kinds[j-1], kinds[j] = b, a
				} else {
					break
				}
			}
		}
		rows := make([][]string, 0, len(kinds))
		for _, kind := range kinds {
			rows = append(rows, []string{kind, fmt.Sprintf("%d", counts[kind])})
		}
		RenderPrettyTable(os.Stdout, "Classifications", []string{"KIND", "COUNT"}, rows)
	}
}

// ParseSeverity maps a severity label to its level. The boolean reports
// whether a filter was requested at all.
func ParseSeverity(label string) (pipeline.Severity, bool, error) {
	switch strings.ToLower(label) {
	case "":
		return 0, false, nil
	case "error":
		return pipeline.SeverityError, true, nil
	case "warning":
		return pipeline.SeverityWarning, true, nil
	case "info":
		return pipeline.SeverityInfo, true, nil
	case "critical":
		return pipeline.SeverityCritical, true, nil
	default:
		return 0, false, fmt.Errorf("invalid severity '%s'. Valid severities: error, warning, info, critical", label)
	}
}
