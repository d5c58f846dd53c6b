package commands

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/erraggy/schemagraph/cycles"
)

// CyclesFlags contains flags for the cycles command
type CyclesFlags struct {
	Format string
	All    bool
	Quiet  bool
	Corpus CorpusFlags
}

// SetupCyclesFlags creates and configures a FlagSet for the cycles command.
func SetupCyclesFlags() (*flag.FlagSet, *CyclesFlags) {
	fs := flag.NewFlagSet("cycles", flag.ContinueOnError)
	flags := &CyclesFlags{}

	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, table, json, or yaml")
	fs.BoolVar(&flags.All, "all", false, "include acyclic singleton groups (default: cyclic groups only)")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: tab-separated rows, no headers")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: tab-separated rows, no headers")
	AddCorpusFlags(fs, &flags.Corpus)

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: schemagraph cycles [flags] <dir|archive.txtar>\n\n")
		Writef(fs.Output(), "Inspect the strongly connected groups of the ownership subgraph: which\n")
		Writef(fs.Output(), "schemas reference each other cyclically, which edge was severed to break\n")
		Writef(fs.Output(), "each cycle, and the condensation order emission must follow.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  schemagraph cycles ./schemas\n")
		Writef(fs.Output(), "  schemagraph cycles --all ./schemas\n")
		Writef(fs.Output(), "  schemagraph cycles --format json corpus.txtar | jq '.[].handling'\n")
	}

	return fs, flags
}

// HandleCycles executes the cycles command
func HandleCycles(args []string) error {
	fs, flags := SetupCyclesFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("cycles command requires exactly one corpus directory or archive")
	}

	result, err := ResolveCorpus(fs.Arg(0), flags.Corpus)
	if err != nil {
		return err
	}

	var selected []cycles.SccGroup
	cyclic := 0
	for _, group := range result.Groups {
		if group.Cyclic() {
			cyclic++
		}
		if flags.All || group.Cyclic() {
			selected = append(selected, group)
		}
	}

	if !flags.Quiet {
		Writef(os.Stderr, "Groups: %d (%d cyclic, %d edges broken)\n\n",
			len(result.Groups), cyclic, len(result.BrokenEdges()))
	}

	if len(selected) == 0 {
		if !flags.Quiet {
			Writef(os.Stderr, "No cyclic groups in the corpus.\n")
		}
		return nil
	}

	headers := []string{"ORDER", "MEMBERS", "HANDLING", "BROKEN EDGE"}
	rows := make([][]string, 0, len(selected))
	for _, group := range selected {
		broken := ""
		if group.Handling.Edge != nil {
			e := group.Handling.Edge
			broken = fmt.Sprintf("%s -> %s (%s)", e.From, e.To, e.Kind)
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", group.Order),
			strings.Join(group.Members, ", "),
			group.Handling.Kind.String(),
			broken,
		})
	}
	return RenderTable(os.Stdout, "Strongly Connected Groups", headers, rows, flags.Format, flags.Quiet)
}
