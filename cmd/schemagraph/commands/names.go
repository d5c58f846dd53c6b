package commands

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/erraggy/schemagraph/namer"
)

// NamesFlags contains flags for the names command
type NamesFlags struct {
	Format         string
	CollisionsOnly bool
	Quiet          bool
	Corpus         CorpusFlags
}

// SetupNamesFlags creates and configures a FlagSet for the names command.
func SetupNamesFlags() (*flag.FlagSet, *NamesFlags) {
	fs := flag.NewFlagSet("names", flag.ContinueOnError)
	flags := &NamesFlags{}

	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, table, json, or yaml")
	fs.BoolVar(&flags.CollisionsOnly, "collisions-only", false, "only show identifiers that were contested and had to be qualified")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: tab-separated rows, no headers")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: tab-separated rows, no headers")
	AddCorpusFlags(fs, &flags.Corpus)

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: schemagraph names [flags] <dir|archive.txtar>\n\n")
		Writef(fs.Output(), "List the identifier resolved for every classification, synthetic helpers\n")
		Writef(fs.Output(), "included, and report every collision the resolver had to disambiguate.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  schemagraph names ./schemas\n")
		Writef(fs.Output(), "  schemagraph names --collisions-only ./schemas\n")
		Writef(fs.Output(), "  schemagraph names --format json corpus.txtar | jq '.[].identifier'\n")
	}

	return fs, flags
}

// HandleNames executes the names command
func HandleNames(args []string) error {
	fs, flags := SetupNamesFlags()

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
		return fmt.Errorf("names command requires exactly one corpus directory or archive")
	}

	result, err := ResolveCorpus(fs.Arg(0), flags.Corpus)
	if err != nil {
		return err
	}

	table := result.Names
	selected := table.Names
	if flags.CollisionsOnly {
		selected = nil
		for _, rn := range table.Names {
			if rn.Origin == namer.OriginDisambiguated {
				selected = append(selected, rn)
			}
		}
	}

	if !flags.Quiet {
		Writef(os.Stderr, "Names: %d (%d collisions resolved)\n\n",
			len(table.Names), table.CollisionCount)
	}

	if len(selected) == 0 {
		if !flags.Quiet {
			Writef(os.Stderr, "No names matched the given filters.\n")
		}
		return nil
	}

	headers := []string{"SCHEMA", "IDENTIFIER", "ORIGIN"}
	rows := make([][]string, 0, len(selected))
	for _, rn := range selected {
		rows = append(rows, []string{rn.LogicalID, rn.Identifier, rn.Origin.String()})
	}
	return RenderTable(os.Stdout, "Resolved Names", headers, rows, flags.Format, flags.Quiet)
}
