package commands

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/erraggy/schemagraph/classifier"
	"github.com/erraggy/schemagraph/walker"
)

// ClassifyFlags contains flags for the classify command
type ClassifyFlags struct {
	Format string
	Kind   string
	Detail bool
	Quiet  bool
	Corpus CorpusFlags
}

// SetupClassifyFlags creates and configures a FlagSet for the classify command.
func SetupClassifyFlags() (*flag.FlagSet, *ClassifyFlags) {
	fs := flag.NewFlagSet("classify", flag.ContinueOnError)
	flags := &ClassifyFlags{}

	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, table, json, or yaml")
	fs.StringVar(&flags.Kind, "kind", "", "only show classifications of this kind: struct, enum, discriminated_union, newtype, collection, map, alias")
	fs.BoolVar(&flags.Detail, "detail", false, "show full payloads (fields, variants, enum members) instead of the summary table")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: tab-separated rows, no headers")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: tab-separated rows, no headers")
	AddCorpusFlags(fs, &flags.Corpus)

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: schemagraph classify [flags] <dir|archive.txtar>\n\n")
		Writef(fs.Output(), "List the type classification of every schema in emission order: the\n")
		Writef(fs.Output(), "target type kind, the emit strategy, and any synthetic helper types\n")
		Writef(fs.Output(), "introduced for variant payloads.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  schemagraph classify ./schemas\n")
		Writef(fs.Output(), "  schemagraph classify --kind discriminated_union ./schemas\n")
		Writef(fs.Output(), "  schemagraph classify --detail --format json corpus.txtar | jq '.[].fields'\n")
	}

	return fs, flags
}

// classifyDetail is the structured detail form of one classification.
type classifyDetail struct {
	ID                       string          `json:"id" yaml:"id"`
	Identifier               string          `json:"identifier,omitempty" yaml:"identifier,omitempty"`
	Kind                     string          `json:"kind" yaml:"kind"`
	Emit                     string          `json:"emit" yaml:"emit"`
	Synthetic                bool            `json:"synthetic,omitempty" yaml:"synthetic,omitempty"`
	Parent                   string          `json:"parent,omitempty" yaml:"parent,omitempty"`
	Fields                   []fieldDetail   `json:"fields,omitempty" yaml:"fields,omitempty"`
	Discriminator            string          `json:"discriminator,omitempty" yaml:"discriminator,omitempty"`
	DiscriminatorSynthesized bool            `json:"discriminator_synthesized,omitempty" yaml:"discriminator_synthesized,omitempty"`
	Variants                 []variantDetail `json:"variants,omitempty" yaml:"variants,omitempty"`
	Enum                     []string        `json:"enum,omitempty" yaml:"enum,omitempty"`
	Wrapped                  string          `json:"wrapped,omitempty" yaml:"wrapped,omitempty"`
	Element                  string          `json:"element,omitempty" yaml:"element,omitempty"`
	Ordered                  bool            `json:"ordered,omitempty" yaml:"ordered,omitempty"`
	Value                    string          `json:"value,omitempty" yaml:"value,omitempty"`
	AliasOf                  string          `json:"alias_of,omitempty" yaml:"alias_of,omitempty"`
}

type fieldDetail struct {
	Name       string `json:"name" yaml:"name"`
	Type       string `json:"type" yaml:"type"`
	Required   bool   `json:"required,omitempty" yaml:"required,omitempty"`
	Indirected bool   `json:"indirected,omitempty" yaml:"indirected,omitempty"`
}

type variantDetail struct {
	Name    string `json:"name" yaml:"name"`
	Payload string `json:"payload,omitempty" yaml:"payload,omitempty"`
}

// HandleClassify executes the classify command
func HandleClassify(args []string) error {
	fs, flags := SetupClassifyFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}
	kindFilter, filterSet, err := ParseTypeKind(flags.Kind)
	if err != nil {
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("classify command requires exactly one corpus directory or archive")
	}

	result, err := ResolveCorpus(fs.Arg(0), flags.Corpus)
	if err != nil {
		return err
	}

	collected, err := walker.CollectClassifications(result)
	if err != nil {
		return err
	}
	selected := collected.All
	if filterSet {
		selected = collected.ByKind[kindFilter]
	}

	if !flags.Quiet {
		Writef(os.Stderr, "Classifications: %d (%d synthetic)\n\n",
			result.Stats.Classifications, result.Stats.Synthetics)
	}

	if len(selected) == 0 {
		if !flags.Quiet {
			Writef(os.Stderr, "No classifications matched the given filters.\n")
		}
		return nil
	}

	if flags.Detail {
		details := make([]classifyDetail, 0, len(selected))
		for _, info := range selected {
			details = append(details, detailClassification(info))
		}
		return RenderDetail(os.Stdout, details, flags.Format)
	}

	headers := []string{"ID", "IDENTIFIER", "KIND", "EMIT", "NOTES"}
	rows := make([][]string, 0, len(selected))
	for _, info := range selected {
		cl := info.Classification
		rows = append(rows, []string{
			cl.ID,
			info.Identifier,
			cl.Kind.String(),
			cl.Emit.String(),
			classificationNotes(cl),
		})
	}
	return RenderTable(os.Stdout, "Classifications", headers, rows, flags.Format, flags.Quiet)
}

// classificationNotes summarizes the payload for the summary table.
func classificationNotes(cl *classifier.Classification) string {
	var notes []string
	switch cl.Kind {
	case classifier.KindStruct:
		notes = append(notes, fmt.Sprintf("%d fields", len(cl.Fields)))
		for _, f := range cl.Fields {
			if f.Indirected {
				notes = append(notes, fmt.Sprintf("%s indirected", f.Name))
			}
		}
	case classifier.KindDiscriminatedUnion:
		notes = append(notes, fmt.Sprintf("%d variants by %q", len(cl.Variants), cl.Discriminator))
	case classifier.KindEnum:
		notes = append(notes, fmt.Sprintf("%d values", len(cl.Enum)))
	case classifier.KindNewType:
		notes = append(notes, "wraps "+cl.Wrapped.String())
	case classifier.KindCollection:
		notes = append(notes, "of "+cl.Element.String())
	case classifier.KindMap:
		notes = append(notes, "of "+cl.Value.String())
	case classifier.KindAlias:
		if cl.AliasOf != "" {
			notes = append(notes, "= "+cl.AliasOf)
		}
	}
	if cl.Synthetic {
		notes = append(notes, "synthetic")
	}
	return strings.Join(notes, ", ")
}

// detailClassification flattens one classification for structured output.
func detailClassification(info *walker.ClassificationInfo) classifyDetail {
	cl := info.Classification
	d := classifyDetail{
		ID:                       cl.ID,
		Identifier:               info.Identifier,
		Kind:                     cl.Kind.String(),
		Emit:                     cl.Emit.String(),
		Synthetic:                cl.Synthetic,
		Parent:                   cl.Parent,
		Discriminator:            cl.Discriminator,
		DiscriminatorSynthesized: cl.DiscriminatorSynthesized,
		AliasOf:                  cl.AliasOf,
	}
	for _, f := range cl.Fields {
		d.Fields = append(d.Fields, fieldDetail{
			Name:       f.Name,
			Type:       f.Type.String(),
			Required:   f.Required,
			Indirected: f.Indirected,
		})
	}
	for _, v := range cl.Variants {
		vd := variantDetail{Name: v.Name}
		if v.HasPayload() {
			vd.Payload = v.Payload.String()
		}
		d.Variants = append(d.Variants, vd)
	}
	for _, e := range cl.Enum {
		d.Enum = append(d.Enum, e.Value)
	}
	if !cl.Wrapped.Opaque() {
		d.Wrapped = cl.Wrapped.String()
	}
	if cl.Kind == classifier.KindCollection {
		d.Element = cl.Element.String()
		d.Ordered = cl.Ordered
	}
	if cl.Kind == classifier.KindMap {
		d.Value = cl.Value.String()
	}
	return d
}

// ParseTypeKind maps a kind label to its TypeKind. The boolean reports
// whether a filter was requested at all.
func ParseTypeKind(label string) (classifier.TypeKind, bool, error) {
	if label == "" {
		return 0, false, nil
	}
	for k := classifier.KindStruct; k <= classifier.KindAlias; k++ {
		if strings.EqualFold(k.String(), label) {
			return k, true, nil
		}
	}
	return 0, false, fmt.Errorf("invalid kind '%s'. Valid kinds: struct, enum, discriminated_union, newtype, collection, map, alias", label)
}
