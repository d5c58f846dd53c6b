package namer

import (
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/erraggy/schemagraph/classifier"
	"github.com/erraggy/schemagraph/internal/issues"
	"github.com/erraggy/schemagraph/internal/naming"
	"github.com/erraggy/schemagraph/internal/severity"
	"github.com/erraggy/schemagraph/loader"
)

// Issue describes a single non-fatal problem found during name resolution.
type Issue = issues.Issue

// Severity indicates the severity level of a naming issue
type Severity = severity.Severity

const (
	// SeverityError indicates an issue that invalidates a document
	SeverityError = severity.SeverityError
	// SeverityWarning indicates a contested identifier that was auto-resolved
	SeverityWarning = severity.SeverityWarning
	// SeverityInfo indicates informational messages
	SeverityInfo = severity.SeverityInfo
	// SeverityCritical indicates critical issues
	SeverityCritical = severity.SeverityCritical
)

// CodeNameCollision marks two or more schemas competing for one identifier
const CodeNameCollision = issues.CodeNameCollision

// Namer assigns every classification a unique exported identifier.
//
// Resolution is deterministic: the same corpus always produces the same
// table, byte for byte, so regenerating does not rename types that did not
// change. Contested identifiers are qualified with source path segments
// rather than counters, which keeps the outcome stable when unrelated
// schemas are added or removed.
type Namer struct {
	// Logger is the structured logger for debug output
	// If nil, logging is disabled (default)
	Logger loader.Logger
}

// New creates a new Namer instance with default settings
func New() *Namer {
	return &Namer{}
}

// log returns the configured logger, or a no-op logger if none is set.
func (nm *Namer) log() loader.Logger {
	if nm.Logger != nil {
		return nm.Logger
	}
	return loader.NopLogger{}
}

// Table is the final name assignment for one classification result.
type Table struct {
	// Names contains one resolved name per classification, sorted by
	// LogicalID.
	Names []ResolvedName
	// Issues contains one NameCollision warning per contested identifier.
	Issues []Issue
	// CollisionCount is the number of contested identifiers.
	CollisionCount int
	// ResolveTime is the time taken to resolve every name.
	ResolveTime time.Duration

	byID map[string]int
}

// Name returns the resolved name for the given logical ID.
func (tb *Table) Name(id string) (ResolvedName, bool) {
	idx, ok := tb.byID[id]
	if !ok {
		return ResolvedName{}, false
	}
	return tb.Names[idx], true
}

// Identifier returns the identifier for the given logical ID, or the empty
// string when the ID is not in the table.
func (tb *Table) Identifier(id string) string {
	if rn, ok := tb.Name(id); ok {
		return rn.Identifier
	}
	return ""
}

// Resolve assigns identifiers to every classification using a Namer
// configured by the given options.
func Resolve(res *classifier.Result, opts ...Option) (*Table, error) {
	nm := New()
	if err := applyOptions(nm, opts); err != nil {
		return nil, err
	}
	return nm.Resolve(res), nil
}

// entry tracks one classification through resolution. raw stays in
// unescaped PascalCase so qualifiers compose cleanly; escaping happens in
// finalIdent so an escape-induced clash is still caught by the grouping.
type entry struct {
	id       string
	raw      string
	segments []string
	used     int
	origin   Origin
}

// Resolve assigns a unique exported identifier to every classification.
//
// Direct classifications resolve first: each starts from the PascalCase
// form of its definition name or file stem, and contested identifiers are
// qualified with parent path segments, nearest first, until distinct.
// Synthetic helpers then compose the parent's final identifier with the
// variant name. Every contested identifier is reported as a NameCollision
// warning listing the competing schemas.
func (nm *Namer) Resolve(res *classifier.Result) *Table {
	start := time.Now()
	tb := &Table{byID: make(map[string]int)}
	if res == nil || len(res.Classifications) == 0 {
		tb.ResolveTime = time.Since(start)
		return tb
	}

	var directs, synthetics []*classifier.Classification
	for _, cl := range res.Classifications {
		if cl.Synthetic {
			synthetics = append(synthetics, cl)
		} else {
			directs = append(directs, cl)
		}
	}
	sort.Slice(directs, func(i, j int) bool { return directs[i].ID < directs[j].ID })
	sort.Slice(synthetics, func(i, j int) bool { return synthetics[i].ID < synthetics[j].ID })

	entries := make([]*entry, 0, len(directs))
	byEntry := make(map[string]*entry, len(directs))
	for _, cl := range directs {
		base, segments := nameParts(cl.ID)
		e := &entry{
			id:       cl.ID,
			raw:      naming.ToPascalCase(base),
			segments: segments,
			origin:   OriginDirectFromSchema,
		}
		entries = append(entries, e)
		byEntry[e.id] = e
	}
	nm.disambiguate(tb, entries)

	taken := make(map[string]string, len(entries)+len(synthetics))
	for _, e := range entries {
		taken[finalIdent(e)] = e.id
	}
	for _, cl := range synthetics {
		entries = append(entries, nm.resolveSynthetic(tb, taken, byEntry, cl))
	}

	tb.Names = make([]ResolvedName, 0, len(entries))
	for _, e := range entries {
		tb.Names = append(tb.Names, ResolvedName{
			LogicalID:  e.id,
			Identifier: finalIdent(e),
			Origin:     e.origin,
		})
	}
	sort.Slice(tb.Names, func(i, j int) bool { return tb.Names[i].LogicalID < tb.Names[j].LogicalID })
	for i, rn := range tb.Names {
		tb.byID[rn.LogicalID] = i
	}

	tb.CollisionCount = len(tb.Issues)
	tb.ResolveTime = time.Since(start)
	nm.log().Info("names resolved",
		"names", len(tb.Names),
		"collisions", tb.CollisionCount,
	)
	return tb
}

// disambiguate renames the members of every contested identifier group
// until all identifiers are distinct. Each round a contested member
// prepends its next unused path segment. A member with no segments left
// keeps the contested name if it is the first such member, otherwise it
// gains a trailing underscore; identifiers only ever grow, so the loop
// terminates.
func (nm *Namer) disambiguate(tb *Table, entries []*entry) {
	reported := make(map[string]bool)
	for {
		groups := make(map[string][]*entry, len(entries))
		for _, e := range entries {
			ident := finalIdent(e)
			groups[ident] = append(groups[ident], e)
		}

		var contested []string
		for ident, group := range groups {
			if len(group) > 1 {
				contested = append(contested, ident)
			}
		}
		if len(contested) == 0 {
			return
		}
		sort.Strings(contested)

		for _, ident := range contested {
			group := groups[ident]
			if !reported[ident] {
				reported[ident] = true
				ids := make([]string, 0, len(group))
				for _, e := range group {
					ids = append(ids, e.id)
				}
				tb.Issues = append(tb.Issues, collisionIssue(ident, ids))
			}

			kept := false
			for _, e := range group {
				switch {
				case e.used < len(e.segments):
					e.raw = e.segments[e.used] + e.raw
					e.used++
					e.origin = OriginDisambiguated
				case !kept:
					kept = true
				default:
					e.raw += "_"
					e.origin = OriginDisambiguated
				}
			}
		}
	}
}

// resolveSynthetic names one helper classification after its parent. When
// the composed name is already taken the helper yields: the established
// type keeps its identifier and the helper gains a Payload suffix, so
// introducing a variant never renames an existing type.
func (nm *Namer) resolveSynthetic(tb *Table, taken map[string]string, byEntry map[string]*entry, cl *classifier.Classification) *entry {
	parentID := cl.Parent
	variant := cl.ID
	if idx := strings.Index(cl.ID, "::"); idx >= 0 {
		variant = cl.ID[idx+2:]
		if parentID == "" {
			parentID = cl.ID[:idx]
		}
	}

	parentRaw := ""
	if pe, ok := byEntry[parentID]; ok {
		parentRaw = pe.raw
	} else {
		base, _ := nameParts(parentID)
		parentRaw = naming.ToPascalCase(base)
	}

	e := &entry{
		id:     cl.ID,
		raw:    parentRaw + naming.ToPascalCase(variant),
		origin: OriginSyntheticHelper,
	}
	if holder, clash := taken[finalIdent(e)]; clash {
		tb.Issues = append(tb.Issues, collisionIssue(finalIdent(e), []string{holder, e.id}))
		e.raw += "Payload"
		for {
			if _, still := taken[finalIdent(e)]; !still {
				break
			}
			e.raw += "_"
		}
	}
	taken[finalIdent(e)] = e.id
	return e
}

// nameParts splits a logical ID into its naming base and the qualification
// segments available for disambiguation, nearest parent first. A promoted
// definition is based on its definition name and qualifies with the file
// stem before the directories; a root document is based on the file stem
// and qualifies with the directories alone.
func nameParts(id string) (base string, segments []string) {
	path := id
	if idx := strings.IndexByte(id, '#'); idx >= 0 {
		base = id[idx+1:]
		path = id[:idx]
	}

	segs := strings.Split(path, "/")
	stem := trimExtensions(segs[len(segs)-1])
	if base == "" {
		base = stem
	} else {
		segments = append(segments, naming.ToPascalCase(stem))
	}
	for i := len(segs) - 2; i >= 0; i-- {
		segments = append(segments, naming.ToPascalCase(segs[i]))
	}
	return base, segments
}

// trimExtensions strips the recognized schema file extensions from a name.
func trimExtensions(name string) string {
	for _, ext := range []string{".json", ".yaml", ".yml", ".schema"} {
		name = strings.TrimSuffix(name, ext)
	}
	return name
}

// finalIdent produces the exported identifier for an entry: empty names
// fall back to "Type", a leading non-letter gains a "T" prefix, and
// reserved words gain a trailing underscore. The raw form is already
// PascalCase, so no case conversion happens here and disambiguation
// underscores survive.
func finalIdent(e *entry) string {
	name := e.raw
	if name == "" {
		return "Type"
	}
	if first, _ := utf8.DecodeRuneInString(name); !unicode.IsLetter(first) {
		name = "T" + name
	}
	return naming.EscapeReserved(name)
}

// pathOf returns the source path portion of a logical ID.
func pathOf(id string) string {
	if idx := strings.Index(id, "::"); idx >= 0 {
		id = id[:idx]
	}
	if idx := strings.IndexByte(id, '#'); idx >= 0 {
		id = id[:idx]
	}
	return id
}

// collisionIssue builds the diagnostic for one contested identifier.
func collisionIssue(ident string, ids []string) Issue {
	sort.Strings(ids)
	return Issue{
		Code:     CodeNameCollision,
		SchemaID: ids[0],
		Path:     pathOf(ids[0]),
		Related:  ids,
		Severity: SeverityWarning,
		Message:  fmt.Sprintf("identifier %q contested by %d schemas", ident, len(ids)),
	}
}
