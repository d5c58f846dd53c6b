package corpusutil

import (
	"fmt"
	"math/rand"
	"os"
	"testing"

	"github.com/erraggy/schemagraph/internal/naming"
	"github.com/erraggy/schemagraph/internal/testutil"
)

// Profile describes one synthetic corpus: the document mix, the embedded
// reference rings, and the seed that fixes the cross-reference topology.
type Profile struct {
	Name        string // Human-readable name (e.g., "Small")
	Entities    int    // Struct documents with cross-references
	Enums       int    // Enum wrapper documents
	Collections int    // Array documents wrapping an entity
	Unions      int    // Tagged union documents
	Rings       []int  // Reference ring lengths, one cyclic group each
	Seed        int64  // Seed for the reference topology
	IsLarge     bool   // True for profiles too slow for -short runs
}

// Profiles defines the three corpus profiles used across integration
// tests, ordered by size (smallest first) for faster test feedback.
var Profiles = []Profile{
	{
		Name:        "Small",
		Entities:    12,
		Enums:       3,
		Collections: 3,
		Unions:      2,
		Rings:       []int{2},
		Seed:        101,
	},
	{
		Name:        "Medium",
		Entities:    40,
		Enums:       8,
		Collections: 6,
		Unions:      4,
		Rings:       []int{2, 3},
		Seed:        211,
	},
	{
		Name:        "Large",
		Entities:    400,
		Enums:       40,
		Collections: 30,
		Unions:      20,
		Rings:       []int{2, 3, 5},
		Seed:        307,
		IsLarge:     true,
	},
}

// ByName returns the profile with the given name, or nil if not found.
func ByName(name string) *Profile {
	for i := range Profiles {
		if Profiles[i].Name == name {
			return &Profiles[i]
		}
	}
	return nil
}

// DocumentCount returns the number of root documents Generate produces.
func (p Profile) DocumentCount() int {
	n := p.Entities + p.Enums + p.Collections + p.Unions + 1
	for _, ring := range p.Rings {
		n += ring
	}
	return n
}

// DefinitionCount returns the number of promoted local definitions in the
// generated corpus. Only the manifest document carries $defs.
func (p Profile) DefinitionCount() int {
	return 2
}

// CyclicGroupCount returns the number of cyclic groups the generated
// corpus produces. Every ring is one, and nothing else cycles: entities
// only reference earlier entities, and collections and unions only
// reference entities.
func (p Profile) CyclicGroupCount() int {
	return len(p.Rings)
}

// SyntheticCount returns the number of synthetic helper classifications
// the generated corpus produces. Each union has exactly one variant with
// more than one inline field.
func (p Profile) SyntheticCount() int {
	return p.Unions
}

// Name pools for generated documents. Counts beyond the pool size wrap
// around; the index suffix keeps every document name unique regardless.
var (
	entityPool = []string{
		"account", "order", "invoice", "profile", "ledger", "asset",
		"ticket", "shipment", "catalog", "review", "session", "device",
		"channel", "contract", "payment", "subscription", "warehouse",
		"courier", "voucher", "segment",
	}
	enumPool   = []string{"status", "priority", "region", "tier", "phase", "grade", "mode", "source"}
	unionPool  = []string{"event", "signal", "command", "notice", "alert", "report"}
	memberPool = []string{"active", "archived", "draft", "failed", "queued", "running", "stalled", "done"}
	extraPool  = []struct{ name, typ string }{
		{"created_at", "string"},
		{"updated_at", "string"},
		{"note", "string"},
		{"weight", "number"},
		{"active", "boolean"},
	}
)

func poolName(pool []string, i int) string {
	return fmt.Sprintf("%s_%02d", pool[i%len(pool)], i)
}

func (p Profile) entityID(i int) string {
	return "entities/" + poolName(entityPool, i) + ".json"
}

func (p Profile) enumID(i int) string {
	return "types/" + poolName(enumPool, i) + ".json"
}

// Generate produces the corpus documents keyed by corpus-relative path.
// Output is fully deterministic: the same profile always yields
// byte-identical documents.
func (p Profile) Generate() map[string][]byte {
	rng := rand.New(rand.NewSource(p.Seed))
	docs := make(map[string][]byte, p.DocumentCount())

	for i := 0; i < p.Enums; i++ {
		name := poolName(enumPool, i)
		count := 3 + i%3
		values := make([]any, count)
		for j := 0; j < count; j++ {
			values[j] = memberPool[(i+j)%len(memberPool)]
		}
		doc := testutil.Titled(naming.ToPascalCase(name), testutil.Enum("string", values...))
		docs[p.enumID(i)] = testutil.MustJSON(doc)
	}

	for i := 0; i < p.Entities; i++ {
		name := poolName(entityPool, i)
		props := map[string]any{
			"id": testutil.Scalar("string"),
		}
		for j := 0; j < rng.Intn(3); j++ {
			extra := extraPool[(i+j)%len(extraPool)]
			props[extra.name] = testutil.Scalar(extra.typ)
		}
		if i > 0 {
			for j := 0; j < rng.Intn(3); j++ {
				target := rng.Intn(i)
				props[poolName(entityPool, target)] = testutil.Ref(p.entityID(target))
			}
		}
		if p.Enums > 0 {
			props["state"] = testutil.Ref(p.enumID(rng.Intn(p.Enums)))
		}
		doc := testutil.Titled(naming.ToPascalCase(name), testutil.Object(props, "id"))
		docs[p.entityID(i)] = testutil.MustJSON(doc)
	}

	for i := 0; i < p.Collections; i++ {
		name := poolName(entityPool, i%p.Entities)
		doc := testutil.Titled(
			naming.ToPascalCase(name)+"Store",
			testutil.ArrayOf(testutil.Ref(p.entityID(i%p.Entities))),
		)
		docs["stores/"+name+"_store.json"] = testutil.MustJSON(doc)
	}

	for i := 0; i < p.Unions; i++ {
		name := poolName(unionPool, i)
		target := p.entityID(rng.Intn(p.Entities))
		doc := testutil.Titled(naming.ToPascalCase(name), testutil.Union(
			testutil.Tagged("event", "created", testutil.Object(map[string]any{
				"label": testutil.Scalar("string"),
				"count": testutil.Scalar("integer"),
			}, "label")),
			testutil.Tagged("event", "linked", testutil.Object(map[string]any{
				"target": testutil.Ref(target),
			})),
		))
		docs["messages/"+name+".json"] = testutil.MustJSON(doc)
	}

	for ringIdx, length := range p.Rings {
		for j := 0; j < length; j++ {
			id := ringDocID(ringIdx, j)
			next := ringDocID(ringIdx, (j+1)%length)
			doc := testutil.Titled(
				fmt.Sprintf("Ring%02dNode%02d", ringIdx, j),
				testutil.Object(map[string]any{
					"label": testutil.Scalar("string"),
					"next":  testutil.Ref(next),
				}, "label"),
			)
			docs[id] = testutil.MustJSON(doc)
		}
	}

	manifest := testutil.Titled("Manifest", testutil.Object(map[string]any{
		"items":    testutil.ArrayOf(testutil.Ref("#/$defs/Entry")),
		"revision": testutil.Ref("#/$defs/Revision"),
	}, "items"))
	manifest["$defs"] = map[string]any{
		"Entry": testutil.Object(map[string]any{
			"path": testutil.Scalar("string"),
			"size": testutil.Scalar("integer"),
		}, "path"),
		"Revision": testutil.Enum("string", "draft", "published"),
	}
	docs["catalog/manifest.json"] = testutil.MustJSON(manifest)

	return docs
}

func ringDocID(ringIdx, member int) string {
	return fmt.Sprintf("cycles/ring%02d_%02d.json", ringIdx, member)
}

// RingMembers returns the document IDs of the given ring, in ring order.
func (p Profile) RingMembers(ringIdx int) []string {
	if ringIdx < 0 || ringIdx >= len(p.Rings) {
		return nil
	}
	members := make([]string, p.Rings[ringIdx])
	for j := range members {
		members[j] = ringDocID(ringIdx, j)
	}
	return members
}

// SkipLargeInShortMode skips large profiles when running with -short.
func SkipLargeInShortMode(t testing.TB, p Profile) {
	t.Helper()
	if testing.Short() && p.IsLarge {
		t.Skipf("Skipping large profile %s in short mode", p.Name)
	}
}

// SkipIfEnvSet skips the test if the specified environment variable is set to "1".
func SkipIfEnvSet(t testing.TB, envVar string) {
	t.Helper()
	if os.Getenv(envVar) == "1" {
		t.Skipf("Skipping test due to %s=1", envVar)
	}
}
