// Package corpusutil generates synthetic schema corpora for integration
// testing.
//
// Each Profile describes one corpus: how many entity, enum, collection,
// and union documents it contains, which reference rings it embeds, and
// the seed that fixes its reference topology. Generation is fully
// deterministic, so tests can assert exact document counts, cycle counts,
// and identifier tables without checking fixture trees into the
// repository.
//
// # Usage
//
// Tests iterate the registry and skip the expensive profiles in short
// mode:
//
//	func TestCorpus_Analyze(t *testing.T) {
//	    for _, profile := range corpusutil.Profiles {
//	        t.Run(profile.Name, func(t *testing.T) {
//	            corpusutil.SkipLargeInShortMode(t, profile)
//	            docs := profile.Generate()
//	            // ... analyze docs
//	        })
//	    }
//	}
package corpusutil
