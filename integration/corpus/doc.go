// Package corpus provides integration tests that run the full analysis
// pipeline over generated corpora of increasing size.
//
// The corpora come from internal/corpusutil profiles, so every run is
// deterministic and every expected count is derivable from the profile.
//
// Run with: go test -tags=integration -run TestCorpus ./integration/corpus/...
package corpus
