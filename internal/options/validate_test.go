package options

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequireExactlyOne(t *testing.T) {
	sources := func(set ...bool) []Source {
		names := []string{"WithDir", "WithFiles", "WithArchive", "WithDocuments"}
		out := make([]Source, len(set))
		for i, s := range set {
			out[i] = Source{Name: names[i], Set: s}
		}
		return out
	}

	t.Run("exactly one source passes", func(t *testing.T) {
		err := RequireExactlyOne("loader", sources(false, true, false, false)...)
		assert.NoError(t, err)
	})

	t.Run("no source lists every option", func(t *testing.T) {
		err := RequireExactlyOne("loader", sources(false, false, false, false)...)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "loader: must specify an input source")
		assert.Contains(t, err.Error(), "WithDir, WithFiles, WithArchive, or WithDocuments")
	})

	t.Run("two sources name the conflict", func(t *testing.T) {
		err := RequireExactlyOne("pipeline", sources(true, false, true, false)...)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "pipeline: must specify exactly one input source")
		assert.Contains(t, err.Error(), "WithDir and WithArchive")
	})

	t.Run("all sources set", func(t *testing.T) {
		err := RequireExactlyOne("walker", sources(true, true, true, true)...)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "exactly one input source")
	})
}

func TestOrList(t *testing.T) {
	tests := []struct {
		name     string
		names    []string
		expected string
	}{
		{"empty", nil, ""},
		{"single", []string{"WithDir"}, "WithDir"},
		{"pair", []string{"WithDir", "WithFiles"}, "WithDir, or WithFiles"},
		{"several", []string{"WithDir", "WithFiles", "WithArchive"}, "WithDir, WithFiles, or WithArchive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, orList(tt.names))
		})
	}
}
