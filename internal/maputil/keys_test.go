package maputil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortedKeys(t *testing.T) {
	tests := []struct {
		name     string
		input    map[string]bool
		expected []string
	}{
		{
			name: "schema paths sort lexically",
			input: map[string]bool{
				"types/status.json":   true,
				"entities/pet.json":   true,
				"entities/owner.json": true,
			},
			expected: []string{"entities/owner.json", "entities/pet.json", "types/status.json"},
		},
		{
			name: "definition fragments sort after their parent path",
			input: map[string]bool{
				"catalog/manifest.json#Entry": true,
				"catalog/manifest.json":       true,
			},
			expected: []string{"catalog/manifest.json", "catalog/manifest.json#Entry"},
		},
		{
			name:     "single key",
			input:    map[string]bool{"root.json": true},
			expected: []string{"root.json"},
		},
		{
			name:     "empty map",
			input:    map[string]bool{},
			expected: []string{},
		},
		{
			name:     "nil map",
			input:    nil,
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SortedKeys(tt.input)
			assert.Equal(t, tt.expected, got, "SortedKeys(%v)", tt.input)
		})
	}
}

func TestSortedKeys_StringValues(t *testing.T) {
	input := map[string]string{
		"field":   "field_type",
		"extends": "extends",
		"item":    "item_type",
	}
	got := SortedKeys(input)
	expected := []string{"extends", "field", "item"}
	assert.Equal(t, expected, got, "SortedKeys(%v)", input)
}

func TestSortedKeys_PointerValues(t *testing.T) {
	type node struct{ id string }
	input := map[string]*node{
		"entities/tag.json": {id: "entities/tag.json"},
		"entities/pet.json": {id: "entities/pet.json"},
	}
	got := SortedKeys(input)
	expected := []string{"entities/pet.json", "entities/tag.json"}
	assert.Equal(t, expected, got, "SortedKeys(pointer map)")
}
