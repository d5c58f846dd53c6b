package loader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetaValidationClean(t *testing.T) {
	result, err := LoadWithOptions(
		WithDocument("clean.json", []byte(`{
			"type": "object",
			"properties": {"id": {"type": "string"}},
			"required": ["id"]
		}`)),
		WithMetaValidation(true),
	)
	require.NoError(t, err)
	assert.Empty(t, result.Issues)
}

func TestMetaValidationViolation(t *testing.T) {
	// "type" must be a string or array of strings per the meta-schema.
	result, err := LoadWithOptions(
		WithDocument("broken.json", []byte(`{"type": 12}`)),
		WithMetaValidation(true),
	)
	require.NoError(t, err)

	require.Len(t, result.Documents, 1)
	require.Len(t, result.Issues, 1)
	assert.Equal(t, CodeMetaSchemaViolation, result.Issues[0].Code)
	assert.Equal(t, SeverityWarning, result.Issues[0].Severity)
	assert.Equal(t, "broken.json", result.Issues[0].SchemaID)

	// Warnings never fail the load
	assert.False(t, result.HasErrors())
}

func TestMetaValidationSkipsDefinitions(t *testing.T) {
	// The root document covers its definitions; a violation inside $defs is
	// reported once against the file, not per promoted node.
	result, err := LoadWithOptions(
		WithDocument("parent.json", []byte(`{
			"type": "object",
			"$defs": {"Bad": {"type": 42}}
		}`)),
		WithMetaValidation(true),
	)
	require.NoError(t, err)

	violations := 0
	for _, issue := range result.Issues {
		if issue.Code == CodeMetaSchemaViolation {
			violations++
			assert.Equal(t, "parent.json", issue.SchemaID)
		}
	}
	assert.Equal(t, 1, violations)
}
