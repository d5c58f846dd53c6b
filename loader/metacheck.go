package loader

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/erraggy/schemagraph/internal/issues"
)

// metaSchemaID is the Draft 2020-12 meta-schema, embedded in the compiler.
const metaSchemaID = "https://json-schema.org/draft/2020-12/schema"

// validateMeta checks each root document against the JSON Schema meta-schema
// and records violations as warning issues. Definitions are covered by their
// containing file, so only roots are checked.
func (l *Loader) validateMeta(result *LoadResult) {
	compiler := jsonschema.NewCompiler()
	meta, err := compiler.Compile(metaSchemaID)
	if err != nil {
		l.log().Warn("meta-schema unavailable, skipping validation", "error", err)
		return
	}

	for _, doc := range result.Documents {
		if doc.IsDefinition() || doc.Raw == nil {
			continue
		}

		inst, err := metaInstance(doc.Raw)
		if err != nil {
			l.log().Debug("skipping meta validation", "schema", doc.ID, "error", err)
			continue
		}

		if err := meta.Validate(inst); err != nil {
			result.Issues = append(result.Issues, Issue{
				Code:     issues.CodeMetaSchemaViolation,
				SchemaID: doc.ID,
				Path:     doc.Path,
				Severity: SeverityWarning,
				Message:  metaViolationMessage(err),
			})
		}
	}
}

// metaInstance converts a decoded document map into the representation the
// validator expects (json.Number for numerics), by round-tripping through
// the JSON codec.
func metaInstance(raw map[string]interface{}) (interface{}, error) {
	data, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}
	return jsonschema.UnmarshalJSON(bytes.NewReader(data))
}

// metaViolationMessage renders a one-line summary of a validation error.
func metaViolationMessage(err error) string {
	var valErr *jsonschema.ValidationError
	if !errors.As(err, &valErr) {
		return err.Error()
	}

	leaves := flattenCauses(valErr)
	msg := fmt.Sprintf("violates the 2020-12 meta-schema (%d violation(s))", len(leaves))
	if len(leaves) > 0 {
		msg += " first at '/" + strings.Join(leaves[0].InstanceLocation, "/") + "'"
	}
	return msg
}

// flattenCauses walks a ValidationError tree and returns its leaves.
func flattenCauses(err *jsonschema.ValidationError) []*jsonschema.ValidationError {
	if len(err.Causes) == 0 {
		return []*jsonschema.ValidationError{err}
	}
	var leaves []*jsonschema.ValidationError
	for _, cause := range err.Causes {
		leaves = append(leaves, flattenCauses(cause)...)
	}
	return leaves
}
