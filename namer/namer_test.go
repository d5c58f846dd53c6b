package namer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/schemagraph/classifier"
	"github.com/erraggy/schemagraph/cycles"
	"github.com/erraggy/schemagraph/graph"
	"github.com/erraggy/schemagraph/loader"
	"github.com/erraggy/schemagraph/resolver"
	"github.com/erraggy/schemagraph/shapes"
)

func classifications(ids ...string) *classifier.Result {
	res := &classifier.Result{}
	for _, id := range ids {
		res.Classifications = append(res.Classifications, &classifier.Classification{ID: id})
	}
	return res
}

func synthetic(id, parent string) *classifier.Classification {
	return &classifier.Classification{ID: id, Synthetic: true, Parent: parent}
}

func TestResolveDirectNames(t *testing.T) {
	tb, err := Resolve(classifications(
		"entities/moment.json",
		"entities/moment.json#Attachment",
		"login-status.yaml",
	))
	require.NoError(t, err)

	assert.Equal(t, []ResolvedName{
		{LogicalID: "entities/moment.json", Identifier: "Moment", Origin: OriginDirectFromSchema},
		{LogicalID: "entities/moment.json#Attachment", Identifier: "Attachment", Origin: OriginDirectFromSchema},
		{LogicalID: "login-status.yaml", Identifier: "LoginStatus", Origin: OriginDirectFromSchema},
	}, tb.Names)
	assert.Empty(t, tb.Issues)
	assert.Zero(t, tb.CollisionCount)

	assert.Equal(t, "LoginStatus", tb.Identifier("login-status.yaml"))
	assert.Equal(t, "", tb.Identifier("missing.json"))
	_, ok := tb.Name("missing.json")
	assert.False(t, ok)
}

func TestResolveCollision(t *testing.T) {
	tb, err := Resolve(classifications(
		"entities/status.json",
		"legacy/status.json",
	))
	require.NoError(t, err)

	assert.Equal(t, []ResolvedName{
		{LogicalID: "entities/status.json", Identifier: "EntitiesStatus", Origin: OriginDisambiguated},
		{LogicalID: "legacy/status.json", Identifier: "LegacyStatus", Origin: OriginDisambiguated},
	}, tb.Names)

	require.Len(t, tb.Issues, 1)
	issue := tb.Issues[0]
	assert.Equal(t, CodeNameCollision, issue.Code)
	assert.Equal(t, "entities/status.json", issue.SchemaID)
	assert.Equal(t, "entities/status.json", issue.Path)
	assert.Equal(t, []string{"entities/status.json", "legacy/status.json"}, issue.Related)
	assert.Equal(t, SeverityWarning, issue.Severity)
	assert.Equal(t, `identifier "Status" contested by 2 schemas`, issue.Message)
	assert.Equal(t, 1, tb.CollisionCount)
}

func TestResolveCollisionDepth(t *testing.T) {
	tb, err := Resolve(classifications(
		"a/common/item.json",
		"b/common/item.json",
	))
	require.NoError(t, err)

	assert.Equal(t, "ACommonItem", tb.Identifier("a/common/item.json"))
	assert.Equal(t, "BCommonItem", tb.Identifier("b/common/item.json"))

	require.Len(t, tb.Issues, 2)
	assert.Contains(t, tb.Issues[0].Message, `"Item"`)
	assert.Contains(t, tb.Issues[1].Message, `"CommonItem"`)
}

func TestResolveDefinitionCollision(t *testing.T) {
	tb, err := Resolve(classifications(
		"entities/moment.json#Attachment",
		"entities/note.json#Attachment",
	))
	require.NoError(t, err)

	assert.Equal(t, "MomentAttachment", tb.Identifier("entities/moment.json#Attachment"))
	assert.Equal(t, "NoteAttachment", tb.Identifier("entities/note.json#Attachment"))
	assert.Equal(t, 1, tb.CollisionCount)
}

func TestResolveRootKeepsName(t *testing.T) {
	tb, err := Resolve(classifications(
		"status.json",
		"entities/status.json",
	))
	require.NoError(t, err)

	root, ok := tb.Name("status.json")
	require.True(t, ok)
	assert.Equal(t, "Status", root.Identifier)
	assert.Equal(t, OriginDirectFromSchema, root.Origin)

	nested, ok := tb.Name("entities/status.json")
	require.True(t, ok)
	assert.Equal(t, "EntitiesStatus", nested.Identifier)
	assert.Equal(t, OriginDisambiguated, nested.Origin)

	require.Len(t, tb.Issues, 1)
	assert.Equal(t, []string{"entities/status.json", "status.json"}, tb.Issues[0].Related)
}

func TestResolveSynthetic(t *testing.T) {
	t.Run("root parent", func(t *testing.T) {
		res := classifications("shape.json")
		res.Classifications = append(res.Classifications, synthetic("shape.json::rect", "shape.json"))
		tb, err := Resolve(res)
		require.NoError(t, err)

		rn, ok := tb.Name("shape.json::rect")
		require.True(t, ok)
		assert.Equal(t, "ShapeRect", rn.Identifier)
		assert.Equal(t, OriginSyntheticHelper, rn.Origin)
		assert.Empty(t, tb.Issues)
	})

	t.Run("definition parent", func(t *testing.T) {
		res := classifications("geo.json#Shape")
		res.Classifications = append(res.Classifications, synthetic("geo.json#Shape::big_rect", "geo.json#Shape"))
		tb, err := Resolve(res)
		require.NoError(t, err)

		assert.Equal(t, "ShapeBigRect", tb.Identifier("geo.json#Shape::big_rect"))
	})
}

func TestResolveSyntheticYields(t *testing.T) {
	res := classifications("shape.json", "shape_rect.json")
	res.Classifications = append(res.Classifications, synthetic("shape.json::rect", "shape.json"))
	tb, err := Resolve(res)
	require.NoError(t, err)

	assert.Equal(t, "ShapeRect", tb.Identifier("shape_rect.json"))
	assert.Equal(t, "ShapeRectPayload", tb.Identifier("shape.json::rect"))

	rn, ok := tb.Name("shape.json::rect")
	require.True(t, ok)
	assert.Equal(t, OriginSyntheticHelper, rn.Origin)

	require.Len(t, tb.Issues, 1)
	issue := tb.Issues[0]
	assert.Equal(t, CodeNameCollision, issue.Code)
	assert.Equal(t, []string{"shape.json::rect", "shape_rect.json"}, issue.Related)
	assert.Equal(t, "shape.json", issue.Path)
	assert.Contains(t, issue.Message, `"ShapeRect"`)
}

func TestResolveSyntheticFollowsRenamedParent(t *testing.T) {
	res := classifications("a/shape.json", "b/shape.json")
	res.Classifications = append(res.Classifications, synthetic("a/shape.json::rect", "a/shape.json"))
	tb, err := Resolve(res)
	require.NoError(t, err)

	assert.Equal(t, "AShape", tb.Identifier("a/shape.json"))
	assert.Equal(t, "BShape", tb.Identifier("b/shape.json"))
	assert.Equal(t, "AShapeRect", tb.Identifier("a/shape.json::rect"))
}

func TestResolveSanitization(t *testing.T) {
	tests := []struct {
		name string
		id   string
		want string
	}{
		{"reserved word escaped", "type.json", "Type_"},
		{"reserved word escaped case-insensitively", "entities/Range.json", "Range_"},
		{"leading digit prefixed", "2fa.json", "T2fa"},
		{"symbols only becomes Type", "---.json", "Type"},
		{"snake stem", "login_status.json", "LoginStatus"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tb, err := Resolve(classifications(tt.id))
			require.NoError(t, err)
			assert.Equal(t, tt.want, tb.Identifier(tt.id))
		})
	}
}

func TestResolveStability(t *testing.T) {
	build := func() *classifier.Result {
		res := classifications(
			"entities/status.json",
			"legacy/status.json",
			"shape.json",
			"shape_rect.json",
			"entities/moment.json#Attachment",
			"entities/note.json#Attachment",
		)
		res.Classifications = append(res.Classifications, synthetic("shape.json::rect", "shape.json"))
		return res
	}

	first, err := Resolve(build())
	require.NoError(t, err)
	second, err := Resolve(build())
	require.NoError(t, err)

	assert.Equal(t, first.Names, second.Names)
	assert.Equal(t, first.Issues, second.Issues)
}

func TestResolveNilResult(t *testing.T) {
	tb, err := Resolve(nil)
	require.NoError(t, err)
	assert.Empty(t, tb.Names)
	assert.Empty(t, tb.Issues)
	assert.Equal(t, "", tb.Identifier("anything.json"))
}

func TestResolveFromCorpus(t *testing.T) {
	byID := map[string][]byte{
		"entities/pet.json": []byte(`{
			"type": "object",
			"properties": {
				"name": {"type": "string"},
				"owner": {"$ref": "entities/owner.json"}
			},
			"required": ["name"]
		}`),
		"entities/owner.json": []byte(`{"type": "object", "properties": {"id": {"type": "string"}}}`),
		"legacy/owner.json":   []byte(`{"type": "object", "properties": {"name": {"type": "string"}}}`),
	}
	corpus, err := loader.New().LoadDocuments(byID)
	require.NoError(t, err)
	res, err := resolver.Resolve(corpus)
	require.NoError(t, err)
	g, err := graph.Build(corpus, res)
	require.NoError(t, err)
	det, err := shapes.Detect(corpus)
	require.NoError(t, err)
	an, err := cycles.Analyze(g)
	require.NoError(t, err)
	result, err := classifier.Classify(g, det, an)
	require.NoError(t, err)

	tb, err := Resolve(result)
	require.NoError(t, err)

	assert.Equal(t, "Pet", tb.Identifier("entities/pet.json"))
	assert.Equal(t, "EntitiesOwner", tb.Identifier("entities/owner.json"))
	assert.Equal(t, "LegacyOwner", tb.Identifier("legacy/owner.json"))
	require.Len(t, tb.Issues, 1)
	assert.Equal(t, CodeNameCollision, tb.Issues[0].Code)
}

func TestOriginString(t *testing.T) {
	tests := []struct {
		origin Origin
		want   string
	}{
		{OriginDirectFromSchema, "direct_from_schema"},
		{OriginSyntheticHelper, "synthetic_helper"},
		{OriginDisambiguated, "disambiguated"},
		{Origin(99), "unknown"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.origin.String())
	}
}
