package walker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/schemagraph/classifier"
)

func TestCollectNodes(t *testing.T) {
	result := analyze(t, testDocs())

	collector, err := CollectNodes(result)
	require.NoError(t, err)

	var ids []string
	for _, info := range collector.All {
		ids = append(ids, info.Node.ID)
	}
	assert.Equal(t, result.Order, ids)

	pet, ok := collector.ByID["entities/pet.json"]
	require.True(t, ok)
	assert.Equal(t, "Pet", pet.Identifier)
	assert.False(t, pet.InCycle)

	a, ok := collector.ByIdentifier["ANode"]
	require.True(t, ok)
	assert.Equal(t, "a/node.json", a.Node.ID)
	assert.True(t, a.InCycle)

	var cyclic []string
	for _, info := range collector.Cyclic {
		cyclic = append(cyclic, info.Node.ID)
	}
	assert.Equal(t, []string{"a/node.json", "b/node.json"}, cyclic)

	owner := collector.ByID["entities/owner.json"]
	require.NotNil(t, owner)
	assert.Less(t, owner.GroupOrder, pet.GroupOrder)
}

func TestCollectNodesNilResult(t *testing.T) {
	_, err := CollectNodes(nil)
	require.Error(t, err)
}

func TestCollectClassifications(t *testing.T) {
	result := analyze(t, unionDocs())

	collector, err := CollectClassifications(result)
	require.NoError(t, err)

	require.Len(t, collector.All, 2)
	assert.Equal(t, "shape.json", collector.All[0].Classification.ID)
	assert.Equal(t, "shape.json::rect", collector.All[1].Classification.ID)

	require.Len(t, collector.Synthetics, 1)
	assert.Equal(t, "ShapeRect", collector.Synthetics[0].Identifier)

	unions := collector.ByKind[classifier.KindDiscriminatedUnion]
	require.Len(t, unions, 1)
	assert.Equal(t, "shape.json", unions[0].Classification.ID)

	structs := collector.ByKind[classifier.KindStruct]
	require.Len(t, structs, 1)
	assert.True(t, structs[0].Classification.Synthetic)

	rect, ok := collector.ByID["shape.json::rect"]
	require.True(t, ok)
	assert.Equal(t, "ShapeRect", rect.Identifier)
}

func TestCollectClassificationsNilResult(t *testing.T) {
	_, err := CollectClassifications(nil)
	require.Error(t, err)
}
