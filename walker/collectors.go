package walker

import (
	"github.com/erraggy/schemagraph/classifier"
	"github.com/erraggy/schemagraph/graph"
	"github.com/erraggy/schemagraph/pipeline"
)

// NodeInfo contains information about a collected schema node.
type NodeInfo struct {
	// Node is the collected node.
	Node *graph.Node

	// Identifier is the resolved identifier for the node.
	Identifier string

	// GroupOrder is the condensation position of the node's group.
	GroupOrder int

	// InCycle is true when the node's group contains a cycle.
	InCycle bool
}

// NodeCollector holds schema nodes collected during a walk.
type NodeCollector struct {
	// All contains all nodes in emission order.
	All []*NodeInfo

	// Cyclic contains only the nodes whose group contains a cycle.
	Cyclic []*NodeInfo

	// ByID provides lookup by SchemaID.
	ByID map[string]*NodeInfo

	// ByIdentifier provides lookup by resolved identifier.
	// Identifiers are unique after name resolution, so every named node
	// has exactly one entry.
	ByIdentifier map[string]*NodeInfo
}

// CollectNodes walks the result and collects all schema nodes.
// It returns a NodeCollector containing the nodes organized by various criteria.
func CollectNodes(result *pipeline.Result) (*NodeCollector, error) {
	collector := &NodeCollector{
		All:          make([]*NodeInfo, 0),
		Cyclic:       make([]*NodeInfo, 0),
		ByID:         make(map[string]*NodeInfo),
		ByIdentifier: make(map[string]*NodeInfo),
	}

	err := Walk(result,
		WithNodeHandler(func(wc *WalkContext, node *graph.Node) Action {
			info := &NodeInfo{
				Node:       node,
				Identifier: wc.Identifier,
				GroupOrder: wc.Group.Order,
				InCycle:    wc.InCycle(),
			}

			collector.All = append(collector.All, info)
			collector.ByID[node.ID] = info
			if wc.Identifier != "" {
				collector.ByIdentifier[wc.Identifier] = info
			}
			if info.InCycle {
				collector.Cyclic = append(collector.Cyclic, info)
			}

			return Continue
		}),
	)

	if err != nil {
		return nil, err
	}

	return collector, nil
}

// ClassificationInfo contains information about a collected classification.
type ClassificationInfo struct {
	// Classification is the collected classification.
	Classification *classifier.Classification

	// Identifier is the resolved identifier for the classified schema.
	Identifier string
}

// ClassificationCollector holds classifications collected during a walk.
type ClassificationCollector struct {
	// All contains all classifications in emission order, synthetic
	// helpers included.
	All []*ClassificationInfo

	// Synthetics contains only the synthetic helper classifications.
	Synthetics []*ClassificationInfo

	// ByID provides lookup by SchemaID.
	ByID map[string]*ClassificationInfo

	// ByKind groups classifications by target type family.
	ByKind map[classifier.TypeKind][]*ClassificationInfo
}

// CollectClassifications walks the result and collects all classifications.
// It returns a ClassificationCollector containing all classifications
// organized by various criteria.
func CollectClassifications(result *pipeline.Result) (*ClassificationCollector, error) {
	collector := &ClassificationCollector{
		All:        make([]*ClassificationInfo, 0),
		Synthetics: make([]*ClassificationInfo, 0),
		ByID:       make(map[string]*ClassificationInfo),
		ByKind:     make(map[classifier.TypeKind][]*ClassificationInfo),
	}

	err := Walk(result,
		WithClassificationHandler(func(wc *WalkContext, cl *classifier.Classification) Action {
			info := &ClassificationInfo{
				Classification: cl,
				Identifier:     wc.Identifier,
			}

			collector.All = append(collector.All, info)
			collector.ByID[cl.ID] = info
			collector.ByKind[cl.Kind] = append(collector.ByKind[cl.Kind], info)

			if cl.Synthetic {
				collector.Synthetics = append(collector.Synthetics, info)
			}

			return Continue
		}),
	)

	if err != nil {
		return nil, err
	}

	return collector, nil
}
