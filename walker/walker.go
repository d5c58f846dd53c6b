package walker

import (
	"context"
	"fmt"

	"github.com/erraggy/schemagraph/classifier"
	"github.com/erraggy/schemagraph/cycles"
	"github.com/erraggy/schemagraph/graph"
	"github.com/erraggy/schemagraph/pipeline"
)

// Action controls the walker's behavior after visiting a node.
type Action int

const (
	// Continue continues walking normally, visiting children and siblings.
	Continue Action = iota

	// SkipChildren skips all children of the current node but continues with siblings.
	SkipChildren

	// Stop stops the walk immediately. No more nodes will be visited.
	Stop
)

// IsValid returns true if the action is one of the defined constants.
func (a Action) IsValid() bool {
	return a >= Continue && a <= Stop
}

// String returns a string representation of the action.
func (a Action) String() string {
	switch a {
	case Continue:
		return "Continue"
	case SkipChildren:
		return "SkipChildren"
	case Stop:
		return "Stop"
	default:
		return fmt.Sprintf("Action(%d)", a)
	}
}

// Handler types for each result node kind.
// Each handler receives a WalkContext and the node, and returns an Action.

// GroupHandler is called for each strongly connected group, in condensation
// order. SkipChildren skips the group's member nodes and their
// classifications.
type GroupHandler func(wc *WalkContext, group cycles.SccGroup) Action

// NodeHandler is called for each schema node, in emission order.
// SkipChildren skips the node's outgoing edges and its classification.
type NodeHandler func(wc *WalkContext, node *graph.Node) Action

// EdgeHandler is called for each outgoing edge of the node in scope, in
// sorted order.
type EdgeHandler func(wc *WalkContext, edge graph.Edge) Action

// ClassificationHandler is called for each classification, synthetic helpers
// included. SkipChildren skips the synthetic helpers a classification
// introduced.
type ClassificationHandler func(wc *WalkContext, cl *classifier.Classification) Action

// DiagnosticHandler is called for each diagnostic after every group has been
// visited, in stage order.
type DiagnosticHandler func(wc *WalkContext, issue pipeline.Issue) Action

// Walker traverses completed analysis results and calls handlers for each
// node kind.
type Walker struct {
	// Handlers
	onGroup          GroupHandler
	onNode           NodeHandler
	onEdge           EdgeHandler
	onClassification ClassificationHandler
	onDiagnostic     DiagnosticHandler

	// Input routing for WalkWithOptions
	result  *pipeline.Result
	dir     *string
	files   []string
	archive *string
	docs    map[string][]byte

	// Configuration
	userCtx context.Context

	// Internal state
	stopped bool
}

// New creates a new Walker.
func New() *Walker {
	return &Walker{}
}

// Option configures the Walker.
type Option func(*Walker) error

// applyOptions applies the given options to a Walker.
func applyOptions(w *Walker, opts []Option) error {
	for _, opt := range opts {
		if err := opt(w); err != nil {
			return err
		}
	}
	return nil
}

// WithGroupHandler sets the handler for strongly connected groups.
func WithGroupHandler(fn GroupHandler) Option {
	return func(w *Walker) error {
		w.onGroup = fn
		return nil
	}
}

// WithNodeHandler sets the handler for schema nodes.
func WithNodeHandler(fn NodeHandler) Option {
	return func(w *Walker) error {
		w.onNode = fn
		return nil
	}
}

// WithEdgeHandler sets the handler for outgoing edges.
func WithEdgeHandler(fn EdgeHandler) Option {
	return func(w *Walker) error {
		w.onEdge = fn
		return nil
	}
}

// WithClassificationHandler sets the handler for classifications.
func WithClassificationHandler(fn ClassificationHandler) Option {
	return func(w *Walker) error {
		w.onClassification = fn
		return nil
	}
}

// WithDiagnosticHandler sets the handler for diagnostics.
func WithDiagnosticHandler(fn DiagnosticHandler) Option {
	return func(w *Walker) error {
		w.onDiagnostic = fn
		return nil
	}
}

// Walk traverses the analysis result and calls registered handlers for each
// node. Groups visit in condensation order, member nodes in emission order,
// and diagnostics last.
func Walk(result *pipeline.Result, opts ...Option) error {
	if result == nil {
		return fmt.Errorf("walker: nil Result")
	}

	w := New()
	if err := applyOptions(w, opts); err != nil {
		return err
	}

	return w.walk(result)
}

// walk performs the actual traversal.
func (w *Walker) walk(result *pipeline.Result) error {
	w.stopped = false
	state := &walkState{ctx: w.userCtx}

	for _, group := range result.Groups {
		if w.stopped {
			return nil
		}
		w.walkGroup(result, group, state)
	}

	if w.stopped {
		return nil
	}
	w.walkDiagnostics(result, state)
	return nil
}

// walkGroup visits one strongly connected group and its member nodes.
func (w *Walker) walkGroup(result *pipeline.Result, group cycles.SccGroup, state *walkState) {
	state.group = group
	state.schemaID = ""
	state.identifier = ""

	if w.onGroup != nil {
		if !w.handleAction(w.onGroup(state.buildContext(), group)) {
			return
		}
	}

	for _, id := range group.Members {
		if w.stopped {
			return
		}
		node, ok := result.Graph.Node(id)
		if !ok {
			continue
		}
		w.walkNode(result, node, state)
	}
}

// walkNode visits one schema node, its outgoing edges, and its
// classification.
func (w *Walker) walkNode(result *pipeline.Result, node *graph.Node, state *walkState) {
	state.schemaID = node.ID
	state.identifier = result.Identifier(node.ID)

	if w.onNode != nil {
		if !w.handleAction(w.onNode(state.buildContext(), node)) {
			return
		}
	}

	if w.onEdge != nil {
		for _, edge := range result.Graph.EdgesFrom(node.ID) {
			if !w.handleAction(w.onEdge(state.buildContext(), edge)) {
				if w.stopped {
					return
				}
				// Edges have no children; SkipChildren moves to the next edge
			}
		}
	}

	if w.onClassification != nil {
		if cl, ok := result.Classification(node.ID); ok {
			w.walkClassification(result, cl, state)
		}
	}
}

// walkClassification visits one classification and the synthetic helpers it
// introduced.
func (w *Walker) walkClassification(result *pipeline.Result, cl *classifier.Classification, state *walkState) {
	state.schemaID = cl.ID
	state.identifier = result.Identifier(cl.ID)

	if w.onClassification != nil {
		if !w.handleAction(w.onClassification(state.buildContext(), cl)) {
			return
		}
	}

	for _, syn := range cl.Synthetics {
		if w.stopped {
			return
		}
		w.walkClassification(result, syn, state)
	}
}

// walkDiagnostics visits every aggregated issue in stage order.
func (w *Walker) walkDiagnostics(result *pipeline.Result, state *walkState) {
	if w.onDiagnostic == nil {
		return
	}

	state.group = cycles.SccGroup{}
	for _, iss := range result.Issues {
		state.schemaID = iss.SchemaID
		state.identifier = result.Identifier(iss.SchemaID)
		if !w.handleAction(w.onDiagnostic(state.buildContext(), iss)) {
			if w.stopped {
				return
			}
		}
	}
}

// handleAction processes the action returned by a handler.
// Returns true if walking should continue to children.
func (w *Walker) handleAction(action Action) bool {
	switch action {
	case Stop:
		w.stopped = true
		return false
	case SkipChildren:
		return false
	default:
		return true
	}
}
