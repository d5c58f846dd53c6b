package walker

import (
	"context"

	"github.com/erraggy/schemagraph/cycles"
)

// WalkContext provides contextual information about the current node being
// visited. It follows the http.Request pattern for context access.
type WalkContext struct {
	// SchemaID is the canonical ID of the schema in scope.
	// Empty for group visits and for diagnostics not tied to a schema.
	// Example: "entities/pet.json", "shape.json::rect"
	SchemaID string

	// Identifier is the resolved identifier of the schema in scope.
	// Empty when the schema has no entry in the name table.
	// Example: "Pet", "ShapeRect"
	Identifier string

	// Group is the strongly connected group in scope.
	// The zero value during diagnostic visits.
	Group cycles.SccGroup

	ctx context.Context
}

// Context returns the context.Context for cancellation and deadline propagation.
// Returns context.Background() if no context was set.
func (wc *WalkContext) Context() context.Context {
	if wc.ctx == nil {
		return context.Background()
	}
	return wc.ctx
}

// WithContext returns a shallow copy of WalkContext with the new context.
func (wc *WalkContext) WithContext(ctx context.Context) *WalkContext {
	wc2 := *wc
	wc2.ctx = ctx
	return &wc2
}

// InGroupScope returns true if currently walking within a strongly connected
// group.
func (wc *WalkContext) InGroupScope() bool {
	return wc.Group.Members != nil
}

// InCycle returns true if the group in scope contains a cycle, broken or not.
func (wc *WalkContext) InCycle() bool {
	return wc.InGroupScope() && wc.Group.Cyclic()
}

// walkState tracks scope as the walk descends through the result.
// This is internal to the walker and used to build WalkContext instances.
type walkState struct {
	group      cycles.SccGroup
	schemaID   string
	identifier string
	ctx        context.Context
}

// buildContext creates a WalkContext from the current walk state.
func (s *walkState) buildContext() *WalkContext {
	return &WalkContext{
		SchemaID:   s.schemaID,
		Identifier: s.identifier,
		Group:      s.group,
		ctx:        s.ctx,
	}
}
