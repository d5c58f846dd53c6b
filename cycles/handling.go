package cycles

// HandlingKind identifies the cycle-breaking decision made for a group.
type HandlingKind int

const (
	// HandlingAcyclic marks a singleton group with no self-loop. Nothing to
	// break; the schema emits by value.
	HandlingAcyclic HandlingKind = iota
	// HandlingBreakViaIndirection marks a cyclic group broken by deferring
	// one edge behind a heap indirection.
	HandlingBreakViaIndirection
	// HandlingBreakViaOptional marks a cyclic group broken at a field edge
	// whose field is already optional, so optionality alone defers it.
	HandlingBreakViaOptional
	// HandlingUnresolvable marks a cyclic group no single eligible cut can
	// break. The members are reported and degraded rather than emitted.
	HandlingUnresolvable
)

// String returns the snake_case label for the handling kind.
func (k HandlingKind) String() string {
	switch k {
	case HandlingAcyclic:
		return "acyclic"
	case HandlingBreakViaIndirection:
		return "break_via_indirection"
	case HandlingBreakViaOptional:
		return "break_via_optional"
	case HandlingUnresolvable:
		return "unresolvable"
	default:
		return "unknown"
	}
}

// CycleHandling is the per-group cycle-breaking decision: what to do, and at
// which edge when the decision is one of the break kinds.
type CycleHandling struct {
	// Kind is the decision made for the group.
	Kind HandlingKind
	// Edge is the edge severed from the ownership subgraph. Set only for the
	// break kinds; nil for acyclic and unresolvable groups.
	Edge *Edge
}

// Broken reports whether the handling severed an edge.
func (h CycleHandling) Broken() bool {
	return h.Edge != nil
}

// String renders the decision for display, including the broken edge when
// one was chosen.
func (h CycleHandling) String() string {
	if h.Edge == nil {
		return h.Kind.String()
	}
	return h.Kind.String() + " at " + h.Edge.String()
}
