package cycles

import (
	"sort"
)

// sccFrame is one suspended visit in the iterative Tarjan walk.
type sccFrame struct {
	id   string
	succ []string
	next int
}

// stronglyConnected computes the strongly connected components of the
// subgraph described by adj, visiting roots in the order given by ids so the
// result is independent of map iteration. Members of each component come
// back sorted; the components themselves are unordered until
// [orderComponents] places them.
//
// The walk keeps its own frame stack instead of recursing, so corpora with
// very long reference chains cannot overflow the goroutine stack.
func stronglyConnected(ids []string, adj map[string][]string) [][]string {
	index := make(map[string]int, len(ids))
	lowlink := make(map[string]int, len(ids))
	onStack := make(map[string]bool, len(ids))
	var stack []string
	var comps [][]string
	counter := 0

	visit := func(id string) sccFrame {
		index[id] = counter
		lowlink[id] = counter
		counter++
		stack = append(stack, id)
		onStack[id] = true
		return sccFrame{id: id, succ: adj[id]}
	}

	for _, root := range ids {
		if _, seen := index[root]; seen {
			continue
		}
		frames := []sccFrame{visit(root)}

		for len(frames) > 0 {
			f := &frames[len(frames)-1]
			if f.next < len(f.succ) {
				w := f.succ[f.next]
				f.next++
				if _, seen := index[w]; !seen {
					frames = append(frames, visit(w))
				} else if onStack[w] && index[w] < lowlink[f.id] {
					lowlink[f.id] = index[w]
				}
				continue
			}

			frames = frames[:len(frames)-1]
			if lowlink[f.id] == index[f.id] {
				var comp []string
				for {
					top := stack[len(stack)-1]
					stack = stack[:len(stack)-1]
					onStack[top] = false
					comp = append(comp, top)
					if top == f.id {
						break
					}
				}
				sort.Strings(comp)
				comps = append(comps, comp)
			}
			if len(frames) > 0 {
				parent := &frames[len(frames)-1]
				if lowlink[f.id] < lowlink[parent.id] {
					lowlink[parent.id] = lowlink[f.id]
				}
			}
		}
	}
	return comps
}

// orderComponents arranges components in a topological order of the
// condensation graph, dependencies first: a component only references
// components placed before it. Among components whose dependencies are all
// placed, the one whose smallest member sorts first goes next, so the order
// is total and deterministic.
//
// The condensation of a component decomposition is always acyclic, so every
// component gets a position.
func orderComponents(comps [][]string, adj map[string][]string) [][]string {
	compOf := make(map[string]int, len(comps))
	for i, comp := range comps {
		for _, id := range comp {
			compOf[id] = i
		}
	}

	// Condensation edges, deduplicated: outdeg counts the distinct
	// components each one depends on.
	outdeg := make([]int, len(comps))
	dependents := make([][]int, len(comps))
	seen := make(map[[2]int]struct{})
	for from, targets := range adj {
		cf := compOf[from]
		for _, to := range targets {
			ct, ok := compOf[to]
			if !ok || ct == cf {
				continue
			}
			key := [2]int{cf, ct}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			outdeg[cf]++
			dependents[ct] = append(dependents[ct], cf)
		}
	}

	keyOf := func(i int) string { return comps[i][0] }
	byKey := make(map[string]int, len(comps))
	var ready []string
	for i := range comps {
		byKey[keyOf(i)] = i
		if outdeg[i] == 0 {
			ready = append(ready, keyOf(i))
		}
	}
	sort.Strings(ready)

	ordered := make([][]string, 0, len(comps))
	for len(ready) > 0 {
		i := byKey[ready[0]]
		ready = ready[1:]
		ordered = append(ordered, comps[i])

		var released []string
		for _, dep := range dependents[i] {
			outdeg[dep]--
			if outdeg[dep] == 0 {
				released = append(released, keyOf(dep))
			}
		}
		if len(released) > 0 {
			sort.Strings(released)
			ready = mergeSorted(ready, released)
		}
	}
	return ordered
}

// mergeSorted merges two ascending string slices into one.
func mergeSorted(a, b []string) []string {
	merged := make([]string, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if a[i] <= b[j] {
			merged = append(merged, a[i])
			i++
		} else {
			merged = append(merged, b[j])
			j++
		}
	}
	merged = append(merged, a[i:]...)
	merged = append(merged, b[j:]...)
	return merged
}
