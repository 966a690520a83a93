package domain

import (
	"iter"

	"go.trai.ch/zerr"
)

// Graph is a directed dependency graph over node identifiers. Nodes are
// added in discovery order and Validate produces a deterministic
// dependencies-first execution order, so repeated runs over unchanged
// configuration flatten to the same sequence.
type Graph struct {
	nodes          map[InternedString][]InternedString
	order          []InternedString
	executionOrder []InternedString
}

// NewGraph creates a new empty Graph.
func NewGraph() *Graph {
	return &Graph{nodes: make(map[InternedString][]InternedString)}
}

// AddNode adds a node with its predecessor list.
// It returns an error if the node already exists.
func (g *Graph) AddNode(id InternedString, preds []InternedString) error {
	if _, exists := g.nodes[id]; exists {
		return zerr.With(ErrNodeAlreadyExists, "node", id.String())
	}
	g.nodes[id] = preds
	g.order = append(g.order, id)
	return nil
}

// Has reports whether the node is present.
func (g *Graph) Has(id InternedString) bool {
	_, ok := g.nodes[id]
	return ok
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Validate checks for cycles with a depth-first topological sort and
// populates the execution order. Nodes are visited in insertion order, which
// makes the flattened sequence stable by first discovery.
func (g *Graph) Validate() error {
	const (
		unvisited = 0
		visiting  = 1
		done      = 2
	)

	g.executionOrder = make([]InternedString, 0, len(g.nodes))
	state := make(map[InternedString]int, len(g.nodes))
	var path []InternedString

	var visit func(u InternedString) error
	visit = func(u InternedString) error {
		state[u] = visiting
		path = append(path, u)

		for _, pred := range g.nodes[u] {
			if state[pred] == visiting {
				return g.cycleError(path, pred)
			}
			if state[pred] == unvisited {
				if err := visit(pred); err != nil {
					return err
				}
			}
		}

		state[u] = done
		path = path[:len(path)-1]
		g.executionOrder = append(g.executionOrder, u)
		return nil
	}

	for _, id := range g.order {
		if state[id] == unvisited {
			if err := visit(id); err != nil {
				return err
			}
		}
	}
	return nil
}

// cycleError names the identifiers on the cycle.
func (g *Graph) cycleError(path []InternedString, pred InternedString) error {
	start := 0
	for i, node := range path {
		if node == pred {
			start = i
			break
		}
	}
	cycle := ""
	for i := start; i < len(path); i++ {
		cycle += path[i].String() + " -> "
	}
	cycle += pred.String()
	return zerr.With(ErrCircularDependency, "cycle", cycle)
}

// Walk yields node identifiers in execution order, predecessors first.
// It assumes Validate has been called and returned nil.
func (g *Graph) Walk() iter.Seq[InternedString] {
	return func(yield func(InternedString) bool) {
		for _, id := range g.executionOrder {
			if !yield(id) {
				return
			}
		}
	}
}

// Flatten returns the execution order as a slice.
func (g *Graph) Flatten() []InternedString {
	out := make([]InternedString, len(g.executionOrder))
	copy(out, g.executionOrder)
	return out
}
