package world

import (
	"bytes"
	"sort"
)

// Graph is a symmetric adjacency relation between placed entities. It is
// used for traversal and bookkeeping only, never for collision.
type Graph struct {
	adj map[NodeID]map[NodeID]struct{}
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{adj: make(map[NodeID]map[NodeID]struct{})}
}

// Link connects a and b. Linking a node to itself is ignored.
func (g *Graph) Link(a, b NodeID) {
	if a == b {
		return
	}
	g.add(a, b)
	g.add(b, a)
}

func (g *Graph) add(from, to NodeID) {
	set, ok := g.adj[from]
	if !ok {
		set = make(map[NodeID]struct{})
		g.adj[from] = set
	}
	set[to] = struct{}{}
}

// Unlink removes the edge between a and b, if any.
func (g *Graph) Unlink(a, b NodeID) {
	delete(g.adj[a], b)
	delete(g.adj[b], a)
}

// Linked returns the neighbours of n in a stable order.
func (g *Graph) Linked(n NodeID) []NodeID {
	set := g.adj[n]
	out := make([]NodeID, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool {
		return bytes.Compare(out[i][:], out[j][:]) < 0
	})
	return out
}

// IsLinked reports whether a and b are connected.
func (g *Graph) IsLinked(a, b NodeID) bool {
	_, ok := g.adj[a][b]
	return ok
}

// Degree returns the number of neighbours of n.
func (g *Graph) Degree(n NodeID) int {
	return len(g.adj[n])
}
