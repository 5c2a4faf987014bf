// Package dag implements a generic, pointer-stable dependency graph: an
// arena of nodes and edges addressed by stable integer ids. It is
// polymorphic in the node and edge payload type via Go interfaces rather
// than RTTI-style downcasts — callers define their own node/edge kinds and
// filter adjacency lists with a Kind discriminant.
package dag

import "math"

// NodeID is a 32-bit opaque identifier, unique within one Graph instance,
// monotonically assigned starting at 0. NoNode denotes "not found".
type NodeID uint32

// NoNode is the sentinel NodeID returned when a lookup misses.
const NoNode NodeID = math.MaxUint32

// Node is the interface every graph node payload must satisfy. SetID is
// called exactly once, by Graph.CreateNode, at allocation time.
type Node interface {
	ID() NodeID
	SetID(id NodeID)
}

// Edge is the interface every graph edge payload must satisfy. SetEndpoints
// is called exactly once, by Graph.Link.
type Edge interface {
	From() NodeID
	To() NodeID
	SetEndpoints(from, to NodeID)
}

// nodeEntry pairs a node payload with its ordered adjacency lists. Edges are
// stored by value in Graph.edges and referenced here by index so that
// filtering by concrete edge kind never requires a second allocation.
type nodeEntry struct {
	node    Node
	inEdges  []int
	outEdges []int
}

// Graph is an arena of nodes and edges addressed by stable ids. It is not
// safe for concurrent mutation — the render thread owns it for exactly one
// frame (§5 of the spec this package backs).
type Graph struct {
	nodes []nodeEntry
	edges []Edge
}

// New returns an empty Graph.
func New() *Graph {
	return &Graph{}
}

// CreateNode allocates the next NodeID, assigns it to n via SetID, and
// stores n in the arena. The returned id is stable for the Graph's lifetime.
func (g *Graph) CreateNode(n Node) NodeID {
	id := NodeID(len(g.nodes))
	n.SetID(id)
	g.nodes = append(g.nodes, nodeEntry{node: n})
	return id
}

// GetNode returns the node stored at id, or nil if id is out of range or
// NoNode. Callers treat a nil return as the sole soft-failure path (§4.1).
func (g *Graph) GetNode(id NodeID) Node {
	if id == NoNode || int(id) >= len(g.nodes) {
		return nil
	}
	return g.nodes[id].node
}

// Link sets e's endpoints to (from, to), stores e in the arena, and appends
// it to both endpoints' adjacency lists in insertion order. Linking with an
// out-of-range endpoint is a programming error and panics rather than
// silently dropping the edge — unlike GetNode misses, this is never a path
// reachable from untrusted name lookups.
func (g *Graph) Link(from, to NodeID, e Edge) {
	if int(from) >= len(g.nodes) || int(to) >= len(g.nodes) {
		panic("dag: Link endpoint out of range")
	}
	e.SetEndpoints(from, to)
	idx := len(g.edges)
	g.edges = append(g.edges, e)
	g.nodes[from].outEdges = append(g.nodes[from].outEdges, idx)
	g.nodes[to].inEdges = append(g.nodes[to].inEdges, idx)
}

// OutEdges returns every edge whose source is id, in insertion order.
func (g *Graph) OutEdges(id NodeID) []Edge {
	if id == NoNode || int(id) >= len(g.nodes) {
		return nil
	}
	entry := g.nodes[id]
	out := make([]Edge, len(entry.outEdges))
	for i, idx := range entry.outEdges {
		out[i] = g.edges[idx]
	}
	return out
}

// InEdges returns every edge whose target is id, in insertion order.
func (g *Graph) InEdges(id NodeID) []Edge {
	if id == NoNode || int(id) >= len(g.nodes) {
		return nil
	}
	entry := g.nodes[id]
	out := make([]Edge, len(entry.inEdges))
	for i, idx := range entry.inEdges {
		out[i] = g.edges[idx]
	}
	return out
}

// AllEdgesOn returns every edge (in or out) touching id, in the order
// in-edges then out-edges were declared. Used by previous-state and
// last-use computation (§4.4.1, §4.4.2), which must consider both
// directions.
func (g *Graph) AllEdgesOn(id NodeID) []Edge {
	in := g.InEdges(id)
	out := g.OutEdges(id)
	all := make([]Edge, 0, len(in)+len(out))
	all = append(all, in...)
	all = append(all, out...)
	return all
}

// NodeCount returns the number of nodes allocated in this graph.
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// Nodes returns every node in the graph, ordered by ascending NodeID.
func (g *Graph) Nodes() []Node {
	out := make([]Node, len(g.nodes))
	for i := range g.nodes {
		out[i] = g.nodes[i].node
	}
	return out
}

// FilterEdges returns the subset of edges for which keep returns true. This
// is the replacement for RTTI-style downcasts (§9): callers type-switch
// inside keep (or inside a subsequent pass over the result) on their
// concrete edge kind.
func FilterEdges(edges []Edge, keep func(Edge) bool) []Edge {
	out := make([]Edge, 0, len(edges))
	for _, e := range edges {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}
