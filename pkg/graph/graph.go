// Package graph holds the in-memory node-link graph that the rest of the
// application explores. The graph is immutable for the duration of a session:
// it is built once from a Document and only read afterwards, so lookups and
// adjacency queries need no synchronization.
package graph

import (
	"fmt"
	"sort"
)

// NodeAttrs are the base display attributes of a node.
type NodeAttrs struct {
	Label string
	Color string
	X, Y  float64
	Size  float64
	Notes string
}

// EdgeAttrs are the base display attributes of an edge.
type EdgeAttrs struct {
	Color string
	Size  float64
}

type edge struct {
	source string
	target string
	attrs  EdgeAttrs
}

// Graph is a read-only node-link graph with precomputed adjacency.
// Edges are stored undirected for neighborhood purposes: Neighbors(n)
// contains every node sharing an edge with n regardless of direction.
type Graph struct {
	nodeOrder []string
	edgeOrder []string
	nodes     map[string]NodeAttrs
	edges     map[string]edge
	adjacency map[string]map[string]struct{}
}

// New builds a Graph from a Document. Every edge endpoint must name an
// existing node; a dangling endpoint is a data error, not something to
// silently drop, because downstream reducers rely on the invariant.
func New(doc Document) (*Graph, error) {
	g := &Graph{
		nodeOrder: make([]string, 0, len(doc.Nodes)),
		edgeOrder: make([]string, 0, len(doc.Edges)),
		nodes:     make(map[string]NodeAttrs, len(doc.Nodes)),
		edges:     make(map[string]edge, len(doc.Edges)),
		adjacency: make(map[string]map[string]struct{}, len(doc.Nodes)),
	}

	for _, n := range doc.Nodes {
		if n.ID == "" {
			return nil, fmt.Errorf("node with empty id")
		}
		if _, dup := g.nodes[n.ID]; dup {
			return nil, fmt.Errorf("duplicate node id %q", n.ID)
		}
		g.nodes[n.ID] = NodeAttrs{
			Label: n.Label,
			Color: n.Color,
			X:     n.X,
			Y:     n.Y,
			Size:  n.Size,
			Notes: n.Notes,
		}
		g.nodeOrder = append(g.nodeOrder, n.ID)
		g.adjacency[n.ID] = make(map[string]struct{})
	}

	for i, e := range doc.Edges {
		id := e.ID
		if id == "" {
			id = fmt.Sprintf("e%d", i)
		}
		if _, dup := g.edges[id]; dup {
			return nil, fmt.Errorf("duplicate edge id %q", id)
		}
		if _, ok := g.nodes[e.Source]; !ok {
			return nil, fmt.Errorf("edge %q: unknown source node %q", id, e.Source)
		}
		if _, ok := g.nodes[e.Target]; !ok {
			return nil, fmt.Errorf("edge %q: unknown target node %q", id, e.Target)
		}
		g.edges[id] = edge{
			source: e.Source,
			target: e.Target,
			attrs:  EdgeAttrs{Color: e.Color, Size: e.Size},
		}
		g.edgeOrder = append(g.edgeOrder, id)
		if e.Source != e.Target {
			g.adjacency[e.Source][e.Target] = struct{}{}
			g.adjacency[e.Target][e.Source] = struct{}{}
		}
	}

	return g, nil
}

// Nodes returns all node ids in document order.
func (g *Graph) Nodes() []string {
	return g.nodeOrder
}

// Edges returns all edge ids in document order.
func (g *Graph) Edges() []string {
	return g.edgeOrder
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodeOrder) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edgeOrder) }

// HasNode reports whether the node exists.
func (g *Graph) HasNode(id string) bool {
	_, ok := g.nodes[id]
	return ok
}

// NodeAttrs returns the base display attributes of a node.
func (g *Graph) NodeAttrs(id string) (NodeAttrs, bool) {
	a, ok := g.nodes[id]
	return a, ok
}

// Label returns the node's label, or "" when the node does not exist.
func (g *Graph) Label(id string) (string, bool) {
	a, ok := g.nodes[id]
	return a.Label, ok
}

// Color returns the node's base color, or "" when the node does not exist.
func (g *Graph) Color(id string) (string, bool) {
	a, ok := g.nodes[id]
	return a.Color, ok
}

// EdgeAttrs returns the base display attributes of an edge.
func (g *Graph) EdgeAttrs(id string) (EdgeAttrs, bool) {
	e, ok := g.edges[id]
	return e.attrs, ok
}

// Neighbors returns the set of nodes directly adjacent to id. The returned
// map is shared with the graph and must not be mutated. Returns nil for an
// unknown node.
func (g *Graph) Neighbors(id string) map[string]struct{} {
	return g.adjacency[id]
}

// HasExtremity reports whether nodeID is either endpoint of edgeID.
// Unknown edges report false.
func (g *Graph) HasExtremity(edgeID, nodeID string) bool {
	e, ok := g.edges[edgeID]
	if !ok {
		return false
	}
	return e.source == nodeID || e.target == nodeID
}

// Source returns the source node of an edge.
func (g *Graph) Source(edgeID string) (string, bool) {
	e, ok := g.edges[edgeID]
	return e.source, ok
}

// Target returns the target node of an edge.
func (g *Graph) Target(edgeID string) (string, bool) {
	e, ok := g.edges[edgeID]
	return e.target, ok
}

// Labels returns every node label, sorted. The UI derives its autocomplete
// candidate list from this once at session start.
func (g *Graph) Labels() []string {
	out := make([]string, 0, len(g.nodes))
	for _, id := range g.nodeOrder {
		out = append(out, g.nodes[id].Label)
	}
	sort.Strings(out)
	return out
}
