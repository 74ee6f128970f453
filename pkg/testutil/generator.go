// Package testutil provides deterministic graph document generators for
// tests and benchmarks. All generators produce the same output for the same
// seed so failures reproduce.
package testutil

import (
	"fmt"
	"math/rand"

	"github.com/nodelens/nodelens/pkg/graph"
)

// palette holds the node colors generators cycle through.
var palette = []string{"#e25555", "#55e255", "#5555e2", "#e2e255", "#e255e2", "#55e2e2"}

// Generator creates graph documents with various topologies.
type Generator struct {
	rng *rand.Rand
}

// New creates a Generator. Seed 0 still yields a fixed sequence; generators
// must never depend on wall-clock time.
func New(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

func node(i int) graph.NodeDoc {
	return graph.NodeDoc{
		ID:    fmt.Sprintf("n%d", i),
		Label: fmt.Sprintf("Node %d", i),
		Color: palette[i%len(palette)],
	}
}

func edge(from, to int) graph.EdgeDoc {
	return graph.EdgeDoc{
		ID:     fmt.Sprintf("e%d-%d", from, to),
		Source: fmt.Sprintf("n%d", from),
		Target: fmt.Sprintf("n%d", to),
	}
}

// Chain returns a linear graph: n0 -> n1 -> ... -> n(n-1).
func (g *Generator) Chain(n int) graph.Document {
	doc := graph.Document{}
	for i := 0; i < n; i++ {
		doc.Nodes = append(doc.Nodes, node(i))
		if i > 0 {
			doc.Edges = append(doc.Edges, edge(i-1, i))
		}
	}
	return doc
}

// Star returns a hub-and-spoke graph: n0 connected to every other node.
func (g *Generator) Star(n int) graph.Document {
	doc := graph.Document{}
	for i := 0; i < n; i++ {
		doc.Nodes = append(doc.Nodes, node(i))
		if i > 0 {
			doc.Edges = append(doc.Edges, edge(0, i))
		}
	}
	return doc
}

// Ring returns a cycle: n0 -> n1 -> ... -> n(n-1) -> n0.
func (g *Generator) Ring(n int) graph.Document {
	doc := g.Chain(n)
	if n > 1 {
		doc.Edges = append(doc.Edges, edge(n-1, 0))
	}
	return doc
}

// Random returns a connected random graph: a spanning chain plus extra
// random edges. Self edges and duplicates are skipped, so the edge count is
// at most n-1+extra.
func (g *Generator) Random(n, extra int) graph.Document {
	doc := g.Chain(n)
	seen := make(map[[2]int]bool, extra)
	for i := 0; i < extra; i++ {
		from := g.rng.Intn(n)
		to := g.rng.Intn(n)
		if from == to || seen[[2]int{from, to}] {
			continue
		}
		seen[[2]int{from, to}] = true
		doc.Edges = append(doc.Edges, graph.EdgeDoc{
			ID:     fmt.Sprintf("x%d", i),
			Source: fmt.Sprintf("n%d", from),
			Target: fmt.Sprintf("n%d", to),
		})
	}
	return doc
}
