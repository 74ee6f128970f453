package explore_test

import (
	"strings"
	"testing"
	"time"

	"github.com/nodelens/nodelens/pkg/graph"
)

// fakeRenderer records the calls the controller makes so tests can assert on
// refresh and camera behavior without a real render engine.
type fakeRenderer struct {
	refreshes   int
	animations  []animation
	positions   map[string][2]float64
	missingNode bool // when true, NodeDisplayPosition reports not-found
}

type animation struct {
	x, y float64
	d    time.Duration
}

func newFakeRenderer() *fakeRenderer {
	return &fakeRenderer{positions: make(map[string][2]float64)}
}

func (r *fakeRenderer) Refresh() { r.refreshes++ }

func (r *fakeRenderer) NodeDisplayPosition(id string) (float64, float64, bool) {
	if r.missingNode {
		return 0, 0, false
	}
	p, ok := r.positions[id]
	if !ok {
		return 0, 0, false
	}
	return p[0], p[1], true
}

func (r *fakeRenderer) AnimateTo(x, y float64, d time.Duration) {
	r.animations = append(r.animations, animation{x: x, y: y, d: d})
}

// socialGraph builds the scenario graph shared across the behavioral tests:
// Alice and Alicia share the "Ali" prefix, Bob is uniquely matchable, and the
// topology gives Alice a neighborhood to hover.
//
//	Alice -- Bob -- Carol
//	Alice -- Carol
//	Alicia -- Dan
func socialGraph() *graph.Graph {
	g, err := graph.New(graph.Document{
		Nodes: []graph.NodeDoc{
			{ID: "A", Label: "Alice", Color: "#e22", X: 0, Y: 0},
			{ID: "B", Label: "Bob", Color: "#2e2", X: 1, Y: 0},
			{ID: "C", Label: "Carol", Color: "#22e", X: 1, Y: 1},
			{ID: "D", Label: "Dan", Color: "#ee2", X: 2, Y: 1},
			{ID: "E", Label: "Alicia", Color: "#e2e", X: 2, Y: 0},
		},
		Edges: []graph.EdgeDoc{
			{ID: "ab", Source: "A", Target: "B"},
			{ID: "bc", Source: "B", Target: "C"},
			{ID: "ac", Source: "A", Target: "C"},
			{ID: "ed", Source: "E", Target: "D"},
		},
	})
	if err != nil {
		panic(err)
	}
	return g
}

// mustGraph builds a small graph from "id:Label" node specs and endpoint
// pairs, failing the test on invalid input.
func mustGraph(t *testing.T, nodes []string, edges [][2]string) *graph.Graph {
	t.Helper()
	doc := graph.Document{}
	for _, spec := range nodes {
		id, label, _ := strings.Cut(spec, ":")
		doc.Nodes = append(doc.Nodes, graph.NodeDoc{ID: id, Label: label, Color: "#888"})
	}
	for _, e := range edges {
		doc.Edges = append(doc.Edges, graph.EdgeDoc{Source: e[0], Target: e[1]})
	}
	g, err := graph.New(doc)
	if err != nil {
		t.Fatalf("building graph: %v", err)
	}
	return g
}
