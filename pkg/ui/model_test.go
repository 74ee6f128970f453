package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nodelens/nodelens/pkg/config"
	"github.com/nodelens/nodelens/pkg/graph"
	"github.com/nodelens/nodelens/pkg/metrics"
)

func testGraph(t *testing.T) *graph.Graph {
	t.Helper()
	g, err := graph.New(graph.Document{
		Nodes: []graph.NodeDoc{
			{ID: "A", Label: "Alice", Color: "#e22", Notes: "first **node**"},
			{ID: "B", Label: "Bob", Color: "#2e2"},
			{ID: "C", Label: "Carol", Color: "#22e"},
		},
		Edges: []graph.EdgeDoc{
			{ID: "ab", Source: "A", Target: "B"},
			{ID: "bc", Source: "B", Target: "C"},
		},
	})
	if err != nil {
		t.Fatalf("building graph: %v", err)
	}
	return g
}

func newTestModel(t *testing.T) Model {
	t.Helper()
	m := NewModel(testGraph(t), config.DefaultConfig())
	m.width = 100
	m.height = 40
	return m
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	got, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return got
}

func TestCursorMovementHoversNodes(t *testing.T) {
	m := newTestModel(t)

	m = update(t, m, keyRunes("j"))
	st := m.controller.State()
	if st.HoveredNode != "B" {
		t.Errorf("cursor move should hover B, got %q", st.HoveredNode)
	}
	if st.HoveredNeighbors == nil {
		t.Error("hover should populate neighbors")
	}

	m = update(t, m, keyRunes("k"))
	if got := m.controller.State().HoveredNode; got != "A" {
		t.Errorf("moving back should hover A, got %q", got)
	}
}

func TestCursorClampsAtEdges(t *testing.T) {
	m := newTestModel(t)

	m = update(t, m, keyRunes("k"))
	if m.cursor != 0 {
		t.Errorf("cursor should clamp at 0, got %d", m.cursor)
	}
	for i := 0; i < 10; i++ {
		m = update(t, m, keyRunes("j"))
	}
	if m.cursor != 2 {
		t.Errorf("cursor should clamp at last node, got %d", m.cursor)
	}
}

func TestEnterPinsAndEscUnpins(t *testing.T) {
	m := newTestModel(t)

	m = update(t, m, keyRunes("j"))
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	st := m.controller.State()
	if !st.ClickMode || st.ClickedNode != "B" {
		t.Fatalf("enter should pin B, got %+v", st)
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	st = m.controller.State()
	if st.ClickMode {
		t.Error("esc should unpin")
	}
}

func TestSearchTypingUpdatesQuery(t *testing.T) {
	m := newTestModel(t)

	m = update(t, m, keyRunes("/"))
	if !m.searchInput.Focused() {
		t.Fatal("/ should focus the search input")
	}

	for _, r := range "Ali" {
		m = update(t, m, keyRunes(string(r)))
	}
	st := m.controller.State()
	if st.SearchQuery != "Ali" {
		t.Errorf("query = %q, want Ali", st.SearchQuery)
	}
	if st.Suggestions == nil || len(st.Suggestions) != 1 {
		t.Errorf("suggestions = %v", st.Suggestions)
	}

	view := m.View()
	if !strings.Contains(view, "Alice") {
		t.Error("suggestion labels should appear in the view")
	}
}

func TestSearchExactMatchSelectsAndPins(t *testing.T) {
	m := newTestModel(t)

	m = update(t, m, keyRunes("/"))
	for _, r := range "Bob" {
		m = update(t, m, keyRunes(string(r)))
	}
	st := m.controller.State()
	if st.SelectedNode != "B" {
		t.Errorf("exact query should select B, got %q", st.SelectedNode)
	}
	if !st.ClickMode || st.ClickedNode != "B" {
		t.Error("exact query should pin B")
	}
}

func TestSearchEscClearsEverything(t *testing.T) {
	m := newTestModel(t)

	m = update(t, m, keyRunes("/"))
	for _, r := range "Bob" {
		m = update(t, m, keyRunes(string(r)))
	}
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	st := m.controller.State()
	if st.SearchQuery != "" || st.SelectedNode != "" || st.Suggestions != nil || st.ClickMode {
		t.Errorf("esc in search should reset overlay state, got %+v", st)
	}
	if m.searchInput.Focused() {
		t.Error("esc should blur the search input")
	}
}

func TestSearchEnterKeepsQueryAndReturnsFocus(t *testing.T) {
	m := newTestModel(t)

	m = update(t, m, keyRunes("/"))
	for _, r := range "Car" {
		m = update(t, m, keyRunes(string(r)))
	}
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.searchInput.Focused() {
		t.Error("enter should unfocus the search input")
	}
	if got := m.controller.State().SearchQuery; got != "Car" {
		t.Errorf("query should survive unfocus, got %q", got)
	}
}

func TestViewShowsPinnedNeighborhood(t *testing.T) {
	m := newTestModel(t)

	m = update(t, m, keyRunes("j")) // hover B
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	view := m.View()
	if !strings.Contains(view, "pinned") {
		t.Error("detail pane should say the node is pinned")
	}
	// B's neighbors are Alice and Carol.
	if !strings.Contains(view, "Alice") || !strings.Contains(view, "Carol") {
		t.Error("detail pane should list neighbor labels")
	}
}

func TestViewDimsNonNeighborsWhileHovering(t *testing.T) {
	m := newTestModel(t)

	m = update(t, m, keyRunes("j")) // hover B; all nodes are B's neighborhood
	m = update(t, m, keyRunes("j")) // hover C; Alice is outside

	view := m.View()
	// Alice is dimmed: label blanked, row falls back to the id.
	if !strings.Contains(view, "A") {
		t.Error("dimmed node should still render its id")
	}
	if !strings.Contains(view, "Carol") || !strings.Contains(view, "Bob") {
		t.Error("hovered node and neighbors keep their labels")
	}
}

func TestGraphReloadSwapsGraph(t *testing.T) {
	m := newTestModel(t)

	g2, err := graph.New(graph.Document{
		Nodes: []graph.NodeDoc{{ID: "X", Label: "Xavier"}},
	})
	if err != nil {
		t.Fatal(err)
	}
	m = update(t, m, GraphReloadedMsg{Graph: g2, Scores: metrics.Compute(g2)})

	if m.graph.NodeCount() != 1 {
		t.Fatalf("reload should swap the graph, got %d nodes", m.graph.NodeCount())
	}
	if m.cursor != 0 {
		t.Errorf("cursor should reset when it falls off the new graph, got %d", m.cursor)
	}
	if !strings.Contains(m.View(), "Xavier") {
		t.Error("view should render the new graph")
	}
}

func TestSearchInputCarriesLabelCompletions(t *testing.T) {
	m := newTestModel(t)

	got := m.searchInput.AvailableSuggestions()
	want := []string{"Alice", "Bob", "Carol"}
	if len(got) != len(want) {
		t.Fatalf("completion candidates = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("completion candidates = %v, want %v", got, want)
		}
	}
	if !m.searchInput.ShowSuggestions {
		t.Error("inline completion should be enabled on the search input")
	}

	// A reload re-derives the candidate list from the new graph's labels.
	g2, err := graph.New(graph.Document{
		Nodes: []graph.NodeDoc{{ID: "X", Label: "Xavier"}},
	})
	if err != nil {
		t.Fatal(err)
	}
	m = update(t, m, GraphReloadedMsg{Graph: g2, Scores: metrics.Compute(g2)})

	got = m.searchInput.AvailableSuggestions()
	if len(got) != 1 || got[0] != "Xavier" {
		t.Errorf("candidates after reload = %v, want [Xavier]", got)
	}
}

func TestGraphReloadErrorKeepsOldGraph(t *testing.T) {
	m := newTestModel(t)
	before := m.graph

	m = update(t, m, GraphReloadedMsg{Err: errFake})
	if m.graph != before {
		t.Error("failed reload must keep the previous graph")
	}
	if !strings.Contains(m.View(), "reload failed") {
		t.Error("failed reload should surface in the status bar")
	}
}

var errFake = &fakeErr{}

type fakeErr struct{}

func (*fakeErr) Error() string { return "boom" }

func TestRenderInspectIncludesNotesAndMetrics(t *testing.T) {
	g := testGraph(t)
	scores := metrics.Compute(g)

	out, err := renderInspect(g, scores, "A", 80)
	if err != nil {
		t.Fatalf("renderInspect: %v", err)
	}
	if !strings.Contains(out, "Alice") {
		t.Error("inspect output should include the node label")
	}
	if !strings.Contains(out, "node") {
		t.Error("inspect output should include the notes body")
	}
	if !strings.Contains(out, "degree") {
		t.Error("inspect output should include the metrics footer")
	}
}

func TestRenderInspectUnknownNode(t *testing.T) {
	g := testGraph(t)
	if _, err := renderInspect(g, metrics.Compute(g), "ghost", 80); err == nil {
		t.Error("expected error for unknown node")
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"this is too long", 7, "this i…"},
		{"anything", 0, ""},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}
