// Package ui implements the interactive terminal session: a searchable node
// list and detail pane driven by the exploration overlay state.
package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nodelens/nodelens/internal/datasource"
	"github.com/nodelens/nodelens/pkg/config"
	"github.com/nodelens/nodelens/pkg/debug"
	"github.com/nodelens/nodelens/pkg/explore"
	"github.com/nodelens/nodelens/pkg/graph"
	"github.com/nodelens/nodelens/pkg/layout"
	"github.com/nodelens/nodelens/pkg/metrics"
	"github.com/nodelens/nodelens/pkg/render"
	"github.com/nodelens/nodelens/pkg/watcher"
)

// FileChangedMsg signals that the watched graph file was modified.
type FileChangedMsg struct{}

// GraphReloadedMsg carries a freshly loaded graph.
type GraphReloadedMsg struct {
	Graph  *graph.Graph
	Scores *metrics.Scores
	Err    error
}

// statusExpiredMsg clears a transient status message.
type statusExpiredMsg struct{ id int }

// ModelOption configures a Model.
type ModelOption func(*Model)

// WithWatcher attaches a file watcher whose change events reload the graph.
func WithWatcher(w *watcher.Watcher) ModelOption {
	return func(m *Model) { m.watcher = w }
}

// WithSourcePath records the path the graph was loaded from, for reloads and
// the header line.
func WithSourcePath(path string) ModelOption {
	return func(m *Model) { m.sourcePath = path }
}

// Model is the root bubbletea model for an exploration session.
type Model struct {
	graph      *graph.Graph
	scores     *metrics.Scores
	engine     *render.Engine
	controller *explore.Controller
	theme      Theme
	cfg        config.Config

	searchInput textinput.Model
	cursor      int
	width       int
	height      int

	inspecting     bool
	inspectContent string

	statusMsg  string
	statusID   int
	sourcePath string
	watcher    *watcher.Watcher
	err        error
}

// NewModel assembles the session model around a loaded graph.
func NewModel(g *graph.Graph, cfg config.Config, opts ...ModelOption) Model {
	r := lipgloss.DefaultRenderer()
	theme := DefaultTheme(r)

	scores := metrics.Compute(g)
	positions := layout.Positions(g, scores)
	engine := render.NewEngine(g, positions, render.WithNodeSizer(func(id string) float64 {
		return scores.NodeSize(id, 4, 14)
	}))

	animate := time.Duration(cfg.Overlay.AnimateDuration) * time.Millisecond
	controller := explore.NewController(g, engine, explore.WithAnimateDuration(animate))

	wireReducers(engine, g, controller, cfg.Overlay.MutedColor)

	input := textinput.New()
	input.Placeholder = "search nodes"
	input.Prompt = "/ "
	input.CharLimit = 80
	// Autocomplete candidates are all node labels, derived once per graph.
	input.ShowSuggestions = true
	input.SetSuggestions(g.Labels())

	m := Model{
		graph:       g,
		scores:      scores,
		engine:      engine,
		controller:  controller,
		theme:       theme,
		cfg:         cfg,
		searchInput: input,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// wireReducers registers overlay reducers on the engine. Reducers read the
// controller's live state, so a registration survives graph reloads.
func wireReducers(engine *render.Engine, g *graph.Graph, c *explore.Controller, muted string) {
	reducers := explore.Reducers{Graph: g, State: c.State(), Muted: muted}
	engine.SetNodeReducer(func(id string, base explore.Display) explore.Display {
		reducers.State = c.State()
		return reducers.Node(id, base)
	})
	engine.SetEdgeReducer(func(id string, base explore.Display) explore.Display {
		reducers.State = c.State()
		return reducers.Edge(id, base)
	})
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	if m.watcher != nil {
		return watchCmd(m.watcher)
	}
	return nil
}

// watchCmd blocks until the watcher reports a change.
func watchCmd(w *watcher.Watcher) tea.Cmd {
	return func() tea.Msg {
		<-w.Changed()
		return FileChangedMsg{}
	}
}

// reloadCmd reloads the graph from the source path off the event loop.
func reloadCmd(path string) tea.Cmd {
	return func() tea.Msg {
		defer debug.LogEnterExit("reload")()
		g, err := datasource.Load(context.Background(), path)
		if err != nil {
			return GraphReloadedMsg{Err: err}
		}
		return GraphReloadedMsg{Graph: g, Scores: metrics.Compute(g)}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case FileChangedMsg:
		cmds := []tea.Cmd{reloadCmd(m.sourcePath)}
		if m.watcher != nil {
			cmds = append(cmds, watchCmd(m.watcher))
		}
		return m, tea.Batch(cmds...)

	case GraphReloadedMsg:
		if msg.Err != nil {
			return m.setStatus(fmt.Sprintf("reload failed: %v", msg.Err))
		}
		m.graph = msg.Graph
		m.scores = msg.Scores
		positions := layout.Positions(msg.Graph, msg.Scores)
		m.engine.SetGraph(msg.Graph, positions)
		m.controller.SetGraph(msg.Graph)
		m.searchInput.SetSuggestions(msg.Graph.Labels())
		wireReducers(m.engine, msg.Graph, m.controller, m.cfg.Overlay.MutedColor)
		if m.cursor >= msg.Graph.NodeCount() {
			m.cursor = 0
		}
		return m.setStatus("graph reloaded")

	case statusExpiredMsg:
		if msg.id == m.statusID {
			m.statusMsg = ""
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.inspecting {
		switch msg.String() {
		case "esc", "q", "o":
			m.inspecting = false
			m.inspectContent = ""
		}
		return m, nil
	}

	if m.searchInput.Focused() {
		switch msg.String() {
		case "esc":
			m.searchInput.Blur()
			m.searchInput.SetValue("")
			m.controller.Blur()
			return m, nil
		case "enter":
			// Keep the query active, return focus to the list.
			m.searchInput.Blur()
			return m, nil
		default:
			var cmd tea.Cmd
			m.searchInput, cmd = m.searchInput.Update(msg)
			m.controller.SetQuery(m.searchInput.Value())
			return m, cmd
		}
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "/":
		return m, m.searchInput.Focus()

	case "esc":
		st := m.controller.State()
		if st.ClickMode {
			// Unpin via the same toggle a re-click uses.
			m.controller.Click(st.ClickedNode)
			return m, nil
		}
		if st.SearchQuery != "" {
			m.searchInput.SetValue("")
			m.controller.Blur()
		}
		return m, nil

	case "up", "k":
		return m.moveCursor(-1), nil

	case "down", "j":
		return m.moveCursor(1), nil

	case "enter":
		if id, ok := m.cursorNode(); ok {
			m.controller.Click(id)
		}
		return m, nil

	case "o":
		if id, ok := m.focusNode(); ok {
			m.controller.DoubleClick(id)
			content, err := renderInspect(m.graph, m.scores, id, m.contentWidth())
			if err != nil {
				return m.setStatus(fmt.Sprintf("inspect failed: %v", err))
			}
			m.inspecting = true
			m.inspectContent = content
		}
		return m, nil

	case "y":
		if id, ok := m.focusNode(); ok {
			if err := clipboard.WriteAll(id); err != nil {
				return m.setStatus(fmt.Sprintf("yank failed: %v", err))
			}
			return m.setStatus(fmt.Sprintf("yanked %s", id))
		}
		return m, nil

	case "s":
		return m.saveSnapshot()
	}

	return m, nil
}

// moveCursor shifts the list cursor and mirrors the move as hover events.
func (m Model) moveCursor(delta int) Model {
	n := m.graph.NodeCount()
	if n == 0 {
		return m
	}
	next := m.cursor + delta
	if next < 0 {
		next = 0
	}
	if next >= n {
		next = n - 1
	}
	if next == m.cursor {
		return m
	}

	if prev, ok := m.cursorNode(); ok {
		m.controller.Leave(prev)
	}
	m.cursor = next
	if id, ok := m.cursorNode(); ok {
		m.controller.Enter(id)
	}
	return m
}

// cursorNode returns the node under the list cursor.
func (m Model) cursorNode() (string, bool) {
	ids := m.graph.Nodes()
	if m.cursor < 0 || m.cursor >= len(ids) {
		return "", false
	}
	return ids[m.cursor], true
}

// focusNode is the node actions apply to: the pinned node when one exists,
// otherwise the cursor node.
func (m Model) focusNode() (string, bool) {
	st := m.controller.State()
	if st.ClickMode {
		return st.ClickedNode, true
	}
	return m.cursorNode()
}

func (m Model) saveSnapshot() (tea.Model, tea.Cmd) {
	name := fmt.Sprintf("nodelens-%s.%s", time.Now().Format("20060102-150405"), m.cfg.Snapshot.Format)
	path := m.cfg.SnapshotDir() + "/" + name
	err := m.engine.SaveSnapshot(render.SnapshotOptions{
		Path:   path,
		Format: m.cfg.Snapshot.Format,
		Title:  m.sourcePath,
		Width:  m.cfg.Snapshot.Width,
		Height: m.cfg.Snapshot.Height,
	})
	if err != nil {
		return m.setStatus(fmt.Sprintf("snapshot failed: %v", err))
	}
	return m.setStatus(fmt.Sprintf("saved %s", path))
}

// setStatus shows a transient status message for a few seconds.
func (m Model) setStatus(msg string) (tea.Model, tea.Cmd) {
	m.statusMsg = msg
	m.statusID++
	id := m.statusID
	return m, tea.Tick(4*time.Second, func(time.Time) tea.Msg {
		return statusExpiredMsg{id: id}
	})
}

func (m Model) contentWidth() int {
	if m.width <= 0 {
		return 80
	}
	return m.width - 4
}
