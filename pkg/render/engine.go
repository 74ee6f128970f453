// Package render is the rendering side of the exploration overlay: it owns
// the camera, accepts reducer registrations, assembles per-frame display
// lists by running the reducers over every node and edge, and writes SVG or
// PNG snapshots of the current frame.
package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/nodelens/nodelens/pkg/explore"
	"github.com/nodelens/nodelens/pkg/graph"
	"github.com/nodelens/nodelens/pkg/layout"
	"github.com/nodelens/nodelens/pkg/metrics"
)

// NodeReducer and EdgeReducer are the callback types the engine invokes once
// per entity per frame. They must be pure and fast; the engine calls them on
// every redraw.
type (
	NodeReducer func(id string, base explore.Display) explore.Display
	EdgeReducer func(id string, base explore.Display) explore.Display
)

const (
	defaultNodeColor = "#5b7fbd"
	defaultEdgeColor = "#c9ccd1"
	defaultNodeSize  = 6.0
	defaultEdgeSize  = 1.5
)

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithRefreshFunc sets the host callback invoked on Refresh. The callback
// must be cheap; it typically just nudges the host event loop to redraw.
func WithRefreshFunc(fn func()) EngineOption {
	return func(e *Engine) {
		e.onRefresh = fn
	}
}

// WithNodeSizer overrides the base size of nodes that carry none of their
// own, e.g. to scale hubs by PageRank.
func WithNodeSizer(fn func(id string) float64) EngineOption {
	return func(e *Engine) {
		e.nodeSizer = fn
	}
}

// Engine holds everything needed to produce a frame. It satisfies
// explore.Renderer, so the interaction controller can request refreshes and
// one-shot camera moves without knowing how drawing works.
type Engine struct {
	graph     *graph.Graph
	positions map[string]layout.Point
	camera    Camera

	nodeReducer NodeReducer
	edgeReducer EdgeReducer

	nodeSizer func(id string) float64
	onRefresh func()
	dirty     bool
}

// NewEngine creates an engine over a graph and its node positions.
func NewEngine(g *graph.Graph, positions map[string]layout.Point, opts ...EngineOption) *Engine {
	e := &Engine{
		graph:     g,
		positions: positions,
		camera:    NewCamera(),
		dirty:     true,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// SetGraph swaps the graph and positions after a live reload.
func (e *Engine) SetGraph(g *graph.Graph, positions map[string]layout.Point) {
	e.graph = g
	e.positions = positions
	e.dirty = true
}

// SetNodeReducer registers the node display reducer.
func (e *Engine) SetNodeReducer(r NodeReducer) { e.nodeReducer = r }

// SetEdgeReducer registers the edge display reducer.
func (e *Engine) SetEdgeReducer(r EdgeReducer) { e.edgeReducer = r }

// Refresh requests a redraw. Fire-and-forget: the frame is assembled
// whenever the host next asks for it, and redrawing twice is harmless.
func (e *Engine) Refresh() {
	e.dirty = true
	if e.onRefresh != nil {
		e.onRefresh()
	}
}

// Dirty reports whether a refresh was requested since the last Frame call.
func (e *Engine) Dirty() bool { return e.dirty }

// Camera exposes the engine's camera.
func (e *Engine) Camera() *Camera { return &e.camera }

// NodeDisplayPosition returns the display coordinates of a node.
func (e *Engine) NodeDisplayPosition(id string) (float64, float64, bool) {
	p, ok := e.positions[id]
	if !ok {
		return 0, 0, false
	}
	return p.X, p.Y, true
}

// AnimateTo forwards a one-shot camera move, satisfying explore.Renderer.
func (e *Engine) AnimateTo(x, y float64, d time.Duration) {
	e.camera.AnimateTo(x, y, d)
}

// NodeView is one node of an assembled frame.
type NodeView struct {
	ID      string
	X, Y    float64
	Display explore.Display
}

// EdgeView is one edge of an assembled frame.
type EdgeView struct {
	ID             string
	X1, Y1, X2, Y2 float64
	Display        explore.Display
}

// Frame is a fully reduced display list, ready to draw.
type Frame struct {
	Nodes []NodeView
	Edges []EdgeView
}

// Frame runs the registered reducers over every entity and returns the
// display list. Entities without a position or with broken endpoint lookups
// are skipped: a bad entity must cost one missing shape, not the frame.
func (e *Engine) Frame() Frame {
	defer metrics.Timer(metrics.FrameAssemble)()
	e.dirty = false

	var f Frame
	f.Nodes = make([]NodeView, 0, e.graph.NodeCount())
	for _, id := range e.graph.Nodes() {
		p, ok := e.positions[id]
		if !ok {
			continue
		}
		base := e.baseNodeDisplay(id)
		if e.nodeReducer != nil {
			base = e.nodeReducer(id, base)
		}
		f.Nodes = append(f.Nodes, NodeView{ID: id, X: p.X, Y: p.Y, Display: base})
	}

	f.Edges = make([]EdgeView, 0, e.graph.EdgeCount())
	for _, id := range e.graph.Edges() {
		source, okS := e.graph.Source(id)
		target, okT := e.graph.Target(id)
		if !okS || !okT {
			continue
		}
		ps, okPS := e.positions[source]
		pt, okPT := e.positions[target]
		if !okPS || !okPT {
			continue
		}
		base := e.baseEdgeDisplay(id)
		if e.edgeReducer != nil {
			base = e.edgeReducer(id, base)
		}
		f.Edges = append(f.Edges, EdgeView{
			ID: id,
			X1: ps.X, Y1: ps.Y,
			X2: pt.X, Y2: pt.Y,
			Display: base,
		})
	}

	return f
}

func (e *Engine) baseNodeDisplay(id string) explore.Display {
	attrs, ok := e.graph.NodeAttrs(id)
	if !ok {
		return explore.Display{Hidden: true}
	}
	d := explore.Display{
		Label: attrs.Label,
		Color: attrs.Color,
		Size:  attrs.Size,
	}
	if d.Color == "" {
		d.Color = defaultNodeColor
	}
	if d.Size <= 0 {
		if e.nodeSizer != nil {
			d.Size = e.nodeSizer(id)
		} else {
			d.Size = defaultNodeSize
		}
	}
	return d
}

func (e *Engine) baseEdgeDisplay(id string) explore.Display {
	attrs, ok := e.graph.EdgeAttrs(id)
	if !ok {
		return explore.Display{Hidden: true}
	}
	d := explore.Display{
		Color: attrs.Color,
		Size:  attrs.Size,
	}
	if d.Color == "" {
		d.Color = defaultEdgeColor
	}
	if d.Size <= 0 {
		d.Size = defaultEdgeSize
	}
	return d
}

// Summary returns the one-line frame summary rendered into snapshot headers.
func (f Frame) Summary() string {
	visibleNodes := 0
	for _, n := range f.Nodes {
		if !n.Display.Hidden {
			visibleNodes++
		}
	}
	visibleEdges := 0
	for _, e := range f.Edges {
		if !e.Display.Hidden {
			visibleEdges++
		}
	}
	var b strings.Builder
	fmt.Fprintf(&b, "nodes: %d/%d visible", visibleNodes, len(f.Nodes))
	fmt.Fprintf(&b, "  edges: %d/%d visible", visibleEdges, len(f.Edges))
	return b.String()
}
