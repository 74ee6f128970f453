package explore

import "time"

// DefaultAnimateDuration is how long the camera takes to travel to a node
// resolved by search.
const DefaultAnimateDuration = 500 * time.Millisecond

// Renderer is the slice of the render engine the controller needs: a way to
// request redraws, and a camera it can point at a node once when search
// resolves. Redraw requests are fire-and-forget; the host decides timing.
type Renderer interface {
	Refresh()
	NodeDisplayPosition(id string) (x, y float64, ok bool)
	AnimateTo(x, y float64, d time.Duration)
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithInspectFunc sets the callback invoked on double-click. Double-click is
// stateless: it opens an external reference lookup for the node and never
// touches interaction state.
func WithInspectFunc(fn func(node string)) ControllerOption {
	return func(c *Controller) {
		c.onInspect = fn
	}
}

// WithAnimateDuration sets the camera travel time used on auto-selection.
func WithAnimateDuration(d time.Duration) ControllerOption {
	return func(c *Controller) {
		c.animate = d
	}
}

// Controller owns the interaction state machine. All event methods run
// synchronously on the host event loop; there is exactly one logical thread
// of control, so no locking.
//
// The click-pin machine has two states. Idle (ClickMode=false): pointer
// enter/leave drive hover freely. Pinned(n) (ClickMode=true): hover events
// are ignored so the pointer cannot fight a deliberate pin; only a click
// re-pins or, on the pinned node itself, toggles back to Idle.
type Controller struct {
	graph     GraphData
	state     *State
	renderer  Renderer
	onInspect func(node string)
	animate   time.Duration
}

// NewController creates a controller over a fresh interaction state.
func NewController(g GraphData, r Renderer, opts ...ControllerOption) *Controller {
	c := &Controller{
		graph:    g,
		state:    NewState(),
		renderer: r,
		animate:  DefaultAnimateDuration,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State exposes the interaction state for reducers and the UI. Callers must
// treat it as read-only; only the controller mutates it.
func (c *Controller) State() *State {
	return c.state
}

// SetGraph swaps the underlying graph after a live reload. Interaction state
// referring to ids that no longer exist is dropped; the rest survives.
func (c *Controller) SetGraph(g GraphData) {
	c.graph = g
	if c.state.HoveredNode != "" {
		if n := Neighborhood(g, c.state.HoveredNode); n != nil {
			c.state.HoveredNeighbors = n
		} else {
			c.clearHover()
		}
	}
	if c.state.ClickedNode != "" {
		if _, ok := g.Label(c.state.ClickedNode); !ok {
			c.state.ClickedNode = ""
			c.state.ClickMode = false
		}
	}
	if c.state.SearchQuery != "" {
		c.resolveQuery(c.state.SearchQuery)
	}
	c.renderer.Refresh()
}

// SetQuery handles the text-input-changed event. An empty query clears the
// whole search state, including a pin asserted by a previous exact match: the
// pin survives re-typed queries but not an explicit clear.
func (c *Controller) SetQuery(query string) {
	c.state.SearchQuery = query
	if query == "" {
		c.state.SelectedNode = ""
		c.state.Suggestions = nil
		c.state.ClickedNode = ""
		c.state.ClickMode = false
		c.clearHover()
		c.renderer.Refresh()
		return
	}
	c.resolveQuery(query)
	c.renderer.Refresh()
}

// Blur handles the text-input-blurred event, which behaves as clearing the
// query: leaving the search field dismisses search-driven emphasis.
func (c *Controller) Blur() {
	c.SetQuery("")
}

func (c *Controller) resolveQuery(query string) {
	res := Resolve(c.graph, query)
	if res.Selected != "" {
		c.state.Suggestions = nil
		c.applySelection(res.Selected)
		return
	}
	c.state.SelectedNode = ""
	c.state.Suggestions = res.Suggestions
}

// applySelection is the single place where "exact search match" and
// "deliberate pick" converge: it selects the node, asserts the click-pin so
// pointer hover no longer overrides it, applies hover emphasis to the node's
// neighborhood, and asks the camera for a one-shot move to the node.
func (c *Controller) applySelection(node string) {
	c.state.SelectedNode = node
	c.state.ClickedNode = node
	c.state.ClickMode = true
	c.setHover(node)
	if x, y, ok := c.renderer.NodeDisplayPosition(node); ok {
		c.renderer.AnimateTo(x, y, c.animate)
	}
}

// Enter handles pointer-entered. Ignored while a node is pinned.
func (c *Controller) Enter(node string) {
	if c.state.ClickMode {
		return
	}
	c.setHover(node)
	c.renderer.Refresh()
}

// Leave handles pointer-left. Ignored while pinned; the clicked-node guard is
// vacuous in Idle but kept for symmetry with the pinned behavior.
func (c *Controller) Leave(node string) {
	if c.state.ClickMode {
		return
	}
	if c.state.ClickedNode != "" && c.state.ClickedNode == node {
		return
	}
	c.clearHover()
	c.renderer.Refresh()
}

// Click handles pointer-clicked. Clicking the pinned node toggles back to
// Idle and clears hover; clicking any other node (from Idle or Pinned)
// pins it and applies hover emphasis.
func (c *Controller) Click(node string) {
	if _, ok := c.graph.Label(node); !ok {
		return
	}
	if c.state.ClickMode && c.state.ClickedNode == node {
		c.state.ClickMode = false
		c.state.ClickedNode = ""
		c.clearHover()
		c.renderer.Refresh()
		return
	}
	c.state.ClickMode = true
	c.state.ClickedNode = node
	c.setHover(node)
	c.renderer.Refresh()
}

// DoubleClick handles pointer-double-clicked. It never touches the
// interaction state; it only fires the inspect callback.
func (c *Controller) DoubleClick(node string) {
	if c.onInspect != nil {
		c.onInspect(node)
	}
}

func (c *Controller) setHover(node string) {
	neighbors := Neighborhood(c.graph, node)
	if neighbors == nil {
		// Unknown node: fail closed rather than hover a phantom.
		c.clearHover()
		return
	}
	c.state.HoveredNode = node
	c.state.HoveredNeighbors = neighbors
}

func (c *Controller) clearHover() {
	c.state.HoveredNode = ""
	c.state.HoveredNeighbors = nil
}
