// Package explore implements the interactive exploration overlay for a
// node-link graph: the per-session interaction state (search query, hover
// target, click-pin), the resolvers and state machine that mutate it, and the
// pure display reducers that turn it into per-frame visual overrides.
//
// The package only reads graph data through the GraphData interface and only
// talks to the rendering side through the Renderer interface, so the core
// stays independent of how the graph is stored or drawn.
package explore

// State is the single authoritative interaction state for a session. It is
// created once at session start and mutated in place by the Controller; it is
// never persisted or serialized.
//
// Invariants maintained by the Controller:
//   - HoveredNeighbors is non-nil iff HoveredNode is set, and always equals
//     the graph neighborhood of HoveredNode.
//   - ClickMode is true iff ClickedNode is set.
//   - SelectedNode and Suggestions are never both set by the same query
//     resolution: an exact match selects, anything else suggests.
type State struct {
	// SearchQuery is the raw user input. Empty means no active search.
	SearchQuery string

	// HoveredNode is the transient pointer-hover target, "" when none.
	HoveredNode string

	// SelectedNode is set only when search resolves to an exact unique match.
	SelectedNode string

	// Suggestions is the candidate set for an in-progress search. nil means
	// search is inactive; an empty non-nil set means "no results", which the
	// reducers render by hiding everything.
	Suggestions map[string]struct{}

	// HoveredNeighbors is derived from HoveredNode; nil iff HoveredNode is "".
	HoveredNeighbors map[string]struct{}

	// ClickedNode and ClickMode form the click-pin state, independent of the
	// search state. While ClickMode is true, pointer hover is suppressed.
	ClickedNode string
	ClickMode   bool
}

// NewState returns the empty interaction state of a fresh session.
func NewState() *State {
	return &State{}
}

// SearchActive reports whether a search is currently influencing display.
func (s *State) SearchActive() bool {
	return s.SelectedNode != "" || s.Suggestions != nil
}

// IsSuggested reports whether the node is in the current suggestion set.
func (s *State) IsSuggested(id string) bool {
	if s.Suggestions == nil {
		return false
	}
	_, ok := s.Suggestions[id]
	return ok
}

// GraphData is the read-only view of the graph the core operates on.
// pkg/graph.Graph satisfies it.
type GraphData interface {
	// Nodes returns all node ids.
	Nodes() []string
	// Label returns a node's label; ok is false for unknown nodes.
	Label(id string) (string, bool)
	// Color returns a node's base color; ok is false for unknown nodes.
	Color(id string) (string, bool)
	// Neighbors returns the adjacency set of a node. The set is non-nil
	// (possibly empty) for known nodes and nil for unknown ones.
	Neighbors(id string) map[string]struct{}
	// HasExtremity reports whether nodeID is an endpoint of edgeID.
	HasExtremity(edgeID, nodeID string) bool
	// Source and Target return an edge's endpoints.
	Source(edgeID string) (string, bool)
	Target(edgeID string) (string, bool)
}
