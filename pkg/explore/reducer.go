package explore

// Display carries the visual attributes the render engine consumes for a
// single entity in a single frame. Reducers start from the base attributes
// and return an overridden copy; they never touch the graph or the state.
type Display struct {
	Label       string
	Color       string
	Size        float64
	Hidden      bool
	Highlighted bool
}

// DefaultMutedColor is the background tint applied to dimmed entities when no
// configured color is supplied.
const DefaultMutedColor = "#f6f6f6"

// Reducers derives per-frame display overrides from the interaction state.
// Both reducers are pure functions of (entity id, base display, state): no
// I/O, no state mutation, cheap enough to run once per visible entity per
// redraw. Graph lookups that fail (a stale id reaching a reducer) fail
// closed: the entity is treated as non-matching or hidden so a bad frame
// never crashes the session.
type Reducers struct {
	Graph GraphData
	State *State
	Muted string // dim color; DefaultMutedColor when empty
}

// NewReducers builds reducers over a controller's graph and state.
func NewReducers(g GraphData, st *State) Reducers {
	return Reducers{Graph: g, State: st, Muted: DefaultMutedColor}
}

func (r Reducers) muted() string {
	if r.Muted == "" {
		return DefaultMutedColor
	}
	return r.Muted
}

// Node computes the display override for a node. Rule order matters:
//
//  1. hover dimming blanks everything outside the hovered neighborhood,
//  2. the selected node is marked highlighted, while active suggestions dim
//     every non-member,
//  3. suggestion members are re-highlighted with their true label and color,
//     reversing any dimming from the earlier rules so matches stay visible
//     even outside the hovered neighborhood.
//
// A node cannot be both the selection and a suggestion member (one query
// resolution produces one or the other), so rules 2 and 3 never conflict.
func (r Reducers) Node(id string, base Display) Display {
	st := r.State
	d := base

	if st.HoveredNeighbors != nil && id != st.HoveredNode {
		if _, near := st.HoveredNeighbors[id]; !near {
			d.Label = ""
			d.Color = r.muted()
		}
	}

	if st.SelectedNode != "" && id == st.SelectedNode {
		d.Highlighted = true
	} else if st.Suggestions != nil {
		if _, hit := st.Suggestions[id]; !hit {
			d.Label = ""
			d.Color = r.muted()
		}
	}

	if st.Suggestions != nil {
		if _, hit := st.Suggestions[id]; hit {
			label, okLabel := r.Graph.Label(id)
			color, okColor := r.Graph.Color(id)
			if okLabel && okColor {
				d.Highlighted = true
				d.Label = label
				d.Color = color
			} else {
				d.Label = ""
				d.Color = r.muted()
			}
		}
	}

	return d
}

// Edge computes the display override for an edge. Two independent filters:
// an edge is hidden when a node is hovered and the edge does not touch it,
// and when suggestions are active and either endpoint is not a member.
// Hiding is monotonic within one call; nothing un-hides.
func (r Reducers) Edge(id string, base Display) Display {
	st := r.State
	d := base

	if st.HoveredNode != "" && !r.Graph.HasExtremity(id, st.HoveredNode) {
		d.Hidden = true
	}

	if st.Suggestions != nil {
		source, okSource := r.Graph.Source(id)
		target, okTarget := r.Graph.Target(id)
		if !okSource || !okTarget {
			d.Hidden = true
		} else {
			_, sourceHit := st.Suggestions[source]
			_, targetHit := st.Suggestions[target]
			if !sourceHit || !targetHit {
				d.Hidden = true
			}
		}
	}

	return d
}
