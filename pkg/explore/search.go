package explore

import "strings"

// Resolution is the outcome of resolving a search query against the graph.
// Exactly one of Selected / Suggestions is meaningful: an exact unique match
// selects, everything else suggests. For an empty query both are zero.
type Resolution struct {
	Selected    string
	Suggestions map[string]struct{}
}

// Resolve computes the search resolution for a query. It is pure: the caller
// (normally Controller.SetQuery) decides how to fold the result into State.
//
// Matching is case-insensitive substring over node labels. A query resolves
// to a selection only when it matches exactly one node AND that node's label
// equals the query verbatim, the way picking a completed autocomplete entry
// behaves. A non-empty query with zero matches yields an empty, non-nil
// suggestion set: "no results" is valid state, not an error.
func Resolve(g GraphData, query string) Resolution {
	if query == "" {
		return Resolution{}
	}

	needle := strings.ToLower(query)
	matches := make(map[string]struct{})
	var lastID, lastLabel string
	for _, id := range g.Nodes() {
		label, ok := g.Label(id)
		if !ok {
			continue
		}
		if strings.Contains(strings.ToLower(label), needle) {
			matches[id] = struct{}{}
			lastID, lastLabel = id, label
		}
	}

	if len(matches) == 1 && lastLabel == query {
		return Resolution{Selected: lastID}
	}
	return Resolution{Suggestions: matches}
}
