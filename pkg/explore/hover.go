package explore

// Neighborhood resolves the hover neighbor set for a node. It is pure and
// idempotent: "" yields nil, a known node yields its (possibly empty)
// adjacency set, an unknown node yields nil so the caller can fail closed.
func Neighborhood(g GraphData, id string) map[string]struct{} {
	if id == "" {
		return nil
	}
	return g.Neighbors(id)
}
