// Package metrics computes node importance scores for the loaded graph.
// Scores drive default node sizing and the ordering of the autocomplete
// candidate list, so the most connected nodes surface first.
package metrics

import (
	"sort"

	"gonum.org/v1/gonum/graph/network"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/nodelens/nodelens/pkg/graph"
)

const (
	pageRankDamping   = 0.85
	pageRankTolerance = 1e-6
)

// Scores holds per-node importance metrics.
type Scores struct {
	PageRank map[string]float64
	Degree   map[string]int

	maxPageRank float64
}

// Compute runs PageRank and degree counts over the graph. The gonum graph is
// rebuilt from scratch on every call; the session graph is small enough that
// caching across reloads is not worth the bookkeeping.
func Compute(g *graph.Graph) *Scores {
	defer Timer(PageRankCompute)()

	dg := simple.NewDirectedGraph()
	idToNode := make(map[string]int64, g.NodeCount())
	nodeToID := make(map[int64]string, g.NodeCount())

	for _, id := range g.Nodes() {
		n := dg.NewNode()
		dg.AddNode(n)
		idToNode[id] = n.ID()
		nodeToID[n.ID()] = id
	}

	for _, eid := range g.Edges() {
		source, _ := g.Source(eid)
		target, _ := g.Target(eid)
		if source == target {
			// simple graphs reject self loops; they carry no rank anyway.
			continue
		}
		u, okU := idToNode[source]
		v, okV := idToNode[target]
		if !okU || !okV {
			continue
		}
		dg.SetEdge(dg.NewEdge(dg.Node(u), dg.Node(v)))
	}

	s := &Scores{
		PageRank: make(map[string]float64, g.NodeCount()),
		Degree:   make(map[string]int, g.NodeCount()),
	}

	for gid, score := range network.PageRank(dg, pageRankDamping, pageRankTolerance) {
		id := nodeToID[gid]
		s.PageRank[id] = score
		if score > s.maxPageRank {
			s.maxPageRank = score
		}
	}

	for _, id := range g.Nodes() {
		s.Degree[id] = len(g.Neighbors(id))
	}

	return s
}

// NodeSize maps a node's PageRank onto the [min, max] size range. Nodes of a
// rank-less graph (single node, no edges) all land on min.
func (s *Scores) NodeSize(id string, min, max float64) float64 {
	if s.maxPageRank <= 0 || max <= min {
		return min
	}
	return min + (max-min)*(s.PageRank[id]/s.maxPageRank)
}

// ByProminence returns the ids sorted by descending PageRank, ties broken by
// id for determinism.
func (s *Scores) ByProminence(ids []string) []string {
	out := make([]string, len(ids))
	copy(out, ids)
	sort.Slice(out, func(i, j int) bool {
		pi, pj := s.PageRank[out[i]], s.PageRank[out[j]]
		if pi != pj {
			return pi > pj
		}
		return out[i] < out[j]
	})
	return out
}
