// Package layout assigns display positions to nodes that ship without
// coordinates. The placement is deterministic: the same graph always lands on
// the same picture, which keeps snapshot exports diffable.
package layout

import (
	"math"
	"sort"

	"github.com/nodelens/nodelens/pkg/graph"
	"github.com/nodelens/nodelens/pkg/metrics"
)

// Point is a node position in abstract graph coordinates.
type Point struct {
	X, Y float64
}

const ringStep = 120.0

// Positions returns a position for every node. Nodes with explicit
// coordinates in the source document keep them; the rest are placed on
// concentric rings around the most prominent node, ordered by PageRank so
// hubs sit near the center.
func Positions(g *graph.Graph, scores *metrics.Scores) map[string]Point {
	defer metrics.Timer(metrics.LayoutCompute)()

	out := make(map[string]Point, g.NodeCount())

	var unplaced []string
	for _, id := range g.Nodes() {
		attrs, _ := g.NodeAttrs(id)
		if attrs.X != 0 || attrs.Y != 0 {
			out[id] = Point{X: attrs.X, Y: attrs.Y}
			continue
		}
		unplaced = append(unplaced, id)
	}

	if len(unplaced) == 0 {
		return out
	}

	// A document where every node sits at the origin counts as unplaced as a
	// whole; a lone origin node among placed ones is placed too, on the
	// outermost ring, rather than stacked at (0,0).
	ordered := scores.ByProminence(unplaced)
	ring := 0
	if len(out) > 0 {
		ring = 1 + outermostRing(out)
	}

	i := 0
	for ring0 := ring; i < len(ordered); ring0++ {
		capacity := ringCapacity(ring0)
		radius := float64(ring0) * ringStep
		for slot := 0; slot < capacity && i < len(ordered); slot++ {
			angle := 2 * math.Pi * float64(slot) / float64(capacity)
			out[ordered[i]] = Point{
				X: radius * math.Cos(angle),
				Y: radius * math.Sin(angle),
			}
			i++
		}
	}

	return out
}

// ringCapacity grows linearly with the ring index: 1 node in the center,
// then 8, 16, 24, ...
func ringCapacity(ring int) int {
	if ring == 0 {
		return 1
	}
	return 8 * ring
}

func outermostRing(placed map[string]Point) int {
	var max float64
	for _, p := range placed {
		if r := math.Hypot(p.X, p.Y); r > max {
			max = r
		}
	}
	return int(math.Ceil(max / ringStep))
}

// Bounds returns the bounding box of a position set, with a fallback box for
// an empty set so callers never divide by zero.
func Bounds(positions map[string]Point) (minX, minY, maxX, maxY float64) {
	first := true
	for _, p := range positions {
		if first {
			minX, maxX = p.X, p.X
			minY, maxY = p.Y, p.Y
			first = false
			continue
		}
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}
	if first || (minX == maxX && minY == maxY) {
		return minX - 1, minY - 1, maxX + 1, maxY + 1
	}
	return minX, minY, maxX, maxY
}

// SortedIDs returns position keys in deterministic order, for renderers that
// iterate maps.
func SortedIDs(positions map[string]Point) []string {
	ids := make([]string, 0, len(positions))
	for id := range positions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
