package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/nodelens/nodelens/pkg/graph"
	"github.com/nodelens/nodelens/pkg/metrics"
)

// renderInspect builds the full-screen inspect view for a node: its notes as
// rendered markdown plus a metrics footer.
func renderInspect(g *graph.Graph, scores *metrics.Scores, id string, width int) (string, error) {
	attrs, ok := g.NodeAttrs(id)
	if !ok {
		return "", fmt.Errorf("unknown node %q", id)
	}

	var md strings.Builder
	fmt.Fprintf(&md, "# %s\n\n", attrs.Label)
	if attrs.Notes != "" {
		md.WriteString(attrs.Notes)
		md.WriteString("\n\n")
	}

	fmt.Fprintf(&md, "---\n\n")
	fmt.Fprintf(&md, "- **id**: `%s`\n", id)
	fmt.Fprintf(&md, "- **pagerank**: %.4f\n", scores.PageRank[id])
	fmt.Fprintf(&md, "- **degree**: %d\n", scores.Degree[id])

	neighbors := g.Neighbors(id)
	if len(neighbors) > 0 {
		ids := make([]string, 0, len(neighbors))
		for nid := range neighbors {
			ids = append(ids, nid)
		}
		sort.Strings(ids)
		labels := make([]string, 0, len(ids))
		for _, nid := range ids {
			if label, ok := g.Label(nid); ok {
				labels = append(labels, label)
			}
		}
		fmt.Fprintf(&md, "- **neighbors**: %s\n", strings.Join(labels, ", "))
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("markdown renderer: %w", err)
	}
	out, err := r.Render(md.String())
	if err != nil {
		return "", fmt.Errorf("render notes: %w", err)
	}
	return out + "\n  press esc to close", nil
}
