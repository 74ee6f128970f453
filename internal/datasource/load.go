package datasource

import (
	"context"
	"fmt"

	"github.com/nodelens/nodelens/pkg/graph"
	"github.com/nodelens/nodelens/pkg/metrics"
)

// Load reads a graph from any supported source, detecting the format from
// the path and file contents.
func Load(ctx context.Context, path string) (*graph.Graph, error) {
	defer metrics.Timer(metrics.GraphLoad)()

	doc, err := LoadDocument(ctx, path)
	if err != nil {
		return nil, err
	}
	g, err := graph.New(doc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

// LoadDocument reads the raw document without building the graph, for
// callers that want to inspect or transform it first.
func LoadDocument(ctx context.Context, path string) (graph.Document, error) {
	typ, err := DetectType(path)
	if err != nil {
		return graph.Document{}, err
	}

	switch typ {
	case SourceTypeJSON:
		return graph.LoadDocument(path)
	case SourceTypeSQLite:
		r, err := NewSQLiteReader(path)
		if err != nil {
			return graph.Document{}, err
		}
		defer r.Close()
		return r.LoadDocument(ctx)
	default:
		return graph.Document{}, fmt.Errorf("unsupported source type %q", typ)
	}
}
