package datasource

import (
	"context"
	"database/sql"
	"fmt"

	"golang.org/x/sync/errgroup"
	_ "modernc.org/sqlite"

	"github.com/nodelens/nodelens/pkg/graph"
)

// SQLiteReader provides read access to a graph stored in a SQLite database.
//
// Expected schema:
//
//	nodes(id TEXT PRIMARY KEY, label TEXT, color TEXT, x REAL, y REAL, size REAL, notes TEXT)
//	edges(id TEXT PRIMARY KEY, source TEXT, target TEXT, color TEXT, size REAL)
//
// Only id, source and target are required; the remaining columns may be NULL.
type SQLiteReader struct {
	db   *sql.DB
	path string
}

// NewSQLiteReader opens a database for reading.
func NewSQLiteReader(path string) (*SQLiteReader, error) {
	dsn := fmt.Sprintf("file:%s?mode=ro&_busy_timeout=5000", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("cannot open database: %w", err)
	}
	return &SQLiteReader{db: db, path: path}, nil
}

// Close closes the database connection.
func (r *SQLiteReader) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// LoadDocument reads the full graph document. Nodes and edges load
// concurrently; they live in separate tables and the connection is read-only.
func (r *SQLiteReader) LoadDocument(ctx context.Context) (graph.Document, error) {
	var doc graph.Document

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		nodes, err := r.loadNodes(ctx)
		if err != nil {
			return err
		}
		doc.Nodes = nodes
		return nil
	})
	eg.Go(func() error {
		edges, err := r.loadEdges(ctx)
		if err != nil {
			return err
		}
		doc.Edges = edges
		return nil
	})
	if err := eg.Wait(); err != nil {
		return graph.Document{}, err
	}
	return doc, nil
}

func (r *SQLiteReader) loadNodes(ctx context.Context) ([]graph.NodeDoc, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, label, color, x, y, size, notes
		FROM nodes
		ORDER BY rowid
	`)
	if err != nil {
		return nil, fmt.Errorf("query nodes: %w", err)
	}
	defer rows.Close()

	var nodes []graph.NodeDoc
	for rows.Next() {
		var n graph.NodeDoc
		var label, color, notes sql.NullString
		var x, y, size sql.NullFloat64
		if err := rows.Scan(&n.ID, &label, &color, &x, &y, &size, &notes); err != nil {
			return nil, fmt.Errorf("scan node: %w", err)
		}
		n.Label = label.String
		n.Color = color.String
		n.X = x.Float64
		n.Y = y.Float64
		n.Size = size.Float64
		n.Notes = notes.String
		nodes = append(nodes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate nodes: %w", err)
	}
	return nodes, nil
}

func (r *SQLiteReader) loadEdges(ctx context.Context) ([]graph.EdgeDoc, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, source, target, color, size
		FROM edges
		ORDER BY rowid
	`)
	if err != nil {
		return nil, fmt.Errorf("query edges: %w", err)
	}
	defer rows.Close()

	var edges []graph.EdgeDoc
	for rows.Next() {
		var e graph.EdgeDoc
		var color sql.NullString
		var size sql.NullFloat64
		if err := rows.Scan(&e.ID, &e.Source, &e.Target, &color, &size); err != nil {
			return nil, fmt.Errorf("scan edge: %w", err)
		}
		e.Color = color.String
		e.Size = size.Float64
		edges = append(edges, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate edges: %w", err)
	}
	return edges, nil
}

// CountNodes returns the node count without loading the document.
func (r *SQLiteReader) CountNodes(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM nodes").Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
