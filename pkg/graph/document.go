package graph

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"
)

// Document is the serialized form of a graph, shared between the JSON loader
// and the SQLite datasource.
type Document struct {
	Nodes []NodeDoc `json:"nodes"`
	Edges []EdgeDoc `json:"edges"`
}

// NodeDoc is a node as it appears in a graph document.
type NodeDoc struct {
	ID    string  `json:"id"`
	Label string  `json:"label,omitempty"`
	Color string  `json:"color,omitempty"`
	X     float64 `json:"x,omitempty"`
	Y     float64 `json:"y,omitempty"`
	Size  float64 `json:"size,omitempty"`
	Notes string  `json:"notes,omitempty"`
}

// EdgeDoc is an edge as it appears in a graph document.
type EdgeDoc struct {
	ID     string  `json:"id,omitempty"`
	Source string  `json:"source"`
	Target string  `json:"target"`
	Color  string  `json:"color,omitempty"`
	Size   float64 `json:"size,omitempty"`
}

// LoadDocument reads and decodes a graph document from a JSON file.
func LoadDocument(path string) (Document, error) {
	var doc Document

	data, err := os.ReadFile(path)
	if err != nil {
		return doc, fmt.Errorf("reading graph file: %w", err)
	}

	if err := json.Unmarshal(data, &doc); err != nil {
		return doc, fmt.Errorf("parsing graph file %s: %w", path, err)
	}

	if len(doc.Nodes) == 0 {
		return doc, fmt.Errorf("graph file %s contains no nodes", path)
	}

	return doc, nil
}

// Load reads a JSON graph document and builds the in-memory graph.
func Load(path string) (*Graph, error) {
	doc, err := LoadDocument(path)
	if err != nil {
		return nil, err
	}
	return New(doc)
}
