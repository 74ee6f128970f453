// Package datasource detects and loads graph documents from their supported
// storage formats: JSON documents and SQLite databases.
package datasource

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SourceType identifies how a graph file is stored.
type SourceType string

const (
	// SourceTypeJSON is a JSON graph document.
	SourceTypeJSON SourceType = "json"
	// SourceTypeSQLite is a SQLite database with nodes and edges tables.
	SourceTypeSQLite SourceType = "sqlite"
)

// sqliteMagic is the 16-byte header every SQLite database starts with.
var sqliteMagic = []byte("SQLite format 3\x00")

// DetectType determines the storage format of a graph file. The extension is
// authoritative when recognized; otherwise the file header decides, so a
// database named "graph.data" still loads.
func DetectType(path string) (SourceType, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return SourceTypeJSON, nil
	case ".db", ".sqlite", ".sqlite3":
		return SourceTypeSQLite, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	header := make([]byte, len(sqliteMagic))
	n, _ := f.Read(header)
	if n == len(sqliteMagic) && bytes.Equal(header, sqliteMagic) {
		return SourceTypeSQLite, nil
	}
	// Anything else is treated as JSON; the parser reports the real problem
	// if it is not.
	return SourceTypeJSON, nil
}
