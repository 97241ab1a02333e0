package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// Drug/protein fixture shared by the engine, command and end-to-end tests.
const (
	NodeFixture = "node_index\tnode_id\tnode_type\n" +
		"0\tD1\tdrug\n" +
		"1\tP1\tprotein\n"
	EdgeFixture = "x_index,y_index,relation\n" +
		"0,1,targets\n" +
		"1,0,targets\n"
)

// WriteGraph creates node.csv and edges.csv with the given contents in a fresh
// temporary folder and returns the folder path.
func WriteGraph(t testing.TB, nodes, edges string) string {
	t.Helper()
	dir := t.TempDir()
	WriteFile(t, filepath.Join(dir, "node.csv"), nodes)
	WriteFile(t, filepath.Join(dir, "edges.csv"), edges)
	return dir
}

// WriteFile writes content to path or fails the test.
func WriteFile(t testing.TB, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

// ReadFile returns the content at path or fails the test.
func ReadFile(t testing.TB, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(b)
}
