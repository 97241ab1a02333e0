package prune

import (
	"fmt"
	"os"
	"strings"
)

// Stats is the human-readable summary written next to a pruned graph.
type Stats struct {
	Folder    string   `json:"folder"`
	KeptTypes []string `json:"kept_types"`
	Nodes     int      `json:"nodes"`
	Edges     int      `json:"edges"`
}

// NewStats summarizes r. KeptTypes lists the requested labels, sorted, whether
// or not any node carried them.
func NewStats(folder string, keep KeepSet, r *Result) Stats {
	return Stats{
		Folder:    folder,
		KeptTypes: keep.Sorted(),
		Nodes:     r.NodeCount(),
		Edges:     r.EdgeCount(),
	}
}

// String renders the four-line report.
func (s Stats) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Subgraph folder: %s\n", s.Folder)
	fmt.Fprintf(&b, "Node types kept: %s\n", strings.Join(s.KeptTypes, ", "))
	fmt.Fprintf(&b, "Nodes: %d\n", s.Nodes)
	fmt.Fprintf(&b, "Edges: %d\n", s.Edges)
	return b.String()
}

// WriteFile writes the report to path, replacing any previous report.
func (s Stats) WriteFile(path string) error {
	if err := os.WriteFile(path, []byte(s.String()), 0o644); err != nil {
		return fmt.Errorf("failed to write stats %s: %w", path, err)
	}
	return nil
}
