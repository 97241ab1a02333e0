// Package prune extracts a type-restricted subgraph from a node table and an
// edge table.
//
// Nodes survive when their node_type is in the requested KeepSet. Edges
// survive only when both endpoints survive, so the output never references a
// node that was removed. Identifiers are compared as exact strings: "01" and
// "1" are different nodes.
package prune

import (
	"sort"

	"github.com/leapstack-labs/kgprune/pkg/table"
)

// Required column names.
const (
	ColumnNodeIndex = "node_index"
	ColumnNodeType  = "node_type"
	ColumnX         = "x_index"
	ColumnY         = "y_index"
)

// KeepSet is the set of node type labels that survive pruning.
type KeepSet map[string]struct{}

// NewKeepSet builds a KeepSet from type labels. Duplicates collapse.
func NewKeepSet(types ...string) KeepSet {
	k := make(KeepSet, len(types))
	for _, t := range types {
		k[t] = struct{}{}
	}
	return k
}

// Has reports whether label is kept. Matching is exact and case-sensitive.
func (k KeepSet) Has(label string) bool {
	_, ok := k[label]
	return ok
}

// Sorted returns the labels in lexical order.
func (k KeepSet) Sorted() []string {
	out := make([]string, 0, len(k))
	for t := range k {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Result is the pruned table pair.
type Result struct {
	Nodes *table.Table
	Edges *table.Table

	// NodesByType counts surviving nodes per type label.
	NodesByType map[string]int
}

// NodeCount returns the number of surviving nodes.
func (r *Result) NodeCount() int { return r.Nodes.Len() }

// EdgeCount returns the number of surviving edges.
func (r *Result) EdgeCount() int { return r.Edges.Len() }

// Prune filters nodes by type and drops every edge with a removed endpoint.
// Row order is preserved in both tables. Both headers are checked before any
// filtering; a missing column yields a *SchemaError.
func Prune(nodes, edges *table.Table, keep KeepSet) (*Result, error) {
	idxCol, err := requireColumn(nodes, "node table", ColumnNodeIndex, ColumnNodeType)
	if err != nil {
		return nil, err
	}
	typeCol, err := requireColumn(nodes, "node table", ColumnNodeType, ColumnNodeIndex)
	if err != nil {
		return nil, err
	}
	xCol, err := requireColumn(edges, "edge table", ColumnX, ColumnY)
	if err != nil {
		return nil, err
	}
	yCol, err := requireColumn(edges, "edge table", ColumnY, ColumnX)
	if err != nil {
		return nil, err
	}

	byType := make(map[string]int, len(keep))
	keptNodes := nodes.Filter(func(row []string) bool {
		if !keep.Has(row[typeCol]) {
			return false
		}
		byType[row[typeCol]]++
		return true
	})

	kept := make(map[string]struct{}, keptNodes.Len())
	for _, row := range keptNodes.Rows {
		kept[row[idxCol]] = struct{}{}
	}

	keptEdges := edges.Filter(func(row []string) bool {
		_, x := kept[row[xCol]]
		_, y := kept[row[yCol]]
		return x && y
	})

	return &Result{Nodes: keptNodes, Edges: keptEdges, NodesByType: byType}, nil
}

// requireColumn locates name in t's header. other names the column that is
// required alongside it, for the error message.
func requireColumn(t *table.Table, kind, name, other string) (int, error) {
	i := t.Column(name)
	if i < 0 {
		required := []string{name, other}
		sort.Strings(required)
		return -1, &SchemaError{Table: kind, Missing: name, Required: required, Header: t.Header}
	}
	return i, nil
}
