// Package table reads and writes delimited tables with a header row.
//
// A Table is materialized fully in memory. Every row is kept at exactly the
// header's width: short rows are padded with empty strings and long rows are
// truncated when they are read.
package table

import (
	"errors"
	"fmt"
)

// Dialect describes the structural characters of a delimited file.
type Dialect struct {
	// Delimiter separates fields within a record.
	Delimiter rune
	// Quote wraps fields that contain structural characters.
	// A doubled Quote inside a quoted field stands for one literal Quote.
	Quote rune
}

// Common dialects.
var (
	TSV = Dialect{Delimiter: '\t', Quote: '"'}
	CSV = Dialect{Delimiter: ',', Quote: '"'}
)

// Validate reports whether the dialect can be parsed unambiguously.
func (d Dialect) Validate() error {
	if d.Delimiter == 0 || d.Quote == 0 {
		return errors.New("dialect requires both a delimiter and a quote character")
	}
	if d.Delimiter == d.Quote {
		return fmt.Errorf("delimiter and quote character must differ, both are %q", d.Delimiter)
	}
	for _, r := range []rune{d.Delimiter, d.Quote} {
		if r == '\r' || r == '\n' {
			return fmt.Errorf("%q cannot be used as a delimiter or quote character", r)
		}
	}
	return nil
}

// Table is a header plus rows, in file order.
type Table struct {
	Header []string
	Rows   [][]string

	// Repaired counts the rows whose width was adjusted to the header's on read.
	Repaired int
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Column returns the position of the named column in the header, or -1.
func (t *Table) Column(name string) int {
	for i, h := range t.Header {
		if h == name {
			return i
		}
	}
	return -1
}

// Filter returns a table sharing t's header that holds the rows for which
// keep returns true, in their original order. Row slices are shared, not copied.
func (t *Table) Filter(keep func(row []string) bool) *Table {
	out := &Table{Header: t.Header, Rows: make([][]string, 0, len(t.Rows))}
	for _, row := range t.Rows {
		if keep(row) {
			out.Rows = append(out.Rows, row)
		}
	}
	return out
}

// Repair returns row adjusted to width fields. Missing trailing fields become
// empty strings; surplus trailing fields are dropped.
func Repair(row []string, width int) []string {
	switch {
	case len(row) == width:
		return row
	case len(row) > width:
		return row[:width:width]
	default:
		out := make([]string, width)
		copy(out, row)
		return out
	}
}
