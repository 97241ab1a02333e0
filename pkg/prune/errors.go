package prune

import (
	"fmt"
	"strings"
)

// SchemaError is returned when a table lacks a column the pruning depends on.
type SchemaError struct {
	Table    string
	Missing  string
	Required []string
	Header   []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s must contain columns %s; missing %q, found: %q",
		e.Table, strings.Join(e.Required, " and "), e.Missing, e.Header)
}
