package table

import (
	"errors"
	"fmt"
	"io/fs"
)

// ErrNoHeader is returned when a file holds no records at all.
var ErrNoHeader = errors.New("table has no header record")

// MissingFileError is returned when a table file (or the folder holding it) does not exist.
type MissingFileError struct {
	Path string
}

func (e *MissingFileError) Error() string {
	return fmt.Sprintf("file does not exist: %s", e.Path)
}

// Unwrap lets callers match the error with errors.Is(err, fs.ErrNotExist).
func (e *MissingFileError) Unwrap() error {
	return fs.ErrNotExist
}
