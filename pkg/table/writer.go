package table

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const defaultFilePerm os.FileMode = 0o644

// Writer serializes tables with minimal quoting and \n record terminators.
type Writer struct {
	dialect Dialect
	perm    os.FileMode
}

// NewWriter creates a Writer for the given dialect.
func NewWriter(d Dialect) *Writer {
	return &Writer{dialect: d}
}

// WithPerm sets the permission bits for files created by WriteFile.
// By default an existing destination keeps its mode and new files get 0644.
func (w *Writer) WithPerm(perm os.FileMode) *Writer {
	w.perm = perm
	return w
}

// Write encodes t to dst.
func (w *Writer) Write(dst io.Writer, t *Table) error {
	if err := w.dialect.Validate(); err != nil {
		return err
	}
	bw := bufio.NewWriterSize(dst, defaultBufSize)
	w.writeRecord(bw, t.Header)
	for _, row := range t.Rows {
		w.writeRecord(bw, row)
	}
	return bw.Flush()
}

// WriteFile replaces the file at path with the encoded table. The data is
// written to a temporary file in the same directory and renamed over path,
// so a failed write leaves the previous contents in place.
func (w *Writer) WriteFile(path string, t *Table) (err error) {
	if err := w.dialect.Validate(); err != nil {
		return err
	}

	perm := w.perm
	if perm == 0 {
		perm = defaultFilePerm
		if info, statErr := os.Stat(path); statErr == nil {
			perm = info.Mode().Perm()
		}
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", path, err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if err = w.Write(tmp, t); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err = tmp.Chmod(perm); err != nil {
		return fmt.Errorf("failed to set mode on %s: %w", tmpPath, err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("failed to sync %s: %w", tmpPath, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", tmpPath, err)
	}
	if err = os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}

	// Best effort: persist the rename.
	_ = syncDir(dir)
	return nil
}

func (w *Writer) writeRecord(bw *bufio.Writer, rec []string) {
	q := w.dialect.Quote

	// A lone empty field would otherwise read back as a blank line.
	if len(rec) == 1 && rec[0] == "" {
		bw.WriteRune(q)
		bw.WriteRune(q)
		bw.WriteByte('\n')
		return
	}

	for i, field := range rec {
		if i > 0 {
			bw.WriteRune(w.dialect.Delimiter)
		}
		if !w.needsQuotes(field) {
			bw.WriteString(field)
			continue
		}
		bw.WriteRune(q)
		for _, c := range field {
			if c == q {
				bw.WriteRune(q)
			}
			bw.WriteRune(c)
		}
		bw.WriteRune(q)
	}
	bw.WriteByte('\n')
}

func (w *Writer) needsQuotes(field string) bool {
	return strings.ContainsFunc(field, func(c rune) bool {
		return c == w.dialect.Delimiter || c == w.dialect.Quote || c == '\r' || c == '\n'
	})
}
