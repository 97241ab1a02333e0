package table

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const defaultBufSize = 64 * 1024

// Reader parses delimited tables.
type Reader struct {
	dialect Dialect
	logger  *slog.Logger
}

// NewReader creates a Reader for the given dialect. A nil logger discards output.
func NewReader(d Dialect, logger *slog.Logger) *Reader {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Reader{dialect: d, logger: logger}
}

// ReadFile reads the table stored at path. The file is closed before ReadFile
// returns, so the same path may be rewritten right after.
func (r *Reader) ReadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &MissingFileError{Path: path}
		}
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	t, err := r.read(f, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return t, nil
}

// Read parses a table from src.
func (r *Reader) Read(src io.Reader) (*Table, error) {
	return r.read(src, "")
}

func (r *Reader) read(src io.Reader, name string) (*Table, error) {
	if err := r.dialect.Validate(); err != nil {
		return nil, err
	}

	// Undecodable bytes become U+FFFD; a leading byte order mark is dropped.
	decoded := transform.NewReader(src, unicode.UTF8BOM.NewDecoder())
	sc := newScanner(bufio.NewReaderSize(decoded, defaultBufSize), r.dialect)

	header, err := sc.next()
	if err == io.EOF {
		return nil, ErrNoHeader
	}
	if err != nil {
		return nil, err
	}

	t := &Table{Header: header}
	width := len(header)
	for n := 1; ; n++ {
		row, err := sc.next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(row) != width {
			r.logger.Debug("repaired malformed row",
				"file", name, "row", n, "fields", len(row), "width", width)
			row = Repair(row, width)
			t.Repaired++
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}
