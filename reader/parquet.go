package reader

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/parquet-go/parquet-go"

	"github.com/vegasq/condmask/table"
)

// FileColumn is the column added to rows read through a glob pattern
const FileColumn = "_file"

// maxFiles limits how many files a single pattern may expand to
const maxFiles = 1000

// ErrNoMatch is returned when a glob pattern matches no files
var ErrNoMatch = errors.New("no files match pattern")

// Reader reads parquet files and returns rows as maps.
//
// It maintains both an OS file handle and a parquet file handle to enable
// proper resource cleanup.
type Reader struct {
	path   string
	file   *os.File
	pqFile *parquet.File
}

// NewReader creates a new parquet reader for the specified file path.
//
// The file is opened and validated as a parquet file. Returns an error if
// the file doesn't exist or is not a valid parquet file.
func NewReader(path string) (*Reader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	stat, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	pqFile, err := parquet.OpenFile(file, stat.Size())
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}

	return &Reader{
		path:   path,
		file:   file,
		pqFile: pqFile,
	}, nil
}

// ReadAll reads all rows from the parquet file into memory.
//
// Each row is returned as a map where keys are column names and values are
// the column values.
func (r *Reader) ReadAll() ([]map[string]interface{}, error) {
	rows := make([]map[string]interface{}, 0, r.pqFile.NumRows())

	reader := parquet.NewReader(r.pqFile)
	defer func() { _ = reader.Close() }()

	for {
		row := make(map[string]interface{})
		err := reader.Read(&row)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to read row: %w", err)
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// Columns returns the top-level column names in schema order
func (r *Reader) Columns() []string {
	fields := r.Schema().Fields()
	columns := make([]string, 0, len(fields))
	for _, field := range fields {
		columns = append(columns, field.Name())
	}
	return columns
}

// ReadFrame reads the whole file into a frame named after the file path
func (r *Reader) ReadFrame() (*table.Frame, error) {
	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	return table.FromRows(r.path, r.Columns(), rows)
}

// Schema returns the parquet file schema.
func (r *Reader) Schema() *parquet.Schema {
	return r.pqFile.Schema()
}

// Close closes the parquet reader and releases associated resources.
//
// It is safe to call Close multiple times.
func (r *Reader) Close() error {
	if r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}

// ReadFile reads a single parquet file into a frame
func ReadFile(path string) (*table.Frame, error) {
	r, err := NewReader(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Close() }()

	return r.ReadFrame()
}

// ReadPattern reads every parquet file matching pattern into one frame.
//
// The pattern supports doublestar globbing:
//   - * matches any sequence of non-separator characters
//   - ** matches any number of directories
//   - ? matches any single non-separator character
//   - [range] matches any character in range
//   - {a,b} matches either a or b
//
// A pattern without wildcards reads that single file unchanged. Otherwise
// rows are concatenated in file name order and tagged with a FileColumn
// holding their source path; all files must share the same columns.
func ReadPattern(pattern string) (*table.Frame, error) {
	if !strings.ContainsAny(pattern, "*?[]{}") {
		return ReadFile(pattern)
	}

	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid glob pattern: %w", err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoMatch, pattern)
	}
	if len(matches) > maxFiles {
		return nil, fmt.Errorf("glob pattern matched too many files (%d), maximum is %d", len(matches), maxFiles)
	}

	var (
		columns []string
		allRows []map[string]interface{}
	)
	for _, filePath := range matches {
		r, err := NewReader(filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", filePath, err)
		}

		fileColumns := r.Columns()
		rows, readErr := r.ReadAll()
		closeErr := r.Close()

		// Preserve the first error encountered
		if readErr != nil {
			return nil, fmt.Errorf("failed to read rows from %s: %w", filePath, readErr)
		}
		if closeErr != nil {
			return nil, fmt.Errorf("failed to close %s: %w", filePath, closeErr)
		}

		if columns == nil {
			columns = fileColumns
		} else if !sameColumns(columns, fileColumns) {
			return nil, fmt.Errorf("%s has columns %v, expected %v", filePath, fileColumns, columns)
		}

		for i := range rows {
			rows[i][FileColumn] = filePath
		}
		allRows = append(allRows, rows...)
	}

	return table.FromRows(pattern, append(columns, FileColumn), allRows)
}

func sameColumns(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
