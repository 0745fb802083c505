package output

import (
	"errors"
	"fmt"
	"io"
)

// ErrUnsupportedFormat is returned by New for unknown format names
var ErrUnsupportedFormat = errors.New("unsupported format")

// Formats lists the format names accepted by New
var Formats = []string{"jsonl", "json", "csv", "table"}

// Formatter defines the interface for output formatters.
//
// Implementers must provide Format to write rows in the target format and
// SetOutput to change the output destination.
type Formatter interface {
	// Format writes rows; columns fixes the column order where the format has one
	Format(columns []string, rows []map[string]interface{}) error

	// SetOutput changes the output writer
	SetOutput(w io.Writer)
}

// New returns the formatter registered under name
func New(name string, w io.Writer) (Formatter, error) {
	switch name {
	case "jsonl":
		return NewJSONFormatter(w), nil
	case "json":
		return NewJSONArrayFormatter(w), nil
	case "csv":
		return NewCSVFormatter(w), nil
	case "table":
		return NewTableFormatter(w), nil
	default:
		return nil, fmt.Errorf("%w: %q (supported: %v)", ErrUnsupportedFormat, name, Formats)
	}
}

// formatValue converts a cell to text for CSV and table output
func formatValue(v interface{}) string {
	if v == nil {
		return ""
	}

	switch val := v.(type) {
	case string:
		return val
	case []byte:
		return string(val)
	case int, int8, int16, int32, int64:
		return fmt.Sprintf("%d", val)
	case uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", val)
	case float32, float64:
		return fmt.Sprintf("%g", val)
	case bool:
		return fmt.Sprintf("%t", val)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// record renders one row in column order
func record(columns []string, row map[string]interface{}) []string {
	out := make([]string, len(columns))
	for i, col := range columns {
		out[i] = formatValue(row[col])
	}
	return out
}
