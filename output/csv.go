package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// CSVFormatter outputs rows as CSV format
type CSVFormatter struct {
	writer io.Writer
}

// NewCSVFormatter creates a new CSV formatter
func NewCSVFormatter(w io.Writer) *CSVFormatter {
	return &CSVFormatter{writer: w}
}

// SetOutput sets the output writer
func (c *CSVFormatter) SetOutput(w io.Writer) {
	c.writer = w
}

// Format writes a header row followed by one record per row.
// Nothing is written when there are no columns.
func (c *CSVFormatter) Format(columns []string, rows []map[string]interface{}) error {
	if len(columns) == 0 {
		return nil
	}

	csvWriter := csv.NewWriter(c.writer)

	if err := csvWriter.Write(columns); err != nil {
		return err
	}
	for _, row := range rows {
		if err := csvWriter.Write(csvRecord(columns, row)); err != nil {
			return err
		}
	}

	csvWriter.Flush()
	if err := csvWriter.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV writer: %w", err)
	}
	return nil
}

// csvRecord renders one row like record, with text cells sanitized
func csvRecord(columns []string, row map[string]interface{}) []string {
	out := record(columns, row)
	for i, col := range columns {
		switch row[col].(type) {
		case string, []byte:
			out[i] = sanitizeCell(out[i])
		}
	}
	return out
}

// sanitizeCell guards against CSV injection: text starting with a character
// that spreadsheet applications treat as a formula is prefixed with a single
// quote, and existing single quotes are doubled.
func sanitizeCell(s string) string {
	if s == "" {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '\n', '|':
		return "'" + strings.ReplaceAll(s, "'", "''")
	}
	return s
}
