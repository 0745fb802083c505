package output

import (
	"io"

	"github.com/olekukonko/tablewriter"
)

// TableFormatter outputs rows as an aligned text table
type TableFormatter struct {
	writer io.Writer
}

// NewTableFormatter creates a new text table formatter
func NewTableFormatter(w io.Writer) *TableFormatter {
	return &TableFormatter{writer: w}
}

// SetOutput sets the output writer
func (t *TableFormatter) SetOutput(w io.Writer) {
	t.writer = w
}

// Format renders a bordered table with column names as the header
func (t *TableFormatter) Format(columns []string, rows []map[string]interface{}) error {
	if len(columns) == 0 {
		return nil
	}

	tw := tablewriter.NewWriter(t.writer)
	tw.SetAutoFormatHeaders(false)
	tw.SetAutoWrapText(false)
	tw.SetHeader(columns)
	for _, row := range rows {
		tw.Append(record(columns, row))
	}
	tw.Render()
	return nil
}
