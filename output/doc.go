// Package output provides formatters for writing selected rows.
//
// Supported formats:
//   - jsonl: one JSON object per line
//   - json: a single indented JSON array
//   - csv: comma-separated values with a header row
//   - table: an aligned text table
//
// Example usage:
//
//	formatter, err := output.New("csv", os.Stdout)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := formatter.Format(frame.Columns(), rows); err != nil {
//	    log.Fatal(err)
//	}
package output
