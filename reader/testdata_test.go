package reader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/parquet-go/parquet-go"
)

// sampleRow mirrors the two-column table used throughout the condition tests
type sampleRow struct {
	C1 int64  `parquet:"c1"`
	C2 string `parquet:"c2"`
}

func sampleRows() []sampleRow {
	return []sampleRow{
		{C1: 0, C2: "a"},
		{C1: 1, C2: "b"},
		{C1: 2, C2: "c"},
		{C1: 3, C2: "d"},
		{C1: 4, C2: "e"},
		{C1: 5, C2: "f"},
	}
}

// writeParquet writes rows to dir/name and returns the path
func writeParquet[T any](t *testing.T, dir, name string, rows []T) string {
	t.Helper()
	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	writer := parquet.NewGenericWriter[T](f)
	if _, err := writer.Write(rows); err != nil {
		t.Fatalf("failed to write test data: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close writer: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("failed to close file: %v", err)
	}

	return path
}
