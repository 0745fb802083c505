package output

import (
	"bytes"
	"encoding/csv"
	stdjson "encoding/json"
	"errors"
	"strings"
	"testing"
)

var testColumns = []string{"id", "name", "score"}

var testRows = []map[string]interface{}{
	{"id": int64(1), "name": "alice", "score": 95.5},
	{"id": int64(2), "name": "bob, jr", "score": nil},
}

func TestCSVFormatter_Format(t *testing.T) {
	tests := []struct {
		name      string
		columns   []string
		rows      []map[string]interface{}
		wantLines int
	}{
		{"no columns", nil, nil, 0},
		{"header only", testColumns, nil, 1},
		{"rows", testColumns, testRows, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := NewCSVFormatter(&buf).Format(tt.columns, tt.rows); err != nil {
				t.Fatalf("Format() error = %v", err)
			}

			records, err := csv.NewReader(&buf).ReadAll()
			if err != nil {
				t.Fatalf("output is not valid CSV: %v", err)
			}
			if len(records) != tt.wantLines {
				t.Fatalf("got %d records, want %d", len(records), tt.wantLines)
			}
			if tt.wantLines == 3 {
				if got := strings.Join(records[0], ","); got != "id,name,score" {
					t.Errorf("header = %q", got)
				}
				if records[2][1] != "bob, jr" {
					t.Errorf("quoted field = %q, want %q", records[2][1], "bob, jr")
				}
				if records[2][2] != "" {
					t.Errorf("nil cell = %q, want empty", records[2][2])
				}
			}
		})
	}
}

func TestCSVFormatter_FormulaInjection(t *testing.T) {
	rows := []map[string]interface{}{
		{"v": `=HYPERLINK("http://x","y")`},
		{"v": "+1"},
		{"v": "-cmd"},
		{"v": "@SUM(A1)"},
		{"v": "|calc"},
		{"v": "\tx"},
		{"v": "=it's"},
		{"v": []byte("=bytes")},
		{"v": "plain'text"},
		{"v": int64(-5)},
		{"v": -2.5},
	}
	want := []string{
		`'=HYPERLINK("http://x","y")`,
		"'+1",
		"'-cmd",
		"'@SUM(A1)",
		"'|calc",
		"'\tx",
		"'=it''s",
		"'=bytes",
		"plain'text",
		"-5",
		"-2.5",
	}

	var buf bytes.Buffer
	if err := NewCSVFormatter(&buf).Format([]string{"v"}, rows); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	if len(records) != len(want)+1 {
		t.Fatalf("got %d records, want %d", len(records), len(want)+1)
	}
	for i, w := range want {
		if got := records[i+1][0]; got != w {
			t.Errorf("row %d = %q, want %q", i, got, w)
		}
	}
}

func TestJSONFormatter_Format(t *testing.T) {
	var buf bytes.Buffer
	if err := NewJSONFormatter(&buf).Format(testColumns, testRows); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if lines[0] != `{"id":1,"name":"alice","score":95.5}` {
		t.Errorf("line 0 = %s", lines[0])
	}

	var row map[string]interface{}
	if err := stdjson.Unmarshal([]byte(lines[1]), &row); err != nil {
		t.Fatalf("invalid JSON line: %v", err)
	}
	if row["score"] != nil {
		t.Errorf("score = %v, want null", row["score"])
	}
}

func TestJSONArrayFormatter_Format(t *testing.T) {
	tests := []struct {
		name    string
		rows    []map[string]interface{}
		wantLen int
	}{
		{"empty", nil, 0},
		{"rows", testRows, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := NewJSONArrayFormatter(&buf).Format(testColumns, tt.rows); err != nil {
				t.Fatalf("Format() error = %v", err)
			}

			var decoded []map[string]interface{}
			if err := stdjson.Unmarshal(buf.Bytes(), &decoded); err != nil {
				t.Fatalf("invalid JSON array: %v\n%s", err, buf.String())
			}
			if len(decoded) != tt.wantLen {
				t.Errorf("got %d rows, want %d", len(decoded), tt.wantLen)
			}
		})
	}
}

func TestTableFormatter_Format(t *testing.T) {
	var buf bytes.Buffer
	if err := NewTableFormatter(&buf).Format(testColumns, testRows); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{"id", "name", "score", "alice", "bob, jr", "95.5"} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	if err := NewTableFormatter(&buf).Format(nil, testRows); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("expected no output without columns, got %q", buf.String())
	}
}

func TestNew(t *testing.T) {
	for _, name := range Formats {
		f, err := New(name, &bytes.Buffer{})
		if err != nil {
			t.Errorf("New(%q) error = %v", name, err)
		}
		if f == nil {
			t.Errorf("New(%q) returned nil formatter", name)
		}
	}

	if _, err := New("xml", &bytes.Buffer{}); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("New(xml) error = %v, want %v", err, ErrUnsupportedFormat)
	}
}

func TestSetOutput(t *testing.T) {
	var first, second bytes.Buffer
	f := NewJSONFormatter(&first)
	f.SetOutput(&second)
	if err := f.Format(nil, testRows[:1]); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if first.Len() != 0 || second.Len() == 0 {
		t.Errorf("SetOutput did not redirect output")
	}
}
