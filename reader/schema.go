package reader

import (
	"github.com/parquet-go/parquet-go"
)

// ColumnInfo describes a leaf column of a parquet file
type ColumnInfo struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Optional bool   `json:"optional"`
	Repeated bool   `json:"repeated"`
}

// ColumnInfo returns the leaf columns of the file's schema.
//
// Nested fields use dot notation (e.g. "address.street"); only top-level
// leaf columns can be referenced by a condition.
func (r *Reader) ColumnInfo() []ColumnInfo {
	var infos []ColumnInfo
	for _, field := range r.Schema().Fields() {
		infos = appendColumnInfo(infos, field, "", false)
	}
	return infos
}

// ReadColumnInfo opens path and returns its column descriptions
func ReadColumnInfo(path string) ([]ColumnInfo, error) {
	r, err := NewReader(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Close() }()

	return r.ColumnInfo(), nil
}

// appendColumnInfo recursively collects leaf fields, propagating the
// repeated flag from parent groups.
func appendColumnInfo(infos []ColumnInfo, field parquet.Field, prefix string, parentRepeated bool) []ColumnInfo {
	name := field.Name()
	if prefix != "" {
		name = prefix + "." + name
	}
	repeated := parentRepeated || field.Repeated()

	if children := field.Fields(); len(children) > 0 {
		for _, child := range children {
			infos = appendColumnInfo(infos, child, name, repeated)
		}
		return infos
	}

	return append(infos, ColumnInfo{
		Name:     name,
		Type:     typeName(field),
		Optional: field.Optional(),
		Repeated: repeated,
	})
}

// typeName maps parquet physical and logical types to the literal kinds a
// condition can compare against.
func typeName(field parquet.Field) string {
	if field.Type() == nil {
		return "GROUP"
	}

	if logicalType := field.Type().LogicalType(); logicalType != nil {
		switch logicalType.String() {
		case "STRING", "UTF8", "ENUM", "JSON":
			return "STRING"
		case "DATE", "TIME", "TIMESTAMP", "DECIMAL", "UUID":
			return logicalType.String()
		}
	}

	switch field.Type().Kind() {
	case parquet.Boolean:
		return "BOOLEAN"
	case parquet.Int32:
		return "INT32"
	case parquet.Int64:
		return "INT64"
	case parquet.Int96:
		return "INT96"
	case parquet.Float:
		return "FLOAT32"
	case parquet.Double:
		return "FLOAT64"
	case parquet.ByteArray:
		return "BYTE_ARRAY"
	case parquet.FixedLenByteArray:
		return "FIXED_LEN_BYTE_ARRAY"
	default:
		return "UNKNOWN"
	}
}
