package condition

import (
	"fmt"
	"math"
)

// compare compares a table cell with a literal using the given operator
func compare(cell interface{}, op CompareOp, lit Literal) (bool, error) {
	if cell == nil {
		return op == OpNotEqual, nil
	}

	switch lit.Kind {
	case LiteralInteger:
		if v, ok := toInt64(cell); ok {
			return compareOrdered(v, op, lit.Int), nil
		}
		if v, ok := toFloat64(cell); ok {
			return compareFloats(v, op, float64(lit.Int)), nil
		}
	case LiteralFloat:
		if v, ok := toFloat64(cell); ok {
			return compareFloats(v, op, lit.Float), nil
		}
	case LiteralString:
		if v, ok := toString(cell); ok {
			return compareOrdered(v, op, lit.Str), nil
		}
	}

	// Type mismatch: equality is decidable, ordering is not
	switch op {
	case OpEqual:
		return false, nil
	case OpNotEqual:
		return true, nil
	default:
		return false, fmt.Errorf("%w: cannot order %T against %s literal", ErrTypeMismatch, cell, lit.Kind)
	}
}

// toInt64 converts integer values to int64
func toInt64(v interface{}) (int64, bool) {
	switch val := v.(type) {
	case int:
		return int64(val), true
	case int8:
		return int64(val), true
	case int16:
		return int64(val), true
	case int32:
		return int64(val), true
	case int64:
		return val, true
	case uint:
		return int64(val), val <= math.MaxInt64
	case uint8:
		return int64(val), true
	case uint16:
		return int64(val), true
	case uint32:
		return int64(val), true
	case uint64:
		return int64(val), val <= math.MaxInt64
	default:
		return 0, false
	}
}

// toFloat64 converts a numeric value to float64 if possible
func toFloat64(v interface{}) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int8:
		return float64(val), true
	case int16:
		return float64(val), true
	case int32:
		return float64(val), true
	case int64:
		return float64(val), true
	case uint:
		return float64(val), true
	case uint8:
		return float64(val), true
	case uint16:
		return float64(val), true
	case uint32:
		return float64(val), true
	case uint64:
		return float64(val), true
	default:
		return 0, false
	}
}

// toString converts string-like values
func toString(v interface{}) (string, bool) {
	switch val := v.(type) {
	case string:
		return val, true
	case []byte:
		return string(val), true
	default:
		return "", false
	}
}

type ordered interface {
	~int64 | ~string
}

// compareOrdered compares two values of the same ordered type
func compareOrdered[T ordered](left T, op CompareOp, right T) bool {
	switch op {
	case OpEqual:
		return left == right
	case OpNotEqual:
		return left != right
	case OpLess:
		return left < right
	case OpGreater:
		return left > right
	case OpLessEqual:
		return left <= right
	case OpGreaterEqual:
		return left >= right
	default:
		return false
	}
}

// compareFloats compares two floats; NaN is unequal to everything
func compareFloats(left float64, op CompareOp, right float64) bool {
	switch op {
	case OpEqual:
		return left == right
	case OpNotEqual:
		return left != right
	case OpLess:
		return left < right
	case OpGreater:
		return left > right
	case OpLessEqual:
		return left <= right
	case OpGreaterEqual:
		return left >= right
	default:
		return false
	}
}
