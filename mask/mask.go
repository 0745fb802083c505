// Package mask provides a fixed-length boolean selection mask.
//
// A Mask holds one boolean per table row, in row order. It is the result of
// evaluating a condition against a table and is backed by a bitset so that
// elementwise AND/OR over large tables stays cheap.
package mask

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bits-and-blooms/bitset"
)

// ErrLengthMismatch is returned when two masks of different length are combined.
var ErrLengthMismatch = errors.New("mask length mismatch")

// Mask is an ordered sequence of booleans, one per row.
type Mask struct {
	n    int
	bits *bitset.BitSet
}

// New returns an all-false mask of length n.
func New(n int) *Mask {
	if n < 0 {
		n = 0
	}
	return &Mask{n: n, bits: bitset.New(uint(n))}
}

// FromBools builds a mask from a slice of booleans.
func FromBools(values []bool) *Mask {
	m := New(len(values))
	for i, v := range values {
		if v {
			m.bits.Set(uint(i))
		}
	}
	return m
}

// Len returns the number of rows covered by the mask.
func (m *Mask) Len() int {
	return m.n
}

// Get reports whether row i is selected. Out-of-range rows are never selected.
func (m *Mask) Get(i int) bool {
	if i < 0 || i >= m.n {
		return false
	}
	return m.bits.Test(uint(i))
}

// Set marks row i as selected or not. Out-of-range rows are ignored.
func (m *Mask) Set(i int, v bool) {
	if i < 0 || i >= m.n {
		return
	}
	m.bits.SetTo(uint(i), v)
}

// And returns the elementwise conjunction of m and o.
func (m *Mask) And(o *Mask) (*Mask, error) {
	if m.n != o.n {
		return nil, fmt.Errorf("%w: %d and %d", ErrLengthMismatch, m.n, o.n)
	}
	return &Mask{n: m.n, bits: m.bits.Intersection(o.bits)}, nil
}

// Or returns the elementwise disjunction of m and o.
func (m *Mask) Or(o *Mask) (*Mask, error) {
	if m.n != o.n {
		return nil, fmt.Errorf("%w: %d and %d", ErrLengthMismatch, m.n, o.n)
	}
	return &Mask{n: m.n, bits: m.bits.Union(o.bits)}, nil
}

// Count returns the number of selected rows.
func (m *Mask) Count() int {
	return int(m.bits.Count())
}

// Indices returns the selected row indices in ascending order.
func (m *Mask) Indices() []int {
	indices := make([]int, 0, m.Count())
	for i, ok := m.bits.NextSet(0); ok && int(i) < m.n; i, ok = m.bits.NextSet(i + 1) {
		indices = append(indices, int(i))
	}
	return indices
}

// Bools returns the mask as a slice of booleans.
func (m *Mask) Bools() []bool {
	out := make([]bool, m.n)
	for i := range out {
		out[i] = m.bits.Test(uint(i))
	}
	return out
}

// Equal reports whether both masks have the same length and selection.
func (m *Mask) Equal(o *Mask) bool {
	if m == nil || o == nil {
		return m == o
	}
	if m.n != o.n {
		return false
	}
	for i := 0; i < m.n; i++ {
		if m.bits.Test(uint(i)) != o.bits.Test(uint(i)) {
			return false
		}
	}
	return true
}

// String renders the mask as [T,F,...].
func (m *Mask) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i := 0; i < m.n; i++ {
		if i > 0 {
			sb.WriteByte(',')
		}
		if m.bits.Test(uint(i)) {
			sb.WriteByte('T')
		} else {
			sb.WriteByte('F')
		}
	}
	sb.WriteByte(']')
	return sb.String()
}
