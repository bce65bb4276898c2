package primitives

import (
	"fmt"
	"iter"
	"math/bits"
	"strings"
)

// CellSet represents a set of board cell indices as a single 64-bit mask.
//
// Cell indices must be in [0, 64). The zero value is the empty set. All
// methods are value operations; a backtracking search can save a CellSet in a
// local and restore it by plain assignment.
type CellSet uint64

// MakeCellSet returns the set containing exactly the given cells.
func MakeCellSet(cells ...int) CellSet {
	var s CellSet
	for _, c := range cells {
		s |= 1 << uint(c)
	}
	return s
}

// FullCellSet returns the set containing every cell in [0, n).
func FullCellSet(n int) CellSet {
	if n >= 64 {
		return ^CellSet(0)
	}
	return CellSet(1)<<uint(n) - 1
}

// Contains reports whether cell is in the set.
func (s CellSet) Contains(cell int) bool {
	return s&(1<<uint(cell)) != 0
}

// With returns the set with cell added.
func (s CellSet) With(cell int) CellSet {
	return s | 1<<uint(cell)
}

// Without returns the set with cell removed.
func (s CellSet) Without(cell int) CellSet {
	return s &^ (1 << uint(cell))
}

// Union returns the union of s and t.
func (s CellSet) Union(t CellSet) CellSet {
	return s | t
}

// Minus returns the set with every cell of t removed.
func (s CellSet) Minus(t CellSet) CellSet {
	return s &^ t
}

// Overlaps reports whether s and t share any cell.
func (s CellSet) Overlaps(t CellSet) bool {
	return s&t != 0
}

// Count returns the number of cells in the set.
func (s CellSet) Count() int {
	return bits.OnesCount64(uint64(s))
}

// FirstClear returns the lowest cell index not in the set.
//
// A full 64-cell set returns 64; callers bound the result against their own
// cell count.
func (s CellSet) FirstClear() int {
	return bits.TrailingZeros64(^uint64(s))
}

// All returns the cells of the set in ascending order.
func (s CellSet) All() iter.Seq[int] {
	return func(yield func(int) bool) {
		b := uint64(s)
		for b != 0 {
			if !yield(bits.TrailingZeros64(b)) {
				return
			}
			b &= b - 1
		}
	}
}

func (s CellSet) String() string {
	parts := make([]string, 0, s.Count())
	for c := range s.All() {
		parts = append(parts, fmt.Sprint(c))
	}
	return fmt.Sprintf("CellSet{%s}", strings.Join(parts, ", "))
}
