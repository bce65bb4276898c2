package primitives

import "math/bits"

// PieceSet represents a set of piece indices as a 16-bit mask.
//
// Piece indices must be in [0, 16). The zero value is the empty set.
type PieceSet uint16

// FullPieceSet returns the set containing every piece in [0, n).
func FullPieceSet(n int) PieceSet {
	return PieceSet(1)<<uint(n) - 1
}

// Contains reports whether piece is in the set.
func (s PieceSet) Contains(piece int) bool {
	return s&(1<<uint(piece)) != 0
}

// With returns the set with piece added.
func (s PieceSet) With(piece int) PieceSet {
	return s | 1<<uint(piece)
}

// Without returns the set with piece removed.
func (s PieceSet) Without(piece int) PieceSet {
	return s &^ (1 << uint(piece))
}

// Count returns the number of pieces in the set.
func (s PieceSet) Count() int {
	return bits.OnesCount16(uint16(s))
}
