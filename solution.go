package iqfit

import (
	"fmt"
	"slices"
	"strings"

	"github.com/busecoban/the-iq-fit-solver-v4/internal"
	"github.com/busecoban/the-iq-fit-solver-v4/pkg/primitives"
)

// Solution is one complete tiling of the board. Each cell carries the symbol
// of the piece covering it, 'A' for piece 0 through 'L' for piece 11, stored
// in row-major order.
type Solution struct {
	cells []byte
}

// NewSolution wraps a row-major symbol buffer as a Solution. The buffer is
// not copied; callers must not mutate it afterwards.
func NewSolution(cells []byte) Solution {
	if len(cells) != internal.NumCells {
		panic(fmt.Sprintf("BUG: solution buffer has %d cells, want %d", len(cells), internal.NumCells))
	}
	return Solution{cells: cells}
}

func (s Solution) Width() int {
	return internal.BoardWidth
}

func (s Solution) Height() int {
	return internal.BoardHeight
}

// At returns the symbol at board position (x, y).
func (s Solution) At(x, y int) byte {
	return s.cells[y*internal.BoardWidth+x]
}

// Repr returns the canonical representation of the solution: Height lines of
// Width symbols each.
func (s Solution) Repr() string {
	lines := make([]string, s.Height())
	for y := range s.Height() {
		lines[y] = string(s.cells[y*internal.BoardWidth : (y+1)*internal.BoardWidth])
	}
	return strings.Join(lines, "\n")
}

func (s Solution) DebugString() string {
	return fmt.Sprintf("Solution{width: %d, height: %d, cells: %q}", s.Width(), s.Height(), s.cells)
}

// Verifier re-derives piece coverage from finished solutions and checks the
// exact-cover conditions independently of the search that produced them.
type Verifier struct {
	tables *internal.Tables
}

func NewVerifier() (*Verifier, error) {
	tables, err := internal.BuildTables()
	if err != nil {
		return nil, fmt.Errorf("internal.BuildTables: %w", err)
	}
	return &Verifier{tables: tables}, nil
}

// Verify checks that s is an exact tiling: every cell carries a piece symbol,
// the per-piece coverage masks are pairwise disjoint and fill the board, and
// each piece's cells form one of that piece's legal placements.
func (v *Verifier) Verify(s Solution) error {
	var masks [internal.NumPieces]primitives.CellSet
	for i, sym := range s.cells {
		if sym == kEmpty {
			return fmt.Errorf("cell %d is empty", i)
		}
		p := int(sym) - 'A'
		if p < 0 || p >= internal.NumPieces {
			return fmt.Errorf("cell %d has unknown symbol %q", i, sym)
		}
		masks[p] = masks[p].With(i)
	}

	var union primitives.CellSet
	for p, mask := range masks {
		pt := &v.tables.Pieces[p]
		if mask.Count() != pt.Size {
			return fmt.Errorf("piece %c covers %d cells, want %d", 'A'+p, mask.Count(), pt.Size)
		}
		if union.Overlaps(mask) {
			return fmt.Errorf("piece %c overlaps an earlier piece", 'A'+p)
		}
		union = union.Union(mask)
		legal := slices.ContainsFunc(pt.Placements, func(pl internal.Placement) bool {
			return pl.Mask == mask
		})
		if !legal {
			return fmt.Errorf("piece %c cells %v do not form a legal placement", 'A'+p, mask)
		}
	}
	if union != primitives.FullCellSet(internal.NumCells) {
		return fmt.Errorf("covered cells %v do not fill the board", union)
	}
	return nil
}
