package internal

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/busecoban/the-iq-fit-solver-v4/pkg/primitives"
)

// Placement is one oriented piece anchored at one board position.
type Placement struct {
	// Mask has one bit set per covered cell.
	Mask primitives.CellSet
	// Cells lists the covered cell indices. It carries the same information
	// as Mask in the order the painter visits them.
	Cells []int
}

// PieceTables holds every placement of one piece plus the reverse index from
// board cell to the placements covering it.
type PieceTables struct {
	Size       int
	Placements []Placement
	// ByCell[c] lists, ascending, the indices into Placements whose mask
	// covers cell c.
	ByCell [NumCells][]int
}

// Tables holds the placement tables for the whole piece catalogue.
//
// Building tables is pure and deterministic. Concurrent searchers each build
// their own copy rather than sharing one.
type Tables struct {
	Pieces [NumPieces]PieceTables
}

// BuildTables parses the piece catalogue and enumerates every position of
// every distinct orientation that lies fully on the board.
func BuildTables() (*Tables, error) {
	t := &Tables{}
	for p, raw := range pieceShapes {
		shape, err := parseShape(raw)
		if err != nil {
			return nil, fmt.Errorf("piece %d: %w", p, err)
		}
		pt := &t.Pieces[p]
		pt.Size = len(shape)
		for _, orient := range orientations(shape) {
			maxX, maxY := 0, 0
			for _, o := range orient {
				maxX = max(maxX, o.X)
				maxY = max(maxY, o.Y)
			}
			for oy := 0; oy+maxY < BoardHeight; oy++ {
				for ox := 0; ox+maxX < BoardWidth; ox++ {
					pl, ok := anchor(orient, ox, oy)
					if !ok {
						logrus.WithFields(logrus.Fields{
							"piece": p,
							"ox":    ox,
							"oy":    oy,
						}).Warn("Placement falls outside the board, skipped")
						continue
					}
					pt.Placements = append(pt.Placements, pl)
				}
			}
		}
		for i, pl := range pt.Placements {
			for _, c := range pl.Cells {
				pt.ByCell[c] = append(pt.ByCell[c], i)
			}
		}
	}
	return t, nil
}

// anchor translates orient so its origin sits at (ox, oy) and reports whether
// every cell landed on the board. The translation loops already bound the
// anchor, so ok is false only if an orientation was malformed.
func anchor(orient []Offset, ox, oy int) (Placement, bool) {
	var mask primitives.CellSet
	cells := make([]int, 0, len(orient))
	for _, o := range orient {
		x, y := ox+o.X, oy+o.Y
		if x < 0 || x >= BoardWidth || y < 0 || y >= BoardHeight {
			return Placement{}, false
		}
		idx := y*BoardWidth + x
		mask = mask.With(idx)
		cells = append(cells, idx)
	}
	return Placement{Mask: mask, Cells: cells}, true
}
