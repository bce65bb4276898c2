package internal

import (
	"fmt"
	"slices"
	"strings"
)

// Board dimensions and the piece catalogue are fixed at build time.
const (
	BoardWidth  = 11
	BoardHeight = 5
	NumCells    = BoardWidth * BoardHeight
	NumPieces   = 12
)

// pieceShapes holds the base shape of every piece as whitespace-separated
// two-digit tokens, first digit x, second digit y.
var pieceShapes = [NumPieces]string{
	"01 10 11 21 31",
	"01 10 11 21 22",
	"10 11 12 13 03",
	"01 11 10 02",
	"00 01 02 12 13",
	"02 12 11 21 20",
	"02 12 11 10",
	"02 12 22 21 20",
	"01 11 10",
	"01 02 11 12 10",
	"01 11 10 21",
	"00 01 11 21 20",
}

// Offset is one square of a piece shape, relative to the shape's origin.
type Offset struct {
	X, Y int
}

func parseShape(s string) ([]Offset, error) {
	tokens := strings.Fields(s)
	if len(tokens) == 0 {
		return nil, fmt.Errorf("shape %q has no tokens", s)
	}
	offsets := make([]Offset, 0, len(tokens))
	for _, tok := range tokens {
		if len(tok) != 2 || !isDigit(tok[0]) || !isDigit(tok[1]) {
			return nil, fmt.Errorf("shape token %q is not two digits", tok)
		}
		offsets = append(offsets, Offset{X: int(tok[0] - '0'), Y: int(tok[1] - '0')})
	}
	return offsets, nil
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// orientations returns every distinct rotation/reflection of shape.
//
// Each combination of {0..3 quarter turns} x {reflected, not} is normalized
// to min-x = min-y = 0 and sorted by (X, Y); duplicates collapse, so
// symmetric shapes yield fewer than 8 results (always 1, 2, 4 or 8).
func orientations(shape []Offset) [][]Offset {
	var out [][]Offset
	seen := make(map[string]bool)
	for reflect := 0; reflect < 2; reflect++ {
		for rot := 0; rot < 4; rot++ {
			cur := make([]Offset, len(shape))
			for i, o := range shape {
				x, y := o.X, o.Y
				if reflect == 1 {
					x = -x
				}
				for r := 0; r < rot; r++ {
					x, y = y, -x
				}
				cur[i] = Offset{X: x, Y: y}
			}
			normalize(cur)
			key := offsetKey(cur)
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, cur)
		}
	}
	return out
}

func normalize(offsets []Offset) {
	minX, minY := offsets[0].X, offsets[0].Y
	for _, o := range offsets[1:] {
		minX = min(minX, o.X)
		minY = min(minY, o.Y)
	}
	for i := range offsets {
		offsets[i].X -= minX
		offsets[i].Y -= minY
	}
	slices.SortFunc(offsets, func(a, b Offset) int {
		if a.X != b.X {
			return a.X - b.X
		}
		return a.Y - b.Y
	})
}

func offsetKey(offsets []Offset) string {
	var sb strings.Builder
	for _, o := range offsets {
		fmt.Fprintf(&sb, "%d,%d;", o.X, o.Y)
	}
	return sb.String()
}
