package iqfit

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/busecoban/the-iq-fit-solver-v4/internal"
)

// boardSolution builds a Solution from row strings, top row first.
func boardSolution(t *testing.T, rows ...string) Solution {
	t.Helper()
	require.Len(t, rows, internal.BoardHeight, "row count")
	var cells []byte
	for _, row := range rows {
		require.Len(t, row, internal.BoardWidth, "row width")
		cells = append(cells, row...)
	}
	return NewSolution(cells)
}

// runLayout fills the board row-major with each piece's symbol repeated
// size times. Piece counts come out right but the shapes are straight runs,
// which no piece in the catalogue allows.
func runLayout() []string {
	sizes := []int{5, 5, 5, 4, 5, 5, 4, 5, 3, 5, 4, 5}
	var sb strings.Builder
	for p, size := range sizes {
		sb.WriteString(strings.Repeat(string(rune('A'+p)), size))
	}
	flat := sb.String()
	rows := make([]string, internal.BoardHeight)
	for y := range rows {
		rows[y] = flat[y*internal.BoardWidth : (y+1)*internal.BoardWidth]
	}
	return rows
}

func TestSolution_Repr(t *testing.T) {
	rows := runLayout()
	s := boardSolution(t, rows...)

	assert.Equal(t, strings.Join(rows, "\n"), s.Repr())
	assert.Equal(t, internal.BoardWidth, s.Width())
	assert.Equal(t, internal.BoardHeight, s.Height())
	assert.Equal(t, rows[0][0], s.At(0, 0))
	assert.Equal(t, rows[2][7], s.At(7, 2))
	assert.Equal(t, rows[4][10], s.At(10, 4))
	assert.Contains(t, s.DebugString(), "width: 11")
}

func TestVerifier_Verify(t *testing.T) {
	verifier, err := NewVerifier()
	require.NoError(t, err)

	t.Run("empty cell", func(t *testing.T) {
		rows := runLayout()
		rows[0] = "AAAA." + rows[0][5:]
		err := verifier.Verify(boardSolution(t, rows...))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "empty")
	})

	t.Run("unknown symbol", func(t *testing.T) {
		rows := runLayout()
		rows[0] = "AAAAM" + rows[0][5:]
		err := verifier.Verify(boardSolution(t, rows...))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown symbol")
	})

	t.Run("piece covering the whole board", func(t *testing.T) {
		row := strings.Repeat("A", internal.BoardWidth)
		err := verifier.Verify(boardSolution(t, row, row, row, row, row))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "covers 55 cells")
	})

	t.Run("right counts but illegal shapes", func(t *testing.T) {
		err := verifier.Verify(boardSolution(t, runLayout()...))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "legal placement")
	})
}
