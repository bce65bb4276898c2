package iqfit

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/busecoban/the-iq-fit-solver-v4/internal"
	"github.com/busecoban/the-iq-fit-solver-v4/pkg/primitives"
)

var log = logrus.StandardLogger()

// kEmpty marks a cell no piece covers yet. It never survives into a Solution.
const kEmpty = '.'

// Worker enumerates the slice of the search space owned by one worker id.
// Each Worker builds its own placement tables; nothing is shared between
// concurrent workers.
type Worker struct {
	id      int
	workers int

	// Do not access this field directly, use the tables method instead.
	lazyTables *internal.Tables
}

// NewWorker returns the worker with identity id out of workers total.
func NewWorker(id, workers int) (*Worker, error) {
	if workers < 1 {
		return nil, fmt.Errorf("worker count %d is not positive", workers)
	}
	if id < 0 || id >= workers {
		return nil, fmt.Errorf("worker id %d is outside [0, %d)", id, workers)
	}
	return &Worker{id: id, workers: workers}, nil
}

func (w *Worker) tables() (*internal.Tables, error) {
	var err error
	if w.lazyTables == nil {
		w.lazyTables, err = internal.BuildTables()
	}
	return w.lazyTables, err
}

// Enumerate runs this worker's whole share of the search and returns its
// solutions in emission order. The search is exhaustive; it runs to
// completion without cancellation.
func (w *Worker) Enumerate() ([]Solution, error) {
	tables, err := w.tables()
	if err != nil {
		return nil, err
	}

	state := newSearchState(tables)
	roots := tables.Pieces[0].Placements
	assigned := 0
	for i := range AssignedRoots(len(roots), w.workers, w.id) {
		root := &roots[i]
		state.place(0, root)
		state.search()
		state.unplace(0, root)
		assigned++
	}

	log.WithFields(logrus.Fields{
		"worker":    w.id,
		"workers":   w.workers,
		"roots":     assigned,
		"solutions": len(state.out),
	}).Debug("Worker finished")

	return state.out, nil
}

// searchState is the mutable state of one worker's depth-first search.
type searchState struct {
	tables *internal.Tables

	board primitives.CellSet
	used  primitives.PieceSet
	cells [internal.NumCells]byte

	allUsed primitives.PieceSet
	out     []Solution
}

func newSearchState(tables *internal.Tables) *searchState {
	s := &searchState{
		tables:  tables,
		allUsed: primitives.FullPieceSet(internal.NumPieces),
	}
	for i := range s.cells {
		s.cells[i] = kEmpty
	}
	return s
}

// search appends to out every completion of the current partial tiling. On
// return the state is exactly as it was on entry.
func (s *searchState) search() {
	if s.used == s.allUsed {
		cells := make([]byte, internal.NumCells)
		copy(cells, s.cells[:])
		s.out = append(s.out, NewSolution(cells))
		return
	}

	cell := s.board.FirstClear()
	if cell >= internal.NumCells {
		// Pieces remain but the board is full. Dead branch.
		return
	}

	for p := range internal.NumPieces {
		if s.used.Contains(p) {
			continue
		}
		pt := &s.tables.Pieces[p]
		for _, i := range pt.ByCell[cell] {
			pl := &pt.Placements[i]
			if s.board.Overlaps(pl.Mask) {
				continue
			}
			s.place(p, pl)
			s.search()
			s.unplace(p, pl)
		}
	}
}

// place commits a placement of piece p: marks the piece used, occupies its
// cells and paints its symbol.
func (s *searchState) place(p int, pl *internal.Placement) {
	if s.board.Overlaps(pl.Mask) {
		panic("BUG: placement overlaps occupied cells")
	}
	if s.used.Contains(p) {
		panic("BUG: piece placed twice")
	}
	s.used = s.used.With(p)
	s.board = s.board.Union(pl.Mask)
	for _, c := range pl.Cells {
		s.cells[c] = byte('A' + p)
	}
}

// unplace reverts place exactly.
func (s *searchState) unplace(p int, pl *internal.Placement) {
	s.used = s.used.Without(p)
	s.board = s.board.Minus(pl.Mask)
	for _, c := range pl.Cells {
		s.cells[c] = kEmpty
	}
}
