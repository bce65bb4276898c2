package iqfit

import "iter"

// AssignedRoots returns, ascending, the first-piece placement indices owned
// by worker id out of workers total: every i in [0, total) with
// i mod workers == id.
//
// The assignments of one run are pairwise disjoint across ids and together
// cover [0, total) exactly. When workers exceeds total, the high ids own
// nothing.
func AssignedRoots(total, workers, id int) iter.Seq[int] {
	if workers < 1 {
		panic("BUG: worker count is not positive")
	}
	if id < 0 || id >= workers {
		panic("BUG: worker id is out of range")
	}
	return func(yield func(int) bool) {
		for i := id; i < total; i += workers {
			if !yield(i) {
				return
			}
		}
	}
}
