package iqfit

import (
	"bufio"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/busecoban/the-iq-fit-solver-v4/internal"
)

// Result is the merged outcome of one full enumeration run.
type Result struct {
	Workers   int
	Total     int
	PerWorker []int
	Elapsed   time.Duration

	solutions []Solution
}

// Solutions returns every solution in output order: grouped by worker id
// ascending, within one worker in search emission order.
func (r *Result) Solutions() []Solution {
	return r.solutions
}

// Enumerate runs the full search split across the given number of worker
// goroutines and gathers every worker's solutions into one Result.
//
// The gather runs in two phases. Workers first publish their solution counts
// and wait; the aggregator sizes one flat symbol buffer, computes each
// worker's offset into it and releases the second phase; workers then copy
// their solutions into their disjoint slice of the buffer. Both phases
// complete before Enumerate returns, so a later sink failure can never leave
// a worker blocked.
func Enumerate(workers int) (*Result, error) {
	if workers < 1 {
		return nil, fmt.Errorf("worker count %d is not positive", workers)
	}

	start := time.Now()

	counts := make([]int, workers)
	errs := make([]error, workers)
	offsets := make([]int, workers)
	var buf []byte

	var counted sync.WaitGroup
	var copied sync.WaitGroup
	offsetsReady := make(chan struct{})

	counted.Add(workers)
	copied.Add(workers)
	for id := range workers {
		go func() {
			local := runWorker(id, workers, counts, errs)
			counted.Done()

			<-offsetsReady
			off := offsets[id]
			for _, s := range local {
				off += copy(buf[off:], s.cells)
			}
			copied.Done()
		}()
	}

	counted.Wait()
	total := 0
	for id, n := range counts {
		offsets[id] = total * internal.NumCells
		total += n
	}
	buf = make([]byte, total*internal.NumCells)
	close(offsetsReady)
	copied.Wait()

	for id, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("worker %d: %w", id, err)
		}
	}

	solutions := make([]Solution, 0, total)
	for off := 0; off < len(buf); off += internal.NumCells {
		solutions = append(solutions, NewSolution(buf[off:off+internal.NumCells]))
	}

	res := &Result{
		Workers:   workers,
		Total:     total,
		PerWorker: counts,
		Elapsed:   time.Since(start),
		solutions: solutions,
	}
	log.WithFields(logrus.Fields{
		"workers": workers,
		"total":   total,
		"elapsed": res.Elapsed,
	}).Debug("Enumeration finished")
	return res, nil
}

// runWorker runs one worker's search and publishes its count and error at
// the slots this id owns. A failed worker publishes a zero count so the
// gather arithmetic still holds.
func runWorker(id, workers int, counts []int, errs []error) []Solution {
	w, err := NewWorker(id, workers)
	if err != nil {
		errs[id] = err
		return nil
	}
	local, err := w.Enumerate()
	if err != nil {
		errs[id] = err
		return nil
	}
	counts[id] = len(local)
	return local
}

// WriteSolutions renders every solution to w in output order, each as Height
// lines of Width symbols followed by one blank line.
func (r *Result) WriteSolutions(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, s := range r.solutions {
		if _, err := bw.WriteString(s.Repr()); err != nil {
			return err
		}
		if _, err := bw.WriteString("\n\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}
