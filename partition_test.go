package iqfit

import (
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestAssignedRoots(t *testing.T) {
	tests := []struct {
		name    string
		total   int
		workers int
		id      int
		want    []int
	}{
		{"single worker owns everything", 5, 1, 0, []int{0, 1, 2, 3, 4}},
		{"first of three", 10, 3, 0, []int{0, 3, 6, 9}},
		{"second of three", 10, 3, 1, []int{1, 4, 7}},
		{"third of three", 10, 3, 2, []int{2, 5, 8}},
		{"last worker single root", 8, 8, 7, []int{7}},
		{"more workers than roots", 3, 8, 5, nil},
		{"no roots", 0, 4, 2, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := slices.Collect(AssignedRoots(tt.total, tt.workers, tt.id))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("AssignedRoots(%d, %d, %d) mismatch (-want +got):\n%s",
					tt.total, tt.workers, tt.id, diff)
			}
		})
	}
}

func TestAssignedRoots_Partition(t *testing.T) {
	const total = 208

	for _, workers := range []int{1, 2, 3, 5, 8, 12, 64, 300} {
		owner := make([]int, total)
		for i := range owner {
			owner[i] = -1
		}

		for id := 0; id < workers; id++ {
			prev := -1
			for i := range AssignedRoots(total, workers, id) {
				if i < 0 || i >= total {
					t.Fatalf("workers=%d id=%d yielded %d, outside [0, %d)", workers, id, i, total)
				}
				if i <= prev {
					t.Errorf("workers=%d id=%d not ascending: %d after %d", workers, id, i, prev)
				}
				prev = i
				if owner[i] != -1 {
					t.Errorf("workers=%d root %d owned by both %d and %d", workers, i, owner[i], id)
				}
				owner[i] = id
			}
		}

		for i, id := range owner {
			if id == -1 {
				t.Errorf("workers=%d root %d owned by nobody", workers, i)
			}
		}
	}
}

func TestAssignedRoots_EarlyBreak(t *testing.T) {
	var got []int
	for i := range AssignedRoots(100, 7, 3) {
		got = append(got, i)
		if len(got) == 2 {
			break
		}
	}
	if diff := cmp.Diff([]int{3, 10}, got); diff != "" {
		t.Errorf("AssignedRoots with early break mismatch (-want +got):\n%s", diff)
	}
}
