package primitives

import (
	"testing"
)

func TestPieceSet_FullPieceSet(t *testing.T) {
	tests := []struct {
		name      string
		n         int
		wantCount int
	}{
		{"empty", 0, 0},
		{"one piece", 1, 1},
		{"catalogue sized", 12, 12},
		{"whole word", 16, 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := FullPieceSet(tt.n)
			if s.Count() != tt.wantCount {
				t.Errorf("Count() = %d, want %d", s.Count(), tt.wantCount)
			}
			for p := 0; p < tt.n; p++ {
				if !s.Contains(p) {
					t.Errorf("Contains(%d) = false, want true", p)
				}
			}
		})
	}
}

func TestPieceSet_WithWithout(t *testing.T) {
	var s PieceSet

	s = s.With(3)
	s = s.With(11)
	if !s.Contains(3) || !s.Contains(11) {
		t.Errorf("set %b missing added pieces", s)
	}
	if s.Contains(4) {
		t.Error("Contains(4) = true, want false")
	}
	if s.Count() != 2 {
		t.Errorf("Count() = %d, want 2", s.Count())
	}

	s = s.Without(3)
	if s.Contains(3) {
		t.Error("Contains(3) = true after Without(3)")
	}
	if s.Count() != 1 {
		t.Errorf("Count() = %d, want 1", s.Count())
	}
}

func TestPieceSet_FullComparison(t *testing.T) {
	full := FullPieceSet(12)

	var s PieceSet
	for p := 0; p < 12; p++ {
		if s == full {
			t.Fatalf("set %b compares equal to full after %d pieces", s, p)
		}
		s = s.With(p)
	}
	if s != full {
		t.Errorf("set %b != full %b after adding all pieces", s, full)
	}
}
