package core

import "testing"

func TestRectIntersects(t *testing.T) {
	base := NewRect(2, 2, 4, 3)
	cases := []struct {
		name  string
		other Rect
		want  bool
	}{
		{"overlapping", NewRect(4, 3, 4, 4), true},
		{"contained", NewRect(3, 3, 1, 1), true},
		{"touching right edge", NewRect(6, 2, 2, 2), false},
		{"touching bottom edge", NewRect(2, 5, 2, 2), false},
		{"disjoint", NewRect(10, 10, 2, 2), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := base.Intersects(tc.other); got != tc.want {
				t.Errorf("Intersects(%+v) = %v, want %v", tc.other, got, tc.want)
			}
			if got := tc.other.Intersects(base); got != tc.want {
				t.Errorf("Intersects is not symmetric for %+v", tc.other)
			}
		})
	}
}

func TestRectEdges(t *testing.T) {
	r := NewRect(2, 3, 4, 5)
	if r.Right() != 6 {
		t.Errorf("Right() = %d, want 6", r.Right())
	}
	if r.Bottom() != 8 {
		t.Errorf("Bottom() = %d, want 8", r.Bottom())
	}
}

func TestMax(t *testing.T) {
	if Max(3, 7) != 7 || Max(7, 3) != 7 || Max(-2, -5) != -2 {
		t.Error("Max picked the smaller value")
	}
}
