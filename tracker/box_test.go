package tracker

import (
	"math"
	"testing"
)

// almostEqual checks if two float64 values are approximately equal
func almostEqual(a, b, tolerance float64) bool {
	return math.Abs(a-b) <= tolerance
}

func TestBoundingBoxDerived(t *testing.T) {

	box := NewBoundingBox(10, 20, 110, 70)

	if box.Width() != 100 {
		t.Errorf("expected width 100, got %d", box.Width())
	}

	if box.Height() != 50 {
		t.Errorf("expected height 50, got %d", box.Height())
	}

	if box.CenterX() != 60 {
		t.Errorf("expected center x 60, got %d", box.CenterX())
	}

	if box.CenterY() != 45 {
		t.Errorf("expected center y 45, got %d", box.CenterY())
	}

	if !box.IntersectsX(110) || !box.IntersectsX(10) || box.IntersectsX(111) {
		t.Errorf("unexpected IntersectsX results")
	}
}

func TestBoundingBoxIoU(t *testing.T) {

	const tolerance = 1e-9

	tests := []struct {
		name string
		a    BoundingBox
		b    BoundingBox
		want float64
	}{
		{
			name: "identical rectangles",
			a:    NewBoundingBox(0, 0, 100, 100),
			b:    NewBoundingBox(0, 0, 100, 100),
			want: 1.0,
		},
		{
			name: "disjoint rectangles",
			a:    NewBoundingBox(0, 0, 100, 100),
			b:    NewBoundingBox(200, 200, 300, 300),
			want: 0.0,
		},
		{
			name: "touching edges only",
			a:    NewBoundingBox(0, 0, 100, 100),
			b:    NewBoundingBox(100, 0, 200, 100),
			want: 0.0,
		},
		{
			name: "contained box of half area",
			a:    NewBoundingBox(0, 0, 100, 100),
			b:    NewBoundingBox(25, 0, 75, 100),
			want: 0.5,
		},
		{
			name: "partial overlap",
			a:    NewBoundingBox(0, 0, 100, 100),
			b:    NewBoundingBox(50, 0, 150, 100),
			want: 5000.0 / 15000.0,
		},
		{
			name: "degenerate zero area box",
			a:    NewBoundingBox(50, 50, 50, 50),
			b:    NewBoundingBox(0, 0, 100, 100),
			want: 0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {

			got := tt.a.IoU(tt.b)

			if !almostEqual(got, tt.want, tolerance) {
				t.Errorf("IoU() = %v, want %v", got, tt.want)
			}

			// IoU is symmetric
			if rev := tt.b.IoU(tt.a); !almostEqual(rev, got, tolerance) {
				t.Errorf("IoU not symmetric: %v vs %v", got, rev)
			}
		})
	}
}
