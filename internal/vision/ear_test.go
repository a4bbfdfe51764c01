package vision

import (
	"math"
	"testing"
)

// openEye returns a contour with known distances:
// vertical pairs both 2.0 apart, horizontal corners 4.0 apart,
// so EAR = (2+2)/(2*4) = 0.5.
func openEye() EyeContour {
	return EyeContour{
		{X: 0, Y: 0},  // p1
		{X: 1, Y: 1},  // p2
		{X: 3, Y: 1},  // p3
		{X: 4, Y: 0},  // p4
		{X: 3, Y: -1}, // p5
		{X: 1, Y: -1}, // p6
	}
}

func TestEAR(t *testing.T) {
	got := EAR(openEye())
	want := 0.5
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("EAR = %g, want %g", got, want)
	}
}

func TestEARClosedEye(t *testing.T) {
	// Lids collapsed onto the horizontal axis: zero vertical distance.
	closed := EyeContour{
		{X: 0, Y: 0},
		{X: 1, Y: 0},
		{X: 3, Y: 0},
		{X: 4, Y: 0},
		{X: 3, Y: 0},
		{X: 1, Y: 0},
	}
	if got := EAR(closed); got != 0 {
		t.Errorf("EAR(closed) = %g, want 0", got)
	}
}

func TestEARDegenerateGeometry(t *testing.T) {
	// All six points coincident: the p1-p4 reference segment has zero
	// length. Must yield 0 rather than Inf or NaN.
	var degenerate EyeContour
	got := EAR(degenerate)
	if got != 0 {
		t.Errorf("EAR(degenerate) = %g, want 0", got)
	}
	if math.IsNaN(got) || math.IsInf(got, 0) {
		t.Errorf("EAR(degenerate) is not finite: %g", got)
	}
}

func TestAverageEAR(t *testing.T) {
	f := Face{LeftEye: openEye(), RightEye: openEye()}
	if got := AverageEAR(f); math.Abs(got-0.5) > 1e-12 {
		t.Errorf("AverageEAR = %g, want 0.5", got)
	}

	// One open eye, one degenerate: average of 0.5 and 0.
	f.RightEye = EyeContour{}
	if got := AverageEAR(f); math.Abs(got-0.25) > 1e-12 {
		t.Errorf("AverageEAR = %g, want 0.25", got)
	}
}
