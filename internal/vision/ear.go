package vision

import "math"

// EAR computes the eye-aspect-ratio for one eye contour:
//
//	EAR = (dist(p2,p6) + dist(p3,p5)) / (2 * dist(p1,p4))
//
// A tall open eye yields a high ratio, a closed eye a ratio near zero.
// Degenerate geometry (coincident corner points) yields 0 rather than an
// error; the caller treats that frame as eyes-closed.
func EAR(eye EyeContour) float64 {
	vertical := dist(eye[1], eye[5]) + dist(eye[2], eye[4])
	horizontal := dist(eye[0], eye[3])
	if horizontal == 0 {
		return 0
	}
	return vertical / (2 * horizontal)
}

// AverageEAR computes the mean of both eyes' ratios for a face.
func AverageEAR(f Face) float64 {
	return (EAR(f.LeftEye) + EAR(f.RightEye)) / 2
}

func dist(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}
