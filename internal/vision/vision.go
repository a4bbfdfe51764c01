// Package vision provides the liveness gate: eye-openness detection from a
// camera feed, evaluated as an eye-aspect-ratio against a threshold.
//
// The camera and the facial-landmark model are external capabilities behind
// the Capture and Detector ports; production adapters talk to a local
// detection service over HTTP, tests substitute in-memory fakes.
package vision

// Point is a 2-D landmark coordinate in frame pixel space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// EyeContour is the six-point eye landmark contour, indexed p1..p6 around
// the eye: p1 and p4 are the horizontal corners, p2/p3 the upper lid and
// p6/p5 the lower lid.
type EyeContour [6]Point

// Face is one detected face with both eye contours.
type Face struct {
	LeftEye  EyeContour `json:"left_eye"`
	RightEye EyeContour `json:"right_eye"`
}

// Frame is a single captured camera frame, encoded (JPEG).
type Frame []byte
