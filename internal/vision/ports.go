package vision

import "context"

// Capture is the video-capture capability. Start acquires the device,
// Grab returns the most recent frame, Stop releases the device. Stop must
// be called on both normal session end and abnormal teardown so the camera
// handle is never leaked.
type Capture interface {
	Start(ctx context.Context) error
	Grab(ctx context.Context) (Frame, error)
	Stop() error
}

// Detector is the facial-landmark detection capability. Detect returns one
// Face per detected face, or an empty slice when no face is in frame.
type Detector interface {
	Detect(ctx context.Context, frame Frame) ([]Face, error)
}
