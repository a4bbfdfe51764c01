package vision

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeCapture struct {
	started bool
	stopped bool
	grabErr error
}

func (f *fakeCapture) Start(context.Context) error { f.started = true; return nil }
func (f *fakeCapture) Stop() error                 { f.stopped = true; return nil }
func (f *fakeCapture) Grab(context.Context) (Frame, error) {
	if f.grabErr != nil {
		return nil, f.grabErr
	}
	return Frame("jpeg"), nil
}

type fakeDetector struct {
	faces []Face
	err   error
}

func (f *fakeDetector) Detect(context.Context, Frame) ([]Face, error) {
	return f.faces, f.err
}

func faceWithEAR(ear float64) Face {
	// Horizontal corners 1 apart, lids ear/1 apart vertically on each pair:
	// EAR = (v + v) / (2 * 1) = v, so set v = ear.
	eye := EyeContour{
		{X: 0, Y: 0},
		{X: 0.25, Y: ear / 2},
		{X: 0.75, Y: ear / 2},
		{X: 1, Y: 0},
		{X: 0.75, Y: -ear / 2},
		{X: 0.25, Y: -ear / 2},
	}
	return Face{LeftEye: eye, RightEye: eye}
}

func newTestMonitor(cap Capture, det Detector, consecutive int) *Monitor {
	return NewMonitor(cap, det, MonitorConfig{
		EARThreshold:      0.28,
		PollInterval:      time.Hour, // tests drive Sample directly
		ConsecutiveFrames: consecutive,
	})
}

func TestSampleAwake(t *testing.T) {
	det := &fakeDetector{faces: []Face{faceWithEAR(0.35)}}
	m := newTestMonitor(&fakeCapture{}, det, 1)

	r := m.Sample(context.Background())
	if !r.Awake {
		t.Error("expected awake at EAR 0.35")
	}
	if r.EAR < 0.34 || r.EAR > 0.36 {
		t.Errorf("EAR = %g, want ~0.35", r.EAR)
	}
}

func TestSampleFailClosed(t *testing.T) {
	tests := []struct {
		name string
		cap  *fakeCapture
		det  *fakeDetector
	}{
		{"no face", &fakeCapture{}, &fakeDetector{}},
		{"two faces", &fakeCapture{}, &fakeDetector{faces: []Face{faceWithEAR(0.4), faceWithEAR(0.4)}}},
		{"capture error", &fakeCapture{grabErr: errors.New("device busy")}, &fakeDetector{faces: []Face{faceWithEAR(0.4)}}},
		{"detect error", &fakeCapture{}, &fakeDetector{err: errors.New("model crashed")}},
		{"eyes below threshold", &fakeCapture{}, &fakeDetector{faces: []Face{faceWithEAR(0.1)}}},
		{"degenerate geometry", &fakeCapture{}, &fakeDetector{faces: []Face{{}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestMonitor(tt.cap, tt.det, 1)
			r := m.Sample(context.Background())
			if r.Awake {
				t.Error("expected not awake")
			}
		})
	}
}

func TestConsecutiveFrameConfirmation(t *testing.T) {
	det := &fakeDetector{faces: []Face{faceWithEAR(0.35)}}
	m := newTestMonitor(&fakeCapture{}, det, 3)
	ctx := context.Background()

	if m.Sample(ctx).Awake || m.Sample(ctx).Awake {
		t.Fatal("awake before three consecutive open frames")
	}
	if !m.Sample(ctx).Awake {
		t.Fatal("expected awake after three consecutive open frames")
	}

	// A single closed frame resets the run.
	det.faces = nil
	if m.Sample(ctx).Awake {
		t.Fatal("expected not awake after closed frame")
	}
	det.faces = []Face{faceWithEAR(0.35)}
	if m.Sample(ctx).Awake {
		t.Fatal("one open frame after reset should not be awake")
	}
}

func TestStartStopReleasesCapture(t *testing.T) {
	fc := &fakeCapture{}
	det := &fakeDetector{faces: []Face{faceWithEAR(0.35)}}
	m := NewMonitor(fc, det, MonitorConfig{
		EARThreshold:      0.28,
		PollInterval:      time.Millisecond,
		ConsecutiveFrames: 1,
	})

	if err := m.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if !fc.started {
		t.Error("capture not started")
	}
	if err := m.Start(context.Background()); err == nil {
		t.Error("second Start should fail")
	}

	m.Stop()
	if !fc.stopped {
		t.Error("capture device not released on Stop")
	}
	// Stop is idempotent.
	m.Stop()
}

func TestLatestDefaultsNotAwake(t *testing.T) {
	m := newTestMonitor(&fakeCapture{}, &fakeDetector{}, 1)
	r := m.Latest()
	if r.Awake || r.EAR != 0 {
		t.Errorf("zero reading should be not-awake with EAR 0, got %+v", r)
	}
}
