package vision

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"
)

// Reading is one liveness evaluation.
type Reading struct {
	// EAR is the average eye-aspect-ratio across both eyes, 0 when no
	// face was usable.
	EAR float64

	// Awake is true when the gate currently considers the user's eyes
	// open: EAR above threshold, sustained for the configured number of
	// consecutive frames.
	Awake bool

	// At is when the frame was evaluated.
	At time.Time
}

// MonitorConfig tunes the liveness monitor.
type MonitorConfig struct {
	// EARThreshold is the eyes-open cutoff.
	EARThreshold float64

	// PollInterval is the sampling cadence.
	PollInterval time.Duration

	// ConsecutiveFrames is how many consecutive above-threshold frames
	// are required before Awake flips true. A single below-threshold or
	// failed frame resets the run. Minimum 1.
	ConsecutiveFrames int
}

// Monitor polls the capture/detection capabilities while a ring session is
// active and maintains the current eyes-open state. Every failure mode —
// capture error, detection error, no face, more than one face, degenerate
// geometry — fails closed to not-awake.
type Monitor struct {
	capture  Capture
	detector Detector
	cfg      MonitorConfig

	mu      sync.Mutex
	latest  Reading
	openRun int
	running bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewMonitor creates a Monitor. ConsecutiveFrames below 1 is raised to 1.
func NewMonitor(capture Capture, detector Detector, cfg MonitorConfig) *Monitor {
	if cfg.ConsecutiveFrames < 1 {
		cfg.ConsecutiveFrames = 1
	}
	return &Monitor{capture: capture, detector: detector, cfg: cfg}
}

// Start acquires the capture device and begins polling. It is an error to
// start an already-running monitor.
func (m *Monitor) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.running {
		return fmt.Errorf("liveness monitor already running")
	}
	if err := m.capture.Start(ctx); err != nil {
		return fmt.Errorf("start capture: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	m.done = make(chan struct{})
	m.running = true
	m.latest = Reading{}
	m.openRun = 0

	go m.run(ctx)
	return nil
}

// Stop cancels polling and releases the capture device. Safe to call more
// than once.
func (m *Monitor) Stop() {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return
	}
	m.running = false
	cancel, done := m.cancel, m.done
	m.mu.Unlock()

	cancel()
	<-done
	if err := m.capture.Stop(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: release capture device: %v\n", err)
	}
}

// Latest returns the most recent reading. Before the first sample it is the
// zero Reading, i.e. not awake.
func (m *Monitor) Latest() Reading {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.latest
}

func (m *Monitor) run(ctx context.Context) {
	defer close(m.done)
	ticker := time.NewTicker(m.cfg.PollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Sample(ctx)
		}
	}
}

// Sample evaluates a single frame and updates the current reading. Exposed
// so the polling logic is testable without wall-clock waits.
func (m *Monitor) Sample(ctx context.Context) Reading {
	ear, open := m.evaluate(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()
	if open {
		m.openRun++
	} else {
		m.openRun = 0
	}
	m.latest = Reading{
		EAR:   ear,
		Awake: m.openRun >= m.cfg.ConsecutiveFrames,
		At:    time.Now(),
	}
	return m.latest
}

// evaluate grabs and scores one frame. Returns (0, false) on any failure.
func (m *Monitor) evaluate(ctx context.Context) (float64, bool) {
	frame, err := m.capture.Grab(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: grab frame: %v\n", err)
		return 0, false
	}

	faces, err := m.detector.Detect(ctx, frame)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: detect face: %v\n", err)
		return 0, false
	}
	// Exactly one face: zero means nobody in frame, more than one means
	// the reading cannot be attributed to the sleeper.
	if len(faces) != 1 {
		return 0, false
	}

	ear := AverageEAR(faces[0])
	return ear, ear > m.cfg.EARThreshold
}
