// Package trigger decides when alarms fire. An Evaluator polls the wall
// clock at a fixed cadence, compares the current minute against every
// enabled alarm, and opens a ring session for the match.
package trigger

import (
	"context"
	"time"
)

// Clock abstracts the wall clock so the evaluator loop can be driven
// deterministically in tests.
type Clock interface {
	Now() time.Time

	// Tick returns a channel delivering the current time at the clock's
	// cadence. The channel is closed when ctx is cancelled.
	Tick(ctx context.Context) <-chan time.Time
}

// SystemClock is the real wall clock, ticking at Interval.
type SystemClock struct {
	Interval time.Duration
}

func (c SystemClock) Now() time.Time {
	return time.Now()
}

func (c SystemClock) Tick(ctx context.Context) <-chan time.Time {
	out := make(chan time.Time)
	ticker := time.NewTicker(c.Interval)
	go func() {
		defer ticker.Stop()
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case t := <-ticker.C:
				select {
				case out <- t:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out
}
