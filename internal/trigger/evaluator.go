package trigger

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/abhisek/wakey/internal/alarm"
)

// Opener opens a ring session for a fired alarm. It returns an error when
// a session is already active; the evaluator logs and moves on, the minute
// guard prevents a re-fire.
type Opener interface {
	Open(ctx context.Context, a alarm.Alarm) error
}

// Evaluator scans alarms every clock tick and fires matches.
type Evaluator struct {
	alarms alarm.Store
	opener Opener
	clock  Clock
}

func NewEvaluator(alarms alarm.Store, opener Opener, clock Clock) *Evaluator {
	return &Evaluator{alarms: alarms, opener: opener, clock: clock}
}

// Run evaluates on every tick until ctx is cancelled. The cadence is the
// clock's; duplicate fires within a minute are suppressed by the per-alarm
// last-triggered stamp, not by tick bookkeeping, so a missed or doubled
// tick is harmless.
func (e *Evaluator) Run(ctx context.Context) error {
	for now := range e.clock.Tick(ctx) {
		e.Evaluate(ctx, now)
	}
	return ctx.Err()
}

// Evaluate runs one scan at the given instant. Exported so tests can drive
// it with chosen times instead of waiting on a ticker.
func (e *Evaluator) Evaluate(ctx context.Context, now time.Time) {
	minute := alarm.MinuteOf(now)

	alarms, err := e.alarms.List(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: trigger scan: %v\n", err)
		return
	}

	var matched []alarm.Alarm
	for _, a := range alarms {
		if a.Enabled && a.Time == minute && a.LastTriggered != minute {
			matched = append(matched, a)
		}
	}
	if len(matched) == 0 {
		return
	}

	// Oldest alarm rings; the rest are stamped so they do not pile up as
	// soon as the winner's session closes.
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.Before(matched[j].CreatedAt)
	})

	for i, a := range matched {
		// Stamp before opening: a crash between the two leaves the alarm
		// silenced for this minute rather than ringing twice.
		if err := e.markTriggered(ctx, a.ID, minute); err != nil {
			fmt.Fprintf(os.Stderr, "warning: stamp alarm %s: %v\n", a.ID, err)
			continue
		}
		if err := e.alarms.SetTriggered(ctx, a.ID, true); err != nil {
			fmt.Fprintf(os.Stderr, "warning: flag alarm %s: %v\n", a.ID, err)
		}
		if i > 0 {
			continue
		}
		if err := e.opener.Open(ctx, a); err != nil {
			fmt.Fprintf(os.Stderr, "warning: open session for alarm %s: %v\n", a.ID, err)
		}
	}
}

// markTriggered writes the minute stamp, retrying once. The write is
// idempotent for a given minute.
func (e *Evaluator) markTriggered(ctx context.Context, id, minute string) error {
	err := e.alarms.MarkLastTriggered(ctx, id, minute)
	if err == nil || ctx.Err() != nil {
		return err
	}
	return e.alarms.MarkLastTriggered(ctx, id, minute)
}
