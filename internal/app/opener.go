package app

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/wakey/internal/alarm"
	"github.com/abhisek/wakey/internal/quiz"
	"github.com/abhisek/wakey/internal/ring"
	"github.com/abhisek/wakey/internal/trigger"
)

// sessionOpener builds and starts a ring session when the trigger
// evaluator fires, then injects it into the running program.
type sessionOpener struct {
	opts    Options
	manager *ring.Manager
	send    func(tea.Msg)
}

var _ trigger.Opener = (*sessionOpener)(nil)

func (o *sessionOpener) Open(ctx context.Context, a alarm.Alarm) error {
	monitor := o.opts.NewMonitor()
	if err := monitor.Start(ctx); err != nil {
		// No camera means the liveness gate stays shut, not that the
		// alarm stays silent.
		fmt.Fprintf(os.Stderr, "warning: liveness monitor: %v\n", err)
	}

	gate := quiz.NewGate(o.opts.Questions)

	session := ring.NewSession(a, ring.Deps{
		Liveness:    monitor,
		Knowledge:   gate,
		Player:      o.opts.NewPlayer(),
		Alarms:      o.opts.Alarms,
		Events:      o.opts.EventRepo,
		SnoozeDelta: o.opts.Config.SnoozeDelta,
	})

	if err := o.manager.Open(session); err != nil {
		monitor.Stop()
		return err
	}

	// Sound first. The question fetch is an LLM round-trip and must not
	// hold up the ring or the trigger tick that called us.
	session.Begin(ctx)
	go gate.Start(ctx)

	o.send(ringStartedMsg{Session: session, Gate: gate})
	return nil
}
