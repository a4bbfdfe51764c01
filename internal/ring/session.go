// Package ring owns the lifecycle of a ringing alarm: at most one session
// is live at any time, and it can only be closed through Stop or Snooze,
// both gated on proof of wakefulness and a correctly answered question.
package ring

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/wakey/internal/alarm"
	"github.com/abhisek/wakey/internal/audio"
	"github.com/abhisek/wakey/internal/store"
	"github.com/abhisek/wakey/internal/vision"
)

// Status is the session's derived display state.
type Status int

const (
	// StatusRinging: audio loops, one or both gates are down.
	StatusRinging Status = iota

	// StatusDismissible: both gates are up; Stop and Snooze are enabled.
	// Purely derived, never persisted.
	StatusDismissible

	// StatusClosed: terminal, reached only via Stop or Snooze.
	StatusClosed
)

func (s Status) String() string {
	switch s {
	case StatusRinging:
		return "ringing"
	case StatusDismissible:
		return "dismissible"
	case StatusClosed:
		return "closed"
	default:
		return "unknown"
	}
}

var (
	// ErrNotDismissible is returned by Stop and Snooze while either gate
	// is down. There is no override and no timeout-based auto-dismiss.
	ErrNotDismissible = errors.New("dismissal not permitted: prove you are awake first")

	// ErrSessionClosed is returned by actions on an already-closed session.
	ErrSessionClosed = errors.New("session already closed")
)

// Permitted is the dismissal arbitration rule: both gates, no exceptions.
func Permitted(awake, solved bool) bool {
	return awake && solved
}

// LivenessSource is the eye-openness gate as seen by the session.
// vision.Monitor implements it.
type LivenessSource interface {
	Latest() vision.Reading
	Stop()
}

// KnowledgeSource is the question gate as seen by the session.
// quiz.Gate implements it.
type KnowledgeSource interface {
	Solved() bool
}

// Deps are the session's collaborators.
type Deps struct {
	Liveness    LivenessSource
	Knowledge   KnowledgeSource
	Player      audio.Player
	Alarms      alarm.Store
	Events      store.EventRepo
	SnoozeDelta time.Duration
}

// Session is one ringing alarm awaiting dismissal.
type Session struct {
	// ID identifies the session in the ring event log.
	ID string

	// Alarm is the alarm being rung, by value as of trigger time.
	Alarm alarm.Alarm

	// StartedAt is when the trigger fired.
	StartedAt time.Time

	deps Deps

	mu      sync.Mutex
	closed  bool
	onClose func()
}

// NewSession creates a session for the given alarm. The caller is expected
// to have started the liveness monitor and the knowledge gate already.
func NewSession(a alarm.Alarm, deps Deps) *Session {
	return &Session{
		ID:        uuid.New().String(),
		Alarm:     a,
		StartedAt: time.Now(),
		deps:      deps,
	}
}

// Begin starts looping audio and records the session-open event.
func (s *Session) Begin(ctx context.Context) {
	if err := s.deps.Player.Play(true); err != nil {
		fmt.Fprintf(os.Stderr, "warning: start alarm audio: %v\n", err)
	}
	s.appendEvent(ctx, store.RingEventData{
		AlarmID:   s.Alarm.ID,
		SessionID: s.ID,
		Kind:      store.RingOpened,
		Detail:    alarm.MinuteOf(s.StartedAt),
	})
}

// Status derives the current display state.
func (s *Session) Status() Status {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return StatusClosed
	}
	if s.Dismissible() {
		return StatusDismissible
	}
	return StatusRinging
}

// EAR returns the current average eye-aspect-ratio reading.
func (s *Session) EAR() float64 {
	return s.deps.Liveness.Latest().EAR
}

// Awake reports the liveness gate.
func (s *Session) Awake() bool {
	return s.deps.Liveness.Latest().Awake
}

// Solved reports the knowledge gate.
func (s *Session) Solved() bool {
	return s.deps.Knowledge.Solved()
}

// Dismissible reports whether Stop and Snooze are currently permitted.
func (s *Session) Dismissible() bool {
	return Permitted(s.Awake(), s.Solved())
}

// Stop ends the session. The alarm's lastTriggered stays as stamped by the
// trigger evaluator, so it will not re-fire until its time next comes
// around.
func (s *Session) Stop(ctx context.Context) error {
	return s.close(ctx, store.RingEventData{
		AlarmID:   s.Alarm.ID,
		SessionID: s.ID,
		Kind:      store.RingStopped,
	}, nil)
}

// Snooze pushes the alarm's time forward by the snooze delta (wrapping
// within the 24-hour day), clears the minute guard so the trigger
// evaluator can fire again at the new time, and ends the session.
func (s *Session) Snooze(ctx context.Context) error {
	newTime, err := alarm.AddMinutes(s.Alarm.Time, int(s.deps.SnoozeDelta.Minutes()))
	if err != nil {
		return fmt.Errorf("compute snooze time: %w", err)
	}

	return s.close(ctx, store.RingEventData{
		AlarmID:   s.Alarm.ID,
		SessionID: s.ID,
		Kind:      store.RingSnoozed,
		Detail:    newTime,
	}, func(ctx context.Context) error {
		// Both writes are idempotent, so a bounded retry cannot
		// double-apply the snooze delta.
		err := withRetry(ctx, func() error {
			_, uerr := s.deps.Alarms.Update(ctx, s.Alarm.ID, alarm.Edit{Time: &newTime})
			return uerr
		})
		if err != nil {
			return fmt.Errorf("persist snooze time: %w", err)
		}
		err = withRetry(ctx, func() error {
			return s.deps.Alarms.ClearLastTriggered(ctx, s.Alarm.ID)
		})
		if err != nil {
			return fmt.Errorf("clear minute guard: %w", err)
		}
		return nil
	})
}

// close runs the arbitration check, the action-specific mutation, and the
// shared teardown: audio off, capture released, event recorded.
func (s *Session) close(ctx context.Context, event store.RingEventData, mutate func(context.Context) error) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrSessionClosed
	}
	s.mu.Unlock()

	if !s.Dismissible() {
		return ErrNotDismissible
	}

	if mutate != nil {
		if err := mutate(ctx); err != nil {
			// Leave the session open: the user can retry the action.
			return err
		}
	}

	s.mu.Lock()
	// The mutex was released across arbitration and mutate, so a racing
	// closer may have finished first. Exactly one closer records the
	// terminal event.
	if s.closed {
		s.mu.Unlock()
		return ErrSessionClosed
	}
	s.closed = true
	onClose := s.onClose
	s.mu.Unlock()

	s.deps.Player.Stop()
	s.deps.Liveness.Stop()
	s.appendEvent(ctx, event)
	if onClose != nil {
		onClose()
	}
	return nil
}

// Teardown force-releases the speaker and the camera without going
// through the gates. Only for process shutdown; the session stays open.
func (s *Session) Teardown() {
	s.deps.Player.Stop()
	s.deps.Liveness.Stop()
}

// appendEvent records a ring event; failures are logged only.
func (s *Session) appendEvent(ctx context.Context, data store.RingEventData) {
	if s.deps.Events == nil {
		return
	}
	if err := s.deps.Events.AppendRingEvent(ctx, data); err != nil {
		fmt.Fprintf(os.Stderr, "warning: record ring event: %v\n", err)
	}
}

// withRetry runs fn, retrying once on failure.
func withRetry(ctx context.Context, fn func() error) error {
	err := fn()
	if err == nil || ctx.Err() != nil {
		return err
	}
	return fn()
}
