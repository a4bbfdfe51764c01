// Package ring implements the full-screen takeover shown while an alarm
// rings. It cannot be left until the session is dismissed.
package ring

import (
	"context"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/wakey/internal/quiz"
	alarmring "github.com/abhisek/wakey/internal/ring"
	"github.com/abhisek/wakey/internal/screen"
	"github.com/abhisek/wakey/internal/ui/components"
	"github.com/abhisek/wakey/internal/ui/layout"
)

// Config carries the tunables the screen needs.
type Config struct {
	EARThreshold     float64
	PollInterval     time.Duration
	WrongAnswerDelay time.Duration
}

// RingScreen drives one alarm session to dismissal.
type RingScreen struct {
	session *alarmring.Session
	gate    *quiz.Gate
	cfg     Config

	input       components.TextInput
	wrongAnswer bool
	lockedOut   bool // wrong-answer delay running, input ignored
	actionErr   string
	closing     bool
}

var _ screen.Screen = (*RingScreen)(nil)
var _ screen.KeyHintProvider = (*RingScreen)(nil)

// New creates the screen for an already-begun session.
func New(session *alarmring.Session, gate *quiz.Gate, cfg Config) *RingScreen {
	return &RingScreen{
		session: session,
		gate:    gate,
		cfg:     cfg,
		input:   components.NewTextInput("Type your answer...", 60),
	}
}

func (s *RingScreen) Init() tea.Cmd {
	return tea.Batch(s.input.Init(), s.pollTick())
}

func (s *RingScreen) Title() string {
	return "Wake Up"
}

func (s *RingScreen) KeyHints() []layout.KeyHint {
	if s.session.Dismissible() {
		return []layout.KeyHint{
			{Key: "S", Description: "Stop"},
			{Key: "Z", Description: "Snooze"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Answer"},
	}
}

func (s *RingScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case livenessTickMsg:
		if s.closing {
			return s, nil
		}
		return s, s.pollTick()

	case retryElapsedMsg:
		return s, func() tea.Msg {
			s.gate.Refresh(context.Background())
			return questionReadyMsg{}
		}

	case questionReadyMsg:
		s.lockedOut = false
		s.wrongAnswer = false
		s.input.Reset()
		return s, s.input.Init()

	case actionResultMsg:
		if msg.err != nil {
			s.actionErr = msg.err.Error()
			s.closing = false
			return s, s.pollTick()
		}
		snoozed := msg.snoozed
		return s, func() tea.Msg { return ClosedMsg{Snoozed: snoozed} }

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if !s.lockedOut && !s.gate.Solved() {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *RingScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.closing {
		return s, nil
	}

	// Once both gates are open the keyboard belongs to stop/snooze.
	if s.session.Dismissible() {
		switch msg.String() {
		case "s", "S":
			return s.dismiss(false)
		case "z", "Z":
			return s.dismiss(true)
		}
		return s, nil
	}

	if s.gate.Solved() || s.lockedOut {
		return s, nil
	}

	if msg.String() == "enter" {
		// No question yet: the first fetch is still in flight.
		if s.gate.Question().Prompt == "" {
			return s, nil
		}
		answer := strings.TrimSpace(s.input.Value())
		if answer == "" {
			return s, nil
		}
		if s.gate.Submit(answer) {
			s.wrongAnswer = false
			s.input.Submit(true)
			return s, nil
		}
		s.wrongAnswer = true
		s.lockedOut = true
		s.input.Submit(false)
		return s, tea.Tick(s.cfg.WrongAnswerDelay, func(time.Time) tea.Msg {
			return retryElapsedMsg{}
		})
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *RingScreen) dismiss(snooze bool) (screen.Screen, tea.Cmd) {
	s.closing = true
	s.actionErr = ""
	session := s.session
	return s, func() tea.Msg {
		ctx := context.Background()
		var err error
		if snooze {
			err = session.Snooze(ctx)
		} else {
			err = session.Stop(ctx)
		}
		return actionResultMsg{snoozed: snooze, err: err}
	}
}

func (s *RingScreen) pollTick() tea.Cmd {
	return tea.Tick(s.cfg.PollInterval, func(t time.Time) tea.Msg {
		return livenessTickMsg(t)
	})
}
