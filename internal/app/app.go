// Package app wires the stores, gates and trigger loop into the Bubble
// Tea program.
package app

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/wakey/internal/alarm"
	"github.com/abhisek/wakey/internal/audio"
	"github.com/abhisek/wakey/internal/config"
	"github.com/abhisek/wakey/internal/quiz"
	"github.com/abhisek/wakey/internal/ring"
	"github.com/abhisek/wakey/internal/router"
	"github.com/abhisek/wakey/internal/screens/home"
	ringscreen "github.com/abhisek/wakey/internal/screens/ring"
	"github.com/abhisek/wakey/internal/store"
	"github.com/abhisek/wakey/internal/trigger"
	"github.com/abhisek/wakey/internal/ui/layout"
	"github.com/abhisek/wakey/internal/vision"
)

// Options carries the application's dependencies.
type Options struct {
	Config    *config.Config
	Alarms    alarm.Store
	EventRepo store.EventRepo

	// Questions generates trivia for the knowledge gate. Nil when no LLM
	// provider is configured; the gate then serves its fallback question.
	Questions quiz.Generator

	// NewMonitor builds a fresh liveness monitor per session.
	NewMonitor func() *vision.Monitor

	// NewPlayer builds the alarm sound player.
	NewPlayer func() audio.Player
}

// ringStartedMsg is injected from the trigger goroutine when a session opens.
type ringStartedMsg struct {
	Session *ring.Session
	Gate    *quiz.Gate
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	opts    Options
	router  *router.Router
	manager *ring.Manager
	width   int
	height  int
	ringing bool
}

// newAppModel creates a new AppModel with the home screen.
func newAppModel(opts Options, manager *ring.Manager) AppModel {
	homeScreen := home.New(opts.Alarms, opts.EventRepo)
	return AppModel{
		opts:    opts,
		router:  router.New(homeScreen),
		manager: manager,
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case ringStartedMsg:
		m.ringing = true
		return m, m.router.Push(ringscreen.New(msg.Session, msg.Gate, ringscreen.Config{
			EARThreshold:     m.opts.Config.EARThreshold,
			PollInterval:     m.opts.Config.LivenessPollInterval,
			WrongAnswerDelay: m.opts.Config.WrongAnswerRetryDelay,
		}))

	case ringscreen.ClosedMsg:
		m.ringing = false
		return m, m.router.Pop()

	case tea.KeyMsg:
		// While an alarm rings the session is the only way out: no quit,
		// no back-navigation.
		key := msg.String()
		if m.ringing {
			if key == "ctrl+c" || key == "esc" {
				return m, nil
			}
			break
		}
		switch key {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	status := ""
	if m.ringing {
		status = "RINGING"
	} else if h, ok := m.router.Active().(*home.HomeScreen); ok {
		status = h.NextAlarmLine()
	}

	header := layout.RenderHeader(title, status, m.width)

	var footerHints []layout.KeyHint
	if hp, ok := active.(interface{ KeyHints() []layout.KeyHint }); ok {
		footerHints = hp.KeyHints()
	}
	if footerHints == nil {
		footerHints = []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program and the trigger loop beside it.
func Run(opts Options) error {
	manager := ring.NewManager()

	p := tea.NewProgram(newAppModel(opts, manager))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	opener := &sessionOpener{opts: opts, manager: manager, send: p.Send}
	clock := trigger.SystemClock{Interval: opts.Config.TriggerPollInterval}
	evaluator := trigger.NewEvaluator(opts.Alarms, opener, clock)
	go func() {
		if err := evaluator.Run(ctx); err != nil && ctx.Err() == nil {
			fmt.Fprintln(os.Stderr, "trigger loop stopped:", err)
		}
	}()

	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}

	// Never leave the camera or the speaker running on exit.
	if s := manager.Active(); s != nil {
		s.Teardown()
	}
	return nil
}
