// Package history shows past ring sessions from the event log.
package history

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/wakey/internal/router"
	"github.com/abhisek/wakey/internal/screen"
	"github.com/abhisek/wakey/internal/store"
	"github.com/abhisek/wakey/internal/ui/layout"
	"github.com/abhisek/wakey/internal/ui/theme"
)

type historyLoadedMsg struct {
	Events []store.RingEventRecord
	Stats  *store.RingStats
	Err    error
}

// HistoryScreen displays past ring events and summary stats.
type HistoryScreen struct {
	eventRepo store.EventRepo
	events    []store.RingEventRecord
	stats     *store.RingStats
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(eventRepo store.EventRepo) *HistoryScreen {
	return &HistoryScreen{eventRepo: eventRepo}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		events, err := s.eventRepo.QueryRingEvents(ctx, store.QueryOpts{Limit: 50})
		if err != nil {
			return historyLoadedMsg{Err: err}
		}

		stats, err := s.eventRepo.Stats(ctx)
		if err != nil {
			return historyLoadedMsg{Events: events}
		}

		return historyLoadedMsg{Events: events, Stats: stats}
	}
}

func (s *HistoryScreen) Title() string {
	return "Ring History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.events = msg.Events
			s.stats = msg.Stats
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		if msg.String() == "esc" {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.events) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No rings yet.")
	}

	var b strings.Builder
	b.WriteString("\n")

	if s.stats != nil {
		line := fmt.Sprintf("%d rings   %d stopped   %d snoozed", s.stats.Rings, s.stats.Stops, s.stats.Snoozes)
		if s.stats.MeanTimeToClose > 0 {
			line += fmt.Sprintf("   avg wake-up %s", s.stats.MeanTimeToClose.Round(time.Second))
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Accent).Render(line)))
		b.WriteString("\n\n")
	}

	for _, e := range s.events {
		when := e.Timestamp.Local().Format("Jan 02 15:04:05")

		var desc string
		switch e.Kind {
		case store.RingOpened:
			desc = "rang"
		case store.RingStopped:
			desc = "stopped"
		case store.RingSnoozed:
			desc = fmt.Sprintf("snoozed to %s", e.Detail)
		default:
			desc = e.Kind
		}

		line := fmt.Sprintf("%s  %-22s", when, desc)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if e.Kind == store.RingSnoozed {
			style = style.Foreground(theme.Secondary)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			style.Render(line)))
		b.WriteString("\n")
	}

	return b.String()
}
