package home

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/wakey/internal/alarm"
	"github.com/abhisek/wakey/internal/router"
	"github.com/abhisek/wakey/internal/screen"
	"github.com/abhisek/wakey/internal/screens/alarms"
	"github.com/abhisek/wakey/internal/screens/history"
	"github.com/abhisek/wakey/internal/store"
	"github.com/abhisek/wakey/internal/ui/components"
	"github.com/abhisek/wakey/internal/ui/theme"
)

// clockTickMsg refreshes the big clock once a second.
type clockTickMsg time.Time

// HomeScreen is the main screen: a large clock, the next alarm, and the
// navigation menu.
type HomeScreen struct {
	alarms    alarm.Store
	eventRepo store.EventRepo
	menu      components.Menu
	now       time.Time
	nextLine  string
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(alarmStore alarm.Store, eventRepo store.EventRepo) *HomeScreen {
	items := []components.MenuItem{
		{Label: "ALARMS", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: alarms.New(alarmStore)}
			}
		}},
		{Label: "RING HISTORY", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: history.New(eventRepo)}
			}
		}},
		{Label: "QUIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	h := &HomeScreen{
		alarms:    alarmStore,
		eventRepo: eventRepo,
		menu:      components.NewMenu(items),
		now:       time.Now(),
	}
	h.nextLine = h.computeNextAlarm()
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return clockTick()
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if t, ok := msg.(clockTickMsg); ok {
		h.now = time.Time(t)
		h.nextLine = h.computeNextAlarm()
		return h, clockTick()
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	compact := height < 18 || width < 100

	var sections []string
	sections = append(sections, renderClock(h.now, width, compact))
	sections = append(sections, h.renderNextAlarm(width))
	sections = append(sections, lipgloss.PlaceHorizontal(width, lipgloss.Center, h.menu.View()))

	content := strings.Join(sections, "\n\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) renderNextAlarm(width int) string {
	line := h.NextAlarmLine()
	style := lipgloss.NewStyle().Foreground(theme.Accent)
	if line == "" {
		line = "No alarms set"
		style = theme.Hint
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line))
}

// NextAlarmLine describes the next enabled alarm, or "" when none exists.
// The line is cached and refreshed on the clock tick so rendering never
// queries the store.
func (h *HomeScreen) NextAlarmLine() string {
	return h.nextLine
}

func (h *HomeScreen) computeNextAlarm() string {
	list, err := h.alarms.List(context.Background())
	if err != nil {
		return ""
	}
	next, at, ok := alarm.Next(list, h.now)
	if !ok {
		return ""
	}

	until := at.Sub(h.now).Round(time.Minute)
	hours := int(until.Hours())
	mins := int(until.Minutes()) % 60
	var in string
	switch {
	case hours > 0:
		in = fmt.Sprintf("in %dh %02dm", hours, mins)
	case mins > 0:
		in = fmt.Sprintf("in %dm", mins)
	default:
		in = "now"
	}
	return fmt.Sprintf("Next: %s  %s  (%s)", next.Time, next.Label, in)
}

func clockTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return clockTickMsg(t)
	})
}
