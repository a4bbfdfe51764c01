// Package alarms implements the alarm management screen: list, create,
// edit, delete, enable and disable.
package alarms

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/wakey/internal/alarm"
	"github.com/abhisek/wakey/internal/router"
	"github.com/abhisek/wakey/internal/screen"
	"github.com/abhisek/wakey/internal/ui/components"
	"github.com/abhisek/wakey/internal/ui/layout"
	"github.com/abhisek/wakey/internal/ui/theme"
)

type mode int

const (
	modeBrowse mode = iota
	modeAdd
	modeEdit
)

type loadedMsg struct {
	Alarms []alarm.Alarm
	Err    error
}

type savedMsg struct {
	Err error
}

// AlarmsScreen lists alarms and hosts the add/edit form.
type AlarmsScreen struct {
	store    alarm.Store
	alarms   []alarm.Alarm
	selected int
	loaded   bool
	errMsg   string

	mode       mode
	editID     string
	timeInput  components.TextInput
	labelInput components.TextInput
	timeFocus  bool
	formErr    string
}

var _ screen.Screen = (*AlarmsScreen)(nil)
var _ screen.KeyHintProvider = (*AlarmsScreen)(nil)

// New creates a new AlarmsScreen.
func New(store alarm.Store) *AlarmsScreen {
	return &AlarmsScreen{store: store}
}

func (s *AlarmsScreen) Init() tea.Cmd {
	return s.load()
}

func (s *AlarmsScreen) Title() string {
	return "Alarms"
}

func (s *AlarmsScreen) KeyHints() []layout.KeyHint {
	if s.mode != modeBrowse {
		return []layout.KeyHint{
			{Key: "Tab", Description: "Next field"},
			{Key: "Enter", Description: "Save"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "A", Description: "Add"},
		{Key: "E", Description: "Edit"},
		{Key: "T", Description: "Toggle"},
		{Key: "D", Description: "Delete"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *AlarmsScreen) load() tea.Cmd {
	return func() tea.Msg {
		list, err := s.store.List(context.Background())
		return loadedMsg{Alarms: list, Err: err}
	}
}

func (s *AlarmsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.alarms = msg.Alarms
			s.errMsg = ""
			if s.selected >= len(s.alarms) {
				s.selected = len(s.alarms) - 1
			}
			if s.selected < 0 {
				s.selected = 0
			}
		}
		s.loaded = true
		return s, nil

	case savedMsg:
		if msg.Err != nil {
			s.formErr = msg.Err.Error()
			return s, nil
		}
		s.mode = modeBrowse
		s.formErr = ""
		return s, s.load()

	case tea.KeyMsg:
		if s.mode == modeBrowse {
			return s.updateBrowse(msg)
		}
		return s.updateForm(msg)
	}

	if s.mode != modeBrowse {
		return s, s.forwardToInput(msg)
	}
	return s, nil
}

func (s *AlarmsScreen) updateBrowse(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < len(s.alarms)-1 {
			s.selected++
		}
	case "a":
		s.openForm(modeAdd, nil)
		return s, s.timeInput.Init()
	case "e", "enter":
		if a := s.current(); a != nil {
			s.openForm(modeEdit, a)
			return s, s.timeInput.Init()
		}
	case "t", " ":
		if a := s.current(); a != nil {
			id := a.ID
			return s, func() tea.Msg {
				_, err := s.store.ToggleEnabled(context.Background(), id)
				if err != nil {
					return savedMsg{Err: err}
				}
				return savedMsg{}
			}
		}
	case "d":
		if a := s.current(); a != nil {
			id := a.ID
			return s, func() tea.Msg {
				if err := s.store.Delete(context.Background(), id); err != nil {
					return savedMsg{Err: err}
				}
				return savedMsg{}
			}
		}
	}
	return s, nil
}

func (s *AlarmsScreen) updateForm(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		s.mode = modeBrowse
		s.formErr = ""
		return s, nil
	case "tab", "shift+tab":
		s.timeFocus = !s.timeFocus
		if s.timeFocus {
			s.labelInput.Model.Blur()
			return s, s.timeInput.Model.Focus()
		}
		s.timeInput.Model.Blur()
		return s, s.labelInput.Model.Focus()
	case "enter":
		return s, s.save()
	}
	return s, s.forwardToInput(msg)
}

func (s *AlarmsScreen) forwardToInput(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if s.timeFocus {
		s.timeInput, cmd = s.timeInput.Update(msg)
	} else {
		s.labelInput, cmd = s.labelInput.Update(msg)
	}
	return cmd
}

func (s *AlarmsScreen) openForm(m mode, a *alarm.Alarm) {
	s.mode = m
	s.formErr = ""
	s.timeFocus = true
	s.timeInput = components.NewTextInput("HH:MM", 5)
	s.labelInput = components.NewTextInput(alarm.DefaultLabel, 40)
	s.labelInput.Model.Blur()
	if a != nil {
		s.editID = a.ID
		s.timeInput.SetValue(a.Time)
		s.labelInput.SetValue(a.Label)
	}
}

func (s *AlarmsScreen) save() tea.Cmd {
	clockTime, err := alarm.ParseClockTime(strings.TrimSpace(s.timeInput.Value()))
	if err != nil {
		s.formErr = err.Error()
		return nil
	}
	label := strings.TrimSpace(s.labelInput.Value())

	if s.mode == modeAdd {
		return func() tea.Msg {
			_, err := s.store.Create(context.Background(), clockTime, label)
			return savedMsg{Err: err}
		}
	}

	id := s.editID
	if label == "" {
		label = alarm.DefaultLabel
	}
	return func() tea.Msg {
		_, err := s.store.Update(context.Background(), id, alarm.Edit{
			Time:  &clockTime,
			Label: &label,
		})
		return savedMsg{Err: err}
	}
}

func (s *AlarmsScreen) current() *alarm.Alarm {
	if s.selected < 0 || s.selected >= len(s.alarms) {
		return nil
	}
	return &s.alarms[s.selected]
}

func (s *AlarmsScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading alarms...")
	}
	if s.mode != modeBrowse {
		return s.viewForm(width)
	}
	return s.viewList(width)
}

func (s *AlarmsScreen) viewList(width int) string {
	if len(s.alarms) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No alarms yet. Press A to add one.")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, a := range s.alarms {
		state := "○ off"
		if a.Enabled {
			state = "● on "
		}

		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		line := fmt.Sprintf("%s%s  %s  %s", prefix, a.Time, state, a.Label)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if !a.Enabled {
			style = style.Foreground(theme.TextDim)
		}
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			style.Render(line)))
		b.WriteString("\n")
	}

	return b.String()
}

func (s *AlarmsScreen) viewForm(width int) string {
	title := "New Alarm"
	if s.mode == modeEdit {
		title = "Edit Alarm"
	}

	rows := []string{
		theme.Title.Render(title),
		"",
		"Time   " + s.timeInput.View(),
		"Label  " + s.labelInput.View(),
	}
	if s.formErr != "" {
		rows = append(rows, "", theme.GateClosed.Render(s.formErr))
	}

	card := theme.Card.Render(strings.Join(rows, "\n"))
	return "\n\n" + lipgloss.PlaceHorizontal(width, lipgloss.Center, card)
}
