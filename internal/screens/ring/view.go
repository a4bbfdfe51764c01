package ring

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/wakey/internal/ui/components"
	"github.com/abhisek/wakey/internal/ui/theme"
)

// gaugeCeiling is the top of the eye-openness scale. Typical open-eye
// readings sit around 0.3, so 0.6 leaves visible headroom.
const gaugeCeiling = 0.6

func (s *RingScreen) View(width, height int) string {
	var sections []string

	a := s.session.Alarm
	sections = append(sections,
		theme.Title.Render(fmt.Sprintf("⏰  %s  %s", a.Time, a.Label)))

	if s.closing {
		sections = append(sections, theme.Hint.Render("Dismissing..."))
	} else {
		sections = append(sections, s.renderGates(width))
		sections = append(sections, s.renderQuestion())
	}

	if s.actionErr != "" {
		sections = append(sections, theme.GateClosed.Render(s.actionErr))
	}

	if s.session.Dismissible() {
		buttons := lipgloss.JoinHorizontal(lipgloss.Center,
			components.NewButton("Stop (s)", true, nil).View(),
			"  ",
			components.NewButton("Snooze (z)", false, nil).View(),
		)
		sections = append(sections,
			theme.GateOpen.Render("You are awake.")+"\n\n"+buttons)
	}

	content := strings.Join(sections, "\n\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (s *RingScreen) renderGates(width int) string {
	gaugeWidth := width / 2
	if gaugeWidth > 50 {
		gaugeWidth = 50
	}
	if gaugeWidth < 20 {
		gaugeWidth = 20
	}

	gauge := components.NewGauge("Eyes", s.session.EAR(), gaugeCeiling,
		s.cfg.EARThreshold, gaugeWidth)

	awake := theme.GateClosed.Render("✗ eyes closed")
	if s.session.Awake() {
		awake = theme.GateOpen.Render("✓ eyes open")
	}
	solved := theme.GateClosed.Render("✗ question unanswered")
	if s.session.Solved() {
		solved = theme.GateOpen.Render("✓ question answered")
	}

	return gauge.View() + "\n\n" + awake + "    " + solved
}

func (s *RingScreen) renderQuestion() string {
	if s.gate.Solved() {
		return theme.Body.Render("Question answered.")
	}

	q := s.gate.Question()
	if q.Prompt == "" {
		return theme.Card.Render(theme.Hint.Render("Fetching a question..."))
	}
	rows := []string{
		theme.Body.Render(q.Prompt),
		"",
		s.input.View(),
	}

	if s.lockedOut {
		rows = append(rows, "",
			theme.GateClosed.Render("Wrong. A new question is coming..."))
	}

	return theme.Card.Render(strings.Join(rows, "\n"))
}
