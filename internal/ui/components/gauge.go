package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/wakey/internal/ui/theme"
)

// Gauge displays a horizontal level bar with an optional threshold mark.
// The ring screen uses it to show live eye openness against the wake
// threshold.
type Gauge struct {
	Label     string
	Value     float64 // current level, clamped to [0, Max]
	Max       float64
	Threshold float64 // 0 disables the mark
	Width     int
}

// NewGauge creates a new gauge.
func NewGauge(label string, value, max, threshold float64, width int) Gauge {
	return Gauge{
		Label:     label,
		Value:     value,
		Max:       max,
		Threshold: threshold,
		Width:     width,
	}
}

// View renders the gauge.
func (g Gauge) View() string {
	var result string

	if g.Label != "" {
		result += lipgloss.NewStyle().Foreground(theme.Text).Render(g.Label) + "  "
	}

	labelWidth := lipgloss.Width(result)
	valueWidth := 7 // " 0.000"

	barWidth := g.Width - labelWidth - valueWidth
	if barWidth < 4 {
		barWidth = 4
	}

	max := g.Max
	if max <= 0 {
		max = 1
	}

	filled := int(float64(barWidth) * g.Value / max)
	if filled > barWidth {
		filled = barWidth
	}
	if filled < 0 {
		filled = 0
	}

	mark := -1
	if g.Threshold > 0 {
		mark = int(float64(barWidth) * g.Threshold / max)
		if mark >= barWidth {
			mark = barWidth - 1
		}
	}

	fillStyle := theme.GaugeFilled
	if g.Threshold > 0 && g.Value > g.Threshold {
		fillStyle = lipgloss.NewStyle().Background(theme.Success)
	}

	var bar strings.Builder
	for i := 0; i < barWidth; i++ {
		switch {
		case i == mark:
			bar.WriteString(lipgloss.NewStyle().
				Foreground(theme.Primary).Background(theme.Border).Render("|"))
		case i < filled:
			bar.WriteString(fillStyle.Render(" "))
		default:
			bar.WriteString(theme.GaugeEmpty.Render(" "))
		}
	}

	result += bar.String()
	result += lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("  %.3f", g.Value))

	return result
}
