package home

import (
	"strings"
	"time"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/wakey/internal/ui/theme"
)

// Five-row block digits for the big clock.
var clockGlyphs = map[rune][5]string{
	'0': {"█████", "█   █", "█   █", "█   █", "█████"},
	'1': {"   █ ", "  ██ ", "   █ ", "   █ ", "  ███"},
	'2': {"█████", "    █", "█████", "█    ", "█████"},
	'3': {"█████", "    █", " ████", "    █", "█████"},
	'4': {"█   █", "█   █", "█████", "    █", "    █"},
	'5': {"█████", "█    ", "█████", "    █", "█████"},
	'6': {"█████", "█    ", "█████", "█   █", "█████"},
	'7': {"█████", "    █", "   █ ", "  █  ", "  █  "},
	'8': {"█████", "█   █", "█████", "█   █", "█████"},
	'9': {"█████", "█   █", "█████", "    █", "█████"},
	':': {"     ", "  █  ", "     ", "  █  ", "     "},
}

// renderClock draws the current time as block digits, or as a single
// styled line when the terminal is compact.
func renderClock(now time.Time, width int, compact bool) string {
	text := now.Format("15:04:05")

	if compact {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center,
			theme.Title.Render(text))
	}

	rows := [5]strings.Builder{}
	for _, r := range text {
		glyph, ok := clockGlyphs[r]
		if !ok {
			continue
		}
		for i := range rows {
			rows[i].WriteString(glyph[i])
			rows[i].WriteString(" ")
		}
	}

	lines := make([]string, 5)
	for i := range rows {
		lines[i] = rows[i].String()
	}

	block := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Render(strings.Join(lines, "\n"))
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, block)
}
