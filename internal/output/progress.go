package output

import (
	"fmt"
	"strings"
)

// ScoreBar renders a visual bar for a 0-100 score.
// Example: "████████░░░░░░░░░░░░ 42/100"
func ScoreBar(score int, width int) string {
	if width <= 0 {
		width = 20
	}
	filled := score * width / 100
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return fmt.Sprintf("%s %s",
		ScoreStyle(score).Render(bar),
		StyleMuted.Render(fmt.Sprintf("%d/100", score)))
}

// TrendArrow returns a styled indicator for a score delta between runs.
// Positive deltas are improvements.
func TrendArrow(delta int) string {
	if delta == 0 {
		return StyleMuted.Render("─")
	}
	if delta > 0 {
		return StyleSuccess.Render(fmt.Sprintf("▲ +%d", delta))
	}
	return StyleError.Render(fmt.Sprintf("▼ %d", delta))
}

// Section prints a styled section header with a horizontal rule.
func Section(title string) string {
	header := StyleHeader.Render(title)
	rule := StyleMuted.Render(strings.Repeat("─", 66))
	return fmt.Sprintf("\n %s\n %s", header, rule)
}
