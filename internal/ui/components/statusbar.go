package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	hintDescStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9ba0bf"))
	keyCapStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#16161d")).
			Background(lipgloss.Color("#888ba4")).
			Bold(true).
			Padding(0, 1)
	segmentGap = "  "
)

// Hint formats a single keybind hint like "move ←/→".
func Hint(key, desc string) string {
	return hintDescStyle.Render(desc+" ") + keyCapStyle.Render(key)
}

// StatusBar lays hints out in centered rows no wider than width.
func StatusBar(hints []string, width int) string {
	rows := wrapSegments(hints, width)
	if width <= 0 {
		return strings.Join(rows, "\n")
	}
	centered := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	for i, row := range rows {
		rows[i] = centered.Render(row)
	}
	return strings.Join(rows, "\n")
}

func wrapSegments(segments []string, width int) []string {
	if len(segments) == 0 {
		return nil
	}
	if width <= 0 {
		return []string{strings.Join(segments, segmentGap)}
	}
	var (
		rows    []string
		current string
	)
	for _, seg := range segments {
		if current == "" {
			current = seg
			continue
		}
		if lipgloss.Width(current)+len(segmentGap)+lipgloss.Width(seg) > width {
			rows = append(rows, current)
			current = seg
			continue
		}
		current += segmentGap + seg
	}
	return append(rows, current)
}
