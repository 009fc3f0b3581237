package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Panel is a bordered box with a title line. The border takes the primary
// colour while the panel is focused.
type Panel struct {
	Title   string
	Body    string
	Width   int
	Height  int
	Focused bool
}

// Render draws the panel at exactly Width x Height cells, including the
// border. Body lines beyond the available height are cut.
func (p Panel) Render(theme Theme) string {
	innerWidth := max(p.Width-4, 1)
	innerHeight := max(p.Height-2, 1)

	borderColour := theme.Palette.Neutral.Muted
	if p.Focused {
		borderColour = theme.Palette.Primary.Base
	}

	lines := make([]string, 0, innerHeight)
	if p.Title != "" {
		lines = append(lines, theme.Typography.Title.Render(truncate(p.Title, innerWidth, theme.Glyphs.Ellipsis)))
	}
	for line := range strings.SplitSeq(p.Body, "\n") {
		if len(lines) == innerHeight {
			break
		}
		lines = append(lines, line)
	}

	style := lipgloss.NewStyle().
		Border(theme.Border).
		BorderForeground(borderColour).
		Padding(0, 1).
		Width(innerWidth + 2).
		Height(innerHeight).
		MaxHeight(innerHeight + 2)

	return style.Render(strings.Join(lines, "\n"))
}

// truncate shortens s to width cells, ending with ellipsis when cut.
func truncate(s string, width int, ellipsis string) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	limit := width - lipgloss.Width(ellipsis)
	for len(runes) > 0 && lipgloss.Width(string(runes)) > limit {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + ellipsis
}
