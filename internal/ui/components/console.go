package components

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/cyberguard/internal/ui/theme"
)

// Console content width bounds.
const (
	maxContentWidth = 72
	minContentWidth = 20
	frameChrome     = 6 // border 2 + padding 4
)

// ContentWidth returns the inner width every panel inside the console frame
// renders at, so stacked boxes line up.
func ContentWidth(frameWidth int) int {
	return min(max(frameWidth-frameChrome, minContentWidth), maxContentWidth)
}

// ConsoleFrame draws the double-bordered console around content, centered in
// both directions.
func ConsoleFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width-2).
		Height(height-2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// Card wraps content in a rounded-border card at content width cw.
func Card(content string, cw int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(cw-2).
		Padding(0, 2).
		Render(content)
}

// Panel is a Card with a bold heading line.
func Panel(heading, body string, cw int) string {
	h := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(heading)
	if body == "" {
		return Card(h, cw)
	}
	return Card(h+"\n"+body, cw)
}

// Stat renders a value over its label.
func Stat(label, value string, fg color.Color) string {
	return lipgloss.JoinVertical(lipgloss.Center,
		lipgloss.NewStyle().Foreground(fg).Bold(true).Render(value),
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(label))
}

// StatRow lays stats out side by side with a fixed gap.
func StatRow(stats ...string) string {
	cells := make([]string, len(stats))
	for i, s := range stats {
		if i < len(stats)-1 {
			s = lipgloss.NewStyle().PaddingRight(4).Render(s)
		}
		cells[i] = s
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

// MenuButton renders one fixed-width menu button; the selected one is filled
// amber with a pointer.
func MenuButton(label string, selected bool, width int) string {
	style := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)
	if selected {
		return style.
			Bold(true).
			Foreground(theme.BgDark).
			Background(theme.Highlight).
			BorderForeground(theme.Highlight).
			Render("▸ " + label)
	}
	return style.
		Foreground(theme.Text).
		BorderForeground(theme.Border).
		Render(label)
}
