package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/cyberguard/internal/ui/theme"
)

// Toast is a transient notification, e.g. an unlocked achievement.
type Toast struct {
	Icon  string
	Title string
	Body  string
}

// View renders the toast as a highlighted card of width w.
func (t Toast) View(w int) string {
	title := lipgloss.NewStyle().Foreground(theme.Highlight).Bold(true).Render(t.Icon + "  " + t.Title)
	body := lipgloss.NewStyle().Foreground(theme.Text).Render(t.Body)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Highlight).
		Width(w - 2).
		Padding(0, 1).
		Render(title + "\n" + body)
}
