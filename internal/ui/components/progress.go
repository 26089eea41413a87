package components

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/cyberguard/internal/ui/theme"
)

// ProgressBar displays a horizontal fill bar with an optional label and
// percentage.
type ProgressBar struct {
	Label       string
	Percent     float64 // 0..1
	ShowPercent bool
	Width       int
	Fill        color.Color // defaults to theme.Secondary
}

// NewProgressBar creates a new progress bar.
func NewProgressBar(label string, percent float64, showPercent bool, width int) ProgressBar {
	return ProgressBar{
		Label:       label,
		Percent:     percent,
		ShowPercent: showPercent,
		Width:       width,
	}
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	var b strings.Builder
	if p.Label != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label))
		b.WriteString("  ")
	}

	pct := min(max(p.Percent, 0), 1)
	suffix := ""
	if p.ShowPercent {
		suffix = fmt.Sprintf("  %3d%%", int(pct*100+0.5))
	}

	barWidth := max(p.Width-lipgloss.Width(b.String())-len(suffix), 4)
	filled := int(float64(barWidth)*pct + 0.5)

	fill := p.Fill
	if fill == nil {
		fill = theme.Secondary
	}
	b.WriteString(lipgloss.NewStyle().Foreground(fill).Render(strings.Repeat("█", filled)))
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("░", barWidth-filled)))
	if suffix != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(suffix))
	}
	return b.String()
}

// StepTrack renders one marker per step: answered steps green or red by
// correctness, the current step highlighted, the rest pending.
func StepTrack(answers []bool, total, current int) string {
	marks := make([]string, 0, total)
	for i := 0; i < total; i++ {
		switch {
		case i < len(answers) && answers[i]:
			marks = append(marks, lipgloss.NewStyle().Foreground(theme.Success).Render("●"))
		case i < len(answers):
			marks = append(marks, lipgloss.NewStyle().Foreground(theme.Error).Render("●"))
		case i == current:
			marks = append(marks, lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("◉"))
		default:
			marks = append(marks, lipgloss.NewStyle().Foreground(theme.TextDim).Render("○"))
		}
	}
	return strings.Join(marks, " ")
}
