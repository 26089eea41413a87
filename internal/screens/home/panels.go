package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/cyberguard/internal/progress"
	"github.com/abhisek/cyberguard/internal/screens/welcome"
	"github.com/abhisek/cyberguard/internal/ui/theme"
)

func centered(cw int) lipgloss.Style {
	return lipgloss.NewStyle().Width(cw).Align(lipgloss.Center)
}

func renderTitle(cw int, compact bool) string {
	if compact {
		return centered(cw).Foreground(theme.Primary).Bold(true).Render(welcome.BannerCompact)
	}
	return centered(cw).Render(welcome.RenderBanner(cw))
}

// renderStatusPanel is the double-bordered readout under the banner:
// completions, average, streak and, outside compact mode, the skill tier.
func renderStatusPanel(p *progress.UserProgress, cw int, compact bool) string {
	done := lipgloss.NewStyle().Foreground(theme.Highlight).Bold(true)
	avg := lipgloss.NewStyle().Foreground(theme.ScoreColor(p.AverageScore)).Bold(true)
	tier := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	if p.TotalSimulationsCompleted == 0 {
		avg = lipgloss.NewStyle().Foreground(theme.TextDim)
	}

	var fields []string
	if compact {
		fields = []string{
			done.Render(fmt.Sprintf("★%d", p.TotalSimulationsCompleted)),
			avg.Render(fmt.Sprintf("◆%d%%", p.AverageScore)),
			streakField(p.CurrentStreak, true),
		}
	} else {
		fields = []string{
			done.Render(fmt.Sprintf("★ %d DONE", p.TotalSimulationsCompleted)),
			avg.Render(fmt.Sprintf("◆ %d%% AVG", p.AverageScore)),
			streakField(p.CurrentStreak, false),
			tier.Render("⛨ " + strings.ToUpper(p.SkillLevel.DisplayName())),
		}
	}
	sep := "  "
	if compact {
		sep = " "
	}
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(cw-2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(strings.Join(fields, sep))
}

func streakField(days int, compact bool) string {
	style := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	switch {
	case days == 0 && compact:
		return lipgloss.NewStyle().Foreground(theme.TextDim).Render("🔥0")
	case days == 0:
		return lipgloss.NewStyle().Foreground(theme.TextDim).Render("🔥 NO STREAK")
	case compact:
		return style.Render(fmt.Sprintf("🔥%d", days))
	}
	return style.Render(fmt.Sprintf("🔥 %d DAY STREAK", days))
}

func renderSignInNote(cw int) string {
	return centered(cw).Foreground(theme.TextDim).Italic(true).
		Render("Sign in to track progress and unlock achievements")
}

func renderMascotBox(variant MascotVariant, cw int) string {
	return centered(cw).Render(RenderMascot(variant))
}
