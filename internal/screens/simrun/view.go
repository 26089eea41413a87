package simrun

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/cyberguard/internal/report"
	"github.com/abhisek/cyberguard/internal/simulation"
	"github.com/abhisek/cyberguard/internal/ui/components"
	"github.com/abhisek/cyberguard/internal/ui/theme"
)

func (s *RunScreen) View(width, height int) string {
	if s.errMsg != "" && s.runner.Phase() == simulation.PhaseIdle {
		return renderError(width, height, s.errMsg)
	}
	if s.runner.Phase() == simulation.PhaseComplete {
		return s.renderComplete(width, height)
	}
	return s.renderStep(width, height)
}

// renderStep renders the current question, and the explanation once answered.
func (s *RunScreen) renderStep(width, height int) string {
	step := s.runner.CurrentStep()
	if step == nil {
		return ""
	}
	cw := components.ContentWidth(width)
	total := len(s.def.Steps)
	idx := s.runner.StepIndex()

	var b strings.Builder

	info := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).
		Render(fmt.Sprintf("Step %d of %d", idx+1, total))
	score := lipgloss.NewStyle().Foreground(theme.TextDim).
		Render(fmt.Sprintf("Score %d", s.runner.Score()))
	pad := cw - lipgloss.Width(info) - lipgloss.Width(score)
	if pad < 1 {
		pad = 1
	}
	b.WriteString(info + strings.Repeat(" ", pad) + score)
	b.WriteString("\n")

	done := idx
	if s.runner.Phase() == simulation.PhaseAnswered {
		done++
	}
	b.WriteString(components.NewProgressBar("", float64(done)/float64(total), true, cw).View())
	b.WriteString("\n")
	choices := s.runner.Choices()
	answers := make([]bool, len(choices))
	for i, c := range choices {
		answers[i] = c.Correct
	}
	b.WriteString(components.StepTrack(answers, total, idx))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Width(cw).Render(step.Title))
	b.WriteString("\n")
	if step.Content != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Width(cw).Render(step.Content))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	s.choices.Width = cw
	b.WriteString(s.choices.View())

	if s.runner.Phase() == simulation.PhaseAnswered {
		if c, ok := s.runner.LastChoice(); ok {
			b.WriteString("\n")
			b.WriteString(renderFeedback(c.Correct, step.Explanation, cw))
		}
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}

func renderFeedback(correct bool, explanation string, cw int) string {
	head := theme.Correct.Render("✓ Correct!")
	border := theme.Success
	if !correct {
		head = theme.Incorrect.Render("✗ Not quite")
		border = theme.Error
	}
	body := lipgloss.NewStyle().Foreground(theme.Text).Width(cw - 6).Render(explanation)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(cw-2).
		Padding(0, 2).
		Render(head + "\n" + body)
}

// renderComplete renders the result panel with any unlocked achievements.
func (s *RunScreen) renderComplete(width, height int) string {
	res := s.runner.Result()
	if res == nil {
		return ""
	}
	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, lipgloss.NewStyle().
		Width(cw).Align(lipgloss.Center).Foreground(theme.Primary).Bold(true).
		Render("Simulation complete!"))

	pct := res.Percent()
	verdict := "Keep practicing, every attempt sharpens your instincts."
	fg := theme.Error
	switch {
	case res.Perfect():
		verdict = "Flawless. You spotted every threat."
		fg = theme.Success
	case pct >= theme.ScoreGood:
		verdict = "Great work. You're well prepared."
		fg = theme.Success
	case pct >= theme.ScoreFair:
		verdict = "Good effort. Review the explanations you missed."
		fg = theme.Highlight
	}

	stats := fmt.Sprintf("%s\n\n%s   %s   %s",
		lipgloss.NewStyle().Foreground(fg).Bold(true).Render(fmt.Sprintf("%d / %d correct  (%d%%)", res.Score, res.TotalQuestions, pct)),
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("Time "+report.FormatMinutes(res.TimeSpent)),
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf("Attempt #%d", res.Attempts)),
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(string(s.def.Difficulty)),
	)
	sections = append(sections, components.Card(
		lipgloss.NewStyle().Width(cw-6).Align(lipgloss.Center).Render(stats+"\n\n"+verdict), cw))

	switch {
	case s.saving:
		sections = append(sections, lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render("Saving progress..."))
	case s.errMsg != "":
		sections = append(sections, lipgloss.NewStyle().Foreground(theme.Error).Width(cw).Render("⚠ "+s.errMsg))
	case s.outcome != nil:
		for _, a := range s.outcome.NewAchievements {
			t := components.Toast{Icon: components.Glyph(string(a.Icon)), Title: "Achievement unlocked: " + a.Title, Body: a.Description}
			sections = append(sections, t.View(cw))
		}
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(sections, "\n\n"))
}

func renderError(width, height int, msg string) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Error).Render("Error: "+msg))
}
