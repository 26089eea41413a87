package dashboard

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/cyberguard/internal/progress"
	"github.com/abhisek/cyberguard/internal/report"
	"github.com/abhisek/cyberguard/internal/router"
	"github.com/abhisek/cyberguard/internal/screen"
	"github.com/abhisek/cyberguard/internal/simulation"
	"github.com/abhisek/cyberguard/internal/store"
	"github.com/abhisek/cyberguard/internal/tracker"
	"github.com/abhisek/cyberguard/internal/ui/components"
	"github.com/abhisek/cyberguard/internal/ui/layout"
	"github.com/abhisek/cyberguard/internal/ui/theme"
)

const (
	recentAchievements = 6
	recentResults      = 5
)

type recentLoadedMsg struct {
	Attempts []store.Attempt
	Err      error
}

// DashboardScreen summarizes the signed-in learner's progress.
type DashboardScreen struct {
	tracker *tracker.Tracker
	catalog *simulation.Catalog
	recent  []store.Attempt
	errMsg  string
}

var _ screen.Screen = (*DashboardScreen)(nil)
var _ screen.KeyHintProvider = (*DashboardScreen)(nil)

// New creates a new DashboardScreen.
func New(tr *tracker.Tracker, catalog *simulation.Catalog) *DashboardScreen {
	return &DashboardScreen{tracker: tr, catalog: catalog}
}

func (s *DashboardScreen) Init() tea.Cmd {
	return func() tea.Msg {
		attempts, err := s.tracker.History(context.Background(), store.QueryOpts{Limit: recentResults})
		return recentLoadedMsg{Attempts: attempts, Err: err}
	}
}

func (s *DashboardScreen) Title() string {
	return "Dashboard"
}

func (s *DashboardScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
}

func (s *DashboardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case recentLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.recent = msg.Attempts
	case tea.KeyMsg:
		if msg.String() == "esc" {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *DashboardScreen) View(width, height int) string {
	p := s.tracker.Progress()
	cw := components.ContentWidth(width)

	name := "Guardian"
	if u := s.tracker.User(); u != nil {
		name = u.Name()
	}

	var sections []string
	sections = append(sections, lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).
		Render("Welcome back, "+name))

	sections = append(sections, components.Card(renderStats(p), cw))
	sections = append(sections, components.Card(renderLevel(p), cw))

	if recs := s.tracker.Recommendations(); len(recs) > 0 {
		lines := make([]string, len(recs))
		for i, r := range recs {
			lines[i] = "  • " + r
		}
		sections = append(sections, components.Panel("Recommended next", strings.Join(lines, "\n"), cw))
	}

	sections = append(sections, components.Card(renderAchievements(p), cw))
	sections = append(sections, components.Card(s.renderRecent(), cw))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top, strings.Join(sections, "\n"))
}

func heading(s string) string {
	return lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(s)
}

func renderStats(p *progress.UserProgress) string {
	return components.StatRow(
		components.Stat("Simulations", fmt.Sprintf("%d", p.TotalSimulationsCompleted), theme.Highlight),
		components.Stat("Average", fmt.Sprintf("%d%%", p.AverageScore), theme.ScoreColor(p.AverageScore)),
		components.Stat("Streak", fmt.Sprintf("%d days", p.CurrentStreak), theme.Primary),
		components.Stat("Time", report.FormatMinutes(p.TimeSpent), theme.Accent),
	)
}

func renderLevel(p *progress.UserProgress) string {
	level := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(p.SkillLevel.DisplayName())
	return heading("Skill level") + "  " + level + "\n" +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(p.SkillLevel.Blurb()) +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf("   (longest streak %d days)", p.LongestStreak))
}

func renderAchievements(p *progress.UserProgress) string {
	var b strings.Builder
	b.WriteString(heading("Recent achievements"))
	if len(p.Achievements) == 0 {
		b.WriteString("\n  ")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render("None yet. Complete a simulation to earn your first."))
		return b.String()
	}
	list := p.Achievements
	if len(list) > recentAchievements {
		list = list[len(list)-recentAchievements:]
	}
	for i := len(list) - 1; i >= 0; i-- {
		a := list[i]
		b.WriteString(fmt.Sprintf("\n  %s %s", components.Glyph(string(a.Icon)),
			lipgloss.NewStyle().Foreground(theme.Highlight).Render(a.Title)))
	}
	return b.String()
}

func (s *DashboardScreen) renderRecent() string {
	var b strings.Builder
	b.WriteString(heading("Recent results"))
	if s.errMsg != "" {
		b.WriteString("\n  " + lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg))
		return b.String()
	}
	if len(s.recent) == 0 {
		b.WriteString("\n  ")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render("No results yet."))
		return b.String()
	}
	for _, a := range s.recent {
		title := a.SimulationID
		if def, ok := s.catalog.Get(a.SimulationID); ok {
			title = def.Title
		}
		b.WriteString(fmt.Sprintf("\n  %-28s %d/%d  %s", title, a.Score, a.TotalQuestions,
			lipgloss.NewStyle().Foreground(theme.TextDim).Render(a.CompletedAt.Format("Jan 02"))))
	}
	return b.String()
}
