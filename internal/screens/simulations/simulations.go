package simulations

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/cyberguard/internal/clock"
	"github.com/abhisek/cyberguard/internal/router"
	"github.com/abhisek/cyberguard/internal/screen"
	"github.com/abhisek/cyberguard/internal/screens/simrun"
	"github.com/abhisek/cyberguard/internal/simulation"
	"github.com/abhisek/cyberguard/internal/tracker"
	"github.com/abhisek/cyberguard/internal/ui/components"
	"github.com/abhisek/cyberguard/internal/ui/layout"
	"github.com/abhisek/cyberguard/internal/ui/theme"
)

// ListScreen shows every simulation in the catalog with the learner's best
// score and attempt count.
type ListScreen struct {
	catalog  *simulation.Catalog
	tracker  *tracker.Tracker
	clock    clock.Clock
	defs     []simulation.Definition
	selected int

	standings map[string]tracker.Standing
}

type standingsMsg struct {
	standings map[string]tracker.Standing
}

var _ screen.Screen = (*ListScreen)(nil)
var _ screen.KeyHintProvider = (*ListScreen)(nil)
var _ screen.Resumer = (*ListScreen)(nil)

// New creates a ListScreen.
func New(catalog *simulation.Catalog, tr *tracker.Tracker, clk clock.Clock) *ListScreen {
	return &ListScreen{
		catalog: catalog,
		tracker: tr,
		clock:   clk,
		defs:    catalog.All(),
	}
}

func (s *ListScreen) Init() tea.Cmd {
	return s.loadStandings()
}

// Resume reloads scores after returning from a run.
func (s *ListScreen) Resume() tea.Cmd {
	return s.loadStandings()
}

func (s *ListScreen) loadStandings() tea.Cmd {
	tr := s.tracker
	return func() tea.Msg {
		st, err := tr.Standings(context.Background())
		if err != nil {
			// Signed out: the cards read "Not attempted".
			return standingsMsg{}
		}
		return standingsMsg{standings: st}
	}
}

func (s *ListScreen) Title() string {
	return "Simulations"
}

func (s *ListScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Start"},
		{Key: "Esc", Description: "Back"},
	}
}

// Selected returns the highlighted definition.
func (s *ListScreen) Selected() *simulation.Definition {
	if len(s.defs) == 0 {
		return nil
	}
	return &s.defs[s.selected]
}

func (s *ListScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if m, ok := msg.(standingsMsg); ok {
		s.standings = m.standings
		return s, nil
	}
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < len(s.defs)-1 {
			s.selected++
		}
	case "enter":
		def := s.Selected()
		if def == nil {
			return s, nil
		}
		run := simrun.New(def, s.tracker, s.clock)
		return s, func() tea.Msg { return router.PushScreenMsg{Screen: run} }
	}
	return s, nil
}

func (s *ListScreen) View(width, height int) string {
	if len(s.defs) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\nNo simulations in the catalog")
	}

	cw := components.ContentWidth(width)

	var cards []string
	for i, def := range s.defs {
		title := fmt.Sprintf("%s  %s", components.Glyph(def.Icon), def.Title)
		meta := fmt.Sprintf("%s · %s · %d questions", def.Difficulty, def.Duration, len(def.Steps))

		status := lipgloss.NewStyle().Foreground(theme.TextDim).Render("Not attempted")
		if st, ok := s.standings[def.ID]; ok {
			status = lipgloss.NewStyle().Foreground(theme.ScoreColor(st.BestPercent)).
				Render(fmt.Sprintf("Best: %d%%  ·  Attempts: %d", st.BestPercent, st.Attempts))
		}

		titleStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
		border := theme.Border
		if i == s.selected {
			titleStyle = titleStyle.Foreground(theme.Primary)
			border = theme.Primary
		}
		body := titleStyle.Render(title) + "\n" +
			lipgloss.NewStyle().Foreground(theme.DifficultyColor(string(def.Difficulty))).Render(meta) + "\n" +
			status
		if i == s.selected {
			body += "\n" + lipgloss.NewStyle().Foreground(theme.TextDim).Width(cw-6).Render(def.Description)
		}
		cards = append(cards, lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Width(cw-2).
			Padding(0, 2).
			Render(body))
	}

	// Keep the selected card in view on short terminals.
	start := 0
	visible := height / 5
	if visible < 1 {
		visible = 1
	}
	if s.selected >= visible {
		start = s.selected - visible + 1
	}
	end := start + visible
	if end > len(cards) {
		end = len(cards)
	}

	content := strings.Join(cards[start:end], "\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
