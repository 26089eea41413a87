// Package history shows the attempt log, one row per completed run.
package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/abhisek/cyberguard/internal/report"
	"github.com/abhisek/cyberguard/internal/screen"
	"github.com/abhisek/cyberguard/internal/simulation"
	"github.com/abhisek/cyberguard/internal/store"
	"github.com/abhisek/cyberguard/internal/tracker"
	"github.com/abhisek/cyberguard/internal/ui/components"
	"github.com/abhisek/cyberguard/internal/ui/layout"
	"github.com/abhisek/cyberguard/internal/ui/theme"
)

const pageSize = 50

type loadedMsg struct {
	filter   string
	attempts []store.Attempt
	err      error
}

// HistoryScreen lists completed attempts newest first, optionally narrowed to
// one simulation.
type HistoryScreen struct {
	tracker *tracker.Tracker
	catalog *simulation.Catalog

	filters  []string // "" means every simulation
	filter   int
	attempts []store.Attempt
	cursor   int
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

func New(tr *tracker.Tracker, catalog *simulation.Catalog) *HistoryScreen {
	filters := []string{""}
	if catalog != nil {
		for _, def := range catalog.All() {
			filters = append(filters, def.ID)
		}
	}
	return &HistoryScreen{tracker: tr, catalog: catalog, filters: filters}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return s.load()
}

func (s *HistoryScreen) load() tea.Cmd {
	tr, id := s.tracker, s.filters[s.filter]
	return func() tea.Msg {
		attempts, err := tr.History(context.Background(), store.QueryOpts{Limit: pageSize, SimulationID: id})
		return loadedMsg{filter: id, attempts: attempts, err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Tab", Description: "Filter"},
		{Key: "Esc", Description: "Back"},
	}
}

// Filter returns the simulation ID the list is narrowed to, or "".
func (s *HistoryScreen) Filter() string {
	return s.filters[s.filter]
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		if msg.filter != s.Filter() {
			return s, nil // stale
		}
		s.loaded = true
		s.errMsg = ""
		if msg.err != nil {
			s.errMsg = msg.err.Error()
			return s, nil
		}
		s.attempts = msg.attempts
		s.cursor = min(s.cursor, max(len(s.attempts)-1, 0))
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			s.cursor = max(s.cursor-1, 0)
		case "down", "j":
			s.cursor = min(s.cursor+1, max(len(s.attempts)-1, 0))
		case "tab":
			s.filter = (s.filter + 1) % len(s.filters)
			s.cursor = 0
			return s, s.load()
		case "shift+tab":
			s.filter = (s.filter + len(s.filters) - 1) % len(s.filters)
			s.cursor = 0
			return s, s.load()
		}
	}
	return s, nil
}

func (s *HistoryScreen) title(id string) string {
	if s.catalog != nil {
		if def, ok := s.catalog.Get(id); ok {
			return def.Title
		}
	}
	return id
}

func (s *HistoryScreen) View(width, height int) string {
	center := func(style lipgloss.Style, text string) string {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, style.Render(text))
	}
	switch {
	case s.errMsg != "":
		return center(lipgloss.NewStyle().Foreground(theme.Error), "Error: "+s.errMsg)
	case !s.loaded:
		return center(lipgloss.NewStyle().Foreground(theme.TextDim), "Loading history...")
	}

	cw := components.ContentWidth(width)
	filter := "All simulations"
	if id := s.Filter(); id != "" {
		filter = s.title(id)
	}
	head := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render("◂ "+filter+" ▸") +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf("   %d attempts", len(s.attempts)))

	if len(s.attempts) == 0 {
		empty := lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).
			Render("No simulations completed yet. Start training!")
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, head+"\n\n"+empty)
	}

	parts := []string{head, s.renderTable(height - 10), s.renderDetail(cw)}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(parts, "\n\n"))
}

// renderTable shows a window of rows that keeps the cursor visible.
func (s *HistoryScreen) renderTable(rows int) string {
	rows = max(rows-4, 3) // table borders and header
	start := max(s.cursor-rows+1, 0)
	end := min(start+rows, len(s.attempts))

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.Border)).
		Headers("DATE", "SIMULATION", "SCORE", "%").
		StyleFunc(func(row, col int) lipgloss.Style {
			st := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case row == table.HeaderRow:
				return st.Foreground(theme.TextDim).Bold(true)
			case start+row == s.cursor:
				return st.Foreground(theme.Primary).Bold(true)
			case col == 3:
				a := s.attempts[start+row]
				return st.Foreground(theme.ScoreColor(simulation.Percent(a.Score, a.TotalQuestions)))
			}
			return st.Foreground(theme.Text)
		})
	for _, a := range s.attempts[start:end] {
		t.Row(a.CompletedAt.Format("Jan 02 15:04"), s.title(a.SimulationID),
			fmt.Sprintf("%d/%d", a.Score, a.TotalQuestions),
			fmt.Sprintf("%d%%", simulation.Percent(a.Score, a.TotalQuestions)))
	}
	return t.String()
}

func (s *HistoryScreen) renderDetail(cw int) string {
	a := s.attempts[s.cursor]
	body := fmt.Sprintf("attempt #%d  ·  %s  ·  completed %s",
		a.Attempts, report.FormatMinutes(a.TimeSpent), a.CompletedAt.Format("Mon Jan 2, 15:04"))
	return components.Panel(s.title(a.SimulationID), body, cw)
}
