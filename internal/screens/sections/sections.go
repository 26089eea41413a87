package sections

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/cyberguard/internal/progress"
	"github.com/abhisek/cyberguard/internal/router"
	"github.com/abhisek/cyberguard/internal/screen"
	"github.com/abhisek/cyberguard/internal/tracker"
	"github.com/abhisek/cyberguard/internal/ui/components"
	"github.com/abhisek/cyberguard/internal/ui/layout"
	"github.com/abhisek/cyberguard/internal/ui/theme"
)

var sectionTitles = map[string]string{
	progress.SectionThreats:    "Cyber Threats",
	progress.SectionLaws:       "Cyber Laws & Compliance",
	progress.SectionPrevention: "Prevention Strategies",
}

type markedMsg struct {
	Section string
	Err     error
}

// SectionsScreen lets the learner mark learning sections as completed.
type SectionsScreen struct {
	tracker  *tracker.Tracker
	selected int
	status   string
	errMsg   string
}

var _ screen.Screen = (*SectionsScreen)(nil)
var _ screen.KeyHintProvider = (*SectionsScreen)(nil)

// New creates a new SectionsScreen.
func New(tr *tracker.Tracker) *SectionsScreen {
	return &SectionsScreen{tracker: tr}
}

func (s *SectionsScreen) Init() tea.Cmd {
	return nil
}

func (s *SectionsScreen) Title() string {
	return "Learning"
}

func (s *SectionsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Mark complete"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SectionsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case markedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			s.status = ""
			return s, nil
		}
		s.errMsg = ""
		s.status = sectionTitles[msg.Section] + " marked complete"
		return s, nil

	case tea.KeyMsg:
		ids := progress.Sections()
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(ids)-1 {
				s.selected++
			}
		case "enter", "space":
			id := ids[s.selected]
			return s, func() tea.Msg {
				_, err := s.tracker.MarkSectionCompleted(context.Background(), id)
				return markedMsg{Section: id, Err: err}
			}
		}
	}
	return s, nil
}

func (s *SectionsScreen) View(width, height int) string {
	p := s.tracker.Progress()
	cw := components.ContentWidth(width)

	var b strings.Builder
	for i, id := range progress.Sections() {
		mark := "[ ]"
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if p.SectionCompleted(id) {
			mark = "[✓]"
			style = style.Foreground(theme.Success)
		}
		prefix := "  "
		if i == s.selected {
			prefix = "▸ "
			style = style.Bold(true)
		}
		b.WriteString(style.Render(fmt.Sprintf("%s%s %s", prefix, mark, sectionTitles[id])))
		b.WriteString("\n")
	}

	done := 0
	for _, id := range progress.Sections() {
		if p.SectionCompleted(id) {
			done++
		}
	}
	total := len(progress.Sections())

	bar := components.NewProgressBar("Sections", float64(done)/float64(total), true, cw)
	if done == total {
		bar.Fill = theme.Success
	}
	out := []string{
		components.Card(b.String(), cw),
		bar.View(),
	}
	if s.status != "" {
		out = append(out, lipgloss.NewStyle().Foreground(theme.Success).Render(s.status))
	}
	if s.errMsg != "" {
		out = append(out, lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg))
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(out, "\n\n"))
}
