package achievements

import (
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

// entry is one catalog achievement with its unlock state.
type entry struct {
	def      progress.AchievementDef
	unlocked *progress.Achievement
}

// VaultScreen lists unlocked and locked achievements, grouped by category.
type VaultScreen struct {
	tracker      *tracker.Tracker
	selectedTab  int // index into progress.AllCategories
	scrollOffset int
}

var _ screen.Screen = (*VaultScreen)(nil)
var _ screen.KeyHintProvider = (*VaultScreen)(nil)

// New creates a new VaultScreen.
func New(tr *tracker.Tracker) *VaultScreen {
	return &VaultScreen{tracker: tr}
}

func (s *VaultScreen) Init() tea.Cmd {
	return nil
}

func (s *VaultScreen) Title() string {
	return "Achievements"
}

func (s *VaultScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Switch category"},
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *VaultScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		cats := progress.AllCategories()
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "tab", "right", "l":
			s.selectedTab = (s.selectedTab + 1) % len(cats)
			s.scrollOffset = 0
		case "shift+tab", "left", "h":
			s.selectedTab = (s.selectedTab - 1 + len(cats)) % len(cats)
			s.scrollOffset = 0
		case "up", "k":
			if s.scrollOffset > 0 {
				s.scrollOffset--
			}
		case "down", "j":
			if s.scrollOffset < len(s.entries(cats[s.selectedTab]))-1 {
				s.scrollOffset++
			}
		}
	}
	return s, nil
}

// SelectedCategory returns the category of the active tab.
func (s *VaultScreen) SelectedCategory() progress.Category {
	return progress.AllCategories()[s.selectedTab]
}

func (s *VaultScreen) entries(cat progress.Category) []entry {
	p := s.tracker.Progress()
	unlocked := make(map[string]*progress.Achievement, len(p.Achievements))
	for i := range p.Achievements {
		unlocked[p.Achievements[i].ID] = &p.Achievements[i]
	}

	var out []entry
	for _, def := range progress.Catalog() {
		if def.Category != cat {
			continue
		}
		out = append(out, entry{def: def, unlocked: unlocked[def.ID]})
	}
	return out
}

func (s *VaultScreen) View(width, height int) string {
	p := s.tracker.Progress()
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().
		Width(width).Align(lipgloss.Center).Foreground(theme.Text).
		Render(fmt.Sprintf("\nUnlocked: %d of %d\n", len(p.Achievements), len(progress.Catalog()))))
	b.WriteString("\n")

	cats := progress.AllCategories()
	var tabs []string
	for i, c := range cats {
		label := fmt.Sprintf("%s (%d)", c.DisplayName(), s.countUnlocked(p, c))
		if i == s.selectedTab {
			tabs = append(tabs, lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(label))
		} else {
			tabs = append(tabs, lipgloss.NewStyle().Foreground(theme.TextDim).Render(label))
		}
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(tabs, "     ")))
	b.WriteString("\n\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", max(min(width-8, 60), 1)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	list := s.entries(cats[s.selectedTab])
	if len(list) == 0 {
		b.WriteString(lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("No achievements in this category yet"))
		return b.String()
	}

	maxVisible := (height - 10) / 2
	if maxVisible < 2 {
		maxVisible = 2
	}
	start := s.scrollOffset
	end := min(start+maxVisible, len(list))

	for _, e := range list[start:end] {
		var title, detail string
		style := lipgloss.NewStyle().Foreground(theme.TextDim)
		if e.unlocked != nil {
			title = fmt.Sprintf("%s  %-20s", components.Glyph(string(e.def.Icon)), e.def.Title)
			detail = fmt.Sprintf("   %s  (%s)", e.def.Description, e.unlocked.UnlockedAt.Format("Jan 02, 2006"))
			style = style.Foreground(theme.Highlight).Bold(true)
		} else {
			title = fmt.Sprintf("🔒  %-20s", e.def.Title)
			detail = "   " + e.def.Description
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(title)))
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TextDim).Render(detail)))
		b.WriteString("\n")
	}

	if end < len(list) {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render(fmt.Sprintf("... %d more", len(list)-end)))
	}

	return b.String()
}

func (s *VaultScreen) countUnlocked(p *progress.UserProgress, c progress.Category) int {
	n := 0
	for _, a := range p.Achievements {
		if a.Category == c {
			n++
		}
	}
	return n
}
