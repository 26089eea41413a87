package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/cyberguard/internal/ui/theme"
)

// MenuItem represents a single item in a navigation menu.
type MenuItem struct {
	Label    string
	Action   func() tea.Cmd
	Disabled bool

	// LabelFunc, when set, overrides Label at render time.
	LabelFunc func() string
}

// Menu is a vertical navigation menu.
type Menu struct {
	Items    []MenuItem
	Selected int

	// ButtonWidth is the width of each bordered button in View.
	ButtonWidth int
}

// NewMenu creates a new menu with the first enabled item selected.
func NewMenu(items []MenuItem) Menu {
	selected := 0
	for i, item := range items {
		if !item.Disabled {
			selected = i
			break
		}
	}
	return Menu{
		Items:       items,
		Selected:    selected,
		ButtonWidth: 22,
	}
}

// Init returns nil (no initial command).
func (m Menu) Init() tea.Cmd {
	return nil
}

// Label returns the current label of item i.
func (m Menu) Label(i int) string {
	item := m.Items[i]
	if item.LabelFunc != nil {
		return item.LabelFunc()
	}
	return item.Label
}

// Update handles keyboard navigation. Disabled items are skipped.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch kmsg.String() {
	case "up", "k":
		for i := m.Selected - 1; i >= 0; i-- {
			if !m.Items[i].Disabled {
				m.Selected = i
				break
			}
		}
	case "down", "j":
		for i := m.Selected + 1; i < len(m.Items); i++ {
			if !m.Items[i].Disabled {
				m.Selected = i
				break
			}
		}
	case "enter":
		if m.Selected >= 0 && m.Selected < len(m.Items) {
			item := m.Items[m.Selected]
			if item.Action != nil && !item.Disabled {
				return m, item.Action()
			}
		}
	}

	return m, nil
}

// View renders the items as fixed-width buttons centered in width.
func (m Menu) View(width int) string {
	buttons := make([]string, 0, len(m.Items))
	for i := range m.Items {
		buttons = append(buttons, MenuButton(m.Label(i), i == m.Selected, m.ButtonWidth))
	}
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Render(strings.Join(buttons, "\n"))
}

// CompactView renders the items as plain lines for terminals where bordered
// buttons would overflow.
func (m Menu) CompactView(width int) string {
	lines := make([]string, 0, len(m.Items))
	for i, item := range m.Items {
		label := m.Label(i)
		switch {
		case item.Disabled:
			lines = append(lines, lipgloss.NewStyle().Foreground(theme.TextDim).Render("   "+label))
		case i == m.Selected:
			lines = append(lines, lipgloss.NewStyle().
				Foreground(theme.BgDark).
				Background(theme.Highlight).
				Bold(true).
				Render(" ▸ "+label+" "))
		default:
			lines = append(lines, lipgloss.NewStyle().Foreground(theme.Text).Render("   "+label))
		}
	}
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}
