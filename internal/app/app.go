package app

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/cyberguard/internal/logger"
	"github.com/abhisek/cyberguard/internal/router"
	"github.com/abhisek/cyberguard/internal/screen"
	"github.com/abhisek/cyberguard/internal/screens/home"
	"github.com/abhisek/cyberguard/internal/screens/welcome"
	"github.com/abhisek/cyberguard/internal/ui/layout"
)

// Deps holds the services shared by every screen.
type Deps = home.Deps

// AppModel is the root Bubble Tea model.
type AppModel struct {
	deps   Deps
	router *router.Router
	width  int
	height int
}

// newAppModel creates an AppModel that opens on the splash screen, or
// directly on home when skipSplash is set.
func newAppModel(deps Deps, skipSplash bool) AppModel {
	homeFactory := func() screen.Screen { return home.New(deps) }
	var root screen.Screen = welcome.New(homeFactory)
	if skipSplash {
		root = homeFactory()
	}
	return AppModel{
		deps:   deps,
		router: router.New(root),
	}
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	v.SetContent(m.render())
	return v
}

// status describes the session for the header.
func (m AppModel) status(active screen.Screen) layout.Status {
	var st layout.Status
	if active != nil {
		st.Title = active.Title()
	}
	if u := m.deps.Tracker.User(); u != nil {
		p := m.deps.Tracker.Progress()
		st.User = u.Name()
		st.Level = p.SkillLevel.DisplayName()
		st.Streak = p.CurrentStreak
	}
	return st
}

// hints returns the footer key hints for the active screen.
func (m AppModel) hints(active screen.Screen) []layout.KeyHint {
	quit := layout.KeyHint{Key: "Ctrl+C", Description: "Quit"}
	if hp, ok := active.(screen.KeyHintProvider); ok {
		return append(hp.KeyHints(), quit)
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}, quit}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		quit,
	}
}

// render draws the header, active screen and footer for the current size.
func (m AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	header := layout.RenderHeader(m.status(active), m.width)
	footer := layout.RenderFooter(m.hints(active), m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the Bubble Tea program.
func Run(deps Deps, skipSplash bool) error {
	if deps.Logger == nil {
		deps.Logger = logger.Nop()
	}
	deps.Logger.Info("tui starting", "skip_splash", skipSplash)
	if _, err := tea.NewProgram(newAppModel(deps, skipSplash)).Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
