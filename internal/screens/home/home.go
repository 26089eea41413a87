package home

import (
	"context"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/cyberguard/internal/clock"
	"github.com/abhisek/cyberguard/internal/identity"
	"github.com/abhisek/cyberguard/internal/logger"
	"github.com/abhisek/cyberguard/internal/router"
	"github.com/abhisek/cyberguard/internal/screen"
	"github.com/abhisek/cyberguard/internal/screens/achievements"
	"github.com/abhisek/cyberguard/internal/screens/dashboard"
	"github.com/abhisek/cyberguard/internal/screens/history"
	"github.com/abhisek/cyberguard/internal/screens/sections"
	"github.com/abhisek/cyberguard/internal/screens/signin"
	"github.com/abhisek/cyberguard/internal/screens/simulations"
	"github.com/abhisek/cyberguard/internal/simulation"
	"github.com/abhisek/cyberguard/internal/tracker"
	"github.com/abhisek/cyberguard/internal/ui/components"
	"github.com/abhisek/cyberguard/internal/ui/layout"
)

// Menu item indexes.
const (
	itemSimulations = iota
	itemDashboard
	itemAchievements
	itemLearning
	itemHistory
	itemAccount
	itemExit
)

// Deps holds the services the home screen routes into.
type Deps struct {
	Catalog  *simulation.Catalog
	Identity identity.Provider
	Tracker  *tracker.Tracker
	Clock    clock.Clock
	Location *time.Location
	Logger   *logger.Logger
}

// HomeScreen is the main menu of the application.
type HomeScreen struct {
	deps Deps
	menu components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(deps Deps) *HomeScreen {
	if deps.Clock == nil {
		deps.Clock = clock.System{}
	}
	if deps.Location == nil {
		deps.Location = time.Local
	}
	if deps.Logger == nil {
		deps.Logger = logger.Nop()
	}

	h := &HomeScreen{deps: deps}
	items := []components.MenuItem{
		itemSimulations: {Label: "SIMULATIONS", Action: func() tea.Cmd {
			return h.protected(func() screen.Screen {
				return simulations.New(deps.Catalog, deps.Tracker, deps.Clock)
			})
		}},
		itemDashboard: {Label: "DASHBOARD", Action: func() tea.Cmd {
			return h.protected(func() screen.Screen {
				return dashboard.New(deps.Tracker, deps.Catalog)
			})
		}},
		itemAchievements: {Label: "ACHIEVEMENTS", Action: func() tea.Cmd {
			return h.protected(func() screen.Screen { return achievements.New(deps.Tracker) })
		}},
		itemLearning: {Label: "LEARNING", Action: func() tea.Cmd {
			return h.protected(func() screen.Screen { return sections.New(deps.Tracker) })
		}},
		itemHistory: {Label: "HISTORY", Action: func() tea.Cmd {
			return h.protected(func() screen.Screen { return history.New(deps.Tracker, deps.Catalog) })
		}},
		itemAccount: {Label: "SIGN IN", Action: h.toggleAccount, LabelFunc: h.accountLabel},
		itemExit: {Label: "EXIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}
	h.menu = components.NewMenu(items)
	return h
}

// protected pushes the screen built by next, routing through sign-in first
// when nobody is signed in.
func (h *HomeScreen) protected(next func() screen.Screen) tea.Cmd {
	if h.deps.Tracker.User() != nil {
		s := next()
		return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
	}
	s := signin.New(h.deps.Identity, h.deps.Tracker, next)
	return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
}

func (h *HomeScreen) toggleAccount() tea.Cmd {
	if h.deps.Tracker.User() == nil {
		s := signin.New(h.deps.Identity, h.deps.Tracker, nil)
		return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
	}
	if err := h.deps.Identity.Logout(context.Background()); err != nil {
		h.deps.Logger.Warn("logout failed", "error", err)
	}
	h.deps.Tracker.SignOut()
	return nil
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) accountLabel() string {
	if h.deps.Tracker.User() != nil {
		return "SIGN OUT"
	}
	return "SIGN IN"
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; add back header, footer and frame gaps
	termHeight := height + layout.HeaderHeight + layout.FooterHeight + 2
	compact := layout.IsCompactHeight(termHeight) || layout.IsCompactWidth(width)

	cw := components.ContentWidth(width)
	p := h.deps.Tracker.Progress()

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	if !compact {
		sections = append(sections, renderMascotBox(h.mascot(), cw))
	}
	sections = append(sections, renderStatusPanel(p, cw, compact))

	if compact {
		sections = append(sections, h.menu.CompactView(cw))
	} else {
		sections = append(sections, h.menu.View(cw))
	}
	if h.deps.Tracker.User() == nil {
		sections = append(sections, renderSignInNote(cw))
	}

	return components.ConsoleFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}

// mascot picks the shield variant: celebrating on a 3+ day streak, alert when
// an active streak will lapse without activity today.
func (h *HomeScreen) mascot() MascotVariant {
	if h.deps.Tracker.User() == nil {
		return MascotIdle
	}
	p := h.deps.Tracker.Progress()
	now := h.deps.Clock.Now().In(h.deps.Location)
	last := p.LastActiveDate.In(h.deps.Location)
	activeToday := !p.LastActiveDate.IsZero() &&
		last.Year() == now.Year() && last.YearDay() == now.YearDay()

	switch {
	case p.CurrentStreak > 0 && !activeToday:
		return MascotAlert
	case p.CurrentStreak >= 3:
		return MascotCelebrating
	}
	return MascotIdle
}
