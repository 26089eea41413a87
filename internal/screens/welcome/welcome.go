package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/cyberguard/internal/router"
	"github.com/abhisek/cyberguard/internal/screen"
	"github.com/abhisek/cyberguard/internal/ui/theme"
)

// Tagline is shown under the banner.
const Tagline = "Train your instincts. Outsmart the threats."

// Boot checks printed one per step before the banner appears.
var bootChecks = []string{
	"Scanning inbox for lures",
	"Auditing password vault",
	"Probing open Wi-Fi",
	"Briefing the help desk",
}

const (
	stepInterval = 250 * time.Millisecond
	holdSteps    = 8 // steps the finished splash stays up before moving on
)

const shieldArt = `   ▄▄▄▄▄▄▄▄▄▄▄
  █           █
  █    ▄▄▄    █
  █   █ ▄ █   █
  █   █▄▄▄█   █
   █         █
    ▀▄     ▄▀
      ▀▀▀▀▀`

var spinner = []string{"◜", "◝", "◞", "◟"}

type stepMsg struct{}

// WelcomeScreen runs a short boot sequence, then replaces itself with the
// home screen. Any key skips ahead.
type WelcomeScreen struct {
	next  func() screen.Screen
	steps int
	done  bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a splash that hands over to the screen built by next.
func New(next func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{next: next}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func step() tea.Cmd {
	return tea.Tick(stepInterval, func(time.Time) tea.Msg { return stepMsg{} })
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return step()
}

// checksShown is the number of boot checks already marked done.
func (w *WelcomeScreen) checksShown() int {
	return min(w.steps, len(bootChecks))
}

func (w *WelcomeScreen) bannerShown() bool {
	return w.steps > len(bootChecks)
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case stepMsg:
		if w.done {
			return w, nil
		}
		w.steps++
		if w.steps > len(bootChecks)+holdSteps {
			return w, w.handOver()
		}
		return w, step()

	case tea.KeyPressMsg:
		return w, w.handOver()
	}
	return w, nil
}

func (w *WelcomeScreen) handOver() tea.Cmd {
	if w.done {
		return nil
	}
	w.done = true
	next := w.next()
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

func (w *WelcomeScreen) View(width, height int) string {
	ok := lipgloss.NewStyle().Foreground(theme.Success)
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	parts := []string{lipgloss.NewStyle().Foreground(theme.Primary).Render(shieldArt), ""}

	var checks []string
	for i, c := range bootChecks {
		switch {
		case i < w.checksShown():
			checks = append(checks, ok.Render("✓ ")+dim.Render(c))
		case i == w.checksShown():
			mark := lipgloss.NewStyle().Foreground(theme.Highlight).Render(spinner[w.steps%len(spinner)])
			checks = append(checks, mark+" "+dim.Render(c+"..."))
		}
	}
	parts = append(parts, lipgloss.NewStyle().Align(lipgloss.Left).Render(strings.Join(checks, "\n")))

	if w.bannerShown() {
		parts = append(parts,
			"",
			RenderBanner(width),
			"",
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(Tagline),
			"",
			dim.Italic(true).Render("press any key to continue"),
		)
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, parts...))
}
