package welcome

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/cyberguard/internal/router"
	"github.com/abhisek/cyberguard/internal/screen"
)

type homeStub struct{}

func (s *homeStub) Init() tea.Cmd                          { return nil }
func (s *homeStub) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *homeStub) View(int, int) string                   { return "home" }
func (s *homeStub) Title() string                          { return "Home" }

func newSplash() (*WelcomeScreen, *int) {
	built := 0
	return New(func() screen.Screen {
		built++
		return &homeStub{}
	}), &built
}

// advance delivers n steps and returns the last command.
func advance(w *WelcomeScreen, n int) tea.Cmd {
	var cmd tea.Cmd
	for i := 0; i < n; i++ {
		_, cmd = w.Update(stepMsg{})
	}
	return cmd
}

func TestBootChecksThenBanner(t *testing.T) {
	w, _ := newSplash()
	view := w.View(100, 40)
	if strings.Contains(view, "✓") || strings.Contains(view, Tagline) {
		t.Error("nothing is checked at start")
	}
	if !strings.Contains(view, bootChecks[0]+"...") {
		t.Error("first check should be in progress")
	}

	advance(w, 2)
	view = w.View(100, 40)
	if n := strings.Count(view, "✓"); n != 2 {
		t.Errorf("checked = %d, want 2", n)
	}
	if strings.Contains(view, Tagline) {
		t.Error("tagline before all checks pass")
	}

	advance(w, len(bootChecks)-1)
	view = w.View(100, 40)
	if n := strings.Count(view, "✓"); n != len(bootChecks) {
		t.Errorf("checked = %d, want %d", n, len(bootChecks))
	}
	if !strings.Contains(view, Tagline) {
		t.Error("tagline should follow the last check")
	}
}

func TestAutoHandOver(t *testing.T) {
	w, built := newSplash()
	cmd := advance(w, len(bootChecks)+holdSteps)
	if *built != 0 {
		t.Fatal("handed over during the hold")
	}
	if cmd == nil {
		t.Fatal("should keep stepping during the hold")
	}

	cmd = advance(w, 1)
	if *built != 1 {
		t.Fatalf("built = %d, want 1", *built)
	}
	if _, ok := cmd().(router.ReplaceScreenMsg); !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", cmd())
	}

	if cmd := advance(w, 3); cmd != nil {
		t.Error("steps after hand over are ignored")
	}
}

func TestKeySkips(t *testing.T) {
	w, built := newSplash()
	advance(w, 1)

	_, cmd := w.Update(tea.KeyPressMsg{Code: ' '})
	if cmd == nil {
		t.Fatal("key should hand over")
	}
	if msg, ok := cmd().(router.ReplaceScreenMsg); !ok || msg.Screen == nil {
		t.Fatalf("expected ReplaceScreenMsg with a screen, got %v", cmd())
	}

	_, cmd = w.Update(tea.KeyPressMsg{Code: 'b'})
	if cmd != nil || *built != 1 {
		t.Errorf("second key: cmd=%v built=%d", cmd != nil, *built)
	}
}

func TestBannerFallsBackWhenNarrow(t *testing.T) {
	if got := RenderBanner(30); !strings.Contains(got, BannerCompact) {
		t.Errorf("narrow banner = %q, want compact form", got)
	}
	if got := RenderBanner(100); strings.Contains(got, BannerCompact) {
		t.Error("wide banner should use block art")
	}
}
