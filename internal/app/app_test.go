package app

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/cyberguard/internal/clock"
	"github.com/abhisek/cyberguard/internal/identity"
	"github.com/abhisek/cyberguard/internal/router"
	"github.com/abhisek/cyberguard/internal/screens/home"
	"github.com/abhisek/cyberguard/internal/screens/welcome"
	"github.com/abhisek/cyberguard/internal/simulation"
	"github.com/abhisek/cyberguard/internal/store"
	"github.com/abhisek/cyberguard/internal/tracker"
)

func newDeps(t *testing.T) Deps {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "app.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	clk := clock.NewManual(time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC))
	return Deps{
		Catalog:  simulation.Builtin(),
		Identity: identity.NewLocalProvider(s.Users(), s.KV(), identity.LocalOptions{Clock: clk, BcryptCost: 4}),
		Tracker:  tracker.New(s.KV(), s.Attempts(), tracker.Options{Clock: clk, Location: time.UTC}),
		Clock:    clk,
		Location: time.UTC,
	}
}

func TestStartsOnSplash(t *testing.T) {
	m := newAppModel(newDeps(t), false)
	if _, ok := m.router.Active().(*welcome.WelcomeScreen); !ok {
		t.Fatalf("active = %T, want welcome", m.router.Active())
	}

	m2 := newAppModel(newDeps(t), true)
	if _, ok := m2.router.Active().(*home.HomeScreen); !ok {
		t.Fatalf("active = %T, want home", m2.router.Active())
	}
}

func TestEscPopsOnlyAboveRoot(t *testing.T) {
	m := newAppModel(newDeps(t), true)

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd != nil {
		t.Error("esc on root should be a no-op")
	}

	m.router.Push(home.New(m.deps))
	_, cmd = m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("esc above root should pop")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}

func TestHeaderShowsSignedInUser(t *testing.T) {
	d := newDeps(t)
	ctx := context.Background()
	u, err := d.Identity.Signup(ctx, "grace@example.com", "Secur3Pass", "Grace Hopper")
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if err := d.Tracker.SignIn(ctx, u); err != nil {
		t.Fatalf("sign in: %v", err)
	}

	var model tea.Model = newAppModel(d, true)
	model, _ = model.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	out := model.(AppModel).render()
	for _, want := range []string{"Grace Hopper", "Beginner", "0 days"} {
		if !strings.Contains(out, want) {
			t.Errorf("header missing %q", want)
		}
	}
}
