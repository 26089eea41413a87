package history

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/cyberguard/internal/clock"
	"github.com/abhisek/cyberguard/internal/identity"
	"github.com/abhisek/cyberguard/internal/simulation"
	"github.com/abhisek/cyberguard/internal/store"
	"github.com/abhisek/cyberguard/internal/tracker"
)

func TestHistoryListsAttemptsNewestFirst(t *testing.T) {
	s, err := store.Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	clk := clock.NewManual(time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC))
	tr := tracker.New(s.KV(), s.Attempts(), tracker.Options{Clock: clk, Location: time.UTC})
	ctx := context.Background()
	if err := tr.SignIn(ctx, &identity.User{UID: "u1", Email: "ada@example.com"}); err != nil {
		t.Fatal(err)
	}
	for i, id := range []string{simulation.PhishingEmail, simulation.WiFiSecurity} {
		res := simulation.Result{SimulationID: id, Score: 2, TotalQuestions: 4, Attempts: 1, TimeSpent: 3, CompletedAt: clk.Now()}
		if _, err := tr.Ingest(ctx, "run", res); err != nil {
			t.Fatal(err)
		}
		clk.Advance(time.Duration(i+1) * time.Hour)
	}

	h := New(tr, simulation.Builtin())
	h.Update(h.Init()())
	if len(h.attempts) != 2 {
		t.Fatalf("attempts = %d, want 2", len(h.attempts))
	}
	if h.attempts[0].SimulationID != simulation.WiFiSecurity {
		t.Errorf("first = %s, want newest (wifi-security)", h.attempts[0].SimulationID)
	}

	h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	view := h.View(120, 40)
	if !strings.Contains(view, "attempt #1") {
		t.Error("detail panel should show the selected attempt")
	}
	if !strings.Contains(view, "Phishing Email Detection") {
		t.Error("expected catalog titles")
	}

	// Tab narrows to the first catalog simulation.
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	if cmd == nil {
		t.Fatal("changing the filter should reload")
	}
	h.Update(cmd())
	if h.Filter() != simulation.Builtin().All()[0].ID {
		t.Errorf("filter = %q", h.Filter())
	}
	for _, a := range h.attempts {
		if a.SimulationID != h.Filter() {
			t.Errorf("filtered list contains %s", a.SimulationID)
		}
	}

	// Shift+Tab goes back to every simulation.
	_, cmd = h.Update(tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift})
	h.Update(cmd())
	if h.Filter() != "" || len(h.attempts) != 2 {
		t.Errorf("filter = %q, attempts = %d", h.Filter(), len(h.attempts))
	}
}

func TestHistorySignedOut(t *testing.T) {
	s, err := store.Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	tr := tracker.New(s.KV(), s.Attempts(), tracker.Options{})

	h := New(tr, simulation.Builtin())
	h.Update(h.Init()())
	if h.errMsg == "" {
		t.Error("expected not-signed-in error")
	}
}
