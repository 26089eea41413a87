package achievements

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/cyberguard/internal/clock"
	"github.com/abhisek/cyberguard/internal/identity"
	"github.com/abhisek/cyberguard/internal/progress"
	"github.com/abhisek/cyberguard/internal/simulation"
	"github.com/abhisek/cyberguard/internal/store"
	"github.com/abhisek/cyberguard/internal/tracker"
)

func newTracker(t *testing.T) *tracker.Tracker {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "vault.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	clk := clock.NewManual(time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC))
	tr := tracker.New(s.KV(), s.Attempts(), tracker.Options{Clock: clk, Location: time.UTC})
	u := &identity.User{UID: "u1", Email: "ada@example.com", Provider: identity.ProviderPassword}
	if err := tr.SignIn(context.Background(), u); err != nil {
		t.Fatalf("sign in: %v", err)
	}
	return tr
}

func TestTabsCycleCategories(t *testing.T) {
	s := New(newTracker(t))
	cats := progress.AllCategories()

	for i := range cats {
		if s.SelectedCategory() != cats[i] {
			t.Fatalf("tab %d = %s, want %s", i, s.SelectedCategory(), cats[i])
		}
		s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	}
	if s.SelectedCategory() != cats[0] {
		t.Error("tab should wrap to the first category")
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift})
	if s.SelectedCategory() != cats[len(cats)-1] {
		t.Error("shift+tab should wrap to the last category")
	}
}

func TestUnlockedAndLockedEntries(t *testing.T) {
	tr := newTracker(t)
	res := simulation.Result{SimulationID: simulation.PhishingEmail, Score: 4, TotalQuestions: 4, Attempts: 1}
	if _, err := tr.Ingest(context.Background(), "run-1", res); err != nil {
		t.Fatal(err)
	}
	s := New(tr)

	entries := s.entries(progress.CategorySimulation)
	unlocked := map[string]bool{}
	for _, e := range entries {
		unlocked[e.def.ID] = e.unlocked != nil
	}
	if !unlocked[progress.AchFirstSimulation] || !unlocked[progress.AchPerfectScore] {
		t.Errorf("unlocked = %v, want first-simulation and perfect-score", unlocked)
	}
	if unlocked[progress.AchSimulationMaster] {
		t.Error("simulation-master should still be locked")
	}

	view := s.View(120, 60)
	if !strings.Contains(view, "Unlocked: 2 of 9") {
		t.Error("expected unlocked counter")
	}
}
