package dashboard

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/abhisek/cyberguard/internal/clock"
	"github.com/abhisek/cyberguard/internal/identity"
	"github.com/abhisek/cyberguard/internal/simulation"
	"github.com/abhisek/cyberguard/internal/store"
	"github.com/abhisek/cyberguard/internal/tracker"
)

func TestDashboardLoadsRecentResults(t *testing.T) {
	s, err := store.Open(filepath.Join(t.TempDir(), "dash.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	clk := clock.NewManual(time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC))
	tr := tracker.New(s.KV(), s.Attempts(), tracker.Options{Clock: clk, Location: time.UTC})
	u := &identity.User{UID: "u1", Email: "ada@example.com", DisplayName: "Ada", Provider: identity.ProviderPassword}
	ctx := context.Background()
	if err := tr.SignIn(ctx, u); err != nil {
		t.Fatalf("sign in: %v", err)
	}

	for i := 0; i < 7; i++ {
		res := simulation.Result{SimulationID: simulation.WiFiSecurity, Score: 5, TotalQuestions: 5, TimeSpent: 10, Attempts: i + 1}
		if _, err := tr.Ingest(ctx, "run", res); err != nil {
			t.Fatal(err)
		}
	}

	d := New(tr, simulation.Builtin())
	d.Update(d.Init()())
	if len(d.recent) != recentResults {
		t.Errorf("recent = %d, want %d", len(d.recent), recentResults)
	}

	view := d.View(120, 80)
	for _, want := range []string{"Welcome back, Ada", "1h 10m", "Recent achievements", "Public Wi-Fi"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
