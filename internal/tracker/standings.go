package tracker

import (
	"context"
	"time"

	"github.com/abhisek/cyberguard/internal/simulation"
	"github.com/abhisek/cyberguard/internal/store"
)

// Standing summarizes every recorded attempt at one simulation. Attempts is
// the number of history rows, not the per-result attempt number.
type Standing struct {
	BestPercent int
	Attempts    int
	LastPlayed  time.Time
}

// Standings folds the attempt history into one Standing per simulation ID.
// The progress aggregate keeps only the latest result per simulation, so the
// best score has to come from history.
func (t *Tracker) Standings(ctx context.Context) (map[string]Standing, error) {
	history, err := t.History(ctx, store.QueryOpts{})
	if err != nil {
		return nil, err
	}

	out := make(map[string]Standing)
	for _, a := range history {
		s, seen := out[a.SimulationID]
		if !seen {
			s.LastPlayed = a.CompletedAt
		}
		s.BestPercent = max(s.BestPercent, simulation.Percent(a.Score, a.TotalQuestions))
		s.Attempts++
		out[a.SimulationID] = s
	}
	return out, nil
}
