package progress

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/abhisek/cyberguard/internal/clock"
	"github.com/abhisek/cyberguard/internal/simulation"
)

// ErrInvalidResult is returned by Ingest for a result that violates the
// input contract (no questions, score out of range, missing ID).
var ErrInvalidResult = errors.New("invalid simulation result")

// Options configures an Engine.
type Options struct {
	// Clock supplies "now"; defaults to the system clock.
	Clock clock.Clock

	// Location is the calendar used for streak days; defaults to time.Local.
	Location *time.Location
}

// Outcome is returned by Ingest.
type Outcome struct {
	Progress        *UserProgress
	NewAchievements []Achievement
}

// Engine owns the progress aggregate of one identity. All statistics are
// derived from the retained results rather than incremental counters, except
// TimeSpent which accumulates across every ingest.
type Engine struct {
	progress *UserProgress
	clock    clock.Clock
	loc      *time.Location
}

// NewEngine binds an engine to p. A nil p starts from defaults.
func NewEngine(p *UserProgress, opts Options) *Engine {
	if p == nil {
		p = New()
	}
	if opts.Clock == nil {
		opts.Clock = clock.System{}
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	return &Engine{progress: p, clock: opts.Clock, loc: opts.Location}
}

// Progress returns a copy of the current aggregate.
func (e *Engine) Progress() *UserProgress {
	return e.progress.Clone()
}

// Ingest folds a completed result into the aggregate and evaluates
// achievements. The caller persists the returned progress.
func (e *Engine) Ingest(result simulation.Result) (Outcome, error) {
	if err := validateResult(result); err != nil {
		return Outcome{}, err
	}
	now := e.clock.Now()
	p := e.progress

	kept := make([]simulation.Result, 0, len(p.SimulationResults)+1)
	for _, r := range p.SimulationResults {
		if r.SimulationID != result.SimulationID {
			kept = append(kept, r)
		}
	}
	kept = append(kept, result)
	p.SimulationResults = kept

	p.TotalSimulationsCompleted = len(kept)
	p.AverageScore = averageScore(kept)
	p.TimeSpent += result.TimeSpent

	p.CurrentStreak = nextStreak(p.CurrentStreak, p.LastActiveDate, now, e.loc)
	if p.CurrentStreak > p.LongestStreak {
		p.LongestStreak = p.CurrentStreak
	}

	p.SkillLevel = Classify(p.TotalSimulationsCompleted, p.AverageScore)
	p.LastActiveDate = now

	unlocked := evaluate(p, now)
	return Outcome{Progress: p.Clone(), NewAchievements: unlocked}, nil
}

// CheckForNewAchievements evaluates the catalog against the current state.
// Calling it again without an intervening change returns nothing.
func (e *Engine) CheckForNewAchievements() []Achievement {
	return evaluate(e.progress, e.clock.Now())
}

// MarkSectionCompleted adds sectionID to the completed set.
func (e *Engine) MarkSectionCompleted(sectionID string) *UserProgress {
	p := e.progress
	if !p.SectionCompleted(sectionID) {
		p.CompletedSections = append(p.CompletedSections, sectionID)
	}
	p.LastActiveDate = e.clock.Now()
	return p.Clone()
}

// SkillLevel recomputes the tier from the stored aggregates.
func (e *Engine) SkillLevel() SkillLevel {
	return Classify(e.progress.TotalSimulationsCompleted, e.progress.AverageScore)
}

// Recommendations returns up to three prioritized tips.
func (e *Engine) Recommendations() []string {
	return recommendations(e.progress)
}

// PriorAttempts counts the retained results for simulationID. Results are
// kept one per simulation, so this is 0 or 1; the full attempt count lives in
// the history log.
func (e *Engine) PriorAttempts(simulationID string) int {
	n := 0
	for _, r := range e.progress.SimulationResults {
		if r.SimulationID == simulationID {
			n++
		}
	}
	return n
}

var _ simulation.AttemptCounter = (*Engine)(nil)

func validateResult(r simulation.Result) error {
	switch {
	case r.SimulationID == "":
		return fmt.Errorf("%w: empty simulation id", ErrInvalidResult)
	case r.TotalQuestions <= 0:
		return fmt.Errorf("%w: %s has %d questions", ErrInvalidResult, r.SimulationID, r.TotalQuestions)
	case r.Score < 0 || r.Score > r.TotalQuestions:
		return fmt.Errorf("%w: %s score %d not in [0, %d]", ErrInvalidResult, r.SimulationID, r.Score, r.TotalQuestions)
	case r.TimeSpent < 0:
		return fmt.Errorf("%w: %s negative time spent", ErrInvalidResult, r.SimulationID)
	}
	return nil
}

// averageScore is the rounded mean percentage over results.
func averageScore(results []simulation.Result) int {
	if len(results) == 0 {
		return 0
	}
	var sum float64
	for _, r := range results {
		sum += float64(r.Score) / float64(r.TotalQuestions)
	}
	return int(math.Round(sum / float64(len(results)) * 100))
}
