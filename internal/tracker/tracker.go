// Package tracker binds the progress engine to the signed-in identity and
// persists every change.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/abhisek/cyberguard/internal/clock"
	"github.com/abhisek/cyberguard/internal/identity"
	"github.com/abhisek/cyberguard/internal/logger"
	"github.com/abhisek/cyberguard/internal/progress"
	"github.com/abhisek/cyberguard/internal/simulation"
	"github.com/abhisek/cyberguard/internal/store"
)

// ErrNotSignedIn is returned by mutating operations without an identity.
var ErrNotSignedIn = errors.New("not signed in")

// Options configures a Tracker.
type Options struct {
	Clock    clock.Clock
	Location *time.Location
	Logger   *logger.Logger
}

// Tracker holds the current identity's progress.
type Tracker struct {
	kv       store.KVRepo
	attempts store.AttemptRepo
	opts     Options
	log      *logger.Logger

	mu     sync.Mutex
	user   *identity.User
	engine *progress.Engine
}

// New creates a signed-out tracker.
func New(kv store.KVRepo, attempts store.AttemptRepo, opts Options) *Tracker {
	if opts.Clock == nil {
		opts.Clock = clock.System{}
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	t := &Tracker{kv: kv, attempts: attempts, opts: opts, log: opts.Logger}
	t.engine = t.newEngine(nil)
	return t
}

func (t *Tracker) newEngine(p *progress.UserProgress) *progress.Engine {
	return progress.NewEngine(p, progress.Options{Clock: t.opts.Clock, Location: t.opts.Location})
}

// SignIn loads the stored progress for user. A missing or unreadable blob
// yields fresh defaults.
func (t *Tracker) SignIn(ctx context.Context, user *identity.User) error {
	if user == nil {
		return fmt.Errorf("sign in: %w", ErrNotSignedIn)
	}
	p, err := t.load(ctx, user.UID)
	if err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.user = user
	t.engine = t.newEngine(p)
	t.log.Info("progress loaded", "uid", user.UID, "completed", p.TotalSimulationsCompleted)
	return nil
}

func (t *Tracker) load(ctx context.Context, uid string) (*progress.UserProgress, error) {
	raw, err := t.kv.Get(ctx, progress.Key(uid))
	if errors.Is(err, store.ErrNotFound) {
		return progress.New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load progress: %w", err)
	}
	p, err := progress.Decode(raw)
	if err != nil {
		t.log.Warn("stored progress unreadable, starting fresh", "uid", uid, "error", err)
		return progress.New(), nil
	}
	return p, nil
}

// SignOut drops the in-memory progress. Stored progress is kept.
func (t *Tracker) SignOut() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.user != nil {
		t.log.Info("progress unloaded", "uid", t.user.UID)
	}
	t.user = nil
	t.engine = t.newEngine(nil)
}

// User returns the signed-in identity, or nil.
func (t *Tracker) User() *identity.User {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.user
}

// Progress returns a copy of the current aggregate; defaults when signed out.
func (t *Tracker) Progress() *progress.UserProgress {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.engine.Progress()
}

// Ingest records a completed run, persists the aggregate and appends the
// result to the attempt history.
func (t *Tracker) Ingest(ctx context.Context, runID string, r simulation.Result) (progress.Outcome, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.user == nil {
		return progress.Outcome{}, ErrNotSignedIn
	}

	before := t.engine.Progress()
	out, err := t.engine.Ingest(r)
	if err != nil {
		return progress.Outcome{}, err
	}
	if err := t.commit(ctx, out.Progress, before); err != nil {
		return progress.Outcome{}, err
	}

	_, err = t.attempts.Append(ctx, store.Attempt{
		UID:            t.user.UID,
		RunID:          runID,
		SimulationID:   r.SimulationID,
		Score:          r.Score,
		TotalQuestions: r.TotalQuestions,
		TimeSpent:      r.TimeSpent,
		Attempts:       r.Attempts,
		CompletedAt:    r.CompletedAt,
	})
	if err != nil {
		t.log.Error("append attempt failed", "uid", t.user.UID, "error", err)
		return out, fmt.Errorf("record attempt: %w", err)
	}

	t.log.Info("simulation completed",
		"uid", t.user.UID,
		"simulation", r.SimulationID,
		"score", r.Score,
		"total", r.TotalQuestions,
		"unlocked", len(out.NewAchievements),
	)
	return out, nil
}

// MarkSectionCompleted records a learning section and persists.
func (t *Tracker) MarkSectionCompleted(ctx context.Context, sectionID string) (*progress.UserProgress, error) {
	if sectionID == "" {
		return nil, fmt.Errorf("mark section: empty section id")
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.user == nil {
		return nil, ErrNotSignedIn
	}
	before := t.engine.Progress()
	p := t.engine.MarkSectionCompleted(sectionID)
	if err := t.commit(ctx, p, before); err != nil {
		return nil, err
	}
	return p, nil
}

// CheckForNewAchievements re-evaluates the catalog and persists any unlocks.
func (t *Tracker) CheckForNewAchievements(ctx context.Context) ([]progress.Achievement, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.user == nil {
		return nil, ErrNotSignedIn
	}
	before := t.engine.Progress()
	unlocked := t.engine.CheckForNewAchievements()
	if len(unlocked) == 0 {
		return nil, nil
	}
	if err := t.commit(ctx, t.engine.Progress(), before); err != nil {
		return nil, err
	}
	return unlocked, nil
}

// Recommendations returns up to three tips for the current progress.
func (t *Tracker) Recommendations() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.engine.Recommendations()
}

// PriorAttempts implements simulation.AttemptCounter.
func (t *Tracker) PriorAttempts(simulationID string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.engine.PriorAttempts(simulationID)
}

var _ simulation.AttemptCounter = (*Tracker)(nil)

// History returns the signed-in identity's attempts, newest first.
func (t *Tracker) History(ctx context.Context, opts store.QueryOpts) ([]store.Attempt, error) {
	t.mu.Lock()
	user := t.user
	t.mu.Unlock()
	if user == nil {
		return nil, ErrNotSignedIn
	}
	return t.attempts.Recent(ctx, user.UID, opts)
}

// Reset deletes all stored progress and history for the signed-in identity.
func (t *Tracker) Reset(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.user == nil {
		return ErrNotSignedIn
	}
	if err := t.kv.Delete(ctx, progress.Key(t.user.UID)); err != nil {
		return fmt.Errorf("reset progress: %w", err)
	}
	if err := t.attempts.DeleteAll(ctx, t.user.UID); err != nil {
		return fmt.Errorf("reset progress: %w", err)
	}
	t.engine = t.newEngine(nil)
	t.log.Info("progress reset", "uid", t.user.UID)
	return nil
}

// commit persists p; on failure the engine is rolled back to before so memory
// never runs ahead of storage. Must be called with t.mu held.
func (t *Tracker) commit(ctx context.Context, p, before *progress.UserProgress) error {
	if err := t.persist(ctx, p); err != nil {
		t.engine = t.newEngine(before)
		return err
	}
	return nil
}

// persist must be called with t.mu held.
func (t *Tracker) persist(ctx context.Context, p *progress.UserProgress) error {
	blob, err := progress.Encode(p)
	if err != nil {
		return err
	}
	if err := t.kv.Set(ctx, progress.Key(t.user.UID), blob); err != nil {
		t.log.Error("persist progress failed", "uid", t.user.UID, "error", err)
		return fmt.Errorf("save progress: %w", err)
	}
	return nil
}
