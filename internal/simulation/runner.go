package simulation

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/cyberguard/internal/clock"
)

var (
	// ErrInvalidState is returned for a transition the current phase does not allow.
	ErrInvalidState = errors.New("invalid runner state")

	// ErrInvalidArgument is returned for an out-of-range choice or a bad definition.
	ErrInvalidArgument = errors.New("invalid argument")
)

// Runner drives exactly one simulation run at a time, from Start to a
// terminal Result. Step progress is never persisted; Exit loses it.
type Runner struct {
	clock    clock.Clock
	attempts AttemptCounter

	def       *Definition
	runID     string
	phase     Phase
	stepIndex int
	choices   []Choice
	startedAt time.Time
	result    *Result
}

// NewRunner creates an idle runner. attempts may be nil, in which case every
// result reports Attempts = 1.
func NewRunner(clk clock.Clock, attempts AttemptCounter) *Runner {
	if clk == nil {
		clk = clock.System{}
	}
	return &Runner{clock: clk, attempts: attempts, phase: PhaseIdle}
}

// Start begins a run of def at step 0. Valid only from Idle or Complete.
func (r *Runner) Start(def *Definition) error {
	if r.phase != PhaseIdle && r.phase != PhaseComplete {
		return fmt.Errorf("start %q: %w: run already in progress (%s)", defID(def), ErrInvalidState, r.phase)
	}
	if err := ValidateDefinition(def); err != nil {
		return fmt.Errorf("start %q: %w", defID(def), err)
	}
	r.begin(def)
	return nil
}

func (r *Runner) begin(def *Definition) {
	r.def = def
	r.runID = uuid.New().String()
	r.phase = PhaseAwaitingAnswer
	r.stepIndex = 0
	r.choices = make([]Choice, 0, len(def.Steps))
	r.startedAt = r.clock.Now()
	r.result = nil
}

// SubmitChoice locks in the answer for the current step. When the step is the
// last one the run completes and the Result is returned; otherwise the
// returned Result is nil.
func (r *Runner) SubmitChoice(index int) (*Result, error) {
	if r.phase != PhaseAwaitingAnswer {
		return nil, fmt.Errorf("submit choice: %w: %s", ErrInvalidState, r.phase)
	}
	step := r.def.Steps[r.stepIndex]
	if index < 0 || index >= len(step.Options) {
		return nil, fmt.Errorf("submit choice: %w: index %d not in [0, %d)", ErrInvalidArgument, index, len(step.Options))
	}

	r.choices = append(r.choices, Choice{Index: index, Correct: index == step.CorrectIndex})
	r.phase = PhaseAnswered

	if r.stepIndex == len(r.def.Steps)-1 {
		r.complete()
		return r.Result(), nil
	}
	return nil, nil
}

// Advance moves to the next step. Valid only once the current step is
// answered and it is not the last step.
func (r *Runner) Advance() error {
	if r.phase != PhaseAnswered {
		return fmt.Errorf("advance: %w: %s", ErrInvalidState, r.phase)
	}
	if r.stepIndex >= len(r.def.Steps)-1 {
		return fmt.Errorf("advance: %w: already on last step", ErrInvalidState)
	}
	r.stepIndex++
	r.phase = PhaseAwaitingAnswer
	return nil
}

// Exit discards the run without producing a result.
func (r *Runner) Exit() {
	r.def = nil
	r.runID = ""
	r.phase = PhaseIdle
	r.stepIndex = 0
	r.choices = nil
	r.startedAt = time.Time{}
	r.result = nil
}

// Retry restarts the current definition from step 0 with a fresh start time.
func (r *Runner) Retry() error {
	if r.def == nil {
		return fmt.Errorf("retry: %w: no simulation loaded", ErrInvalidState)
	}
	def := r.def
	r.Exit()
	r.begin(def)
	return nil
}

// complete synthesizes the result with a single reading of the clock.
func (r *Runner) complete() {
	now := r.clock.Now()
	minutes := int(math.Round(now.Sub(r.startedAt).Minutes()))
	if minutes < 0 {
		minutes = 0
	}

	prior := 0
	if r.attempts != nil {
		prior = r.attempts.PriorAttempts(r.def.ID)
	}

	r.result = &Result{
		SimulationID:   r.def.ID,
		Score:          r.Score(),
		TotalQuestions: len(r.def.Steps),
		CompletedAt:    now,
		TimeSpent:      minutes,
		Attempts:       prior + 1,
	}
	r.phase = PhaseComplete
}

// Phase returns the current phase.
func (r *Runner) Phase() Phase { return r.phase }

// Definition returns the active definition, or nil when idle.
func (r *Runner) Definition() *Definition { return r.def }

// RunID identifies the current run; it changes on every Start and Retry.
func (r *Runner) RunID() string { return r.runID }

// StepIndex returns the zero-based index of the current step.
func (r *Runner) StepIndex() int { return r.stepIndex }

// CurrentStep returns the step being shown, or nil when idle.
func (r *Runner) CurrentStep() *Step {
	if r.def == nil {
		return nil
	}
	return &r.def.Steps[r.stepIndex]
}

// Choices returns a copy of the recorded choices.
func (r *Runner) Choices() []Choice {
	out := make([]Choice, len(r.choices))
	copy(out, r.choices)
	return out
}

// LastChoice returns the choice for the current step once answered.
func (r *Runner) LastChoice() (Choice, bool) {
	if r.phase != PhaseAnswered && r.phase != PhaseComplete {
		return Choice{}, false
	}
	return r.choices[len(r.choices)-1], true
}

// Score counts correct choices so far.
func (r *Runner) Score() int {
	n := 0
	for _, c := range r.choices {
		if c.Correct {
			n++
		}
	}
	return n
}

// Elapsed returns the time since the run started, or zero when idle.
func (r *Runner) Elapsed() time.Duration {
	if r.phase == PhaseIdle {
		return 0
	}
	if r.result != nil {
		return r.result.CompletedAt.Sub(r.startedAt)
	}
	return r.clock.Now().Sub(r.startedAt)
}

// Result returns a copy of the completed result, or nil before completion.
func (r *Runner) Result() *Result {
	if r.result == nil {
		return nil
	}
	res := *r.result
	return &res
}

func defID(def *Definition) string {
	if def == nil {
		return ""
	}
	return def.ID
}
