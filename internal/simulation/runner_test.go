package simulation

import (
	"errors"
	"testing"
	"time"

	"github.com/abhisek/cyberguard/internal/clock"
)

type fixedAttempts map[string]int

func (f fixedAttempts) PriorAttempts(id string) int { return f[id] }

func testDefinition() *Definition {
	return &Definition{
		ID:    "test-sim",
		Title: "Test Simulation",
		Steps: []Step{
			{Title: "One", Question: "Q1", Options: []string{"a", "b"}, CorrectIndex: 0},
			{Title: "Two", Question: "Q2", Options: []string{"a", "b", "c"}, CorrectIndex: 2},
			{Title: "Three", Question: "Q3", Options: []string{"a", "b", "c", "d"}, CorrectIndex: 1},
		},
	}
}

var t0 = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func newTestRunner(prior fixedAttempts) (*Runner, *clock.Manual) {
	clk := clock.NewManual(t0)
	return NewRunner(clk, prior), clk
}

func TestRunner_FullRun(t *testing.T) {
	r, clk := newTestRunner(nil)
	if err := r.Start(testDefinition()); err != nil {
		t.Fatalf("start: %v", err)
	}
	if r.Phase() != PhaseAwaitingAnswer {
		t.Fatalf("phase = %s, want awaiting-answer", r.Phase())
	}

	answers := []int{0, 1, 1} // correct, wrong, correct
	var res *Result
	for i, a := range answers {
		clk.Advance(2 * time.Minute)
		got, err := r.SubmitChoice(a)
		if err != nil {
			t.Fatalf("step %d submit: %v", i, err)
		}
		if i < len(answers)-1 {
			if got != nil {
				t.Fatalf("step %d: result emitted before last step", i)
			}
			if err := r.Advance(); err != nil {
				t.Fatalf("step %d advance: %v", i, err)
			}
			continue
		}
		res = got
	}

	if res == nil {
		t.Fatal("expected result after last step")
	}
	if r.Phase() != PhaseComplete {
		t.Errorf("phase = %s, want complete", r.Phase())
	}
	if res.Score != 2 || res.TotalQuestions != 3 {
		t.Errorf("score = %d/%d, want 2/3", res.Score, res.TotalQuestions)
	}
	if res.TimeSpent != 6 {
		t.Errorf("TimeSpent = %d, want 6", res.TimeSpent)
	}
	if res.Attempts != 1 {
		t.Errorf("Attempts = %d, want 1", res.Attempts)
	}
	if !res.CompletedAt.Equal(t0.Add(6 * time.Minute)) {
		t.Errorf("CompletedAt = %v", res.CompletedAt)
	}
	if res.SimulationID != "test-sim" {
		t.Errorf("SimulationID = %q", res.SimulationID)
	}
}

func TestRunner_ScoreMatchesChoices(t *testing.T) {
	def := testDefinition()
	patterns := [][]int{{0, 2, 1}, {1, 0, 0}, {0, 0, 0}, {1, 2, 1}}
	for _, p := range patterns {
		r, _ := newTestRunner(nil)
		if err := r.Start(def); err != nil {
			t.Fatal(err)
		}
		var res *Result
		for i, a := range p {
			res, _ = r.SubmitChoice(a)
			if i < len(p)-1 {
				_ = r.Advance()
			}
		}
		want := 0
		for _, c := range r.Choices() {
			if c.Correct {
				want++
			}
		}
		if res.Score != want {
			t.Errorf("pattern %v: score = %d, want %d", p, res.Score, want)
		}
		if res.Score > res.TotalQuestions || res.TotalQuestions != len(def.Steps) {
			t.Errorf("pattern %v: score %d of %d", p, res.Score, res.TotalQuestions)
		}
	}
}

func TestRunner_InvalidTransitions(t *testing.T) {
	r, _ := newTestRunner(nil)

	if _, err := r.SubmitChoice(0); !errors.Is(err, ErrInvalidState) {
		t.Errorf("submit while idle: err = %v, want ErrInvalidState", err)
	}
	if err := r.Advance(); !errors.Is(err, ErrInvalidState) {
		t.Errorf("advance while idle: err = %v, want ErrInvalidState", err)
	}
	if err := r.Retry(); !errors.Is(err, ErrInvalidState) {
		t.Errorf("retry while idle: err = %v, want ErrInvalidState", err)
	}

	if err := r.Start(testDefinition()); err != nil {
		t.Fatal(err)
	}
	if err := r.Start(testDefinition()); !errors.Is(err, ErrInvalidState) {
		t.Errorf("start over active run: err = %v, want ErrInvalidState", err)
	}
	if err := r.Advance(); !errors.Is(err, ErrInvalidState) {
		t.Errorf("advance before answering: err = %v, want ErrInvalidState", err)
	}
	if _, err := r.SubmitChoice(5); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("out of range: err = %v, want ErrInvalidArgument", err)
	}
	if _, err := r.SubmitChoice(-1); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("negative: err = %v, want ErrInvalidArgument", err)
	}
	if len(r.Choices()) != 0 {
		t.Fatalf("rejected submits recorded choices: %v", r.Choices())
	}

	if _, err := r.SubmitChoice(1); err != nil {
		t.Fatal(err)
	}
	if _, err := r.SubmitChoice(0); !errors.Is(err, ErrInvalidState) {
		t.Errorf("second submit: err = %v, want ErrInvalidState", err)
	}
	choices := r.Choices()
	if len(choices) != 1 || choices[0].Index != 1 || choices[0].Correct {
		t.Errorf("choices = %+v, want single wrong choice at index 1", choices)
	}
}

func TestRunner_AdvancePastLastStep(t *testing.T) {
	r, _ := newTestRunner(nil)
	def := &Definition{ID: "one", Steps: []Step{{Options: []string{"x", "y"}, CorrectIndex: 1}}}
	if err := r.Start(def); err != nil {
		t.Fatal(err)
	}
	res, err := r.SubmitChoice(1)
	if err != nil || res == nil {
		t.Fatalf("submit: res=%v err=%v", res, err)
	}
	if err := r.Advance(); !errors.Is(err, ErrInvalidState) {
		t.Errorf("advance after complete: err = %v, want ErrInvalidState", err)
	}
	if !res.Perfect() || res.Percent() != 100 {
		t.Errorf("expected perfect result, got %+v", res)
	}
}

func TestRunner_ExitDiscards(t *testing.T) {
	r, _ := newTestRunner(nil)
	if err := r.Start(testDefinition()); err != nil {
		t.Fatal(err)
	}
	if _, err := r.SubmitChoice(0); err != nil {
		t.Fatal(err)
	}
	r.Exit()
	if r.Phase() != PhaseIdle {
		t.Errorf("phase = %s, want idle", r.Phase())
	}
	if r.Result() != nil || len(r.Choices()) != 0 || r.CurrentStep() != nil {
		t.Error("exit should discard run state")
	}
	if r.Elapsed() != 0 {
		t.Errorf("Elapsed = %v, want 0", r.Elapsed())
	}
}

func TestRunner_RetryStartsFresh(t *testing.T) {
	r, clk := newTestRunner(fixedAttempts{"test-sim": 2})
	if err := r.Start(testDefinition()); err != nil {
		t.Fatal(err)
	}
	firstRun := r.RunID()
	_, _ = r.SubmitChoice(0)
	_ = r.Advance()

	clk.Advance(90 * time.Second)
	if err := r.Retry(); err != nil {
		t.Fatalf("retry: %v", err)
	}
	if r.RunID() == firstRun {
		t.Error("retry should allocate a new run id")
	}
	if r.StepIndex() != 0 || len(r.Choices()) != 0 || r.Phase() != PhaseAwaitingAnswer {
		t.Errorf("retry state: step=%d choices=%d phase=%s", r.StepIndex(), len(r.Choices()), r.Phase())
	}

	clk.Advance(29 * time.Second)
	var res *Result
	for i := 0; i < 3; i++ {
		res, _ = r.SubmitChoice(0)
		if i < 2 {
			_ = r.Advance()
		}
	}
	if res.TimeSpent != 0 {
		t.Errorf("TimeSpent = %d, want 0 (29s rounds down)", res.TimeSpent)
	}
	if res.Attempts != 3 {
		t.Errorf("Attempts = %d, want 3", res.Attempts)
	}

	// Start is allowed again from Complete.
	if err := r.Start(testDefinition()); err != nil {
		t.Errorf("start from complete: %v", err)
	}
}

func TestRunner_ClockBackwardsClampsTime(t *testing.T) {
	r, clk := newTestRunner(nil)
	def := &Definition{ID: "one", Steps: []Step{{Options: []string{"x", "y"}}}}
	if err := r.Start(def); err != nil {
		t.Fatal(err)
	}
	clk.Set(t0.Add(-10 * time.Minute))
	res, err := r.SubmitChoice(0)
	if err != nil {
		t.Fatal(err)
	}
	if res.TimeSpent != 0 {
		t.Errorf("TimeSpent = %d, want 0", res.TimeSpent)
	}
}

func TestRunner_StartRejectsBadDefinition(t *testing.T) {
	tests := []struct {
		name string
		def  *Definition
	}{
		{"nil", nil},
		{"no steps", &Definition{ID: "x"}},
		{"one option", &Definition{ID: "x", Steps: []Step{{Options: []string{"a"}}}}},
		{"bad index", &Definition{ID: "x", Steps: []Step{{Options: []string{"a", "b"}, CorrectIndex: 2}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := newTestRunner(nil)
			if err := r.Start(tt.def); !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("err = %v, want ErrInvalidArgument", err)
			}
			if r.Phase() != PhaseIdle {
				t.Errorf("phase = %s, want idle", r.Phase())
			}
		})
	}
}

func TestPhaseString(t *testing.T) {
	tests := []struct {
		p    Phase
		want string
	}{
		{PhaseIdle, "idle"},
		{PhaseAwaitingAnswer, "awaiting-answer"},
		{PhaseAnswered, "answered"},
		{PhaseComplete, "complete"},
		{Phase(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.p.String(); got != tt.want {
			t.Errorf("Phase(%d).String() = %q, want %q", tt.p, got, tt.want)
		}
	}
}
