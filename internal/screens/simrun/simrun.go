package simrun

import (
	"context"
	"errors"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/cyberguard/internal/clock"
	"github.com/abhisek/cyberguard/internal/progress"
	"github.com/abhisek/cyberguard/internal/router"
	"github.com/abhisek/cyberguard/internal/screen"
	"github.com/abhisek/cyberguard/internal/simulation"
	"github.com/abhisek/cyberguard/internal/tracker"
	"github.com/abhisek/cyberguard/internal/ui/components"
	"github.com/abhisek/cyberguard/internal/ui/layout"
)

// RunScreen plays one simulation from the first step to the result panel.
type RunScreen struct {
	def     *simulation.Definition
	runner  *simulation.Runner
	tracker *tracker.Tracker
	choices components.ChoiceList

	saving  bool
	outcome *progress.Outcome
	errMsg  string
}

var _ screen.Screen = (*RunScreen)(nil)
var _ screen.KeyHintProvider = (*RunScreen)(nil)
var _ screen.Closer = (*RunScreen)(nil)

// New creates a RunScreen for def. The tracker supplies prior attempt counts
// and records the result.
func New(def *simulation.Definition, tr *tracker.Tracker, clk clock.Clock) *RunScreen {
	return &RunScreen{
		def:     def,
		runner:  simulation.NewRunner(clk, tr),
		tracker: tr,
	}
}

func (s *RunScreen) Init() tea.Cmd {
	if err := s.runner.Start(s.def); err != nil {
		s.errMsg = err.Error()
		return nil
	}
	s.loadStep()
	return nil
}

func (s *RunScreen) Title() string {
	return s.def.Title
}

// Close discards an unfinished run.
func (s *RunScreen) Close() {
	s.runner.Exit()
}

// Runner exposes the underlying state machine.
func (s *RunScreen) Runner() *simulation.Runner {
	return s.runner
}

func (s *RunScreen) KeyHints() []layout.KeyHint {
	switch s.runner.Phase() {
	case simulation.PhaseAwaitingAnswer:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Choose"},
			{Key: "1-9", Description: "Answer"},
			{Key: "Enter", Description: "Submit"},
			{Key: "Esc", Description: "Exit"},
		}
	case simulation.PhaseAnswered:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Next"},
			{Key: "Esc", Description: "Exit"},
		}
	case simulation.PhaseComplete:
		return []layout.KeyHint{
			{Key: "R", Description: "Retry"},
			{Key: "Enter", Description: "Done"},
		}
	}
	return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
}

func (s *RunScreen) loadStep() {
	step := s.runner.CurrentStep()
	if step == nil {
		return
	}
	s.choices = components.NewChoiceList(step.Question, step.Options)
}

func (s *RunScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case ingestDoneMsg:
		s.saving = false
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.outcome = &msg.Outcome
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *RunScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch s.runner.Phase() {
	case simulation.PhaseAwaitingAnswer:
		var cmd tea.Cmd
		s.choices, cmd = s.choices.Update(msg)
		picked, ok := s.choices.Picked()
		if !ok {
			return s, cmd
		}
		return s.submit(picked)

	case simulation.PhaseAnswered:
		if msg.String() == "enter" || msg.String() == "space" {
			if err := s.runner.Advance(); err != nil {
				s.errMsg = err.Error()
				return s, nil
			}
			s.loadStep()
		}
		return s, nil

	case simulation.PhaseComplete:
		if s.saving {
			return s, nil
		}
		switch msg.String() {
		case "r":
			if err := s.runner.Retry(); err != nil {
				s.errMsg = err.Error()
				return s, nil
			}
			s.outcome = nil
			s.errMsg = ""
			s.loadStep()
			return s, nil
		case "enter":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *RunScreen) submit(index int) (screen.Screen, tea.Cmd) {
	result, err := s.runner.SubmitChoice(index)
	if err != nil {
		s.errMsg = err.Error()
		return s, nil
	}
	s.choices.Reveal(index, s.runner.CurrentStep().CorrectIndex)
	if result == nil {
		return s, nil
	}

	s.saving = true
	runID := s.runner.RunID()
	res := *result
	return s, func() tea.Msg {
		out, err := s.tracker.Ingest(context.Background(), runID, res)
		if errors.Is(err, tracker.ErrNotSignedIn) {
			err = errors.New("sign in to save your progress")
		}
		return ingestDoneMsg{Outcome: out, Err: err}
	}
}
