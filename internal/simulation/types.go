package simulation

import "time"

// Difficulty is the advertised difficulty of a simulation.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "Beginner"
	DifficultyIntermediate Difficulty = "Intermediate"
	DifficultyAdvanced     Difficulty = "Advanced"
)

// Definition is a static, ordered sequence of question steps teaching one
// security topic. Definitions are never mutated at runtime.
type Definition struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Difficulty  Difficulty `json:"difficulty"`
	Duration    string     `json:"duration"`
	Icon        string     `json:"icon"`
	Steps       []Step     `json:"steps"`
}

// Step is one question within a simulation with exactly one correct option.
type Step struct {
	Title        string   `json:"title"`
	Content      string   `json:"content,omitempty"`
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correctIndex"`
	Explanation  string   `json:"explanation"`
}

// Choice records the option picked for a step and whether it was correct.
type Choice struct {
	Index   int
	Correct bool
}

// Result is produced exactly once when a run completes.
type Result struct {
	SimulationID   string    `json:"simulationId"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"totalQuestions"`
	CompletedAt    time.Time `json:"completedAt"`
	TimeSpent      int       `json:"timeSpent"` // whole minutes
	Attempts       int       `json:"attempts"`
}

// Percent returns the score as a rounded percentage (0-100).
func (r Result) Percent() int {
	return Percent(r.Score, r.TotalQuestions)
}

// Percent rounds score/total to a whole percentage; 0 when total is not
// positive.
func Percent(score, total int) int {
	if total <= 0 {
		return 0
	}
	return (score*100 + total/2) / total
}

// Perfect reports whether every question was answered correctly.
func (r Result) Perfect() bool {
	return r.TotalQuestions > 0 && r.Score == r.TotalQuestions
}

// Phase is the runner's position in the session lifecycle.
type Phase int

const (
	PhaseIdle           Phase = iota // No active run
	PhaseAwaitingAnswer              // Current step has no choice yet
	PhaseAnswered                    // Current step's choice is locked in
	PhaseComplete                    // Last step answered, result emitted
)

// String returns a lowercase phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseAwaitingAnswer:
		return "awaiting-answer"
	case PhaseAnswered:
		return "answered"
	case PhaseComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// AttemptCounter reports how many attempts of a simulation the learner has
// already completed.
type AttemptCounter interface {
	PriorAttempts(simulationID string) int
}
