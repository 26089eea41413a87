package simrun

import "github.com/abhisek/cyberguard/internal/progress"

// ingestDoneMsg is sent when a completed result has been recorded.
type ingestDoneMsg struct {
	Outcome progress.Outcome
	Err     error
}
