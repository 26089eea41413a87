package progress

import (
	"encoding/json"
	"fmt"

	"github.com/abhisek/cyberguard/internal/simulation"
)

// KeyPrefix prefixes the storage key of every identity's progress blob.
const KeyPrefix = "progress_"

// Key returns the storage key for uid.
func Key(uid string) string {
	return KeyPrefix + uid
}

// Encode serializes p. Timestamps are written as RFC 3339 strings.
func Encode(p *UserProgress) (string, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("encode progress: %w", err)
	}
	return string(b), nil
}

// Decode parses a stored blob back into progress, with every timestamp
// decoded into time.Time. Missing collections are normalized to empty.
func Decode(s string) (*UserProgress, error) {
	p := &UserProgress{}
	if err := json.Unmarshal([]byte(s), p); err != nil {
		return nil, fmt.Errorf("decode progress: %w", err)
	}
	if p.CompletedSections == nil {
		p.CompletedSections = []string{}
	}
	if p.SimulationResults == nil {
		p.SimulationResults = []simulation.Result{}
	}
	if p.Achievements == nil {
		p.Achievements = []Achievement{}
	}
	if p.SkillLevel == "" {
		p.SkillLevel = Classify(p.TotalSimulationsCompleted, p.AverageScore)
	}
	for _, r := range p.SimulationResults {
		if r.TotalQuestions <= 0 {
			return nil, fmt.Errorf("decode progress: %w: stored result %q", ErrInvalidResult, r.SimulationID)
		}
	}
	return p, nil
}
