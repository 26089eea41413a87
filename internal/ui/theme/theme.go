package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Palette for the security console look.
var (
	Primary   = lipgloss.Color("#22D3EE") // scanner cyan
	Secondary = lipgloss.Color("#10B981") // shield green
	Accent    = lipgloss.Color("#A78BFA") // violet, used for averages
	Highlight = lipgloss.Color("#FACC15") // caution amber
	Success   = lipgloss.Color("#22C55E")
	Error     = lipgloss.Color("#F43F5E") // threat red
	Text      = lipgloss.Color("#E2E8F0")
	TextDim   = lipgloss.Color("#94A3B8")
	BgDark    = lipgloss.Color("#0B1120")
	BgCard    = lipgloss.Color("#162032")
	Border    = lipgloss.Color("#2D3B50")
)

// Answer feedback.
var (
	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)
)

// Score thresholds shared by every screen that colors a percentage.
const (
	ScoreGood = 80
	ScoreFair = 60
)

// ScoreColor maps a 0..100 score to green, amber or red.
func ScoreColor(pct int) color.Color {
	switch {
	case pct >= ScoreGood:
		return Success
	case pct >= ScoreFair:
		return Highlight
	default:
		return Error
	}
}

// DifficultyColor colors a simulation difficulty label. Unknown labels are
// treated as the hardest tier.
func DifficultyColor(difficulty string) color.Color {
	switch difficulty {
	case "Beginner":
		return Success
	case "Intermediate":
		return Highlight
	default:
		return Error
	}
}
