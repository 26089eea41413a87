package progress

import (
	"time"

	"github.com/abhisek/cyberguard/internal/simulation"
)

// SkillLevel is the coarse tier derived from completion count and average score.
type SkillLevel string

const (
	SkillBeginner     SkillLevel = "beginner"
	SkillIntermediate SkillLevel = "intermediate"
	SkillAdvanced     SkillLevel = "advanced"
	SkillExpert       SkillLevel = "expert"
)

// DisplayName returns a capitalized label for the level.
func (l SkillLevel) DisplayName() string {
	switch l {
	case SkillBeginner:
		return "Beginner"
	case SkillIntermediate:
		return "Intermediate"
	case SkillAdvanced:
		return "Advanced"
	case SkillExpert:
		return "Expert"
	default:
		return string(l)
	}
}

// Blurb returns the encouragement line shown next to the level.
func (l SkillLevel) Blurb() string {
	switch l {
	case SkillIntermediate:
		return "Great progress! Keep it up!"
	case SkillAdvanced:
		return "Excellent skills! Almost there!"
	case SkillExpert:
		return "Master level achieved!"
	default:
		return "Keep learning to advance!"
	}
}

// Category groups achievements for display.
type Category string

const (
	CategorySimulation Category = "simulation"
	CategoryLearning   Category = "learning"
	CategoryStreak     Category = "streak"
	CategoryMastery    Category = "mastery"
)

// AllCategories returns the categories in display order.
func AllCategories() []Category {
	return []Category{CategorySimulation, CategoryLearning, CategoryStreak, CategoryMastery}
}

// DisplayName returns a human-readable label for the category.
func (c Category) DisplayName() string {
	switch c {
	case CategorySimulation:
		return "Simulation"
	case CategoryLearning:
		return "Learning"
	case CategoryStreak:
		return "Streak"
	case CategoryMastery:
		return "Mastery"
	default:
		return string(c)
	}
}

// Icon is a closed set of achievement icon identifiers. The presentation
// layer decides how each one is drawn.
type Icon string

const (
	IconPlay        Icon = "play"
	IconStar        Icon = "star"
	IconFlame       Icon = "flame"
	IconCalendar    Icon = "calendar"
	IconTrophy      Icon = "trophy"
	IconAward       Icon = "award"
	IconShield      Icon = "shield"
	IconShieldCheck Icon = "shield-check"
	IconCrown       Icon = "crown"
)

// Achievement is a one-time badge. Immutable once unlocked.
type Achievement struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Icon        Icon      `json:"icon"`
	UnlockedAt  time.Time `json:"unlockedAt"`
	Category    Category  `json:"category"`
}

// Section identifiers for the learning content.
const (
	SectionThreats    = "threats"
	SectionLaws       = "laws"
	SectionPrevention = "prevention"
)

// Sections returns the learning sections in recommendation order.
func Sections() []string {
	return []string{SectionThreats, SectionLaws, SectionPrevention}
}

// UserProgress is the durable aggregate kept for one signed-in identity.
type UserProgress struct {
	TotalSimulationsCompleted int                 `json:"totalSimulationsCompleted"`
	AverageScore              int                 `json:"averageScore"`
	TimeSpent                 int                 `json:"timeSpent"` // minutes
	CurrentStreak             int                 `json:"currentStreak"`
	LongestStreak             int                 `json:"longestStreak"`
	SkillLevel                SkillLevel          `json:"skillLevel"`
	CompletedSections         []string            `json:"completedSections"`
	SimulationResults         []simulation.Result `json:"simulationResults"`
	Achievements              []Achievement       `json:"achievements"`
	LastActiveDate            time.Time           `json:"lastActiveDate"`
}

// New returns progress with zeroed defaults.
func New() *UserProgress {
	return &UserProgress{
		SkillLevel:        SkillBeginner,
		CompletedSections: []string{},
		SimulationResults: []simulation.Result{},
		Achievements:      []Achievement{},
	}
}

// Clone returns a deep copy.
func (p *UserProgress) Clone() *UserProgress {
	c := *p
	c.CompletedSections = append([]string{}, p.CompletedSections...)
	c.SimulationResults = append([]simulation.Result{}, p.SimulationResults...)
	c.Achievements = append([]Achievement{}, p.Achievements...)
	return &c
}

// ResultFor returns the retained result for a simulation.
func (p *UserProgress) ResultFor(simulationID string) (simulation.Result, bool) {
	for _, r := range p.SimulationResults {
		if r.SimulationID == simulationID {
			return r, true
		}
	}
	return simulation.Result{}, false
}

// HasAchievement reports whether id is already unlocked.
func (p *UserProgress) HasAchievement(id string) bool {
	for _, a := range p.Achievements {
		if a.ID == id {
			return true
		}
	}
	return false
}

// SectionCompleted reports whether the section has been marked complete.
func (p *UserProgress) SectionCompleted(id string) bool {
	for _, s := range p.CompletedSections {
		if s == id {
			return true
		}
	}
	return false
}
