package progress

import "time"

// AchievementDef is an entry of the fixed achievement catalog.
type AchievementDef struct {
	ID          string
	Title       string
	Description string
	Icon        Icon
	Category    Category
	Unlocked    func(p *UserProgress) bool
}

// Achievement IDs.
const (
	AchFirstSimulation   = "first-simulation"
	AchPerfectScore      = "perfect-score"
	AchStreak3           = "streak-3"
	AchStreak7           = "streak-7"
	AchSimulationMaster  = "simulation-master"
	AchHighAchiever      = "high-achiever"
	AchIntermediateLevel = "intermediate-level"
	AchAdvancedLevel     = "advanced-level"
	AchExpertLevel       = "expert-level"
)

var catalog = []AchievementDef{
	{
		ID:          AchFirstSimulation,
		Title:       "First Steps",
		Description: "Completed your first simulation",
		Icon:        IconPlay,
		Category:    CategorySimulation,
		Unlocked:    func(p *UserProgress) bool { return p.TotalSimulationsCompleted >= 1 },
	},
	{
		ID:          AchPerfectScore,
		Title:       "Perfectionist",
		Description: "Achieved a perfect score in a simulation",
		Icon:        IconStar,
		Category:    CategorySimulation,
		Unlocked: func(p *UserProgress) bool {
			for _, r := range p.SimulationResults {
				if r.Perfect() {
					return true
				}
			}
			return false
		},
	},
	{
		ID:          AchStreak3,
		Title:       "On Fire",
		Description: "Maintained a 3-day learning streak",
		Icon:        IconFlame,
		Category:    CategoryStreak,
		Unlocked:    func(p *UserProgress) bool { return p.CurrentStreak >= 3 },
	},
	{
		ID:          AchStreak7,
		Title:       "Dedicated Learner",
		Description: "Maintained a 7-day learning streak",
		Icon:        IconCalendar,
		Category:    CategoryStreak,
		Unlocked:    func(p *UserProgress) bool { return p.CurrentStreak >= 7 },
	},
	{
		ID:          AchSimulationMaster,
		Title:       "Simulation Master",
		Description: "Completed 5 different simulations",
		Icon:        IconTrophy,
		Category:    CategorySimulation,
		Unlocked:    func(p *UserProgress) bool { return p.TotalSimulationsCompleted >= 5 },
	},
	{
		ID:          AchHighAchiever,
		Title:       "High Achiever",
		Description: "Maintained 85%+ average score",
		Icon:        IconAward,
		Category:    CategoryMastery,
		Unlocked: func(p *UserProgress) bool {
			return p.AverageScore >= 85 && p.TotalSimulationsCompleted >= 3
		},
	},
	{
		ID:          AchIntermediateLevel,
		Title:       "Rising Guardian",
		Description: "Reached intermediate skill level",
		Icon:        IconShield,
		Category:    CategoryMastery,
		Unlocked:    func(p *UserProgress) bool { return p.SkillLevel == SkillIntermediate },
	},
	{
		ID:          AchAdvancedLevel,
		Title:       "Cyber Defender",
		Description: "Reached advanced skill level",
		Icon:        IconShieldCheck,
		Category:    CategoryMastery,
		Unlocked:    func(p *UserProgress) bool { return p.SkillLevel == SkillAdvanced },
	},
	{
		ID:          AchExpertLevel,
		Title:       "Cyber Sentinel",
		Description: "Reached expert skill level",
		Icon:        IconCrown,
		Category:    CategoryMastery,
		Unlocked:    func(p *UserProgress) bool { return p.SkillLevel == SkillExpert },
	},
}

// Catalog returns the achievement definitions in evaluation order.
func Catalog() []AchievementDef {
	out := make([]AchievementDef, len(catalog))
	copy(out, catalog)
	return out
}

// evaluate appends every newly satisfied achievement to p and returns them.
func evaluate(p *UserProgress, now time.Time) []Achievement {
	var unlocked []Achievement
	for _, def := range catalog {
		if p.HasAchievement(def.ID) || !def.Unlocked(p) {
			continue
		}
		a := Achievement{
			ID:          def.ID,
			Title:       def.Title,
			Description: def.Description,
			Icon:        def.Icon,
			UnlockedAt:  now,
			Category:    def.Category,
		}
		p.Achievements = append(p.Achievements, a)
		unlocked = append(unlocked, a)
	}
	return unlocked
}
