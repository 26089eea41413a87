package progress

// Classify derives the skill tier from the completion count and the rounded
// average score, highest tier first.
func Classify(completed, averageScore int) SkillLevel {
	switch {
	case completed >= 15 && averageScore >= 90:
		return SkillExpert
	case completed >= 10 && averageScore >= 80:
		return SkillAdvanced
	case completed >= 5 && averageScore >= 70:
		return SkillIntermediate
	default:
		return SkillBeginner
	}
}
