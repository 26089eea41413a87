package progress

import "github.com/abhisek/cyberguard/internal/simulation"

// MaxRecommendations caps the list returned by Recommendations.
const MaxRecommendations = 3

var levelTips = map[SkillLevel][]string{
	SkillBeginner: {
		"Start with basic phishing detection simulation",
		"Learn about password security fundamentals",
	},
	SkillIntermediate: {
		"Try advanced social engineering scenarios",
		"Explore network security simulations",
	},
	SkillAdvanced: {
		"Master complex threat analysis",
		"Practice incident response procedures",
	},
}

var sectionTips = map[string]string{
	SectionThreats:    "Complete the Cyber Threats learning section",
	SectionLaws:       "Learn about cyber laws and compliance",
	SectionPrevention: "Master prevention strategies",
}

// recommendations builds the prioritized tip list for p.
func recommendations(p *UserProgress) []string {
	var recs []string
	recs = append(recs, levelTips[p.SkillLevel]...)

	if r, ok := p.ResultFor(simulation.PhishingEmail); ok && r.Score < 3 {
		recs = append(recs, "Review phishing detection techniques")
	}
	if r, ok := p.ResultFor(simulation.WiFiSecurity); ok && r.Score < 4 {
		recs = append(recs, "Study public Wi-Fi security best practices")
	}

	for _, s := range Sections() {
		if !p.SectionCompleted(s) {
			recs = append(recs, sectionTips[s])
		}
	}

	if len(recs) > MaxRecommendations {
		recs = recs[:MaxRecommendations]
	}
	return recs
}
