package leave

const (
	// skillMatchedScore is the score above which a single skill counts as
	// covered. There is no partial credit below it.
	skillMatchedScore = 60

	// flatSkillScore is the score assigned to a skill when the candidate has
	// it as a flat list entry with no explicit proficiency.
	flatSkillScore = 80
)

// SkillMatch scores how well a candidate's per-skill scores cover a weighted
// requirement set, as a 0-100 percentage of requirement weight covered. An
// empty requirement set is a full match.
func SkillMatch(required map[string]int, candidate map[string]int) float64 {
	if len(required) == 0 {
		return 100
	}

	totalWeight := 0
	matchedWeight := 0
	for skill, weight := range required {
		totalWeight += weight
		if candidate[skill] >= skillMatchedScore {
			matchedWeight += weight
		}
	}
	if totalWeight == 0 {
		return 0
	}
	return float64(matchedWeight) / float64(totalWeight) * 100
}

// SkillScores converts a flat skill list into the scored form SkillMatch
// expects, using the conventional flat score.
func SkillScores(skills []string) map[string]int {
	scores := make(map[string]int, len(skills))
	for _, skill := range skills {
		scores[skill] = flatSkillScore
	}
	return scores
}
