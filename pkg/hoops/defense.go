package hoops

// MatchupDelta looks up the defense matrix for an offense facing a defense
func MatchupDelta(offense TeamProfile, defense TeamProfile) float64 {
	own := ClassifyOffense(offense.offenseRank(), offense.fgPct())
	opp := ClassifyDefense(defense.DefenseRank)
	return DefenseMatrix[own][opp]
}

// MutualDefense returns the combined correction for two raw defense ranks and the
// name of the rule that matched. No match means no correction.
func MutualDefense(rank1, rank2 int) (float64, string) {
	for _, rule := range MutualDefenseRules {
		if rule.matches(rank1, rank2) {
			return rule.Penalty, rule.Name
		}
	}
	return 0, ""
}

func defenseStage(t1, t2 TeamProfile) Delta {
	d := Delta{
		Team1: MatchupDelta(t1, t2),
		Team2: MatchupDelta(t2, t1),
	}
	mutual, _ := MutualDefense(t1.DefenseRank, t2.DefenseRank)
	return d.plus(split(mutual))
}
