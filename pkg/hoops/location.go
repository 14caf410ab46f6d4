package hoops

// HomeCourtBonus for the home team, by its home win rate
func HomeCourtBonus(home TeamProfile) float64 {
	rate := winRate(home.HomeRecord)
	for _, tier := range HomeBonus {
		if rate >= tier.MinRate {
			return tier.Bonus
		}
	}
	return 0
}

// RoadPenalty for the visitor, by its away record and the host's strength rank
func RoadPenalty(visitor, host TeamProfile) float64 {
	return AwayPenalty[ClassifyAwayRecord(visitor.AwayRecord)][ClassifyOpponent(host.strengthRank())]
}

// NeutralSiteDelta for one team by its neutral-site record.
// No neutral games at all means no adjustment.
func NeutralSiteDelta(t TeamProfile) float64 {
	if t.NeutralRecord == nil || t.NeutralRecord.Games() == 0 {
		return 0
	}
	rate, _ := t.NeutralRecord.WinRate()
	switch {
	case t.NeutralRecord.Wins == 0:
		return NeutralWinless
	case rate < 0.5:
		return NeutralLosing
	case rate >= NeutralDominantRate:
		return NeutralDominant
	default:
		return NeutralWinning
	}
}

func locationStage(t1, t2 TeamProfile, site Location) Delta {
	switch site {
	case LocationHome:
		return Delta{Team1: HomeCourtBonus(t1), Team2: RoadPenalty(t2, t1)}
	case LocationAway:
		return Delta{Team1: RoadPenalty(t1, t2), Team2: HomeCourtBonus(t2)}
	default:
		return Delta{Team1: NeutralSiteDelta(t1), Team2: NeutralSiteDelta(t2)}
	}
}

func conferenceStage(game GameContext) Delta {
	if !game.Conference {
		return Delta{}
	}
	return split(ConferencePenalty)
}
