package hoops

// baseStage seeds each team with its own PPG averaged against the opponent's points allowed
func baseStage(t1, t2 TeamProfile) Delta {
	return Delta{
		Team1: (t1.PPG + t2.PointsAllowed) / 2,
		Team2: (t2.PPG + t1.PointsAllowed) / 2,
	}
}

// PaceAdjustment returns the scaled, undivided pace adjustment for the matchup
func PaceAdjustment(t1, t2 TeamProfile) float64 {
	gap := ClassifyPace(t1.PPG).Midpoint() - ClassifyPace(t2.PPG).Midpoint()
	combined := CombineDefense(ClassifyCoarseDefense(t1.DefenseRank), ClassifyCoarseDefense(t2.DefenseRank))
	rng := PaceMatrix[ClassifyPaceDifferential(gap)][combined]
	return rng.Midpoint() * PaceScalingFactor
}

// paceStage gives the faster team the larger share of the pace adjustment
func paceStage(t1, t2 TeamProfile) Delta {
	adj := PaceAdjustment(t1, t2)
	if adj == 0 {
		return Delta{}
	}
	mid1 := ClassifyPace(t1.PPG).Midpoint()
	mid2 := ClassifyPace(t2.PPG).Midpoint()
	switch {
	case mid1 > mid2:
		return Delta{Team1: adj * FasterTeamPaceShare, Team2: adj * (1 - FasterTeamPaceShare)}
	case mid2 > mid1:
		return Delta{Team1: adj * (1 - FasterTeamPaceShare), Team2: adj * FasterTeamPaceShare}
	default:
		return split(adj)
	}
}

// FormDelta is the streak effect plus the scoring trend effect for one team.
// Streaks are exclusive, if a profile carries both the win streak is read.
func FormDelta(t TeamProfile) float64 {
	var delta float64
	switch {
	case t.WinStreak > 0:
		for _, s := range WinStreakBonus {
			if t.WinStreak >= s.Min {
				delta += s.Delta
				break
			}
		}
	case t.LossStreak > 0:
		for _, s := range LossStreakPenalty {
			if t.LossStreak >= s.Min {
				delta += s.Delta
				break
			}
		}
	}

	trend := t.last5PPG() - t.PPG
	switch {
	case trend >= TrendThreshold:
		delta += TrendBonus
	case trend <= -TrendThreshold:
		delta -= TrendBonus
	}
	return delta
}

func formStage(t1, t2 TeamProfile) Delta {
	return Delta{Team1: FormDelta(t1), Team2: FormDelta(t2)}
}
