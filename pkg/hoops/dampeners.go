package hoops

import "math"

// CruiseControlPenalty for a leader ahead by margin points
func CruiseControlPenalty(margin float64) float64 {
	margin = math.Abs(margin)
	for _, tier := range CruiseControl {
		if margin >= tier.MinMargin {
			return tier.Penalty
		}
	}
	return 0
}

func cruiseControlStage(s tally) Delta {
	penalty := CruiseControlPenalty(s.margin())
	switch {
	case penalty == 0:
		return Delta{}
	case s.team1 > s.team2:
		return Delta{Team1: penalty}
	default:
		return Delta{Team2: penalty}
	}
}

// ScoreBounds returns the ceiling and floor the elite cap enforcer holds a team to.
// A zero bound means none applies.
func ScoreBounds(t TeamProfile, opponentDefenseRank int) (ceiling, floor float64) {
	if t.PPG >= EliteOffensePPG {
		switch {
		case opponentDefenseRank > WeakDefenseRankAbove:
			ceiling = CapVsWeakDefense
		case opponentDefenseRank <= EliteDefenseRankMax:
			ceiling = CapVsEliteDefense
		default:
			ceiling = CapVsOtherDefense
		}
	}
	if t.PPG <= PoorOffensePPG && t.fgPct() < PoorOffenseFGPct {
		if opponentDefenseRank <= EliteDefenseRankMax {
			floor = FloorVsEliteDefense
		} else {
			floor = FloorVsOtherDefense
		}
	}
	return ceiling, floor
}

func clamp(score, ceiling, floor float64) float64 {
	if ceiling > 0 && score > ceiling {
		score = ceiling
	}
	if floor > 0 && score < floor {
		score = floor
	}
	return score
}

// eliteCapStage returns the change that clamping makes to each score
func eliteCapStage(t1, t2 TeamProfile, s tally) Delta {
	c1, f1 := ScoreBounds(t1, t2.DefenseRank)
	c2, f2 := ScoreBounds(t2, t1.DefenseRank)
	next := tally{
		team1: clamp(s.team1, c1, f1),
		team2: clamp(s.team2, c2, f2),
	}
	return s.diff(next)
}
