package hoops

import "fmt"

// Side names a team slot
type Side int

const (
	SideNone Side = iota
	SideTeam1
	SideTeam2
	SideBoth
)

var sideNames = [...]string{"none", "team1", "team2", "both"}

func (s Side) String() string { return sideNames[s] }

func (s Side) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *Side) UnmarshalText(text []byte) error {
	for i, name := range sideNames {
		if string(text) == name {
			*s = Side(i)
			return nil
		}
	}
	return fmt.Errorf("unknown side %q", text)
}

// MismatchPlan is decided once from the preliminary scores and read by the later
// stages. The deltas and clamps are held back until after caps and context.
type MismatchPlan struct {
	SkipCruiseControl bool     `json:"skipCruiseControl"`
	SkipEliteCaps     bool     `json:"skipEliteCaps"`
	ApplyFloor        bool     `json:"applyFloor"`
	ApplyMaxCap       bool     `json:"applyMaxCap"`
	FloorSide         Side     `json:"floorSide"`
	Delta             Delta    `json:"delta"`
	Reasons           []string `json:"reasons,omitempty"`
}

// stronger returns the better ranked side, falling back to the preliminary leader
// when the ranks are equal
func stronger(rank1, rank2 int, prelim tally) Side {
	switch {
	case rank1 < rank2:
		return SideTeam1
	case rank2 < rank1:
		return SideTeam2
	case prelim.team1 > prelim.team2:
		return SideTeam1
	case prelim.team2 > prelim.team1:
		return SideTeam2
	default:
		return SideNone
	}
}

// favour gives +amount to the chosen side and -amount to the other
func favour(side Side, amount float64) Delta {
	switch side {
	case SideTeam1:
		return Delta{Team1: amount, Team2: -amount}
	case SideTeam2:
		return Delta{Team1: -amount, Team2: amount}
	default:
		return Delta{}
	}
}

func other(side Side) Side {
	switch side {
	case SideTeam1:
		return SideTeam2
	case SideTeam2:
		return SideTeam1
	default:
		return SideBoth
	}
}

// planMismatch evaluates the three extreme mismatch conditions against the
// preliminary scores
func planMismatch(t1, t2 TeamProfile, prelim tally) MismatchPlan {
	var plan MismatchPlan
	rank1, rank2 := t1.strengthRank(), t2.strengthRank()

	if rank1 >= BottomTierRank || rank2 >= BottomTierRank {
		side := stronger(rank1, rank2, prelim)
		plan.SkipCruiseControl = true
		plan.SkipEliteCaps = true
		plan.ApplyFloor = true
		plan.ApplyMaxCap = true
		plan.FloorSide = other(side)
		plan.Delta = plan.Delta.plus(favour(side, BottomTierDelta))
		plan.Reasons = append(plan.Reasons, "bottom-tier")
	} else if gap := rank1 - rank2; gap >= RankGapThreshold || -gap >= RankGapThreshold {
		side := stronger(rank1, rank2, prelim)
		plan.SkipCruiseControl = true
		plan.ApplyMaxCap = true
		plan.Delta = plan.Delta.plus(favour(side, RankGapShift/2))
		plan.Reasons = append(plan.Reasons, "rank-gap")
	}

	if statementGame(t1, rank1, rank2) {
		plan.Delta.Team1 += StatementBonus
		plan.Reasons = append(plan.Reasons, "statement-team1")
	}
	if statementGame(t2, rank2, rank1) {
		plan.Delta.Team2 += StatementBonus
		plan.Reasons = append(plan.Reasons, "statement-team2")
	}
	return plan
}

// statementGame is a slumping favourite facing a bottom-50 opponent
func statementGame(t TeamProfile, own, opp int) bool {
	return t.LossStreak >= StatementMinStreak && opp >= StatementOpponentRank && own < opp
}

// applyMismatch adds the held back deltas then clamps: floor the weak side, then
// pull the leader down to the max
func applyMismatch(plan MismatchPlan, s tally) tally {
	s = s.add(plan.Delta)
	if plan.ApplyFloor {
		if plan.FloorSide == SideTeam1 || plan.FloorSide == SideBoth {
			s.team1 = max(s.team1, MismatchFloor)
		}
		if plan.FloorSide == SideTeam2 || plan.FloorSide == SideBoth {
			s.team2 = max(s.team2, MismatchFloor)
		}
	}
	if plan.ApplyMaxCap {
		if s.team1 >= s.team2 {
			s.team1 = min(s.team1, MaxLeaderScore)
		} else {
			s.team2 = min(s.team2, MaxLeaderScore)
		}
	}
	return s
}
