package hoops

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func profile(name string, ppg, allowed float64, defRank int) TeamProfile {
	return TeamProfile{Name: name, PPG: ppg, PointsAllowed: allowed, DefenseRank: defRank}
}

func TestBaseStage(t *testing.T) {
	d := baseStage(profile("A", 80, 70, 100), profile("B", 60, 66, 100))
	assert.Equal(t, 73.0, d.Team1)
	assert.Equal(t, 65.0, d.Team2)
}

func TestPaceMatrixMidpoints(t *testing.T) {
	for _, combined := range []CombinedDefense{BothEliteGood, OneGood, BothAveragePoor} {
		assert.Zero(t, PaceMatrix[PaceNeutral][combined].Midpoint())
	}
	assert.Equal(t, -1.0, PaceMatrix[PaceModerate][BothEliteGood].Midpoint())
	assert.Equal(t, 5.5, PaceMatrix[PaceExtreme][BothAveragePoor].Midpoint())
}

func TestPaceStageFasterTeamGetsLargerShare(t *testing.T) {
	fast := profile("Fast", 84.3, 80, 316)
	slow := profile("Slow", 69.1, 80, 355)

	// moderate gap, both poor defenses: midpoint 2 scaled to 1.3
	assert.InDelta(t, 1.3, PaceAdjustment(fast, slow), 1e-9)

	d := paceStage(fast, slow)
	assert.InDelta(t, 0.78, d.Team1, 1e-9)
	assert.InDelta(t, 0.52, d.Team2, 1e-9)

	mirrored := paceStage(slow, fast)
	assert.InDelta(t, 0.52, mirrored.Team1, 1e-9)
	assert.InDelta(t, 0.78, mirrored.Team2, 1e-9)
}

func TestPaceStageGoodDefensesSlowTheGame(t *testing.T) {
	fast := profile("Fast", 90, 80, 10)
	slow := profile("Slow", 60, 80, 20)
	// major gap, both elite: midpoint -2
	assert.InDelta(t, -2*PaceScalingFactor, PaceAdjustment(fast, slow), 1e-9)
}

func TestFormDelta(t *testing.T) {
	base := profile("T", 70, 70, 100)
	cases := []struct {
		name  string
		edit  func(*TeamProfile)
		delta float64
	}{
		{"no streak", func(p *TeamProfile) {}, 0},
		{"win 1", func(p *TeamProfile) { p.WinStreak = 1 }, 1},
		{"win 3", func(p *TeamProfile) { p.WinStreak = 4 }, 2.5},
		{"win 5", func(p *TeamProfile) { p.WinStreak = 9 }, 3.5},
		{"loss 1", func(p *TeamProfile) { p.LossStreak = 2 }, -1.5},
		{"loss 3", func(p *TeamProfile) { p.LossStreak = 3 }, -6},
		{"loss 5", func(p *TeamProfile) { p.LossStreak = 5 }, -9},
		{"hot trend", func(p *TeamProfile) { p.Last5PPG = Float(75) }, 2.5},
		{"cold trend", func(p *TeamProfile) { p.Last5PPG = Float(65) }, -2.5},
		{"small trend", func(p *TeamProfile) { p.Last5PPG = Float(74.9) }, 0},
		{"streak plus trend", func(p *TeamProfile) { p.LossStreak = 5; p.Last5PPG = Float(60) }, -11.5},
		{"both streaks reads win", func(p *TeamProfile) { p.WinStreak = 3; p.LossStreak = 3 }, 2.5},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := base
			c.edit(&p)
			assert.Equal(t, c.delta, FormDelta(p))
		})
	}
}

func TestDefenseMatrixOrdering(t *testing.T) {
	// better offense never scores less against the same defense and a worse
	// defense never concedes less to the same offense
	for o := range DefenseMatrix {
		for d := 1; d < len(DefenseMatrix[o]); d++ {
			assert.Greater(t, DefenseMatrix[o][d], DefenseMatrix[o][d-1])
		}
	}
	for d := range DefenseMatrix[0] {
		for o := 1; o < len(DefenseMatrix); o++ {
			assert.Less(t, DefenseMatrix[o][d], DefenseMatrix[o-1][d])
		}
	}
	assert.Equal(t, -22.5, DefenseMatrix[OffensePoor][DefenseElite])
	assert.Equal(t, 5.0, DefenseMatrix[OffenseElite][DefenseTerrible])
}

func TestMutualDefense(t *testing.T) {
	cases := []struct {
		r1, r2  int
		penalty float64
		rule    string
	}{
		{10, 70, -11, "both-elite"},
		{71, 110, -6, "both-good"},
		{150, 150, 0, "both-average"},
		{111, 180, 0, "both-average"},
		{20, 150, -4, "elite-vs-good"},
		{150, 20, -4, "elite-vs-good"},
		{20, 151, 0, ""},
		{200, 300, 0, ""},
		{100, 120, 0, ""},
	}
	for _, c := range cases {
		penalty, rule := MutualDefense(c.r1, c.r2)
		assert.Equal(t, c.penalty, penalty, "%d vs %d", c.r1, c.r2)
		assert.Equal(t, c.rule, rule, "%d vs %d", c.r1, c.r2)
	}
}

func TestDefenseStage(t *testing.T) {
	a := profile("A", 80, 70, 20)
	a.OffenseRank = Int(50)
	a.FGPct = Float(0.50)
	b := profile("B", 70, 70, 60)

	d := defenseStage(a, b)
	// elite offense vs very good defense -5, default offense (good) vs elite defense -12,
	// plus -11 split
	assert.Equal(t, -5-5.5, d.Team1)
	assert.Equal(t, -12-5.5, d.Team2)
}

func TestLocationStage(t *testing.T) {
	host := profile("Host", 75, 70, 100)
	host.HomeRecord = &Record{Wins: 9, Losses: 1}
	host.StrengthRank = Int(40)
	visitor := profile("Visitor", 70, 70, 100)
	visitor.AwayRecord = &Record{Wins: 0, Losses: 4}

	d := locationStage(host, visitor, LocationHome)
	assert.Equal(t, 3.5, d.Team1)
	assert.Equal(t, -6.0, d.Team2)

	// same game described from the visitor's side
	d = locationStage(visitor, host, LocationAway)
	assert.Equal(t, -6.0, d.Team1)
	assert.Equal(t, 3.5, d.Team2)
}

func TestHomeCourtBonusDefaults(t *testing.T) {
	p := profile("T", 70, 70, 100)
	assert.Equal(t, 2.5, HomeCourtBonus(p))
	p.HomeRecord = &Record{Wins: 2, Losses: 8}
	assert.Equal(t, 1.5, HomeCourtBonus(p))
}

func TestRoadPenaltyMildestCase(t *testing.T) {
	visitor := profile("V", 70, 70, 100)
	visitor.AwayRecord = &Record{Wins: 6, Losses: 4}
	host := profile("H", 70, 70, 100)
	host.StrengthRank = Int(300)
	assert.Equal(t, -1.0, RoadPenalty(visitor, host))
}

func TestNeutralSiteDelta(t *testing.T) {
	cases := []struct {
		rec  *Record
		want float64
	}{
		{nil, 0},
		{&Record{}, 0},
		{&Record{Wins: 0, Losses: 3}, NeutralWinless},
		{&Record{Wins: 1, Losses: 3}, NeutralLosing},
		{&Record{Wins: 3, Losses: 1}, NeutralDominant},
		{&Record{Wins: 2, Losses: 2}, NeutralWinning},
	}
	for _, c := range cases {
		p := profile("T", 70, 70, 100)
		p.NeutralRecord = c.rec
		assert.Equal(t, c.want, NeutralSiteDelta(p), "%+v", c.rec)
	}
}

func TestConferenceStage(t *testing.T) {
	assert.Equal(t, Delta{}, conferenceStage(GameContext{}))
	assert.Equal(t, Delta{Team1: -5.5, Team2: -5.5}, conferenceStage(GameContext{Conference: true}))
}

func TestPlanMismatchBottomTier(t *testing.T) {
	a := profile("A", 70, 70, 100)
	a.StrengthRank = Int(200)
	b := profile("B", 60, 80, 300)
	b.StrengthRank = Int(360)

	plan := planMismatch(a, b, tally{70, 60})
	assert.True(t, plan.SkipCruiseControl)
	assert.True(t, plan.SkipEliteCaps)
	assert.True(t, plan.ApplyFloor)
	assert.True(t, plan.ApplyMaxCap)
	assert.Equal(t, SideTeam2, plan.FloorSide)
	assert.Equal(t, Delta{Team1: 12.5, Team2: -12.5}, plan.Delta)
}

func TestPlanMismatchEqualBottomRanks(t *testing.T) {
	a := profile("A", 70, 70, 100)
	a.StrengthRank = Int(360)
	b := profile("B", 60, 80, 300)
	b.StrengthRank = Int(360)

	plan := planMismatch(a, b, tally{55, 60})
	assert.Equal(t, SideTeam1, plan.FloorSide)
	assert.Equal(t, Delta{Team1: -12.5, Team2: 12.5}, plan.Delta)

	plan = planMismatch(a, b, tally{60, 60})
	assert.Equal(t, SideBoth, plan.FloorSide)
	assert.Equal(t, Delta{}, plan.Delta)
}

func TestPlanMismatchRankGap(t *testing.T) {
	a := profile("A", 70, 70, 100)
	a.StrengthRank = Int(300)
	b := profile("B", 70, 70, 100)
	b.StrengthRank = Int(100)

	plan := planMismatch(a, b, tally{70, 70})
	assert.True(t, plan.SkipCruiseControl)
	assert.False(t, plan.SkipEliteCaps)
	assert.False(t, plan.ApplyFloor)
	assert.True(t, plan.ApplyMaxCap)
	assert.Equal(t, Delta{Team1: -8.75, Team2: 8.75}, plan.Delta)

	b.StrengthRank = Int(101)
	plan = planMismatch(a, b, tally{70, 70})
	assert.False(t, plan.SkipCruiseControl)
	assert.Equal(t, Delta{}, plan.Delta)
}

func TestPlanMismatchStatementGame(t *testing.T) {
	a := profile("A", 70, 70, 100)
	a.StrengthRank = Int(200)
	a.LossStreak = 3
	b := profile("B", 70, 70, 100)
	b.StrengthRank = Int(320)

	plan := planMismatch(a, b, tally{70, 70})
	assert.False(t, plan.SkipCruiseControl)
	assert.Equal(t, Delta{Team1: 10}, plan.Delta)
	assert.Equal(t, []string{"statement-team1"}, plan.Reasons)

	// the worse ranked side never qualifies
	a.StrengthRank = Int(330)
	plan = planMismatch(a, b, tally{70, 70})
	assert.Equal(t, Delta{}, plan.Delta)
}

func TestApplyMismatchFloorAndCap(t *testing.T) {
	plan := MismatchPlan{ApplyFloor: true, ApplyMaxCap: true, FloorSide: SideTeam2, Delta: Delta{Team1: 12.5, Team2: -12.5}}
	s := applyMismatch(plan, tally{105, 50})
	assert.Equal(t, 110.0, s.team1)
	assert.Equal(t, 48.0, s.team2)
}

func TestCruiseControl(t *testing.T) {
	assert.Equal(t, -13.5, CruiseControlPenalty(30))
	assert.Equal(t, -11.0, CruiseControlPenalty(-27))
	assert.Equal(t, -8.5, CruiseControlPenalty(20))
	assert.Equal(t, -5.5, CruiseControlPenalty(15))
	assert.Zero(t, CruiseControlPenalty(14.99))

	assert.Equal(t, Delta{Team2: -8.5}, cruiseControlStage(tally{60, 82}))
	assert.Equal(t, Delta{}, cruiseControlStage(tally{70, 70}))
}

func TestScoreBounds(t *testing.T) {
	elite := profile("E", 88, 70, 100)
	c, f := ScoreBounds(elite, 251)
	assert.Equal(t, 90.0, c)
	assert.Zero(t, f)
	c, _ = ScoreBounds(elite, 30)
	assert.Equal(t, 74.0, c)
	c, _ = ScoreBounds(elite, 120)
	assert.Equal(t, 82.5, c)

	poor := profile("P", 62, 70, 100)
	poor.FGPct = Float(0.38)
	c, f = ScoreBounds(poor, 10)
	assert.Zero(t, c)
	assert.Equal(t, 47.5, f)
	_, f = ScoreBounds(poor, 200)
	assert.Equal(t, 52.5, f)

	// missing fg% falls back to 0.45, which is not a poor shooting team
	poor.FGPct = nil
	_, f = ScoreBounds(poor, 200)
	assert.Zero(t, f)
}

func TestEliteCapStage(t *testing.T) {
	elite := profile("E", 90, 70, 100)
	poor := profile("P", 60, 70, 100)
	poor.FGPct = Float(0.35)

	d := eliteCapStage(elite, poor, tally{95, 40})
	assert.Equal(t, -12.5, d.Team1)
	assert.Equal(t, 12.5, d.Team2)
}

func TestContextDelta(t *testing.T) {
	cases := []struct {
		name string
		s    Situation
		want float64
	}{
		{"default rest", Situation{}, 0},
		{"no rest", Situation{RestDays: Int(0)}, -4},
		{"one day", Situation{RestDays: Int(1)}, -1.5},
		{"three days", Situation{RestDays: Int(3)}, 0},
		{"four days", Situation{RestDays: Int(4)}, 1.5},
		{"week", Situation{RestDays: Int(7)}, 1.5},
		{"long break", Situation{RestDays: Int(10)}, 2.5},
		{"travel", Situation{TravelMiles: 1000}, -1.5},
		{"short travel", Situation{TravelMiles: 999}, 0},
		{"all injuries", Situation{Injuries: Injuries{TopScorer: true, Playmaker: true, RolePlayer: true}}, -13},
		{"everything", Situation{RestDays: Int(0), TravelMiles: 2500, Injuries: Injuries{Playmaker: true}}, -9.5},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, ContextDelta(c.s))
		})
	}
}

func TestCloseGameStage(t *testing.T) {
	d := closeGameStage(tally{73, 70}, LocationHome)
	assert.InDelta(t, 3.85, d.Team1, 1e-9)
	assert.InDelta(t, 3.15, d.Team2, 1e-9)
	assert.InDelta(t, 7.0, d.Total(), 1e-9)

	d = closeGameStage(tally{73, 70}, LocationAway)
	assert.InDelta(t, 3.15, d.Team1, 1e-9)
	assert.InDelta(t, 3.85, d.Team2, 1e-9)

	assert.Equal(t, Delta{Team1: 3.5, Team2: 3.5}, closeGameStage(tally{70, 74}, LocationNeutral))
	assert.Equal(t, Delta{}, closeGameStage(tally{75, 70}, LocationHome))
}

func TestFirstHalfShare(t *testing.T) {
	p := profile("T", 80, 70, 100)
	assert.Equal(t, NormalShare, FirstHalfShare(p))
	p.FirstHalfPPG = Float(42)
	assert.Equal(t, FastStartShare, FirstHalfShare(p))
	p.FirstHalfPPG = Float(36)
	assert.Equal(t, SlowStartShare, FirstHalfShare(p))
	p.FirstHalfPPG = Float(38)
	assert.Equal(t, NormalShare, FirstHalfShare(p))
}
