package hoops

// PaceRange is a {min,max} adjustment range, the stage uses its midpoint
type PaceRange struct {
	Min, Max float64
}

func (r PaceRange) Midpoint() float64 { return (r.Min + r.Max) / 2 }

// PaceMatrix is keyed by [differential][combined defense]. Good defenses slow the
// faster team down, poor ones let the tempo run.
var PaceMatrix = [4][3]PaceRange{
	PaceNeutral: {
		BothEliteGood:   {0, 0},
		OneGood:         {0, 0},
		BothAveragePoor: {0, 0},
	},
	PaceModerate: {
		BothEliteGood:   {-2, 0},
		OneGood:         {0, 2},
		BothAveragePoor: {1, 3},
	},
	PaceMajor: {
		BothEliteGood:   {-3, -1},
		OneGood:         {1, 3},
		BothAveragePoor: {3, 5},
	},
	PaceExtreme: {
		BothEliteGood:   {-4, -2},
		OneGood:         {2, 4},
		BothAveragePoor: {4, 7},
	},
}

// DefenseMatrix is keyed by [own offense tier][opponent defense tier], in points.
// Do not approximate with a formula, the values are the model.
var DefenseMatrix = [4][7]float64{
	//               Elite  VeryGood  Good  Average  BelowAvg  Poor  Terrible
	OffenseElite:   {-8, -5, -3, -1, 1, 3, 5},
	OffenseGood:    {-12, -8.5, -6, -3, -1, 1, 3},
	OffenseAverage: {-16.5, -12, -9, -5.5, -3, -1, 1},
	OffensePoor:    {-22.5, -17, -13, -9, -6, -3.5, -1.5},
}

// rankBand is an inclusive range of defense ranks
type rankBand struct {
	Lo, Hi int
}

func (b rankBand) contains(rank int) bool { return rank >= b.Lo && rank <= b.Hi }

// MutualDefenseRule matches when one rank falls in A and the other in B
type MutualDefenseRule struct {
	Name    string
	A, B    rankBand
	Penalty float64
}

func (r MutualDefenseRule) matches(rank1, rank2 int) bool {
	return (r.A.contains(rank1) && r.B.contains(rank2)) ||
		(r.A.contains(rank2) && r.B.contains(rank1))
}

// MutualDefenseRules are evaluated in order, first match wins. The penalty is the
// combined total, split evenly between the teams.
var MutualDefenseRules = []MutualDefenseRule{
	{Name: "both-elite", A: rankBand{1, 70}, B: rankBand{1, 70}, Penalty: -11},
	{Name: "both-good", A: rankBand{71, 110}, B: rankBand{71, 110}, Penalty: -6},
	{Name: "both-average", A: rankBand{111, 180}, B: rankBand{111, 180}, Penalty: 0},
	{Name: "elite-vs-good", A: rankBand{1, 70}, B: rankBand{71, 150}, Penalty: -4},
}

// HomeBonus by home win rate, highest threshold first
var HomeBonus = []struct {
	MinRate float64
	Bonus   float64
}{
	{0.75, 3.5},
	{0.50, 2.5},
	{0, 1.5},
}

// AwayPenalty is keyed by [visitor away record tier][opponent strength tier]
var AwayPenalty = [3][3]float64{
	//            Top   Mid   Weak
	AwayWeak:     {-6, -4.5, -3.5},
	AwayMiddling: {-4.5, -3, -2},
	AwayStrong:   {-3, -2, -1},
}

// Neutral site ladder, the winless case is checked before the losing one
const (
	NeutralWinless      = -2.5
	NeutralLosing       = -1.0
	NeutralDominant     = 1.5
	NeutralWinning      = 0.5
	NeutralDominantRate = 0.75
)

// Streak effects, highest threshold first
var (
	WinStreakBonus = []struct {
		Min   int
		Delta float64
	}{{5, 3.5}, {3, 2.5}, {1, 1}}

	LossStreakPenalty = []struct {
		Min   int
		Delta float64
	}{{5, -9}, {3, -6}, {1, -1.5}}
)

// CruiseControl penalties on the leader by preliminary margin, highest first
var CruiseControl = []struct {
	MinMargin float64
	Penalty   float64
}{
	{30, -13.5},
	{25, -11},
	{20, -8.5},
	{15, -5.5},
}

// RestDelta by days of rest, first match wins. 2-3 days is neutral.
var RestDelta = []struct {
	MinDays, MaxDays int
	Delta            float64
}{
	{0, 0, -4},
	{1, 1, -1.5},
	{4, 7, 1.5},
	{8, 1 << 30, 2.5},
}
