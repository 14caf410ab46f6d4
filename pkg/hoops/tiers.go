package hoops

// PaceCategory buckets a team's PPG into a possession rate
type PaceCategory int

const (
	PaceVeryFast PaceCategory = iota
	PaceFast
	PaceAverage
	PaceSlow
	PaceVerySlow
)

var paceCategoryNames = [...]string{"VeryFast", "Fast", "Average", "Slow", "VerySlow"}

func (p PaceCategory) String() string { return paceCategoryNames[p] }

// possession-rate midpoint for each pace category
var paceMidpoints = [...]float64{
	PaceVeryFast: 78,
	PaceFast:     73.5,
	PaceAverage:  69.5,
	PaceSlow:     66,
	PaceVerySlow: 63,
}

// ClassifyPace maps PPG to a pace category
func ClassifyPace(ppg float64) PaceCategory {
	switch {
	case ppg >= 85:
		return PaceVeryFast
	case ppg >= 78:
		return PaceFast
	case ppg >= 70:
		return PaceAverage
	case ppg >= 65:
		return PaceSlow
	default:
		return PaceVerySlow
	}
}

// Midpoint is the possession rate used for the pace gap
func (p PaceCategory) Midpoint() float64 { return paceMidpoints[p] }

// PaceDifferential buckets the absolute gap between two possession rates
type PaceDifferential int

const (
	PaceNeutral PaceDifferential = iota
	PaceModerate
	PaceMajor
	PaceExtreme
)

var paceDifferentialNames = [...]string{"Neutral", "Moderate", "Major", "Extreme"}

func (d PaceDifferential) String() string { return paceDifferentialNames[d] }

func ClassifyPaceDifferential(gap float64) PaceDifferential {
	if gap < 0 {
		gap = -gap
	}
	switch {
	case gap < 6:
		return PaceNeutral
	case gap < 11:
		return PaceModerate
	case gap < 16:
		return PaceMajor
	default:
		return PaceExtreme
	}
}

// CoarseDefense is the 3-level defense classification used by the pace stage.
// The defense matrix stage uses the finer DefenseTier instead.
type CoarseDefense int

const (
	CoarseElite CoarseDefense = iota
	CoarseGood
	CoarseAveragePoor
)

var coarseDefenseNames = [...]string{"Elite", "Good", "AveragePoor"}

func (c CoarseDefense) String() string { return coarseDefenseNames[c] }

func ClassifyCoarseDefense(rank int) CoarseDefense {
	switch {
	case rank <= 30:
		return CoarseElite
	case rank <= 110:
		return CoarseGood
	default:
		return CoarseAveragePoor
	}
}

// CombinedDefense describes both defenses together
type CombinedDefense int

const (
	BothEliteGood CombinedDefense = iota
	OneGood
	BothAveragePoor
)

var combinedDefenseNames = [...]string{"BothEliteGood", "OneGood", "BothAveragePoor"}

func (c CombinedDefense) String() string { return combinedDefenseNames[c] }

func CombineDefense(a, b CoarseDefense) CombinedDefense {
	strongA := a != CoarseAveragePoor
	strongB := b != CoarseAveragePoor
	switch {
	case strongA && strongB:
		return BothEliteGood
	case strongA || strongB:
		return OneGood
	default:
		return BothAveragePoor
	}
}

// OffenseTier combines offense rank and field goal percentage
type OffenseTier int

const (
	OffenseElite OffenseTier = iota
	OffenseGood
	OffenseAverage
	OffensePoor
)

var offenseTierNames = [...]string{"Elite", "Good", "Average", "Poor"}

func (o OffenseTier) String() string { return offenseTierNames[o] }

func ClassifyOffense(rank int, fgPct float64) OffenseTier {
	switch {
	case rank <= 100 && fgPct >= 0.48:
		return OffenseElite
	case rank <= 200 && fgPct >= 0.45:
		return OffenseGood
	case rank <= 300:
		return OffenseAverage
	default:
		return OffensePoor
	}
}

// DefenseTier is the 7-level defense classification, by rank alone
type DefenseTier int

const (
	DefenseElite DefenseTier = iota
	DefenseVeryGood
	DefenseGood
	DefenseAverage
	DefenseBelowAverage
	DefensePoor
	DefenseTerrible
)

var defenseTierNames = [...]string{"Elite", "VeryGood", "Good", "Average", "BelowAverage", "Poor", "Terrible"}

func (d DefenseTier) String() string { return defenseTierNames[d] }

func ClassifyDefense(rank int) DefenseTier {
	switch {
	case rank <= 30:
		return DefenseElite
	case rank <= 70:
		return DefenseVeryGood
	case rank <= 110:
		return DefenseGood
	case rank <= 180:
		return DefenseAverage
	case rank <= 250:
		return DefenseBelowAverage
	case rank <= 320:
		return DefensePoor
	default:
		return DefenseTerrible
	}
}

// AwayRecordTier grades a visitor's road record
type AwayRecordTier int

const (
	AwayWeak AwayRecordTier = iota
	AwayMiddling
	AwayStrong
)

var awayRecordNames = [...]string{"Weak", "Middling", "Strong"}

func (a AwayRecordTier) String() string { return awayRecordNames[a] }

// ClassifyAwayRecord treats a missing or empty road record as middling
func ClassifyAwayRecord(r *Record) AwayRecordTier {
	if r == nil || r.Games() == 0 {
		return AwayMiddling
	}
	rate, _ := r.WinRate()
	switch {
	case rate < 0.25 || (r.Wins == 0 && r.Games() >= 3):
		return AwayWeak
	case rate >= 0.60:
		return AwayStrong
	default:
		return AwayMiddling
	}
}

// OpponentTier grades the opponent by overall strength rank
type OpponentTier int

const (
	OpponentTop OpponentTier = iota
	OpponentMid
	OpponentWeak
)

var opponentTierNames = [...]string{"Top", "Mid", "Weak"}

func (o OpponentTier) String() string { return opponentTierNames[o] }

func ClassifyOpponent(strengthRank int) OpponentTier {
	switch {
	case strengthRank <= 50:
		return OpponentTop
	case strengthRank <= 150:
		return OpponentMid
	default:
		return OpponentWeak
	}
}
