package hoops

// ModelVersion identifies the coefficient set below. Any change to a constant or
// matrix in this package is a new model version.
const ModelVersion = "v2.2"

// LeagueSize is the number of ranked teams, ranks run 1..LeagueSize
const LeagueSize = 363

// Sane range for scoring averages
const (
	MinPPG = 0.0
	MaxPPG = 150.0
)

// PaceScalingFactor damps the pace matrix midpoint. This is the one knob that moves
// between model versions.
const PaceScalingFactor = 0.65

// Share of the pace adjustment given to the faster team
const FasterTeamPaceShare = 0.6

// Neutral defaults for missing optional fields
const (
	DefaultFGPct          = 0.45
	DefaultStrengthRank   = 100
	DefaultOffenseRank    = 182
	DefaultWinRate        = 0.5
	DefaultRestDays       = 2
	DefaultFirstHalfRatio = 0.48
)

// Recent form
const (
	TrendThreshold = 5.0
	TrendBonus     = 2.5
)

// Conference games cost this much in total, split evenly
const ConferencePenalty = -11.0

// Extreme mismatch
const (
	BottomTierRank        = 356
	BottomTierDelta       = 12.5
	MismatchFloor         = 48.0
	RankGapThreshold      = 200
	RankGapShift          = 17.5
	StatementOpponentRank = 314
	StatementMinStreak    = 3
	StatementBonus        = 10.0
	MaxLeaderScore        = 110.0
)

// Elite caps
const (
	EliteOffensePPG      = 85.0
	CapVsWeakDefense     = 90.0
	CapVsEliteDefense    = 74.0
	CapVsOtherDefense    = 82.5
	PoorOffensePPG       = 65.0
	PoorOffenseFGPct     = 0.40
	FloorVsEliteDefense  = 47.5
	FloorVsOtherDefense  = 52.5
	WeakDefenseRankAbove = 250
	EliteDefenseRankMax  = 30
)

// Contextual
const (
	LongTravelMiles   = 1000.0
	LongTravelPenalty = -1.5
	InjuryTopScorer   = -6.5
	InjuryPlaymaker   = -4.0
	InjuryRolePlayer  = -2.5
)

// Close game
const (
	CloseGameMargin    = 5.0
	CloseGameBonus     = 7.0
	CloseGameHomeShare = 0.55
)

// First half shares by firstHalfPPG / ppg
const (
	FastStartRatio = 0.52
	SlowStartRatio = 0.46
	FastStartShare = 0.50
	SlowStartShare = 0.46
	NormalShare    = 0.48
)
