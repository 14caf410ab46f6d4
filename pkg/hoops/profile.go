package hoops

// Record is a win-loss split (home, away or neutral site)
type Record struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
}

// Games returns the number of games in the split
func (r Record) Games() int {
	return r.Wins + r.Losses
}

// WinRate returns wins/games, ok is false when no games have been played
func (r Record) WinRate() (float64, bool) {
	g := r.Games()
	if g <= 0 {
		return 0, false
	}
	return float64(r.Wins) / float64(g), true
}

// TeamProfile is a team's season statistical record.
// Name, PPG, PointsAllowed and DefenseRank are required, everything else is optional
// and falls back to a neutral default when absent.
type TeamProfile struct {
	Name          string   `json:"name"`
	PPG           float64  `json:"ppg"`
	PointsAllowed float64  `json:"pointsAllowed"`
	DefenseRank   int      `json:"defenseRank"`
	FGPct         *float64 `json:"fgPct,omitempty"`
	ThreePct      *float64 `json:"threePct,omitempty"`
	FTPct         *float64 `json:"ftPct,omitempty"`
	OffenseRank   *int     `json:"offenseRank,omitempty"`
	StrengthRank  *int     `json:"strengthRank,omitempty"`
	HomeRecord    *Record  `json:"homeRecord,omitempty"`
	AwayRecord    *Record  `json:"awayRecord,omitempty"`
	NeutralRecord *Record  `json:"neutralRecord,omitempty"`
	WinStreak     int      `json:"winStreak,omitempty"`
	LossStreak    int      `json:"lossStreak,omitempty"`
	Last5PPG      *float64 `json:"last5Ppg,omitempty"`
	FirstHalfPPG  *float64 `json:"firstHalfPpg,omitempty"`
}

// Float returns a pointer to v, for building profiles with optional fields
func Float(v float64) *float64 { return &v }

// Int returns a pointer to v
func Int(v int) *int { return &v }

/////////////////////////////////////////////////////////////////////////
////// Neutral defaults for optional fields
/////////////////////////////////////////////////////////////////////////

func (t TeamProfile) fgPct() float64 {
	return pctOrDefault(t.FGPct, DefaultFGPct)
}

func (t TeamProfile) offenseRank() int {
	return rankOrDefault(t.OffenseRank, DefaultOffenseRank)
}

func (t TeamProfile) strengthRank() int {
	return rankOrDefault(t.StrengthRank, DefaultStrengthRank)
}

// last5PPG defaults to the season average, which means no scoring trend
func (t TeamProfile) last5PPG() float64 {
	if t.Last5PPG == nil || !InScoringRange(*t.Last5PPG) {
		return t.PPG
	}
	return *t.Last5PPG
}

// firstHalfRatio is first-half average over season average
func (t TeamProfile) firstHalfRatio() float64 {
	if t.FirstHalfPPG == nil || *t.FirstHalfPPG <= 0 || !InScoringRange(*t.FirstHalfPPG) || t.PPG <= 0 {
		return DefaultFirstHalfRatio
	}
	return *t.FirstHalfPPG / t.PPG
}

func pctOrDefault(v *float64, def float64) float64 {
	if v == nil || !(*v >= 0 && *v <= 1) {
		return def
	}
	return *v
}

func rankOrDefault(v *int, def int) int {
	if v == nil || *v < 1 || *v > LeagueSize {
		return def
	}
	return *v
}

// winRate substitutes DefaultWinRate when the split is missing or empty
func winRate(r *Record) float64 {
	if r == nil {
		return DefaultWinRate
	}
	rate, ok := r.WinRate()
	if !ok {
		return DefaultWinRate
	}
	return rate
}
