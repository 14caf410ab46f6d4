package hoops

import "math"

// TeamResult is one side of a prediction
type TeamResult struct {
	Name      string  `json:"name"`
	FullGame  int     `json:"fullGame"`
	FirstHalf int     `json:"firstHalf"`
	IsWinner  bool    `json:"isWinner"`
	Raw       float64 `json:"raw"`
}

// Breakdown records what every stage contributed to each team
type Breakdown struct {
	Base            Delta `json:"base"`
	Pace            Delta `json:"pace"`
	Form            Delta `json:"form"`
	Defense         Delta `json:"defense"`
	Location        Delta `json:"location"`
	Conference      Delta `json:"conference"`
	Preliminary     Delta `json:"preliminary"`
	CruiseControl   Delta `json:"cruiseControl"`
	EliteCap        Delta `json:"eliteCap"`
	Contextual      Delta `json:"contextual"`
	ExtremeMismatch Delta `json:"extremeMismatch"`
	CloseGame       Delta `json:"closeGame"`
}

// Prediction is the engine output. Tie is set when the rounded scores are equal, in
// which case neither team is the winner.
type Prediction struct {
	ModelVersion string       `json:"modelVersion"`
	Team1        TeamResult   `json:"team1"`
	Team2        TeamResult   `json:"team2"`
	Total        int          `json:"total"`
	Margin       int          `json:"margin"`
	Tie          bool         `json:"tie"`
	Breakdown    Breakdown    `json:"breakdown"`
	Mismatch     MismatchPlan `json:"mismatch"`
}

// Winner returns the winning team's result, nil on a tie
func (p *Prediction) Winner() *TeamResult {
	switch {
	case p.Team1.IsWinner:
		return &p.Team1
	case p.Team2.IsWinner:
		return &p.Team2
	default:
		return nil
	}
}

// FirstHalfShare picks the share of the full game scored before half time
func FirstHalfShare(t TeamProfile) float64 {
	ratio := t.firstHalfRatio()
	switch {
	case ratio >= FastStartRatio:
		return FastStartShare
	case ratio < SlowStartRatio:
		return SlowStartShare
	default:
		return NormalShare
	}
}

func compose(t1, t2 TeamProfile, final tally, bd Breakdown, plan MismatchPlan) *Prediction {
	full1 := int(math.Round(final.team1))
	full2 := int(math.Round(final.team2))

	margin := full1 - full2
	if margin < 0 {
		margin = -margin
	}

	return &Prediction{
		ModelVersion: ModelVersion,
		Team1: TeamResult{
			Name:      t1.Name,
			FullGame:  full1,
			FirstHalf: int(math.Round(float64(full1) * FirstHalfShare(t1))),
			IsWinner:  full1 > full2,
			Raw:       final.team1,
		},
		Team2: TeamResult{
			Name:      t2.Name,
			FullGame:  full2,
			FirstHalf: int(math.Round(float64(full2) * FirstHalfShare(t2))),
			IsWinner:  full2 > full1,
			Raw:       final.team2,
		},
		Total:     full1 + full2,
		Margin:    margin,
		Tie:       full1 == full2,
		Breakdown: bd,
		Mismatch:  plan,
	}
}
