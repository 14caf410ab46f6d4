package hoops

// Delta is a per-team pair of points
type Delta struct {
	Team1 float64 `json:"team1"`
	Team2 float64 `json:"team2"`
}

// Total of both sides
func (d Delta) Total() float64 { return d.Team1 + d.Team2 }

func (d Delta) plus(o Delta) Delta {
	return Delta{Team1: d.Team1 + o.Team1, Team2: d.Team2 + o.Team2}
}

// split divides a combined amount evenly between the teams
func split(total float64) Delta {
	return Delta{Team1: total / 2, Team2: total / 2}
}

// tally is the running score pair threaded through the pipeline.
// It is passed and returned by value so no stage can reach back into an earlier one.
type tally struct {
	team1, team2 float64
}

func (t tally) add(d Delta) tally {
	return tally{team1: t.team1 + d.Team1, team2: t.team2 + d.Team2}
}

// margin is team1 minus team2
func (t tally) margin() float64 { return t.team1 - t.team2 }

func (t tally) delta() Delta { return Delta{Team1: t.team1, Team2: t.team2} }

// diff returns the per-team change from t to next
func (t tally) diff(next tally) Delta {
	return Delta{Team1: next.team1 - t.team1, Team2: next.team2 - t.team2}
}
