// Package hoops is the v2.2 score prediction engine: a fixed sequence of adjustment
// stages over two team profiles and a game context. It is pure and safe for
// concurrent use.
package hoops

// Predict runs the full pipeline. It returns a *ValidationError and does no work
// when a required field is missing or out of range.
func Predict(team1, team2 TeamProfile, game GameContext) (*Prediction, error) {
	if err := Validate(team1, team2); err != nil {
		return nil, err
	}
	site := game.site()

	var bd Breakdown
	var s tally

	bd.Base = baseStage(team1, team2)
	s = s.add(bd.Base)

	bd.Pace = paceStage(team1, team2)
	s = s.add(bd.Pace)

	bd.Form = formStage(team1, team2)
	s = s.add(bd.Form)

	bd.Defense = defenseStage(team1, team2)
	s = s.add(bd.Defense)

	bd.Location = locationStage(team1, team2, site)
	s = s.add(bd.Location)

	bd.Conference = conferenceStage(game)
	s = s.add(bd.Conference)

	bd.Preliminary = s.delta()
	plan := planMismatch(team1, team2, s)

	if !plan.SkipCruiseControl {
		bd.CruiseControl = cruiseControlStage(s)
		s = s.add(bd.CruiseControl)
	}

	if !plan.SkipEliteCaps {
		bd.EliteCap = eliteCapStage(team1, team2, s)
		s = s.add(bd.EliteCap)
	}

	bd.Contextual = contextualStage(game)
	s = s.add(bd.Contextual)

	after := applyMismatch(plan, s)
	bd.ExtremeMismatch = s.diff(after)
	s = after

	bd.CloseGame = closeGameStage(s, site)
	s = s.add(bd.CloseGame)

	return compose(team1, team2, s, bd, plan), nil
}
