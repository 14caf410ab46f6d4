package hoops

import "math"

// ContextDelta sums rest, travel and injury effects for one team
func ContextDelta(s Situation) float64 {
	var delta float64
	days := s.restDays()
	for _, r := range RestDelta {
		if days >= r.MinDays && days <= r.MaxDays {
			delta += r.Delta
			break
		}
	}
	if s.TravelMiles >= LongTravelMiles {
		delta += LongTravelPenalty
	}
	if s.Injuries.TopScorer {
		delta += InjuryTopScorer
	}
	if s.Injuries.Playmaker {
		delta += InjuryPlaymaker
	}
	if s.Injuries.RolePlayer {
		delta += InjuryRolePlayer
	}
	return delta
}

func contextualStage(game GameContext) Delta {
	return Delta{Team1: ContextDelta(game.Team1), Team2: ContextDelta(game.Team2)}
}

// CloseGameSplit divides the close game bonus, the home side taking the larger share
func CloseGameSplit(site Location) Delta {
	home := CloseGameBonus * CloseGameHomeShare
	road := CloseGameBonus - home
	switch site {
	case LocationHome:
		return Delta{Team1: home, Team2: road}
	case LocationAway:
		return Delta{Team1: road, Team2: home}
	default:
		return split(CloseGameBonus)
	}
}

func closeGameStage(s tally, site Location) Delta {
	if math.Abs(s.margin()) >= CloseGameMargin {
		return Delta{}
	}
	return CloseGameSplit(site)
}
