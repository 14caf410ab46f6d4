package hoops

import "strings"

// Location is the game site from team 1's point of view
type Location string

const (
	LocationHome    Location = "home"
	LocationAway    Location = "away"
	LocationNeutral Location = "neutral"
)

// Injuries flags missing players, each flag is independent
type Injuries struct {
	TopScorer  bool `json:"topScorer,omitempty"`
	Playmaker  bool `json:"playmaker,omitempty"`
	RolePlayer bool `json:"rolePlayer,omitempty"`
}

// Situation is the per-team part of the game context
type Situation struct {
	RestDays    *int     `json:"restDays,omitempty"`
	TravelMiles float64  `json:"travelMiles,omitempty"`
	Injuries    Injuries `json:"injuries"`
}

// GameContext describes where and under what circumstances the game is played
type GameContext struct {
	Location   Location  `json:"location"`
	Conference bool      `json:"conference"`
	Team1      Situation `json:"team1"`
	Team2      Situation `json:"team2"`
}

// ParseLocation maps free text to a Location, anything unrecognised is neutral
func ParseLocation(s string) Location {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "home", "h":
		return LocationHome
	case "away", "a", "road":
		return LocationAway
	default:
		return LocationNeutral
	}
}

func (g GameContext) site() Location {
	return ParseLocation(string(g.Location))
}

func (s Situation) restDays() int {
	if s.RestDays == nil || *s.RestDays < 0 {
		return DefaultRestDays
	}
	return *s.RestDays
}
