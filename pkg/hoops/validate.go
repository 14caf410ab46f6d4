package hoops

import (
	"fmt"
	"strings"
)

// ValidationError reports a missing or out of range required field.
// No stage runs when one is returned.
type ValidationError struct {
	Team   string `json:"team"`
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s %s", e.Team, e.Field, e.Reason)
}

// Validate checks the required subset of both profiles.
// A zero value counts as missing, which matches how the ingestion layer leaves
// cells it could not read.
func Validate(team1, team2 TeamProfile) error {
	if err := validateProfile("team1", team1); err != nil {
		return err
	}
	return validateProfile("team2", team2)
}

func validateProfile(slot string, t TeamProfile) error {
	label := slot
	if name := strings.TrimSpace(t.Name); name != "" {
		label = fmt.Sprintf("%s (%s)", slot, name)
	}
	fail := func(field, reason string) error {
		return &ValidationError{Team: label, Field: field, Reason: reason}
	}

	switch {
	case strings.TrimSpace(t.Name) == "":
		return fail("name", "is required")
	case t.PPG == 0:
		return fail("ppg", "is required")
	case !InScoringRange(t.PPG):
		return fail("ppg", fmt.Sprintf("%.1f is outside [%.0f, %.0f]", t.PPG, MinPPG, MaxPPG))
	case t.PointsAllowed == 0:
		return fail("pointsAllowed", "is required")
	case !InScoringRange(t.PointsAllowed):
		return fail("pointsAllowed", fmt.Sprintf("%.1f is outside [%.0f, %.0f]", t.PointsAllowed, MinPPG, MaxPPG))
	case t.DefenseRank == 0:
		return fail("defenseRank", "is required")
	case t.DefenseRank < 1 || t.DefenseRank > LeagueSize:
		return fail("defenseRank", fmt.Sprintf("%d is outside [1, %d]", t.DefenseRank, LeagueSize))
	}
	return nil
}

// InScoringRange reports whether a per-game points value lies in
// [MinPPG, MaxPPG]. NaN and infinities are out of range.
func InScoringRange(v float64) bool {
	return v >= MinPPG && v <= MaxPPG
}
