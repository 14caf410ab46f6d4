package prompts

import "github.com/richard-senior/hoops/pkg/protocol"

const (
	ExtractTeamProfile = "extract-team-profile"
	ExplainPrediction  = "explain-prediction"
)

const extractContent = `Read the statistics below and build the input for the hoops_predict tool.

Matchup: {{team1}} vs {{team2}}
Game site from {{team1}}'s point of view: {{location}}

Return a single JSON object and nothing else:
{
  "team1": <profile>,
  "team2": <profile>,
  "context": {
    "location": "home" | "away" | "neutral",
    "conference": true | false,
    "team1": {"restDays": <int>, "travelMiles": <number>, "injuries": {"topScorer": <bool>, "playmaker": <bool>, "rolePlayer": <bool>}},
    "team2": { same fields as team1 }
  }
}

A <profile> has these fields:
  name           string, required
  ppg            points scored per game, required
  pointsAllowed  points allowed per game, required
  defenseRank    national scoring defense rank 1-363 (1 is best), required
  fgPct          field goal percentage as a fraction, 0.452 not 45.2
  threePct, ftPct  as fgPct
  offenseRank    national scoring offense rank 1-363
  strengthRank   overall rating rank such as NET or KenPom, 1-363
  homeRecord, awayRecord, neutralRecord  {"wins": <int>, "losses": <int>}
  winStreak, lossStreak  current streak length, set at most one of them
  last5Ppg       points per game over the last five games
  firstHalfPpg   first half points per game

Leave out any optional field the source does not state. Do not estimate or invent values,
missing fields are handled by the model. If a required field is missing say which one
instead of returning JSON.

Source ({{source}}):
{{stats}}`

const explainContent = `Explain this basketball score prediction to a {{audience}} reader.

{{prediction}}

Cover the predicted score and winner, then walk through the breakdown: which stages moved
the scores most (pace, defense matchup, location, form, conference, cruise control, elite
caps, situation, mismatch adjustments, close game bonus). If mismatch reasons are listed,
say what they mean. Keep it under 200 words and do not restate every number.`

func builtinPrompts() []protocol.Prompt {
	return []protocol.Prompt{
		{
			Name:        ExtractTeamProfile,
			Description: "Turn unstructured statistics text into hoops_predict input",
			Content:     extractContent,
			Arguments: []protocol.PromptArgument{
				{Name: "team1", Description: "First team, the location is from its point of view", Required: true},
				{Name: "team2", Description: "Second team", Required: true},
				{Name: "stats", Description: "Statistics text, e.g. hoops_stats_markdown output", Required: true},
				{Name: "location", Description: "home, away or neutral"},
				{Name: "source", Description: "Where the statistics came from"},
			},
		},
		{
			Name:        ExplainPrediction,
			Description: "Explain a hoops_predict result in plain language",
			Content:     explainContent,
			Arguments: []protocol.PromptArgument{
				{Name: "prediction", Description: "The hoops_predict JSON output", Required: true},
				{Name: "audience", Description: "casual, bettor or analyst"},
			},
		},
	}
}
