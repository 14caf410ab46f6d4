package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/richard-senior/hoops/internal/logger"
	"github.com/richard-senior/hoops/pkg/hoops"
	"github.com/richard-senior/hoops/pkg/protocol"
)

// PredictRequest names each team either inline or by an imported team name
type PredictRequest struct {
	Team1     *hoops.TeamProfile `json:"team1,omitempty"`
	Team2     *hoops.TeamProfile `json:"team2,omitempty"`
	Team1Name string             `json:"team1Name,omitempty"`
	Team2Name string             `json:"team2Name,omitempty"`
	Context   hoops.GameContext  `json:"context"`
}

// PredictResponse is the engine output plus a one line summary
type PredictResponse struct {
	*hoops.Prediction
	Summary string `json:"summary"`
}

var recordSchema = protocol.ToolProperty{
	Type: "object",
	Properties: map[string]protocol.ToolProperty{
		"wins":   {Type: "integer"},
		"losses": {Type: "integer"},
	},
}

var profileSchema = protocol.ToolProperty{
	Type:        "object",
	Description: "Season statistics. name, ppg, pointsAllowed and defenseRank are required",
	Properties: map[string]protocol.ToolProperty{
		"name":          {Type: "string"},
		"ppg":           {Type: "number", Description: "Points scored per game"},
		"pointsAllowed": {Type: "number", Description: "Points allowed per game"},
		"defenseRank":   {Type: "integer", Description: "Scoring defense rank 1-363, 1 is best"},
		"fgPct":         {Type: "number", Description: "Field goal percentage as a fraction"},
		"threePct":      {Type: "number"},
		"ftPct":         {Type: "number"},
		"offenseRank":   {Type: "integer", Description: "Scoring offense rank 1-363"},
		"strengthRank":  {Type: "integer", Description: "Overall rating rank (NET, KenPom) 1-363"},
		"homeRecord":    recordSchema,
		"awayRecord":    recordSchema,
		"neutralRecord": recordSchema,
		"winStreak":     {Type: "integer"},
		"lossStreak":    {Type: "integer"},
		"last5Ppg":      {Type: "number", Description: "Points per game over the last five games"},
		"firstHalfPpg":  {Type: "number"},
	},
}

var situationSchema = protocol.ToolProperty{
	Type: "object",
	Properties: map[string]protocol.ToolProperty{
		"restDays":    {Type: "integer", Description: "Days since the last game, default 2"},
		"travelMiles": {Type: "number"},
		"injuries": {
			Type: "object",
			Properties: map[string]protocol.ToolProperty{
				"topScorer":  {Type: "boolean"},
				"playmaker":  {Type: "boolean"},
				"rolePlayer": {Type: "boolean"},
			},
		},
	},
}

var contextSchema = protocol.ToolProperty{
	Type:        "object",
	Description: "Game circumstances, location is from team1's point of view",
	Properties: map[string]protocol.ToolProperty{
		"location":   {Type: "string", Enum: []string{"home", "away", "neutral"}},
		"conference": {Type: "boolean", Description: "Conference game"},
		"team1":      situationSchema,
		"team2":      situationSchema,
	},
}

var predictProperties = map[string]protocol.ToolProperty{
	"team1":     profileSchema,
	"team2":     profileSchema,
	"team1Name": {Type: "string", Description: "Name of an imported team, used when team1 is not given"},
	"team2Name": {Type: "string", Description: "Name of an imported team, used when team2 is not given"},
	"context":   contextSchema,
}

func PredictTool() protocol.Tool {
	return protocol.Tool{
		Name: "hoops_predict",
		Description: `
		Predicts the full game and first half score of a college basketball game between two teams.
		Give each team either as a statistics object (team1/team2) or as the name of a team
		previously imported with hoops_import_stats (team1Name/team2Name).
		The result includes the per stage breakdown of how each score was reached.
		`,
		InputSchema: protocol.InputSchema{
			Type:       "object",
			Properties: predictProperties,
			Required:   []string{},
		},
	}
}

// Predict resolves both teams and runs the engine
func (tb *Toolbox) Predict(ctx context.Context, req PredictRequest) (*PredictResponse, error) {
	m, err := tb.resolve(ctx, req)
	if err != nil {
		return nil, err
	}
	p, err := hoops.Predict(m.Team1, m.Team2, m.Game)
	if err != nil {
		return nil, err
	}
	logger.Info("Predicted", Summarize(p))
	return &PredictResponse{Prediction: p, Summary: Summarize(p)}, nil
}

func (tb *Toolbox) HandlePredict(ctx context.Context, params any) (any, error) {
	var req PredictRequest
	if err := decodeArgs(params, &req); err != nil {
		return nil, err
	}
	return tb.Predict(ctx, req)
}

func PredictBatchTool() protocol.Tool {
	return protocol.Tool{
		Name: "hoops_predict_batch",
		Description: `
		Predicts several games at once, e.g. a full day's slate. Each entry of matchups takes the
		same fields as hoops_predict. Results come back in the same order; a matchup with bad
		input carries an error and does not stop the others.
		`,
		InputSchema: protocol.InputSchema{
			Type: "object",
			Properties: map[string]protocol.ToolProperty{
				"matchups": {
					Type:  "array",
					Items: &protocol.ToolProperty{Type: "object", Properties: predictProperties},
				},
			},
			Required: []string{"matchups"},
		},
	}
}

// BatchRequest is the argument of hoops_predict_batch
type BatchRequest struct {
	Matchups []PredictRequest `json:"matchups"`
}

// BatchResponse holds one result per matchup, in order
type BatchResponse struct {
	Results   []hoops.BatchResult `json:"results"`
	Succeeded int                 `json:"succeeded"`
	Failed    int                 `json:"failed"`
}

// PredictBatch resolves and predicts every matchup. Teams that cannot be
// resolved fail only their own matchup.
func (tb *Toolbox) PredictBatch(ctx context.Context, req BatchRequest) (*BatchResponse, error) {
	if len(req.Matchups) == 0 {
		return nil, invalidArgs("matchups must not be empty")
	}

	results := make([]hoops.BatchResult, len(req.Matchups))
	var matchups []hoops.Matchup
	var positions []int
	for i, r := range req.Matchups {
		m, err := tb.resolve(ctx, r)
		if err != nil {
			results[i] = hoops.BatchResult{Index: i, Error: err.Error(), Err: err}
			continue
		}
		matchups = append(matchups, m)
		positions = append(positions, i)
	}

	predicted, err := hoops.PredictBatch(ctx, matchups, tb.cfg.BatchLimit)
	if err != nil {
		return nil, err
	}
	for j, r := range predicted {
		r.Index = positions[j]
		results[positions[j]] = r
	}

	resp := &BatchResponse{Results: results}
	for _, r := range results {
		if r.Prediction != nil {
			resp.Succeeded++
		} else {
			resp.Failed++
		}
	}
	logger.Info("Batch predicted", resp.Succeeded, "failed", resp.Failed)
	return resp, nil
}

func (tb *Toolbox) HandlePredictBatch(ctx context.Context, params any) (any, error) {
	var req BatchRequest
	if err := decodeArgs(params, &req); err != nil {
		return nil, err
	}
	return tb.PredictBatch(ctx, req)
}

func (tb *Toolbox) resolve(ctx context.Context, req PredictRequest) (hoops.Matchup, error) {
	t1, err := tb.team(ctx, "team1", req.Team1, req.Team1Name)
	if err != nil {
		return hoops.Matchup{}, err
	}
	t2, err := tb.team(ctx, "team2", req.Team2, req.Team2Name)
	if err != nil {
		return hoops.Matchup{}, err
	}
	return hoops.Matchup{Team1: t1, Team2: t2, Game: req.Context}, nil
}

func (tb *Toolbox) team(ctx context.Context, label string, inline *hoops.TeamProfile, name string) (hoops.TeamProfile, error) {
	if inline != nil {
		return *inline, nil
	}
	if strings.TrimSpace(name) == "" {
		return hoops.TeamProfile{}, invalidArgs("%s or %sName is required", label, label)
	}
	if tb.store == nil {
		return hoops.TeamProfile{}, fmt.Errorf("%s %q: %w", label, name, ErrNoStore)
	}
	sp, err := tb.store.FindProfile(ctx, name)
	if err != nil {
		return hoops.TeamProfile{}, fmt.Errorf("%s: %w", label, err)
	}
	return sp.Profile, nil
}

// Summarize renders a prediction as "Duke 78 - 70 Houston (total 148, Duke by 8)"
func Summarize(p *hoops.Prediction) string {
	s := fmt.Sprintf("%s %d - %d %s (total %d", p.Team1.Name, p.Team1.FullGame, p.Team2.FullGame, p.Team2.Name, p.Total)
	if p.Tie {
		return s + ", tie)"
	}
	return s + fmt.Sprintf(", %s by %d)", p.Winner().Name, p.Margin)
}
