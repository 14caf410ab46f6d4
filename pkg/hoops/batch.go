package hoops

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Matchup is one game to predict
type Matchup struct {
	Team1 TeamProfile `json:"team1"`
	Team2 TeamProfile `json:"team2"`
	Game  GameContext `json:"game"`
}

// BatchResult holds the prediction for matchup Index, or the reason it failed
type BatchResult struct {
	Index      int         `json:"index"`
	Prediction *Prediction `json:"prediction,omitempty"`
	Error      string      `json:"error,omitempty"`
	Err        error       `json:"-"`
}

// PredictBatch predicts independent matchups concurrently, at most limit at a time
// (limit <= 0 means GOMAXPROCS). Results come back in input order. A matchup that
// fails validation does not stop the others; only cancellation of ctx does.
func PredictBatch(ctx context.Context, matchups []Matchup, limit int) ([]BatchResult, error) {
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}
	results := make([]BatchResult, len(matchups))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, m := range matchups {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			p, err := Predict(m.Team1, m.Team2, m.Game)
			results[i] = BatchResult{Index: i, Prediction: p, Err: err}
			if err != nil {
				results[i].Error = err.Error()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
