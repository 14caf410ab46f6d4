package tools

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/richard-senior/hoops/internal/config"
	"github.com/richard-senior/hoops/pkg/hoops"
	"github.com/richard-senior/hoops/pkg/store"
	"github.com/richard-senior/hoops/pkg/transport"
)

type fakeFetcher struct {
	pages map[string]*transport.Page
	calls []string
}

func (f *fakeFetcher) Fetch(ctx context.Context, url string) (*transport.Page, error) {
	f.calls = append(f.calls, url)
	p, ok := f.pages[url]
	if !ok {
		return nil, &transport.StatusError{URL: url, Code: 404}
	}
	return p, nil
}

func newToolbox(t *testing.T, pages map[string]*transport.Page) (*Toolbox, *fakeFetcher) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "hoops.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	require.NoError(t, st.Migrate(context.Background()))

	f := &fakeFetcher{pages: pages}
	return NewToolbox(config.Default(), st, f), f
}

func teamA() *hoops.TeamProfile {
	return &hoops.TeamProfile{
		Name: "Team A", PPG: 84.3, PointsAllowed: 80.3, DefenseRank: 316,
		FGPct: hoops.Float(0.48), OffenseRank: hoops.Int(78), StrengthRank: hoops.Int(150),
	}
}

func teamB() *hoops.TeamProfile {
	return &hoops.TeamProfile{
		Name: "Team B", PPG: 69.1, PointsAllowed: 88.4, DefenseRank: 355,
		FGPct: hoops.Float(0.413), OffenseRank: hoops.Int(322), StrengthRank: hoops.Int(350),
	}
}

func TestPredictInline(t *testing.T) {
	tb, _ := newToolbox(t, nil)
	resp, err := tb.Predict(context.Background(), PredictRequest{
		Team1: teamA(), Team2: teamB(), Context: hoops.GameContext{Location: hoops.LocationHome},
	})
	require.NoError(t, err)
	assert.Equal(t, "Team A 103 - 60 Team B (total 163, Team A by 43)", resp.Summary)

	data, err := json.Marshal(resp)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, "v2.2", out["modelVersion"])
	assert.Contains(t, out, "breakdown")
	assert.Contains(t, out, "summary")
}

func TestPredictInputErrors(t *testing.T) {
	tb, _ := newToolbox(t, nil)
	ctx := context.Background()

	_, err := tb.Predict(ctx, PredictRequest{Team1: teamA()})
	assert.True(t, errors.Is(err, ErrInvalidArguments))
	assert.True(t, IsInvalidInput(err))

	bad := teamB()
	bad.DefenseRank = 0
	_, err = tb.Predict(ctx, PredictRequest{Team1: teamA(), Team2: bad})
	var ve *hoops.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "defenseRank", ve.Field)
	assert.True(t, IsInvalidInput(err))

	_, err = tb.Predict(ctx, PredictRequest{Team1: teamA(), Team2Name: "Nowhere State"})
	assert.True(t, errors.Is(err, store.ErrNotFound))
	assert.True(t, IsInvalidInput(err))

	noStore := NewToolbox(nil, nil, nil)
	_, err = noStore.Predict(ctx, PredictRequest{Team1: teamA(), Team2Name: "Team B"})
	assert.True(t, errors.Is(err, ErrNoStore))
	assert.False(t, IsInvalidInput(err))
}

const slateCSV = "Team,PPG,Opp PPG,Def Rank,NET\n" +
	"Team A,84.3,80.3,316,150\n" +
	"Team B,69.1,88.4,355,350\n"

func TestImportThenPredictByName(t *testing.T) {
	tb, _ := newToolbox(t, nil)
	ctx := context.Background()

	imp, err := tb.ImportStats(ctx, ImportRequest{CSV: slateCSV})
	require.NoError(t, err)
	require.NotNil(t, imp.Import)
	assert.Equal(t, 2, imp.Import.TeamCount)
	assert.Equal(t, "inline csv", imp.Source)
	assert.Empty(t, imp.Hint)

	resp, err := tb.Predict(ctx, PredictRequest{Team1Name: "team a", Team2Name: "TEAM B"})
	require.NoError(t, err)
	assert.Equal(t, "Team A", resp.Team1.Name)
	assert.Equal(t, "Team B", resp.Team2.Name)

	teams, err := tb.ListTeams(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, teams.Count)
	require.Len(t, teams.Imports, 1)
	assert.Equal(t, imp.Import.ID, teams.Imports[0].ID)
}

func TestImportStatsSources(t *testing.T) {
	html := `<html><head><title>Stats</title></head><body><table>
<tr><th>School</th><th>PPG</th><th>Opp PPG</th><th>Def Rank</th></tr>
<tr><td>Duke</td><td>83.4</td><td>61.2</td><td>4</td></tr></table></body></html>`
	tb, f := newToolbox(t, map[string]*transport.Page{
		"https://stats.example.org/teams":          {Body: []byte(html), ContentType: "text/html"},
		"https://stats.example.org/export.csv?y=1": {Body: []byte(slateCSV), ContentType: "application/octet-stream"},
		"https://stats.example.org/blog":           {Body: []byte("<p>Duke looked sharp</p>"), ContentType: "text/html"},
	})
	ctx := context.Background()

	resp, err := tb.ImportStats(ctx, ImportRequest{URL: "https://stats.example.org/teams"})
	require.NoError(t, err)
	require.Len(t, resp.Report.Profiles, 1)
	assert.Equal(t, "Duke", resp.Report.Profiles[0].Name)
	assert.Equal(t, "https://stats.example.org/teams", resp.Import.Source)

	resp, err = tb.ImportStats(ctx, ImportRequest{URL: "https://stats.example.org/export.csv?y=1", DryRun: true})
	require.NoError(t, err)
	assert.Len(t, resp.Report.Profiles, 2)
	assert.Nil(t, resp.Import)

	resp, err = tb.ImportStats(ctx, ImportRequest{URL: "https://stats.example.org/blog"})
	require.NoError(t, err)
	assert.Empty(t, resp.Report.Profiles)
	assert.Nil(t, resp.Import)
	assert.Contains(t, resp.Hint, "hoops_stats_markdown")

	assert.Len(t, f.calls, 3)

	_, err = tb.ImportStats(ctx, ImportRequest{})
	assert.True(t, IsInvalidInput(err))
	_, err = tb.ImportStats(ctx, ImportRequest{HTML: html, CSV: slateCSV})
	assert.True(t, IsInvalidInput(err))

	_, err = tb.ImportStats(ctx, ImportRequest{URL: "https://stats.example.org/missing"})
	var se *transport.StatusError
	assert.True(t, errors.As(err, &se))
}

func TestPredictBatchKeepsOrder(t *testing.T) {
	tb, _ := newToolbox(t, nil)
	ctx := context.Background()
	_, err := tb.ImportStats(ctx, ImportRequest{CSV: slateCSV})
	require.NoError(t, err)

	resp, err := tb.PredictBatch(ctx, BatchRequest{Matchups: []PredictRequest{
		{Team1: teamA(), Team2: teamB(), Context: hoops.GameContext{Location: hoops.LocationHome}},
		{Team1Name: "Team B", Team2Name: "Unknown U"},
		{Team1Name: "Team B", Team2Name: "Team A"},
	}})
	require.NoError(t, err)
	require.Len(t, resp.Results, 3)
	assert.Equal(t, 2, resp.Succeeded)
	assert.Equal(t, 1, resp.Failed)

	for i, r := range resp.Results {
		assert.Equal(t, i, r.Index)
	}
	assert.Equal(t, 103, resp.Results[0].Prediction.Team1.FullGame)
	assert.Nil(t, resp.Results[1].Prediction)
	assert.Contains(t, resp.Results[1].Error, "Unknown U")
	assert.Equal(t, "Team B", resp.Results[2].Prediction.Team1.Name)

	_, err = tb.PredictBatch(ctx, BatchRequest{})
	assert.True(t, IsInvalidInput(err))
}

func TestHandlersDecodeArguments(t *testing.T) {
	tb, _ := newToolbox(t, nil)
	var args map[string]any
	require.NoError(t, json.Unmarshal([]byte(`{
		"team1": {"name": "Team A", "ppg": 84.3, "pointsAllowed": 80.3, "defenseRank": 316, "fgPct": 0.48, "offenseRank": 78, "strengthRank": 150},
		"team2": {"name": "Team B", "ppg": 69.1, "pointsAllowed": 88.4, "defenseRank": 355, "fgPct": 0.413, "offenseRank": 322, "strengthRank": 350},
		"context": {"location": "home"}
	}`), &args))

	out, err := tb.HandlePredict(context.Background(), args)
	require.NoError(t, err)
	resp := out.(*PredictResponse)
	assert.Equal(t, 103, resp.Team1.FullGame)

	_, err = tb.HandlePredict(context.Background(), map[string]any{"team1": "not an object"})
	assert.True(t, IsInvalidInput(err))

	assert.Len(t, tb.Definitions(), 5)
	names := map[string]bool{}
	for _, d := range tb.Definitions() {
		names[d.Tool.Name] = true
		assert.True(t, strings.HasPrefix(d.Tool.Name, "hoops_"))
	}
	assert.Len(t, names, 5)
}

func TestStatsMarkdown(t *testing.T) {
	html := `<html><head><title> Duke Blue Devils Stats </title></head><body>
<h1>Duke</h1><p>Averaging <b>83.4</b> points. <a href="/schedule">Schedule</a></p>
<p>` + strings.Repeat("Defense travels. ", 20) + `</p></body></html>`
	tb, _ := newToolbox(t, map[string]*transport.Page{
		"https://stats.example.org/duke": {Body: []byte(html)},
	})

	resp, err := tb.StatsMarkdown(context.Background(), "https://stats.example.org/duke")
	require.NoError(t, err)
	assert.Equal(t, "Duke Blue Devils Stats", resp.Title)
	assert.Contains(t, resp.Markdown, "# Duke")
	assert.Contains(t, resp.Markdown, "**83.4**")
	assert.Contains(t, resp.Markdown, "https://stats.example.org/schedule")
	assert.False(t, resp.Truncated)

	tb.cfg.MarkdownMaxLength = 100
	resp, err = tb.StatsMarkdown(context.Background(), "https://stats.example.org/duke")
	require.NoError(t, err)
	assert.True(t, resp.Truncated)
	assert.True(t, strings.HasSuffix(resp.Markdown, truncatedNote))
	assert.Len(t, resp.Markdown, 100+len(truncatedNote))

	_, err = tb.StatsMarkdown(context.Background(), "")
	assert.True(t, IsInvalidInput(err))
}
