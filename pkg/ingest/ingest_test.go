package ingest

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/richard-senior/hoops/pkg/hoops"
)

func TestResolveHeader(t *testing.T) {
	cases := map[string]Field{
		"Team":                   FieldName,
		"PPG":                    FieldPPG,
		"Pts/G":                  FieldPPG,
		"Points Per Game":        FieldPPG,
		"Points Per Game (2025)": FieldPPG,
		"Opp PPG":                FieldPointsAllowed,
		"PA/G":                   FieldPointsAllowed,
		"Def. Rank":              FieldDefenseRank,
		"FG%":                    FieldFGPct,
		"3P%":                    FieldThreePct,
		"FT %":                   FieldFTPct,
		"NET":                    FieldStrengthRank,
		"NET Rank":               FieldStrengthRank,
		"Road":                   FieldAwayRecord,
		"Neutral":                FieldNeutralRecord,
		"Strk":                   FieldStreak,
		"L5 PPG":                 FieldLast5PPG,
		"1st Half PPG":           FieldFirstHalfPPG,
		"Défense Rank":           FieldDefenseRank,
	}
	for header, want := range cases {
		got, ok := ResolveHeader(header)
		assert.True(t, ok, header)
		assert.Equal(t, want, got, header)
	}

	for _, header := range []string{"", "Rk", "W", "Coach", "PA Diff"} {
		_, ok := ResolveHeader(header)
		assert.False(t, ok, header)
	}
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "st johns ny", NormalizeName("St. John's (NY)"))
	assert.Equal(t, "texas a&m", NormalizeName("  Texas   A&M "))
	assert.Equal(t, "san jose state", NormalizeName("San José State"))
}

func TestCellParsers(t *testing.T) {
	v, err := ParsePercent("48.2%")
	require.NoError(t, err)
	assert.InDelta(t, 0.482, v, 1e-9)
	v, err = ParsePercent("48.2")
	require.NoError(t, err)
	assert.InDelta(t, 0.482, v, 1e-9)
	v, err = ParsePercent(".482")
	require.NoError(t, err)
	assert.InDelta(t, 0.482, v, 1e-9)
	_, err = ParsePercent("148%")
	assert.Error(t, err)

	n, err := ParseRank("#12")
	require.NoError(t, err)
	assert.Equal(t, 12, n)
	n, err = ParseRank("T-7")
	require.NoError(t, err)
	assert.Equal(t, 7, n)
	n, err = ParseRank("3rd")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	_, err = ParseRank("400")
	assert.Error(t, err)

	rec, err := ParseRecord("12-3")
	require.NoError(t, err)
	assert.Equal(t, hoops.Record{Wins: 12, Losses: 3}, rec)
	rec, err = ParseRecord("(4–11)")
	require.NoError(t, err)
	assert.Equal(t, hoops.Record{Wins: 4, Losses: 11}, rec)

	win, loss, err := ParseStreak("W4")
	require.NoError(t, err)
	assert.Equal(t, 4, win)
	assert.Zero(t, loss)
	win, loss, err = ParseStreak("Lost 2")
	require.NoError(t, err)
	assert.Zero(t, win)
	assert.Equal(t, 2, loss)
	win, loss, err = ParseStreak("-3")
	require.NoError(t, err)
	assert.Zero(t, win)
	assert.Equal(t, 3, loss)
	_, _, err = ParseStreak("hot")
	assert.Error(t, err)

	assert.Equal(t, "Houston", CleanTeamName("#4 Houston (1)"))
	assert.Equal(t, "Duke", CleanTeamName("12. Duke (25-4)"))
}

const statsCSV = "\ufeffTeam,PPG,Opp PPG,Def Rank,FG%,Off Rank,NET,Home,Away,Neutral,Streak,L5 PPG\n" +
	"Houston,74.1,57.9,2,45.9%,120,1,15-1,9-3,3-1,W4,71.0\n" +
	"Chicago State,64.0,77.5,330,40.1,340,361,5-9,1-14,0-2,L6,\n" +
	"Mystery U,,70.0,100,,,,,,,,\n" +
	"oops\n"

func TestParseCSV(t *testing.T) {
	rep, err := ParseCSV(statsCSV)
	require.NoError(t, err)

	require.Len(t, rep.Profiles, 2)
	h := rep.Profiles[0]
	assert.Equal(t, "Houston", h.Name)
	assert.Equal(t, 74.1, h.PPG)
	assert.Equal(t, 57.9, h.PointsAllowed)
	assert.Equal(t, 2, h.DefenseRank)
	require.NotNil(t, h.FGPct)
	assert.InDelta(t, 0.459, *h.FGPct, 1e-9)
	assert.Equal(t, 120, *h.OffenseRank)
	assert.Equal(t, 1, *h.StrengthRank)
	assert.Equal(t, &hoops.Record{Wins: 15, Losses: 1}, h.HomeRecord)
	assert.Equal(t, &hoops.Record{Wins: 3, Losses: 1}, h.NeutralRecord)
	assert.Equal(t, 4, h.WinStreak)
	assert.Equal(t, 71.0, *h.Last5PPG)

	cs := rep.Profiles[1]
	assert.Equal(t, 6, cs.LossStreak)
	assert.InDelta(t, 0.401, *cs.FGPct, 1e-9)
	assert.Nil(t, cs.Last5PPG)

	// the short row and the team with no ppg
	require.Len(t, rep.Skipped, 2)
	assert.Equal(t, "incomplete record", rep.Skipped[0].Reason)
	assert.Equal(t, "Mystery U", rep.Skipped[1].Team)
	assert.Contains(t, rep.Skipped[1].Reason, "ppg")

	assert.Equal(t, "pointsAllowed", rep.Columns["Opp PPG"])
	assert.Equal(t, 1, rep.Tables)

	// profiles go straight into the engine
	_, err = hoops.Predict(h, cs, hoops.GameContext{Location: hoops.LocationHome})
	assert.NoError(t, err)
}

func TestParseCSVRejectsNonFiniteCells(t *testing.T) {
	for _, cell := range []string{"NaN", "nan", "Inf", "-Infinity", "+inf"} {
		_, err := ParseNumber(cell)
		assert.Error(t, err, cell)
	}

	rep, err := ParseCSV("Team,PPG,Opp PPG,Def Rank\n" +
		"Duke,NaN,65,10\n" +
		"Kansas,75,Inf,20\n" +
		"Baylor,78.5,66.1,30\n")
	require.NoError(t, err)
	require.Len(t, rep.Profiles, 1)
	assert.Equal(t, "Baylor", rep.Profiles[0].Name)

	require.Len(t, rep.Skipped, 2)
	assert.Equal(t, "Duke", rep.Skipped[0].Team)
	assert.Contains(t, rep.Skipped[0].Reason, "ppg")
	assert.Equal(t, "Kansas", rep.Skipped[1].Team)
	assert.Contains(t, rep.Skipped[1].Reason, "pointsAllowed")

	_, err = json.Marshal(rep)
	assert.NoError(t, err)
}

func TestParseCSVWithoutTeamColumn(t *testing.T) {
	_, err := ParseCSV("PPG,Opp PPG\n70,70\n")
	assert.Error(t, err)
}

const statsHTML = `<html><body>
<table id="offense">
  <thead>
    <tr><th colspan="2">Offense</th><th></th></tr>
    <tr><th>School</th><th>Pts/G</th><th>FG%</th></tr>
  </thead>
  <tbody>
    <tr><td><a href="/duke">Duke</a></td><td>83.4</td><td>.497</td></tr>
    <tr class="thead"><td>School</td><td>Pts/G</td><td>FG%</td></tr>
    <tr><td>Auburn</td><td>84.1</td><td>.491</td></tr>
  </tbody>
</table>
<table id="defense">
  <tr><td>Team</td><td>PA/G</td><td>Def Rank</td><td>FG%</td></tr>
  <tr><td>#1 Duke (1)</td><td>61.2</td><td>4</td><td>.380</td></tr>
  <tr><td>Auburn</td><td>70.0</td><td>88</td><td>.420</td></tr>
</table>
<table id="nav"><tr><td>Home</td><td>Schedule</td></tr></table>
</body></html>`

func TestParseHTMLMergesTables(t *testing.T) {
	rep, err := ParseHTML(statsHTML)
	require.NoError(t, err)

	assert.Equal(t, 2, rep.Tables)
	require.Len(t, rep.Profiles, 2)
	assert.Empty(t, rep.Skipped)

	duke := rep.Profiles[0]
	assert.Equal(t, "Duke", duke.Name)
	assert.Equal(t, 83.4, duke.PPG)
	assert.Equal(t, 61.2, duke.PointsAllowed)
	assert.Equal(t, 4, duke.DefenseRank)
	// first table wins, the defense table's FG% is opponent shooting
	assert.InDelta(t, 0.497, *duke.FGPct, 1e-9)

	assert.Equal(t, "Auburn", rep.Profiles[1].Name)
	assert.Equal(t, 88, rep.Profiles[1].DefenseRank)
}

func TestParseHTMLNoTables(t *testing.T) {
	rep, err := ParseHTML("<p>nothing here</p>")
	require.NoError(t, err)
	assert.Empty(t, rep.Profiles)
	assert.Zero(t, rep.Tables)
}
