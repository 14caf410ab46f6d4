package tools

import (
	"context"
	"strings"

	"github.com/richard-senior/hoops/internal/logger"
	"github.com/richard-senior/hoops/pkg/ingest"
	"github.com/richard-senior/hoops/pkg/protocol"
	"github.com/richard-senior/hoops/pkg/store"
)

const noTablesHint = "No statistics table was recognised. Fetch the page with hoops_stats_markdown and use the " +
	"extract-team-profile prompt to build the teams by hand."

func ImportStatsTool() protocol.Tool {
	return protocol.Tool{
		Name: "hoops_import_stats",
		Description: `
		Imports team statistics from a web page or from pasted HTML or CSV text.
		Every table with a team column is read; columns such as PPG, Opp PPG, Def Rank, FG%, NET,
		Home/Away/Neutral records and streaks are recognised by their headers.
		Imported teams are saved so hoops_predict can be called with team names.
		Exactly one of url, html or csv must be given.
		`,
		InputSchema: protocol.InputSchema{
			Type: "object",
			Properties: map[string]protocol.ToolProperty{
				"url":    {Type: "string", Description: "Page or CSV file to fetch, e.g. https://www.sports-reference.com/cbb/seasons/men/2026-school-stats.html"},
				"html":   {Type: "string", Description: "HTML containing statistics tables"},
				"csv":    {Type: "string", Description: "CSV text with a header row"},
				"dryRun": {Type: "boolean", Description: "Parse and report without saving"},
			},
			Required: []string{},
		},
	}
}

// ImportRequest is the argument of hoops_import_stats
type ImportRequest struct {
	URL    string `json:"url,omitempty"`
	HTML   string `json:"html,omitempty"`
	CSV    string `json:"csv,omitempty"`
	DryRun bool   `json:"dryRun,omitempty"`
}

// ImportResponse reports what was read and saved
type ImportResponse struct {
	Source string         `json:"source"`
	Report *ingest.Report `json:"report"`
	Import *store.Import  `json:"import,omitempty"`
	Hint   string         `json:"hint,omitempty"`
}

// ImportStats parses the given source and saves the profiles found
func (tb *Toolbox) ImportStats(ctx context.Context, req ImportRequest) (*ImportResponse, error) {
	given := 0
	for _, s := range []string{req.URL, req.HTML, req.CSV} {
		if strings.TrimSpace(s) != "" {
			given++
		}
	}
	if given != 1 {
		return nil, invalidArgs("exactly one of url, html or csv is required")
	}

	var (
		rep    *ingest.Report
		source string
		err    error
	)
	switch {
	case req.URL != "":
		source = req.URL
		rep, err = tb.importURL(ctx, req.URL)
	case req.HTML != "":
		source = "inline html"
		rep, err = ingest.ParseHTML(req.HTML)
	default:
		source = "inline csv"
		rep, err = ingest.ParseCSV(req.CSV)
		if err != nil {
			err = invalidArgs("%v", err)
		}
	}
	if err != nil {
		return nil, err
	}

	resp := &ImportResponse{Source: source, Report: rep}
	if len(rep.Profiles) == 0 {
		resp.Hint = noTablesHint
		return resp, nil
	}
	if req.DryRun {
		return resp, nil
	}
	if tb.store == nil {
		return nil, ErrNoStore
	}
	imp, err := tb.store.SaveProfiles(ctx, source, rep.Profiles)
	if err != nil {
		return nil, err
	}
	resp.Import = imp
	logger.Info("Imported", len(rep.Profiles), "teams from", source, "skipped", len(rep.Skipped))
	return resp, nil
}

func (tb *Toolbox) importURL(ctx context.Context, url string) (*ingest.Report, error) {
	if tb.fetcher == nil {
		return nil, invalidArgs("fetching urls is not available, pass html or csv instead")
	}
	page, err := tb.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	if isCSV(page.ContentType, url) {
		return ingest.ParseCSV(string(page.Body))
	}
	return ingest.ParseHTML(string(page.Body))
}

func isCSV(contentType, url string) bool {
	ct := strings.ToLower(contentType)
	if strings.Contains(ct, "text/csv") || strings.Contains(ct, "application/csv") {
		return true
	}
	path, _, _ := strings.Cut(strings.ToLower(url), "?")
	return strings.HasSuffix(path, ".csv")
}

func (tb *Toolbox) HandleImportStats(ctx context.Context, params any) (any, error) {
	var req ImportRequest
	if err := decodeArgs(params, &req); err != nil {
		return nil, err
	}
	return tb.ImportStats(ctx, req)
}

func ListTeamsTool() protocol.Tool {
	return protocol.Tool{
		Name:        "hoops_list_teams",
		Description: "Lists the imported teams that hoops_predict accepts by name, with the imports they came from.",
		InputSchema: protocol.InputSchema{
			Type:       "object",
			Properties: map[string]protocol.ToolProperty{},
			Required:   []string{},
		},
	}
}

// TeamsResponse lists stored teams and imports
type TeamsResponse struct {
	Count   int                   `json:"count"`
	Teams   []store.StoredProfile `json:"teams"`
	Imports []store.Import        `json:"imports"`
}

func (tb *Toolbox) ListTeams(ctx context.Context) (*TeamsResponse, error) {
	if tb.store == nil {
		return nil, ErrNoStore
	}
	teams, err := tb.store.ListProfiles(ctx)
	if err != nil {
		return nil, err
	}
	imports, err := tb.store.ListImports(ctx)
	if err != nil {
		return nil, err
	}
	if teams == nil {
		teams = []store.StoredProfile{}
	}
	if imports == nil {
		imports = []store.Import{}
	}
	return &TeamsResponse{Count: len(teams), Teams: teams, Imports: imports}, nil
}

func (tb *Toolbox) HandleListTeams(ctx context.Context, params any) (any, error) {
	return tb.ListTeams(ctx)
}
