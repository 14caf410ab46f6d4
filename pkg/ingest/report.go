// Package ingest turns statistics tables (HTML pages, spreadsheet exports) into
// draft team profiles for the prediction engine.
package ingest

import (
	"fmt"
	"strings"

	"github.com/richard-senior/hoops/internal/logger"
	"github.com/richard-senior/hoops/pkg/hoops"
)

// RowIssue describes a row or team that could not become a profile
type RowIssue struct {
	Table  int    `json:"table"`
	Row    int    `json:"row"`
	Team   string `json:"team,omitempty"`
	Reason string `json:"reason"`
}

// Report is the result of an ingestion run
type Report struct {
	Profiles []hoops.TeamProfile `json:"profiles"`
	Skipped  []RowIssue          `json:"skipped,omitempty"`
	Columns  map[string]string   `json:"columns"` // recognised header -> profile field
	Tables   int                 `json:"tables"`
}

// draft accumulates one team across tables. Fields already set are not overwritten,
// so the first table mentioning a statistic wins.
type draft struct {
	profile hoops.TeamProfile
	set     map[Field]bool
	table   int
	row     int
}

type collector struct {
	order   []string
	drafts  map[string]*draft
	columns map[string]string
	skipped []RowIssue
	tables  int
}

func newCollector() *collector {
	return &collector{
		drafts:  make(map[string]*draft),
		columns: make(map[string]string),
	}
}

func (c *collector) skip(table, row int, team, reason string) {
	logger.Warn("Skipping row", table, row, team, reason)
	c.skipped = append(c.skipped, RowIssue{Table: table, Row: row, Team: team, Reason: reason})
}

// addTable merges one header row plus data rows. Tables with no team column are
// ignored and reported as false.
func (c *collector) addTable(table int, headers []string, rows [][]string) bool {
	byIndex, columns := resolveColumns(headers)
	nameCol := -1
	for i, f := range byIndex {
		if f == FieldName {
			nameCol = i
		}
	}
	if nameCol < 0 || len(byIndex) < 2 {
		logger.Debug("Table has no team column or no statistics, ignoring", table)
		return false
	}
	c.tables++
	for h, f := range columns {
		c.columns[h] = f
	}

	for r, cells := range rows {
		if nameCol >= len(cells) {
			continue
		}
		name := CleanTeamName(cells[nameCol])
		key := NormalizeName(name)
		// repeated header rows inside long tables
		if key == "" || strings.EqualFold(strings.TrimSpace(cells[nameCol]), strings.TrimSpace(headers[nameCol])) {
			continue
		}

		d, ok := c.drafts[key]
		if !ok {
			d = &draft{profile: hoops.TeamProfile{Name: name}, set: map[Field]bool{}, table: table, row: r + 1}
			c.drafts[key] = d
			c.order = append(c.order, key)
		}
		for i, f := range byIndex {
			if f == FieldName || i >= len(cells) || blank(cells[i]) || d.set[f] {
				continue
			}
			if err := assign(&d.profile, f, cells[i]); err != nil {
				logger.Debug("Ignoring cell", name, string(f), err)
				continue
			}
			d.set[f] = true
		}
	}
	return true
}

// assign parses one cell into the profile field
func assign(p *hoops.TeamProfile, f Field, cell string) error {
	switch f {
	case FieldPPG, FieldPointsAllowed, FieldLast5PPG, FieldFirstHalfPPG:
		v, err := ParseNumber(cell)
		if err != nil {
			return err
		}
		if !hoops.InScoringRange(v) {
			return fmt.Errorf("%v outside scoring range", v)
		}
		switch f {
		case FieldPPG:
			p.PPG = v
		case FieldPointsAllowed:
			p.PointsAllowed = v
		case FieldLast5PPG:
			p.Last5PPG = hoops.Float(v)
		default:
			p.FirstHalfPPG = hoops.Float(v)
		}
	case FieldFGPct, FieldThreePct, FieldFTPct:
		v, err := ParsePercent(cell)
		if err != nil {
			return err
		}
		switch f {
		case FieldFGPct:
			p.FGPct = hoops.Float(v)
		case FieldThreePct:
			p.ThreePct = hoops.Float(v)
		default:
			p.FTPct = hoops.Float(v)
		}
	case FieldDefenseRank, FieldOffenseRank, FieldStrengthRank:
		v, err := ParseRank(cell)
		if err != nil {
			return err
		}
		switch f {
		case FieldDefenseRank:
			p.DefenseRank = v
		case FieldOffenseRank:
			p.OffenseRank = hoops.Int(v)
		default:
			p.StrengthRank = hoops.Int(v)
		}
	case FieldHomeRecord, FieldAwayRecord, FieldNeutralRecord:
		rec, err := ParseRecord(cell)
		if err != nil {
			return err
		}
		switch f {
		case FieldHomeRecord:
			p.HomeRecord = &rec
		case FieldAwayRecord:
			p.AwayRecord = &rec
		default:
			p.NeutralRecord = &rec
		}
	case FieldStreak:
		win, loss, err := ParseStreak(cell)
		if err != nil {
			return err
		}
		p.WinStreak, p.LossStreak = win, loss
	case FieldWinStreak, FieldLossStreak:
		v, err := ParseNumber(cell)
		if err != nil {
			return err
		}
		if v < 0 {
			return fmt.Errorf("negative streak %v", v)
		}
		if f == FieldWinStreak {
			p.WinStreak = int(v)
		} else {
			p.LossStreak = int(v)
		}
	default:
		return fmt.Errorf("unsupported field %s", f)
	}
	return nil
}

// report validates every merged draft against the required subset
func (c *collector) report() *Report {
	rep := &Report{Columns: c.columns, Tables: c.tables, Skipped: c.skipped}
	for _, key := range c.order {
		d := c.drafts[key]
		var missing []string
		for _, f := range []Field{FieldPPG, FieldPointsAllowed, FieldDefenseRank} {
			if !d.set[f] {
				missing = append(missing, string(f))
			}
		}
		if len(missing) > 0 {
			c.skip(d.table, d.row, d.profile.Name, "missing "+strings.Join(missing, ", "))
			rep.Skipped = c.skipped
			continue
		}
		rep.Profiles = append(rep.Profiles, d.profile)
	}
	return rep
}
