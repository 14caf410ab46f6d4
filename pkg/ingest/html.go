package ingest

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ParseHTML reads every <table> in the page. Tables describing the same teams
// (offense in one, defense in another) are merged by team name.
func ParseHTML(html string) (*Report, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	c := newCollector()
	doc.Find("table").Each(func(i int, table *goquery.Selection) {
		headers, rows := tableCells(table)
		if len(headers) == 0 || len(rows) == 0 {
			return
		}
		c.addTable(i, headers, rows)
	})
	return c.report(), nil
}

// tableCells returns the header texts and the data row texts of a table.
// With a multi-row thead the last row is the most specific one.
func tableCells(table *goquery.Selection) ([]string, [][]string) {
	var headers []string
	var rows [][]string

	headRows := table.Find("thead tr")
	bodyRows := table.Find("tbody tr")
	if headRows.Length() > 0 {
		headers = cellTexts(headRows.Last())
	}
	if bodyRows.Length() == 0 {
		bodyRows = table.Find("tr").Not("thead tr")
	}

	bodyRows.Each(func(i int, tr *goquery.Selection) {
		cells := cellTexts(tr)
		if len(cells) == 0 {
			return
		}
		if headers == nil {
			headers = cells
			return
		}
		if tr.HasClass("thead") || tr.HasClass("over_header") {
			return
		}
		rows = append(rows, cells)
	})
	return headers, rows
}

// cellTexts expands colspan so column positions line up with the header row
func cellTexts(tr *goquery.Selection) []string {
	var out []string
	tr.Find("th, td").Each(func(i int, cell *goquery.Selection) {
		text := strings.Join(strings.Fields(cell.Text()), " ")
		out = append(out, text)
		if span, ok := cell.Attr("colspan"); ok {
			var n int
			if _, err := fmt.Sscanf(span, "%d", &n); err == nil {
				for k := 1; k < n && k < 20; k++ {
					out = append(out, "")
				}
			}
		}
	})
	return out
}
