package tools

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/PuerkitoBio/goquery"

	"github.com/richard-senior/hoops/internal/logger"
	"github.com/richard-senior/hoops/pkg/protocol"
)

const truncatedNote = "\n\n... (content truncated due to size)"

func StatsMarkdownTool() protocol.Tool {
	return protocol.Tool{
		Name: "hoops_stats_markdown",
		Description: `
		Fetches a statistics page and converts it to Markdown for reading.
		Use it when hoops_import_stats finds no table, e.g. for previews, box score articles or
		team pages, then build the team statistics with the extract-team-profile prompt and pass
		them to hoops_predict.
		`,
		InputSchema: protocol.InputSchema{
			Type: "object",
			Properties: map[string]protocol.ToolProperty{
				"url": {
					Type:        "string",
					Description: "The URL of the page to convert, ie. https://www.espn.com/mens-college-basketball/team/stats/_/id/248",
				},
			},
			Required: []string{"url"},
		},
	}
}

// MarkdownResponse is a page converted to Markdown
type MarkdownResponse struct {
	URL       string `json:"url"`
	Title     string `json:"title"`
	Markdown  string `json:"markdown"`
	Truncated bool   `json:"truncated"`
}

// StatsMarkdown fetches pageURL and converts it, cut to the configured length
func (tb *Toolbox) StatsMarkdown(ctx context.Context, pageURL string) (*MarkdownResponse, error) {
	if strings.TrimSpace(pageURL) == "" {
		return nil, invalidArgs("no url was passed")
	}
	if tb.fetcher == nil {
		return nil, fmt.Errorf("fetching urls is not available")
	}
	page, err := tb.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	return toMarkdown(pageURL, string(page.Body), tb.cfg.MarkdownMaxLength)
}

func toMarkdown(pageURL, html string, maxLength int) (*MarkdownResponse, error) {
	// Base URL for converting relative links to absolute
	domain, err := extractDomain(pageURL)
	if err != nil {
		logger.Warn("Failed to extract domain from URL:", err)
		domain = ""
	}

	markdown, err := htmltomarkdown.ConvertString(html, converter.WithDomain(domain))
	if err != nil {
		logger.Error("Failed to convert HTML to Markdown:", err)
		return nil, fmt.Errorf("failed to convert %s to markdown: %w", pageURL, err)
	}

	resp := &MarkdownResponse{URL: pageURL, Title: extractTitle(html), Markdown: markdown}
	if maxLength > 0 && len(markdown) > maxLength {
		cut := maxLength
		// do not split a multi byte character
		for cut > 0 && !isRuneStart(markdown[cut]) {
			cut--
		}
		resp.Markdown = markdown[:cut] + truncatedNote
		resp.Truncated = true
	}
	return resp, nil
}

func isRuneStart(b byte) bool { return b&0xC0 != 0x80 }

func (tb *Toolbox) HandleStatsMarkdown(ctx context.Context, params any) (any, error) {
	var req struct {
		URL string `json:"url"`
	}
	if err := decodeArgs(params, &req); err != nil {
		return nil, err
	}
	return tb.StatsMarkdown(ctx, req.URL)
}

// extractTitle returns the page title, or "" when there is none
func extractTitle(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}

// extractDomain extracts the scheme and host of a URL string
func extractDomain(urlString string) (string, error) {
	if !strings.HasPrefix(urlString, "http://") && !strings.HasPrefix(urlString, "https://") {
		urlString = "https://" + urlString
	}
	parsedURL, err := url.Parse(urlString)
	if err != nil {
		return "", fmt.Errorf("failed to parse URL: %v", err)
	}
	return parsedURL.Scheme + "://" + parsedURL.Hostname(), nil
}
