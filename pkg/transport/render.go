package transport

import (
	"context"
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/richard-senior/hoops/internal/logger"
)

// browserRenderer loads pages in headless chromium so tables built by
// javascript are present in the returned HTML. Each call starts its own
// browser, rendered fetches are rare and rate limited.
type browserRenderer struct {
	userAgent string
	timeout   time.Duration
}

func (r *browserRenderer) Render(ctx context.Context, pageURL string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("could not start playwright: %w", err)
	}
	defer func() {
		if err := pw.Stop(); err != nil {
			logger.Warn("Failed to stop playwright", err)
		}
	}()

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("could not launch chromium: %w", err)
	}
	defer browser.Close()

	page, err := browser.NewPage(playwright.BrowserNewPageOptions{
		UserAgent: playwright.String(r.userAgent),
	})
	if err != nil {
		return nil, fmt.Errorf("could not open page: %w", err)
	}

	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) < timeout {
		timeout = time.Until(deadline)
	}
	if _, err := page.Goto(pageURL, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateNetworkidle,
		Timeout:   playwright.Float(float64(timeout.Milliseconds())),
	}); err != nil {
		return nil, fmt.Errorf("could not load %s: %w", pageURL, err)
	}

	html, err := page.Content()
	if err != nil {
		return nil, fmt.Errorf("could not read page content: %w", err)
	}
	return []byte(html), nil
}
