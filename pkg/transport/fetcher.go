package transport

import (
	"compress/flate"
	"compress/gzip"
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/dustin/go-humanize"
	"github.com/sony/gobreaker"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"github.com/richard-senior/hoops/internal/config"
	"github.com/richard-senior/hoops/internal/logger"
)

// maxBodyBytes caps a decoded page
const maxBodyBytes = 32 << 20

// ErrCircuitOpen is returned while the breaker refuses outbound requests
var ErrCircuitOpen = errors.New("statistics source unavailable, circuit open")

// StatusError is a non 200 response
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("request to %s returned error status %d", e.URL, e.Code)
}

// Page is a fetched statistics page
type Page struct {
	URL         string `json:"url"`
	ContentType string `json:"contentType"`
	Body        []byte `json:"-"`
	Rendered    bool   `json:"rendered"`
}

// Renderer loads a page in a browser and returns the resulting HTML
type Renderer interface {
	Render(ctx context.Context, url string) ([]byte, error)
}

// Fetcher downloads statistics pages. Calls are rate limited, identical
// concurrent URLs share one request, and a circuit breaker stops hammering a
// failing source.
type Fetcher struct {
	client    *http.Client
	limiter   *rate.Limiter
	breaker   *gobreaker.CircuitBreaker
	group     singleflight.Group
	userAgent string
	timeout   time.Duration
	renderer  Renderer
}

// NewFetcher builds a fetcher from the outbound settings in cfg
func NewFetcher(cfg *config.Config) (*Fetcher, error) {
	client, err := newHTTPClient(cfg.CABundlePath, cfg.FetchTimeout)
	if err != nil {
		return nil, err
	}

	f := &Fetcher{
		client:    client,
		limiter:   rate.NewLimiter(rate.Limit(cfg.FetchRate), cfg.FetchBurst),
		userAgent: cfg.UserAgent,
		timeout:   cfg.FetchTimeout,
	}
	f.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "stats-fetch",
		MaxRequests: cfg.BreakerMaxRequests,
		Interval:    cfg.BreakerInterval,
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= cfg.BreakerMinRequests && failureRatio >= cfg.BreakerFailureRatio
		},
		// a 4xx is the caller's fault, not the source's
		IsSuccessful: func(err error) bool {
			var se *StatusError
			if errors.As(err, &se) {
				return se.Code < 500
			}
			return err == nil
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed", name, from.String(), "->", to.String())
		},
	})
	if cfg.RenderedFetch {
		f.renderer = &browserRenderer{userAgent: cfg.UserAgent, timeout: cfg.FetchTimeout}
		logger.Info("Rendered fetch enabled, pages load through headless chromium")
	}
	return f, nil
}

// WithRenderer replaces the page renderer, nil turns rendering off
func (f *Fetcher) WithRenderer(r Renderer) *Fetcher {
	f.renderer = r
	return f
}

// State reports the breaker state, for health output
func (f *Fetcher) State() string {
	return f.breaker.State().String()
}

// Fetch downloads rawURL. Concurrent callers of the same URL share one
// download; a caller whose ctx ends gets ctx.Err() while the download carries
// on for the others, bounded by the fetch timeout.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*Page, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("invalid url %q: only absolute http(s) urls can be fetched", rawURL)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ch := f.group.DoChan(u.String(), func() (any, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), f.timeout)
		defer cancel()
		if err := f.limiter.Wait(fetchCtx); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}
		return f.breaker.Execute(func() (any, error) {
			if f.renderer != nil {
				return f.render(fetchCtx, u.String())
			}
			return f.get(fetchCtx, u.String())
		})
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res = <-ch:
	}
	if errors.Is(res.Err, gobreaker.ErrOpenState) || errors.Is(res.Err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%w: %v", ErrCircuitOpen, res.Err)
	}
	if res.Err != nil {
		return nil, res.Err
	}
	if res.Shared {
		logger.Debug("Fetch shared with a concurrent caller", u.String())
	}
	return res.Val.(*Page), nil
}

func (f *Fetcher) get(ctx context.Context, pageURL string) (*Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	// Add headers to make the request look more like a browser
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,text/csv;q=0.9,*/*;q=0.8")
	req.Header.Set("Referer", "http://www.google.com/")
	req.Header.Set("Accept-Encoding", "gzip, deflate, br")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{URL: pageURL, Code: resp.StatusCode}
	}

	reader, err := decodeBody(resp)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	data, err := io.ReadAll(io.LimitReader(reader, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read data: %w", err)
	}

	logger.Info("Fetched", pageURL, humanize.Bytes(uint64(len(data))), "in", time.Since(start).Round(time.Millisecond).String())
	return &Page{URL: pageURL, ContentType: resp.Header.Get("Content-Type"), Body: data}, nil
}

func (f *Fetcher) render(ctx context.Context, pageURL string) (*Page, error) {
	start := time.Now()
	data, err := f.renderer.Render(ctx, pageURL)
	if err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", pageURL, err)
	}
	logger.Info("Rendered", pageURL, humanize.Bytes(uint64(len(data))), "in", time.Since(start).Round(time.Millisecond).String())
	return &Page{URL: pageURL, ContentType: "text/html", Body: data, Rendered: true}, nil
}

// decodeBody handles compression (Content-Encoding)
func decodeBody(resp *http.Response) (io.ReadCloser, error) {
	switch enc := resp.Header.Get("Content-Encoding"); enc {
	case "", "identity":
		return io.NopCloser(resp.Body), nil
	case "gzip":
		logger.Debug("Handling gzip compressed content")
		r, err := NewGzipReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		return r, nil
	case "deflate":
		logger.Debug("Handling deflate compressed content")
		return NewDeflateReader(resp.Body)
	case "br":
		logger.Debug("Handling brotli compressed content")
		return NewBrotliReader(resp.Body)
	default:
		logger.Warn("Unknown content encoding:", enc)
		return io.NopCloser(resp.Body), nil
	}
}

// NewGzipReader creates a gzip reader from the provided io.ReadCloser
func NewGzipReader(r io.ReadCloser) (io.ReadCloser, error) {
	return gzip.NewReader(r)
}

// NewDeflateReader creates a deflate reader from the provided io.ReadCloser
func NewDeflateReader(r io.ReadCloser) (io.ReadCloser, error) {
	return flate.NewReader(r), nil
}

// NewBrotliReader creates a brotli reader from the provided io.ReadCloser
func NewBrotliReader(r io.ReadCloser) (io.ReadCloser, error) {
	return io.NopCloser(brotli.NewReader(r)), nil
}

// newHTTPClient returns an HTTP client trusting the system roots plus the
// optional PEM bundle at caBundle
func newHTTPClient(caBundle string, timeout time.Duration) (*http.Client, error) {
	rootCAs, err := x509.SystemCertPool()
	if err != nil {
		logger.Warn("Failed to get system cert pool", err)
		rootCAs = x509.NewCertPool()
	}

	if caBundle != "" {
		pem, err := os.ReadFile(caBundle)
		if err != nil {
			return nil, fmt.Errorf("failed to read CA bundle: %w", err)
		}
		if ok := rootCAs.AppendCertsFromPEM(pem); !ok {
			return nil, fmt.Errorf("no certificates found in CA bundle %s", caBundle)
		}
		logger.Info("Added CA bundle to root CAs", caBundle)
	}

	return &http.Client{
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{RootCAs: rootCAs},
			Proxy:           http.ProxyFromEnvironment,
		},
		Timeout: timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= 10 {
				return fmt.Errorf("stopped after 10 redirects")
			}
			return nil
		},
	}, nil
}
