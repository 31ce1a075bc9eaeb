// Package enrich optionally fetches top search-result pages so the treatment
// synthesis prompt can quote real page text instead of relying on snippets
// alone. Fetches respect robots.txt and are paced per host.
package enrich

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/hridoy-931/Agri-AI/internal/gateway"
	"github.com/hridoy-931/Agri-AI/internal/model"
	"github.com/hridoy-931/Agri-AI/internal/util"
	"github.com/hridoy-931/Agri-AI/internal/worker"
)

const maxExcerptChars = 2000

// Excerpt is the readable text pulled from one search result page
type Excerpt struct {
	URL  string
	Text string
}

// Fetcher fetches and distills search result pages
type Fetcher struct {
	httpClient *http.Client
	robots     *util.RobotsChecker
	limiter    *worker.Limiter
	maxPages   int
	maxBytes   int64
	userAgent  string
}

// NewFetcher creates a page fetcher from configuration
func NewFetcher(cfg model.EnrichConfig) *Fetcher {
	maxPages := cfg.MaxPages
	if maxPages <= 0 {
		maxPages = 3
	}
	maxBytes := cfg.MaxBodyBytes
	if maxBytes <= 0 {
		maxBytes = 1_000_000
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	return &Fetcher{
		httpClient: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		robots:    util.NewRobotsChecker(cfg.UserAgent, timeout),
		limiter:   worker.NewLimiter(1, 2),
		maxPages:  maxPages,
		maxBytes:  maxBytes,
		userAgent: cfg.UserAgent,
	}
}

// Excerpts fetches up to maxPages of the given search results and returns
// their distilled text. Pages that are disallowed, unreachable, or empty are
// skipped silently; enrichment is best-effort and never fails the stage.
func (f *Fetcher) Excerpts(ctx context.Context, results []gateway.SearchResult) []Excerpt {
	var out []Excerpt
	for _, res := range results {
		if len(out) >= f.maxPages {
			break
		}
		if ctx.Err() != nil {
			break
		}
		if !f.robots.IsAllowed(ctx, res.URL) {
			continue
		}

		text, err := f.fetchText(ctx, res.URL)
		if err != nil || text == "" {
			continue
		}
		out = append(out, Excerpt{URL: res.URL, Text: text})
	}
	return out
}

func (f *Fetcher) fetchText(ctx context.Context, rawURL string) (string, error) {
	if err := f.limiter.Wait(ctx, rawURL); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "" && !strings.Contains(ct, "html") {
		return "", fmt.Errorf("not HTML: %s", ct)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}

	doc, err := html.Parse(strings.NewReader(string(body)))
	if err != nil {
		return "", fmt.Errorf("parse HTML: %w", err)
	}

	text := visibleText(doc)
	if len(text) > maxExcerptChars {
		text = text[:maxExcerptChars]
	}
	return strings.TrimSpace(text), nil
}

// visibleText walks the DOM collecting text nodes, skipping script-like tags
func visibleText(n *html.Node) string {
	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe", "nav", "footer", "header":
				return
			}
		}

		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(n)
	return buf.String()
}
