package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hridoy-931/Agri-AI/internal/model"
)

// SerperSearch queries the Serper.dev Google-search API, which the original
// system used for treatment research.
type SerperSearch struct {
	httpClient *http.Client
	cfg        model.SearchConfig
	baseURL    string
}

type serperRequest struct {
	Query    string `json:"q"`
	Num      int    `json:"num,omitempty"`
	Country  string `json:"gl,omitempty"`
	Language string `json:"hl,omitempty"`
}

type serperResponse struct {
	Organic []struct {
		Title   string `json:"title"`
		Link    string `json:"link"`
		Snippet string `json:"snippet"`
	} `json:"organic"`
}

// NewSerperSearch creates a new Serper search gateway
func NewSerperSearch(cfg model.SearchConfig) (*SerperSearch, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("search API key is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://google.serper.dev"
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	return &SerperSearch{
		httpClient: &http.Client{Timeout: timeout},
		cfg:        cfg,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
	}, nil
}

// Name returns the provider name
func (g *SerperSearch) Name() string { return "serper" }

// Search runs the query and returns ordered organic results
func (g *SerperSearch) Search(ctx context.Context, query string) ([]SearchResult, error) {
	const op = "search.query"

	body, err := json.Marshal(serperRequest{
		Query:    query,
		Num:      g.cfg.MaxResults,
		Country:  g.cfg.Country,
		Language: g.cfg.Language,
	})
	if err != nil {
		return nil, &Error{Kind: KindInvalidResponse, Op: op, Err: fmt.Errorf("marshal request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/search", bytes.NewReader(body))
	if err != nil {
		return nil, &Error{Kind: KindInvalidResponse, Op: op, Err: err}
	}
	req.Header.Set("X-API-KEY", g.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, wrapErr(op, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 2_000_000))
	if err != nil {
		return nil, wrapErr(op, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &Error{
			Kind: kindFromStatus(resp.StatusCode),
			Op:   op,
			Err:  fmt.Errorf("HTTP %d: %s", resp.StatusCode, truncate(string(data), 200)),
		}
	}

	var apiResp serperResponse
	if err := json.Unmarshal(data, &apiResp); err != nil {
		return nil, &Error{Kind: KindInvalidResponse, Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}

	results := make([]SearchResult, 0, len(apiResp.Organic))
	for _, hit := range apiResp.Organic {
		if hit.Link == "" {
			continue
		}
		results = append(results, SearchResult{
			Title:   hit.Title,
			Snippet: hit.Snippet,
			URL:     hit.Link,
		})
	}

	return results, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
