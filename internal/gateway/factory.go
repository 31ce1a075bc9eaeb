package gateway

import (
	"fmt"
	"strings"
	"time"

	"github.com/hridoy-931/Agri-AI/internal/cache"
	"github.com/hridoy-931/Agri-AI/internal/model"
)

// NewVisionGateway creates the configured vision provider
func NewVisionGateway(cfg model.VisionConfig) (VisionGateway, error) {
	switch strings.ToLower(cfg.Provider) {
	case "openrouter", "openai", "":
		return NewOpenAIVision(cfg)
	case "ollama":
		return NewOllamaVision(cfg)
	default:
		return nil, fmt.Errorf("unknown vision provider: %s (supported: openrouter, openai, ollama)", cfg.Provider)
	}
}

// NewSearchGateway creates the configured search provider
func NewSearchGateway(cfg model.SearchConfig) (SearchGateway, error) {
	return NewSerperSearch(cfg)
}

// Build assembles the production gateway stack from configuration:
// provider → retry → rate limit → cache, outermost first on the call path.
// Caching sits outside so a hit skips the limiter and retries entirely.
func Build(cfg *model.Config, store cache.Cache) (VisionGateway, SearchGateway, error) {
	vision, err := NewVisionGateway(cfg.Vision)
	if err != nil {
		return nil, nil, fmt.Errorf("vision gateway: %w", err)
	}
	search, err := NewSearchGateway(cfg.Search)
	if err != nil {
		return nil, nil, fmt.Errorf("search gateway: %w", err)
	}

	v := WithVisionRetry(vision, RetryPolicy{MaxRetries: cfg.Vision.MaxRetries, BaseDelay: 500 * time.Millisecond})
	s := WithSearchRetry(search, RetryPolicy{MaxRetries: cfg.Search.MaxRetries, BaseDelay: 500 * time.Millisecond})

	if cfg.Concurrency.RequestsPerSecond > 0 {
		v = WithVisionRateLimit(v, cfg.Concurrency.RequestsPerSecond, cfg.Concurrency.Burst)
		s = WithSearchRateLimit(s, cfg.Concurrency.RequestsPerSecond, cfg.Concurrency.Burst)
	}

	v = WithVisionCache(v, store, cfg.Cache.MemoryTTL)
	s = WithSearchCache(s, store, cfg.Cache.MemoryTTL)

	return v, s, nil
}
