package gateway

import (
	"context"
	"encoding/json"
	"time"

	"github.com/hridoy-931/Agri-AI/internal/cache"
	"github.com/hridoy-931/Agri-AI/internal/model"
)

// The caching decorators key responses on the full call inputs (image bytes
// hash + prompt, or query text), so re-diagnosing the same photo skips the
// network entirely.

type cachedVision struct {
	next  VisionGateway
	store cache.Cache
	ttl   time.Duration
}

// WithVisionCache wraps a vision gateway with response caching. A nil store
// returns the gateway unchanged.
func WithVisionCache(next VisionGateway, store cache.Cache, ttl time.Duration) VisionGateway {
	if store == nil {
		return next
	}
	return &cachedVision{next: next, store: store, ttl: ttl}
}

func (g *cachedVision) Name() string { return g.next.Name() }

func (g *cachedVision) AskVision(ctx context.Context, img model.Image, prompt string) (string, error) {
	key := cache.Key("vision", img.Data, []byte(prompt))
	if val, found := g.store.Get(key); found {
		return string(val), nil
	}

	out, err := g.next.AskVision(ctx, img, prompt)
	if err != nil {
		return "", err
	}

	_ = g.store.Set(key, []byte(out), g.ttl)
	return out, nil
}

func (g *cachedVision) AskText(ctx context.Context, prompt string) (string, error) {
	key := cache.Key("text", []byte(prompt))
	if val, found := g.store.Get(key); found {
		return string(val), nil
	}

	out, err := g.next.AskText(ctx, prompt)
	if err != nil {
		return "", err
	}

	_ = g.store.Set(key, []byte(out), g.ttl)
	return out, nil
}

type cachedSearch struct {
	next  SearchGateway
	store cache.Cache
	ttl   time.Duration
}

// WithSearchCache wraps a search gateway with response caching
func WithSearchCache(next SearchGateway, store cache.Cache, ttl time.Duration) SearchGateway {
	if store == nil {
		return next
	}
	return &cachedSearch{next: next, store: store, ttl: ttl}
}

func (g *cachedSearch) Name() string { return g.next.Name() }

func (g *cachedSearch) Search(ctx context.Context, query string) ([]SearchResult, error) {
	key := cache.Key("search", []byte(query))
	if val, found := g.store.Get(key); found {
		var results []SearchResult
		if err := json.Unmarshal(val, &results); err == nil {
			return results, nil
		}
		// Corrupt entry: fall through to a fresh call
		_ = g.store.Delete(key)
	}

	results, err := g.next.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(results); err == nil {
		_ = g.store.Set(key, data, g.ttl)
	}
	return results, nil
}
