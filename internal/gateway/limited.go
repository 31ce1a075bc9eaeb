package gateway

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/hridoy-931/Agri-AI/internal/model"
)

// The rate-limited decorators pace outbound calls so concurrent pipeline
// runs share one request budget per provider instead of stampeding it.

type limitedVision struct {
	next    VisionGateway
	limiter *rate.Limiter
}

// WithVisionRateLimit paces vision calls at rps with the given burst
func WithVisionRateLimit(next VisionGateway, rps float64, burst int) VisionGateway {
	if burst <= 0 {
		burst = 1
	}
	return &limitedVision{next: next, limiter: rate.NewLimiter(rate.Limit(rps), burst)}
}

func (g *limitedVision) Name() string { return g.next.Name() }

func (g *limitedVision) AskVision(ctx context.Context, img model.Image, prompt string) (string, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return "", err
	}
	return g.next.AskVision(ctx, img, prompt)
}

func (g *limitedVision) AskText(ctx context.Context, prompt string) (string, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return "", err
	}
	return g.next.AskText(ctx, prompt)
}

type limitedSearch struct {
	next    SearchGateway
	limiter *rate.Limiter
}

// WithSearchRateLimit paces search calls at rps with the given burst
func WithSearchRateLimit(next SearchGateway, rps float64, burst int) SearchGateway {
	if burst <= 0 {
		burst = 1
	}
	return &limitedSearch{next: next, limiter: rate.NewLimiter(rate.Limit(rps), burst)}
}

func (g *limitedSearch) Name() string { return g.next.Name() }

func (g *limitedSearch) Search(ctx context.Context, query string) ([]SearchResult, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return g.next.Search(ctx, query)
}
