// Package gateway abstracts the two external capabilities the diagnosis
// pipeline depends on: asking a vision-capable model about an image and
// searching the web. Concrete providers sit behind small interfaces so the
// stage agents stay pure and testable with deterministic stubs.
//
// Retry, rate limiting, and caching are composable decorators around the
// provider implementations, never inlined into stage logic.
package gateway

import (
	"context"

	"github.com/hridoy-931/Agri-AI/internal/model"
)

// VisionGateway asks a vision-capable model about an image, or a text-only
// question for downstream stages that have no image to show. Implementations
// enforce their configured timeout, return typed *Error failures, and must be
// safe for concurrent use.
type VisionGateway interface {
	// AskVision sends the image and prompt to the model and returns its text
	AskVision(ctx context.Context, img model.Image, prompt string) (string, error)

	// AskText sends a text-only prompt to the same model
	AskText(ctx context.Context, prompt string) (string, error)

	// Name returns the provider name
	Name() string
}

// SearchResult is one organic web search hit
type SearchResult struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	URL     string `json:"url"`
}

// SearchGateway runs a web search and returns ordered organic results.
// Implementations enforce their configured timeout, return typed *Error
// failures, and must be safe for concurrent use.
type SearchGateway interface {
	Search(ctx context.Context, query string) ([]SearchResult, error)

	// Name returns the provider name
	Name() string
}
