package gateway

import (
	"context"
	"testing"
	"time"

	"github.com/hridoy-931/Agri-AI/internal/model"
)

func init() {
	// No real sleeping between retries in tests
	retrySleepFunc = func(ctx context.Context, d time.Duration) error { return nil }
}

type scriptedVision struct {
	calls   int
	errs    []error // error per call, nil means success
	answer  string
	lastImg model.Image
}

func (s *scriptedVision) Name() string { return "scripted" }

func (s *scriptedVision) AskVision(ctx context.Context, img model.Image, prompt string) (string, error) {
	s.lastImg = img
	return s.next()
}

func (s *scriptedVision) AskText(ctx context.Context, prompt string) (string, error) {
	return s.next()
}

func (s *scriptedVision) next() (string, error) {
	var err error
	if s.calls < len(s.errs) {
		err = s.errs[s.calls]
	}
	s.calls++
	if err != nil {
		return "", err
	}
	return s.answer, nil
}

func TestWithVisionRetry_TransientThenSuccess(t *testing.T) {
	stub := &scriptedVision{
		errs:   []error{&Error{Kind: KindTimeout, Op: "vision.ask"}, nil},
		answer: "ok",
	}
	g := WithVisionRetry(stub, RetryPolicy{MaxRetries: 2, BaseDelay: time.Millisecond})

	out, err := g.AskText(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("expected success after retry, got %v", err)
	}
	if out != "ok" {
		t.Errorf("unexpected answer: %q", out)
	}
	if stub.calls != 2 {
		t.Errorf("expected 2 calls, got %d", stub.calls)
	}
}

func TestWithVisionRetry_InvalidResponseNotRetried(t *testing.T) {
	stub := &scriptedVision{
		errs: []error{&Error{Kind: KindInvalidResponse, Op: "vision.ask"}, nil},
	}
	g := WithVisionRetry(stub, RetryPolicy{MaxRetries: 2, BaseDelay: time.Millisecond})

	_, err := g.AskText(context.Background(), "prompt")
	if err == nil {
		t.Fatal("expected error")
	}
	if stub.calls != 1 {
		t.Errorf("invalid_response must not be retried, got %d calls", stub.calls)
	}
}

func TestWithVisionRetry_BudgetExhausted(t *testing.T) {
	stub := &scriptedVision{
		errs: []error{
			&Error{Kind: KindRateLimited, Op: "vision.ask"},
			&Error{Kind: KindRateLimited, Op: "vision.ask"},
			&Error{Kind: KindRateLimited, Op: "vision.ask"},
			nil,
		},
	}
	g := WithVisionRetry(stub, RetryPolicy{MaxRetries: 2, BaseDelay: time.Millisecond})

	_, err := g.AskText(context.Background(), "prompt")
	if err == nil {
		t.Fatal("expected error after exhausting retry budget")
	}
	if stub.calls != 3 {
		t.Errorf("expected 3 attempts (1 + 2 retries), got %d", stub.calls)
	}
}

type scriptedSearch struct {
	calls   int
	errs    []error
	results []SearchResult
}

func (s *scriptedSearch) Name() string { return "scripted" }

func (s *scriptedSearch) Search(ctx context.Context, query string) ([]SearchResult, error) {
	var err error
	if s.calls < len(s.errs) {
		err = s.errs[s.calls]
	}
	s.calls++
	if err != nil {
		return nil, err
	}
	return s.results, nil
}

func TestWithSearchRetry_TransientThenSuccess(t *testing.T) {
	stub := &scriptedSearch{
		errs:    []error{&Error{Kind: KindNetwork, Op: "search.query"}, nil},
		results: []SearchResult{{Title: "t", URL: "https://example.com"}},
	}
	g := WithSearchRetry(stub, RetryPolicy{MaxRetries: 2, BaseDelay: time.Millisecond})

	results, err := g.Search(context.Background(), "rice blight treatment")
	if err != nil {
		t.Fatalf("expected success after retry, got %v", err)
	}
	if len(results) != 1 {
		t.Errorf("expected 1 result, got %d", len(results))
	}
}

func TestErrorRetryable(t *testing.T) {
	tests := []struct {
		kind ErrorKind
		want bool
	}{
		{KindTimeout, true},
		{KindRateLimited, true},
		{KindNetwork, true},
		{KindInvalidResponse, false},
	}

	for _, tt := range tests {
		e := &Error{Kind: tt.kind, Op: "test"}
		if got := e.Retryable(); got != tt.want {
			t.Errorf("Retryable(%s) = %v, want %v", tt.kind, got, tt.want)
		}
	}
}
