package gateway

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// ErrorKind classifies gateway failures for retry decisions
type ErrorKind string

const (
	KindTimeout         ErrorKind = "timeout"
	KindRateLimited     ErrorKind = "rate_limited"
	KindInvalidResponse ErrorKind = "invalid_response"
	KindNetwork         ErrorKind = "network"
)

// Error is the typed failure every gateway returns. Callers branch on Kind;
// everything transient is retryable, deterministic parse failures are not.
type Error struct {
	Kind ErrorKind
	Op   string // "vision.ask", "vision.text", "search.query"
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Retryable reports whether retrying the call could help
func (e *Error) Retryable() bool {
	return e.Kind != KindInvalidResponse
}

// wrapErr converts a transport-level error into a typed gateway error
func wrapErr(op string, err error) *Error {
	return &Error{Kind: classify(err), Op: op, Err: err}
}

func classify(err error) ErrorKind {
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return KindTimeout
	}
	return KindNetwork
}

// kindFromStatus maps an HTTP status to an error kind
func kindFromStatus(status int) ErrorKind {
	switch {
	case status == http.StatusTooManyRequests:
		return KindRateLimited
	case status == http.StatusRequestTimeout || status == http.StatusGatewayTimeout:
		return KindTimeout
	case status >= 500:
		return KindNetwork
	default:
		return KindInvalidResponse
	}
}
