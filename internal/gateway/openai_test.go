package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/hridoy-931/Agri-AI/internal/model"
)

func testImage() model.Image {
	return model.Image{Data: []byte{0xff, 0xd8, 0xff}, MediaType: "image/jpeg"}
}

func TestOpenAIVision_AskVision_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("expected path /chat/completions, got %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("unexpected Authorization header: %s", r.Header.Get("Authorization"))
		}

		var req openai.ChatCompletionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		// Second message is the user turn with the image part
		if len(req.Messages) != 2 {
			t.Fatalf("expected 2 messages, got %d", len(req.Messages))
		}
		user := req.Messages[1]
		if len(user.MultiContent) != 2 {
			t.Fatalf("expected multimodal content, got %d parts", len(user.MultiContent))
		}
		if !strings.HasPrefix(user.MultiContent[1].ImageURL.URL, "data:image/jpeg;base64,") {
			t.Errorf("image part should be a jpeg data URL, got %q", user.MultiContent[1].ImageURL.URL[:30])
		}

		resp := openai.ChatCompletionResponse{
			Choices: []openai.ChatCompletionChoice{
				{Message: openai.ChatCompletionMessage{Role: "assistant", Content: `{"disease_detected": true}`}},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	g, err := NewOpenAIVision(model.VisionConfig{
		APIKey:  "test-key",
		BaseURL: server.URL,
		Model:   "google/gemini-2.0-flash-001",
		Timeout: 5 * time.Second,
	})
	if err != nil {
		t.Fatalf("create gateway: %v", err)
	}

	out, err := g.AskVision(context.Background(), testImage(), "identify the disease")
	if err != nil {
		t.Fatalf("AskVision failed: %v", err)
	}
	if out != `{"disease_detected": true}` {
		t.Errorf("unexpected answer: %q", out)
	}
}

func TestOpenAIVision_RateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error": {"message": "rate limit exceeded", "type": "rate_limit_error"}}`))
	}))
	defer server.Close()

	g, err := NewOpenAIVision(model.VisionConfig{
		APIKey:  "test-key",
		BaseURL: server.URL,
		Timeout: 5 * time.Second,
	})
	if err != nil {
		t.Fatalf("create gateway: %v", err)
	}

	_, err = g.AskText(context.Background(), "prompt")
	var gwErr *Error
	if !errors.As(err, &gwErr) {
		t.Fatalf("expected *gateway.Error, got %T: %v", err, err)
	}
	if gwErr.Kind != KindRateLimited {
		t.Errorf("expected rate_limited, got %s", gwErr.Kind)
	}
	if !gwErr.Retryable() {
		t.Error("rate_limited must be retryable")
	}
}

func TestOpenAIVision_EmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(openai.ChatCompletionResponse{})
	}))
	defer server.Close()

	g, err := NewOpenAIVision(model.VisionConfig{
		APIKey:  "test-key",
		BaseURL: server.URL,
		Timeout: 5 * time.Second,
	})
	if err != nil {
		t.Fatalf("create gateway: %v", err)
	}

	_, err = g.AskText(context.Background(), "prompt")
	var gwErr *Error
	if !errors.As(err, &gwErr) {
		t.Fatalf("expected *gateway.Error, got %T: %v", err, err)
	}
	if gwErr.Kind != KindInvalidResponse {
		t.Errorf("expected invalid_response, got %s", gwErr.Kind)
	}
}

func TestNewOpenAIVision_RequiresKey(t *testing.T) {
	if _, err := NewOpenAIVision(model.VisionConfig{}); err == nil {
		t.Error("expected error when API key is missing")
	}
}
