package gateway

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hridoy-931/Agri-AI/internal/model"
	"github.com/hridoy-931/Agri-AI/internal/util"
)

// OllamaVision runs diagnosis against a local Ollama model (e.g. llava,
// llama3.2-vision). No API key, longer default timeout: local inference is
// slow on modest hardware.
type OllamaVision struct {
	baseURL    string
	httpClient *http.Client
	cfg        model.VisionConfig
}

type ollamaRequest struct {
	Model   string        `json:"model"`
	Prompt  string        `json:"prompt"`
	System  string        `json:"system,omitempty"`
	Images  []string      `json:"images,omitempty"`
	Stream  bool          `json:"stream"`
	Options ollamaOptions `json:"options,omitempty"`
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature,omitempty"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

type ollamaResponse struct {
	Model    string `json:"model"`
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

type ollamaErrorBody struct {
	Error string `json:"error"`
}

// NewOllamaVision creates a new Ollama vision gateway
func NewOllamaVision(cfg model.VisionConfig) (*OllamaVision, error) {
	if cfg.Model == "" {
		return nil, fmt.Errorf("ollama model must be specified (e.g. llava:13b)")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}

	return &OllamaVision{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy: util.NewProxyFunc(cfg.HTTPProxy, cfg.HTTPSProxy, cfg.NoProxy),
			},
		},
		cfg: cfg,
	}, nil
}

// Name returns the provider name
func (g *OllamaVision) Name() string { return "ollama" }

// AskVision sends the image as a base64 attachment on a generate request
func (g *OllamaVision) AskVision(ctx context.Context, img model.Image, prompt string) (string, error) {
	return g.generate(ctx, "vision.ask", prompt, []string{base64.StdEncoding.EncodeToString(img.Data)})
}

// AskText sends a text-only prompt
func (g *OllamaVision) AskText(ctx context.Context, prompt string) (string, error) {
	return g.generate(ctx, "vision.text", prompt, nil)
}

func (g *OllamaVision) generate(ctx context.Context, op, prompt string, images []string) (string, error) {
	maxTokens := g.cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = 2000
	}

	apiReq := ollamaRequest{
		Model:  g.cfg.Model,
		Prompt: prompt,
		System: visionSystemPrompt,
		Images: images,
		Stream: false,
		Options: ollamaOptions{
			Temperature: 0.2,
			NumPredict:  maxTokens,
		},
	}

	body, err := json.Marshal(apiReq)
	if err != nil {
		return "", &Error{Kind: KindInvalidResponse, Op: op, Err: fmt.Errorf("marshal request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", &Error{Kind: KindInvalidResponse, Op: op, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", wrapErr(op, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 10_000_000))
	if err != nil {
		return "", wrapErr(op, err)
	}

	if resp.StatusCode != http.StatusOK {
		var errBody ollamaErrorBody
		_ = json.Unmarshal(data, &errBody)
		return "", &Error{
			Kind: kindFromStatus(resp.StatusCode),
			Op:   op,
			Err:  fmt.Errorf("HTTP %d: %s", resp.StatusCode, errBody.Error),
		}
	}

	var apiResp ollamaResponse
	if err := json.Unmarshal(data, &apiResp); err != nil {
		return "", &Error{Kind: KindInvalidResponse, Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}

	return strings.TrimSpace(apiResp.Response), nil
}
