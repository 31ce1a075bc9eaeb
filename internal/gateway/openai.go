package gateway

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/hridoy-931/Agri-AI/internal/model"
)

const openRouterBaseURL = "https://openrouter.ai/api/v1"

const visionSystemPrompt = "You are an expert agronomist and plant pathologist. " +
	"Answer strictly in the JSON format the user requests, with no extra commentary."

// OpenAIVision talks to any OpenAI-compatible chat-completions endpoint.
// The original system used OpenRouter; the same client covers OpenAI proper
// and other compatible providers via BaseURL.
type OpenAIVision struct {
	client *openai.Client
	cfg    model.VisionConfig
}

// NewOpenAIVision creates a new OpenAI-compatible vision gateway
func NewOpenAIVision(cfg model.VisionConfig) (*OpenAIVision, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("vision API key is required")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	switch {
	case cfg.BaseURL != "":
		clientConfig.BaseURL = cfg.BaseURL
	case cfg.Provider == "openrouter":
		clientConfig.BaseURL = openRouterBaseURL
	}

	return &OpenAIVision{
		client: openai.NewClientWithConfig(clientConfig),
		cfg:    cfg,
	}, nil
}

// Name returns the provider name
func (g *OpenAIVision) Name() string {
	if g.cfg.Provider != "" {
		return g.cfg.Provider
	}
	return "openai"
}

// AskVision sends the image and prompt as a multimodal chat message
func (g *OpenAIVision) AskVision(ctx context.Context, img model.Image, prompt string) (string, error) {
	dataURL := fmt.Sprintf("data:%s;base64,%s", img.MediaType, base64.StdEncoding.EncodeToString(img.Data))

	msg := openai.ChatCompletionMessage{
		Role: openai.ChatMessageRoleUser,
		MultiContent: []openai.ChatMessagePart{
			{Type: openai.ChatMessagePartTypeText, Text: prompt},
			{
				Type: openai.ChatMessagePartTypeImageURL,
				ImageURL: &openai.ChatMessageImageURL{
					URL:    dataURL,
					Detail: openai.ImageURLDetailAuto,
				},
			},
		},
	}

	return g.complete(ctx, "vision.ask", msg)
}

// AskText sends a text-only prompt to the same model
func (g *OpenAIVision) AskText(ctx context.Context, prompt string) (string, error) {
	msg := openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: prompt,
	}

	return g.complete(ctx, "vision.text", msg)
}

func (g *OpenAIVision) complete(ctx context.Context, op string, msg openai.ChatCompletionMessage) (string, error) {
	timeout := g.cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	maxTokens := g.cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = 2000
	}

	req := openai.ChatCompletionRequest{
		Model: g.cfg.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: visionSystemPrompt},
			msg,
		},
		MaxTokens:   maxTokens,
		Temperature: 0.2,
	}

	resp, err := g.client.CreateChatCompletion(ctx, req)
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return "", &Error{Kind: kindFromStatus(apiErr.HTTPStatusCode), Op: op, Err: err}
		}
		return "", wrapErr(op, err)
	}

	if len(resp.Choices) == 0 {
		return "", &Error{Kind: KindInvalidResponse, Op: op, Err: fmt.Errorf("no choices in response")}
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
