package openai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"resty.dev/v3"

	"codenote-backend/internal/llm"
	"codenote-backend/internal/shared/telemetry"
)

const defaultBaseURL = "https://api.openai.com/v1"

// Client implements llm.Client using OpenAI Chat Completions.
type Client struct {
	httpClient *resty.Client
	model      string
}

// Options configures NewClient.
type Options struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// NewClient constructs a new OpenAI client.
func NewClient(opts Options) (*Client, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required")
	}
	if strings.TrimSpace(opts.Model) == "" {
		return nil, fmt.Errorf("LLM_MODEL is required for OpenAI")
	}
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 50 * time.Second
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Authorization", "Bearer "+opts.APIKey).
		SetHeader("Content-Type", "application/json")

	return &Client{httpClient: client, model: opts.Model}, nil
}

// Close releases idle connections.
func (c *Client) Close() error {
	return c.httpClient.Close()
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string         `json:"model"`
	Messages       []chatMessage  `json:"messages"`
	Temperature    float32        `json:"temperature"`
	MaxTokens      int            `json:"max_tokens,omitempty"`
	ResponseFormat responseFormat `json:"response_format"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Message      chatMessage `json:"message"`
		FinishReason string      `json:"finish_reason"`
	} `json:"choices"`
	Usage *struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage,omitempty"`
}

// Complete sends one JSON-mode chat completion and returns the first choice's content.
func (c *Client) Complete(ctx context.Context, req llm.CompletionRequest) (string, error) {
	messages := make([]chatMessage, 0, len(req.Messages))
	for _, m := range req.Messages {
		messages = append(messages, chatMessage{Role: string(m.Role), Content: m.Content})
	}
	body := chatRequest{
		Model:          c.model,
		Messages:       messages,
		Temperature:    req.Temperature,
		MaxTokens:      req.MaxTokens,
		ResponseFormat: responseFormat{Type: "json_object"},
	}

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&chatResponse{}).
		Post("/chat/completions")
	if err != nil {
		return "", fmt.Errorf("openai request: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("openai response error %d: %s", resp.StatusCode(), resp.String())
	}

	parsed, _ := resp.Result().(*chatResponse)
	if parsed == nil || len(parsed.Choices) == 0 {
		return "", fmt.Errorf("openai response missing choices: %s", resp.String())
	}
	content := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("openai response empty content")
	}
	logUsage(c.model, parsed)
	return content, nil
}

func logUsage(model string, resp *chatResponse) {
	fields := map[string]any{"model": model, "finish_reason": resp.Choices[0].FinishReason}
	if resp.Usage != nil {
		fields["prompt_tokens"] = resp.Usage.PromptTokens
		fields["completion_tokens"] = resp.Usage.CompletionTokens
		fields["total_tokens"] = resp.Usage.TotalTokens
	}
	telemetry.Info("llm.response", fields)
}

var _ llm.Client = (*Client)(nil)
