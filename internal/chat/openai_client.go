package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultOpenAIBaseURL = "https://api.openai.com/v1"

// OpenAIClient implements LLMClient against any OpenAI-compatible
// chat-completions endpoint (OpenAI itself, or a proxy/gateway speaking the
// same wire format). The base URL is configurable so local gateways work.
type OpenAIClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewOpenAIClient creates a client for an OpenAI-compatible endpoint. The
// timeout bounds each completion call; zero falls back to 60s.
func NewOpenAIClient(baseURL, apiKey string, timeout time.Duration) *OpenAIClient {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = defaultOpenAIBaseURL
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &OpenAIClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
	}
}

type openAIChatRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	MaxTokens   int32         `json:"max_tokens,omitempty"`
	Temperature *float32      `json:"temperature,omitempty"`
	TopP        float32       `json:"top_p,omitempty"`
}

type openAIChatResponse struct {
	Choices []struct {
		Message      ChatMessage `json:"message"`
		FinishReason string      `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int32 `json:"prompt_tokens"`
		CompletionTokens int32 `json:"completion_tokens"`
		TotalTokens      int32 `json:"total_tokens"`
	} `json:"usage"`
}

// Complete requests exactly one completion via POST /chat/completions.
func (c *OpenAIClient) Complete(ctx context.Context, req LLMRequest) (LLMResponse, error) {
	if strings.TrimSpace(req.Model) == "" {
		return LLMResponse{}, errors.New("chat: model is required")
	}

	// The wire format carries system prompts inline as messages.
	messages := make([]ChatMessage, 0, len(req.System)+len(req.Messages))
	for _, block := range req.System {
		if strings.TrimSpace(block) == "" {
			continue
		}
		messages = append(messages, ChatMessage{Role: RoleSystem, Content: block})
	}
	messages = append(messages, req.Messages...)
	if len(messages) == 0 {
		return LLMResponse{}, errors.New("chat: at least one message is required")
	}

	payload := openAIChatRequest{
		Model:     req.Model,
		Messages:  messages,
		MaxTokens: req.MaxTokens,
	}
	if req.Temperature >= 0 {
		t := req.Temperature
		payload.Temperature = &t
	}
	if req.TopP != 0 {
		payload.TopP = req.TopP
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return LLMResponse{}, fmt.Errorf("chat: encode completion request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return LLMResponse{}, fmt.Errorf("chat: build completion request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	res, err := c.client.Do(httpReq)
	if err != nil {
		return LLMResponse{}, err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
		return LLMResponse{}, fmt.Errorf("chat: completion endpoint returned %s: %s", res.Status, strings.TrimSpace(string(detail)))
	}

	var decoded openAIChatResponse
	if err := json.NewDecoder(res.Body).Decode(&decoded); err != nil {
		return LLMResponse{}, fmt.Errorf("chat: decode completion response: %w", err)
	}
	if len(decoded.Choices) == 0 {
		return LLMResponse{}, errors.New("chat: completion response contained no choices")
	}

	choice := decoded.Choices[0]
	text := strings.TrimSpace(choice.Message.Content)
	if text == "" {
		return LLMResponse{}, errors.New("chat: completion choice contained no content")
	}

	return LLMResponse{
		Text:       text,
		StopReason: choice.FinishReason,
		Usage: TokenUsage{
			InputTokens:  decoded.Usage.PromptTokens,
			OutputTokens: decoded.Usage.CompletionTokens,
			TotalTokens:  decoded.Usage.TotalTokens,
		},
	}, nil
}
