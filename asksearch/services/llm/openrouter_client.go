// asksearch/services/llm/openrouter_client.go
package llm

import (
	"asksearch/asksearch/utils/logging"
	"context"
	"errors"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"go.uber.org/zap"
)

const DefaultBaseURL = "https://openrouter.ai/api/v1"

// OpenRouterClient talks to any OpenAI-compatible chat-completion endpoint.
// OpenRouter routes the DeepSeek model used by the search endpoint.
type OpenRouterClient struct {
	client  openai.Client
	baseURL string
}

type ClientOptions struct {
	BaseURL string
	// Headers are sent with every request (HTTP-Referer, X-Title).
	Headers map[string]string
	// Timeout of 0 leaves the transport default in place.
	Timeout time.Duration
}

func NewOpenRouterClient(opts ClientOptions) *OpenRouterClient {
	baseURL := strings.TrimSpace(opts.BaseURL)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	reqOpts := []option.RequestOption{
		option.WithBaseURL(baseURL),
		option.WithMaxRetries(0),
	}
	for key, value := range opts.Headers {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			reqOpts = append(reqOpts, option.WithHeader(key, trimmed))
		}
	}
	if opts.Timeout > 0 {
		reqOpts = append(reqOpts, option.WithRequestTimeout(opts.Timeout))
	}

	return &OpenRouterClient{
		client:  openai.NewClient(reqOpts...),
		baseURL: baseURL,
	}
}

// Complete executes a single chat completion request (non-streaming, no retry).
func (c *OpenRouterClient) Complete(ctx context.Context, apiKey string, req ChatRequest) (string, error) {
	defer logging.LogDuration(ctx, "openrouter_complete")()

	params := openai.ChatCompletionNewParams{
		Model:    req.Model,
		Messages: toOpenAIMessages(req.Messages),
	}
	if req.Temperature > 0 {
		params.Temperature = openai.Float(req.Temperature)
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = openai.Int(req.MaxTokens)
	}

	resp, err := c.client.Chat.Completions.New(ctx, params, option.WithAPIKey(apiKey))
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			logging.ErrorLogger.Error("upstream API error",
				zap.Int("status", apiErr.StatusCode),
				zap.String("message", apiErr.Message),
				zap.String("trace_id", logging.TraceID(ctx)),
			)
			return "", &UpstreamError{StatusCode: apiErr.StatusCode, Body: apiErr.Message, Err: err}
		}
		logging.ErrorLogger.Error("upstream request failed",
			zap.Error(err),
			zap.String("base_url", c.baseURL),
			zap.String("trace_id", logging.TraceID(ctx)),
		)
		return "", &UpstreamError{Err: err}
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", ErrEmptyCompletion
	}
	return resp.Choices[0].Message.Content, nil
}

func toOpenAIMessages(msgs []Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(msgs))
	for _, m := range msgs {
		switch m.Role {
		case "system":
			out = append(out, openai.SystemMessage(m.Content))
		case "assistant":
			out = append(out, openai.AssistantMessage(m.Content))
		default:
			out = append(out, openai.UserMessage(m.Content))
		}
	}
	return out
}
