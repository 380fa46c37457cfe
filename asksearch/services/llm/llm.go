// asksearch/services/llm/llm.go
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

type ChatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int64     `json:"max_tokens"`
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Completer runs one non-streaming chat completion and returns the text of
// the first choice.
type Completer interface {
	Complete(ctx context.Context, apiKey string, req ChatRequest) (string, error)
}

// ErrEmptyCompletion means the upstream answered 2xx without any text.
var ErrEmptyCompletion = errors.New("no content received from upstream API")

// UpstreamError wraps a failed upstream call. StatusCode is 0 when the
// request never got an HTTP response.
type UpstreamError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("upstream API request failed: %v", e.Err)
	}
	return fmt.Sprintf("upstream API error: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// UserPrompt builds the single-turn request used by the search endpoint.
func UserPrompt(model string, temperature float64, maxTokens int64, prompt string) ChatRequest {
	return ChatRequest{
		Model:       model,
		Messages:    []Message{{Role: "user", Content: prompt}},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	}
}
