package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedRequest struct {
	Path    string
	Auth    string
	Referer string
	Title   string
	Body    map[string]any
}

func completionServer(t *testing.T, status int, body string, calls *int32, captured *capturedRequest) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(calls, 1)
		if captured != nil {
			captured.Path = r.URL.Path
			captured.Auth = r.Header.Get("Authorization")
			captured.Referer = r.Header.Get("HTTP-Referer")
			captured.Title = r.Header.Get("X-Title")
			_ = json.NewDecoder(r.Body).Decode(&captured.Body)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func completionBody(content string) string {
	b, _ := json.Marshal(map[string]any{
		"id":      "gen-1",
		"object":  "chat.completion",
		"created": 1700000000,
		"model":   "deepseek/deepseek-r1-0528:free",
		"choices": []map[string]any{{
			"index":         0,
			"finish_reason": "stop",
			"message":       map[string]any{"role": "assistant", "content": content},
		}},
	})
	return string(b)
}

func TestCompleteSendsSingleUserMessage(t *testing.T) {
	var calls int32
	var captured capturedRequest
	srv := completionServer(t, http.StatusOK, completionBody("hello"), &calls, &captured)

	c := NewOpenRouterClient(ClientOptions{
		BaseURL: srv.URL + "/api/v1",
		Headers: map[string]string{"HTTP-Referer": "https://example.test", "X-Title": "Test", "X-Empty": " "},
	})
	out, err := c.Complete(context.Background(), "sk-test", UserPrompt("m1", 0.7, 1000, "the prompt"))
	require.NoError(t, err)
	assert.Equal(t, "hello", out)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

	assert.Equal(t, "/api/v1/chat/completions", captured.Path)
	assert.Equal(t, "Bearer sk-test", captured.Auth)
	assert.Equal(t, "https://example.test", captured.Referer)
	assert.Equal(t, "Test", captured.Title)
	assert.Equal(t, "m1", captured.Body["model"])
	assert.InDelta(t, 0.7, captured.Body["temperature"], 1e-9)
	assert.InDelta(t, 1000, captured.Body["max_tokens"], 1e-9)

	msgs, ok := captured.Body["messages"].([]any)
	require.True(t, ok)
	require.Len(t, msgs, 1)
	msg := msgs[0].(map[string]any)
	assert.Equal(t, "user", msg["role"])
	assert.Equal(t, "the prompt", msg["content"])
}

func TestCompleteUpstreamErrorIsNotRetried(t *testing.T) {
	var calls int32
	srv := completionServer(t, http.StatusServiceUnavailable, `{"error":{"message":"overloaded","code":503}}`, &calls, nil)

	c := NewOpenRouterClient(ClientOptions{BaseURL: srv.URL})
	_, err := c.Complete(context.Background(), "sk-test", UserPrompt("m1", 0.7, 1000, "p"))
	require.Error(t, err)

	var upErr *UpstreamError
	require.True(t, errors.As(err, &upErr))
	assert.Equal(t, http.StatusServiceUnavailable, upErr.StatusCode)
	assert.Contains(t, upErr.Error(), "503")
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestCompleteEmptyCompletion(t *testing.T) {
	var calls int32
	srv := completionServer(t, http.StatusOK, completionBody(""), &calls, nil)

	c := NewOpenRouterClient(ClientOptions{BaseURL: srv.URL})
	_, err := c.Complete(context.Background(), "sk-test", UserPrompt("m1", 0.7, 1000, "p"))
	assert.ErrorIs(t, err, ErrEmptyCompletion)

	srv2 := completionServer(t, http.StatusOK, `{"id":"x","object":"chat.completion","choices":[]}`, &calls, nil)
	c2 := NewOpenRouterClient(ClientOptions{BaseURL: srv2.URL})
	_, err = c2.Complete(context.Background(), "sk-test", UserPrompt("m1", 0.7, 1000, "p"))
	assert.ErrorIs(t, err, ErrEmptyCompletion)
}

func TestCompleteNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewOpenRouterClient(ClientOptions{BaseURL: url})
	_, err := c.Complete(context.Background(), "sk-test", UserPrompt("m1", 0.7, 1000, "p"))

	var upErr *UpstreamError
	require.True(t, errors.As(err, &upErr))
	assert.Equal(t, 0, upErr.StatusCode)
	assert.Contains(t, upErr.Error(), "request failed")
}

func TestToOpenAIMessagesRoles(t *testing.T) {
	out := toOpenAIMessages([]Message{
		{Role: "system", Content: "s"},
		{Role: "assistant", Content: "a"},
		{Role: "user", Content: "u"},
	})
	require.Len(t, out, 3)
	assert.NotNil(t, out[0].OfSystem)
	assert.NotNil(t, out[1].OfAssistant)
	assert.NotNil(t, out[2].OfUser)
}
