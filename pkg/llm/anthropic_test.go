package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/go-playground/assert/v2"
)

func TestAnthropicGeneratePrompt(t *testing.T) {
	var got struct {
		Model     string `json:"model"`
		MaxTokens int64  `json:"max_tokens"`
		Messages  []struct {
			Role    string `json:"role"`
			Content []struct {
				Type string `json:"type"`
				Text string `json:"text"`
			} `json:"content"`
		} `json:"messages"`
	}
	var headers http.Header

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		headers = r.Header.Clone()
		json.NewDecoder(r.Body).Decode(&got)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": "msg_1",
			"type": "message",
			"role": "assistant",
			"model": "claude-haiku-4-5",
			"content": [{"type": "text", "text": "\n Did someone say treat? "}],
			"stop_reason": "end_turn",
			"stop_sequence": null,
			"usage": {"input_tokens": 12, "output_tokens": 8}
		}`))
	}))
	defer srv.Close()

	client := NewAnthropicClient("test-key", "", Options{Style: StyleDog}, option.WithBaseURL(srv.URL))

	res, err := client.GeneratePrompt(context.Background(), PromptInput{
		Classification: "tail wag",
		RequestID:      "req-2",
		CacheBuster:    "cb-2",
	})

	assert.Equal(t, nil, err)
	assert.Equal(t, "Did someone say treat?", res.Text)
	assert.Equal(t, "claude-haiku-4-5", res.ModelUsed)

	assert.Equal(t, "claude-haiku-4-5", got.Model)
	assert.Equal(t, int64(defaultAnthropicMaxTokens), got.MaxTokens)
	assert.Equal(t, 1, len(got.Messages))
	assert.Equal(t, true, strings.Contains(got.Messages[0].Content[0].Text, "tail wag"))

	assert.Equal(t, "test-key", headers.Get("X-Api-Key"))
	assert.Equal(t, "req-2", headers.Get(HeaderRequestID))
	assert.Equal(t, "cb-2", headers.Get(HeaderCacheBuster))
}

func TestAnthropicGeneratePromptUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"type":"error","error":{"type":"overloaded_error","message":"Overloaded"}}`))
	}))
	defer srv.Close()

	client := NewAnthropicClient("test-key", "", Options{}, option.WithBaseURL(srv.URL))

	_, err := client.GeneratePrompt(context.Background(), PromptInput{Classification: "yip"})

	var upErr *UpstreamError
	assert.Equal(t, true, errors.As(err, &upErr))
	assert.Equal(t, http.StatusServiceUnavailable, upErr.StatusCode)
	assert.Equal(t, "anthropic", upErr.Provider)
}

func TestAnthropicGeneratePromptBlankContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": "msg_2",
			"type": "message",
			"role": "assistant",
			"model": "claude-haiku-4-5",
			"content": [{"type": "text", "text": "   "}],
			"stop_reason": "end_turn",
			"stop_sequence": null,
			"usage": {"input_tokens": 12, "output_tokens": 1}
		}`))
	}))
	defer srv.Close()

	client := NewAnthropicClient("test-key", "", Options{}, option.WithBaseURL(srv.URL))

	res, err := client.GeneratePrompt(context.Background(), PromptInput{Classification: "huff"})

	assert.Equal(t, true, res == nil)
	assert.Equal(t, true, errors.Is(err, ErrEmptyCompletion))
}

func TestAnthropicGeneratePromptTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	client := NewAnthropicClient("test-key", "", Options{}, option.WithBaseURL(srv.URL))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := client.GeneratePrompt(ctx, PromptInput{Classification: "snore"})

	assert.Equal(t, true, errors.Is(err, ErrTimeout))
	assert.Equal(t, true, time.Since(start) < time.Second)
}
