package llm

import "context"

type PromptInput struct {
	Classification string
	RequestID      string
	CacheBuster    string
}

type PromptResult struct {
	Text      string
	ModelUsed string
}

type Options struct {
	Style       PromptStyle
	MaxTokens   int64
	// Temperature is sent only when non-nil, so 0 reaches the API as given.
	Temperature *float64
}

type PromptClient interface {
	GeneratePrompt(ctx context.Context, input PromptInput) (*PromptResult, error)
	Name() string
	Model() string
}

// Outbound correlation headers. They identify a single relay call and are
// never part of the prompt text.
const (
	HeaderRequestID   = "X-Request-Id"
	HeaderCacheBuster = "X-Cache-Buster"
)
