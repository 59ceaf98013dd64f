package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const (
	defaultAnthropicModel = "claude-haiku-4-5"
	// The messages API requires an explicit output bound.
	defaultAnthropicMaxTokens = 60
)

type AnthropicClient struct {
	client    *anthropic.Client
	model     anthropic.Model
	modelName string
	opts      Options
}

func NewAnthropicClient(apiKey, model string, opts Options, extra ...option.RequestOption) *AnthropicClient {
	if model == "" {
		model = defaultAnthropicModel
	}

	reqOpts := append([]option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}, extra...)

	client := anthropic.NewClient(reqOpts...)
	return &AnthropicClient{
		client:    &client,
		model:     anthropic.Model(model),
		modelName: model,
		opts:      opts,
	}
}

func (c *AnthropicClient) Name() string {
	return "anthropic"
}

func (c *AnthropicClient) Model() string {
	return c.modelName
}

func (c *AnthropicClient) GeneratePrompt(ctx context.Context, input PromptInput) (*PromptResult, error) {
	maxTokens := c.opts.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultAnthropicMaxTokens
	}

	params := anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(BuildPrompt(c.opts.Style, input.Classification))),
		},
	}
	if c.opts.Temperature != nil {
		params.Temperature = anthropic.Float(*c.opts.Temperature)
	}

	var headers []option.RequestOption
	if input.RequestID != "" {
		headers = append(headers, option.WithHeader(HeaderRequestID, input.RequestID))
	}
	if input.CacheBuster != "" {
		headers = append(headers, option.WithHeader(HeaderCacheBuster, input.CacheBuster))
	}

	resp, err := c.client.Messages.New(ctx, params, headers...)
	if err != nil {
		if terr := timeoutError(ctx, c.Name(), err); terr != nil {
			return nil, terr
		}

		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) {
			return nil, newUpstreamError(c.Name(), apiErr.StatusCode, apiErr.Response, err)
		}

		return nil, fmt.Errorf("anthropic API error: %w", err)
	}

	if len(resp.Content) == 0 {
		return nil, fmt.Errorf("anthropic: %w", ErrEmptyCompletion)
	}

	// A non-text first block has no Text and is treated as empty.
	text := cleanCompletion(resp.Content[0].Text)
	if text == "" {
		return nil, fmt.Errorf("anthropic: %w", ErrEmptyCompletion)
	}

	return &PromptResult{
		Text:      text,
		ModelUsed: c.modelName,
	}, nil
}
