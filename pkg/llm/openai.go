package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const defaultOpenAIModel = "gpt-3.5-turbo"

type OpenAIClient struct {
	client    *openai.Client
	model     openai.ChatModel
	modelName string
	opts      Options
}

// NewOpenAIClient builds a chat-completions client. The SDK retry loop is
// turned off: a failed call surfaces as a single failed relay response.
func NewOpenAIClient(apiKey, model string, opts Options, extra ...option.RequestOption) *OpenAIClient {
	if model == "" {
		model = defaultOpenAIModel
	}

	reqOpts := append([]option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}, extra...)

	client := openai.NewClient(reqOpts...)
	return &OpenAIClient{
		client:    &client,
		model:     openai.ChatModel(model),
		modelName: model,
		opts:      opts,
	}
}

func (c *OpenAIClient) Name() string {
	return "openai"
}

func (c *OpenAIClient) Model() string {
	return c.modelName
}

func (c *OpenAIClient) GeneratePrompt(ctx context.Context, input PromptInput) (*PromptResult, error) {
	params := openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(BuildPrompt(c.opts.Style, input.Classification)),
		},
	}
	if c.opts.MaxTokens > 0 {
		params.MaxTokens = openai.Int(c.opts.MaxTokens)
	}
	if c.opts.Temperature != nil {
		params.Temperature = openai.Float(*c.opts.Temperature)
	}

	resp, err := c.client.Chat.Completions.New(ctx, params, correlationHeaders(input)...)
	if err != nil {
		if terr := timeoutError(ctx, c.Name(), err); terr != nil {
			return nil, terr
		}

		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return nil, newUpstreamError(c.Name(), apiErr.StatusCode, apiErr.Response, err)
		}

		return nil, fmt.Errorf("openai API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("openai: %w", ErrEmptyCompletion)
	}

	text := cleanCompletion(resp.Choices[0].Message.Content)
	if text == "" {
		return nil, fmt.Errorf("openai: %w", ErrEmptyCompletion)
	}

	return &PromptResult{
		Text:      text,
		ModelUsed: c.modelName,
	}, nil
}

func correlationHeaders(input PromptInput) []option.RequestOption {
	var opts []option.RequestOption
	if input.RequestID != "" {
		opts = append(opts, option.WithHeader(HeaderRequestID, input.RequestID))
	}
	if input.CacheBuster != "" {
		opts = append(opts, option.WithHeader(HeaderCacheBuster, input.CacheBuster))
	}
	return opts
}
