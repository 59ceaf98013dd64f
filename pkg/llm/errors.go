package llm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
)

var (
	ErrTimeout         = errors.New("completion API timed out")
	ErrEmptyCompletion = errors.New("no completion returned")
)

// UpstreamError is a non-2xx answer from the completion API. Body holds the
// raw response payload when it could be read.
type UpstreamError struct {
	Provider   string
	StatusCode int
	Body       []byte
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s API returned status %d", e.Provider, e.StatusCode)
	}
	return fmt.Sprintf("%s API returned status %d: %v", e.Provider, e.StatusCode, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

func newUpstreamError(provider string, statusCode int, resp *http.Response, err error) *UpstreamError {
	ue := &UpstreamError{Provider: provider, StatusCode: statusCode, Err: err}
	if resp != nil && resp.Body != nil {
		if body, readErr := io.ReadAll(resp.Body); readErr == nil {
			ue.Body = body
		}
	}
	return ue
}

func timeoutError(ctx context.Context, provider string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w", provider, ErrTimeout)
	}
	return nil
}
