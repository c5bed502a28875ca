package llm

import (
	"context"
	"errors"
)

// Client abstracts generative-language providers. Implementations take a
// fully built prompt and return the raw model text, which callers parse.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// CompleteFunc adapts a function to the Client interface.
type CompleteFunc func(ctx context.Context, prompt string) (string, error)

// Complete calls the wrapped function.
func (f CompleteFunc) Complete(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// ErrNotImplemented is returned by the placeholder client.
var ErrNotImplemented = errors.New("LLM not implemented")

// PlaceholderClient is a stub implementation until provider wiring is added.
type PlaceholderClient struct{}

// Complete returns ErrNotImplemented.
func (PlaceholderClient) Complete(ctx context.Context, prompt string) (string, error) {
	_ = ctx
	_ = prompt
	return "", ErrNotImplemented
}
