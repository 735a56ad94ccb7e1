package llm

import (
	"context"
	"errors"
)

// Client abstracts LLM providers behind a single prompt-completion call.
type Client interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// Request is a system+user prompt pair plus sampling options.
type Request struct {
	SystemPrompt string
	UserPrompt   string
	Temperature  float32
	MaxTokens    int
	// JSONMode asks the provider to emit a single JSON object.
	JSONMode bool
}

// ErrNotImplemented is returned when no provider is configured.
var ErrNotImplemented = errors.New("LLM not implemented")
