package llm

import (
	"context"
)

// Request carries one generation call: the prompt plus sampling options.
// A non-empty Model overrides the client's configured model for this call.
type Request struct {
	Prompt      string
	Model       string
	Temperature float32
	MaxTokens   int
}

func (r Request) resolveModel(fallback string) string {
	if r.Model != "" {
		return r.Model
	}
	return fallback
}

type Client interface {
	Generate(ctx context.Context, req Request) (string, error)
}
