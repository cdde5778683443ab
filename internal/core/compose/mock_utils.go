package compose

import (
	"context"

	"github.com/draftmill/draftmill/internal/llm"
)

type MockLLMClient struct {
	Response string
	Err      error
	LastReq  llm.Request
}

func (m *MockLLMClient) Generate(ctx context.Context, req llm.Request) (string, error) {
	m.LastReq = req
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}
