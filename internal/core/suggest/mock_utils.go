package suggest

import (
	"context"

	"github.com/draftmill/draftmill/internal/llm"
)

type MockLLMClient struct {
	Responses []string
	Err       error
	Requests  []llm.Request

	next int
}

func (m *MockLLMClient) Generate(ctx context.Context, req llm.Request) (string, error) {
	m.Requests = append(m.Requests, req)
	if m.Err != nil {
		return "", m.Err
	}
	if m.next >= len(m.Responses) {
		return "", nil
	}
	resp := m.Responses[m.next]
	m.next++
	return resp, nil
}
