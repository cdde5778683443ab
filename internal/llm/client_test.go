package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequestResolveModel(t *testing.T) {
	assert.Equal(t, "gemma3:latest", Request{}.resolveModel("gemma3:latest"))
	assert.Equal(t, "gemma3:12b", Request{Model: "gemma3:12b"}.resolveModel("gemma3:latest"))
}
