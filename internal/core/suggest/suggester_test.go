package suggest

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/draftmill/draftmill/internal/core/extract"
	"github.com/draftmill/draftmill/internal/core/model"
	"github.com/draftmill/draftmill/internal/store"
	"github.com/draftmill/draftmill/internal/trends"
)

func testVideos() []model.Video {
	return []model.Video{
		{Title: "10 easy weeknight dinners"},
		{Title: "Meal prep for beginners"},
	}
}

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	dir := t.TempDir()
	return store.New(dir, filepath.Join(dir, "outlines"))
}

func TestSuggestParsesAndSaves(t *testing.T) {
	mock := &MockLLMClient{
		Responses: []string{"Sure:\n```csv\nkeyword\nbatch cooking\nfreezer meals\n```"},
	}
	st := newTestStore(t)
	s := NewSuggester(mock, st, "")

	keywords, path, err := s.Suggest(context.Background(), "dinner recipes", testVideos(), nil, Options{Count: 5})

	require.NoError(t, err)
	assert.Equal(t, []string{"batch cooking", "freezer meals"}, keywords)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "keyword\nbatch cooking\nfreezer meals\n", string(data))
}

func TestSuggestPromptContents(t *testing.T) {
	mock := &MockLLMClient{
		Responses: []string{"```csv\nkeyword\nx\n```"},
	}
	s := NewSuggester(mock, newTestStore(t), "")

	trendKeywords := []trends.Keyword{{Keyword: "air fryer", Importance: "+300%"}}
	_, _, err := s.Suggest(context.Background(), "dinner recipes", testVideos(), trendKeywords, Options{Count: 7})

	require.NoError(t, err)
	require.Len(t, mock.Requests, 1)
	prompt := mock.Requests[0].Prompt
	assert.Contains(t, prompt, `"dinner recipes"`)
	assert.Contains(t, prompt, "10 easy weeknight dinners")
	assert.Contains(t, prompt, "air fryer (+300%)")
	assert.Contains(t, prompt, "generate 7 new related topics")
	assert.InDelta(t, 0.7, mock.Requests[0].Temperature, 0.001)
	assert.Equal(t, 500, mock.Requests[0].MaxTokens)
}

func TestSuggestPassesModelOverride(t *testing.T) {
	mock := &MockLLMClient{
		Responses: []string{
			"```csv\nkeyword\nalpha\nbeta\n```",
			"1, 0",
		},
	}
	s := NewSuggester(mock, newTestStore(t), "")

	_, _, err := s.Suggest(context.Background(), "q", testVideos(), nil, Options{Rerank: true, Model: "gemma3:12b"})

	require.NoError(t, err)
	require.Len(t, mock.Requests, 2)
	assert.Equal(t, "gemma3:12b", mock.Requests[0].Model)
	assert.Equal(t, "gemma3:12b", mock.Requests[1].Model)
}

func TestSuggestLLMError(t *testing.T) {
	mock := &MockLLMClient{Err: errors.New("connection refused")}
	s := NewSuggester(mock, newTestStore(t), "")

	_, _, err := s.Suggest(context.Background(), "q", testVideos(), nil, Options{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "generate keywords")
}

func TestSuggestMissingColumnSurfacesValidationError(t *testing.T) {
	mock := &MockLLMClient{
		Responses: []string{"```csv\ntopic\nA\n```"},
	}
	s := NewSuggester(mock, newTestStore(t), "")

	_, _, err := s.Suggest(context.Background(), "q", testVideos(), nil, Options{})

	var verr *extract.ValidationError
	require.True(t, errors.As(err, &verr))
}

func TestSuggestWithRerank(t *testing.T) {
	mock := &MockLLMClient{
		Responses: []string{
			"```csv\nkeyword\nalpha\nbeta\ngamma\n```",
			"2, 0, 1",
		},
	}
	s := NewSuggester(mock, newTestStore(t), "")

	keywords, _, err := s.Suggest(context.Background(), "q", testVideos(), nil, Options{Rerank: true})

	require.NoError(t, err)
	assert.Equal(t, []string{"gamma", "alpha", "beta"}, keywords)
	require.Len(t, mock.Requests, 2)
	assert.Contains(t, mock.Requests[1].Prompt, "[0] alpha")
}

func TestRerankFallsBackOnError(t *testing.T) {
	mock := &MockLLMClient{Err: errors.New("timeout")}
	r := NewReranker(mock)

	ranked := r.Rank(context.Background(), "", "q", []string{"a", "b"})

	assert.Equal(t, []string{"a", "b"}, ranked)
}

func TestRerankIgnoresBogusIndices(t *testing.T) {
	mock := &MockLLMClient{Responses: []string{"1, 9, 1, 0"}}
	r := NewReranker(mock)

	ranked := r.Rank(context.Background(), "", "q", []string{"a", "b", "c"})

	assert.Equal(t, []string{"b", "a", "c"}, ranked)
}

func TestRerankSingleKeywordSkipsCall(t *testing.T) {
	mock := &MockLLMClient{}
	r := NewReranker(mock)

	ranked := r.Rank(context.Background(), "", "q", []string{"only"})

	assert.Equal(t, []string{"only"}, ranked)
	assert.Empty(t, mock.Requests)
}
