package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/draftmill/draftmill/internal/core/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	return New(dir, filepath.Join(dir, "outlines"))
}

func TestSaveAndLoadVideos(t *testing.T) {
	s := newTestStore(t)
	videos := []model.Video{
		{ID: "abc", Title: "A title, with comma", ViewCount: 1200, LikeCount: 34, Duration: "0:04:13", Description: "multi\nline"},
		{ID: "def", Title: "Plain", ViewCount: 0, LikeCount: 0, Duration: "0:00", Description: ""},
	}

	path, err := s.SaveVideos("dinner recipes", videos)
	require.NoError(t, err)
	assert.Contains(t, filepath.Base(path), "dinner recipes_")

	loaded, err := s.LoadVideos(path)
	require.NoError(t, err)
	assert.Equal(t, videos, loaded)
}

func TestLatestPicksNewestByModTime(t *testing.T) {
	s := newTestStore(t)

	older := filepath.Join(s.CacheDir, "query_20240101_000000.csv")
	newer := filepath.Join(s.CacheDir, "query_20240601_000000.csv")
	require.NoError(t, os.WriteFile(older, []byte("videoId\n"), 0o644))
	require.NoError(t, os.WriteFile(newer, []byte("videoId\n"), 0o644))

	old := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(older, old, old))

	path, ok := s.Latest("query")
	require.True(t, ok)
	assert.Equal(t, newer, path)
}

func TestLatestNoMatch(t *testing.T) {
	s := newTestStore(t)

	_, ok := s.Latest("nothing")

	assert.False(t, ok)
}

func TestLatestDoesNotMatchOtherQueries(t *testing.T) {
	s := newTestStore(t)
	other := filepath.Join(s.CacheDir, "other_20240101_000000.csv")
	require.NoError(t, os.WriteFile(other, []byte("videoId\n"), 0o644))

	_, ok := s.Latest("query")

	assert.False(t, ok)
}

func TestSaveSuggestions(t *testing.T) {
	s := newTestStore(t)

	path, err := s.SaveSuggestions([]string{"a", "b, with comma"})
	require.NoError(t, err)
	assert.Contains(t, filepath.Base(path), "suggestions_")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "keyword\na\n\"b, with comma\"\n", string(data))
}

func TestSaveOutline(t *testing.T) {
	s := newTestStore(t)
	doc := model.Document{Title: "T", Sections: []model.Section{{Heading: "H", Body: "x"}}}

	mdPath, jsonPath, err := s.SaveOutline("base", "topic", "# T\n", doc)
	require.NoError(t, err)

	assert.Equal(t, filepath.Dir(mdPath), filepath.Dir(jsonPath))
	stem := filepath.Base(mdPath)
	assert.Equal(t, stem[:len(stem)-3]+".json", filepath.Base(jsonPath))

	md, err := os.ReadFile(mdPath)
	require.NoError(t, err)
	assert.Equal(t, "# T\n", string(md))
	assert.FileExists(t, jsonPath)
}

func TestSanitize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"simple", "simple"},
		{"slash/and:colon", "slashandcolon"},
		{"日本語のキーワード", "日本語のキーワード"},
		{"with space", "with space"},
		{"0123456789012345678901234", "01234567890123456789"},
		{"dots.and(parens)", "dotsandparens"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Sanitize(tc.in), "input %q", tc.in)
	}
}
