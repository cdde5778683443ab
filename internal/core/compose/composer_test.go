package compose

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/draftmill/draftmill/internal/core/extract"
	"github.com/draftmill/draftmill/internal/core/model"
	"github.com/draftmill/draftmill/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	dir := t.TempDir()
	return store.New(dir, filepath.Join(dir, "outlines"))
}

func TestComposeVideoMode(t *testing.T) {
	mock := &MockLLMClient{
		Response: "```json\n" + `{
			"title": "Knife Skills 101",
			"summary": "Learn the basics.",
			"hashtags": ["cooking"],
			"thumbnail_text": "CUT LIKE A PRO",
			"outline": [
				{"section_title": "Intro (0:00~1:00)", "points": ["why it matters"]}
			]
		}` + "\n```",
	}
	c := NewComposer(mock, newTestStore(t), "", "")

	result, err := c.Compose(context.Background(), Params{
		BaseKeyword: "cooking",
		Keyword:     "knife skills",
		Mode:        model.ModeVideo,
		Sections:    3,
		Duration:    10,
	})

	require.NoError(t, err)
	assert.Equal(t, "Knife Skills 101", result.Document.Title)
	require.Len(t, result.Document.Sections, 1)
	assert.Equal(t, "Intro (0:00~1:00)", result.Document.Sections[0].Heading)

	assert.Contains(t, mock.LastReq.Prompt, `"cooking knife skills"`)
	assert.Contains(t, mock.LastReq.Prompt, "- split into 3 sections")
	assert.Contains(t, mock.LastReq.Prompt, "- video length: 10 minutes")
	assert.Equal(t, 2000, mock.LastReq.MaxTokens)

	md, err := os.ReadFile(result.MarkdownPath)
	require.NoError(t, err)
	assert.Contains(t, string(md), "# Knife Skills 101")
	assert.Contains(t, string(md), "### 1. Intro (0:00~1:00)")
	assert.Contains(t, string(md), "- why it matters")
}

func TestComposeColumnMode(t *testing.T) {
	mock := &MockLLMClient{
		Response: "```json\n" + `{
			"title": "The Quiet Art of Sharpening",
			"category": "cooking, tools, craft",
			"sections": [
				{"heading": "Why edges dull", "body_text": "Every cut takes a toll."}
			]
		}` + "\n```",
	}
	c := NewComposer(mock, newTestStore(t), "", "")

	result, err := c.Compose(context.Background(), Params{
		BaseKeyword: "cooking",
		Keyword:     "sharpening",
		Mode:        model.ModeColumn,
		Sections:    4,
		Duration:    5,
		Audience:    "home cooks",
	})

	require.NoError(t, err)
	assert.Contains(t, mock.LastReq.Prompt, "- roughly 2000 characters in total")
	assert.Contains(t, mock.LastReq.Prompt, "- target reader: home cooks")
	assert.Equal(t, 4000, mock.LastReq.MaxTokens)

	md, err := os.ReadFile(result.MarkdownPath)
	require.NoError(t, err)
	assert.Contains(t, string(md), "Category: cooking, tools, craft")
	assert.Contains(t, string(md), "## Why edges dull")
	assert.Contains(t, string(md), "Every cut takes a toll.")
}

func TestComposePassesModelOverride(t *testing.T) {
	mock := &MockLLMClient{
		Response: "```json\n{\"title\":\"T\"}\n```",
	}
	c := NewComposer(mock, newTestStore(t), "", "")

	_, err := c.Compose(context.Background(), Params{Keyword: "topic", Model: "gemma3:12b"})

	require.NoError(t, err)
	assert.Equal(t, "gemma3:12b", mock.LastReq.Model)
}

func TestComposeRoundTrip(t *testing.T) {
	mock := &MockLLMClient{
		Response: `{"title":"T","sections":[{"heading":"H","body_text":"x"}]}`,
	}
	c := NewComposer(mock, newTestStore(t), "", "")

	result, err := c.Compose(context.Background(), Params{Keyword: "topic", Mode: model.ModeColumn})
	require.NoError(t, err)

	data, err := os.ReadFile(result.JSONPath)
	require.NoError(t, err)

	var reloaded model.Document
	require.NoError(t, json.Unmarshal(data, &reloaded))
	assert.Equal(t, result.Document.Title, reloaded.Title)
	assert.Equal(t, result.Document.Sections, reloaded.Sections)
}

func TestComposeParseErrorCarriesRawText(t *testing.T) {
	mock := &MockLLMClient{
		Response: "I refuse to answer in JSON today.",
	}
	c := NewComposer(mock, newTestStore(t), "", "")

	_, err := c.Compose(context.Background(), Params{Keyword: "topic"})

	var perr *extract.ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "I refuse to answer in JSON today.", perr.Raw)
}

func TestComposeLLMError(t *testing.T) {
	mock := &MockLLMClient{Err: errors.New("connection refused")}
	c := NewComposer(mock, newTestStore(t), "", "")

	_, err := c.Compose(context.Background(), Params{Keyword: "topic"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "generate outline")
}

func TestComposeMissingSectionsStillSaves(t *testing.T) {
	mock := &MockLLMClient{
		Response: "```json\n{\"title\":\"Bare\"}\n```",
	}
	c := NewComposer(mock, newTestStore(t), "", "")

	result, err := c.Compose(context.Background(), Params{Keyword: "topic", Mode: model.ModeColumn})

	require.NoError(t, err)
	assert.Empty(t, result.Document.Sections)
	assert.FileExists(t, result.MarkdownPath)
	assert.FileExists(t, result.JSONPath)
}
