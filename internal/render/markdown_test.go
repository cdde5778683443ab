package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/draftmill/draftmill/internal/core/model"
)

func TestVideoMarkdownLayout(t *testing.T) {
	doc := model.Document{
		Title:         "T",
		Summary:       "the summary",
		Hashtags:      []string{"one", "two"},
		Keywords:      []string{"a", "b"},
		ThumbnailText: "CLICK",
		Sections: []model.Section{
			{Heading: "Intro", Points: []string{"p1", "p2"}},
			{Heading: "Main", Points: []string{"p3"}},
		},
	}

	md := Markdown(doc, model.ModeVideo)

	assert.Contains(t, md, "# T\n")
	assert.Contains(t, md, "## Summary\nthe summary\n")
	assert.Contains(t, md, "#one #two")
	assert.Contains(t, md, "a, b")
	assert.Contains(t, md, "> CLICK")
	assert.Contains(t, md, "### 1. Intro\n- p1\n- p2\n")
	assert.Contains(t, md, "### 2. Main\n- p3\n")
}

func TestColumnMarkdownLayout(t *testing.T) {
	doc := model.Document{
		Title:    "T",
		Category: "craft",
		Sections: []model.Section{{Heading: "H", Body: "body text"}},
	}

	md := Markdown(doc, model.ModeColumn)

	assert.Contains(t, md, "# T\n")
	assert.Contains(t, md, "Category: craft\n")
	assert.Contains(t, md, "## H\n\nbody text\n")
}

func TestMarkdownPlaceholders(t *testing.T) {
	md := Markdown(model.Document{}, model.ModeColumn)

	assert.Contains(t, md, "# No Title")
	assert.Contains(t, md, "Category: N/A")
}

func TestHTML(t *testing.T) {
	html, err := HTML("# Heading\n\nsome *text*\n")

	require.NoError(t, err)
	assert.Contains(t, html, "<h1>Heading</h1>")
	assert.Contains(t, html, "<em>text</em>")
}
