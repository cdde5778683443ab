// Package render turns a composed document into its human-readable forms:
// Markdown for the saved artifact and HTML for the web preview.
package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/draftmill/draftmill/internal/core/model"
)

// Markdown renders doc in the layout for its mode. Absent fields render as
// placeholders, never as errors.
func Markdown(doc model.Document, mode model.Mode) string {
	if mode == model.ModeColumn {
		return columnMarkdown(doc)
	}
	return videoMarkdown(doc)
}

func videoMarkdown(doc model.Document) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", orPlaceholder(doc.Title, "No Title"))
	fmt.Fprintf(&b, "## Summary\n%s\n\n", doc.Summary)

	tags := make([]string, 0, len(doc.Hashtags))
	for _, h := range doc.Hashtags {
		tags = append(tags, "#"+h)
	}
	fmt.Fprintf(&b, "## Hashtags\n%s\n\n", strings.Join(tags, " "))
	fmt.Fprintf(&b, "## Keywords\n%s\n\n", strings.Join(doc.Keywords, ", "))
	fmt.Fprintf(&b, "## Thumbnail copy\n> %s\n\n", doc.ThumbnailText)

	b.WriteString("## Outline\n")
	for i, s := range doc.Sections {
		fmt.Fprintf(&b, "### %d. %s\n", i+1, s.Heading)
		for _, p := range s.Points {
			fmt.Fprintf(&b, "- %s\n", p)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func columnMarkdown(doc model.Document) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", orPlaceholder(doc.Title, "No Title"))
	fmt.Fprintf(&b, "Category: %s\n\n", orPlaceholder(doc.Category, "N/A"))
	for _, s := range doc.Sections {
		fmt.Fprintf(&b, "## %s\n\n%s\n\n", orPlaceholder(s.Heading, "No Heading"), s.Body)
	}
	return b.String()
}

func orPlaceholder(v, placeholder string) string {
	if v == "" {
		return placeholder
	}
	return v
}

// HTML converts rendered Markdown for the preview endpoint.
func HTML(md string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	return buf.String(), nil
}
