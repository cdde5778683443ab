package compose

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/draftmill/draftmill/internal/core/extract"
	"github.com/draftmill/draftmill/internal/core/model"
	"github.com/draftmill/draftmill/internal/llm"
	"github.com/draftmill/draftmill/internal/render"
	"github.com/draftmill/draftmill/internal/store"
)

// charsPerMinute estimates column volume from the requested reading time.
const charsPerMinute = 400

type Params struct {
	BaseKeyword string
	Keyword     string
	Model       string // overrides the configured model when set
	Mode        model.Mode
	Audience    string
	Purpose     string
	Sections    int
	Duration    int // minutes: video length, or column reading time
}

type Result struct {
	Document     model.Document
	Markdown     string
	MarkdownPath string
	JSONPath     string
}

type Composer struct {
	LLM          llm.Client
	Store        *store.Store
	VideoPrompt  string
	ColumnPrompt string
}

func NewComposer(llmClient llm.Client, st *store.Store, videoPrompt, columnPrompt string) *Composer {
	if videoPrompt == "" {
		videoPrompt = defaultVideoPrompt
	}
	if columnPrompt == "" {
		columnPrompt = defaultColumnPrompt
	}
	return &Composer{
		LLM:          llmClient,
		Store:        st,
		VideoPrompt:  videoPrompt,
		ColumnPrompt: columnPrompt,
	}
}

// Compose expands one selected keyword into a structured outline or article
// and persists it as Markdown plus JSON. Any failure is returned to the
// caller as an error with a readable message; the raw model output rides
// along on parse failures.
func (c *Composer) Compose(ctx context.Context, p Params) (*Result, error) {
	if p.Sections <= 0 {
		p.Sections = 4
	}
	if p.Duration <= 0 {
		p.Duration = 15
	}
	if p.Mode == "" {
		p.Mode = model.ModeVideo
	}

	topic := strings.TrimSpace(p.BaseKeyword + " " + p.Keyword)
	prompt, maxTokens := c.buildPrompt(topic, p)

	response, err := c.LLM.Generate(ctx, llm.Request{
		Prompt:      prompt,
		Model:       p.Model,
		Temperature: 0.7,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("generate outline: %w", err)
	}

	doc, err := extract.Document(response)
	if err != nil {
		return nil, err
	}

	markdown := render.Markdown(doc, p.Mode)
	mdPath, jsonPath, err := c.Store.SaveOutline(p.BaseKeyword, p.Keyword, markdown, doc)
	if err != nil {
		return nil, fmt.Errorf("save outline: %w", err)
	}
	log.Printf("Saved outline for %q to %s", topic, mdPath)

	return &Result{
		Document:     doc,
		Markdown:     markdown,
		MarkdownPath: mdPath,
		JSONPath:     jsonPath,
	}, nil
}

func (c *Composer) buildPrompt(topic string, p Params) (string, int) {
	if p.Mode == model.ModeColumn {
		return fmt.Sprintf(c.ColumnPrompt, topic, columnConditions(p)), 4000
	}
	return fmt.Sprintf(c.VideoPrompt, topic, videoConditions(p)), 2000
}

func videoConditions(p Params) string {
	conditions := []string{
		fmt.Sprintf("- split into %d sections", p.Sections),
		fmt.Sprintf("- video length: %d minutes", p.Duration),
	}
	if p.Audience != "" {
		conditions = append(conditions, "- target audience: "+p.Audience)
	}
	if p.Purpose != "" {
		conditions = append(conditions, "- purpose of the video: "+p.Purpose)
	}
	conditions = append(conditions, "- a structure beginners can follow")
	return strings.Join(conditions, "\n")
}

func columnConditions(p Params) string {
	conditions := []string{
		fmt.Sprintf("- split into %d sections, each with a heading and body text", p.Sections),
		fmt.Sprintf("- roughly %d characters in total", p.Duration*charsPerMinute),
	}
	if p.Audience != "" {
		conditions = append(conditions, "- target reader: "+p.Audience)
	}
	if p.Purpose != "" {
		conditions = append(conditions, "- purpose of the article: "+p.Purpose)
	}
	conditions = append(conditions, "- avoid jargon; write so a beginner can follow")
	return strings.Join(conditions, "\n")
}
