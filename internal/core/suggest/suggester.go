package suggest

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/draftmill/draftmill/internal/core/extract"
	"github.com/draftmill/draftmill/internal/core/model"
	"github.com/draftmill/draftmill/internal/llm"
	"github.com/draftmill/draftmill/internal/store"
	"github.com/draftmill/draftmill/internal/trends"
)

const defaultPrompt = `You are a skilled copywriter.
Example video titles found for the search keyword "%s":

%s
%s
From the common themes of these videos, generate %d new related topics.
Avoid proper nouns such as place names, product names, or person names; keep the topics generic.

Output in the following CSV format:
` + "```csv\nkeyword\ntopic 1\ntopic 2\n...\n```\n"

// sampleTitles caps how many result titles go into the prompt.
const sampleTitles = 10

type Suggester struct {
	LLM      llm.Client
	Store    *store.Store
	Reranker *Reranker
	Prompt   string
}

func NewSuggester(llmClient llm.Client, st *store.Store, prompt string) *Suggester {
	if prompt == "" {
		prompt = defaultPrompt
	}
	return &Suggester{
		LLM:      llmClient,
		Store:    st,
		Reranker: NewReranker(llmClient),
		Prompt:   prompt,
	}
}

type Options struct {
	Count  int
	Rerank bool
	Model  string // overrides the configured model when set
}

// Suggest asks the model for related topic keywords based on fetched video
// titles and optional trend keywords, and saves the normalized list to a
// timestamped CSV. The returned path is the saved file.
func (s *Suggester) Suggest(ctx context.Context, query string, videos []model.Video, trendKeywords []trends.Keyword, opts Options) ([]string, string, error) {
	if opts.Count <= 0 {
		opts.Count = 5
	}

	prompt := fmt.Sprintf(s.Prompt, query, titlesBlock(videos), trendsBlock(trendKeywords), opts.Count)

	response, err := s.LLM.Generate(ctx, llm.Request{
		Prompt:      prompt,
		Model:       opts.Model,
		Temperature: 0.7,
		MaxTokens:   500,
	})
	if err != nil {
		return nil, "", fmt.Errorf("generate keywords: %w", err)
	}

	keywords, err := extract.Keywords(response)
	if err != nil {
		return nil, "", err
	}

	if opts.Rerank {
		keywords = s.Reranker.Rank(ctx, opts.Model, query, keywords)
	}

	path, err := s.Store.SaveSuggestions(keywords)
	if err != nil {
		return nil, "", fmt.Errorf("save suggestions: %w", err)
	}
	log.Printf("Saved %d suggested keywords to %s", len(keywords), path)

	return keywords, path, nil
}

func titlesBlock(videos []model.Video) string {
	n := len(videos)
	if n > sampleTitles {
		n = sampleTitles
	}
	titles := make([]string, 0, n)
	for _, v := range videos[:n] {
		titles = append(titles, v.Title)
	}
	return strings.Join(titles, "\n")
}

func trendsBlock(keywords []trends.Keyword) string {
	if len(keywords) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("\nGoogle Trends also reports these related keywords, currently popular or rising fast.\n")
	b.WriteString("They carry extra weight, so include them where they fit:\n\n")
	for _, k := range keywords {
		fmt.Fprintf(&b, "- %s (%s)\n", k.Keyword, k.Importance)
	}
	return b.String()
}
