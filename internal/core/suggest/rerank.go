package suggest

import (
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/draftmill/draftmill/internal/llm"
)

// Reranker reorders suggested keywords by relevance to the seed query with a
// second model call. Any failure falls back to the original order.
type Reranker struct {
	LLM llm.Client
}

func NewReranker(client llm.Client) *Reranker {
	return &Reranker{LLM: client}
}

func (r *Reranker) Rank(ctx context.Context, modelName string, query string, keywords []string) []string {
	if len(keywords) < 2 {
		return keywords
	}

	list := ""
	for i, k := range keywords {
		list += fmt.Sprintf("[%d] %s\n", i, k)
	}

	prompt := fmt.Sprintf(`You are a search relevance optimization system.
Seed keyword: %s

Candidate topics:
%s
Rank the topics above by how promising they are as content ideas for the seed keyword.
Output ONLY the indices in order of relevance, separated by commas.
Example: 0, 2, 1
Do not output any other text.`, query, list)

	resp, err := r.LLM.Generate(ctx, llm.Request{Prompt: prompt, Model: modelName, MaxTokens: 200})
	if err != nil {
		return keywords
	}

	ordered := make([]string, 0, len(keywords))
	seen := make(map[int]bool)
	for _, i := range parseIndices(resp) {
		if i >= 0 && i < len(keywords) && !seen[i] {
			seen[i] = true
			ordered = append(ordered, keywords[i])
		}
	}
	// Keywords the model forgot keep their original relative order.
	for i, k := range keywords {
		if !seen[i] {
			ordered = append(ordered, k)
		}
	}
	return ordered
}

func parseIndices(s string) []int {
	re := regexp.MustCompile(`\d+`)
	matches := re.FindAllString(s, -1)
	var indices []int
	for _, m := range matches {
		if i, err := strconv.Atoi(m); err == nil {
			indices = append(indices, i)
		}
	}
	return indices
}
