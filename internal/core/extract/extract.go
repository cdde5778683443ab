// Package extract locates structured payloads embedded in free-form model
// output and turns them into validated records. Matching is two-stage: a
// strict fenced-block search first, then a format-specific fallback scan.
// Extraction is lossy on purpose: extra CSV columns are projected away and
// missing optional JSON fields default, because the model does not reliably
// honor the requested format.
package extract

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/draftmill/draftmill/internal/core/model"
)

// ParseError means no payload in the response parsed as the expected format.
// Raw keeps the full model response so the operator can inspect it.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("payload did not parse: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ValidationError means the payload parsed but a mandatory column is missing.
type ValidationError struct {
	Column string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("mandatory column %q missing from payload", e.Column)
}

const keywordColumn = "keyword"

// headerAliases maps localized header spellings to canonical column names.
var headerAliases = map[string]string{
	"キーワード": keywordColumn,
}

var (
	fenceMu sync.Mutex
	fences  = map[string]*regexp.Regexp{
		"csv":  regexp.MustCompile("(?s)```csv\\n(.*?)```"),
		"json": regexp.MustCompile("(?s)```json\\n(.*?)\\n```"),
	}
)

// fenceFor compiles the pattern for an unseen tag once and reuses it after.
func fenceFor(tag string) *regexp.Regexp {
	fenceMu.Lock()
	defer fenceMu.Unlock()
	re, ok := fences[tag]
	if !ok {
		re = regexp.MustCompile("(?s)```" + regexp.QuoteMeta(tag) + "\\n(.*?)```")
		fences[tag] = re
	}
	return re
}

// FencedBlock returns the contents of the first fenced block tagged with tag.
// Matching is non-greedy, so when the model emits two blocks only the first
// is used.
func FencedBlock(raw string, tag string) (string, bool) {
	m := fenceFor(tag).FindStringSubmatch(raw)
	if len(m) < 2 {
		return "", false
	}
	return m[1], true
}

// Keywords extracts the suggested keyword list from raw model output. The
// mandatory column is "keyword" (or a known alias); other columns are
// silently discarded. Order and duplicates are kept as the model emitted
// them.
func Keywords(raw string) ([]string, error) {
	payload, ok := FencedBlock(raw, "csv")
	if ok {
		payload = strings.TrimSpace(payload)
	} else {
		payload = scanCSVLines(raw)
	}
	if payload == "" {
		return nil, &ParseError{Raw: raw, Err: errors.New("no CSV payload found")}
	}

	r := csv.NewReader(strings.NewReader(payload))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, &ParseError{Raw: raw, Err: err}
	}
	if len(records) == 0 {
		return nil, &ParseError{Raw: raw, Err: errors.New("empty CSV payload")}
	}

	col := -1
	for i, h := range records[0] {
		if canonicalHeader(h) == keywordColumn {
			col = i
			break
		}
	}
	if col == -1 {
		return nil, &ValidationError{Column: keywordColumn}
	}

	var keywords []string
	for _, row := range records[1:] {
		if col >= len(row) {
			continue
		}
		if v := strings.TrimSpace(row[col]); v != "" {
			keywords = append(keywords, v)
		}
	}
	return keywords, nil
}

func canonicalHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	if canon, ok := headerAliases[h]; ok {
		return canon
	}
	return h
}

// scanCSVLines is the fallback when no fenced block is present: collect
// everything from the first line containing a header keyword onward, skipping
// blank lines.
func scanCSVLines(raw string) string {
	var lines []string
	in := false
	for _, line := range strings.Split(raw, "\n") {
		if !in && containsHeaderKeyword(line) {
			in = true
		}
		if in && strings.TrimSpace(line) != "" {
			lines = append(lines, strings.TrimSpace(line))
		}
	}
	return strings.Join(lines, "\n")
}

func containsHeaderKeyword(line string) bool {
	if strings.Contains(strings.ToLower(line), keywordColumn) {
		return true
	}
	for alias := range headerAliases {
		if strings.Contains(line, alias) {
			return true
		}
	}
	return false
}

// Object locates and decodes a JSON payload of type T: a fenced json block
// when present, otherwise the substring between the first '{' and the last
// '}' in the text.
func Object[T any](raw string) (T, error) {
	var zero T

	payload, ok := FencedBlock(raw, "json")
	if !ok {
		start := strings.Index(raw, "{")
		end := strings.LastIndex(raw, "}")
		if start == -1 || end < start {
			return zero, &ParseError{Raw: raw, Err: errors.New("no JSON object found in response")}
		}
		payload = raw[start : end+1]
	}

	var result T
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		return zero, &ParseError{Raw: raw, Err: err}
	}
	return result, nil
}

// rawDocument accepts both section shapes the two compose prompts request:
// the column shape (sections/heading/body_text) and the video shape
// (outline/section_title/points).
type rawDocument struct {
	Title         string       `json:"title"`
	Summary       string       `json:"summary"`
	Category      string       `json:"category"`
	Hashtags      []string     `json:"hashtags"`
	Keywords      []string     `json:"keywords"`
	ThumbnailText string       `json:"thumbnail_text"`
	Sections      []rawSection `json:"sections"`
	Outline       []rawSection `json:"outline"`
}

type rawSection struct {
	Heading      string   `json:"heading"`
	SectionTitle string   `json:"section_title"`
	Points       []string `json:"points"`
	Body         string   `json:"body_text"`
}

// Document extracts a composed document from raw model output. A missing
// section list yields an empty slice, not an error; only a payload that does
// not decode as an object fails.
func Document(raw string) (model.Document, error) {
	rd, err := Object[rawDocument](raw)
	if err != nil {
		return model.Document{}, err
	}

	doc := model.Document{
		Title:         rd.Title,
		Summary:       rd.Summary,
		Category:      rd.Category,
		Hashtags:      rd.Hashtags,
		Keywords:      rd.Keywords,
		ThumbnailText: rd.ThumbnailText,
		Sections:      []model.Section{},
	}

	src := rd.Sections
	if len(src) == 0 {
		src = rd.Outline
	}
	for _, s := range src {
		heading := s.Heading
		if heading == "" {
			heading = s.SectionTitle
		}
		doc.Sections = append(doc.Sections, model.Section{
			Heading: heading,
			Points:  s.Points,
			Body:    s.Body,
		})
	}
	return doc, nil
}
