// Package trends parses the related-keywords CSV that Google Trends exports.
// The file is not regular CSV: it holds a TOP and a RISING section, each
// introduced by a header line, with quoted keyword/value rows underneath.
package trends

import (
	"fmt"
	"io"
	"strings"
)

type Keyword struct {
	Keyword    string `json:"keyword"`
	Importance string `json:"importance"`
}

const (
	topHeader    = "TOP"
	risingHeader = "RISING"
)

// Parse reads a Trends export and merges both sections, TOP rows first,
// preserving file order. Lines before the first section header and category
// preamble lines are skipped.
func Parse(r io.Reader) ([]Keyword, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read trends csv: %w", err)
	}

	var keywords []Keyword
	started := false
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.Contains(line, topHeader) || strings.Contains(line, risingHeader) {
			started = true
			continue
		}
		if !started || strings.Contains(line, "カテゴリ:") {
			continue
		}

		parts := strings.SplitN(line, ",", 2)
		if len(parts) < 2 {
			continue
		}
		keywords = append(keywords, Keyword{
			Keyword:    strings.Trim(parts[0], `"`),
			Importance: strings.Trim(parts[1], `"`),
		})
	}
	return keywords, nil
}
