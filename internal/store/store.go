// Package store is the flat-file persistence layer: cached search-result
// tables, suggestion lists, and composed outline artifacts. Files are named
// by sanitized input plus a one-second-granularity timestamp; collisions
// within the same second are accepted. There is no locking.
package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/draftmill/draftmill/internal/core/model"
)

const timestampLayout = "20060102_150405"

var videoHeader = []string{"videoId", "title", "viewCount", "likeCount", "duration", "description"}

type Store struct {
	CacheDir   string
	OutlineDir string

	// now is swappable for tests.
	now func() time.Time
}

func New(cacheDir, outlineDir string) *Store {
	return &Store{
		CacheDir:   cacheDir,
		OutlineDir: outlineDir,
		now:        time.Now,
	}
}

var unsafeRunes = regexp.MustCompile(`[^\p{L}\p{N}\s_-]`)

// Sanitize strips filename-unsafe runes and truncates to 20 runes.
func Sanitize(s string) string {
	s = unsafeRunes.ReplaceAllString(s, "")
	r := []rune(s)
	if len(r) > 20 {
		r = r[:20]
	}
	return strings.TrimSpace(string(r))
}

// SaveVideos writes the fetched table as <query>_<ts>.csv in the cache dir.
func (s *Store) SaveVideos(query string, videos []model.Video) (string, error) {
	if err := os.MkdirAll(s.CacheDir, 0o755); err != nil {
		return "", fmt.Errorf("create cache dir: %w", err)
	}

	name := fmt.Sprintf("%s_%s.csv", Sanitize(query), s.now().Format(timestampLayout))
	path := filepath.Join(s.CacheDir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(videoHeader); err != nil {
		return "", err
	}
	for _, v := range videos {
		row := []string{
			v.ID,
			v.Title,
			strconv.FormatUint(v.ViewCount, 10),
			strconv.FormatUint(v.LikeCount, 10),
			v.Duration,
			v.Description,
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// LoadVideos reads a cached table back. Columns are matched by header name
// so older files with reordered columns still load.
func (s *Store) LoadVideos(path string) ([]model.Video, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	col := map[string]int{}
	for i, h := range records[0] {
		col[strings.TrimSpace(h)] = i
	}

	cell := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	var videos []model.Video
	for _, row := range records[1:] {
		views, _ := strconv.ParseUint(cell(row, "viewCount"), 10, 64)
		likes, _ := strconv.ParseUint(cell(row, "likeCount"), 10, 64)
		videos = append(videos, model.Video{
			ID:          cell(row, "videoId"),
			Title:       cell(row, "title"),
			ViewCount:   views,
			LikeCount:   likes,
			Duration:    cell(row, "duration"),
			Description: cell(row, "description"),
		})
	}
	return videos, nil
}

// Latest returns the newest cached table for query by modification time.
func (s *Store) Latest(query string) (string, bool) {
	pattern := filepath.Join(s.CacheDir, Sanitize(query)+"_*.csv")
	matches, err := filepath.Glob(pattern)
	if err != nil || len(matches) == 0 {
		return "", false
	}

	latest := ""
	var latestMod time.Time
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil {
			continue
		}
		if latest == "" || info.ModTime().After(latestMod) {
			latest = m
			latestMod = info.ModTime()
		}
	}
	return latest, latest != ""
}

// SaveSuggestions writes the keyword list as suggestions_<ts>.csv.
func (s *Store) SaveSuggestions(keywords []string) (string, error) {
	if err := os.MkdirAll(s.CacheDir, 0o755); err != nil {
		return "", fmt.Errorf("create cache dir: %w", err)
	}

	path := filepath.Join(s.CacheDir, fmt.Sprintf("suggestions_%s.csv", s.now().Format(timestampLayout)))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"keyword"}); err != nil {
		return "", err
	}
	for _, k := range keywords {
		if err := w.Write([]string{k}); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// SaveOutline writes the human-readable Markdown and the machine-readable
// JSON copy of a composed document under the outline dir, sharing a base
// name of <sanitized-base>_<sanitized-keyword>_<ts>.
func (s *Store) SaveOutline(base, keyword, markdown string, doc model.Document) (string, string, error) {
	if err := os.MkdirAll(s.OutlineDir, 0o755); err != nil {
		return "", "", fmt.Errorf("create outline dir: %w", err)
	}

	stem := fmt.Sprintf("%s_%s_%s", Sanitize(base), Sanitize(keyword), s.now().Format(timestampLayout))
	mdPath := filepath.Join(s.OutlineDir, stem+".md")
	jsonPath := filepath.Join(s.OutlineDir, stem+".json")

	if err := os.WriteFile(mdPath, []byte(markdown), 0o644); err != nil {
		return "", "", fmt.Errorf("write %s: %w", mdPath, err)
	}

	data, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return "", "", fmt.Errorf("marshal document: %w", err)
	}
	if err := os.WriteFile(jsonPath, data, 0o644); err != nil {
		return "", "", fmt.Errorf("write %s: %w", jsonPath, err)
	}

	return mdPath, jsonPath, nil
}
