package server

import (
	"errors"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/draftmill/draftmill/internal/config"
	"github.com/draftmill/draftmill/internal/core/compose"
	"github.com/draftmill/draftmill/internal/core/extract"
	"github.com/draftmill/draftmill/internal/core/model"
	"github.com/draftmill/draftmill/internal/core/suggest"
	"github.com/draftmill/draftmill/internal/llm"
	"github.com/draftmill/draftmill/internal/render"
	"github.com/draftmill/draftmill/internal/session"
	"github.com/draftmill/draftmill/internal/store"
	"github.com/draftmill/draftmill/internal/trends"
	"github.com/draftmill/draftmill/internal/youtube"
)

type Server struct {
	Cfg        *config.Config
	YouTube    *youtube.Client
	Store      *store.Store
	Sessions   *session.Manager
	Suggester  *suggest.Suggester
	Composer   *compose.Composer
	Supervisor *llm.Supervisor
}

func New(cfg *config.Config, llmClient llm.Client, yt *youtube.Client, st *store.Store, sup *llm.Supervisor) *Server {
	return &Server{
		Cfg:        cfg,
		YouTube:    yt,
		Store:      st,
		Sessions:   session.NewManager(),
		Suggester:  suggest.NewSuggester(llmClient, st, cfg.Prompts.Suggest),
		Composer:   compose.NewComposer(llmClient, st, cfg.Prompts.ComposeVideo, cfg.Prompts.ComposeColumn),
		Supervisor: sup,
	}
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.Default()

	r.GET("/status", s.Status)
	r.POST("/sessions", s.CreateSession)
	r.POST("/sessions/:id/fetch", s.Fetch)
	r.POST("/sessions/:id/trends", s.UploadTrends)
	r.POST("/sessions/:id/suggest", s.Suggest)
	r.POST("/sessions/:id/compose", s.Compose)
	r.GET("/documents", s.ListDocuments)
	r.GET("/documents/:name", s.PreviewDocument)

	return r
}

func (s *Server) Status(c *gin.Context) {
	status := gin.H{
		"provider": s.Cfg.LLM.Provider,
		"model":    s.Cfg.LLM.Model,
	}
	if s.Supervisor != nil {
		if s.Supervisor.Healthy(c.Request.Context()) {
			status["service"] = "up"
		} else {
			status["service"] = "down"
		}
	} else {
		status["service"] = "external"
	}
	c.JSON(http.StatusOK, status)
}

type CreateSessionRequest struct {
	Model string `json:"model"`
}

func (s *Server) CreateSession(c *gin.Context) {
	var req CreateSessionRequest
	// Body is optional; a missing model falls back to the configured one.
	_ = c.ShouldBindJSON(&req)

	modelName := req.Model
	if modelName == "" {
		modelName = s.Cfg.LLM.Model
	}
	sess := s.Sessions.Create(modelName)
	c.JSON(http.StatusOK, gin.H{"session_id": sess.ID, "model": sess.Model})
}

func (s *Server) getSession(c *gin.Context) (*session.Session, bool) {
	sess, ok := s.Sessions.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown session"})
		return nil, false
	}
	return sess, true
}

type FetchRequest struct {
	Query string `json:"query"`
}

func (s *Server) Fetch(c *gin.Context) {
	sess, ok := s.getSession(c)
	if !ok {
		return
	}

	var req FetchRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Query) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A search query is required"})
		return
	}
	query := strings.TrimSpace(req.Query)

	source := "cache"
	var videos []model.Video
	if path, found := s.Store.Latest(query); found {
		loaded, err := s.Store.LoadVideos(path)
		if err != nil {
			log.Printf("Failed to read cache %s: %v", path, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read cached results"})
			return
		}
		videos = loaded
		log.Printf("Using cached results: %s", filepath.Base(path))
	} else {
		if s.YouTube == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Video search is not configured"})
			return
		}
		fetched, err := s.YouTube.Search(c.Request.Context(), query)
		if err != nil {
			log.Printf("Failed to fetch videos: %v", err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch video data"})
			return
		}
		videos = fetched
		source = "youtube"
		if len(videos) > 0 {
			if path, err := s.Store.SaveVideos(query, videos); err != nil {
				log.Printf("Failed to cache results: %v", err)
			} else {
				log.Printf("Cached results: %s", filepath.Base(path))
			}
		}
	}

	if len(videos) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "No video data found"})
		return
	}

	sess.Query = query
	sess.Videos = videos

	preview := videos
	if len(preview) > 10 {
		preview = preview[:10]
	}
	c.JSON(http.StatusOK, gin.H{
		"count":   len(videos),
		"source":  source,
		"preview": preview,
	})
}

func (s *Server) UploadTrends(c *gin.Context) {
	sess, ok := s.getSession(c)
	if !ok {
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A trends CSV file upload is required"})
		return
	}
	f, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to open uploaded file"})
		return
	}
	defer f.Close()

	keywords, err := trends.Parse(f)
	if err != nil {
		log.Printf("Failed to parse trends CSV: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse trends CSV"})
		return
	}

	sess.Trends = keywords
	c.JSON(http.StatusOK, gin.H{"count": len(keywords)})
}

type SuggestRequest struct {
	Count  int  `json:"count"`
	Rerank bool `json:"rerank"`
}

func (s *Server) Suggest(c *gin.Context) {
	sess, ok := s.getSession(c)
	if !ok {
		return
	}
	if len(sess.Videos) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Fetch video data before requesting suggestions"})
		return
	}

	var req SuggestRequest
	_ = c.ShouldBindJSON(&req)

	keywords, path, err := s.Suggester.Suggest(c.Request.Context(), sess.Query, sess.Videos, sess.Trends, suggest.Options{
		Count:  req.Count,
		Rerank: req.Rerank,
		Model:  sess.Model,
	})
	if err != nil {
		log.Printf("Failed to generate suggestions: %v", err)
		s.renderExtractionError(c, err, "Failed to generate keyword suggestions")
		return
	}

	sess.Suggestions = keywords
	c.JSON(http.StatusOK, gin.H{"keywords": keywords, "file": path})
}

type ComposeRequest struct {
	Keywords []string `json:"keywords"`
	Mode     string   `json:"mode"`
	Audience string   `json:"audience"`
	Purpose  string   `json:"purpose"`
	Sections int      `json:"sections"`
	Duration int      `json:"duration"`
}

type ComposeEntry struct {
	Keyword      string          `json:"keyword"`
	Document     *model.Document `json:"document,omitempty"`
	MarkdownPath string          `json:"markdown_path,omitempty"`
	JSONPath     string          `json:"json_path,omitempty"`
	Error        string          `json:"error,omitempty"`
	Raw          string          `json:"raw,omitempty"`
}

func (s *Server) Compose(c *gin.Context) {
	sess, ok := s.getSession(c)
	if !ok {
		return
	}

	var req ComposeRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Keywords) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "At least one keyword is required"})
		return
	}

	mode := model.Mode(req.Mode)
	if mode != model.ModeColumn {
		mode = model.ModeVideo
	}

	// One keyword failing must not fail the batch; each entry reports its
	// own outcome.
	entries := make([]ComposeEntry, 0, len(req.Keywords))
	for _, kw := range req.Keywords {
		result, err := s.Composer.Compose(c.Request.Context(), compose.Params{
			BaseKeyword: sess.Query,
			Keyword:     kw,
			Model:       sess.Model,
			Mode:        mode,
			Audience:    req.Audience,
			Purpose:     req.Purpose,
			Sections:    req.Sections,
			Duration:    req.Duration,
		})
		if err != nil {
			log.Printf("Failed to compose %q: %v", kw, err)
			entry := ComposeEntry{Keyword: kw, Error: err.Error()}
			var perr *extract.ParseError
			if errors.As(err, &perr) {
				entry.Raw = perr.Raw
			}
			entries = append(entries, entry)
			continue
		}
		doc := result.Document
		entries = append(entries, ComposeEntry{
			Keyword:      kw,
			Document:     &doc,
			MarkdownPath: result.MarkdownPath,
			JSONPath:     result.JSONPath,
		})
	}

	c.JSON(http.StatusOK, gin.H{"results": entries})
}

func (s *Server) ListDocuments(c *gin.Context) {
	entries, err := os.ReadDir(s.Store.OutlineDir)
	if err != nil {
		if os.IsNotExist(err) {
			c.JSON(http.StatusOK, gin.H{"documents": []string{}})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list documents"})
		return
	}

	names := []string{}
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".md") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	c.JSON(http.StatusOK, gin.H{"documents": names})
}

func (s *Server) PreviewDocument(c *gin.Context) {
	name := filepath.Base(c.Param("name"))
	if name == "." || name == ".." || !strings.HasSuffix(name, ".md") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid document name"})
		return
	}

	data, err := os.ReadFile(filepath.Join(s.Store.OutlineDir, name))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
		return
	}

	html, err := render.HTML(string(data))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render document"})
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

// renderExtractionError maps extraction failures onto responses: parse
// failures include the raw model output for diagnosis, everything else gets
// the generic message.
func (s *Server) renderExtractionError(c *gin.Context, err error, msg string) {
	var perr *extract.ParseError
	if errors.As(err, &perr) {
		c.JSON(http.StatusBadGateway, gin.H{"error": msg, "raw": perr.Raw})
		return
	}
	var verr *extract.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadGateway, gin.H{"error": verr.Error()})
		return
	}
	c.JSON(http.StatusBadGateway, gin.H{"error": msg})
}
