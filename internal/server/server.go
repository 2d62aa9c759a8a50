package server

import (
	"bufio"
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/agenthands/titlecheck/internal/core"
	"github.com/agenthands/titlecheck/internal/core/model"
	"github.com/agenthands/titlecheck/internal/store"
)

type Server struct {
	Engine *core.Engine
	Store  store.TitleStore
}

func New(engine *core.Engine, titleStore store.TitleStore) *Server {
	return &Server{
		Engine: engine,
		Store:  titleStore,
	}
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.Default()

	r.GET("/", s.Root)
	r.GET("/health", s.Health)
	r.GET("/favicon.ico", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	r.POST("/check-similarity", s.CheckSimilarity)
	r.POST("/check-similarity/upload", s.CheckSimilarityUpload)
	r.POST("/titles", s.RegisterTitle)
	r.GET("/titles", s.ListTitles)

	return r
}

func (s *Server) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Title Uniqueness Service",
		"endpoints": gin.H{
			"health":           "/health",
			"check_similarity": "/check-similarity",
			"titles":           "/titles",
		},
		"status": "running",
	})
}

func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

type CheckRequest struct {
	Title     string   `json:"title"`
	Threshold *float64 `json:"threshold"`
}

type matchResponse struct {
	Title      string           `json:"title"`
	Similarity float64          `json:"similarity"`
	Type       model.SignalType `json:"type"`
}

type checkResponse struct {
	Status  model.Verdict   `json:"status"`
	Matches []matchResponse `json:"matches"`
}

func (s *Server) CheckSimilarity(c *gin.Context) {
	var req CheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	corpus, err := s.Store.List(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list titles")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load corpus"})
		return
	}

	s.check(c, req.Title, corpus, req.Threshold)
}

// CheckSimilarityUpload runs the same check against a corpus read from an
// uploaded file (one title per line) instead of the registry.
func (s *Server) CheckSimilarityUpload(c *gin.Context) {
	var threshold *float64
	if raw := c.PostForm("threshold"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Threshold must be a number"})
			return
		}
		threshold = &v
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A corpus file is required"})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		log.Error().Err(err).Str("file", fileHeader.Filename).Msg("failed to open upload")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read uploaded file"})
		return
	}
	defer f.Close()

	var corpus []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			corpus = append(corpus, line)
		}
	}
	if err := scanner.Err(); err != nil {
		log.Error().Err(err).Str("file", fileHeader.Filename).Msg("failed to scan upload")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read uploaded file"})
		return
	}

	s.check(c, c.PostForm("title"), corpus, threshold)
}

func (s *Server) check(c *gin.Context, title string, corpus []string, threshold *float64) {
	title = strings.TrimSpace(title)
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title is required"})
		return
	}

	result, err := s.Engine.Check(c.Request.Context(), title, corpus, threshold)
	if err != nil {
		if errors.Is(err, core.ErrInvalidThreshold) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		log.Error().Err(err).Str("title", title).Msg("similarity check failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check similarity"})
		return
	}

	c.JSON(http.StatusOK, toCheckResponse(result))
}

func toCheckResponse(result model.CheckResult) checkResponse {
	matches := make([]matchResponse, len(result.Matches))
	for i, m := range result.Matches {
		matches[i] = matchResponse{
			Title:      m.Title,
			Similarity: math.Round(m.Similarity*100) / 100,
			Type:       m.Signal,
		}
	}
	return checkResponse{Status: result.Verdict, Matches: matches}
}

type RegisterRequest struct {
	Title string `json:"title"`
	// Force registers the title even when it is not unique.
	Force bool `json:"force"`
}

func (s *Server) RegisterTitle(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title is required"})
		return
	}

	if !req.Force {
		corpus, err := s.Store.List(c.Request.Context())
		if err != nil {
			log.Error().Err(err).Msg("failed to list titles")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load corpus"})
			return
		}

		result, err := s.Engine.Check(c.Request.Context(), title, corpus, nil)
		if err != nil {
			log.Error().Err(err).Str("title", title).Msg("similarity check failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check similarity"})
			return
		}
		if result.Verdict == model.VerdictNotUnique {
			resp := toCheckResponse(result)
			c.JSON(http.StatusConflict, gin.H{
				"error":   "Title is not unique",
				"status":  resp.Status,
				"matches": resp.Matches,
			})
			return
		}
	}

	registered, err := s.Store.Register(c.Request.Context(), title)
	if err != nil {
		log.Error().Err(err).Str("title", title).Msg("failed to register title")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register title"})
		return
	}

	c.JSON(http.StatusCreated, registered)
}

func (s *Server) ListTitles(c *gin.Context) {
	titles, err := s.Store.List(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list titles")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load titles"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"titles": titles})
}
