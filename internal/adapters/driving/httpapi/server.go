// Package httpapi exposes the research service over HTTP with gin.
package httpapi

import (
	"context"
	"embed"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/custodia-labs/deepscout/internal/adapters/driving/render"
	"github.com/custodia-labs/deepscout/internal/core/domain"
	"github.com/custodia-labs/deepscout/internal/core/ports/driving"
	"github.com/custodia-labs/deepscout/internal/logger"
)

//go:embed static/default-favicon.png
var staticFS embed.FS

const (
	defaultListLimit = 20
	shutdownTimeout  = 10 * time.Second
)

// Server serves the research API.
type Server struct {
	research driving.ResearchService
	engine   *gin.Engine
}

// searchRequest accepts JSON bodies and the original HTML form fields.
type searchRequest struct {
	Query string `json:"query" form:"query" binding:"required"`
	Mode  string `json:"mode" form:"search_type"`
}

type askRequest struct {
	SearchID string `json:"search_id" form:"search_id" binding:"required"`
	Question string `json:"question" form:"question" binding:"required"`
}

// outcomeResponse adds the rendered answer to an outcome.
type outcomeResponse struct {
	*domain.Outcome
	HTML string `json:"html"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// NewServer builds the gin engine and registers routes.
func NewServer(research driving.ResearchService) *Server {
	s := &Server{research: research, engine: gin.New()}
	s.engine.Use(gin.Recovery(), requestLogger())

	s.engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	s.engine.GET(domain.DefaultIconURL, func(c *gin.Context) {
		c.FileFromFS("static/default-favicon.png", http.FS(staticFS))
	})
	s.engine.POST("/search", s.handleSearch)
	s.engine.POST("/ask", s.handleAsk)
	s.engine.GET("/searches", s.handleList)
	s.engine.GET("/searches/:id", s.handleGet)

	return s
}

// Handler returns the HTTP handler, for tests and custom listeners.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run listens on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleSearch(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	mode, err := domain.ParseSearchMode(req.Mode)
	if err != nil {
		writeError(c, err)
		return
	}

	outcome, err := s.research.Search(c.Request.Context(), req.Query, mode)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, withHTML(outcome))
}

func (s *Server) handleAsk(c *gin.Context) {
	var req askRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	outcome, err := s.research.Ask(c.Request.Context(), req.SearchID, req.Question)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, withHTML(outcome))
}

func (s *Server) handleGet(c *gin.Context) {
	outcome, err := s.research.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, withHTML(outcome))
}

func (s *Server) handleList(c *gin.Context) {
	limit := defaultListLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, errorResponse{Error: "limit must be a non-negative integer"})
			return
		}
		limit = n
	}

	searches, err := s.research.List(c.Request.Context(), limit)
	if err != nil {
		writeError(c, err)
		return
	}
	if searches == nil {
		searches = []domain.Search{}
	}
	c.JSON(http.StatusOK, gin.H{"searches": searches})
}

func withHTML(outcome *domain.Outcome) outcomeResponse {
	return outcomeResponse{Outcome: outcome, HTML: render.MarkdownToHTML(outcome.Answer)}
}

// writeError maps domain errors to status codes.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, errorResponse{Error: domain.MsgSearchNotFound})
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrUnsupportedType):
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	default:
		logger.Error("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("%s %s -> %d (%s)", c.Request.Method, c.Request.URL.Path,
			c.Writer.Status(), time.Since(start).Round(time.Millisecond))
	}
}
