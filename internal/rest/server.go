// Package rest exposes the task runner over HTTP.
package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/cognicore/saffron/pkg/saffron"
	"github.com/cognicore/saffron/pkg/saffron/document"
	"github.com/cognicore/saffron/pkg/saffron/internalerr"
)

// Server routes task runs to a Runner
type Server struct {
	Runner *saffron.Runner
	// StoreURL is the document store base URL for reference inputs
	StoreURL string
	Log      zerolog.Logger
}

// RunRequest is the POST /run/:task body. Either Text is set, or the
// store reference fields are.
type RunRequest struct {
	Text string `json:"text"`

	Index string `json:"index"`
	Type  string `json:"type"`
	ID    string `json:"id"`
	Field string `json:"field"`

	Params map[string]string `json:"params"`
}

// Router builds the gin engine
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/", s.handleInfo)
	router.POST("/run/:task", s.handleRun)

	return router
}

func (s *Server) handleInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tasks": saffron.Tasks()})
}

func (s *Server) handleRun(c *gin.Context) {
	task := c.Param("task")

	var req RunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	fetcher, err := s.fetcher(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := s.Runner.Run(c.Request.Context(), task, fetcher, req.Params)
	if err != nil {
		s.Log.Error().Err(err).Str("task", task).Msg("task failed")
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	s.Log.Info().Str("task", task).Msg("task completed")
	c.JSON(http.StatusOK, gin.H{"task": task, "result": result})
}

func (s *Server) fetcher(req RunRequest) (document.Fetcher, error) {
	if req.Text != "" {
		return document.Literal(req.Text), nil
	}
	if req.Index != "" && req.ID != "" && req.Field != "" {
		return document.StoreRef{
			BaseURL: s.StoreURL,
			Index:   req.Index,
			Type:    req.Type,
			ID:      req.ID,
			Field:   req.Field,
		}, nil
	}
	return nil, errors.New("provide either text or an index/id/field reference")
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, internalerr.ErrUnknownTask):
		return http.StatusNotFound
	case errors.Is(err, internalerr.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, internalerr.ErrInvalidConfig):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
