package server

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/teilomillet/promptlift/export"
	"github.com/teilomillet/promptlift/optimizer"
	"github.com/teilomillet/promptlift/types"
)

// optionsRequest carries the optimization options shared by several routes.
// Empty fields keep the engine defaults.
type optionsRequest struct {
	Level                string   `json:"level"`
	Platform             string   `json:"platform"`
	Style                string   `json:"style"`
	Context              []string `json:"context"`
	IncludeAnalysis      *bool    `json:"includeAnalysis"`
	IncludeSuggestions   *bool    `json:"includeSuggestions"`
	GenerateAlternatives *bool    `json:"generateAlternatives"`
}

type optimizeRequest struct {
	Prompt string `json:"prompt"`
	optionsRequest
}

type batchRequest struct {
	Prompts     []string `json:"prompts" binding:"required,max=100"`
	Concurrent  int      `json:"concurrent" binding:"min=0,max=20"`
	StopOnError bool     `json:"stopOnError"`
	optionsRequest
}

type batchResponse struct {
	*optimizer.BatchResult
	Stopped bool `json:"stopped"`
}

// toOptions parses the request enums at the boundary so unknown values are
// rejected instead of ignored.
func (r optionsRequest) toOptions() ([]optimizer.OptimizeOption, error) {
	var opts []optimizer.OptimizeOption
	if r.Level != "" {
		level, err := types.ParseLevel(r.Level)
		if err != nil {
			return nil, err
		}
		opts = append(opts, optimizer.WithLevel(level))
	}
	if r.Platform != "" {
		platform, err := types.ParsePlatform(r.Platform)
		if err != nil {
			return nil, err
		}
		opts = append(opts, optimizer.WithPlatform(platform))
	}
	if r.Style != "" {
		style, err := types.ParseStyle(r.Style)
		if err != nil {
			return nil, err
		}
		opts = append(opts, optimizer.WithStyle(style))
	}
	if len(r.Context) > 0 {
		opts = append(opts, optimizer.WithContext(r.Context...))
	}
	if r.IncludeAnalysis != nil {
		opts = append(opts, optimizer.WithIncludeAnalysis(*r.IncludeAnalysis))
	}
	if r.IncludeSuggestions != nil {
		opts = append(opts, optimizer.WithIncludeSuggestions(*r.IncludeSuggestions))
	}
	if r.GenerateAlternatives != nil {
		opts = append(opts, optimizer.WithGenerateAlternatives(*r.GenerateAlternatives))
	}
	return opts, nil
}

func (s *Server) handleOptimize(c *gin.Context) {
	var req optimizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	opts, err := req.toOptions()
	if err != nil {
		s.respondEngineError(c, err)
		return
	}

	res, err := s.engine.Optimize(c.Request.Context(), req.Prompt, opts...)
	if err != nil {
		s.respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (s *Server) handleBatch(c *gin.Context) {
	var req batchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	opts, err := req.toOptions()
	if err != nil {
		s.respondEngineError(c, err)
		return
	}

	bo := optimizer.BatchOptions{Concurrent: req.Concurrent, StopOnError: req.StopOnError}
	res, err := s.engine.BatchOptimize(c.Request.Context(), req.Prompts, bo, opts...)
	var itemErr *types.BatchItemError
	if err != nil && !errors.As(err, &itemErr) {
		s.respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, batchResponse{BatchResult: res, Stopped: itemErr != nil})
}

func (s *Server) handleRealtime(c *gin.Context) {
	var req optimizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	opts, err := req.toOptions()
	if err != nil {
		s.respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, s.engine.RealtimeSuggestions(req.Prompt, opts...))
}

func (s *Server) handleScore(c *gin.Context) {
	var req optimizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	style, err := types.ParseStyle(req.Style)
	if err != nil {
		s.respondEngineError(c, err)
		return
	}
	platform, err := types.ParsePlatform(req.Platform)
	if err != nil {
		s.respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, s.engine.Scorer().CalculateQualityScore(req.Prompt, style, platform))
}

func (s *Server) handleAnalytics(c *gin.Context) {
	c.JSON(http.StatusOK, s.engine.Analytics())
}

func (s *Server) handleClearAnalytics(c *gin.Context) {
	if err := s.engine.ClearAnalytics(c.Request.Context()); err != nil {
		s.respondEngineError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleClearCache(c *gin.Context) {
	s.engine.ClearCache()
	c.Status(http.StatusNoContent)
}

func (s *Server) handleHistory(c *gin.Context) {
	format, err := export.ParseFormat(c.Query("format"))
	if err != nil {
		s.respondEngineError(c, err)
		return
	}
	records, err := s.engine.History(c.Request.Context())
	if err != nil {
		s.respondEngineError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, format, records); err != nil {
		s.respondEngineError(c, err)
		return
	}
	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}

func (s *Server) handleHistorySchema(c *gin.Context) {
	c.JSON(http.StatusOK, export.Schema())
}

// respondEngineError maps validation errors to 400 and everything else to 500.
func (s *Server) respondEngineError(c *gin.Context, err error) {
	if types.IsValidation(err) {
		s.respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}
	s.respondError(c, http.StatusInternalServerError, "internal", err.Error())
}
