// Package server exposes the optimization engine over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/teilomillet/promptlift/optimizer"
	"github.com/teilomillet/promptlift/utils"
)

const shutdownTimeout = 10 * time.Second

// Server routes HTTP requests to an optimizer.Engine.
type Server struct {
	engine       *optimizer.Engine
	logger       utils.Logger
	allowOrigins []string
	router       *gin.Engine
}

// Option configures a Server.
type Option func(*Server)

func WithLogger(l utils.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithAllowOrigins restricts CORS to the given origins. By default every
// origin is allowed.
func WithAllowOrigins(origins ...string) Option {
	return func(s *Server) { s.allowOrigins = origins }
}

// New builds the router. The engine stays owned by the caller.
func New(engine *optimizer.Engine, opts ...Option) *Server {
	s := &Server{
		engine: engine,
		logger: utils.NewLogger(utils.LogLevelInfo),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.newRouter()
	return s
}

func (s *Server) newRouter() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	corsConfig := cors.DefaultConfig()
	if len(s.allowOrigins) == 0 {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = s.allowOrigins
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", requestIDHeader}
	corsConfig.ExposeHeaders = []string{requestIDHeader}
	corsConfig.MaxAge = 12 * time.Hour

	r.Use(
		requestID(),
		s.logging(),
		s.recovery(),
		cors.New(corsConfig),
	)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	v1 := r.Group("/v1")
	v1.POST("/optimize", s.handleOptimize)
	v1.POST("/batch", s.handleBatch)
	v1.POST("/realtime", s.handleRealtime)
	v1.POST("/score", s.handleScore)
	v1.GET("/analytics", s.handleAnalytics)
	v1.DELETE("/analytics", s.handleClearAnalytics)
	v1.DELETE("/cache", s.handleClearCache)
	v1.GET("/history", s.handleHistory)
	v1.GET("/history/schema", s.handleHistorySchema)
	return r
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.logger.Info("Shutting down HTTP server")
	return srv.Shutdown(shutdownCtx)
}
