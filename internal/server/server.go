// Package server assembles the HTTP service around the direction adapter.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/gotrs-io/gotrs-rtl/internal/api"
	"github.com/gotrs-io/gotrs-rtl/internal/config"
	"github.com/gotrs-io/gotrs-rtl/internal/direction"
	"github.com/gotrs-io/gotrs-rtl/internal/i18n"
	"github.com/gotrs-io/gotrs-rtl/internal/metrics"
	"github.com/gotrs-io/gotrs-rtl/internal/middleware"
	"github.com/gotrs-io/gotrs-rtl/internal/template"
	"github.com/gotrs-io/gotrs-rtl/internal/version"
)

// Server is the configured HTTP service.
type Server struct {
	cfg       *config.Config
	logger    *zap.Logger
	engine    *gin.Engine
	metrics   *metrics.Metrics
	direction *middleware.DirectionMiddleware
}

// New builds the gin engine and registers all routes.
func New(cfg *config.Config, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	opts, err := RuleOptions(cfg.I18n.RulesFile)
	if err != nil {
		return nil, err
	}

	if cfg.App.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		cfg:       cfg,
		logger:    logger,
		engine:    gin.New(),
		metrics:   metrics.New(),
		direction: middleware.NewDirectionMiddleware(cfg.I18n, opts...),
	}

	if cfg.App.IsProduction() {
		// X-Forwarded-For is only honoured from proxies configured explicitly.
		if err := s.engine.SetTrustedProxies(nil); err != nil {
			return nil, fmt.Errorf("failed to set trusted proxies: %w", err)
		}
	}

	s.engine.Use(gin.Recovery(), middleware.RequestID(), middleware.RequestLogger(logger))
	if cfg.Server.MaxBodyBytes > 0 {
		s.engine.Use(limitBody(cfg.Server.MaxBodyBytes))
	}
	if cfg.Metrics.Enabled {
		s.engine.Use(middleware.Metrics(s.metrics))
		s.engine.GET(cfg.Metrics.Path, gin.WrapH(promhttp.HandlerFor(s.metrics.Registry(), promhttp.HandlerOpts{})))
	}
	s.engine.Use(s.direction.Handle())

	s.engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": cfg.App.Name, "version": version.GetInfo()})
	})

	api.NewDirectionHandler(s.metrics, opts...).RegisterRoutes(s.engine)
	api.NewLanguageHandler(s.direction).RegisterRoutes(s.engine)

	if err := s.registerPreview(); err != nil {
		return nil, err
	}

	return s, nil
}

// RuleOptions loads the extra class rules file, if configured.
func RuleOptions(path string) ([]direction.Option, error) {
	rules, err := direction.LoadRulesFile(path)
	if err != nil {
		return nil, err
	}
	if len(rules) == 0 {
		return nil, nil
	}
	return []direction.Option{direction.WithRules(rules...)}, nil
}

func (s *Server) registerPreview() error {
	dir := s.cfg.Templates.Dir
	if _, err := os.Stat(dir); err != nil {
		s.logger.Warn("template directory not found, preview page disabled", zap.String("dir", dir))
		return nil
	}

	renderer, err := template.NewPongo2Renderer(dir, !s.cfg.Templates.Cache, s.logger)
	if err != nil {
		return fmt.Errorf("failed to create template renderer: %w", err)
	}

	s.engine.GET("/preview", func(c *gin.Context) {
		renderer.HTML(c, http.StatusOK, "preview.pongo2", gin.H{
			"Title":     s.cfg.App.Name,
			"Languages": i18n.GetEnabledLanguages(),
		})
	})
	return nil
}

func limitBody(n int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
		}
		c.Next()
	}
}

// Handler returns the HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// ApplyConfig applies the reloadable parts of a new configuration.
func (s *Server) ApplyConfig(cfg *config.Config) {
	s.direction.UpdateConfig(cfg.I18n)
	s.logger.Info("i18n settings reloaded", zap.String("default_language", cfg.I18n.DefaultLanguage))
}

// Run serves until ctx is cancelled, then shuts down gracefully within
// server.shutdown_timeout.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Server.GetServerAddr(),
		Handler:      s.engine,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
	defer cancel()

	s.logger.Info("shutting down server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}
