package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	_ "neon-transcriber/docs" // swagger docs
	"neon-transcriber/internal/api/middleware"
	"neon-transcriber/internal/api/v1/handlers"
	v1routes "neon-transcriber/internal/api/v1/routes"
	"neon-transcriber/internal/app/api"
	"neon-transcriber/internal/app/metrics"
	"neon-transcriber/internal/app/upload"
	"neon-transcriber/internal/config"
	"neon-transcriber/web"
	webhandlers "neon-transcriber/web/handlers"
)

// Server represents the API server
type Server struct {
	config     config.ServerConfig
	router     *gin.Engine
	httpServer *http.Server
	listener   net.Listener
	done       chan error
	logger     *slog.Logger
}

// NewServer wires the page, the upload endpoint, health, metrics and docs
// onto a gin engine.
func NewServer(
	cfg config.ServerConfig,
	transcriber api.Transcriber,
	spooler *upload.Spooler,
	m *metrics.Metrics,
	logger *slog.Logger,
) (*Server, error) {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if cfg.Environment == "test" {
		gin.SetMode(gin.TestMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	router.MaxMultipartMemory = cfg.MultipartMemory()

	router.Use(middleware.RequestID())
	router.Use(middleware.StructuredLogging(logger))
	router.Use(middleware.Metrics(m))
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now().Unix(),
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(m.Registry(), promhttp.HandlerOpts{Registry: m.Registry()})))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	pageConfig := webhandlers.DefaultPageConfig()
	page, err := webhandlers.NewPageHandler(web.Assets, pageConfig, logger)
	if err != nil {
		return nil, err
	}
	static, err := webhandlers.NewStaticHandler(web.Assets)
	if err != nil {
		return nil, err
	}
	router.GET("/", page.Index)
	static.Register(router, pageConfig.StaticPrefix)

	transcribeHandler := handlers.NewTranscribeHandler(transcriber, spooler, m, logger)
	v1routes.RegisterRoutes(router.Group("/api"), transcribeHandler)

	httpServer := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &Server{
		config:     cfg,
		router:     router,
		httpServer: httpServer,
		done:       make(chan error, 1),
		logger:     logger,
	}, nil
}

// Start binds the listen address and serves in the background. Bind errors
// are returned directly; later serve errors arrive on Done.
func (s *Server) Start() error {
	listener, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.httpServer.Addr, err)
	}
	s.listener = listener

	s.logger.Info("Starting API server",
		"address", listener.Addr().String(),
		"environment", s.config.Environment,
	)

	go func() {
		err := s.httpServer.Serve(listener)
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		if err != nil {
			s.logger.Error("Server stopped unexpectedly", "error", err)
		}
		s.done <- err
	}()

	return nil
}

// Done reports the result of the serve loop once it exits.
func (s *Server) Done() <-chan error {
	return s.done
}

// Addr returns the bound address, or the configured one before Start.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.httpServer.Addr
}

// Shutdown gracefully shuts down the server, waiting for in-flight uploads.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down API server...")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("Server forced to shutdown", "error", err)
		return err
	}

	s.logger.Info("API server shutdown complete")
	return nil
}

// Router returns the Gin router (useful for testing)
func (s *Server) Router() *gin.Engine {
	return s.router
}
