// Package demo implements a local stand-in for the deployed services the
// comparison tool measures: a minimal CRUD REST service with a metrics
// endpoint, mirroring the payload shape of the Cloud Run demo applications.
package demo

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// ServerConfig identifies the simulated service variant. ImageType and
// ConnectionPool are report labels only; they let one binary impersonate any
// of the deployment variants under comparison.
type ServerConfig struct {
	Addr           string // listen address, e.g. ":8080"
	Application    string // application name reported by /metrics
	Profile        string // active profile label
	ImageType      string // e.g. "JVM" or "Native (GraalVM)"
	ConnectionPool string // e.g. "HikariCP" or "Cloud SQL Connector"
}

// Server is one demo target instance.
type Server struct {
	cfg       ServerConfig
	engine    *gin.Engine
	messages  *MessageStore
	startedAt time.Time
	startupMs int64
}

// NewServer wires the demo routes. processStart should be captured as early
// as possible in main so the reported startup time covers process init.
func NewServer(cfg ServerConfig, processStart time.Time) *Server {
	if cfg.Application == "" {
		cfg.Application = "cloudrun-bench-demo"
	}
	if cfg.Profile == "" {
		cfg.Profile = "default"
	}
	if cfg.ImageType == "" {
		cfg.ImageType = "Go (gc)"
	}
	if cfg.ConnectionPool == "" {
		cfg.ConnectionPool = "in-memory"
	}

	now := time.Now()
	s := &Server{
		cfg:       cfg,
		messages:  NewMessageStore(),
		startedAt: now,
		startupMs: now.Sub(processStart).Milliseconds(),
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	engine.GET("/startup-check", s.handleStartupCheck)
	engine.GET("/metrics", s.handleMetrics)
	engine.GET("/metrics/startup", s.handleStartupMetrics)
	engine.GET("/metrics/memory", s.handleMemoryMetrics)
	engine.GET("/db-info", s.handleDBInfo)

	engine.GET("/messages", s.handleListMessages)
	engine.POST("/messages", s.handleCreateMessage)
	engine.GET("/messages/:id", s.handleGetMessage)
	engine.PUT("/messages/:id", s.handleUpdateMessage)
	engine.DELETE("/messages/:id", s.handleDeleteMessage)

	s.engine = engine
	return s
}

// Handler exposes the route tree, mainly for httptest.
func (s *Server) Handler() http.Handler { return s.engine }

// Run serves until the listener fails.
func (s *Server) Run() error {
	log.Info().
		Str("addr", s.cfg.Addr).
		Str("application", s.cfg.Application).
		Str("image_type", s.cfg.ImageType).
		Str("connection_pool", s.cfg.ConnectionPool).
		Msg("Demo target listening")
	return s.engine.Run(s.cfg.Addr)
}

func (s *Server) handleStartupCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "UP"})
}
