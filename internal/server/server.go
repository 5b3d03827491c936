// Package server provides the HTTP runtime for cloak.
//
// The runtime exposes health and readiness probes plus a small read-only
// admin API over the realm store and, when clustering is enabled, the gossip
// membership view. The daemon treats Start as the runtime initialization
// boundary: a bind failure here is a startup failure for the whole process.
package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cloak-dev/cloak/internal/cluster"
	"github.com/cloak-dev/cloak/internal/logging"
	"github.com/cloak-dev/cloak/internal/store"
	"github.com/cloak-dev/cloak/internal/version"
)

// Config holds the settings and collaborators for the HTTP runtime.
type Config struct {
	BindAddr string
	BindPort int
	Store    *store.Store
	Cluster  *cluster.Manager // nil when clustering is disabled
}

// DefaultConfig returns a config bound to the loopback interface.
func DefaultConfig() *Config {
	return &Config{
		BindAddr: "127.0.0.1",
		BindPort: 8080,
	}
}

// Server is the cloak HTTP runtime.
type Server struct {
	store      *store.Store
	cluster    *cluster.Manager
	httpServer *http.Server
	bindAddr   string
	bindPort   int
	startTime  time.Time
}

// NewServer creates a new runtime instance from the given config.
func NewServer(config *Config) *Server {
	// Release mode keeps gin from printing its debug banner in production
	gin.SetMode(gin.ReleaseMode)

	return &Server{
		store:    config.Store,
		cluster:  config.Cluster,
		bindAddr: config.BindAddr,
		bindPort: config.BindPort,
	}
}

// Addr returns the configured bind address in host:port form.
func (s *Server) Addr() string {
	return fmt.Sprintf("%s:%d", s.bindAddr, s.bindPort)
}

// Start binds the HTTP listener and begins serving. The bind is tested
// synchronously so callers see port conflicts as startup failures instead of
// a background log line.
func (s *Server) Start() error {
	logging.Info("Starting HTTP server on %s:%d", s.bindAddr, s.bindPort)
	s.startTime = time.Now()

	router := gin.New()

	if !logging.IsConfiguredByCLI() {
		gin.DefaultWriter = logging.NewLevelWriter("INFO", "gin")
		gin.DefaultErrorWriter = logging.NewLevelWriter("ERROR", "gin")
	}

	router.Use(gin.Recovery())
	s.setupRoutes(router)

	s.httpServer = &http.Server{
		Addr:    s.Addr(),
		Handler: router,
		// Timeouts for production
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Test binding first to catch errors immediately
	listener, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("failed to bind to %s: %w", s.httpServer.Addr, err)
	}
	listener.Close()

	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Error("HTTP server failed: %v", err)
		}
	}()

	logging.Success("HTTP server started successfully")
	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	logging.Info("Shutting down HTTP server...")

	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

func (s *Server) setupRoutes(router *gin.Engine) {
	router.GET("/health", s.handleHealth)
	router.GET("/ready", s.handleReady)

	admin := router.Group("/admin")
	admin.GET("/realms", s.handleRealms)
	admin.GET("/realms/:realm/users/count", s.handleUserCount)
	admin.GET("/members", s.handleMembers)
}

// handleHealth reports liveness plus version and uptime.
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": version.CloakdVersion,
		"uptime":  time.Since(s.startTime).String(),
	})
}

// handleReady reports readiness by touching the store.
func (s *Server) handleReady(c *gin.Context) {
	if s.store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "storage not configured"})
		return
	}
	if _, err := s.store.CountUsers(c.Request.Context(), store.MasterRealm); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "storage unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

// handleRealms lists all realms.
func (s *Server) handleRealms(c *gin.Context) {
	realms, err := s.store.Realms(c.Request.Context())
	if err != nil {
		logging.Error("Failed to list realms: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list realms"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": realms, "count": len(realms)})
}

// handleUserCount returns the number of users in a realm.
func (s *Server) handleUserCount(c *gin.Context) {
	realm := c.Param("realm")
	count, err := s.store.CountUsers(c.Request.Context(), realm)
	if err != nil {
		logging.Error("Failed to count users in realm %s: %v", realm, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to count users"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "realm": realm, "count": count})
}

// handleMembers returns the gossip membership view, or an empty list for
// single-node deployments.
func (s *Server) handleMembers(c *gin.Context) {
	if s.cluster == nil {
		c.JSON(http.StatusOK, gin.H{"status": "success", "data": []cluster.Member{}, "count": 0})
		return
	}
	members := s.cluster.Members()
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": members, "count": len(members)})
}
