// Package viewer serves the interactive memory-graph page. It replaces
// a desktop plotting window with an HTTP server: the browser gets the
// laid-out graph as JSON and reproduces the scroll-zoom and drag-pan
// interactions client-side.
package viewer

import (
	"context"
	"embed"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"iremember/pkg/logger"
	"iremember/pkg/memgraph"
)

//go:embed static
var staticFS embed.FS

// GraphSource provides the memory graph to render. *neostore.Store
// satisfies it.
type GraphSource interface {
	FetchOverview(ctx context.Context) (*memgraph.Graph, error)
	Ping(ctx context.Context) error
}

// Config holds the viewer server settings.
type Config struct {
	Host   string
	Port   int
	Layout memgraph.LayoutOptions
}

// Server is the viewer HTTP server.
type Server struct {
	cfg    Config
	source GraphSource
	log    *logger.Logger
	engine *gin.Engine
}

// New builds a viewer server around a graph source.
func New(cfg Config, source GraphSource, log *logger.Logger) *Server {
	if log == nil {
		log = logger.NewNop()
	}
	if cfg.Layout.Iterations == 0 {
		cfg.Layout = memgraph.DefaultLayoutOptions()
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	s := &Server{cfg: cfg, source: source, log: log, engine: engine}
	s.registerRoutes()
	return s
}

// Router exposes the gin engine, mainly for tests.
func (s *Server) Router() *gin.Engine {
	return s.engine
}

func (s *Server) registerRoutes() {
	s.engine.GET("/", s.handleIndex)

	api := s.engine.Group("/api")
	{
		api.GET("/graph", s.handleGraph)
		api.GET("/graph/stats", s.handleStats)
		api.GET("/graph/nodes/:name", s.handleNeighbors)
		api.GET("/health", s.handleHealth)
	}
}

func (s *Server) handleIndex(c *gin.Context) {
	page, err := staticFS.ReadFile("static/index.html")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "viewer page unavailable"})
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", page)
}

func (s *Server) handleGraph(c *gin.Context) {
	g, err := s.source.FetchOverview(c.Request.Context())
	if err != nil {
		s.log.WithError(err).Errorf("graph fetch failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	var layout map[string]memgraph.Point
	if !g.IsEmpty() {
		layout = memgraph.SpringLayout(g, s.cfg.Layout)
	}
	c.JSON(http.StatusOK, memgraph.NewDocument(g, layout))
}

func (s *Server) handleStats(c *gin.Context) {
	g, err := s.source.FetchOverview(c.Request.Context())
	if err != nil {
		s.log.WithError(err).Errorf("graph fetch failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, g.Stats())
}

func (s *Server) handleNeighbors(c *gin.Context) {
	g, err := s.source.FetchOverview(c.Request.Context())
	if err != nil {
		s.log.WithError(err).Errorf("graph fetch failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	nb, err := g.Neighbors(c.Param("name"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, nb)
}

func (s *Server) handleHealth(c *gin.Context) {
	if err := s.source.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "time": time.Now().UTC()})
}

// Run starts the server and blocks until the context is cancelled or a
// SIGINT/SIGTERM arrives, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Infof("viewer listening on http://%s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case err, ok := <-errCh:
		if ok && err != nil {
			return fmt.Errorf("viewer server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	case sig := <-sigCh:
		s.log.Infof("received %v, shutting down", sig)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("viewer shutdown failed: %w", err)
	}
	<-errCh
	return nil
}
