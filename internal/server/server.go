package server

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/jquagga/tr-log-analyzer/internal/aggregator"
	"github.com/jquagga/tr-log-analyzer/internal/model"
)

// Server exposes a materialized call table over a read-only JSON API.
type Server struct {
	engine  *gin.Engine
	rows    []model.Row
	stats   aggregator.Stats
	addr    string
	log     zerolog.Logger
	started time.Time
}

// New creates a server over rows. The rows are not modified.
func New(rows []model.Row, stats aggregator.Stats, addr string, log zerolog.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	// Disable automatic redirects that cause 301 issues.
	engine.RedirectTrailingSlash = false
	engine.RedirectFixedPath = false

	s := &Server{
		engine:  engine,
		rows:    rows,
		stats:   stats,
		addr:    addr,
		log:     log,
		started: time.Now(),
	}

	s.setupRoutes()
	return s
}

// Handler returns the HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) setupRoutes() {
	s.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"uptime":  time.Since(s.started).Truncate(time.Second).String(),
			"records": len(s.rows),
		})
	})

	s.engine.GET("/api/stats", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.stats)
	})

	s.engine.GET("/api/calls", s.handleCalls)
}

// handleCalls returns the table, optionally filtered by call class and
// talkgroup display value.
func (s *Server) handleCalls(c *gin.Context) {
	class, filterClass := c.GetQuery("class")
	if filterClass {
		if class == "unclassified" {
			class = ""
		} else if _, ok := model.ParseCallClass(class); !ok || class == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown call class: " + class})
			return
		}
	}
	talkgroup, filterTG := c.GetQuery("talkgroup")

	calls := make([]model.Row, 0, len(s.rows))
	for _, row := range s.rows {
		if filterClass && row.CallClass != class {
			continue
		}
		if filterTG && !strings.EqualFold(row.Talkgroup, talkgroup) {
			continue
		}
		calls = append(calls, row)
	}

	c.JSON(http.StatusOK, gin.H{
		"count": len(calls),
		"calls": calls,
	})
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", s.addr).Msg("serving call table")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
