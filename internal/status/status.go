// Package status exposes the operational side channel: a health probe
// and Prometheus metrics on their own port, away from proxied traffic.
package status

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ksyq12/wsgate/internal/config"
	"github.com/ksyq12/wsgate/internal/metrics"
)

func init() {
	gin.SetMode(gin.ReleaseMode)
}

// Server serves /health and /metrics on the status port.
type Server struct {
	cfg        *config.Config
	log        *logrus.Logger
	router     *gin.Engine
	httpServer *http.Server
}

// NewServer builds the status listener for the given configuration.
func NewServer(cfg *config.Config, log *logrus.Logger) *Server {
	if log == nil {
		log = logrus.StandardLogger()
	}

	router := gin.New()
	router.Use(gin.Recovery())

	s := &Server{
		cfg:    cfg,
		log:    log,
		router: router,
		httpServer: &http.Server{
			Addr:              cfg.StatusAddr(),
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.GET("/health", s.health)
	s.router.GET("/metrics", gin.WrapH(metrics.Handler()))
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"upstream": s.cfg.UpstreamAddr(),
		"time":     time.Now().Format(time.RFC3339),
	})
}

// Start listens on the status port and serves until Shutdown is
// called. A clean shutdown returns nil.
func (s *Server) Start() error {
	s.log.WithField("addr", s.httpServer.Addr).Info("status listener up")

	err := s.httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Serve runs the status listener on an existing listener.
func (s *Server) Serve(ln net.Listener) error {
	err := s.httpServer.Serve(ln)
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown stops the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
