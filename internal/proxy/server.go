package proxy

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ksyq12/wsgate/internal/config"
)

// Server binds the handler to the configured listen port and manages
// its lifecycle.
type Server struct {
	cfg        *config.Config
	httpServer *http.Server
	log        *logrus.Logger
}

// NewServer builds the proxy server for the given configuration.
func NewServer(cfg *config.Config, log *logrus.Logger) *Server {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Server{
		cfg: cfg,
		log: log,
		httpServer: &http.Server{
			Addr:    cfg.ListenAddr(),
			Handler: NewHandler(cfg, log),
			// Read and write stay unbounded so large transfers can
			// stream; only header reads and idle keep-alives time out.
			ReadHeaderTimeout: 10 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
	}
}

// Start listens on the configured port and serves until Shutdown is
// called. A clean shutdown returns nil.
func (s *Server) Start() error {
	s.log.WithFields(logrus.Fields{
		"addr":          s.httpServer.Addr,
		"upstream":      s.cfg.UpstreamAddr(),
		"static_prefix": s.cfg.Static.Prefix,
		"static_root":   s.cfg.Static.Root,
	}).Info("proxy listening")

	err := s.httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Serve runs the server on an existing listener. Used when the caller
// needs to bind before dropping privileges or pick an ephemeral port.
func (s *Server) Serve(ln net.Listener) error {
	err := s.httpServer.Serve(ln)
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown drains in-flight requests and stops the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("proxy shutting down")
	return s.httpServer.Shutdown(ctx)
}
