// Package proxy implements the request-forwarding server: static
// assets are served from the shared mount, everything else crosses the
// gateway protocol to the application server, and responses come back
// to the client unmodified.
package proxy

import (
	"bytes"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	securejoin "github.com/cyphar/filepath-securejoin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ksyq12/wsgate/internal/config"
	"github.com/ksyq12/wsgate/internal/errors"
	"github.com/ksyq12/wsgate/internal/gateway"
	"github.com/ksyq12/wsgate/internal/metrics"
)

// Response headers that are connection-scoped and must not be relayed.
var hopHeaders = map[string]bool{
	"Connection":          true,
	"Keep-Alive":          true,
	"Proxy-Authenticate":  true,
	"Proxy-Authorization": true,
	"Te":                  true,
	"Trailer":             true,
	"Transfer-Encoding":   true,
	"Upgrade":             true,
}

var errBodyTooLarge = errors.New("request body exceeds the configured limit")

// Handler routes inbound requests by path: the static prefix is served
// from the local mount, all other paths forward to the upstream.
type Handler struct {
	cfg        *config.Config
	gateway    *gateway.Client
	log        *logrus.Logger
	serverPort string
}

// NewHandler builds the routing handler for the given configuration.
func NewHandler(cfg *config.Config, log *logrus.Logger) *Handler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Handler{
		cfg: cfg,
		gateway: gateway.NewClient(gateway.Config{
			Addr:           cfg.UpstreamAddr(),
			ConnectTimeout: cfg.Upstream.ConnectTimeout.Std(),
			ReadTimeout:    cfg.Upstream.ReadTimeout.Std(),
			Logger:         log,
		}),
		log:        log,
		serverPort: strconv.Itoa(cfg.Listen.Port),
	}
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	requestID := r.Header.Get("X-Request-Id")
	if requestID == "" {
		requestID = uuid.NewString()
		r.Header.Set("X-Request-Id", requestID)
	}

	route := "upstream"
	if h.isStatic(r.URL.Path) {
		route = "static"
	}

	sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
	if route == "static" {
		h.serveStatic(sw, r)
	} else {
		h.forward(sw, r)
	}

	took := time.Since(start)
	metrics.RequestsTotal.WithLabelValues(route, r.Method, strconv.Itoa(sw.status)).Inc()
	metrics.RequestDuration.WithLabelValues(route).Observe(float64(took.Milliseconds()))

	h.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"method":     r.Method,
		"path":       r.URL.Path,
		"route":      route,
		"status":     sw.status,
		"bytes":      sw.bytes,
		"took":       took.String(),
		"remote":     r.RemoteAddr,
	}).Info("request")
}

// isStatic matches the prefix on segment boundaries: /static and
// /static/css/app.css route to the mount, /staticfoo goes upstream.
func (h *Handler) isStatic(path string) bool {
	prefix := h.cfg.Static.Prefix
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

func (h *Handler) serveStatic(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	rel := strings.TrimPrefix(r.URL.Path, h.cfg.Static.Prefix)
	rel = strings.TrimPrefix(rel, "/")

	// SecureJoin resolves the path inside the root; ".." components
	// cannot escape the mount.
	full, err := securejoin.SecureJoin(h.cfg.Static.Root, rel)
	if err != nil {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	info, err := os.Stat(full)
	if err != nil {
		if os.IsNotExist(err) {
			http.NotFound(w, r)
			return
		}
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}
	if info.IsDir() {
		// No directory listings.
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	http.ServeFile(w, r, full)
}

func (h *Handler) forward(w http.ResponseWriter, r *http.Request) {
	maxBody := h.cfg.Client.MaxBodySize.Bytes()

	if maxBody > 0 && r.ContentLength > maxBody {
		http.Error(w, "Request Entity Too Large", http.StatusRequestEntityTooLarge)
		return
	}

	var body io.Reader = r.Body
	if r.ContentLength < 0 {
		// The protocol requires CONTENT_LENGTH up front, so chunked
		// uploads are buffered within the configured limit.
		buf, err := readCapped(r.Body, maxBody)
		if err != nil {
			if errors.Is(err, errBodyTooLarge) {
				http.Error(w, "Request Entity Too Large", http.StatusRequestEntityTooLarge)
			} else {
				http.Error(w, "Bad Request", http.StatusBadRequest)
			}
			return
		}
		r.ContentLength = int64(len(buf))
		body = bytes.NewReader(buf)
	}

	vars := gateway.RequestVars(r, h.serverPort)

	resp, err := h.gateway.RoundTrip(r.Context(), r, vars, body)
	if err != nil {
		if errors.Is(err, errors.ErrVarsTooLarge) {
			http.Error(w, "Request Header Fields Too Large", http.StatusRequestHeaderFieldsTooLarge)
			return
		}
		metrics.UpstreamErrors.WithLabelValues("exchange").Inc()
		h.log.WithError(err).WithFields(logrus.Fields{
			"upstream": h.gateway.Addr(),
			"path":     r.URL.Path,
		}).Error("upstream exchange failed")
		http.Error(w, "Bad Gateway", http.StatusBadGateway)
		return
	}
	defer resp.Body.Close()

	relay(w, resp)
}

// relay copies the upstream response to the client as-is, minus
// hop-by-hop headers.
func relay(w http.ResponseWriter, resp *http.Response) {
	header := w.Header()
	for key, values := range resp.Header {
		if hopHeaders[key] {
			continue
		}
		for _, v := range values {
			header.Add(key, v)
		}
	}
	w.WriteHeader(resp.StatusCode)
	_, _ = io.Copy(w, resp.Body)
}

func readCapped(r io.Reader, limit int64) ([]byte, error) {
	if limit <= 0 {
		return io.ReadAll(r)
	}
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, errBodyTooLarge
	}
	return data, nil
}

// statusWriter captures the status code and byte count for logging.
type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int64
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(p []byte) (int, error) {
	n, err := w.ResponseWriter.Write(p)
	w.bytes += int64(n)
	return n, err
}
