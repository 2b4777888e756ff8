package gateway

import (
	"bufio"
	"context"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ksyq12/wsgate/internal/errors"
)

// Config configures a Client.
type Config struct {
	// Addr is the upstream host:port.
	Addr string

	// ConnectTimeout bounds the dial. Defaults to 10s.
	ConnectTimeout time.Duration

	// ReadTimeout bounds the whole exchange on the connection.
	// Defaults to 60s.
	ReadTimeout time.Duration

	// Logger receives per-exchange debug records.
	Logger *logrus.Logger
}

// Client speaks the gateway protocol to a single upstream. A fresh
// connection is dialed per request and released when the caller closes
// the response body.
type Client struct {
	addr           string
	connectTimeout time.Duration
	readTimeout    time.Duration
	log            *logrus.Logger
}

// NewClient creates a Client, applying defaults for unset timeouts.
func NewClient(cfg Config) *Client {
	if cfg.ConnectTimeout == 0 {
		cfg.ConnectTimeout = 10 * time.Second
	}
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = 60 * time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.StandardLogger()
	}
	return &Client{
		addr:           cfg.Addr,
		connectTimeout: cfg.ConnectTimeout,
		readTimeout:    cfg.ReadTimeout,
		log:            cfg.Logger,
	}
}

// Addr returns the upstream address the client dials.
func (c *Client) Addr() string {
	return c.addr
}

// RoundTrip sends one request to the upstream and parses its reply.
// vars is the encoded variable set for the request and body the
// request body to stream after the packet (nil for none). req provides
// context for response parsing only; its Body is not read.
//
// The returned response holds the upstream connection open until its
// Body is closed.
func (c *Client) RoundTrip(ctx context.Context, req *http.Request, vars []Var, body io.Reader) (*http.Response, error) {
	packet, err := EncodePacket(vars)
	if err != nil {
		return nil, err
	}

	start := time.Now()

	dialer := &net.Dialer{Timeout: c.connectTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", c.addr)
	if err != nil {
		return nil, errors.Gateway(c.addr, err)
	}

	if c.readTimeout > 0 {
		_ = conn.SetDeadline(time.Now().Add(c.readTimeout))
	}

	if _, err := conn.Write(packet); err != nil {
		_ = conn.Close()
		return nil, errors.Gateway(c.addr, err)
	}
	if body != nil {
		if _, err := io.Copy(conn, body); err != nil {
			_ = conn.Close()
			return nil, errors.Gateway(c.addr, err)
		}
	}

	br := bufio.NewReader(conn)
	resp, err := http.ReadResponse(br, req)
	if err != nil {
		_ = conn.Close()
		return nil, errors.Gateway(c.addr, err)
	}

	c.log.WithFields(logrus.Fields{
		"upstream": c.addr,
		"method":   Lookup(vars, "REQUEST_METHOD"),
		"uri":      Lookup(vars, "REQUEST_URI"),
		"status":   resp.StatusCode,
		"took":     time.Since(start).String(),
	}).Debug("upstream exchange")

	resp.Body = &connBody{ReadCloser: resp.Body, conn: conn}
	return resp, nil
}

// connBody ties the upstream connection's lifetime to the response
// body: the connection closes when the body does.
type connBody struct {
	io.ReadCloser
	conn net.Conn
}

func (b *connBody) Close() error {
	err := b.ReadCloser.Close()
	if cerr := b.conn.Close(); err == nil {
		err = cerr
	}
	return err
}
