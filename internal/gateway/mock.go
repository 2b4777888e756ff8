package gateway

import (
	"bytes"
	"io"
	"net"
	"net/http"
	"strconv"
	"sync"
)

// MockUpstream is an in-process protocol server for testing. It
// decodes request packets, records them, and answers with whatever
// HandleFunc returns (200 "ok" by default).
type MockUpstream struct {
	// HandleFunc produces the response for a decoded request.
	HandleFunc func(req MockRequest) (status int, header http.Header, body []byte)

	ln net.Listener

	mu       sync.Mutex
	requests []MockRequest
}

// MockRequest is one decoded exchange seen by the upstream.
type MockRequest struct {
	Vars []Var
	Body []byte
}

// Var returns the value of the named variable, or "" if absent.
func (r MockRequest) Var(key string) string {
	return Lookup(r.Vars, key)
}

// NewMockUpstream starts a mock upstream on a loopback port.
func NewMockUpstream() (*MockUpstream, error) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, err
	}
	m := &MockUpstream{ln: ln}
	go m.serve()
	return m, nil
}

// Addr returns the host:port the upstream listens on.
func (m *MockUpstream) Addr() string {
	return m.ln.Addr().String()
}

// Close stops the listener. In-flight connections finish on their own.
func (m *MockUpstream) Close() error {
	return m.ln.Close()
}

// Requests returns a copy of the decoded requests seen so far.
func (m *MockUpstream) Requests() []MockRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]MockRequest, len(m.requests))
	copy(out, m.requests)
	return out
}

func (m *MockUpstream) serve() {
	for {
		conn, err := m.ln.Accept()
		if err != nil {
			return
		}
		go m.handle(conn)
	}
}

func (m *MockUpstream) handle(conn net.Conn) {
	defer conn.Close()

	hdr, err := ReadHeader(conn)
	if err != nil {
		return
	}

	block := make([]byte, hdr.Size)
	if _, err := io.ReadFull(conn, block); err != nil {
		return
	}
	vars, err := DecodeVars(block)
	if err != nil {
		return
	}

	var body []byte
	if n, _ := strconv.Atoi(Lookup(vars, "CONTENT_LENGTH")); n > 0 {
		body = make([]byte, n)
		if _, err := io.ReadFull(conn, body); err != nil {
			return
		}
	}

	req := MockRequest{Vars: vars, Body: body}
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()

	status, header, respBody := http.StatusOK, http.Header{"Content-Type": {"text/plain"}}, []byte("ok")
	if m.HandleFunc != nil {
		status, header, respBody = m.HandleFunc(req)
	}

	resp := &http.Response{
		StatusCode:    status,
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        header,
		Body:          io.NopCloser(bytes.NewReader(respBody)),
		ContentLength: int64(len(respBody)),
	}
	_ = resp.Write(conn)
}
