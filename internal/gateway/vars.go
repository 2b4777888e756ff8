package gateway

import (
	"net"
	"net/http"
	"sort"
	"strconv"
	"strings"
)

// Var is a single protocol variable.
type Var struct {
	Key   string
	Value string
}

// Hop-by-hop headers are connection-scoped and must not reach the
// upstream as HTTP_* variables. Content-Type and Content-Length travel
// as the CONTENT_TYPE and CONTENT_LENGTH variables instead.
var skipHeaders = map[string]bool{
	"Connection":          true,
	"Keep-Alive":          true,
	"Proxy-Authenticate":  true,
	"Proxy-Authorization": true,
	"Proxy-Connection":    true,
	"Te":                  true,
	"Trailer":             true,
	"Transfer-Encoding":   true,
	"Upgrade":             true,
	"Expect":              true,
	"Content-Type":        true,
	"Content-Length":      true,
}

// RequestVars builds the protocol variables for an inbound request.
// CGI variables come first in a fixed order, then HTTP_* headers
// sorted by name. serverPort is the proxy's own listen port.
//
// r.ContentLength must be known (>= 0); callers that accept chunked
// bodies buffer them first.
func RequestVars(r *http.Request, serverPort string) []Var {
	remoteHost, remotePort := splitRemote(r.RemoteAddr)

	requestURI := r.RequestURI
	if requestURI == "" {
		requestURI = r.URL.RequestURI()
	}

	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}

	vars := []Var{
		{"REQUEST_METHOD", r.Method},
		{"REQUEST_URI", requestURI},
		{"PATH_INFO", r.URL.Path},
		{"QUERY_STRING", r.URL.RawQuery},
		{"SERVER_PROTOCOL", r.Proto},
		{"SERVER_NAME", hostOnly(r.Host)},
		{"SERVER_PORT", serverPort},
		{"REMOTE_ADDR", remoteHost},
		{"REMOTE_PORT", remotePort},
		{"CONTENT_TYPE", r.Header.Get("Content-Type")},
		{"CONTENT_LENGTH", contentLengthVar(r)},
		{"REQUEST_SCHEME", scheme},
	}
	if r.TLS != nil {
		vars = append(vars, Var{"HTTPS", "on"})
	}

	return append(vars, headerVars(r.Header)...)
}

func contentLengthVar(r *http.Request) string {
	if r.ContentLength < 0 {
		return ""
	}
	return strconv.FormatInt(r.ContentLength, 10)
}

func headerVars(h http.Header) []Var {
	keys := make([]string, 0, len(h))
	for key := range h {
		if skipHeaders[key] {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	vars := make([]Var, 0, len(keys))
	for _, key := range keys {
		sep := ", "
		if key == "Cookie" {
			sep = "; "
		}
		vars = append(vars, Var{
			Key:   "HTTP_" + strings.ToUpper(strings.ReplaceAll(key, "-", "_")),
			Value: strings.Join(h[key], sep),
		})
	}
	return vars
}

func hostOnly(host string) string {
	if h, _, err := net.SplitHostPort(host); err == nil {
		return h
	}
	return host
}

func splitRemote(addr string) (host, port string) {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return addr, ""
	}
	return host, port
}

// Lookup returns the value of the named variable, or "" if absent.
func Lookup(vars []Var, key string) string {
	for _, v := range vars {
		if v.Key == key {
			return v.Value
		}
	}
	return ""
}
