// Package gateway implements the client side of the uwsgi binary
// protocol, the framing WSGI application servers accept from a
// fronting proxy.
//
// # Wire Format
//
// Every request starts with a 4-byte header:
//
//	byte 0      modifier1 (0 selects the WSGI request handler)
//	bytes 1-2   datasize, little-endian uint16
//	byte 3      modifier2 (unused, 0)
//
// datasize is the length of the vars block that follows. The block is
// a sequence of length-prefixed strings, alternating key and value:
//
//	uint16 LE key length | key bytes | uint16 LE value length | value bytes
//
// Because datasize is a uint16, the whole vars block is capped at
// 65535 bytes; EncodePacket refuses requests whose variables exceed
// that. The request body, if any, follows the vars block unframed.
//
// # Variables
//
// RequestVars builds the CGI/WSGI variable set from an inbound
// http.Request: REQUEST_METHOD, REQUEST_URI, PATH_INFO, QUERY_STRING,
// SERVER_PROTOCOL, SERVER_NAME, SERVER_PORT, REMOTE_ADDR, REMOTE_PORT,
// CONTENT_TYPE, CONTENT_LENGTH, REQUEST_SCHEME, and HTTPS, followed by
// one HTTP_<NAME> variable per request header. Hop-by-hop headers are
// dropped; repeated headers are joined. The CGI variables keep a fixed
// order and headers are sorted, so identical requests encode to
// identical packets.
//
// # Responses
//
// The application answers with a plain HTTP/1.x response on the same
// connection. Client.RoundTrip parses it with http.ReadResponse and
// hands the body back untouched; closing the body closes the
// connection. Connections are not reused.
//
// # Testing
//
// MockUpstream is an in-process protocol server that records decoded
// requests and replies with canned responses. Both the client tests
// and the proxy handler tests run against it.
package gateway
