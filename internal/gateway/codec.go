package gateway

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/ksyq12/wsgate/internal/errors"
)

const (
	// ModifierWSGI selects the upstream's WSGI request handler.
	ModifierWSGI byte = 0

	headerLen = 4

	// MaxVarsLen is the largest encodable vars block; the header's
	// datasize field is a uint16.
	MaxVarsLen = 0xFFFF
)

// Header is the fixed 4-byte packet header.
type Header struct {
	Modifier1 byte
	Size      uint16
	Modifier2 byte
}

// EncodePacket serializes vars into a complete request packet: the
// 4-byte header followed by the length-prefixed key/value block. The
// request body, if any, is written after the packet by the caller.
func EncodePacket(vars []Var) ([]byte, error) {
	size := 0
	for _, v := range vars {
		size += 4 + len(v.Key) + len(v.Value)
	}
	if size > MaxVarsLen {
		return nil, errors.ErrVarsTooLarge
	}

	buf := make([]byte, headerLen, headerLen+size)
	buf[0] = ModifierWSGI
	binary.LittleEndian.PutUint16(buf[1:3], uint16(size))
	buf[3] = 0

	for _, v := range vars {
		buf = appendString(buf, v.Key)
		buf = appendString(buf, v.Value)
	}
	return buf, nil
}

func appendString(buf []byte, s string) []byte {
	var n [2]byte
	binary.LittleEndian.PutUint16(n[:], uint16(len(s)))
	buf = append(buf, n[:]...)
	return append(buf, s...)
}

// ReadHeader reads a packet header from r.
func ReadHeader(r io.Reader) (Header, error) {
	var b [headerLen]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return Header{}, err
	}
	return Header{
		Modifier1: b[0],
		Size:      binary.LittleEndian.Uint16(b[1:3]),
		Modifier2: b[3],
	}, nil
}

// DecodeVars parses a vars block into its key/value pairs.
func DecodeVars(block []byte) ([]Var, error) {
	var vars []Var
	for off := 0; off < len(block); {
		key, n, err := readString(block[off:])
		if err != nil {
			return nil, fmt.Errorf("vars block at offset %d: %w", off, err)
		}
		off += n

		value, n, err := readString(block[off:])
		if err != nil {
			return nil, fmt.Errorf("vars block at offset %d: %w", off, err)
		}
		off += n

		vars = append(vars, Var{Key: key, Value: value})
	}
	return vars, nil
}

func readString(b []byte) (string, int, error) {
	if len(b) < 2 {
		return "", 0, fmt.Errorf("truncated length prefix")
	}
	n := int(binary.LittleEndian.Uint16(b[:2]))
	if len(b) < 2+n {
		return "", 0, fmt.Errorf("string wants %d bytes, %d remain", n, len(b)-2)
	}
	return string(b[2 : 2+n]), 2 + n, nil
}
