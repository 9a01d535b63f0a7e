// The host process communicates with the "--service" child process over
// stdin/stdout using this protocol. Each packet is a 32-bit little endian
// length followed by a 32-bit id and a CBOR-encoded body. The low bit of the
// id is set for responses. You must send a response after receiving a
// request because the other end is blocking on the response coming back.

package main

import (
	"encoding/binary"
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

func readUint32(bytes []byte) (value uint32, leftOver []byte, ok bool) {
	if len(bytes) >= 4 {
		return binary.LittleEndian.Uint32(bytes), bytes[4:], true
	}

	return 0, bytes, false
}

func writeUint32(bytes []byte, value uint32) []byte {
	bytes = append(bytes, 0, 0, 0, 0)
	binary.LittleEndian.PutUint32(bytes[len(bytes)-4:], value)
	return bytes
}

func readLengthPrefixedSlice(bytes []byte) (slice []byte, leftOver []byte, ok bool) {
	if length, afterLength, ok := readUint32(bytes); ok && uint(len(afterLength)) >= uint(length) {
		return afterLength[:length], afterLength[length:], true
	}

	return []byte{}, bytes, false
}

type packet struct {
	id        uint32
	isRequest bool

	// This is encoded with CBOR when writing. When reading it's always the
	// still-encoded "cbor.RawMessage" so the caller can pick the type.
	value interface{}
}

type request struct {
	Command     string `cbor:"command"`
	Specifier   string `cbor:"specifier,omitempty"`
	ContentType string `cbor:"contentType,omitempty"`
	Format      string `cbor:"format,omitempty"`
	Precedence  string `cbor:"precedence,omitempty"`
}

type response struct {
	MediaType string   `cbor:"mediaType,omitempty"`
	Loader    string   `cbor:"loader,omitempty"`
	Warnings  []string `cbor:"warnings,omitempty"`
	Error     string   `cbor:"error,omitempty"`
	Kind      string   `cbor:"kind,omitempty"`
}

func encodePacket(p packet) ([]byte, error) {
	body, err := cbor.Marshal(p.value)
	if err != nil {
		return nil, fmt.Errorf("encode packet %d: %w", p.id, err)
	}

	bytes := make([]byte, 0, 8+len(body))
	bytes = writeUint32(bytes, uint32(4+len(body)))
	if p.isRequest {
		bytes = writeUint32(bytes, p.id<<1)
	} else {
		bytes = writeUint32(bytes, (p.id<<1)|1)
	}
	bytes = append(bytes, body...)
	return bytes, nil
}

// The input is a single packet without its length prefix
func decodePacket(bytes []byte) (packet, bool) {
	id, body, ok := readUint32(bytes)
	if !ok {
		return packet{}, false
	}
	if err := cbor.Wellformed(body); err != nil {
		return packet{}, false
	}
	return packet{
		id:        id >> 1,
		isRequest: (id & 1) == 0,
		value:     cbor.RawMessage(body),
	}, true
}
