// File: batch/message.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Fixed-layout message record: kind tag, 8-byte timestamp, 64-byte
// payload window. Suitable for byte-for-byte copying into contiguous
// buffers; not a cross-process or cross-version exchange format.

package batch

import "time"

// MaxPayload is the fixed payload window per message.
const MaxPayload = 64

// Kind tags a message for handler dispatch.
type Kind uint8

// Message is an immutable fixed-size record. Payloads longer than
// MaxPayload are truncated at construction; this is a declared lossy
// boundary, not an error.
type Message struct {
	Kind       Kind
	Timestamp  int64
	PayloadLen uint8
	Payload    [MaxPayload]byte
}

// NewMessage builds a message stamped with the current time.
// The payload is copied; the caller keeps ownership of p.
func NewMessage(kind Kind, p []byte) Message {
	m := Message{
		Kind:      kind,
		Timestamp: time.Now().UnixNano(),
	}
	n := copy(m.Payload[:], p)
	m.PayloadLen = uint8(n)
	return m
}

// PayloadBytes returns the live portion of the payload window.
func (m *Message) PayloadBytes() []byte {
	return m.Payload[:m.PayloadLen]
}
