// File: pool/ring.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Fixed-capacity circular byte buffer. The live region is the
// capacity-modulo interval [head, head+size); push and pop split into
// two copies when the region crosses the buffer end.

package pool

import "github.com/momentics/hioload-mem/api"

// Ring is a bounded byte ring with wrap-around push/pop.
type Ring struct {
	buf  []byte
	head int
	size int
}

// Ensure compile-time compliance.
var _ api.ByteRing = (*Ring)(nil)

// NewRing allocates a ring of the given capacity.
func NewRing(capacity int) (*Ring, error) {
	if capacity <= 0 {
		return nil, api.ErrInvalidArgument
	}
	return &Ring{buf: make([]byte, capacity)}, nil
}

// Push appends p in full or not at all. An item longer than the ring
// capacity fails with ErrItemTooLarge even when the ring is empty:
// retrying that item can never succeed. Insufficient current space
// fails with ErrBufferFull and may succeed after a Pop.
func (r *Ring) Push(p []byte) error {
	if len(p) > len(r.buf) {
		return api.ErrItemTooLarge
	}
	if len(p) > len(r.buf)-r.size {
		return api.ErrBufferFull
	}
	tail := (r.head + r.size) % len(r.buf)
	n := copy(r.buf[tail:], p)
	copy(r.buf, p[n:])
	r.size += len(p)
	return nil
}

// Pop copies up to min(len(dst), Len()) bytes into dst, wrapping as
// needed, and returns the count. An empty ring yields 0.
func (r *Ring) Pop(dst []byte) int {
	n := len(dst)
	if n > r.size {
		n = r.size
	}
	if n == 0 {
		return 0
	}
	first := copy(dst[:n], r.buf[r.head:])
	copy(dst[first:n], r.buf)
	r.head = (r.head + n) % len(r.buf)
	r.size -= n
	return n
}

// Len returns the live byte count.
func (r *Ring) Len() int { return r.size }

// Cap returns the fixed capacity.
func (r *Ring) Cap() int { return len(r.buf) }

// Free returns the bytes currently available for Push.
func (r *Ring) Free() int { return len(r.buf) - r.size }
