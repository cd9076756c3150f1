// File: batch/batch.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Reusable fixed-capacity message container. Messages live in a
// pre-sized array; payload copies are bump-allocated from a fixed side
// buffer so one batch performs zero allocations after construction.

package batch

import (
	"github.com/momentics/hioload-mem/api"
	"github.com/momentics/hioload-mem/arena"
)

// DefaultCapacity is the fixed message capacity of a default batch.
const DefaultCapacity = 8192

// Batch owns a fixed-capacity message array plus a side buffer holding
// payload copies. count never exceeds capacity; once full, Add fails
// with api.ErrBatchFull instead of resizing.
//
// Side-buffer policy: when the side buffer cannot hold a full payload
// copy, the copy is truncated to the remaining space, the message is
// still registered, and the truncation counter is bumped.
type Batch struct {
	msgs        []Message
	count       int
	side        *arena.Fixed
	truncations uint64
}

// Ensure compile-time compliance.
var _ api.Batch[Message] = (*Batch)(nil)

// NewBatch builds a batch with DefaultCapacity messages and a side
// buffer sized for one full payload window per slot.
func NewBatch() *Batch {
	b, _ := NewBatchSize(DefaultCapacity, DefaultCapacity*MaxPayload)
	return b
}

// NewBatchSize builds a batch with explicit message capacity and side
// buffer size. Both allocations happen once, here.
func NewBatchSize(capacity, sideSize int) (*Batch, error) {
	if capacity <= 0 || sideSize < 0 {
		return nil, api.ErrInvalidArgument
	}
	return &Batch{
		msgs: make([]Message, 0, capacity),
		side: arena.NewFixed(make([]byte, sideSize)),
	}, nil
}

// Add registers one operation. The payload is truncated to MaxPayload
// in the message record; a second copy goes into the side buffer under
// the truncate-and-count policy described on Batch.
func (b *Batch) Add(kind Kind, payload []byte) error {
	if b.count == cap(b.msgs) {
		return api.ErrBatchFull
	}

	n := len(payload)
	if rem := b.side.Remaining(); n > rem {
		n = rem
	}
	if n > 0 {
		span, err := b.side.Alloc(n, 1, 1)
		if err == nil {
			copy(span, payload[:n])
		}
	}
	if n < len(payload) {
		b.truncations++
	}

	b.msgs = append(b.msgs, NewMessage(kind, payload))
	b.count++
	return nil
}

// Clear resets the batch for reuse: count and side cursor to zero, no
// memory released, truncation counter rewound.
func (b *Batch) Clear() {
	b.msgs = b.msgs[:0]
	b.count = 0
	b.side.Reset()
	b.truncations = 0
}

// Len returns the number of registered messages.
func (b *Batch) Len() int { return b.count }

// Cap returns the fixed message capacity.
func (b *Batch) Cap() int { return cap(b.msgs) }

// Get retrieves the message at index.
func (b *Batch) Get(index int) Message { return b.msgs[index] }

// Slice returns the live messages. The slice aliases internal storage
// and is invalidated by Clear.
func (b *Batch) Slice() []Message { return b.msgs }

// SideUsed returns the bytes consumed in the side buffer.
func (b *Batch) SideUsed() int { return b.side.Used() }

// Truncations returns the lossy side-buffer copies since the last Clear.
func (b *Batch) Truncations() uint64 { return b.truncations }
