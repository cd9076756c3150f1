// File: arena/arena.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Linear bump allocator over one lazily-acquired backing region.

package arena

import (
	"github.com/momentics/hioload-mem/api"
)

// Option customizes Bump construction.
type Option func(*Bump)

// WithMappedBacking backs the arena with an anonymous memory mapping
// instead of a heap slice on platforms that support it. The mapping is
// still acquired lazily on first Alloc and released by Close.
func WithMappedBacking() Option {
	return func(b *Bump) {
		b.useMmap = true
	}
}

// WithRecorder attaches a metrics sink observing served bytes.
func WithRecorder(rec api.Recorder) Option {
	return func(b *Bump) {
		if rec != nil {
			b.rec = rec
		}
	}
}

// Bump is a linear bump allocator. The backing region is acquired on
// the first Alloc, its capacity fixed at construction, and it never
// grows. Individual allocations cannot be freed; Reset reclaims the
// whole region at once.
type Bump struct {
	buf      []byte
	offset   int
	capacity int
	peak     int
	useMmap  bool
	mapped   bool
	closed   bool
	rec      api.Recorder
}

// Ensure compile-time compliance.
var _ api.BumpAllocator = (*Bump)(nil)

// New records capacity without acquiring the backing region.
func New(capacity int, opts ...Option) (*Bump, error) {
	if capacity <= 0 {
		return nil, api.ErrInvalidArgument
	}
	b := &Bump{
		capacity: capacity,
		rec:      api.NopRecorder{},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// ensureBacking acquires the region exactly once.
func (b *Bump) ensureBacking() error {
	if b.buf != nil {
		return nil
	}
	if b.useMmap {
		buf, err := mapRegion(b.capacity)
		if err == nil {
			b.buf = buf
			b.mapped = true
			return nil
		}
		// Mapping failure falls through to the heap.
	}
	b.buf = make([]byte, b.capacity)
	return nil
}

// Alloc returns a span of size*count bytes aligned to align. Stale
// bytes from before the last Reset are visible in the span; callers
// must not assume zero-initialization.
func (b *Bump) Alloc(size, align, count int) ([]byte, error) {
	if b.closed {
		panic(api.ErrClosed)
	}
	if align <= 0 || align&(align-1) != 0 {
		panic("arena: alignment must be a power of two")
	}
	if size <= 0 || count <= 0 {
		return nil, api.ErrInvalidArgument
	}
	if err := b.ensureBacking(); err != nil {
		return nil, err
	}

	aligned := alignUp(b.offset, align)
	total := size * count
	if total/size != count {
		return nil, api.ErrInvalidArgument // overflow
	}
	if aligned+total > b.capacity {
		return nil, api.ErrOutOfMemory
	}

	span := b.buf[aligned : aligned+total : aligned+total]
	b.offset = aligned + total
	if b.offset > b.peak {
		b.peak = b.offset
	}
	b.rec.RecordAlloc(total)
	return span, nil
}

// Reset rewinds the cursor to zero. O(1); memory is not zeroed.
// All previously returned spans are conceptually invalidated.
func (b *Bump) Reset() {
	if b.closed {
		panic(api.ErrClosed)
	}
	b.offset = 0
}

// Close releases the backing region exactly once. Subsequent Close
// calls are no-ops; any other use after Close panics.
func (b *Bump) Close() error {
	if b.closed {
		return nil
	}
	b.closed = true
	if b.mapped {
		buf := b.buf
		b.buf = nil
		return unmapRegion(buf)
	}
	b.buf = nil
	return nil
}

// Used returns bytes allocated since the last Reset, padding included.
func (b *Bump) Used() int { return b.offset }

// Capacity returns the fixed region size.
func (b *Bump) Capacity() int { return b.capacity }

// Remaining returns the bytes left before exhaustion.
func (b *Bump) Remaining() int { return b.capacity - b.offset }

// Stats returns a point-in-time snapshot.
func (b *Bump) Stats() api.ArenaStats {
	return arenaStats(b.offset, b.capacity, b.peak)
}

func alignUp(n, align int) int {
	return (n + align - 1) &^ (align - 1)
}

func arenaStats(used, capacity, peak int) api.ArenaStats {
	s := api.ArenaStats{Used: used, Capacity: capacity, Peak: peak}
	if used > peak {
		s.Peak = used
	}
	if capacity > 0 {
		s.Utilization = float64(used) / float64(capacity)
	}
	return s
}
