// File: arena/fixed.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Fixed-buffer bump allocator: same contract as Bump, but over a
// caller-supplied region. Performs no backing allocation of its own,
// for call sites where even the one-time arena allocation is
// unacceptable (embedded storage, stack buffers, pool blocks).

package arena

import "github.com/momentics/hioload-mem/api"

// Fixed bump-allocates from buf. The allocator borrows buf for its
// lifetime; the caller must not touch the region while spans are live.
type Fixed struct {
	buf    []byte
	offset int
	peak   int
}

// Ensure compile-time compliance.
var _ api.BumpAllocator = (*Fixed)(nil)

// NewFixed wraps buf. An empty buf yields an allocator that fails every
// Alloc with ErrOutOfMemory, which is still a valid (if useless) value.
func NewFixed(buf []byte) *Fixed {
	return &Fixed{buf: buf}
}

// Alloc returns a span of size*count bytes aligned to align.
func (f *Fixed) Alloc(size, align, count int) ([]byte, error) {
	if align <= 0 || align&(align-1) != 0 {
		panic("arena: alignment must be a power of two")
	}
	if size <= 0 || count <= 0 {
		return nil, api.ErrInvalidArgument
	}

	aligned := alignUp(f.offset, align)
	total := size * count
	if total/size != count {
		return nil, api.ErrInvalidArgument
	}
	if aligned+total > len(f.buf) {
		return nil, api.ErrOutOfMemory
	}

	span := f.buf[aligned : aligned+total : aligned+total]
	f.offset = aligned + total
	if f.offset > f.peak {
		f.peak = f.offset
	}
	return span, nil
}

// Reset rewinds the cursor. The underlying buffer is untouched.
func (f *Fixed) Reset() { f.offset = 0 }

// Used returns bytes allocated since the last Reset.
func (f *Fixed) Used() int { return f.offset }

// Capacity returns the wrapped buffer length.
func (f *Fixed) Capacity() int { return len(f.buf) }

// Remaining returns the bytes left before exhaustion.
func (f *Fixed) Remaining() int { return len(f.buf) - f.offset }

// Stats returns a point-in-time snapshot.
func (f *Fixed) Stats() api.ArenaStats {
	return arenaStats(f.offset, len(f.buf), f.peak)
}
