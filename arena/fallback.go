// File: arena/fallback.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Arena-first allocator with a sticky heap fallback. Once the arena
// rejects a request the allocator stops probing it entirely; Reset is
// the only way back to arena-first behavior.

package arena

import (
	"errors"
	"unsafe"

	"github.com/momentics/hioload-mem/api"
)

// mode is the two-state strategy tag. The transition modeArena→modeHeap
// is one-way during normal operation; only Reset restores modeArena.
type mode uint8

const (
	modeArena mode = iota
	modeHeap
)

func (m mode) String() string {
	if m == modeHeap {
		return "heap"
	}
	return "arena"
}

// Fallback composes a bump allocator with the Go heap.
type Fallback struct {
	arena api.BumpAllocator
	mode  mode
}

// NewFallback wraps an arena. Panics on nil, a programmer error.
func NewFallback(a api.BumpAllocator) *Fallback {
	if a == nil {
		panic("arena: nil arena for Fallback")
	}
	return &Fallback{arena: a}
}

// Alloc serves from the arena while in arena mode. The first arena
// exhaustion switches to heap mode permanently: even a smaller request
// that would fit the arena is served from the heap afterwards, avoiding
// repeated failed probes against an exhausted region. Both modes honor
// the same contract: spans are aligned to align, and a non-power-of-two
// alignment panics regardless of mode.
func (f *Fallback) Alloc(size, align, count int) ([]byte, error) {
	if align <= 0 || align&(align-1) != 0 {
		panic("arena: alignment must be a power of two")
	}
	if f.mode == modeArena {
		span, err := f.arena.Alloc(size, align, count)
		if err == nil {
			return span, nil
		}
		if !errors.Is(err, api.ErrOutOfMemory) {
			return nil, err
		}
		f.switchToHeap()
	}
	if size <= 0 || count <= 0 {
		return nil, api.ErrInvalidArgument
	}
	total := size * count
	if total/size != count {
		return nil, api.ErrInvalidArgument
	}
	// Over-allocate so the span can start on an aligned address; the
	// runtime only guarantees size-class alignment.
	raw := make([]byte, total+align-1)
	addr := uintptr(unsafe.Pointer(&raw[0]))
	off := alignUp(int(addr), align) - int(addr)
	return raw[off : off+total : off+total], nil
}

// switchToHeap performs the one-way strategy transition.
func (f *Fallback) switchToHeap() {
	f.mode = modeHeap
}

// Reset rewinds the arena and restores arena-first allocation. This is
// the single exception to the sticky transition.
func (f *Fallback) Reset() {
	f.arena.Reset()
	f.mode = modeArena
}

// UsingHeap reports whether the sticky fallback has triggered.
func (f *Fallback) UsingHeap() bool { return f.mode == modeHeap }

// Stats returns the underlying arena snapshot. Heap-served bytes are
// not tracked here; they belong to the Go runtime.
func (f *Fallback) Stats() api.ArenaStats { return f.arena.Stats() }
