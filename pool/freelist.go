// File: pool/freelist.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Fixed-capacity slot pool with an intrusive singly-linked free list.
// Free slots are chained by index through a metadata array rather than
// by raw pointers, so the chain can never dangle. Each slot carries a
// generation counter bumped on every free: a stale or double-freed
// handle no longer matches and is rejected instead of corrupting the
// chain.

package pool

import "github.com/momentics/hioload-mem/api"

const freeListEnd = int32(-1)

// Handle identifies a live slot in a FreeList. The zero Handle is never
// valid. Handles are value types; copying one does not extend slot
// ownership.
type Handle struct {
	index int32
	gen   uint32
}

// FreeList owns a fixed array of slotCount equal-size slots.
// used + free == slotCount at all times.
type FreeList struct {
	slotSize int
	data     []byte
	next     []int32
	gens     []uint32
	live     []bool
	head     int32
	used     int
}

// NewFreeList allocates the slot-data and slot-metadata buffers and
// chains every slot into the free list, head at slot 0.
func NewFreeList(slotSize, slotCount int) (*FreeList, error) {
	if slotSize <= 0 || slotCount <= 0 {
		return nil, api.ErrInvalidArgument
	}
	p := &FreeList{
		slotSize: slotSize,
		data:     make([]byte, slotSize*slotCount),
		next:     make([]int32, slotCount),
		gens:     make([]uint32, slotCount),
		live:     make([]bool, slotCount),
	}
	for i := 0; i < slotCount; i++ {
		p.next[i] = int32(i + 1)
	}
	p.next[slotCount-1] = freeListEnd
	// Generation 0 is reserved so the zero Handle stays invalid.
	for i := range p.gens {
		p.gens[i] = 1
	}
	return p, nil
}

// Allocate pops the free-list head. A full pool is an expected,
// recoverable condition reported as ok=false, not an error.
func (p *FreeList) Allocate() (Handle, bool) {
	if p.head == freeListEnd {
		return Handle{}, false
	}
	i := p.head
	p.head = p.next[i]
	p.next[i] = freeListEnd
	p.live[i] = true
	p.used++
	return Handle{index: i, gen: p.gens[i]}, true
}

// Free pushes the slot back onto the free-list head. Double frees and
// handles from another pool generation fail with ErrInvalidHandle.
func (p *FreeList) Free(h Handle) error {
	if h.index < 0 || int(h.index) >= len(p.next) {
		return api.NewError(api.ErrCodeInvalidHandle, "slot index out of range").
			WithContext("index", h.index)
	}
	if !p.live[h.index] || p.gens[h.index] != h.gen {
		return api.NewError(api.ErrCodeInvalidHandle, "stale or freed handle").
			WithContext("index", h.index).
			WithContext("gen", h.gen)
	}
	p.live[h.index] = false
	p.gens[h.index]++
	p.next[h.index] = p.head
	p.head = h.index
	p.used--
	return nil
}

// Bytes returns the slot's storage. The slice stays valid until the
// handle is freed; contents are whatever the previous owner left there.
func (p *FreeList) Bytes(h Handle) ([]byte, error) {
	if h.index < 0 || int(h.index) >= len(p.next) {
		return nil, api.ErrInvalidHandle
	}
	if !p.live[h.index] || p.gens[h.index] != h.gen {
		return nil, api.ErrInvalidHandle
	}
	start := int(h.index) * p.slotSize
	return p.data[start : start+p.slotSize : start+p.slotSize], nil
}

// SlotSize returns the fixed per-slot byte size.
func (p *FreeList) SlotSize() int { return p.slotSize }

// Stats reads the running counters in O(1).
func (p *FreeList) Stats() api.PoolStats {
	return poolStats(len(p.next), p.used)
}

func poolStats(total, used int) api.PoolStats {
	s := api.PoolStats{Total: total, Used: used, Free: total - used}
	if total > 0 {
		s.Utilization = float64(used) / float64(total)
	}
	return s
}
