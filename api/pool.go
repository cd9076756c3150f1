// File: api/pool.go
// Author: momentics <momentics@gmail.com>
//
// Fixed-capacity pool contracts for high-frequency allocate/free cycles.

package api

// BlockAllocator serves equal-size byte blocks from a fixed-capacity
// region. A full pool is an expected condition and reported as ok=false,
// not an error. Free rejects blocks that do not belong to the pool.
type BlockAllocator interface {
	// Alloc returns a free block, or ok=false when the pool is full.
	Alloc() (block []byte, ok bool)

	// Free returns a block to the pool. The block must have been
	// obtained from this pool's Alloc; foreign or already-freed blocks
	// yield ErrForeignBlock or ErrInvalidHandle.
	Free(block []byte) error

	// Stats exposes pool accounting in O(1).
	Stats() PoolStats
}
