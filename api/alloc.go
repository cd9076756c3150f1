// File: api/alloc.go
// Author: momentics <momentics@gmail.com>
//
// Bump/arena allocation contracts and their stats snapshots.

package api

// BumpAllocator is the contract shared by the arena family: linear
// allocation from one pre-sized region, bulk reclamation via Reset.
// Implementations are not safe for concurrent use; each instance has a
// single logical owner at a time.
type BumpAllocator interface {
	// Alloc returns a span of size*count bytes aligned to align.
	// align must be a power of two. Fails with ErrOutOfMemory once the
	// region cannot satisfy the request; the region never grows, so
	// retrying an identical request without a Reset will fail again.
	Alloc(size, align, count int) ([]byte, error)

	// Reset rewinds the cursor to zero in O(1). Memory is not zeroed;
	// stale bytes from earlier allocations remain visible.
	Reset()

	// Used returns the bytes currently allocated, including alignment
	// padding. Capacity returns the fixed region size.
	Used() int
	Capacity() int

	// Stats returns a point-in-time snapshot.
	Stats() ArenaStats
}

// ArenaStats aggregates bump-allocator accounting.
type ArenaStats struct {
	Used        int     // bytes allocated since the last reset
	Capacity    int     // fixed region size
	Peak        int     // high-water mark of Used across resets
	Utilization float64 // Used / Capacity, 0 when capacity is 0
}

// PoolStats aggregates fixed-capacity pool accounting.
// Used + Free always equals Total.
type PoolStats struct {
	Total       int
	Used        int
	Free        int
	Utilization float64
}
