// Package api
// Author: momentics@gmail.com
//
// Fixed-capacity circular byte buffer contract.

package api

// ByteRing is a bounded circular byte buffer with wrap-around push/pop.
type ByteRing interface {
	// Push appends p atomically: either every byte is written or none.
	// Fails with ErrItemTooLarge when len(p) exceeds the ring capacity
	// (permanent for that item) or ErrBufferFull when current free
	// space is insufficient (transient; retry after a Pop).
	Push(p []byte) error

	// Pop copies up to min(len(dst), Len()) bytes into dst and returns
	// the count. An empty ring yields 0, not an error.
	Pop(dst []byte) int

	// Len returns the live byte count, Cap the fixed capacity.
	Len() int
	Cap() int
}
