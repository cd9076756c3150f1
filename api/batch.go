// Package api
// Author: momentics@gmail.com
//
// Batching contracts and the batch-processing result type.

package api

// Batch defines read access to a generic batch of items.
type Batch[T any] interface {
	// Len returns the number of items in the batch.
	Len() int
	// Get retrieves item at index.
	Get(index int) T
	// Slice returns the live items as a slice.
	Slice() []T
}

// Result reports the outcome of processing one batch.
//
// On failure, Processed equals the index of the first failing item:
// exactly the items before it have taken effect and nothing is rolled
// back (prefix-only failure semantics).
type Result struct {
	Success   bool
	Processed uint32
	Err       error
}
