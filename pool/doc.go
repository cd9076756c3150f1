// Package pool
// Author: momentics <momentics@gmail.com>
//
// Fixed-capacity pools for high-frequency allocate/free cycles.
//
// FreeList serves equal-size slots addressed by generation-counted
// integer handles chained through an intrusive index free list.
// BlockPool serves equal-size byte blocks addressed by offset into one
// contiguous buffer. Ring is a circular byte buffer with wrap-around
// push/pop. None of these are internally synchronized; see doc on the
// single-writer discipline in package api.
package pool
