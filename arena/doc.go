// Package arena
// Author: momentics <momentics@gmail.com>
//
// Bump allocators over pre-sized backing regions.
//
// Bump maps or allocates its region lazily on first use and reclaims
// only in bulk via Reset. Fixed provides the same contract over a
// caller-supplied buffer with no backing allocation of its own.
// Fallback composes a Bump with the Go heap and switches permanently to
// heap-only mode once the arena is exhausted, until an explicit Reset.
//
// None of the types here are safe for concurrent use: each instance is
// owned and mutated by a single logical owner at a time.
package arena
