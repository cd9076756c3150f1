// Package batch
// Author: momentics <momentics@gmail.com>
//
// Fixed-capacity batch engine: Message records grouped into reusable
// Batch containers, dispatched in order by Engine with fail-fast
// prefix-only semantics, and accumulated by Batcher which auto-flushes
// at a threshold.
//
// Engine and Batch are not internally thread-safe; concurrent callers
// sharing one instance must serialize externally. Batcher takes a lock
// around its in-progress batch so the optional background flush timer
// can coexist with callers.
package batch
