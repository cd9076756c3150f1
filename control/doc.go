// Package control
// Author: momentics <momentics@gmail.com>
//
// Runtime configuration control for the memory/batch core: immutable
// snapshot reads, atomic merged updates, and reload listeners used to
// hot-apply batcher thresholds without restarting the owning process.
package control
