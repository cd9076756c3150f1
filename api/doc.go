// Package api
// Author: momentics <momentics@gmail.com>
//
// Contracts shared across the hioload-mem library: allocator and pool
// interfaces, batch result types, the metrics sink, and the common error
// taxonomy. Implementations live in arena/, pool/, batch/ and metrics/.
//
// All contracts here are synchronous and single-owner unless a type
// documents otherwise. Capacity exhaustion is always reported as a
// recoverable value (error or false), never as a panic; panics are
// reserved for programmer errors such as invalid alignment.
package api
