// File: batch/shared.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Process-wide shared engine. Construction and teardown are serialized
// by a mutex; processing through the shared engine is not locked, so
// concurrent callers must provide their own serialization. Prefer
// explicit injection of an Engine; this accessor exists for callers
// that need one process-lifetime instance.

package batch

import "sync"

var (
	sharedMu sync.Mutex
	shared   *Engine
)

// SharedEngine returns the lazily-constructed process-wide engine.
// Options apply only on the call that performs construction; later
// calls return the existing instance and ignore their options.
func SharedEngine(opts ...EngineOption) *Engine {
	sharedMu.Lock()
	defer sharedMu.Unlock()
	if shared == nil {
		shared = NewEngine(opts...)
	}
	return shared
}

// ShutdownShared tears down the shared engine and resets the lazy
// initialization state; the next SharedEngine call reconstructs it.
func ShutdownShared() {
	sharedMu.Lock()
	defer sharedMu.Unlock()
	shared = nil
}
