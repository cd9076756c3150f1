//go:build !linux

// File: arena/backing_stub.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Fallback backing for platforms without anonymous mapping support:
// a plain heap slice, released by the garbage collector.

package arena

func mapRegion(size int) ([]byte, error) {
	return make([]byte, size), nil
}

func unmapRegion(_ []byte) error {
	return nil
}
