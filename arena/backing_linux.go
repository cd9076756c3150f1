//go:build linux

// File: arena/backing_linux.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Linux backing: anonymous private mappings keep arena regions off the
// Go heap and out of GC scan sets.

package arena

import "golang.org/x/sys/unix"

func mapRegion(size int) ([]byte, error) {
	return unix.Mmap(-1, 0, size,
		unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
}

func unmapRegion(buf []byte) error {
	if buf == nil {
		return nil
	}
	return unix.Munmap(buf)
}
