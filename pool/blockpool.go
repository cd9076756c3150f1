// File: pool/blockpool.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Fixed-capacity pool of equal-size byte blocks carved from one
// contiguous buffer. Free locates a block by pointer arithmetic against
// the buffer base and rejects anything outside the pool's range or off
// a block boundary, so a foreign slice can never poison the free stack.

package pool

import (
	"unsafe"

	"github.com/momentics/hioload-mem/api"
)

// BlockPool addresses blocks by byte offset into a single buffer.
// The free structure is an explicit stack of block indexes.
type BlockPool struct {
	blockSize int
	buf       []byte
	freeStack []int32
	inUse     []bool
}

// Ensure compile-time compliance.
var _ api.BlockAllocator = (*BlockPool)(nil)

// NewBlockPool allocates one blockSize*blockCount buffer and pushes
// every block onto the free stack.
func NewBlockPool(blockSize, blockCount int) (*BlockPool, error) {
	if blockSize <= 0 || blockCount <= 0 {
		return nil, api.ErrInvalidArgument
	}
	p := &BlockPool{
		blockSize: blockSize,
		buf:       make([]byte, blockSize*blockCount),
		freeStack: make([]int32, 0, blockCount),
		inUse:     make([]bool, blockCount),
	}
	// Stack order makes block 0 the first served.
	for i := blockCount - 1; i >= 0; i-- {
		p.freeStack = append(p.freeStack, int32(i))
	}
	return p, nil
}

// Alloc pops a free block. ok=false when the pool is full.
func (p *BlockPool) Alloc() ([]byte, bool) {
	n := len(p.freeStack)
	if n == 0 {
		return nil, false
	}
	i := p.freeStack[n-1]
	p.freeStack = p.freeStack[:n-1]
	p.inUse[i] = true
	start := int(i) * p.blockSize
	return p.buf[start : start+p.blockSize : start+p.blockSize], true
}

// Free returns a block obtained from Alloc. The block is identified by
// its base address relative to the pool buffer.
func (p *BlockPool) Free(block []byte) error {
	i, err := p.blockIndex(block)
	if err != nil {
		return err
	}
	if !p.inUse[i] {
		return api.NewError(api.ErrCodeInvalidHandle, "block already free").
			WithContext("index", i)
	}
	p.inUse[i] = false
	p.freeStack = append(p.freeStack, int32(i))
	return nil
}

// blockIndex validates that block belongs to this pool and sits on a
// block boundary, then returns its index.
func (p *BlockPool) blockIndex(block []byte) (int, error) {
	if len(block) != p.blockSize {
		return 0, api.NewError(api.ErrCodeForeignBlock, "block length mismatch").
			WithContext("len", len(block)).
			WithContext("block_size", p.blockSize)
	}
	base := uintptr(unsafe.Pointer(&p.buf[0]))
	addr := uintptr(unsafe.Pointer(&block[0]))
	if addr < base || addr >= base+uintptr(len(p.buf)) {
		return 0, api.NewError(api.ErrCodeForeignBlock, "block outside pool range")
	}
	off := addr - base
	if off%uintptr(p.blockSize) != 0 {
		return 0, api.NewError(api.ErrCodeForeignBlock, "block off boundary").
			WithContext("offset", int(off))
	}
	return int(off) / p.blockSize, nil
}

// BlockSize returns the fixed per-block byte size.
func (p *BlockPool) BlockSize() int { return p.blockSize }

// Stats reads the running counters in O(1).
func (p *BlockPool) Stats() api.PoolStats {
	total := len(p.inUse)
	return poolStats(total, total-len(p.freeStack))
}
