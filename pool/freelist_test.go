// File: pool/freelist_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package pool_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-mem/api"
	"github.com/momentics/hioload-mem/pool"
)

func TestFreeListExhaustionAndRecovery(t *testing.T) {
	p, err := pool.NewFreeList(16, 4)
	require.NoError(t, err)

	handles := make([]pool.Handle, 0, 4)
	for i := 0; i < 4; i++ {
		h, ok := p.Allocate()
		require.True(t, ok)
		handles = append(handles, h)
	}

	// The (N+1)th allocation reports none, not an error.
	_, ok := p.Allocate()
	require.False(t, ok)

	// Freeing any slot makes the pool serviceable again.
	require.NoError(t, p.Free(handles[2]))
	_, ok = p.Allocate()
	require.True(t, ok)
}

func TestFreeListDoubleFreeDetected(t *testing.T) {
	p, err := pool.NewFreeList(8, 2)
	require.NoError(t, err)

	h, ok := p.Allocate()
	require.True(t, ok)
	require.NoError(t, p.Free(h))
	require.ErrorIs(t, p.Free(h), api.ErrInvalidHandle)
}

func TestFreeListStaleHandleRejected(t *testing.T) {
	p, err := pool.NewFreeList(8, 1)
	require.NoError(t, err)

	h1, ok := p.Allocate()
	require.True(t, ok)
	require.NoError(t, p.Free(h1))

	// The slot is recycled under a new generation; the old handle must
	// not reach it.
	h2, ok := p.Allocate()
	require.True(t, ok)
	require.ErrorIs(t, p.Free(h1), api.ErrInvalidHandle)
	_, err = p.Bytes(h1)
	require.ErrorIs(t, err, api.ErrInvalidHandle)
	require.NoError(t, p.Free(h2))
}

func TestFreeListZeroHandleInvalid(t *testing.T) {
	p, err := pool.NewFreeList(8, 2)
	require.NoError(t, err)
	require.ErrorIs(t, p.Free(pool.Handle{}), api.ErrInvalidHandle)
}

func TestFreeListFreeErrorsCarryContext(t *testing.T) {
	p, err := pool.NewFreeList(8, 2)
	require.NoError(t, err)

	h, ok := p.Allocate()
	require.True(t, ok)
	require.NoError(t, p.Free(h))

	var se *api.Error
	require.True(t, errors.As(p.Free(h), &se))
	require.Equal(t, api.ErrCodeInvalidHandle, se.Code)
	require.Contains(t, se.Context, "index")
	require.Contains(t, se.Context, "gen")
}

func TestFreeListSlotStorage(t *testing.T) {
	p, err := pool.NewFreeList(4, 2)
	require.NoError(t, err)

	h1, _ := p.Allocate()
	h2, _ := p.Allocate()

	b1, err := p.Bytes(h1)
	require.NoError(t, err)
	b2, err := p.Bytes(h2)
	require.NoError(t, err)
	require.Len(t, b1, 4)

	copy(b1, []byte{1, 2, 3, 4})
	copy(b2, []byte{9, 9, 9, 9})

	again, err := p.Bytes(h1)
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 3, 4}, again)
}

func TestFreeListStats(t *testing.T) {
	p, err := pool.NewFreeList(8, 4)
	require.NoError(t, err)

	s := p.Stats()
	require.Equal(t, 4, s.Total)
	require.Zero(t, s.Used)
	require.Equal(t, 4, s.Free)

	h, _ := p.Allocate()
	p.Allocate()

	s = p.Stats()
	require.Equal(t, 2, s.Used)
	require.Equal(t, 2, s.Free)
	require.Equal(t, s.Total, s.Used+s.Free)
	require.InDelta(t, 0.5, s.Utilization, 1e-9)

	require.NoError(t, p.Free(h))
	require.Equal(t, 1, p.Stats().Used)
}

func TestFreeListInvalidConstruction(t *testing.T) {
	_, err := pool.NewFreeList(0, 4)
	require.ErrorIs(t, err, api.ErrInvalidArgument)
	_, err = pool.NewFreeList(8, 0)
	require.ErrorIs(t, err, api.ErrInvalidArgument)
}
