// File: api/errors_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package api_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-mem/api"
)

func TestErrorMessageAndContext(t *testing.T) {
	e := api.NewError(api.ErrCodeInvalidHandle, "stale handle")
	require.Equal(t, "stale handle", e.Error())

	e = e.WithContext("index", 3).WithContext("gen", 7)
	require.Contains(t, e.Error(), "stale handle")
	require.Contains(t, e.Error(), "index")
	require.Equal(t, 3, e.Context["index"])
	require.Equal(t, 7, e.Context["gen"])
}

func TestErrorMatchesSentinel(t *testing.T) {
	cases := []struct {
		code     api.ErrorCode
		sentinel error
	}{
		{api.ErrCodeInvalidArgument, api.ErrInvalidArgument},
		{api.ErrCodeOutOfMemory, api.ErrOutOfMemory},
		{api.ErrCodeBatchFull, api.ErrBatchFull},
		{api.ErrCodeBufferFull, api.ErrBufferFull},
		{api.ErrCodeItemTooLarge, api.ErrItemTooLarge},
		{api.ErrCodeUnknownKind, api.ErrUnknownKind},
		{api.ErrCodeInvalidHandle, api.ErrInvalidHandle},
		{api.ErrCodeForeignBlock, api.ErrForeignBlock},
		{api.ErrCodeClosed, api.ErrClosed},
	}
	for _, c := range cases {
		err := api.NewError(c.code, "x")
		require.ErrorIs(t, err, c.sentinel, "code %d", c.code)
	}
}

func TestErrorAsStructured(t *testing.T) {
	var err error = api.NewError(api.ErrCodeForeignBlock, "off boundary").
		WithContext("offset", 13)

	var se *api.Error
	require.ErrorAs(t, err, &se)
	require.Equal(t, api.ErrCodeForeignBlock, se.Code)
	require.Equal(t, 13, se.Context["offset"])

	require.NotErrorIs(t, err, api.ErrInvalidHandle)
	require.Nil(t, api.NewError(api.ErrCodeOK, "ok").Unwrap())
}
