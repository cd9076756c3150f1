// File: facade/facade_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package facade_test

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/momentics/hioload-mem/batch"
	"github.com/momentics/hioload-mem/facade"
	"github.com/momentics/hioload-mem/fake"
)

func TestCoreDefaultsAndAccessors(t *testing.T) {
	defer goleak.VerifyNone(t)

	c, err := facade.New(nil)
	require.NoError(t, err)

	require.NotNil(t, c.Engine())
	require.NotNil(t, c.Batcher())
	require.NotNil(t, c.Arena())
	require.NotNil(t, c.Blocks())
	require.NotNil(t, c.Slots())
	require.NotNil(t, c.Ring())
	require.NotNil(t, c.Control())
	require.NotNil(t, c.MetricsHandler())

	require.NoError(t, c.Start())
	require.NoError(t, c.Stop())
}

func TestCoreLifecycleProcessesOperations(t *testing.T) {
	defer goleak.VerifyNone(t)

	cfg := facade.DefaultConfig()
	cfg.AutoFlushThreshold = 2
	cfg.EnableMetrics = false

	var processed []batch.Message
	c, err := facade.New(cfg, facade.WithHandler(batch.Kind(1), fake.OKHandler(&processed)))
	require.NoError(t, err)
	require.NoError(t, c.Start())

	ctx := context.Background()
	require.NoError(t, c.Batcher().AddOperation(ctx, batch.Kind(1), []byte("a")))
	require.NoError(t, c.Batcher().AddOperation(ctx, batch.Kind(1), []byte("b")))
	require.Len(t, processed, 2)

	require.NoError(t, c.Stop())
}

func TestCoreStopFlushesPending(t *testing.T) {
	defer goleak.VerifyNone(t)

	cfg := facade.DefaultConfig()
	cfg.AutoFlushThreshold = 0
	cfg.EnableMetrics = false

	var processed []batch.Message
	c, err := facade.New(cfg, facade.WithHandler(batch.Kind(1), fake.OKHandler(&processed)))
	require.NoError(t, err)
	require.NoError(t, c.Start())

	require.NoError(t, c.Batcher().AddOperation(context.Background(), batch.Kind(1), []byte("x")))
	require.Equal(t, 1, c.Batcher().Pending())

	require.NoError(t, c.Stop())
	require.Len(t, processed, 1, "pending operations flush on Stop")
}

func TestCoreBackgroundFlush(t *testing.T) {
	cfg := facade.DefaultConfig()
	cfg.AutoFlushThreshold = 0
	cfg.MaxBatchWait = 5 * time.Millisecond
	cfg.BackgroundFlush = true
	cfg.EnableMetrics = false

	var processed []batch.Message
	c, err := facade.New(cfg, facade.WithHandler(batch.Kind(1), fake.OKHandler(&processed)))
	require.NoError(t, err)
	require.NoError(t, c.Start())

	require.NoError(t, c.Batcher().AddOperation(context.Background(), batch.Kind(1), []byte("x")))
	require.Eventually(t, func() bool {
		return c.Batcher().Stats().OperationsFlushed == 1
	}, time.Second, time.Millisecond)

	require.NoError(t, c.Stop())
}

func TestCoreThresholdHotReload(t *testing.T) {
	defer goleak.VerifyNone(t)

	cfg := facade.DefaultConfig()
	cfg.AutoFlushThreshold = 0
	cfg.EnableMetrics = false

	var processed []batch.Message
	c, err := facade.New(cfg, facade.WithHandler(batch.Kind(1), fake.OKHandler(&processed)))
	require.NoError(t, err)
	require.NoError(t, c.Start())

	ctx := context.Background()
	require.NoError(t, c.Batcher().AddOperation(ctx, batch.Kind(1), []byte("a")))
	require.Equal(t, 1, c.Batcher().Pending())

	c.Control().SetConfig(map[string]any{"batcher.auto_flush_threshold": 1})
	require.NoError(t, c.Batcher().AddOperation(ctx, batch.Kind(1), []byte("b")))
	require.Zero(t, c.Batcher().Pending(), "reloaded threshold takes effect")

	require.NoError(t, c.Stop())
}

func TestCoreMetricsEndpoint(t *testing.T) {
	defer goleak.VerifyNone(t)

	c, err := facade.New(nil)
	require.NoError(t, err)
	require.NoError(t, c.Start())

	rr := httptest.NewRecorder()
	c.MetricsHandler().ServeHTTP(rr, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, 200, rr.Code)

	require.NoError(t, c.Stop())

	cfg := facade.DefaultConfig()
	cfg.EnableMetrics = false
	c2, err := facade.New(cfg)
	require.NoError(t, err)
	require.Nil(t, c2.MetricsHandler())
}
