// File: facade/facade.go
// Unified facade layer for the hioload-mem library.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Core aggregates the allocator family and the batch engine behind one
// facade: it builds the transient-buffer arena with its heap fallback,
// the block and slot pools, the ring, the metrics pipeline, and the
// batcher wired to an injected engine, all from immutable configuration.
// Threshold hot-reload is exposed through the Control store.

package facade

import (
	"context"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/momentics/hioload-mem/api"
	"github.com/momentics/hioload-mem/arena"
	"github.com/momentics/hioload-mem/batch"
	"github.com/momentics/hioload-mem/control"
	"github.com/momentics/hioload-mem/metrics"
	"github.com/momentics/hioload-mem/pool"
)

// Config holds parameters immutable per run. AutoFlushThreshold is the
// one value that may change afterwards, via the Control store.
type Config struct {
	ArenaCapacity      int           // transient-buffer arena size in bytes
	MappedArena        bool          // back the arena with an anonymous mapping
	BlockSize          int           // block pool: bytes per block
	BlockCount         int           // block pool: number of blocks
	SlotSize           int           // freelist pool: bytes per slot
	SlotCount          int           // freelist pool: number of slots
	RingCapacity       int           // ring buffer capacity in bytes
	MaxBatchSize       int           // in-progress batch capacity
	AutoFlushThreshold int           // synchronous auto-flush trigger
	MaxBatchWait       time.Duration // background flush period (BackgroundFlush)
	BackgroundFlush    bool          // start the opt-in flush timer on Start
	EnableMetrics      bool          // run the Prometheus-backed collector
	EnableTracing      bool          // wrap ProcessBatch in OTel spans
}

// DefaultConfig returns default configuration values.
func DefaultConfig() *Config {
	return &Config{
		ArenaCapacity:      1 << 20, // 1 MiB transient arena
		MappedArena:        false,
		BlockSize:          4096,
		BlockCount:         256,
		SlotSize:           256,
		SlotCount:          1024,
		RingCapacity:       64 * 1024,
		MaxBatchSize:       batch.DefaultCapacity,
		AutoFlushThreshold: 256,
		MaxBatchWait:       100 * time.Millisecond,
		BackgroundFlush:    false,
		EnableMetrics:      true,
		EnableTracing:      false,
	}
}

// Core is the main facade type.
type Core struct {
	arenaBuf  *arena.Bump
	fallback  *arena.Fallback
	blocks    *pool.BlockPool
	slots     *pool.FreeList
	ring      *pool.Ring
	engine    *batch.Engine
	batcher   *batch.Batcher
	collector *metrics.Collector
	prom      *metrics.Prometheus
	ctrl      *control.ConfigStore

	config  *Config
	cancel  context.CancelFunc
	mu      sync.Mutex
	started bool
}

// New constructs a Core from cfg. A nil cfg means DefaultConfig. The
// engine starts with no handlers; register them through Engine() before
// processing, or pass them as options.
func New(cfg *Config, opts ...Option) (*Core, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	c := &Core{config: cfg, ctrl: control.NewConfigStore()}

	var rec api.Recorder = api.NopRecorder{}
	if cfg.EnableMetrics {
		c.prom = metrics.NewPrometheus()
		c.collector = metrics.NewCollector(c.prom)
		rec = c.collector
	}

	var arenaOpts []arena.Option
	if cfg.MappedArena {
		arenaOpts = append(arenaOpts, arena.WithMappedBacking())
	}
	arenaOpts = append(arenaOpts, arena.WithRecorder(rec))
	a, err := arena.New(cfg.ArenaCapacity, arenaOpts...)
	if err != nil {
		return nil, err
	}
	c.arenaBuf = a
	c.fallback = arena.NewFallback(a)

	if c.blocks, err = pool.NewBlockPool(cfg.BlockSize, cfg.BlockCount); err != nil {
		return nil, err
	}
	if c.slots, err = pool.NewFreeList(cfg.SlotSize, cfg.SlotCount); err != nil {
		return nil, err
	}
	if c.ring, err = pool.NewRing(cfg.RingCapacity); err != nil {
		return nil, err
	}

	engineOpts := []batch.EngineOption{batch.WithRecorder(rec)}
	if cfg.EnableTracing {
		engineOpts = append(engineOpts, batch.WithTracer(metrics.NewOTelTracer("hioload-mem")))
	}
	c.engine = batch.NewEngine(engineOpts...)

	c.batcher, err = batch.NewBatcher(c.engine, batch.BatcherConfig{
		MaxBatchSize:       cfg.MaxBatchSize,
		AutoFlushThreshold: cfg.AutoFlushThreshold,
		MaxBatchWait:       cfg.MaxBatchWait,
	}, batch.WithBatcherRecorder(rec))
	if err != nil {
		return nil, err
	}

	// Expose the mutable threshold through the control store.
	c.ctrl.SetConfig(map[string]any{
		"batcher.auto_flush_threshold": cfg.AutoFlushThreshold,
		"metrics.enabled":              cfg.EnableMetrics,
	})
	c.ctrl.OnReload(func() {
		if n, ok := c.ctrl.GetInt("batcher.auto_flush_threshold"); ok {
			c.batcher.SetAutoFlushThreshold(n)
		}
	})

	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Start launches the metrics worker and, when configured, the
// background flush timer. Subsequent calls have no effect.
func (c *Core) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.started {
		return nil
	}
	if c.collector != nil {
		c.collector.Start()
	}
	if c.config.BackgroundFlush {
		ctx, cancel := context.WithCancel(context.Background())
		c.cancel = cancel
		go c.batcher.Run(ctx)
	}
	c.started = true
	return nil
}

// Stop flushes pending operations, stops workers, and releases the
// arena backing. Calling Stop on a non-started core is a no-op.
func (c *Core) Stop() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.started {
		return nil
	}
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	if res := c.batcher.Flush(context.Background()); res.Err != nil {
		log.Printf("[facade] final flush failed: %v", res.Err)
	}
	if c.collector != nil {
		c.collector.Stop()
	}
	if err := c.arenaBuf.Close(); err != nil {
		log.Printf("[facade] arena close: %v", err)
	}
	c.started = false
	return nil
}

// Engine returns the batch engine for handler registration.
func (c *Core) Engine() *batch.Engine { return c.engine }

// Batcher returns the client batcher.
func (c *Core) Batcher() *batch.Batcher { return c.batcher }

// Arena returns the transient-buffer arena with heap fallback.
func (c *Core) Arena() *arena.Fallback { return c.fallback }

// Blocks returns the fixed block pool.
func (c *Core) Blocks() *pool.BlockPool { return c.blocks }

// Slots returns the freelist slot pool.
func (c *Core) Slots() *pool.FreeList { return c.slots }

// Ring returns the byte ring buffer.
func (c *Core) Ring() *pool.Ring { return c.ring }

// Control returns the dynamic config store.
func (c *Core) Control() *control.ConfigStore { return c.ctrl }

// MetricsHandler returns the Prometheus HTTP handler, or nil when
// metrics are disabled.
func (c *Core) MetricsHandler() http.Handler {
	if c.prom == nil {
		return nil
	}
	return c.prom.Handler()
}
