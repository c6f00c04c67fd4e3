// Package resource shares worker slots and frame pacing between clustering runs.
package resource

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// Config holds resource limits.
type Config struct {
	// MaxWorkers is the maximum number of goroutines all engines sharing this
	// controller may use at once.
	// If 0, defaults to 1.
	MaxWorkers int64

	// FramesPerSecond caps how often a driver loop may start an iteration.
	// If 0, unlimited.
	FramesPerSecond float64
}

// Controller manages shared resources (worker slots, frame rate).
type Controller struct {
	cfg Config

	// Concurrency
	workerSem *semaphore.Weighted
	inUse     atomic.Int64

	// Pacing
	frameLimiter *rate.Limiter
}

// NewController creates a new resource controller.
func NewController(cfg Config) *Controller {
	if cfg.MaxWorkers <= 0 {
		cfg.MaxWorkers = 1
	}

	c := &Controller{
		cfg:       cfg,
		workerSem: semaphore.NewWeighted(cfg.MaxWorkers),
	}

	if cfg.FramesPerSecond > 0 {
		c.frameLimiter = rate.NewLimiter(rate.Limit(cfg.FramesPerSecond), 1)
	}

	return c
}

// MaxWorkers returns the configured worker budget.
func (c *Controller) MaxWorkers() int64 {
	return c.cfg.MaxWorkers
}

// AcquireWorkers reserves between 1 and want worker slots.
// It blocks until the first slot is free or ctx is canceled, then takes as
// many additional slots as are immediately available.
// Returns the number of slots acquired.
func (c *Controller) AcquireWorkers(ctx context.Context, want int) (int, error) {
	if want < 1 {
		want = 1
	}

	if err := c.workerSem.Acquire(ctx, 1); err != nil {
		return 0, err
	}

	got := 1
	for got < want && c.workerSem.TryAcquire(1) {
		got++
	}

	c.inUse.Add(int64(got))
	return got, nil
}

// ReleaseWorkers releases n previously acquired worker slots.
func (c *Controller) ReleaseWorkers(n int) {
	if n <= 0 {
		return
	}
	c.workerSem.Release(int64(n))
	c.inUse.Add(-int64(n))
}

// WorkersInUse returns the number of slots currently held.
func (c *Controller) WorkersInUse() int64 {
	return c.inUse.Load()
}

// Limiter returns the frame limiter, or nil if pacing is disabled.
func (c *Controller) Limiter() *rate.Limiter {
	if c == nil {
		return nil
	}
	return c.frameLimiter
}

// WaitFrame blocks until the next frame is allowed.
func (c *Controller) WaitFrame(ctx context.Context) error {
	if c == nil || c.frameLimiter == nil {
		return ctx.Err()
	}
	return c.frameLimiter.Wait(ctx)
}
