package fuzzyc

import (
	"context"
	"errors"

	"golang.org/x/time/rate"
)

// Frame is the state handed to an Observer after each iteration.
// Iteration 0 is the initial state, before the first Iterate call.
//
// Points and Centroids alias the live collections; observers must not keep
// or mutate them after Observe returns.
type Frame struct {
	Iteration int
	Points    Points
	Centroids CentroidSet
}

// Observer receives the clustering state between iterations (for plotting,
// logging, checkpointing). Returning an error stops the run.
type Observer interface {
	Observe(ctx context.Context, f Frame) error
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(ctx context.Context, f Frame) error

// Observe implements Observer.
func (fn ObserverFunc) Observe(ctx context.Context, f Frame) error {
	return fn(ctx, f)
}

// RunConfig controls Engine.Run.
type RunConfig struct {
	// M is the fuzzifier. If 0, DefaultFuzzifier is used.
	M float64

	// MaxIterations bounds the number of iterations. If 0, unbounded.
	MaxIterations int

	// Tolerance stops the run once no centroid moved more than this distance
	// in one iteration. If 0, no convergence check is made.
	Tolerance float64

	// Observer, if set, sees the initial state and the state after every iteration.
	Observer Observer

	// Limiter, if set, paces iterations.
	Limiter *rate.Limiter
}

// RunResult summarises a Run.
type RunResult struct {
	Iterations   int
	Converged    bool
	LastShift    float64
	GroupChanges int
}

// Run repeatedly calls Iterate until ctx is canceled, MaxIterations is
// reached, the largest centroid shift drops to Tolerance, or an error occurs.
// The result reflects the iterations completed so far, also on error.
func (e *Engine) Run(ctx context.Context, points Points, centroids CentroidSet, cfg RunConfig) (RunResult, error) {
	var res RunResult

	m := cfg.M
	if m == 0 {
		m = DefaultFuzzifier
	}
	if err := checkFuzzifier(m); err != nil {
		return res, err
	}

	k := len(centroids)
	logger := e.opts.logger.WithK(k).WithPoints(len(points)).WithFuzzifier(m)

	if cfg.Observer != nil {
		if err := cfg.Observer.Observe(ctx, Frame{Points: points, Centroids: centroids}); err != nil {
			return res, err
		}
	}

	groups := Partition(points, k)

	for cfg.MaxIterations == 0 || res.Iterations < cfg.MaxIterations {
		if err := ctx.Err(); err != nil {
			logger.LogRun(ctx, res.Iterations, false, err)
			return res, err
		}

		if cfg.Limiter != nil {
			if err := cfg.Limiter.Wait(ctx); err != nil {
				logger.LogRun(ctx, res.Iterations, false, err)
				return res, err
			}
		}

		prev := centroids.Clone()

		err := e.IterateContext(ctx, points, centroids, m)
		if err == nil || movedWithErrors(err) {
			res.Iterations++
			res.LastShift = centroids.MaxShift(prev)

			next := Partition(points, k)
			res.GroupChanges = GroupChanges(groups, next)
			groups = next
		}

		logger.LogIteration(ctx, res.Iterations, res.LastShift, err)

		if err != nil {
			logger.LogRun(ctx, res.Iterations, false, err)
			return res, err
		}

		if cfg.Observer != nil {
			if err := cfg.Observer.Observe(ctx, Frame{Iteration: res.Iterations, Points: points, Centroids: centroids}); err != nil {
				logger.LogRun(ctx, res.Iterations, false, err)
				return res, err
			}
		}

		if cfg.Tolerance > 0 && res.LastShift <= cfg.Tolerance {
			res.Converged = true
			break
		}
	}

	logger.LogRun(ctx, res.Iterations, res.Converged, nil)
	return res, nil
}

// movedWithErrors reports whether err came out of MOVE, i.e. the iteration
// ran both phases and only some centroids kept their old positions.
func movedWithErrors(err error) bool {
	var overflow *CentroidOverflowError
	return errors.Is(err, ErrDegenerateCentroid) || errors.As(err, &overflow)
}
