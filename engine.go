package fuzzyc

import (
	"context"
	"errors"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/fuzzyc/distance"
)

// DefaultFuzzifier is the fuzzifier used when none is given.
const DefaultFuzzifier = 2.0

// Engine performs fuzzy c-means iterations over caller-owned points and centroids.
//
// An Engine holds configuration only; every call is a pure function of the
// collections it is given. Concurrent calls on the same collections must be
// serialized by the caller. Concurrent calls on distinct collections are safe.
type Engine struct {
	opts    options
	dist    distance.Func
	distErr error
}

// NewEngine creates an Engine with the given options.
func NewEngine(optFns ...Option) *Engine {
	o := applyOptions(optFns)
	dist, err := distance.Provider(o.metric)
	return &Engine{
		opts:    o,
		dist:    dist,
		distErr: err,
	}
}

var defaultEngine = NewEngine()

// Iterate runs one FIT + MOVE iteration with a default Engine.
func Iterate(points Points, centroids CentroidSet, m float64) error {
	return defaultEngine.Iterate(points, centroids, m)
}

// Iterate runs one full iteration: every point's membership vector is
// recomputed from the current centroids (FIT), then every centroid is moved
// to the membership-weighted mean of all points (MOVE).
//
// Both collections are mutated in place. Invalid fuzzifiers and dimension
// mismatches are reported before anything is written. Degenerate centroids
// are reported after MOVE as a joined error of *DegenerateCentroidError; the
// memberships written by FIT and the remaining centroid updates are kept.
// A membership that is not a finite float64 stops the iteration before MOVE
// with *MembershipOverflowError. Nothing non-finite is ever stored.
func (e *Engine) Iterate(points Points, centroids CentroidSet, m float64) error {
	return e.IterateContext(context.Background(), points, centroids, m)
}

// IterateContext is like Iterate. ctx bounds only the wait for worker slots
// from a shared resource controller, which happens before any mutation.
func (e *Engine) IterateContext(ctx context.Context, points Points, centroids CentroidSet, m float64) error {
	start := time.Now()

	err := e.iterate(ctx, points, centroids, m)

	e.opts.metricsCollector.RecordIteration(time.Since(start), err)
	return err
}

func (e *Engine) iterate(ctx context.Context, points Points, centroids CentroidSet, m float64) error {
	if err := e.validate(points, centroids, m); err != nil {
		return err
	}

	workers, release, err := e.acquire(ctx)
	if err != nil {
		return err
	}
	defer release()

	// Barrier: fit returns only after every point is done.
	if err := e.fit(points, centroids, m, workers); err != nil {
		return err
	}
	return e.move(ctx, points, centroids, m, workers)
}

// Fit runs only the membership update.
func (e *Engine) Fit(points Points, centroids CentroidSet, m float64) error {
	if err := e.validate(points, centroids, m); err != nil {
		return err
	}

	workers, release, err := e.acquire(context.Background())
	if err != nil {
		return err
	}
	defer release()

	return e.fit(points, centroids, m, workers)
}

// Move runs only the centroid update from the current memberships.
func (e *Engine) Move(points Points, centroids CentroidSet, m float64) error {
	if err := e.validate(points, centroids, m); err != nil {
		return err
	}

	workers, release, err := e.acquire(context.Background())
	if err != nil {
		return err
	}
	defer release()

	return e.move(context.Background(), points, centroids, m, workers)
}

func checkFuzzifier(m float64) error {
	if math.IsNaN(m) || math.IsInf(m, 0) || m <= 1 {
		return &FuzzifierError{M: m}
	}
	return nil
}

func (e *Engine) validate(points Points, centroids CentroidSet, m float64) error {
	if e.distErr != nil {
		return e.distErr
	}

	if err := checkFuzzifier(m); err != nil {
		return err
	}

	k := len(centroids)
	for i, p := range points {
		if len(p.Membership) != k {
			return &DimensionMismatchError{Point: i, Expected: k, Actual: len(p.Membership)}
		}
	}

	return nil
}

func (e *Engine) acquire(ctx context.Context) (int, func(), error) {
	want := max(e.opts.workers, 1)
	if e.opts.controller == nil {
		return want, func() {}, nil
	}

	got, err := e.opts.controller.AcquireWorkers(ctx, want)
	if err != nil {
		return 0, nil, err
	}
	return got, func() { e.opts.controller.ReleaseWorkers(got) }, nil
}

func (e *Engine) fit(points Points, centroids CentroidSet, m float64, workers int) error {
	n := len(points)
	if n == 0 {
		return nil
	}

	exp := 2 / (m - 1)
	k := len(centroids)

	fitRange := func(lo, hi int) error {
		w := make([]float64, k)
		u := make([]float64, k)

		var errs []error
		for i := lo; i < hi; i++ {
			var err error
			switch e.opts.mode {
			case MembershipNormalized:
				err = e.fitNormalized(i, points[i], centroids, exp, w, u)
			default:
				err = e.fitRaw(i, points[i], centroids, exp, w, u)
			}
			if err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	}

	if workers <= 1 || n == 1 {
		return fitRange(0, n)
	}

	chunk := (n + workers - 1) / workers
	chunkErrs := make([]error, (n+chunk-1)/chunk)

	var g errgroup.Group
	g.SetLimit(workers)

	for c, lo := 0, 0; lo < n; c, lo = c+1, lo+chunk {
		hi := min(lo+chunk, n)
		g.Go(func() error {
			chunkErrs[c] = fitRange(lo, hi)
			return chunkErrs[c]
		})
	}

	if err := g.Wait(); err != nil {
		// Wait keeps only the first failure; report all of them in point order.
		return errors.Join(chunkErrs...)
	}
	return nil
}

// fitRaw overwrites p.Membership with 1/(w_j/Σw), w_j = d_j^exp.
//
// Distances are divided by their maximum before exponentiation. Every ratio
// w_j/Σw stays the same while Σw stays within [1, K], so w never overflows.
// A zero w_j or ratio yields 0. A ratio whose reciprocal is not a finite
// float64 leaves p untouched and is reported as *MembershipOverflowError.
func (e *Engine) fitRaw(i int, p *Point, centroids CentroidSet, exp float64, w, u []float64) error {
	pos := p.Pos.Array()

	var dmax float64
	for j, c := range centroids {
		cpos := c.Array()
		w[j] = e.dist(pos[:], cpos[:])
		dmax = max(dmax, w[j])
	}

	if dmax == 0 {
		// Every centroid coincides with the point.
		clear(p.Membership)
		return nil
	}

	var total float64
	for j := range w {
		w[j] = math.Pow(w[j]/dmax, exp)
		total += w[j]
	}

	for j := range u {
		if w[j] == 0 {
			u[j] = 0
			continue
		}

		ratio := w[j] / total
		if ratio == 0 {
			u[j] = 0
			continue
		}

		u[j] = 1 / ratio
		if !isFinite(u[j]) {
			return &MembershipOverflowError{Point: i, Centroid: j}
		}
	}

	copy(p.Membership, u)
	return nil
}

// fitNormalized overwrites p.Membership with 1/Σ_k (d_j/d_k)^exp.
func (e *Engine) fitNormalized(i int, p *Point, centroids CentroidSet, exp float64, d, u []float64) error {
	pos := p.Pos.Array()

	coincident := 0
	for j, c := range centroids {
		cpos := c.Array()
		d[j] = e.dist(pos[:], cpos[:])
		if d[j] == 0 {
			coincident++
		}
	}

	if coincident > 0 {
		share := 1 / float64(coincident)
		for j := range p.Membership {
			if d[j] == 0 {
				p.Membership[j] = share
			} else {
				p.Membership[j] = 0
			}
		}
		return nil
	}

	for j := range u {
		var s float64
		for k := range d {
			s += math.Pow(d[j]/d[k], exp)
		}
		u[j] = 1 / s
		if !isFinite(u[j]) {
			return &MembershipOverflowError{Point: i, Centroid: j}
		}
	}

	copy(p.Membership, u)
	return nil
}

func (e *Engine) move(ctx context.Context, points Points, centroids CentroidSet, m float64, workers int) error {
	k := len(centroids)
	errs := make([]error, k)

	if workers <= 1 || k == 1 {
		for j := range centroids {
			errs[j] = moveCentroid(points, centroids, j, m)
		}
	} else {
		var g errgroup.Group
		g.SetLimit(workers)

		for j := range centroids {
			g.Go(func() error {
				errs[j] = moveCentroid(points, centroids, j, m)
				return errs[j]
			})
		}

		if err := g.Wait(); err == nil {
			return nil
		}
	}

	for j, err := range errs {
		if errors.Is(err, ErrDegenerateCentroid) {
			e.opts.logger.LogDegenerate(ctx, j)
			e.opts.metricsCollector.RecordDegenerate(j)
		}
	}

	return errors.Join(errs...)
}

// moveCentroid sets centroid j to the mean of all point positions weighted by
// membership[j]^m. Memberships are divided by their maximum first, which
// leaves the mean unchanged and keeps every weight within [0, 1].
//
// A zero total weight or a mean that is not finite leaves the centroid untouched.
func moveCentroid(points Points, centroids CentroidSet, j int, m float64) error {
	var umax float64
	for _, p := range points {
		umax = max(umax, p.Membership[j])
	}

	if umax == 0 {
		return &DegenerateCentroidError{Centroid: j}
	}

	var total, sumX, sumY float64
	for _, p := range points {
		w := math.Pow(p.Membership[j]/umax, m)
		sumX += w * p.Pos.X
		sumY += w * p.Pos.Y
		total += w
	}

	if total == 0 {
		return &DegenerateCentroidError{Centroid: j}
	}

	c := Vec2{X: sumX / total, Y: sumY / total}
	if !isFinite(total) || !isFinite(c.X) || !isFinite(c.Y) {
		return &CentroidOverflowError{Centroid: j}
	}

	centroids[j] = c
	return nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
