package fuzzyc

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func twoBlobs() (Points, CentroidSet) {
	points := NewPoints(2, []Vec2{
		{X: 0, Y: 0}, {X: 0, Y: 1},
		{X: 10, Y: 0}, {X: 10, Y: 1},
	})
	return points, CentroidSet{{X: 1, Y: 0.5}, {X: 9, Y: 0.5}}
}

func TestRun_MaxIterations(t *testing.T) {
	points, centroids := twoBlobs()

	var frames []int
	obs := ObserverFunc(func(_ context.Context, f Frame) error {
		frames = append(frames, f.Iteration)
		assert.Len(t, f.Centroids, 2)
		return nil
	})

	res, err := NewEngine().Run(context.Background(), points, centroids, RunConfig{
		MaxIterations: 5,
		Observer:      obs,
	})
	require.NoError(t, err)
	assert.Equal(t, 5, res.Iterations)
	assert.False(t, res.Converged)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, frames)
}

func TestRun_Converges(t *testing.T) {
	points, centroids := twoBlobs()
	eng := NewEngine(WithMembershipMode(MembershipNormalized))

	res, err := eng.Run(context.Background(), points, centroids, RunConfig{
		M:             2,
		MaxIterations: 1000,
		Tolerance:     1e-9,
	})
	require.NoError(t, err)
	assert.True(t, res.Converged)
	assert.LessOrEqual(t, res.LastShift, 1e-9)
	assert.Less(t, res.Iterations, 1000)

	assert.Less(t, centroids[0].X, 1.0)
	assert.Greater(t, centroids[1].X, 9.0)
	assert.InDelta(t, 0.5, centroids[0].Y, 1e-9)
	assert.InDelta(t, 0.5, centroids[1].Y, 1e-9)

	assert.Equal(t, []int{0, 0, 1, 1}, points.Groups())
}

func TestRun_GroupChanges(t *testing.T) {
	points := NewPoints(2, []Vec2{{X: 0, Y: 0}, {X: 10, Y: 0}})
	centroids := CentroidSet{{X: 0, Y: 0}, {X: 10, Y: 0}}

	// Both points start in group 0; after one swap iteration point 0 is in
	// group 1 and point 1 in group 0.
	res, err := NewEngine().Run(context.Background(), points, centroids, RunConfig{MaxIterations: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, res.GroupChanges)
	assert.InDelta(t, 10.0, res.LastShift, 1e-12)
}

func TestRun_InvalidFuzzifier(t *testing.T) {
	points, centroids := twoBlobs()
	res, err := NewEngine().Run(context.Background(), points, centroids, RunConfig{M: 1})
	assert.ErrorIs(t, err, ErrInvalidFuzzifier)
	assert.Equal(t, 0, res.Iterations)
}

func TestRun_Canceled(t *testing.T) {
	points, centroids := twoBlobs()

	ctx, cancel := context.WithCancel(context.Background())
	obs := ObserverFunc(func(_ context.Context, f Frame) error {
		if f.Iteration == 3 {
			cancel()
		}
		return nil
	})

	// Unbounded run, stopped only by cancellation.
	res, err := NewEngine().Run(ctx, points, centroids, RunConfig{Observer: obs})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 3, res.Iterations)
}

func TestRun_ObserverError(t *testing.T) {
	points, centroids := twoBlobs()
	boom := errors.New("boom")

	res, err := NewEngine().Run(context.Background(), points, centroids, RunConfig{
		Observer: ObserverFunc(func(_ context.Context, f Frame) error {
			if f.Iteration == 2 {
				return boom
			}
			return nil
		}),
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 2, res.Iterations)
}

func TestRun_Degenerate(t *testing.T) {
	points := Points{NewPoint(2, 5, 5)}
	centroids := CentroidSet{{X: 5, Y: 5}, {X: 0, Y: 0}}

	res, err := NewEngine().Run(context.Background(), points, centroids, RunConfig{MaxIterations: 10})
	assert.ErrorIs(t, err, ErrDegenerateCentroid)
	assert.Equal(t, 1, res.Iterations)
}

func TestRun_MembershipOverflow(t *testing.T) {
	points := Points{NewPoint(2, 1e-150, 0)}
	centroids := CentroidSet{{X: 0, Y: 0}, {X: 1e5, Y: 0}}

	res, err := NewEngine().Run(context.Background(), points, centroids, RunConfig{MaxIterations: 10})
	assert.ErrorIs(t, err, ErrNonFinite)
	assert.Equal(t, 0, res.Iterations)
}

func TestRun_CentroidOverflowCounts(t *testing.T) {
	points := NewPoints(1, []Vec2{{X: 1.5e308, Y: 0}, {X: -1e307, Y: 0}, {X: 1.5e308, Y: 0}})
	centroids := CentroidSet{{X: 0, Y: 0}}

	res, err := NewEngine().Run(context.Background(), points, centroids, RunConfig{MaxIterations: 10})
	assert.ErrorIs(t, err, ErrNonFinite)
	assert.Equal(t, 1, res.Iterations)
	assert.Equal(t, CentroidSet{{X: 0, Y: 0}}, centroids)
}

func TestRun_Limiter(t *testing.T) {
	points, centroids := twoBlobs()

	res, err := NewEngine().Run(context.Background(), points, centroids, RunConfig{
		MaxIterations: 3,
		Limiter:       rate.NewLimiter(rate.Inf, 1),
	})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Iterations)
}
