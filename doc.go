// Package fuzzyc implements the alternating-optimization core of Fuzzy C-Means
// clustering over 2D points.
//
// The caller owns a collection of points and a set of K centroids. Each call
// to Iterate performs one FIT step (every point's membership vector is
// recomputed from its distances to the current centroids) followed by one
// MOVE step (every centroid becomes the membership-weighted mean of all
// points). Both collections are mutated in place; the engine keeps no state
// between calls and never decides when to stop.
//
// # Quick Start
//
//	points := fuzzyc.NewPoints(2, []fuzzyc.Vec2{{X: 0, Y: 0}, {X: 10, Y: 0}})
//	centroids := fuzzyc.CentroidSet{{X: 1, Y: 1}, {X: 9, Y: -1}}
//
//	for i := 0; i < 10; i++ {
//	    if err := fuzzyc.Iterate(points, centroids, 2.0); err != nil {
//	        log.Fatal(err)
//	    }
//	}
//
// # Membership Formula
//
// With w_j = d_j^(2/(m-1)), the default MembershipRaw mode sets
//
//	membership[j] = 1 / (w_j / Σ_k w_k)
//
// and 0 when the point coincides with centroid j. The values are not
// normalized. MembershipNormalized selects the textbook formula instead.
//
// # Driving a Run
//
// Engine.Run wraps Iterate in a loop with optional iteration cap,
// convergence tolerance, frame pacing and an Observer:
//
//	eng := fuzzyc.NewEngine(fuzzyc.WithWorkers(4))
//	res, err := eng.Run(ctx, points, centroids, fuzzyc.RunConfig{
//	    MaxIterations: 100,
//	    Tolerance:     1e-6,
//	})
//
// # Errors
//
//   - ErrInvalidFuzzifier: m is not a finite number > 1 (nothing mutated)
//   - ErrDimensionMismatch: a membership vector length differs from K (nothing mutated)
//   - ErrDegenerateCentroid: a centroid got zero total weight in MOVE
//   - ErrNonFinite: a membership (FIT, iteration stops before MOVE) or a
//     centroid (MOVE, centroid kept) would not be a finite float64
package fuzzyc
