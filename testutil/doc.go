// Package testutil provides testing utilities for fuzzyc.
//
// This package is intended for use in tests and benchmarks only.
// It provides helpers for generating reproducible 2D positions and naive
// reference implementations of the membership and centroid formulas.
//
// # Random Positions
//
//	rng := testutil.NewRNG(seed)
//	pos := rng.UniformPositions(100, -10, 10)
//	blobs := rng.ClusteredPositions(300, 3, 0.5, 10)
//
// # Reference Results (Ground Truth)
//
//	want := testutil.ReferenceMemberships(pos[0], centroids, 2)
//	c := testutil.WeightedMean(pos, weights, 2)
package testutil
