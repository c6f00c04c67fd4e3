// Package distance provides the point-to-centroid distance functions used by
// the fuzzy c-means engine.
//
// # Supported Metrics
//
//   - MetricEuclidean: L2 distance (default)
//   - MetricManhattan: L1 distance
//   - MetricChebyshev: L-infinity distance
//
// # Usage
//
//	dist := distance.Euclidean(a, b)
//	fn, err := distance.Provider(distance.MetricManhattan)
package distance
