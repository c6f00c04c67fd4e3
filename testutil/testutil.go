package testutil

import (
	"math"
	"math/rand/v2"
	"sync"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	src  *rand.PCG
	rand *rand.Rand
	seed uint64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed uint64) *RNG {
	src := rand.NewPCG(seed, seed)
	return &RNG{
		src:  src,
		rand: rand.New(src), // nolint gosec
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.src.Seed(r.seed, r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() uint64 {
	return r.seed
}

// IntN returns a non-negative pseudo-random number in [0,n).
func (r *RNG) IntN(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.IntN(n)
}

// UniformPositions returns num positions with both coordinates drawn
// uniformly from [lo, hi).
func (r *RNG) UniformPositions(num int, lo, hi float64) [][2]float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	span := hi - lo
	out := make([][2]float64, num)
	for i := range out {
		out[i] = [2]float64{lo + r.rand.Float64()*span, lo + r.rand.Float64()*span}
	}
	return out
}

// ClusteredPositions returns num positions spread round-robin over clusters
// Gaussian blobs with the given standard deviation. Blob centers are drawn
// uniformly from [-box, box).
func (r *RNG) ClusteredPositions(num, clusters int, spread, box float64) [][2]float64 {
	centers := r.UniformPositions(clusters, -box, box)

	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([][2]float64, num)
	for i := range out {
		c := centers[i%clusters]
		out[i] = [2]float64{
			c[0] + r.rand.NormFloat64()*spread,
			c[1] + r.rand.NormFloat64()*spread,
		}
	}
	return out
}

// ReferenceMemberships computes the textbook fuzzy memberships of p against
// centroids with a straightforward double loop. p must not coincide with
// any centroid.
func ReferenceMemberships(p [2]float64, centroids [][2]float64, m float64) []float64 {
	exp := 2 / (m - 1)
	u := make([]float64, len(centroids))
	for j, cj := range centroids {
		dj := math.Hypot(p[0]-cj[0], p[1]-cj[1])
		var s float64
		for _, ck := range centroids {
			dk := math.Hypot(p[0]-ck[0], p[1]-ck[1])
			s += math.Pow(dj/dk, exp)
		}
		u[j] = 1 / s
	}
	return u
}

// WeightedMean returns the mean of positions weighted by weights[i]^m.
// ok is false when the total weight is zero.
func WeightedMean(positions [][2]float64, weights []float64, m float64) (mean [2]float64, ok bool) {
	var total float64
	for i, p := range positions {
		w := math.Pow(weights[i], m)
		mean[0] += w * p[0]
		mean[1] += w * p[1]
		total += w
	}
	if total == 0 {
		return [2]float64{}, false
	}
	mean[0] /= total
	mean[1] /= total
	return mean, true
}
