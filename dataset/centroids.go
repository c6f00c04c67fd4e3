package dataset

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"

	"github.com/hupe1980/fuzzyc"
)

// DataBounds returns the bounding box of the points, grown to include the origin.
func DataBounds(points fuzzyc.Points) fuzzyc.Bounds {
	var b fuzzyc.Bounds
	for _, p := range points {
		b = b.Extend(p.Pos)
	}
	return b
}

// RandomCentroids places k centroids at integer coordinates drawn uniformly
// from the bounding box, with the box edges rounded half-to-even and included.
// It returns nil for k <= 0.
func RandomCentroids(k int, b fuzzyc.Bounds, rng *rand.Rand) fuzzyc.CentroidSet {
	if k <= 0 {
		return nil
	}

	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())) // nolint gosec
	}

	randInt := func(lo, hi float64) float64 {
		l, h := int(math.RoundToEven(lo)), int(math.RoundToEven(hi))
		if h < l {
			l, h = h, l
		}
		return float64(l + rng.IntN(h-l+1))
	}

	cs := make(fuzzyc.CentroidSet, k)
	for j := range cs {
		cs[j] = fuzzyc.Vec2{
			X: randInt(b.Min.X, b.Max.X),
			Y: randInt(b.Min.Y, b.Max.Y),
		}
	}
	return cs
}

// SeedKMeans places k centroids at the centers of a hard k-means partition of
// the points.
func SeedKMeans(points fuzzyc.Points, k int) (fuzzyc.CentroidSet, error) {
	obs := make(clusters.Observations, len(points))
	for i, p := range points {
		obs[i] = clusters.Coordinates{p.Pos.X, p.Pos.Y}
	}

	parts, err := kmeans.New().Partition(obs, k)
	if err != nil {
		return nil, fmt.Errorf("dataset: kmeans seeding: %w", err)
	}

	cs := make(fuzzyc.CentroidSet, len(parts))
	for j, c := range parts {
		cs[j] = fuzzyc.Vec2{X: c.Center[0], Y: c.Center[1]}
	}
	return cs, nil
}
