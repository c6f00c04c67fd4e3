package dataset

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/fuzzyc"
)

func TestDataBounds_IncludesOrigin(t *testing.T) {
	points := fuzzyc.NewPoints(1, []fuzzyc.Vec2{{X: 3, Y: 4}, {X: 5, Y: 8}})

	b := DataBounds(points)
	assert.Equal(t, fuzzyc.Vec2{X: 0, Y: 0}, b.Min)
	assert.Equal(t, fuzzyc.Vec2{X: 5, Y: 8}, b.Max)

	assert.Equal(t, fuzzyc.Bounds{}, DataBounds(nil))
}

func TestRandomCentroids(t *testing.T) {
	b := fuzzyc.Bounds{Min: fuzzyc.Vec2{X: -2.4, Y: 0}, Max: fuzzyc.Vec2{X: 3.6, Y: 2.5}}
	cs := RandomCentroids(50, b, NewRand(3))
	require.Len(t, cs, 50)

	// x in [-2, 4], y in [0, 2] (2.5 rounds half to even).
	for _, c := range cs {
		assert.Equal(t, math.Trunc(c.X), c.X)
		assert.Equal(t, math.Trunc(c.Y), c.Y)
		assert.GreaterOrEqual(t, c.X, -2.0)
		assert.LessOrEqual(t, c.X, 4.0)
		assert.GreaterOrEqual(t, c.Y, 0.0)
		assert.LessOrEqual(t, c.Y, 2.0)
	}

	assert.Equal(t, cs, RandomCentroids(50, b, NewRand(3)))
}

func TestRandomCentroids_Degenerate(t *testing.T) {
	cs := RandomCentroids(3, fuzzyc.Bounds{}, nil)
	assert.Equal(t, fuzzyc.CentroidSet{{}, {}, {}}, cs)
}

func TestRandomCentroids_NonPositiveK(t *testing.T) {
	assert.Nil(t, RandomCentroids(0, fuzzyc.Bounds{}, nil))
	assert.Nil(t, RandomCentroids(-1, fuzzyc.Bounds{}, nil))
}

func TestSeedKMeans(t *testing.T) {
	b, err := MakeBlobs(BlobConfig{Samples: 120, Centers: 3, Std: 0.2, Rand: NewRand(11)})
	require.NoError(t, err)

	cs, err := SeedKMeans(b.Points, 3)
	require.NoError(t, err)
	require.Len(t, cs, 3)

	bounds := b.Points.Bounds()
	for _, c := range cs {
		assert.True(t, bounds.Contains(c))
	}

	_, err = SeedKMeans(b.Points[:2], 3)
	assert.Error(t, err)
}
