package dataset

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeBlobs(t *testing.T) {
	b, err := MakeBlobs(BlobConfig{Samples: 203, Centers: 5, Rand: NewRand(42)})
	require.NoError(t, err)

	require.Len(t, b.Points, 203)
	require.Len(t, b.Labels, 203)
	require.Len(t, b.Centers, 5)

	counts := make([]int, 5)
	for i, p := range b.Points {
		label := b.Labels[i]
		counts[label]++

		// One-hot membership at the blob label.
		require.Len(t, p.Membership, 5)
		for j, ms := range p.Membership {
			if j == label {
				assert.Equal(t, 1.0, ms)
			} else {
				assert.Equal(t, 0.0, ms)
			}
		}
		assert.Equal(t, label, p.Group())

		// Well within 8 standard deviations of its center.
		c := b.Centers[label]
		assert.Less(t, math.Hypot(p.Pos.X-c.X, p.Pos.Y-c.Y), 8*0.6)
	}

	assert.Equal(t, []int{41, 41, 41, 40, 40}, counts)

	for _, c := range b.Centers {
		assert.GreaterOrEqual(t, c.X, -10.0)
		assert.LessOrEqual(t, c.X, 10.0)
		assert.GreaterOrEqual(t, c.Y, -10.0)
		assert.LessOrEqual(t, c.Y, 10.0)
	}
}

func TestMakeBlobs_Deterministic(t *testing.T) {
	a, err := MakeBlobs(BlobConfig{Samples: 50, Centers: 3, Rand: NewRand(7)})
	require.NoError(t, err)
	b, err := MakeBlobs(BlobConfig{Samples: 50, Centers: 3, Rand: NewRand(7)})
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestMakeBlobs_Options(t *testing.T) {
	b, err := MakeBlobs(BlobConfig{
		Samples:   10,
		Centers:   2,
		Std:       0.01,
		CenterBox: [2]float64{100, 101},
		Rand:      NewRand(1),
	})
	require.NoError(t, err)

	for _, p := range b.Points {
		assert.Greater(t, p.Pos.X, 99.0)
		assert.Less(t, p.Pos.X, 102.0)
	}
}

func TestMakeBlobs_Errors(t *testing.T) {
	_, err := MakeBlobs(BlobConfig{Samples: 0, Centers: 2})
	assert.ErrorIs(t, err, ErrNoSamples)

	_, err = MakeBlobs(BlobConfig{Samples: 10, Centers: 0})
	assert.ErrorIs(t, err, ErrNoCenters)
}
