package dataset

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/fuzzyc"
)

func TestReadCSV(t *testing.T) {
	t.Run("PositionsOnly", func(t *testing.T) {
		points, err := ReadCSV(strings.NewReader("x,y\n0,0\n10,0.5\n"), 2)
		require.NoError(t, err)
		require.Len(t, points, 2)
		assert.Equal(t, fuzzyc.Vec2{X: 10, Y: 0.5}, points[1].Pos)
		assert.Equal(t, []float64{0, 0}, points[1].Membership)
	})

	t.Run("WithMembership", func(t *testing.T) {
		points, err := ReadCSV(strings.NewReader("x,y,membership\n1,2,0.25;0.75\n3,4,\n"), 2)
		require.NoError(t, err)
		assert.Equal(t, []float64{0.25, 0.75}, points[0].Membership)
		assert.Equal(t, []float64{0, 0}, points[1].Membership)
	})

	t.Run("Mismatch", func(t *testing.T) {
		_, err := ReadCSV(strings.NewReader("x,y,membership\n1,2,1;0;0\n"), 2)
		assert.ErrorIs(t, err, fuzzyc.ErrDimensionMismatch)
	})

	t.Run("NonPositiveK", func(t *testing.T) {
		for _, k := range []int{0, -1} {
			_, err := ReadCSV(strings.NewReader("x,y\n0,0\n"), k)
			assert.ErrorIs(t, err, ErrNoCenters)
		}
	})

	t.Run("BadNumber", func(t *testing.T) {
		_, err := ReadCSV(strings.NewReader("x,y\nabc,2\n"), 2)
		assert.Error(t, err)
	})
}

func TestWriteCSV_RoundTrip(t *testing.T) {
	points := fuzzyc.NewPoints(2, []fuzzyc.Vec2{{X: 0, Y: 0}, {X: 10, Y: 0}})
	centroids := fuzzyc.CentroidSet{{X: 0, Y: 0}, {X: 10, Y: 0}}
	require.NoError(t, fuzzyc.Iterate(points, centroids, 2))

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, points))
	assert.Equal(t, "x,y,group,membership\n0,0,1,0;1\n10,0,0,1;0\n", buf.String())

	got, err := ReadCSV(&buf, 2)
	require.NoError(t, err)
	assert.Equal(t, points, got)
}
