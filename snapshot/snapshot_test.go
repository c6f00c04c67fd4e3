package snapshot

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/fuzzyc"
	"github.com/hupe1980/fuzzyc/codec"
)

func testState(t *testing.T) (fuzzyc.Points, fuzzyc.CentroidSet) {
	t.Helper()

	positions := make([]fuzzyc.Vec2, 64)
	for i := range positions {
		positions[i] = fuzzyc.Vec2{X: float64(i % 8), Y: float64(i / 8)}
	}
	points := fuzzyc.NewPoints(2, positions)
	centroids := fuzzyc.CentroidSet{{X: 1, Y: 1}, {X: 6, Y: 6}}
	require.NoError(t, fuzzyc.Iterate(points, centroids, 2))

	return points, centroids
}

func TestWriteRead(t *testing.T) {
	points, centroids := testState(t)
	state := Capture(points, centroids, 2, 1)

	for _, c := range []codec.Codec{codec.JSON{}, codec.GoJSON{}} {
		for _, comp := range []Compression{CompressionNone, CompressionLZ4, CompressionZSTD} {
			t.Run(c.Name()+"/"+comp.String(), func(t *testing.T) {
				var buf bytes.Buffer
				require.NoError(t, Write(&buf, state, WithCodec(c), WithCompression(comp)))

				got, err := Read(&buf)
				require.NoError(t, err)
				assert.Equal(t, state, got)

				ps, cs, err := got.Restore()
				require.NoError(t, err)
				assert.Equal(t, centroids, cs)
				assert.Equal(t, points, ps)
			})
		}
	}
}

func TestCaptureCopies(t *testing.T) {
	points, centroids := testState(t)
	state := Capture(points, centroids, 2, 1)

	points[0].Membership[0] = 42
	centroids[0].X = 42

	assert.NotEqual(t, 42.0, state.Points[0].Membership[0])
	assert.NotEqual(t, 42.0, state.Centroids[0][0])
}

func TestRestoreDimensionMismatch(t *testing.T) {
	s := State{
		Centroids: [][2]float64{{0, 0}, {1, 1}},
		Points:    []PointState{{X: 0, Y: 0, Membership: []float64{1}}},
	}
	_, _, err := s.Restore()
	assert.ErrorIs(t, err, fuzzyc.ErrDimensionMismatch)
}

func TestReadErrors(t *testing.T) {
	points, centroids := testState(t)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, Capture(points, centroids, 2, 1)))
	valid := buf.Bytes()

	t.Run("Short", func(t *testing.T) {
		_, err := Read(bytes.NewReader([]byte("FC")))
		assert.ErrorIs(t, err, ErrCorrupt)
	})

	t.Run("BadMagic", func(t *testing.T) {
		_, err := Read(bytes.NewReader([]byte("NOPE\x01\x00\x04json")))
		assert.ErrorIs(t, err, ErrBadMagic)
	})

	t.Run("Version", func(t *testing.T) {
		b := bytes.Clone(valid)
		b[4] = 9
		_, err := Read(bytes.NewReader(b))
		assert.ErrorIs(t, err, ErrUnsupportedVersion)
	})

	t.Run("UnknownCodec", func(t *testing.T) {
		_, err := Read(bytes.NewReader([]byte("FCMS\x01\x00\x03xml")))
		assert.ErrorIs(t, err, ErrUnknownCodec)
	})

	t.Run("Truncated", func(t *testing.T) {
		_, err := Read(bytes.NewReader(valid[:len(valid)-3]))
		assert.True(t, errors.Is(err, ErrCorrupt))
	})
}

func TestSaveLoad(t *testing.T) {
	points, centroids := testState(t)
	state := Capture(points, centroids, 2.5, 7)

	path := filepath.Join(t.TempDir(), "run.fcms")
	require.NoError(t, Save(path, state, WithCompression(CompressionLZ4)))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, state, got)

	_, err = Load(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}
