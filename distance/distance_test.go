package distance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEuclidean(t *testing.T) {
	tests := []struct {
		name     string
		a, b     []float64
		expected float64
	}{
		{"Simple", []float64{0, 0}, []float64{3, 4}, 5},
		{"Zero", []float64{0, 0}, []float64{0, 0}, 0},
		{"Identical", []float64{1.5, -2}, []float64{1.5, -2}, 0},
		{"Axis", []float64{0, 0}, []float64{10, 0}, 10},
		{"Negative", []float64{-1, -1}, []float64{2, 3}, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Euclidean(tt.a, tt.b)
			assert.InDelta(t, tt.expected, got, 1e-12)
		})
	}
}

func TestManhattanAndChebyshev(t *testing.T) {
	a := []float64{1, 2}
	b := []float64{4, -2}

	assert.InDelta(t, 7.0, Manhattan(a, b), 1e-12)
	assert.InDelta(t, 4.0, Chebyshev(a, b), 1e-12)
}

func TestMetric(t *testing.T) {
	t.Run("String", func(t *testing.T) {
		assert.Equal(t, "Euclidean", MetricEuclidean.String())
		assert.Equal(t, "Manhattan", MetricManhattan.String())
		assert.Equal(t, "Chebyshev", MetricChebyshev.String())
		assert.Equal(t, "Unknown(99)", Metric(99).String())
	})

	t.Run("Parse", func(t *testing.T) {
		m, err := ParseMetric("Manhattan")
		require.NoError(t, err)
		assert.Equal(t, MetricManhattan, m)

		_, err = ParseMetric("cosine")
		assert.Error(t, err)
	})

	t.Run("Provider", func(t *testing.T) {
		f, err := Provider(MetricEuclidean)
		require.NoError(t, err)
		assert.InDelta(t, 5.0, f([]float64{0, 0}, []float64{3, 4}), 1e-12)

		f, err = Provider(MetricChebyshev)
		require.NoError(t, err)
		assert.InDelta(t, 4.0, f([]float64{0, 0}, []float64{3, 4}), 1e-12)

		_, err = Provider(Metric(99))
		assert.Error(t, err)
	})
}
