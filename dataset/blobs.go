package dataset

import (
	"errors"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/hupe1980/fuzzyc"
)

var (
	// ErrNoSamples is returned when fewer than one sample is requested.
	ErrNoSamples = errors.New("dataset: samples must be positive")
	// ErrNoCenters is returned when fewer than one center is requested.
	ErrNoCenters = errors.New("dataset: centers must be positive")
)

// BlobConfig controls MakeBlobs.
type BlobConfig struct {
	// Samples is the total number of points.
	Samples int

	// Centers is the number of blobs. It is also the membership length of
	// the generated points.
	Centers int

	// Std is the standard deviation of every blob. If 0, 0.6 is used.
	Std float64

	// CenterBox bounds the uniformly drawn blob centers on both axes.
	// If zero, [-10, 10] is used.
	CenterBox [2]float64

	// Rand is the random source. If nil, a randomly seeded one is used.
	Rand *rand.Rand
}

// Blobs is a generated dataset.
type Blobs struct {
	Points  fuzzyc.Points
	Labels  []int
	Centers []fuzzyc.Vec2
}

// NewRand returns a seeded random source.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)) // nolint gosec
}

// MakeBlobs draws Samples points from Centers isotropic Gaussian blobs.
//
// Samples are spread as evenly as possible across blobs (the first
// Samples%Centers blobs get one extra) and then shuffled. Each point's
// membership at its blob label is preset to 1.
func MakeBlobs(cfg BlobConfig) (*Blobs, error) {
	if cfg.Samples <= 0 {
		return nil, ErrNoSamples
	}
	if cfg.Centers <= 0 {
		return nil, ErrNoCenters
	}

	std := cfg.Std
	if std == 0 {
		std = 0.6
	}

	box := cfg.CenterBox
	if box == [2]float64{} {
		box = [2]float64{-10, 10}
	}

	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())) // nolint gosec
	}

	uniform := distuv.Uniform{Min: box[0], Max: box[1], Src: rng}
	centers := make([]fuzzyc.Vec2, cfg.Centers)
	for i := range centers {
		centers[i] = fuzzyc.Vec2{X: uniform.Rand(), Y: uniform.Rand()}
	}

	b := &Blobs{
		Points:  make(fuzzyc.Points, 0, cfg.Samples),
		Labels:  make([]int, 0, cfg.Samples),
		Centers: centers,
	}

	perCenter := cfg.Samples / cfg.Centers
	extra := cfg.Samples % cfg.Centers

	for label, c := range centers {
		n := perCenter
		if label < extra {
			n++
		}

		nx := distuv.Normal{Mu: c.X, Sigma: std, Src: rng}
		ny := distuv.Normal{Mu: c.Y, Sigma: std, Src: rng}

		for i := 0; i < n; i++ {
			p := fuzzyc.NewPoint(cfg.Centers, nx.Rand(), ny.Rand())
			p.Membership[label] = 1.0
			b.Points = append(b.Points, p)
			b.Labels = append(b.Labels, label)
		}
	}

	rng.Shuffle(len(b.Points), func(i, j int) {
		b.Points[i], b.Points[j] = b.Points[j], b.Points[i]
		b.Labels[i], b.Labels[j] = b.Labels[j], b.Labels[i]
	})

	return b, nil
}
