// Package plot renders clustering frames as HTML scatter plots.
//
// Scatter implements fuzzyc.Observer, so it can be handed to Engine.Run to
// produce one chart per iteration. It only reads the frame it is given.
package plot

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/hupe1980/fuzzyc"
)

// BaseColors is the palette groups are coloured from.
var BaseColors = []string{"blue", "green", "red", "cyan", "magenta", "yellow"}

// CentroidColor marks centroids.
const CentroidColor = "black"

// Palette returns k colours sampled without replacement from BaseColors,
// cycling when k exceeds the palette size. A nil rng keeps palette order.
func Palette(k int, rng *rand.Rand) []string {
	base := append([]string(nil), BaseColors...)
	if rng != nil {
		rng.Shuffle(len(base), func(i, j int) { base[i], base[j] = base[j], base[i] })
	}

	out := make([]string, k)
	for i := range out {
		out[i] = base[i%len(base)]
	}
	return out
}

// Render writes one scatter chart of the frame to w: a series per group,
// coloured by colors, and a black triangle series for the centroids.
func Render(w io.Writer, f fuzzyc.Frame, colors []string) error {
	k := len(f.Centroids)
	if len(colors) < k {
		return fmt.Errorf("plot: %d colors for %d groups", len(colors), k)
	}

	sc := charts.NewScatter()
	sc.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Fuzzy C-Means",
			Subtitle: fmt.Sprintf("iteration %d", f.Iteration),
		}),
	)

	series := make([][]opts.ScatterData, k)
	for _, p := range f.Points {
		g := p.Group()
		if g >= k {
			continue
		}
		series[g] = append(series[g], opts.ScatterData{
			Value:      []float64{p.Pos.X, p.Pos.Y},
			SymbolSize: 6,
		})
	}

	for g, data := range series {
		sc.AddSeries(fmt.Sprintf("Cluster %d", g), data,
			charts.WithItemStyleOpts(opts.ItemStyle{Color: colors[g]}),
		)
	}

	centroids := make([]opts.ScatterData, k)
	for j, c := range f.Centroids {
		centroids[j] = opts.ScatterData{
			Name:       fmt.Sprintf("centroid %d", j),
			Value:      []float64{c.X, c.Y},
			Symbol:     "triangle",
			SymbolSize: 14,
		}
	}
	sc.AddSeries("Centroids", centroids,
		charts.WithItemStyleOpts(opts.ItemStyle{Color: CentroidColor}),
	)

	return sc.Render(w)
}

// Scatter writes one HTML file per observed frame into Dir.
type Scatter struct {
	Dir    string
	Colors []string
}

// NewScatter creates the output directory and returns an observer using colors.
func NewScatter(dir string, colors []string) (*Scatter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Scatter{Dir: dir, Colors: colors}, nil
}

// FramePath returns the file a frame is written to.
func (s *Scatter) FramePath(iteration int) string {
	return filepath.Join(s.Dir, fmt.Sprintf("frame-%04d.html", iteration))
}

// Observe implements fuzzyc.Observer.
func (s *Scatter) Observe(_ context.Context, f fuzzyc.Frame) error {
	file, err := os.Create(s.FramePath(f.Iteration))
	if err != nil {
		return err
	}

	if err := Render(file, f, s.Colors); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}
