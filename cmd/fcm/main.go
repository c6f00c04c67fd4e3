// Command fcm runs fuzzy c-means on generated or loaded 2D points until
// interrupted, converged or out of iterations.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"time"

	"github.com/alexflint/go-arg"

	"github.com/hupe1980/fuzzyc"
	"github.com/hupe1980/fuzzyc/dataset"
	"github.com/hupe1980/fuzzyc/distance"
	"github.com/hupe1980/fuzzyc/plot"
	"github.com/hupe1980/fuzzyc/resource"
	"github.com/hupe1980/fuzzyc/snapshot"
)

type args struct {
	Points     int           `arg:"--points" help:"number of generated points"`
	Clusters   int           `arg:"--clusters" help:"number of centroids (and generated blobs)"`
	M          float64       `arg:"--m" help:"fuzzifier, must be > 1"`
	Iterations int           `arg:"--iterations" help:"stop after this many iterations (0 = until interrupted)"`
	Tolerance  float64       `arg:"--tolerance" help:"stop once no centroid moves further than this (0 = off)"`
	FPS        float64       `arg:"--fps" help:"iterations per second (0 = unpaced)"`
	Warmup     time.Duration `arg:"--warmup" help:"pause before the first iteration, independent of --fps"`
	Seed       uint64        `arg:"--seed" help:"random seed (0 = random)"`
	Workers    int           `arg:"--workers" help:"goroutines per phase"`
	Mode       string        `arg:"--mode" help:"membership formula: raw or normalized"`
	Metric     string        `arg:"--metric" help:"Euclidean, Manhattan or Chebyshev"`
	Seeding    string        `arg:"--seeding" help:"initial centroids: random or kmeans"`
	Input      string        `arg:"--input" help:"read points from this CSV instead of generating them"`
	Output     string        `arg:"--output" help:"write final points to this CSV"`
	Snapshot   string        `arg:"--snapshot" help:"write final state to this snapshot file"`
	Resume     string        `arg:"--resume" help:"resume from this snapshot file"`
	Plot       string        `arg:"--plot" help:"write one HTML scatter per iteration into this directory"`
	Log        string        `arg:"--log" help:"log format: text or json"`
	LogLevel   string        `arg:"--log-level" help:"debug, info, warn or error"`
}

func (args) Description() string {
	return "fcm iteratively soft-clusters 2D points with fuzzy c-means"
}

func main() {
	a := args{
		Points:   200,
		Clusters: 5,
		M:        fuzzyc.DefaultFuzzifier,
		FPS:      1,
		Warmup:   3 * time.Second,
		Workers:  1,
		Mode:     "raw",
		Metric:   "Euclidean",
		Seeding:  "random",
		Log:      "text",
		LogLevel: "info",
	}
	arg.MustParse(&a)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, a); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal(err)
	}
}

func run(ctx context.Context, a args) error {
	logger, err := newLogger(a.Log, a.LogLevel)
	if err != nil {
		return err
	}

	mode, err := parseMode(a.Mode)
	if err != nil {
		return err
	}

	metric, err := distance.ParseMetric(a.Metric)
	if err != nil {
		return err
	}

	seed := a.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := dataset.NewRand(seed)

	st, err := setup(a, rng)
	if err != nil {
		return err
	}
	points, centroids := st.points, st.centroids

	logger.InfoContext(ctx, "clustering",
		"points", len(points),
		"k", len(centroids),
		"m", st.m,
		"resumed_at", st.iteration,
		"mode", mode.String(),
		"metric", metric.String(),
		"seed", seed,
	)

	ctrl := resource.NewController(resource.Config{
		MaxWorkers:      int64(max(a.Workers, 1)),
		FramesPerSecond: a.FPS,
	})

	eng := fuzzyc.NewEngine(
		fuzzyc.WithMembershipMode(mode),
		fuzzyc.WithMetric(metric),
		fuzzyc.WithWorkers(a.Workers),
		fuzzyc.WithResourceController(ctrl),
		fuzzyc.WithLogger(logger),
	)

	cfg := fuzzyc.RunConfig{
		M:             st.m,
		MaxIterations: a.Iterations,
		Tolerance:     a.Tolerance,
		Limiter:       ctrl.Limiter(),
	}

	if a.Plot != "" {
		scatter, err := plot.NewScatter(a.Plot, plot.Palette(len(centroids), rng))
		if err != nil {
			return err
		}
		cfg.Observer = scatter
	}

	if a.Warmup > 0 {
		select {
		case <-time.After(a.Warmup):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	res, runErr := eng.Run(ctx, points, centroids, cfg)

	logger.InfoContext(context.Background(), "finished",
		"iterations", res.Iterations,
		"converged", res.Converged,
		"last_shift", res.LastShift,
		"group_changes", res.GroupChanges,
	)
	for j, c := range centroids {
		logger.InfoContext(context.Background(), "centroid", "index", j, "x", c.X, "y", c.Y)
	}

	if err := persist(a, points, centroids, st.m, st.iteration+res.Iterations); err != nil {
		return err
	}

	return runErr
}

// session is the starting state of a run.
type session struct {
	points    fuzzyc.Points
	centroids fuzzyc.CentroidSet
	m         float64
	iteration int
}

func setup(a args, rng *rand.Rand) (*session, error) {
	if a.Resume != "" {
		state, err := snapshot.Load(a.Resume)
		if err != nil {
			return nil, err
		}
		points, centroids, err := state.Restore()
		if err != nil {
			return nil, err
		}
		return &session{points: points, centroids: centroids, m: state.M, iteration: state.Iteration}, nil
	}

	if a.Clusters <= 0 {
		return nil, fmt.Errorf("clusters must be positive, got %d", a.Clusters)
	}

	r := dataset.NewRand(rng.Uint64())

	var points fuzzyc.Points
	if a.Input != "" {
		f, err := os.Open(a.Input)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		points, err = dataset.ReadCSV(f, a.Clusters)
		if err != nil {
			return nil, err
		}
	} else {
		blobs, err := dataset.MakeBlobs(dataset.BlobConfig{
			Samples: a.Points,
			Centers: a.Clusters,
			Rand:    r,
		})
		if err != nil {
			return nil, err
		}
		points = blobs.Points
	}

	st := &session{points: points, m: a.M}

	switch a.Seeding {
	case "random":
		st.centroids = dataset.RandomCentroids(a.Clusters, dataset.DataBounds(points), r)
	case "kmeans":
		centroids, err := dataset.SeedKMeans(points, a.Clusters)
		if err != nil {
			return nil, err
		}
		st.centroids = centroids
	default:
		return nil, fmt.Errorf("unknown seeding: %q", a.Seeding)
	}

	return st, nil
}

func persist(a args, points fuzzyc.Points, centroids fuzzyc.CentroidSet, m float64, iteration int) error {
	if a.Output != "" {
		f, err := os.Create(a.Output)
		if err != nil {
			return err
		}
		if err := dataset.WriteCSV(f, points); err != nil {
			_ = f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
	}

	if a.Snapshot != "" {
		return snapshot.Save(a.Snapshot, snapshot.Capture(points, centroids, m, iteration))
	}

	return nil
}

func parseMode(s string) (fuzzyc.MembershipMode, error) {
	switch s {
	case "raw":
		return fuzzyc.MembershipRaw, nil
	case "normalized":
		return fuzzyc.MembershipNormalized, nil
	default:
		return 0, fmt.Errorf("unknown mode: %q", s)
	}
}

func newLogger(format, level string) (*fuzzyc.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	switch format {
	case "text":
		return fuzzyc.NewTextLogger(lvl), nil
	case "json":
		return fuzzyc.NewJSONLogger(lvl), nil
	default:
		return nil, fmt.Errorf("unknown log format: %q", format)
	}
}
