// Package snapshot persists clustering state so a run can be paused and resumed.
//
// # File Format
//
//	magic "FCMS" | version u8 | compression u8 | codec name len u8 | codec name
//	uncompressed size u32 | compressed size u32 | encoded state
//
// A compressed size of 0 means the state is stored uncompressed.
package snapshot

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/hupe1980/fuzzyc"
	"github.com/hupe1980/fuzzyc/codec"
)

const (
	magic   = "FCMS"
	version = 1
)

var (
	// ErrBadMagic is returned when the input is not a snapshot.
	ErrBadMagic = errors.New("snapshot: bad magic")
	// ErrUnsupportedVersion is returned for snapshots written by a newer format.
	ErrUnsupportedVersion = errors.New("snapshot: unsupported version")
	// ErrUnknownCodec is returned when the recorded codec is not known to codec.ByName.
	ErrUnknownCodec = errors.New("snapshot: unknown codec")
	// ErrCorrupt is returned for truncated or inconsistent snapshots.
	ErrCorrupt = errors.New("snapshot: corrupt data")
)

// PointState is the persisted form of a fuzzyc.Point.
type PointState struct {
	X          float64   `json:"x"`
	Y          float64   `json:"y"`
	Membership []float64 `json:"membership"`
}

// State is the persisted form of a clustering run.
type State struct {
	M         float64      `json:"m"`
	Iteration int          `json:"iteration"`
	Centroids [][2]float64 `json:"centroids"`
	Points    []PointState `json:"points"`
}

// Capture copies the given collections into a State.
func Capture(points fuzzyc.Points, centroids fuzzyc.CentroidSet, m float64, iteration int) State {
	s := State{
		M:         m,
		Iteration: iteration,
		Centroids: make([][2]float64, len(centroids)),
		Points:    make([]PointState, len(points)),
	}
	for j, c := range centroids {
		s.Centroids[j] = c.Array()
	}
	for i, p := range points {
		s.Points[i] = PointState{
			X:          p.Pos.X,
			Y:          p.Pos.Y,
			Membership: append([]float64(nil), p.Membership...),
		}
	}
	return s
}

// Restore builds fresh collections from s. Every point must carry one
// membership value per centroid.
func (s State) Restore() (fuzzyc.Points, fuzzyc.CentroidSet, error) {
	k := len(s.Centroids)

	centroids := make(fuzzyc.CentroidSet, k)
	for j, c := range s.Centroids {
		centroids[j] = fuzzyc.Vec2{X: c[0], Y: c[1]}
	}

	points := make(fuzzyc.Points, len(s.Points))
	for i, ps := range s.Points {
		if len(ps.Membership) != k {
			return nil, nil, &fuzzyc.DimensionMismatchError{Point: i, Expected: k, Actual: len(ps.Membership)}
		}
		points[i] = &fuzzyc.Point{
			Pos:        fuzzyc.Vec2{X: ps.X, Y: ps.Y},
			Membership: append([]float64(nil), ps.Membership...),
		}
	}

	return points, centroids, nil
}

type options struct {
	codec       codec.Codec
	compression Compression
}

// Option configures Write.
type Option func(*options)

// WithCodec selects the state encoding. If nil is passed, codec.Default is used.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithCompression selects the compression. Defaults to CompressionZSTD.
func WithCompression(c Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

// Write encodes s to w.
func Write(w io.Writer, s State, optFns ...Option) error {
	o := options{
		codec:       codec.Default,
		compression: CompressionZSTD,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}

	name := o.codec.Name()
	if len(name) > 255 {
		return fmt.Errorf("snapshot: codec name too long: %q", name)
	}

	payload, err := o.codec.Marshal(s)
	if err != nil {
		return fmt.Errorf("snapshot: encode: %w", err)
	}

	block, err := compressBlock(payload, o.compression)
	if err != nil {
		return fmt.Errorf("snapshot: compress: %w", err)
	}

	var hdr bytes.Buffer
	hdr.WriteString(magic)
	hdr.WriteByte(version)
	hdr.WriteByte(byte(o.compression))
	hdr.WriteByte(byte(len(name)))
	hdr.WriteString(name)

	if _, err := w.Write(hdr.Bytes()); err != nil {
		return err
	}
	_, err = w.Write(block)
	return err
}

// Read decodes a State from r.
func Read(r io.Reader) (State, error) {
	var s State

	data, err := io.ReadAll(r)
	if err != nil {
		return s, err
	}

	if len(data) < len(magic)+3 {
		return s, ErrCorrupt
	}
	if string(data[:len(magic)]) != magic {
		return s, ErrBadMagic
	}
	data = data[len(magic):]

	if data[0] != version {
		return s, fmt.Errorf("%w: %d", ErrUnsupportedVersion, data[0])
	}
	compression := Compression(data[1])
	nameLen := int(data[2])
	data = data[3:]

	if len(data) < nameLen {
		return s, ErrCorrupt
	}
	name := string(data[:nameLen])
	data = data[nameLen:]

	c, ok := codec.ByName(name)
	if !ok {
		return s, fmt.Errorf("%w: %q", ErrUnknownCodec, name)
	}

	payload, err := decompressBlock(data, compression)
	if err != nil {
		return s, fmt.Errorf("snapshot: decompress: %w", err)
	}

	if err := c.Unmarshal(payload, &s); err != nil {
		return s, fmt.Errorf("snapshot: decode: %w", err)
	}

	return s, nil
}

// Save writes s to path atomically (temp file + rename).
func Save(path string, s State, optFns ...Option) error {
	dir := filepath.Dir(path)
	f, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()

	if err := Write(f, s, optFns...); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}

	return os.Rename(tmp, path)
}

// Load reads the snapshot stored at path.
func Load(path string) (State, error) {
	f, err := os.Open(path)
	if err != nil {
		return State{}, err
	}
	defer f.Close()

	return Read(f)
}
