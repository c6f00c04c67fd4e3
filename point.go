package fuzzyc

import (
	"fmt"
	"strconv"
	"strings"
)

// Vec2 is a position in the plane.
type Vec2 struct {
	X, Y float64
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Array returns the coordinates as a fixed-size array, suitable for slicing
// into distance functions without allocating.
func (v Vec2) Array() [2]float64 {
	return [2]float64{v.X, v.Y}
}

// Point is a sample with a position and one membership value per centroid.
//
// Membership is overwritten in full on every FIT step; its length is fixed at
// construction and must equal the number of centroids it is clustered against.
type Point struct {
	Pos        Vec2
	Membership []float64
}

// NewPoint creates a point at (x, y) with k zeroed memberships.
func NewPoint(k int, x, y float64) *Point {
	return &Point{
		Pos:        Vec2{X: x, Y: y},
		Membership: make([]float64, k),
	}
}

// K returns the length of the membership vector.
func (p *Point) K() int {
	return len(p.Membership)
}

// Group returns the index of the strictly largest membership value.
//
// The scan starts at index 0 with a running maximum of 0 and only advances on
// a strict increase, so ties keep the lowest index and a vector with no
// positive entry reports group 0.
func (p *Point) Group() int {
	group := 0
	maxMs := 0.0
	for i, ms := range p.Membership {
		if ms > maxMs {
			maxMs = ms
			group = i
		}
	}
	return group
}

func (p *Point) String() string {
	ms := make([]string, len(p.Membership))
	for i, v := range p.Membership {
		ms[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return fmt.Sprintf("(%g, %g) [%d] [%s]", p.Pos.X, p.Pos.Y, p.Group(), strings.Join(ms, " "))
}

// Points is an ordered collection of points clustered together.
type Points []*Point

// NewPoints creates one zero-membership point per position.
func NewPoints(k int, positions []Vec2) Points {
	points := make(Points, len(positions))
	for i, pos := range positions {
		points[i] = NewPoint(k, pos.X, pos.Y)
	}
	return points
}

// Bounds returns the bounding box of the point positions.
// An empty collection yields the zero box.
func (ps Points) Bounds() Bounds {
	if len(ps) == 0 {
		return Bounds{}
	}

	b := Bounds{Min: ps[0].Pos, Max: ps[0].Pos}
	for _, p := range ps[1:] {
		b = b.Extend(p.Pos)
	}
	return b
}

// Groups returns Group() for every point.
func (ps Points) Groups() []int {
	groups := make([]int, len(ps))
	for i, p := range ps {
		groups[i] = p.Group()
	}
	return groups
}

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min, Max Vec2
}

// Extend returns the smallest box containing b and v.
func (b Bounds) Extend(v Vec2) Bounds {
	return Bounds{
		Min: Vec2{X: min(b.Min.X, v.X), Y: min(b.Min.Y, v.Y)},
		Max: Vec2{X: max(b.Max.X, v.X), Y: max(b.Max.Y, v.Y)},
	}
}

// Contains reports whether v lies inside b, edges included.
func (b Bounds) Contains(v Vec2) bool {
	return v.X >= b.Min.X && v.X <= b.Max.X && v.Y >= b.Min.Y && v.Y <= b.Max.Y
}
