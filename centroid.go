package fuzzyc

import (
	"math"
	"slices"
)

// CentroidSet is the ordered list of K centroid positions. Index j in the set
// corresponds to index j in every point's membership vector.
type CentroidSet []Vec2

// Clone returns a copy of the set.
func (cs CentroidSet) Clone() CentroidSet {
	return slices.Clone(cs)
}

// MaxShift returns the largest Euclidean displacement between cs and prev,
// matched by index. It returns +Inf when the sets differ in length.
func (cs CentroidSet) MaxShift(prev CentroidSet) float64 {
	if len(cs) != len(prev) {
		return math.Inf(1)
	}

	var shift float64
	for i := range cs {
		d := cs[i].Sub(prev[i])
		shift = max(shift, math.Hypot(d.X, d.Y))
	}
	return shift
}

// Bounds returns the bounding box of the centroid positions.
func (cs CentroidSet) Bounds() Bounds {
	if len(cs) == 0 {
		return Bounds{}
	}

	b := Bounds{Min: cs[0], Max: cs[0]}
	for _, c := range cs[1:] {
		b = b.Extend(c)
	}
	return b
}
