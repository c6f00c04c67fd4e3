package fuzzyc

import "github.com/RoaringBitmap/roaring/v2"

// Partition returns one bitmap per cluster holding the indexes of the points
// whose Group() is that cluster. Points reporting a group outside [0, k) are
// left out.
func Partition(points Points, k int) []*roaring.Bitmap {
	groups := make([]*roaring.Bitmap, k)
	for j := range groups {
		groups[j] = roaring.New()
	}

	for i, p := range points {
		if g := p.Group(); g < k {
			groups[g].Add(uint32(i))
		}
	}

	return groups
}

// GroupChanges counts the points that moved to a different group between
// two partitions of the same point collection.
func GroupChanges(prev, next []*roaring.Bitmap) int {
	var changed uint64
	for j := range prev {
		if j >= len(next) {
			changed += prev[j].GetCardinality()
			continue
		}
		changed += roaring.AndNot(prev[j], next[j]).GetCardinality()
	}
	return int(changed)
}
