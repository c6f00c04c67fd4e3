package fuzzyc

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidFuzzifier is returned when the fuzzifier m is not a finite number greater than 1.
	ErrInvalidFuzzifier = errors.New("fuzzifier must be a finite number greater than 1")

	// ErrDimensionMismatch is returned when a point's membership vector length
	// differs from the number of centroids.
	ErrDimensionMismatch = errors.New("membership length does not match centroid count")

	// ErrDegenerateCentroid is returned when a centroid receives zero total weight
	// during the MOVE step.
	ErrDegenerateCentroid = errors.New("centroid has zero total membership weight")

	// ErrNonFinite is returned when a membership or centroid coordinate cannot
	// be represented as a finite float64.
	ErrNonFinite = errors.New("result is not a finite number")
)

// FuzzifierError reports the rejected fuzzifier value.
//
// It matches ErrInvalidFuzzifier via errors.Is.
type FuzzifierError struct {
	M float64
}

func (e *FuzzifierError) Error() string {
	return fmt.Sprintf("invalid fuzzifier: %v", e.M)
}

func (e *FuzzifierError) Unwrap() error { return ErrInvalidFuzzifier }

// DimensionMismatchError indicates a point whose membership vector does not
// have one entry per centroid.
//
// It matches ErrDimensionMismatch via errors.Is.
type DimensionMismatchError struct {
	Point    int
	Expected int
	Actual   int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("dimension mismatch at point %d: expected %d memberships, got %d", e.Point, e.Expected, e.Actual)
}

func (e *DimensionMismatchError) Unwrap() error { return ErrDimensionMismatch }

// DegenerateCentroidError indicates a centroid that no point is attracted to.
// The centroid keeps the position it had before the MOVE step.
//
// It matches ErrDegenerateCentroid via errors.Is.
type DegenerateCentroidError struct {
	Centroid int
}

func (e *DegenerateCentroidError) Error() string {
	return fmt.Sprintf("degenerate centroid %d: zero total weight", e.Centroid)
}

func (e *DegenerateCentroidError) Unwrap() error { return ErrDegenerateCentroid }

// MembershipOverflowError indicates a point whose membership for a centroid is
// not a finite float64, e.g. because the point lies far closer to that
// centroid than to any other. The point's membership vector is left as it
// was and the iteration stops before MOVE.
//
// It matches ErrNonFinite via errors.Is.
type MembershipOverflowError struct {
	Point    int
	Centroid int
}

func (e *MembershipOverflowError) Error() string {
	return fmt.Sprintf("membership of point %d for centroid %d is not finite", e.Point, e.Centroid)
}

func (e *MembershipOverflowError) Unwrap() error { return ErrNonFinite }

// CentroidOverflowError indicates a centroid whose weighted mean is not a
// finite position. The centroid keeps the position it had before the MOVE step.
//
// It matches ErrNonFinite via errors.Is.
type CentroidOverflowError struct {
	Centroid int
}

func (e *CentroidOverflowError) Error() string {
	return fmt.Sprintf("centroid %d: weighted mean is not finite", e.Centroid)
}

func (e *CentroidOverflowError) Unwrap() error { return ErrNonFinite }

// DegenerateCentroids returns the indexes of all centroids reported as
// degenerate in err, in the order they were reported.
func DegenerateCentroids(err error) []int {
	var out []int

	var walk func(error)
	walk = func(err error) {
		switch e := err.(type) {
		case nil:
		case *DegenerateCentroidError:
			out = append(out, e.Centroid)
		case interface{ Unwrap() []error }:
			for _, inner := range e.Unwrap() {
				walk(inner)
			}
		case interface{ Unwrap() error }:
			walk(e.Unwrap())
		}
	}
	walk(err)

	return out
}
