package dataset

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/hupe1980/fuzzyc"
)

// membershipList is a membership vector stored in a single CSV cell as
// semicolon-separated values.
type membershipList []float64

func (m membershipList) MarshalCSV() (string, error) {
	parts := make([]string, len(m))
	for i, v := range m {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strings.Join(parts, ";"), nil
}

func (m *membershipList) UnmarshalCSV(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		*m = nil
		return nil
	}

	parts := strings.Split(s, ";")
	out := make(membershipList, len(parts))
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return err
		}
		out[i] = v
	}
	*m = out
	return nil
}

type inputRow struct {
	X          float64        `csv:"x"`
	Y          float64        `csv:"y"`
	Membership membershipList `csv:"membership"`
}

type outputRow struct {
	X          float64        `csv:"x"`
	Y          float64        `csv:"y"`
	Group      int            `csv:"group"`
	Membership membershipList `csv:"membership"`
}

// ReadCSV loads points from CSV with an "x,y" header. An optional
// "membership" column holds k semicolon-separated values; rows without it
// start with zero memberships. k must be positive.
func ReadCSV(r io.Reader, k int) (fuzzyc.Points, error) {
	if k <= 0 {
		return nil, ErrNoCenters
	}

	var rows []*inputRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("dataset: read csv: %w", err)
	}

	points := make(fuzzyc.Points, len(rows))
	for i, row := range rows {
		p := fuzzyc.NewPoint(k, row.X, row.Y)
		if len(row.Membership) > 0 {
			if len(row.Membership) != k {
				return nil, &fuzzyc.DimensionMismatchError{Point: i, Expected: k, Actual: len(row.Membership)}
			}
			copy(p.Membership, row.Membership)
		}
		points[i] = p
	}

	return points, nil
}

// WriteCSV writes points with their derived group and membership vector.
func WriteCSV(w io.Writer, points fuzzyc.Points) error {
	rows := make([]*outputRow, len(points))
	for i, p := range points {
		rows[i] = &outputRow{
			X:          p.Pos.X,
			Y:          p.Pos.Y,
			Group:      p.Group(),
			Membership: membershipList(p.Membership),
		}
	}

	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("dataset: write csv: %w", err)
	}
	return nil
}
