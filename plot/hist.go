// SPDX-License-Identifier: MIT

package plot

import (
	"fmt"
	"math"
	"slices"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Edges returns bins+1 strictly increasing edges spanning the finite values.
// A range too narrow to split into bins distinct edges (a constant sample
// among them) is widened around its centre, starting with a unit-wide span
// and doubling; a sample with no finite value gets [0, 1].
func Edges(values []float64, bins int) ([]float64, error) {
	if bins <= 0 {
		return nil, fmt.Errorf("bins=%d: %w", bins, ErrInvalidBins)
	}
	finite := finiteValues(values)
	lo, hi := 0.0, 1.0
	if len(finite) > 0 {
		lo, hi = floats.Min(finite), floats.Max(finite)
	}

	edges := make([]float64, bins+1)
	span(edges, lo, hi)
	if increasing(edges) {
		return edges, nil
	}
	mid := lo/2 + hi/2
	for half := 0.5; !math.IsInf(half, 1); half *= 2 {
		span(edges, mid-half, mid+half)
		if increasing(edges) {
			return edges, nil
		}
	}
	return nil, fmt.Errorf("range [%v, %v] in %d bins: %w", lo, hi, bins, ErrBadEdges)
}

// span fills edges with equal steps from lo to hi. Ranges whose width
// overflows are interpolated from both ends instead of stepped.
func span(edges []float64, lo, hi float64) {
	n := len(edges) - 1
	if w := hi - lo; !math.IsInf(w, 0) {
		floats.Span(edges, lo, hi)
	} else {
		for i := range edges {
			t := float64(i) / float64(n)
			edges[i] = lo*(1-t) + hi*t
		}
	}
	edges[0], edges[n] = lo, hi
}

func increasing(edges []float64) bool {
	for i, e := range edges {
		if math.IsNaN(e) || math.IsInf(e, 0) {
			return false
		}
		if i > 0 && e <= edges[i-1] {
			return false
		}
	}
	return true
}

// Hist bins values over edges and adds the counts to a as a new series.
// Bins are half-open [e_i, e_i+1) except the last, which is closed. NaN,
// ±Inf and values outside the edges are not counted. values is not modified.
func (a *Axes) Hist(values, edges []float64, label string) error {
	if err := checkEdges(edges); err != nil {
		return err
	}
	counts := binCounts(values, edges)
	a.series = append(a.series, Series{
		Label:  label,
		Kind:   KindHistogram,
		Edges:  slices.Clone(edges),
		Counts: counts,
	})
	return nil
}

// CategoryBars adds one bar per category with the given heights.
func (a *Axes) CategoryBars(categories []string, counts []float64, label string) error {
	if len(categories) != len(counts) {
		return fmt.Errorf("%d categories, %d counts: %w", len(categories), len(counts), ErrLengthMismatch)
	}
	for i, c := range counts {
		if c < 0 || math.IsNaN(c) || math.IsInf(c, 0) {
			return fmt.Errorf("count[%d]=%v: %w", i, c, ErrNegativeCount)
		}
	}
	a.series = append(a.series, Series{
		Label:      label,
		Kind:       KindCategory,
		Categories: slices.Clone(categories),
		Counts:     slices.Clone(counts),
	})
	return nil
}

func checkEdges(edges []float64) error {
	if len(edges) < 2 {
		return fmt.Errorf("%d edges: %w", len(edges), ErrBadEdges)
	}
	for i, e := range edges {
		if math.IsNaN(e) || math.IsInf(e, 0) {
			return fmt.Errorf("edge[%d]=%v: %w", i, e, ErrBadEdges)
		}
		if i > 0 && e <= edges[i-1] {
			return fmt.Errorf("edge[%d]=%v <= edge[%d]=%v: %w", i, e, i-1, edges[i-1], ErrBadEdges)
		}
	}
	return nil
}

// binCounts counts values into edges. stat.Histogram wants sorted data
// strictly below the last edge, so values equal to it are added by hand.
func binCounts(values, edges []float64) []float64 {
	lo, hi := edges[0], edges[len(edges)-1]
	in := make([]float64, 0, len(values))
	onEdge := 0
	for _, v := range finiteValues(values) {
		switch {
		case v < lo || v > hi:
		case v == hi:
			onEdge++
		default:
			in = append(in, v)
		}
	}
	sort.Float64s(in)
	counts := stat.Histogram(nil, edges, in, nil)
	counts[len(counts)-1] += float64(onEdge)
	return counts
}

func finiteValues(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			out = append(out, v)
		}
	}
	return out
}
