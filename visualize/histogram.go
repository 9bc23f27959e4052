// SPDX-License-Identifier: MIT

package visualize

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/cellscope/adata"
	"github.com/katalvlaran/cellscope/plot"
)

const (
	sourceFeature     = "feature"
	sourceObservation = "observation"
)

// Histogram draws the distribution selected by req and returns the figure
// together with the axes drawn on.
//
// Checks, in order:
//  1. both FeatureName and ObservationName ⇒ ErrConflictingSelection;
//     neither ⇒ ErrNoSelection; Bins < 0 ⇒ ErrInvalidBins.
//  2. unknown feature / observation column ⇒ fixed-message errors matching
//     adata.ErrUnknownFeature / adata.ErrUnknownObservation.
//  3. unknown GroupBy column ⇒ ErrUnknownGroup.
//  4. unknown Layer (features only) ⇒ adata.ErrUnknownLayer.
//
// Axes returned:
//   - no GroupBy, or GroupBy with Together: one axes (req.Ax when given);
//     with Together each group is its own labelled series.
//   - GroupBy without Together: one axes per group in category order. The
//     first is req.Ax when given; the rest are appended to req.Ax.Figure().
//
// Nothing is drawn unless every check passes.
func Histogram(ad *adata.AnnData, req HistogramRequest, opts ...Option) (*plot.Figure, []*plot.Axes, error) {
	o := gatherOptions(opts...)
	start := time.Now()

	fig, axes, groups, err := histogram(ad, req, o)
	if o.observer != nil {
		ev := HistogramEvent{Groups: groups, Axes: len(axes), Duration: time.Since(start), Err: err}
		ev.Source, ev.Name = req.source()
		o.observer.ObserveHistogram(ev)
	}
	if err != nil {
		return nil, nil, err
	}
	return fig, axes, nil
}

// source names the selected input; empty when the selection is invalid.
func (r HistogramRequest) source() (kind, name string) {
	switch {
	case r.FeatureName != "" && r.ObservationName != "":
		return "", ""
	case r.FeatureName != "":
		return sourceFeature, r.FeatureName
	case r.ObservationName != "":
		return sourceObservation, r.ObservationName
	}
	return "", ""
}

// sample is the data to bin: numeric values, or a categorical column.
type sample struct {
	name    string
	numeric []float64
	cat     *adata.Column
}

type group struct {
	label string
	all   bool // every observation, no GroupBy
	rows  []int
}

// layout is everything drawn, computed before any axes is touched.
type layout struct {
	edges  []float64   // numeric samples
	cats   []string    // categorical samples
	values [][]float64 // per group, numeric
	counts [][]float64 // per group, categorical
}

func histogram(ad *adata.AnnData, req HistogramRequest, o options) (*plot.Figure, []*plot.Axes, int, error) {
	if ad == nil {
		return nil, nil, 0, ErrNilData
	}
	switch {
	case req.FeatureName != "" && req.ObservationName != "":
		return nil, nil, 0, ErrConflictingSelection
	case req.FeatureName == "" && req.ObservationName == "":
		return nil, nil, 0, ErrNoSelection
	}
	if req.Bins < 0 {
		return nil, nil, 0, fmt.Errorf("bins=%d: %w", req.Bins, ErrInvalidBins)
	}

	s, groups, err := load(ad, req)
	if err != nil {
		return nil, nil, 0, err
	}
	lay, err := plan(s, groups, req.bins())
	if err != nil {
		return nil, nil, 0, err
	}

	fanOut := req.GroupBy != "" && !req.together()
	n := 1
	if fanOut {
		n = len(groups)
	}

	var (
		fig  *plot.Figure
		axes []*plot.Axes
	)
	if req.Ax != nil {
		fig = req.Ax.Figure()
		axes = append(axes, req.Ax)
		for len(axes) < n {
			axes = append(axes, fig.AddAxes())
		}
	} else {
		fig, axes = plot.Subplots(n, o.figure...)
	}

	if err = paint(s, groups, lay, axes, req, fanOut); err != nil {
		return nil, nil, 0, err
	}

	o.logger.Debug("histogram drawn",
		zap.String("name", s.name),
		zap.String("group_by", req.GroupBy),
		zap.Bool("categorical", s.cat != nil),
		zap.Int("groups", len(groups)),
		zap.Int("axes", len(axes)))
	return fig, axes, len(groups), nil
}

// load validates every name in req and gathers the data and the groups.
func load(ad *adata.AnnData, req HistogramRequest) (sample, []group, error) {
	var (
		featIdx int
		obsCol  *adata.Column
		err     error
	)
	if req.FeatureName != "" {
		if featIdx, err = ad.FeatureIndex(req.FeatureName); err != nil {
			return sample{}, nil, unknownFeature()
		}
	} else if obsCol, err = ad.ObsColumn(req.ObservationName); err != nil {
		return sample{}, nil, unknownObservation()
	}

	groups := []group{{all: true}}
	if req.GroupBy != "" {
		gc, err := ad.ObsColumn(req.GroupBy)
		if err != nil {
			return sample{}, nil, ErrUnknownGroup
		}
		keys, rows := gc.Partition()
		groups = make([]group, len(keys))
		for i := range keys {
			groups[i] = group{label: keys[i], rows: rows[i]}
		}
	}

	s := sample{}
	switch {
	case req.FeatureName != "":
		m, err := ad.Matrix(req.Layer)
		if err != nil {
			return sample{}, nil, err
		}
		s.name = req.FeatureName
		s.numeric = mat.Col(nil, featIdx, m)
	case obsCol.Kind() == adata.String:
		s.name = req.ObservationName
		s.cat = obsCol
	default:
		s.name = req.ObservationName
		if s.numeric, err = obsCol.Numeric(); err != nil {
			return sample{}, nil, err
		}
	}
	if req.GroupBy == "" {
		groups[0].label = s.name
	}
	return s, groups, nil
}

// plan computes the shared bins (or categories) and every group's bars.
func plan(s sample, groups []group, bins int) (layout, error) {
	var lay layout
	if s.cat != nil {
		var rows [][]int
		lay.cats, rows = s.cat.Partition()
		slot := make([]int, s.cat.Len())
		for c, rs := range rows {
			for _, r := range rs {
				slot[r] = c
			}
		}
		lay.counts = make([][]float64, len(groups))
		for i, g := range groups {
			counts := make([]float64, len(lay.cats))
			g.each(s.cat.Len(), func(r int) { counts[slot[r]]++ })
			lay.counts[i] = counts
		}
		return lay, nil
	}

	edges, err := plot.Edges(s.numeric, bins)
	if err != nil {
		return layout{}, err
	}
	lay.edges = edges
	lay.values = make([][]float64, len(groups))
	for i, g := range groups {
		values := make([]float64, 0, len(s.numeric))
		g.each(len(s.numeric), func(r int) { values = append(values, s.numeric[r]) })
		lay.values[i] = values
	}
	return lay, nil
}

func paint(s sample, groups []group, lay layout, axes []*plot.Axes, req HistogramRequest, fanOut bool) error {
	for _, ax := range axes {
		ax.SetXLabel(s.name)
		ax.SetYLabel(CountLabel)
	}
	for i, g := range groups {
		ax := axes[0]
		if fanOut {
			ax = axes[i]
			ax.SetTitle(req.GroupBy + " = " + g.label)
		}

		var err error
		if s.cat != nil {
			err = ax.CategoryBars(lay.cats, lay.counts[i], g.label)
		} else {
			err = ax.Hist(lay.values[i], lay.edges, g.label)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// each visits the rows of g, or 0..n-1 when g covers every observation.
func (g group) each(n int, fn func(int)) {
	if g.all {
		for r := 0; r < n; r++ {
			fn(r)
		}
		return
	}
	for _, r := range g.rows {
		fn(r)
	}
}
