// SPDX-License-Identifier: MIT

package visualize

import (
	"time"

	"go.uber.org/zap"

	"github.com/katalvlaran/cellscope/plot"
)

const (
	// DefaultBins is the number of equal-width bins for numeric data.
	DefaultBins = 10

	// DefaultTogether overlays groups on one axes.
	DefaultTogether = true

	// CountLabel is the y axis label of every histogram.
	CountLabel = "Count"
)

// HistogramRequest selects what to draw. Exactly one of FeatureName and
// ObservationName must be set.
type HistogramRequest struct {
	// FeatureName is a var name; values come from Layer (or the primary matrix).
	FeatureName string
	// ObservationName is an obs column; numeric columns are binned, string
	// columns are counted per category.
	ObservationName string
	// GroupBy is an optional obs column splitting the observations.
	GroupBy string
	// Together overlays groups on one axes; nil means DefaultTogether.
	Together *bool
	// Ax, when set, receives the (first) drawing; its Figure is returned.
	Ax *plot.Axes
	// Layer selects the matrix for FeatureName; "" is the primary matrix.
	Layer string
	// Bins is the numeric bin count; 0 means DefaultBins.
	Bins int
}

// DefaultHistogramRequest returns a request with every default spelled out.
func DefaultHistogramRequest() HistogramRequest {
	together := DefaultTogether
	return HistogramRequest{Together: &together, Bins: DefaultBins}
}

// Bool returns a pointer to v, for HistogramRequest.Together.
func Bool(v bool) *bool { return &v }

func (r HistogramRequest) together() bool {
	if r.Together == nil {
		return DefaultTogether
	}
	return *r.Together
}

func (r HistogramRequest) bins() int {
	if r.Bins == 0 {
		return DefaultBins
	}
	return r.Bins
}

// Observer is notified once per Histogram call.
type Observer interface {
	ObserveHistogram(ev HistogramEvent)
}

// HistogramEvent describes one Histogram call.
type HistogramEvent struct {
	// Source is "feature" or "observation" ("" when validation failed early).
	Source   string
	Name     string
	Groups   int
	Axes     int
	Duration time.Duration
	Err      error
}

// Option configures Histogram.
type Option func(*options)

type options struct {
	logger   *zap.Logger
	observer Observer
	figure   []plot.FigureOption
}

func gatherOptions(opts ...Option) options {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// WithLogger attaches a logger (Debug level only).
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithObserver attaches an observer.
func WithObserver(obs Observer) Option {
	return func(o *options) { o.observer = obs }
}

// WithFigureOptions configures figures created by Histogram. Ignored when
// the request carries an Ax.
func WithFigureOptions(opts ...plot.FigureOption) Option {
	return func(o *options) { o.figure = append(o.figure, opts...) }
}
