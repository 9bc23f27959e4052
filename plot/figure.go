// SPDX-License-Identifier: MIT

package plot

import "slices"

// SeriesKind tells how a Series was drawn.
type SeriesKind int

const (
	// KindHistogram is a binned numeric series.
	KindHistogram SeriesKind = iota
	// KindCategory is one bar per category.
	KindCategory
)

// String implements fmt.Stringer.
func (k SeriesKind) String() string {
	if k == KindCategory {
		return "category"
	}
	return "histogram"
}

// Series is one labelled set of bars on an Axes.
//
// For KindHistogram, Edges has len(Counts)+1 entries. For KindCategory,
// Categories has len(Counts) entries and bar i is centred on x=i.
type Series struct {
	Label      string
	Kind       SeriesKind
	Edges      []float64
	Categories []string
	Counts     []float64
}

// Patch is one drawn bar.
type Patch struct {
	Left   float64
	Width  float64
	Height float64
	// Series is the index of the owning series on its Axes.
	Series int
	// Category is set for category bars.
	Category string
}

// Figure is a grid of Axes.
type Figure struct {
	opts figureOptions
	axes []*Axes
}

// Axes is one plotting area. It always belongs to exactly one Figure.
type Axes struct {
	fig    *Figure
	title  string
	xlabel string
	ylabel string
	series []Series
}

// NewFigure returns an empty figure.
func NewFigure(opts ...FigureOption) *Figure {
	o := defaultFigureOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return &Figure{opts: o}
}

// Subplots returns a new figure with n axes (n < 1 is treated as 1).
func Subplots(n int, opts ...FigureOption) (*Figure, []*Axes) {
	fig := NewFigure(opts...)
	if n < 1 {
		n = 1
	}
	for i := 0; i < n; i++ {
		fig.AddAxes()
	}
	return fig, fig.Axes()
}

// AddAxes appends a new empty axes to the figure and returns it.
func (f *Figure) AddAxes() *Axes {
	ax := &Axes{fig: f}
	f.axes = append(f.axes, ax)
	return ax
}

// Axes returns the figure's axes in insertion order. The slice is a copy;
// the pointers are the figure's own axes.
func (f *Figure) Axes() []*Axes { return slices.Clone(f.axes) }

// Title returns the figure title.
func (f *Figure) Title() string { return f.opts.title }

// Figure returns the figure owning ax.
func (a *Axes) Figure() *Figure { return a.fig }

// SetTitle sets the axes title.
func (a *Axes) SetTitle(s string) { a.title = s }

// SetXLabel sets the x axis label.
func (a *Axes) SetXLabel(s string) { a.xlabel = s }

// SetYLabel sets the y axis label.
func (a *Axes) SetYLabel(s string) { a.ylabel = s }

// Title returns the axes title.
func (a *Axes) Title() string { return a.title }

// XLabel returns the x axis label.
func (a *Axes) XLabel() string { return a.xlabel }

// YLabel returns the y axis label.
func (a *Axes) YLabel() string { return a.ylabel }

// Series returns deep copies of the series drawn on a, in draw order.
func (a *Axes) Series() []Series {
	out := make([]Series, len(a.series))
	for i, s := range a.series {
		out[i] = Series{
			Label:      s.Label,
			Kind:       s.Kind,
			Edges:      slices.Clone(s.Edges),
			Categories: slices.Clone(s.Categories),
			Counts:     slices.Clone(s.Counts),
		}
	}
	return out
}

// Patches returns every bar on a, series by series.
func (a *Axes) Patches() []Patch {
	var out []Patch
	for si, s := range a.series {
		for i, c := range s.Counts {
			p := Patch{Height: c, Series: si}
			switch s.Kind {
			case KindHistogram:
				p.Left = s.Edges[i]
				p.Width = s.Edges[i+1] - s.Edges[i]
			case KindCategory:
				p.Left = float64(i) - DefaultBarWidth/2
				p.Width = DefaultBarWidth
				p.Category = s.Categories[i]
			}
			out = append(out, p)
		}
	}
	return out
}
