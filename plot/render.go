// SPDX-License-Identifier: MIT

package plot

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"os"

	"github.com/wcharczuk/go-chart/v2"
)

// headroom leaves space above the tallest bar.
const headroom = 1.1

// RenderImage draws every axes with go-chart and tiles the results on a grid
// of opts.columns cells per row. Axes without bars are left blank.
func (f *Figure) RenderImage() (image.Image, error) {
	if len(f.axes) == 0 {
		return nil, ErrNoAxes
	}
	w, h := f.opts.width, f.opts.height
	cols := min(f.opts.columns, len(f.axes))
	rows := (len(f.axes) + cols - 1) / cols

	canvas := image.NewRGBA(image.Rect(0, 0, cols*w, rows*h))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	for i, ax := range f.axes {
		if !ax.drawable() {
			continue
		}
		img, err := ax.render(w, h, f.opts.title)
		if err != nil {
			return nil, fmt.Errorf("axes %d: %w", i, err)
		}
		at := image.Pt((i%cols)*w, (i/cols)*h)
		draw.Draw(canvas, image.Rectangle{Min: at, Max: at.Add(img.Bounds().Size())}, img, img.Bounds().Min, draw.Over)
	}
	return canvas, nil
}

// Render writes the figure as PNG.
func (f *Figure) Render(w io.Writer) error {
	img, err := f.RenderImage()
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

// SavePNG renders the figure into the file at path, replacing it.
func (f *Figure) SavePNG(path string) (err error) {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()
	return f.Render(out)
}

func (a *Axes) render(w, h int, figTitle string) (image.Image, error) {
	ch := a.chart(w, h, figTitle)
	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return png.Decode(&buf)
}

// chart maps the axes onto a go-chart Chart: one HistogramSeries per Series,
// bars centred on bin midpoints (or on category index).
func (a *Axes) chart(w, h int, figTitle string) chart.Chart {
	xmin, xmax, ymax := a.bounds()

	var ticks []chart.Tick
	series := make([]chart.Series, 0, len(a.series))
	for i, s := range a.series {
		if len(s.Counts) == 0 {
			continue
		}
		xs := make([]float64, len(s.Counts))
		for j := range xs {
			if s.Kind == KindCategory {
				xs[j] = float64(j)
			} else {
				xs[j] = s.Edges[j]/2 + s.Edges[j+1]/2
			}
		}
		if s.Kind == KindCategory && ticks == nil {
			for j, c := range s.Categories {
				ticks = append(ticks, chart.Tick{Value: float64(j), Label: c})
			}
		}
		col := chart.GetDefaultColor(i)
		series = append(series, chart.HistogramSeries{
			Name: s.Label,
			Style: chart.Style{
				StrokeColor: col,
				StrokeWidth: 1,
				FillColor:   col.WithAlpha(160),
			},
			InnerSeries: chart.ContinuousSeries{XValues: xs, YValues: s.Counts},
		})
	}

	title := a.title
	if figTitle != "" {
		title = figTitle
		if a.title != "" {
			title = figTitle + ": " + a.title
		}
	}

	ch := chart.Chart{
		Title:      title,
		Width:      w,
		Height:     h,
		Background: chart.Style{Padding: chart.Box{Top: 28, Left: 16, Right: 12, Bottom: 12}},
		XAxis: chart.XAxis{
			Name:  a.xlabel,
			Range: &chart.ContinuousRange{Min: xmin, Max: xmax},
			Ticks: ticks,
		},
		YAxis: chart.YAxis{
			Name:  a.ylabel,
			Range: &chart.ContinuousRange{Min: 0, Max: ymax},
		},
		Series: series,
	}
	if len(series) > 1 {
		ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	}
	return ch
}

func (a *Axes) drawable() bool {
	for _, s := range a.series {
		if len(s.Counts) > 0 {
			return true
		}
	}
	return false
}

// bounds returns an x range covering every series and a positive y maximum.
func (a *Axes) bounds() (xmin, xmax, ymax float64) {
	first := true
	for _, s := range a.series {
		lo, hi := -0.5, float64(len(s.Counts))-0.5
		if s.Kind == KindHistogram {
			lo, hi = s.Edges[0], s.Edges[len(s.Edges)-1]
		}
		if first || lo < xmin {
			xmin = lo
		}
		if first || hi > xmax {
			xmax = hi
		}
		first = false
		for _, c := range s.Counts {
			ymax = max(ymax, c)
		}
	}
	if xmax <= xmin {
		xmax = xmin + 1
	}
	if ymax <= 0 {
		ymax = 1
	}
	return xmin, xmax, ymax * headroom
}
