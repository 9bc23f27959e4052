// SPDX-License-Identifier: MIT

// Package plot is a small figure/axes model for histograms and category bar
// charts, rendered to PNG through go-chart.
//
// A Figure owns an ordered list of Axes laid out on a grid; every Axes keeps a
// back-reference to its Figure, so code that receives an Axes can recover the
// Figure it belongs to (Axes.Figure). Drawing calls only record data: bars are
// inspectable through Axes.Patches before (and without) rendering.
//
// Quick start:
//
//	fig, axs := plot.Subplots(1)
//	edges, _ := plot.Edges(values, 10)
//	_ = axs[0].Hist(values, edges, "marker1")
//	_ = fig.SavePNG("marker1.png")
//
// Numeric binning uses gonum (floats.Span for equal-width edges,
// stat.Histogram for counting). The last bin is closed on the right, so the
// maximum of the data is always counted.
//
// Figures are not safe for concurrent mutation.
package plot
