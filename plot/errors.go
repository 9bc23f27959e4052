// SPDX-License-Identifier: MIT

package plot

import "errors"

var (
	// ErrInvalidBins is returned when a bin count is not positive.
	ErrInvalidBins = errors.New("plot: bins must be positive")

	// ErrBadEdges indicates fewer than two edges, non-finite edges or edges
	// that are not strictly increasing.
	ErrBadEdges = errors.New("plot: bin edges must be finite and strictly increasing")

	// ErrLengthMismatch indicates category and count slices of different lengths.
	ErrLengthMismatch = errors.New("plot: categories and counts differ in length")

	// ErrNegativeCount is returned for a negative or non-finite bar height.
	ErrNegativeCount = errors.New("plot: bar heights must be finite and non-negative")

	// ErrNoAxes is returned when rendering a figure without axes.
	ErrNoAxes = errors.New("plot: figure has no axes")
)
