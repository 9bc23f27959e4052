// SPDX-License-Identifier: MIT
// Package kmeans: sentinel error set.
// Fit never panics on user input; every rejection is one of these sentinels,
// possibly wrapped with context via fmt.Errorf("...: %w", ErrX).

package kmeans

import "errors"

var (
	// ErrEmptyInput is returned when the data matrix has no rows or no columns.
	ErrEmptyInput = errors.New("kmeans: empty input")

	// ErrInvalidK is returned when K < 1.
	ErrInvalidK = errors.New("kmeans: k must be >= 1")

	// ErrNaNInf is returned when the data contains NaN or ±Inf.
	ErrNaNInf = errors.New("kmeans: NaN or Inf in input")

	// ErrBadConfig is returned for out-of-range iteration, restart,
	// tolerance or consolidation settings.
	ErrBadConfig = errors.New("kmeans: invalid config")
)
