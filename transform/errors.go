// SPDX-License-Identifier: MIT
// Package transform: sentinel error set.
// Resolution failures are the adata sentinels (ErrUnknownLayer,
// ErrUnknownFeature, ErrUnknownTable) propagated unchanged; the sentinels
// below cover parameter validation and the clustering collaborator.

package transform

import "errors"

var (
	// ErrNilData is returned when a nil *adata.AnnData is passed.
	ErrNilData = errors.New("transform: nil AnnData")

	// ErrInvalidParameter is returned for a non-integer or non-positive k,
	// an empty output annotation, or an explicitly empty feature list.
	ErrInvalidParameter = errors.New("transform: invalid parameter")

	// ErrClusterer is returned when the clustering collaborator yields a
	// label slice of the wrong length or a label outside [0, k).
	ErrClusterer = errors.New("transform: clusterer returned invalid labels")
)
