// SPDX-License-Identifier: MIT

package visualize

import (
	"errors"

	"github.com/katalvlaran/cellscope/adata"
)

// User-facing messages are fixed; callers and tests match them verbatim.
const (
	msgConflicting   = "Cannot pass both feature_name and observation_name, choose one"
	msgNoSelection   = "Must pass either feature_name or observation_name"
	msgUnknownFeat   = "feature_name not found in adata"
	msgUnknownObs    = "observation_name not found in adata"
	msgUnknownGroup  = "group_by not found in adata"
	msgInvalidBins   = "visualize: bins must be positive"
	msgNilAnnotation = "visualize: nil AnnData"
)

var (
	// ErrConflictingSelection: both a feature and an observation were named.
	ErrConflictingSelection = errors.New(msgConflicting)

	// ErrNoSelection: neither a feature nor an observation was named.
	ErrNoSelection = errors.New(msgNoSelection)

	// ErrUnknownGroup: the group_by column is not in obs.
	ErrUnknownGroup = errors.New(msgUnknownGroup)

	// ErrInvalidBins: a negative bin count.
	ErrInvalidBins = errors.New(msgInvalidBins)

	// ErrNilData: the AnnData argument is nil.
	ErrNilData = errors.New(msgNilAnnotation)
)

// lookupError reports a missing name with a fixed message while still
// matching the container's sentinel.
type lookupError struct {
	msg   string
	cause error
}

func (e *lookupError) Error() string { return e.msg }
func (e *lookupError) Unwrap() error { return e.cause }

func unknownFeature() error { return &lookupError{msg: msgUnknownFeat, cause: adata.ErrUnknownFeature} }

func unknownObservation() error {
	return &lookupError{msg: msgUnknownObs, cause: adata.ErrUnknownObservation}
}
