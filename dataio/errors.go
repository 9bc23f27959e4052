// SPDX-License-Identifier: MIT

package dataio

import "errors"

var (
	// ErrEmptyInput is returned for a CSV without a header or data rows.
	ErrEmptyInput = errors.New("dataio: empty input")

	// ErrMalformed wraps parse failures (ragged rows, non-numeric cells).
	ErrMalformed = errors.New("dataio: malformed input")

	// ErrUnknownRow is returned when an obs CSV names an observation that is
	// not in the AnnData index.
	ErrUnknownRow = errors.New("dataio: row not in observation index")
)
