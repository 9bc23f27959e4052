// SPDX-License-Identifier: MIT
// Package adata: sentinel error set.
// Every lookup or setter failure on AnnData/Table returns one of these
// sentinels, optionally wrapped with fmt.Errorf("ctx: %w", ErrX) to name the
// offending key. Callers and tests match with errors.Is.

package adata

import "errors"

var (
	// ErrNilMatrix is returned when a nil primary matrix, layer or table is supplied.
	ErrNilMatrix = errors.New("adata: nil matrix")

	// ErrShapeMismatch signals that a matrix or column does not match the
	// container's (n_obs, n_var) shape. The container never resizes.
	ErrShapeMismatch = errors.New("adata: shape mismatch")

	// ErrDuplicateName signals a repeated observation or feature name.
	ErrDuplicateName = errors.New("adata: duplicate name")

	// ErrEmptyName is returned when a layer, table, column or key name is empty.
	ErrEmptyName = errors.New("adata: empty name")

	// ErrUnknownLayer indicates that the requested layer does not exist.
	ErrUnknownLayer = errors.New("adata: unknown layer")

	// ErrUnknownFeature indicates that a feature name is not in the var index.
	ErrUnknownFeature = errors.New("adata: unknown feature")

	// ErrUnknownTable indicates that the requested associated (obsm) table does not exist.
	ErrUnknownTable = errors.New("adata: unknown associated table")

	// ErrUnknownObservation indicates that an obs column does not exist.
	ErrUnknownObservation = errors.New("adata: unknown observation column")

	// ErrUnknownColumn is the generic Table lookup failure. AnnData.ObsColumn
	// reports ErrUnknownObservation instead.
	ErrUnknownColumn = errors.New("adata: unknown column")

	// ErrKindMismatch signals a typed read of a column declared with another Kind.
	ErrKindMismatch = errors.New("adata: column kind mismatch")
)
