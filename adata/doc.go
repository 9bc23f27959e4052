// SPDX-License-Identifier: MIT

// Package adata provides the annotated-matrix container consumed by the
// clustering and plotting packages.
//
// An AnnData bundles:
//
//   - X       : the primary n_obs × n_var matrix (gonum *mat.Dense);
//   - Obs     : a Table with one row per observation (cell);
//   - Var     : a Table with one row per feature (marker), indexed by name;
//   - Layers  : alternate matrices with exactly the shape of X;
//   - Obsm    : associated per-observation tables with any column count;
//   - Uns     : a free-form key/value store.
//
// Shapes are fixed at construction. Setters validate and return
// ErrShapeMismatch instead of resizing; lookups return typed sentinel errors
// (ErrUnknownLayer, ErrUnknownFeature, ErrUnknownTable, ErrUnknownObservation).
//
// Example:
//
//	x := mat.NewDense(3, 2, []float64{1, 2, 3, 4, 5, 6})
//	ad, err := adata.New(x, nil, []string{"CD3", "CD8"})
//	if err != nil {
//		// handle ErrShapeMismatch / ErrDuplicateName
//	}
//	_ = ad.Obs().SetString("sample", []string{"a", "a", "b"})
package adata
