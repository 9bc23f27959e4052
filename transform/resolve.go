// SPDX-License-Identifier: MIT

package transform

import (
	"fmt"
	"slices"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/cellscope/adata"
)

// Resolve turns a Selection into a fresh numeric matrix plus its provenance.
//
// Stage 1: an associated table, when named, wins outright; Features and
// Layer are ignored. Missing table ⇒ adata.ErrUnknownTable.
// Stage 2: otherwise pick the source (Layer or the primary matrix; missing
// layer ⇒ adata.ErrUnknownLayer).
// Stage 3: subset columns. Features nil ⇒ every feature in var order;
// otherwise every name must be in the var index, and the first missing one
// is reported with adata.ErrUnknownFeature. An empty, non-nil list fails
// with ErrInvalidParameter.
//
// The returned matrix never aliases container storage, and ad is not mutated.
func Resolve(ad *adata.AnnData, sel Selection) (*mat.Dense, Provenance, error) {
	if ad == nil {
		return nil, Provenance{}, ErrNilData
	}

	if sel.AssociatedTable != "" {
		t, err := ad.Obsm(sel.AssociatedTable)
		if err != nil {
			return nil, Provenance{}, err
		}
		return mat.DenseCopyOf(t), Provenance{Table: sel.AssociatedTable}, nil
	}

	src, err := ad.Matrix(sel.Layer)
	if err != nil {
		return nil, Provenance{}, err
	}

	features := sel.Features
	if features == nil {
		features = ad.VarNames()
	} else if len(features) == 0 {
		return nil, Provenance{}, fmt.Errorf("empty feature list: %w", ErrInvalidParameter)
	}

	cols := make([]int, len(features))
	for i, name := range features {
		j, err := ad.FeatureIndex(name)
		if err != nil {
			return nil, Provenance{}, err
		}
		cols[i] = j
	}

	n := ad.NObs()
	out := mat.NewDense(n, len(cols), nil)
	buf := make([]float64, n)
	for c, j := range cols {
		mat.Col(buf, j, src)
		out.SetCol(c, buf)
	}
	return out, Provenance{Features: slices.Clone(features)}, nil
}
