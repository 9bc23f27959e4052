// SPDX-License-Identifier: MIT
package transform_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/cellscope/adata"
)

// -----------------------------------------------------------------------------
// Fixtures
// -----------------------------------------------------------------------------

const (
	// nCells is the observation count of the uniform fixture.
	nCells = 100

	// blobSize is the number of rows per synthetic group.
	blobSize = 500
)

// uniformData returns a 100×3 AnnData over gene1..gene3 with a "counts" layer.
func uniformData(t *testing.T) *adata.AnnData {
	t.Helper()
	rng := rand.New(rand.NewSource(2024))
	x := mat.NewDense(nCells, 3, nil)
	counts := mat.NewDense(nCells, 3, nil)
	for i := 0; i < nCells; i++ {
		for j := 0; j < 3; j++ {
			x.Set(i, j, rng.Float64())
			counts.Set(i, j, rng.Float64())
		}
	}
	ad, err := adata.New(x, nil, []string{"gene1", "gene2", "gene3"})
	require.NoError(t, err)
	require.NoError(t, ad.SetLayer("counts", counts))
	return ad
}

// separatedData lays out two groups of blobSize points around (100,100) and
// (10,10): two concatenated normal samples per axis, stacked as a 2×1000
// array and read back as 1000 consecutive (x, y) pairs. The same matrix is
// stored as X, as the "counts" layer and as the "derived_features" table.
func separatedData(t *testing.T) *adata.AnnData {
	t.Helper()
	rng := rand.New(rand.NewSource(7))
	normal := func(mu float64, n int) []float64 {
		out := make([]float64, n)
		for i := range out {
			out[i] = mu + rng.NormFloat64()
		}
		return out
	}
	flat := make([]float64, 0, 4*blobSize)
	flat = append(flat, normal(100, blobSize)...)
	flat = append(flat, normal(10, blobSize)...)
	flat = append(flat, normal(10, blobSize)...)
	flat = append(flat, normal(100, blobSize)...)
	x := mat.NewDense(2*blobSize, 2, flat)

	ad, err := adata.New(x, nil, []string{"gene1", "gene2"})
	require.NoError(t, err)
	require.NoError(t, ad.SetLayer("counts", x))
	require.NoError(t, ad.SetObsm("derived_features", x))
	return ad
}

func intColumn(t *testing.T, ad *adata.AnnData, name string) []int {
	t.Helper()
	c, err := ad.ObsColumn(name)
	require.NoError(t, err)
	v, err := c.Ints()
	require.NoError(t, err)
	return v
}

func distinct(labels []int) int {
	seen := map[int]struct{}{}
	for _, l := range labels {
		seen[l] = struct{}{}
	}
	return len(seen)
}
