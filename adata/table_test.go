// SPDX-License-Identifier: MIT
package adata_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/cellscope/adata"
)

// TestNewTable_DuplicateIndex ensures repeated row names are rejected.
func TestNewTable_DuplicateIndex(t *testing.T) {
	_, err := adata.NewTable([]string{"a", "b", "a"})
	assert.ErrorIs(t, err, adata.ErrDuplicateName)
}

// TestTable_SetAndReadTyped covers typed writes, typed reads and kind mismatch.
func TestTable_SetAndReadTyped(t *testing.T) {
	tb, err := adata.NewTable([]string{"c1", "c2", "c3"})
	require.NoError(t, err)

	require.NoError(t, tb.SetFloat("area", []float64{1.5, 2.5, 3.5}))
	require.NoError(t, tb.SetInt("label", []int{2, 0, 2}))
	require.NoError(t, tb.SetString("type", []string{"T", "B", "T"}))
	assert.Equal(t, []string{"area", "label", "type"}, tb.Columns())

	c, err := tb.Column("label")
	require.NoError(t, err)
	assert.Equal(t, adata.Int, c.Kind())
	ints, err := c.Ints()
	require.NoError(t, err)
	assert.Equal(t, []int{2, 0, 2}, ints)

	_, err = c.Strings()
	assert.ErrorIs(t, err, adata.ErrKindMismatch)

	num, err := c.Numeric()
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 0, 2}, num)

	s, err := tb.Column("type")
	require.NoError(t, err)
	_, err = s.Numeric()
	assert.ErrorIs(t, err, adata.ErrKindMismatch)
}

// TestTable_ShapeAndName verifies that setters never resize the table.
func TestTable_ShapeAndName(t *testing.T) {
	tb, err := adata.NewTable([]string{"c1", "c2"})
	require.NoError(t, err)

	assert.ErrorIs(t, tb.SetFloat("x", []float64{1}), adata.ErrShapeMismatch)
	assert.ErrorIs(t, tb.SetInt("", []int{1, 2}), adata.ErrEmptyName)
	assert.False(t, tb.Has("x"))

	_, err = tb.Column("missing")
	assert.ErrorIs(t, err, adata.ErrUnknownColumn)
}

// TestTable_OverwriteKeepsPosition checks that overwriting a column keeps
// its insertion slot and may change its kind.
func TestTable_OverwriteKeepsPosition(t *testing.T) {
	tb, err := adata.NewTable([]string{"c1", "c2"})
	require.NoError(t, err)
	require.NoError(t, tb.SetInt("a", []int{1, 2}))
	require.NoError(t, tb.SetInt("b", []int{3, 4}))
	require.NoError(t, tb.SetString("a", []string{"x", "y"}))

	assert.Equal(t, []string{"a", "b"}, tb.Columns())
	c, err := tb.Column("a")
	require.NoError(t, err)
	assert.Equal(t, adata.String, c.Kind())

	assert.True(t, tb.Delete("a"))
	assert.False(t, tb.Delete("a"))
	assert.Equal(t, []string{"b"}, tb.Columns())
}

// TestColumn_CategoriesAndPartition checks natural ordering per kind.
func TestColumn_CategoriesAndPartition(t *testing.T) {
	tb, err := adata.NewTable([]string{"c1", "c2", "c3", "c4", "c5"})
	require.NoError(t, err)
	require.NoError(t, tb.SetInt("k", []int{10, 2, 10, 2, 1}))
	require.NoError(t, tb.SetString("s", []string{"b", "a", "b", "c", "a"}))
	require.NoError(t, tb.SetFloat("f", []float64{0.5, 0.25, 0.5, 1, 0.25}))

	k, _ := tb.Column("k")
	assert.Equal(t, []string{"1", "2", "10"}, k.Categories(), "ints sort numerically")

	f, _ := tb.Column("f")
	assert.Equal(t, []string{"0.25", "0.5", "1"}, f.Categories())

	s, _ := tb.Column("s")
	keys, rows := s.Partition()
	assert.Equal(t, []string{"a", "b", "c"}, keys)
	assert.Equal(t, [][]int{{1, 4}, {0, 2}, {3}}, rows)
}

// TestColumn_FloatKeysCanonical folds every NaN into one key and -0 into 0,
// keeping Key, Categories and Partition consistent.
func TestColumn_FloatKeysCanonical(t *testing.T) {
	nan := math.NaN()
	negZero := math.Copysign(0, -1)

	tb, err := adata.NewTable([]string{"c1", "c2", "c3", "c4", "c5", "c6"})
	require.NoError(t, err)
	require.NoError(t, tb.SetFloat("nan", []float64{nan, nan, 1, 1, nan, 1}))
	require.NoError(t, tb.SetFloat("zero", []float64{-1, negZero, 0, 0, -1, negZero}))

	c, _ := tb.Column("nan")
	keys, rows := c.Partition()
	assert.Equal(t, []string{"1", adata.NaNKey}, keys)
	assert.Equal(t, [][]int{{2, 3, 5}, {0, 1, 4}}, rows)
	assert.Equal(t, keys, c.Categories())
	assert.Equal(t, adata.NaNKey, c.Key(4))

	z, _ := tb.Column("zero")
	keys, rows = z.Partition()
	assert.Equal(t, []string{"-1", "0"}, keys)
	assert.Equal(t, [][]int{{0, 4}, {1, 2, 3, 5}}, rows)
	assert.Equal(t, "0", z.Key(1))

	// Every row belongs to exactly one partition and none is empty.
	for _, col := range []*adata.Column{c, z} {
		_, rows := col.Partition()
		total := 0
		for _, r := range rows {
			assert.NotEmpty(t, r)
			total += len(r)
		}
		assert.Equal(t, col.Len(), total)
	}
}

// TestTable_CopySemantics ensures inputs and outputs are not aliased.
func TestTable_CopySemantics(t *testing.T) {
	tb, err := adata.NewTable([]string{"c1", "c2"})
	require.NoError(t, err)
	in := []float64{1, 2}
	require.NoError(t, tb.SetFloat("v", in))
	in[0] = 99

	c, _ := tb.Column("v")
	out, _ := c.Floats()
	assert.Equal(t, []float64{1, 2}, out)
	out[1] = 42
	again, _ := c.Floats()
	assert.Equal(t, []float64{1, 2}, again)

	cl := tb.Clone()
	require.NoError(t, cl.SetFloat("v", []float64{7, 7}))
	orig, _ := c.Floats()
	assert.Equal(t, []float64{1, 2}, orig, "clone must not share storage")
}
