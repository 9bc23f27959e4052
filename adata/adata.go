// SPDX-License-Identifier: MIT

package adata

import (
	"fmt"
	"maps"
	"slices"
	"strconv"

	"gonum.org/v1/gonum/mat"
)

// AnnData is an annotated matrix: a primary (n_obs × n_var) matrix with
// observation and feature metadata, same-shape layers, per-observation
// associated tables (obsm) and an unstructured key/value store (uns).
//
// The container is owned by the caller. It has no internal locking: readers
// may run concurrently, writers must be serialized by the caller. All
// matrices handed to the container are copied on the way in; matrices handed
// out are the container's own storage and must be treated as read-only.
type AnnData struct {
	x      *mat.Dense
	obs    *Table
	vars   *Table
	layers map[string]*mat.Dense
	obsm   map[string]*mat.Dense
	uns    map[string]any
}

// New builds an AnnData around x. obsNames and varNames may be nil, in which
// case positional names "0", "1", ... are generated; otherwise their lengths
// must match the rows and columns of x and each name must be unique.
func New(x *mat.Dense, obsNames, varNames []string) (*AnnData, error) {
	if x == nil {
		return nil, ErrNilMatrix
	}
	if x.IsEmpty() {
		return nil, fmt.Errorf("primary matrix is empty: %w", ErrShapeMismatch)
	}
	r, c := x.Dims()

	if obsNames == nil {
		obsNames = positionalNames(r)
	}
	if varNames == nil {
		varNames = positionalNames(c)
	}
	if len(obsNames) != r {
		return nil, fmt.Errorf("%d obs names for %d rows: %w", len(obsNames), r, ErrShapeMismatch)
	}
	if len(varNames) != c {
		return nil, fmt.Errorf("%d var names for %d columns: %w", len(varNames), c, ErrShapeMismatch)
	}

	obs, err := NewTable(obsNames)
	if err != nil {
		return nil, fmt.Errorf("obs: %w", err)
	}
	vars, err := NewTable(varNames)
	if err != nil {
		return nil, fmt.Errorf("var: %w", err)
	}

	return &AnnData{
		x:      mat.DenseCopyOf(x),
		obs:    obs,
		vars:   vars,
		layers: make(map[string]*mat.Dense),
		obsm:   make(map[string]*mat.Dense),
		uns:    make(map[string]any),
	}, nil
}

func positionalNames(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = strconv.Itoa(i)
	}
	return out
}

// NObs returns the number of observations (rows).
func (a *AnnData) NObs() int { return a.obs.Len() }

// NVars returns the number of features (columns).
func (a *AnnData) NVars() int { return a.vars.Len() }

// X returns the primary matrix (read-only).
func (a *AnnData) X() *mat.Dense { return a.x }

// Obs returns the observation metadata table.
func (a *AnnData) Obs() *Table { return a.obs }

// Var returns the feature metadata table.
func (a *AnnData) Var() *Table { return a.vars }

// ObsNames returns a copy of the observation names.
func (a *AnnData) ObsNames() []string { return a.obs.Index() }

// VarNames returns a copy of the feature names in stored order.
func (a *AnnData) VarNames() []string { return a.vars.Index() }

// FeatureIndex returns the column position of a feature name.
func (a *AnnData) FeatureIndex(name string) (int, error) {
	j, ok := a.vars.Lookup(name)
	if !ok {
		return 0, fmt.Errorf("feature %q not in var index: %w", name, ErrUnknownFeature)
	}
	return j, nil
}

// ObsColumn returns an observation metadata column.
func (a *AnnData) ObsColumn(name string) (*Column, error) {
	c, ok := a.obs.cols[name]
	if !ok {
		return nil, fmt.Errorf("obs column %q: %w", name, ErrUnknownObservation)
	}
	return c, nil
}

// Matrix returns the primary matrix when layer is empty, otherwise the named layer.
func (a *AnnData) Matrix(layer string) (*mat.Dense, error) {
	if layer == "" {
		return a.x, nil
	}
	return a.Layer(layer)
}

// SetLayer stores a copy of m under name. m must have the primary shape.
func (a *AnnData) SetLayer(name string, m *mat.Dense) error {
	if name == "" {
		return ErrEmptyName
	}
	if m == nil {
		return ErrNilMatrix
	}
	r, c := m.Dims()
	if r != a.NObs() || c != a.NVars() {
		return fmt.Errorf("layer %q is %dx%d, want %dx%d: %w", name, r, c, a.NObs(), a.NVars(), ErrShapeMismatch)
	}
	a.layers[name] = mat.DenseCopyOf(m)
	return nil
}

// Layer returns the named layer (read-only).
func (a *AnnData) Layer(name string) (*mat.Dense, error) {
	m, ok := a.layers[name]
	if !ok {
		return nil, fmt.Errorf("layer %q: %w", name, ErrUnknownLayer)
	}
	return m, nil
}

// LayerNames returns the layer names in lexicographic order.
func (a *AnnData) LayerNames() []string { return slices.Sorted(maps.Keys(a.layers)) }

// DeleteLayer removes a layer and reports whether it existed.
func (a *AnnData) DeleteLayer(name string) bool {
	_, ok := a.layers[name]
	delete(a.layers, name)
	return ok
}

// SetObsm stores a copy of an associated table. m must have n_obs rows;
// its column count is free.
func (a *AnnData) SetObsm(name string, m *mat.Dense) error {
	if name == "" {
		return ErrEmptyName
	}
	if m == nil || m.IsEmpty() {
		return ErrNilMatrix
	}
	r, _ := m.Dims()
	if r != a.NObs() {
		return fmt.Errorf("table %q has %d rows, want %d: %w", name, r, a.NObs(), ErrShapeMismatch)
	}
	a.obsm[name] = mat.DenseCopyOf(m)
	return nil
}

// Obsm returns the named associated table (read-only).
func (a *AnnData) Obsm(name string) (*mat.Dense, error) {
	m, ok := a.obsm[name]
	if !ok {
		return nil, fmt.Errorf("table %q: %w", name, ErrUnknownTable)
	}
	return m, nil
}

// ObsmNames returns the associated table names in lexicographic order.
func (a *AnnData) ObsmNames() []string { return slices.Sorted(maps.Keys(a.obsm)) }

// DeleteObsm removes an associated table and reports whether it existed.
func (a *AnnData) DeleteObsm(name string) bool {
	_, ok := a.obsm[name]
	delete(a.obsm, name)
	return ok
}

// SetUns stores v under key, replacing any previous value.
func (a *AnnData) SetUns(key string, v any) error {
	if key == "" {
		return ErrEmptyName
	}
	a.uns[key] = v
	return nil
}

// Uns returns the value stored under key.
func (a *AnnData) Uns(key string) (any, bool) {
	v, ok := a.uns[key]
	return v, ok
}

// UnsKeys returns the unstructured keys in lexicographic order.
func (a *AnnData) UnsKeys() []string { return slices.Sorted(maps.Keys(a.uns)) }

// DeleteUns removes key and reports whether it existed.
func (a *AnnData) DeleteUns(key string) bool {
	_, ok := a.uns[key]
	delete(a.uns, key)
	return ok
}

// Clone returns a deep copy of the container. Uns values are copied shallowly.
func (a *AnnData) Clone() *AnnData {
	out := &AnnData{
		x:      mat.DenseCopyOf(a.x),
		obs:    a.obs.Clone(),
		vars:   a.vars.Clone(),
		layers: make(map[string]*mat.Dense, len(a.layers)),
		obsm:   make(map[string]*mat.Dense, len(a.obsm)),
		uns:    maps.Clone(a.uns),
	}
	for k, m := range a.layers {
		out.layers[k] = mat.DenseCopyOf(m)
	}
	for k, m := range a.obsm {
		out.obsm[k] = mat.DenseCopyOf(m)
	}
	return out
}
