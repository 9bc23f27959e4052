// SPDX-License-Identifier: MIT

// Package dataio moves AnnData pieces in and out of plain files: dense
// matrices and obs tables as CSV, the unstructured store as YAML.
//
// CSV layout: the first row is a header whose first cell names the index
// column; every following row starts with its index value. Matrix cells
// must be numbers ("", "NaN" and "nan" read as NaN).
package dataio

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/cellscope/adata"
)

// IndexHeader is written as the first header cell.
const IndexHeader = "index"

// ReadMatrix parses a dense matrix with row and column names.
func ReadMatrix(r io.Reader) (m *mat.Dense, rows, cols []string, err error) {
	header, body, err := readAll(r)
	if err != nil {
		return nil, nil, nil, err
	}
	cols = header[1:]
	if len(cols) == 0 {
		return nil, nil, nil, fmt.Errorf("no value columns: %w", ErrEmptyInput)
	}
	data := make([]float64, 0, len(body)*len(cols))
	rows = make([]string, len(body))
	for i, rec := range body {
		rows[i] = rec[0]
		for j, cell := range rec[1:] {
			v, err := parseFloat(cell)
			if err != nil {
				return nil, nil, nil, fmt.Errorf("row %d column %q: %w", i+1, cols[j], err)
			}
			data = append(data, v)
		}
	}
	return mat.NewDense(len(rows), len(cols), data), rows, cols, nil
}

// LoadAnnData reads a matrix CSV into a new AnnData.
func LoadAnnData(r io.Reader) (*adata.AnnData, error) {
	m, rows, cols, err := ReadMatrix(r)
	if err != nil {
		return nil, err
	}
	return adata.New(m, rows, cols)
}

// ReadObs adds every column of an obs CSV to ad.Obs(). Rows are matched to
// observations by name and may come in any order, but every observation must
// be present exactly once. Column kinds are inferred: all integers ⇒ Int,
// all numbers ⇒ Float, anything else ⇒ String. Nothing is written on error.
func ReadObs(r io.Reader, ad *adata.AnnData) error {
	header, body, err := readAll(r)
	if err != nil {
		return err
	}
	n := ad.NObs()
	if len(body) != n {
		return fmt.Errorf("%d rows for %d observations: %w", len(body), n, ErrMalformed)
	}

	obs := ad.Obs()
	cells := make([][]string, len(header)-1)
	for j := range cells {
		cells[j] = make([]string, n)
	}
	seen := make([]bool, n)
	for _, rec := range body {
		i, ok := obs.Lookup(rec[0])
		if !ok {
			return fmt.Errorf("%q: %w", rec[0], ErrUnknownRow)
		}
		if seen[i] {
			return fmt.Errorf("row %q repeated: %w", rec[0], ErrMalformed)
		}
		seen[i] = true
		for j, cell := range rec[1:] {
			cells[j][i] = cell
		}
	}

	staged := obs.Clone()
	for j, name := range header[1:] {
		if err := setInferred(staged, name, cells[j]); err != nil {
			return err
		}
	}
	for _, name := range header[1:] {
		c, _ := staged.Column(name)
		if err := copyColumn(obs, c); err != nil {
			return err
		}
	}
	return nil
}

// WriteObs writes t as CSV: the index, then every column in order.
func WriteObs(w io.Writer, t *adata.Table) error {
	cw := csv.NewWriter(w)
	names := t.Columns()
	cols := make([]*adata.Column, len(names))
	for j, name := range names {
		c, err := t.Column(name)
		if err != nil {
			return err
		}
		cols[j] = c
	}
	if err := cw.Write(append([]string{IndexHeader}, names...)); err != nil {
		return err
	}
	rec := make([]string, len(cols)+1)
	for i, id := range t.Index() {
		rec[0] = id
		for j, c := range cols {
			rec[j+1] = c.Key(i)
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func readAll(r io.Reader) (header []string, body [][]string, err error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	recs, err := cr.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if len(recs) < 2 {
		return nil, nil, ErrEmptyInput
	}
	return recs[0], recs[1:], nil
}

func parseFloat(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return math.NaN(), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%q: %w", s, ErrMalformed)
	}
	return v, nil
}

func setInferred(t *adata.Table, name string, cells []string) error {
	if ints, ok := asInts(cells); ok {
		return t.SetInt(name, ints)
	}
	if floats, ok := asFloats(cells); ok {
		return t.SetFloat(name, floats)
	}
	return t.SetString(name, cells)
}

func asInts(cells []string) ([]int, bool) {
	out := make([]int, len(cells))
	for i, s := range cells {
		v, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return nil, false
		}
		out[i] = v
	}
	return out, true
}

func asFloats(cells []string) ([]float64, bool) {
	out := make([]float64, len(cells))
	for i, s := range cells {
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return nil, false
		}
		out[i] = v
	}
	return out, true
}

func copyColumn(t *adata.Table, c *adata.Column) error {
	switch c.Kind() {
	case adata.Int:
		v, _ := c.Ints()
		return t.SetInt(c.Name(), v)
	case adata.Float:
		v, _ := c.Floats()
		return t.SetFloat(c.Name(), v)
	default:
		v, _ := c.Strings()
		return t.SetString(c.Name(), v)
	}
}
