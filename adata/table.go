// SPDX-License-Identifier: MIT
// Package adata: typed metadata tables.
//
// A Table is an index of unique row names plus an ordered set of named,
// typed columns. Columns are declared with a Kind at write time; typed reads
// of another Kind fail with ErrKindMismatch instead of coercing silently.
// Every setter copies its input, every reader returns a copy, so callers
// cannot alias the table's storage.

package adata

import (
	"fmt"
	"math"
	"slices"
	"sort"
	"strconv"
)

// Kind is the declared element type of a Column.
type Kind int

const (
	// Float columns hold float64 values (measurements, scores).
	Float Kind = iota
	// Int columns hold int values (cluster labels, counts).
	Int
	// String columns hold categorical labels.
	String
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case Float:
		return "float"
	case Int:
		return "int"
	case String:
		return "string"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Column is a named, typed, fixed-length sequence. Exactly one of the
// backing slices is populated, selected by kind.
type Column struct {
	name    string
	kind    Kind
	floats  []float64
	ints    []int
	strings []string
}

// Name returns the column name.
func (c *Column) Name() string { return c.name }

// Kind returns the declared element type.
func (c *Column) Kind() Kind { return c.kind }

// Len returns the number of rows.
func (c *Column) Len() int {
	switch c.kind {
	case Float:
		return len(c.floats)
	case Int:
		return len(c.ints)
	default:
		return len(c.strings)
	}
}

// Floats returns a copy of a Float column.
func (c *Column) Floats() ([]float64, error) {
	if c.kind != Float {
		return nil, fmt.Errorf("column %q is %s: %w", c.name, c.kind, ErrKindMismatch)
	}
	return slices.Clone(c.floats), nil
}

// Ints returns a copy of an Int column.
func (c *Column) Ints() ([]int, error) {
	if c.kind != Int {
		return nil, fmt.Errorf("column %q is %s: %w", c.name, c.kind, ErrKindMismatch)
	}
	return slices.Clone(c.ints), nil
}

// Strings returns a copy of a String column.
func (c *Column) Strings() ([]string, error) {
	if c.kind != String {
		return nil, fmt.Errorf("column %q is %s: %w", c.name, c.kind, ErrKindMismatch)
	}
	return slices.Clone(c.strings), nil
}

// Numeric returns the column as float64 values. Int columns are widened;
// String columns fail with ErrKindMismatch.
func (c *Column) Numeric() ([]float64, error) {
	switch c.kind {
	case Float:
		return slices.Clone(c.floats), nil
	case Int:
		out := make([]float64, len(c.ints))
		for i, v := range c.ints {
			out[i] = float64(v)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("column %q is %s: %w", c.name, c.kind, ErrKindMismatch)
	}
}

// NaNKey is the grouping key shared by every NaN in a Float column.
const NaNKey = "NaN"

// Key returns the grouping key of row i: the canonical string form of the
// value. Float keys fold -0 into "0" and every NaN into NaNKey.
// i must be in [0, Len()).
func (c *Column) Key(i int) string {
	switch c.kind {
	case Float:
		return floatKey(c.floats[i])
	case Int:
		return strconv.Itoa(c.ints[i])
	default:
		return c.strings[i]
	}
}

func floatKey(v float64) string {
	switch {
	case math.IsNaN(v):
		return NaNKey
	case v == 0:
		return "0"
	default:
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
}

// Categories returns the distinct keys of the column in natural order:
// ascending numeric order for Float/Int (NaNKey last), lexicographic order
// for String.
func (c *Column) Categories() []string {
	keys, _ := c.Partition()
	return keys
}

// Partition splits row indices by Key in a single pass. The returned keys
// follow Categories() order and rows[g] lists, in ascending order, the rows
// whose key is keys[g]; every rows[g] is non-empty.
func (c *Column) Partition() (keys []string, rows [][]int) {
	slot := make(map[string]int)
	var first []int
	for i, n := 0, c.Len(); i < n; i++ {
		k := c.Key(i)
		g, ok := slot[k]
		if !ok {
			g = len(keys)
			slot[k] = g
			keys = append(keys, k)
			first = append(first, i)
			rows = append(rows, nil)
		}
		rows[g] = append(rows[g], i)
	}

	order := make([]int, len(keys))
	for g := range order {
		order[g] = g
	}
	sort.SliceStable(order, func(a, b int) bool {
		return c.less(first[order[a]], first[order[b]])
	})

	sortedKeys := make([]string, len(keys))
	sortedRows := make([][]int, len(keys))
	for to, from := range order {
		sortedKeys[to] = keys[from]
		sortedRows[to] = rows[from]
	}
	return sortedKeys, sortedRows
}

// less orders rows i and j by value, NaN after every number.
func (c *Column) less(i, j int) bool {
	switch c.kind {
	case Float:
		a, b := c.floats[i], c.floats[j]
		if math.IsNaN(a) || math.IsNaN(b) {
			return !math.IsNaN(a) && math.IsNaN(b)
		}
		return a < b
	case Int:
		return c.ints[i] < c.ints[j]
	default:
		return c.strings[i] < c.strings[j]
	}
}

func (c *Column) clone() *Column {
	return &Column{
		name:    c.name,
		kind:    c.kind,
		floats:  slices.Clone(c.floats),
		ints:    slices.Clone(c.ints),
		strings: slices.Clone(c.strings),
	}
}

// Table is a row-indexed collection of typed columns.
type Table struct {
	index []string
	pos   map[string]int
	order []string
	cols  map[string]*Column
}

// NewTable creates an empty table over the given row names.
// Names must be unique; an empty index yields a zero-row table.
func NewTable(index []string) (*Table, error) {
	pos := make(map[string]int, len(index))
	for i, name := range index {
		if _, dup := pos[name]; dup {
			return nil, fmt.Errorf("index name %q: %w", name, ErrDuplicateName)
		}
		pos[name] = i
	}
	return &Table{
		index: slices.Clone(index),
		pos:   pos,
		cols:  make(map[string]*Column),
	}, nil
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.index) }

// Index returns a copy of the row names in stored order.
func (t *Table) Index() []string { return slices.Clone(t.index) }

// Lookup returns the row position of name.
func (t *Table) Lookup(name string) (int, bool) {
	i, ok := t.pos[name]
	return i, ok
}

// Columns returns the column names in insertion order.
func (t *Table) Columns() []string { return slices.Clone(t.order) }

// Has reports whether a column exists.
func (t *Table) Has(name string) bool {
	_, ok := t.cols[name]
	return ok
}

// Column returns the named column. The Column is read-only; mutate via Set*.
func (t *Table) Column(name string) (*Column, error) {
	c, ok := t.cols[name]
	if !ok {
		return nil, fmt.Errorf("column %q: %w", name, ErrUnknownColumn)
	}
	return c, nil
}

// SetFloat writes (or overwrites) a Float column.
func (t *Table) SetFloat(name string, values []float64) error {
	if err := t.checkWrite(name, len(values)); err != nil {
		return err
	}
	t.put(&Column{name: name, kind: Float, floats: slices.Clone(values)})
	return nil
}

// SetInt writes (or overwrites) an Int column.
func (t *Table) SetInt(name string, values []int) error {
	if err := t.checkWrite(name, len(values)); err != nil {
		return err
	}
	t.put(&Column{name: name, kind: Int, ints: slices.Clone(values)})
	return nil
}

// SetString writes (or overwrites) a String column.
func (t *Table) SetString(name string, values []string) error {
	if err := t.checkWrite(name, len(values)); err != nil {
		return err
	}
	t.put(&Column{name: name, kind: String, strings: slices.Clone(values)})
	return nil
}

// Delete removes a column and reports whether it existed.
func (t *Table) Delete(name string) bool {
	if _, ok := t.cols[name]; !ok {
		return false
	}
	delete(t.cols, name)
	t.order = slices.DeleteFunc(t.order, func(s string) bool { return s == name })
	return true
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	out := &Table{
		index: slices.Clone(t.index),
		pos:   make(map[string]int, len(t.pos)),
		order: slices.Clone(t.order),
		cols:  make(map[string]*Column, len(t.cols)),
	}
	for k, v := range t.pos {
		out.pos[k] = v
	}
	for k, c := range t.cols {
		out.cols[k] = c.clone()
	}
	return out
}

func (t *Table) checkWrite(name string, n int) error {
	if name == "" {
		return ErrEmptyName
	}
	if n != len(t.index) {
		return fmt.Errorf("column %q has %d rows, table has %d: %w", name, n, len(t.index), ErrShapeMismatch)
	}
	return nil
}

// put replaces an existing column in place, keeping its position.
func (t *Table) put(c *Column) {
	if _, ok := t.cols[c.name]; !ok {
		t.order = append(t.order, c.name)
	}
	t.cols[c.name] = c
}
