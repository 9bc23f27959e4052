// SPDX-License-Identifier: MIT

package transform

import (
	"slices"
	"strings"
	"time"

	"gonum.org/v1/gonum/mat"
)

// Selection describes which numeric matrix to cluster. Exactly one form is
// active: AssociatedTable when non-empty, otherwise Features over Layer
// (Layer "" is the primary matrix, Features nil is every feature).
type Selection struct {
	Features        []string
	Layer           string
	AssociatedTable string
}

// Provenance records what a resolved matrix was built from: either an
// ordered feature list or an associated table name.
type Provenance struct {
	Features []string
	Table    string
}

// IsTable reports whether the provenance is an associated table.
func (p Provenance) IsTable() bool { return p.Table != "" }

// Value returns the form stored in uns: the table name as a string, or a
// copy of the feature list as []string.
func (p Provenance) Value() any {
	if p.IsTable() {
		return p.Table
	}
	return slices.Clone(p.Features)
}

// String implements fmt.Stringer.
func (p Provenance) String() string {
	if p.IsTable() {
		return "obsm:" + p.Table
	}
	return "features:" + strings.Join(p.Features, ",")
}

// Clusterer is the clustering collaborator: one label in [0, k) per row of x.
// Equal (x, k, seed) must give identical labels.
type Clusterer interface {
	Cluster(x *mat.Dense, k int, seed int64) ([]int, error)
}

// Observer is notified once per KMeans/Assign call, after success or failure.
type Observer interface {
	ObserveClustering(ev ClusterEvent)
}

// ClusterEvent describes one clustering call.
type ClusterEvent struct {
	Annotation   string
	K            int
	Clusters     int // 0 on failure
	Observations int
	Duration     time.Duration
	Err          error
}

// Result is the outcome of a successful clustering call. Everything in it
// has also been written to the AnnData.
type Result struct {
	// Annotation is the obs column holding Labels.
	Annotation string
	Labels     []int
	K          int
	// Seed is the seed actually used; Seeded is false when it was drawn
	// because the caller gave none.
	Seed       int64
	Seeded     bool
	Provenance Provenance
	// Clusters is the number of distinct labels.
	Clusters int
}
