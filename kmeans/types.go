// SPDX-License-Identifier: MIT

package kmeans

import "gonum.org/v1/gonum/mat"

// InitMethod selects how initial centers are chosen.
type InitMethod int

const (
	// KMeansPlusPlus draws centers with probability proportional to D²,
	// the squared distance to the nearest center already chosen.
	KMeansPlusPlus InitMethod = iota

	// Random draws K distinct rows uniformly.
	Random
)

// String implements fmt.Stringer.
func (m InitMethod) String() string {
	switch m {
	case KMeansPlusPlus:
		return "k-means++"
	case Random:
		return "random"
	default:
		return "unknown"
	}
}

// Defaults - single source of truth for DefaultConfig.
const (
	// DefaultMaxIter bounds Lloyd iterations per restart.
	DefaultMaxIter = 300

	// DefaultTol is the relative center-shift tolerance; the absolute
	// threshold is DefaultTol × mean per-feature variance.
	DefaultTol = 1e-4

	// DefaultNInit is the number of seeded restarts; the lowest inertia wins.
	DefaultNInit = 4

	// DefaultConsolidate enables the Ward consolidation pass.
	DefaultConsolidate = true

	// DefaultSeparationRatio is the ratio of Ward merge cost to the pair's
	// within-cluster sum of squares from which two clusters stay apart.
	DefaultSeparationRatio = 10.0
)

// Config parameterizes Fit.
//
// Fields:
//   - K               : upper bound on the number of clusters (≥ 1).
//   - Seed            : seed of every random decision; equal seeds give
//     bit-identical results for equal inputs.
//   - MaxIter         : Lloyd iterations per restart (≥ 1).
//   - Tol             : relative convergence tolerance (≥ 0).
//   - NInit           : number of restarts (≥ 1).
//   - Init            : KMeansPlusPlus or Random.
//   - Consolidate     : join fitted clusters whose Ward merge cost is below
//     SeparationRatio times their within-cluster sum of squares. Costs
//     O(m³) for m centers.
//   - SeparationRatio : separation threshold (> 1) used when Consolidate is set.
type Config struct {
	K               int
	Seed            int64
	MaxIter         int
	Tol             float64
	NInit           int
	Init            InitMethod
	Consolidate     bool
	SeparationRatio float64
}

// DefaultConfig returns a Config with K=1 and every other field at its default.
// Callers set K (and usually Seed) before calling Fit.
func DefaultConfig() Config {
	return Config{
		K:               1,
		MaxIter:         DefaultMaxIter,
		Tol:             DefaultTol,
		NInit:           DefaultNInit,
		Init:            KMeansPlusPlus,
		Consolidate:     DefaultConsolidate,
		SeparationRatio: DefaultSeparationRatio,
	}
}

// Result is the outcome of Fit.
type Result struct {
	// Labels assigns each row a cluster in [0, Clusters). Labels are numbered
	// in order of first appearance, so Labels[0] == 0.
	Labels []int

	// Clusters is the number of distinct labels (≤ K).
	Clusters int

	// Centers holds one centroid per cluster (Clusters × cols).
	Centers *mat.Dense

	// Inertia is the sum of squared distances of rows to their centroid.
	Inertia float64

	// Iterations is the number of Lloyd iterations of the winning restart.
	Iterations int
}
