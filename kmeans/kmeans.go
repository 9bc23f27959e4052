// SPDX-License-Identifier: MIT

package kmeans

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Fit clusters the rows of x into at most cfg.K groups.
//
// Algorithm:
//  1. Validate cfg and x (finite values, non-empty).
//  2. For each of cfg.NInit restarts, derive an RNG stream from cfg.Seed,
//     pick initial centers (k-means++ or random distinct rows) and run
//     Lloyd iterations until no row changes cluster or the total center
//     shift drops below cfg.Tol × mean feature variance.
//  3. Keep the restart with the lowest inertia (earliest wins ties) and
//     drop clusters that ended empty.
//  4. If cfg.Consolidate, join clusters pairwise while the Ward cost of the
//     least separated pair stays below cfg.SeparationRatio times the
//     within-cluster sum of squares of that pair.
//  5. Renumber labels in order of first appearance.
//
// Determinism:
//
//	Fixed iteration order everywhere; ties go to the lowest index. Equal
//	(x, cfg) ⇒ bit-identical Result.
//
// Complexity:
//
//	O(NInit·MaxIter·n·K·d) for Lloyd, O(m³·d) for consolidation over m ≤ K centers.
func Fit(x mat.Matrix, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	rows, err := extractRows(x)
	if err != nil {
		return nil, err
	}
	tol := absTolerance(x, cfg.Tol)

	base := rngFromSeed(cfg.Seed)
	var best *run
	for r := 0; r < cfg.NInit; r++ {
		rng := deriveRNG(base, uint64(r))
		var centers [][]float64
		switch cfg.Init {
		case Random:
			centers = seedRandom(rows, cfg.K, rng)
		default:
			centers = seedPlusPlus(rows, cfg.K, rng)
		}
		cur := lloyd(rows, centers, cfg.MaxIter, tol)
		if best == nil || cur.inertia < best.inertia {
			best = cur
		}
	}

	labels, centers := dropEmpty(best.labels, best.centers)
	if cfg.Consolidate {
		means := centroids(rows, labels, len(centers))
		groups := consolidate(means, clusterSizes(labels, len(means)), clusterSSE(rows, labels, means), cfg.SeparationRatio)
		for i, l := range labels {
			labels[i] = groups[l]
		}
	}
	clusters := renumber(labels)

	means := centroids(rows, labels, clusters)
	return &Result{
		Labels:     labels,
		Clusters:   clusters,
		Centers:    toDense(means),
		Inertia:    inertia(rows, labels, means),
		Iterations: best.iterations,
	}, nil
}

func validateConfig(cfg Config) error {
	if cfg.K < 1 {
		return ErrInvalidK
	}
	if cfg.MaxIter < 1 {
		return fmt.Errorf("MaxIter=%d: %w", cfg.MaxIter, ErrBadConfig)
	}
	if cfg.NInit < 1 {
		return fmt.Errorf("NInit=%d: %w", cfg.NInit, ErrBadConfig)
	}
	if math.IsNaN(cfg.Tol) || math.IsInf(cfg.Tol, 0) || cfg.Tol < 0 {
		return fmt.Errorf("Tol=%g: %w", cfg.Tol, ErrBadConfig)
	}
	if cfg.Init != KMeansPlusPlus && cfg.Init != Random {
		return fmt.Errorf("Init=%d: %w", cfg.Init, ErrBadConfig)
	}
	if cfg.Consolidate && !(cfg.SeparationRatio > 1) {
		return fmt.Errorf("SeparationRatio=%g: %w", cfg.SeparationRatio, ErrBadConfig)
	}
	return nil
}

// extractRows copies x into row slices and rejects non-finite values.
func extractRows(x mat.Matrix) ([][]float64, error) {
	if x == nil {
		return nil, ErrEmptyInput
	}
	if d, ok := x.(*mat.Dense); ok && d.IsEmpty() {
		return nil, ErrEmptyInput
	}
	n, d := x.Dims()
	if n == 0 || d == 0 {
		return nil, ErrEmptyInput
	}
	rows := make([][]float64, n)
	for i := 0; i < n; i++ {
		rows[i] = mat.Row(nil, i, x)
		for j, v := range rows[i] {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("row %d col %d: %w", i, j, ErrNaNInf)
			}
		}
	}
	return rows, nil
}

// absTolerance scales tol by the mean per-feature variance of x.
func absTolerance(x mat.Matrix, tol float64) float64 {
	n, d := x.Dims()
	if n < 2 || tol == 0 {
		return 0
	}
	var sum float64
	col := make([]float64, n)
	for j := 0; j < d; j++ {
		mat.Col(col, j, x)
		sum += stat.Variance(col, nil)
	}
	return tol * sum / float64(d)
}

// run is the state of one restart.
type run struct {
	labels     []int
	centers    [][]float64
	inertia    float64
	iterations int
}

// lloyd alternates assignment and update steps. Clusters that lose all rows
// keep their previous center and may regain rows later.
func lloyd(rows, centers [][]float64, maxIter int, tol float64) *run {
	n, k := len(rows), len(centers)
	labels := make([]int, n)
	for i := range labels {
		labels[i] = -1
	}
	sums := make([][]float64, k)
	for j := range sums {
		sums[j] = make([]float64, len(rows[0]))
	}
	counts := make([]int, k)

	iter := 0
	for iter < maxIter {
		iter++
		changed := 0
		for i, row := range rows {
			j := nearest(row, centers)
			if labels[i] != j {
				labels[i] = j
				changed++
			}
		}

		for j := range sums {
			for c := range sums[j] {
				sums[j][c] = 0
			}
			counts[j] = 0
		}
		for i, row := range rows {
			floats.Add(sums[labels[i]], row)
			counts[labels[i]]++
		}
		var shift float64
		for j := range centers {
			if counts[j] == 0 {
				continue
			}
			floats.Scale(1/float64(counts[j]), sums[j])
			shift += sqDist(centers[j], sums[j])
			copy(centers[j], sums[j])
		}
		if changed == 0 || shift <= tol {
			break
		}
	}

	// Final assignment against the converged centers.
	for i, row := range rows {
		labels[i] = nearest(row, centers)
	}
	return &run{
		labels:     labels,
		centers:    centers,
		inertia:    inertia(rows, labels, centers),
		iterations: iter,
	}
}

// nearest returns the index of the closest center; ties go to the lowest index.
func nearest(row []float64, centers [][]float64) int {
	best, bestD := 0, math.Inf(1)
	for j, c := range centers {
		if d := sqDist(row, c); d < bestD {
			best, bestD = j, d
		}
	}
	return best
}

func sqDist(a, b []float64) float64 {
	var s float64
	for i := range a {
		d := a[i] - b[i]
		s += d * d
	}
	return s
}

func inertia(rows [][]float64, labels []int, centers [][]float64) float64 {
	var s float64
	for i, row := range rows {
		s += sqDist(row, centers[labels[i]])
	}
	return s
}

func clusterSizes(labels []int, k int) []int {
	sizes := make([]int, k)
	for _, l := range labels {
		sizes[l]++
	}
	return sizes
}

// dropEmpty removes centers without rows and remaps labels densely,
// preserving center order.
func dropEmpty(labels []int, centers [][]float64) ([]int, [][]float64) {
	sizes := clusterSizes(labels, len(centers))
	remap := make([]int, len(centers))
	kept := make([][]float64, 0, len(centers))
	for j, s := range sizes {
		if s == 0 {
			remap[j] = -1
			continue
		}
		remap[j] = len(kept)
		kept = append(kept, centers[j])
	}
	out := make([]int, len(labels))
	for i, l := range labels {
		out[i] = remap[l]
	}
	return out, kept
}

// renumber rewrites labels in place in order of first appearance and
// returns the number of distinct labels.
func renumber(labels []int) int {
	next := make(map[int]int)
	for i, l := range labels {
		id, ok := next[l]
		if !ok {
			id = len(next)
			next[l] = id
		}
		labels[i] = id
	}
	return len(next)
}

// centroids recomputes the mean row of every cluster.
func centroids(rows [][]float64, labels []int, k int) [][]float64 {
	out := make([][]float64, k)
	for j := range out {
		out[j] = make([]float64, len(rows[0]))
	}
	counts := clusterSizes(labels, k)
	for i, row := range rows {
		floats.Add(out[labels[i]], row)
	}
	for j := range out {
		floats.Scale(1/float64(counts[j]), out[j])
	}
	return out
}

func toDense(rows [][]float64) *mat.Dense {
	d := len(rows[0])
	data := make([]float64, 0, len(rows)*d)
	for _, r := range rows {
		data = append(data, r...)
	}
	return mat.NewDense(len(rows), d, data)
}
