// SPDX-License-Identifier: MIT

package kmeans

import (
	"math/rand"
	"slices"

	"gonum.org/v1/gonum/floats"
)

// seedPlusPlus picks up to k centers with k-means++ (D² sampling).
// Rows already covered by a center (D² == 0) are never drawn again, so the
// result holds min(k, distinct rows) centers. Returned centers are copies.
func seedPlusPlus(rows [][]float64, k int, rng *rand.Rand) [][]float64 {
	n := len(rows)
	centers := make([][]float64, 0, k)
	first := rng.Intn(n)
	centers = append(centers, slices.Clone(rows[first]))

	d2 := make([]float64, n)
	for i, row := range rows {
		d2[i] = sqDist(row, centers[0])
	}

	for len(centers) < k {
		total := floats.Sum(d2)
		if total <= 0 {
			break
		}
		target := rng.Float64() * total
		pick, last := -1, -1
		var acc float64
		for i, d := range d2 {
			if d <= 0 {
				continue
			}
			last = i
			acc += d
			if acc > target {
				pick = i
				break
			}
		}
		if pick < 0 {
			// Rounding left target just above the running sum.
			pick = last
		}
		c := slices.Clone(rows[pick])
		centers = append(centers, c)
		for i, row := range rows {
			if d := sqDist(row, c); d < d2[i] {
				d2[i] = d
			}
		}
	}
	return centers
}

// seedRandom picks up to k distinct rows uniformly at random.
func seedRandom(rows [][]float64, k int, rng *rand.Rand) [][]float64 {
	centers := make([][]float64, 0, k)
	for _, i := range rng.Perm(len(rows)) {
		if len(centers) == k {
			break
		}
		dup := false
		for _, c := range centers {
			if floats.Equal(c, rows[i]) {
				dup = true
				break
			}
		}
		if !dup {
			centers = append(centers, slices.Clone(rows[i]))
		}
	}
	return centers
}
