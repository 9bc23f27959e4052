// SPDX-License-Identifier: MIT

package kmeans

import (
	"math"
	"slices"
)

// consolidate merges fitted clusters that are not separated from each other
// and returns, for every center, the id of its group (the lowest center id
// in the group).
//
// The separation of clusters A and B is their Ward cost
// |A||B|/(|A|+|B|)·‖cA−cB‖², the increase of within-cluster sum of squares
// caused by joining them, divided by the within-cluster sum of squares they
// already hold. That denominator is floored at (|A|+|B|) times the pooled
// per-row spread of all clusters, so singletons are compared on the data's
// own scale.
//
// Agglomeration: repeatedly join the least separated pair while its
// separation is below minRatio. Two halves of one blob score around 1; blobs
// many standard deviations apart score in the tens or more, so they are
// never joined no matter how many clusters were asked for.
//
// sizes and sse are per cluster; centers are not modified.
func consolidate(centers [][]float64, sizes []int, sse []float64, minRatio float64) []int {
	m := len(centers)
	parent := make([]int, m)
	for i := range parent {
		parent[i] = i
	}
	if m < 2 {
		return parent
	}

	cs := make([][]float64, m)
	ws := make([]float64, m)
	ss := slices.Clone(sse)
	active := make([]int, m)
	var total, rows float64
	for i := range centers {
		cs[i] = slices.Clone(centers[i])
		ws[i] = float64(sizes[i])
		active[i] = i
		total += sse[i]
		rows += ws[i]
	}
	pooled := total / rows

	for len(active) > 1 {
		bp, bq, best := -1, -1, math.Inf(1)
		for a := 0; a < len(active); a++ {
			p := active[a]
			for b := a + 1; b < len(active); b++ {
				q := active[b]
				if r := separation(cs[p], cs[q], ws[p], ws[q], ss[p]+ss[q], pooled); r < best {
					bp, bq, best = a, b, r
				}
			}
		}
		if bp < 0 || best >= minRatio {
			break
		}

		p, q := active[bp], active[bq]
		cost := wardCost(cs[p], cs[q], ws[p], ws[q])
		w := ws[p] + ws[q]
		for d := range cs[p] {
			cs[p][d] = (ws[p]*cs[p][d] + ws[q]*cs[q][d]) / w
		}
		ws[p] = w
		ss[p] += ss[q] + cost
		parent[q] = p
		active = slices.Delete(active, bq, bq+1)
	}

	groups := make([]int, m)
	for i := range groups {
		groups[i] = root(parent, i)
	}
	return groups
}

func wardCost(a, b []float64, wa, wb float64) float64 {
	return wa * wb / (wa + wb) * sqDist(a, b)
}

// separation is the Ward cost of joining two clusters over their floored
// within-cluster sum of squares. Zero spread with a positive cost is +Inf.
func separation(a, b []float64, wa, wb, within, pooled float64) float64 {
	cost := wardCost(a, b, wa, wb)
	within = math.Max(within, (wa+wb)*pooled)
	if within <= 0 {
		if cost == 0 {
			return 0
		}
		return math.Inf(1)
	}
	return cost / within
}

func root(parent []int, i int) int {
	for parent[i] != i {
		i = parent[i]
	}
	return i
}

// clusterSSE returns the within-cluster sum of squares of every cluster
// around the given means.
func clusterSSE(rows [][]float64, labels []int, means [][]float64) []float64 {
	out := make([]float64, len(means))
	for i, row := range rows {
		out[labels[i]] += sqDist(row, means[labels[i]])
	}
	return out
}
