// SPDX-License-Identifier: MIT

// Package kmeans implements seeded k-means clustering over the rows of a
// gonum matrix.
//
// Fit runs k-means++ (or random) seeding followed by Lloyd iterations,
// repeated NInit times on streams derived from Config.Seed; the restart with
// the lowest inertia wins. Everything is deterministic for a fixed seed:
// identical inputs give bit-identical labels.
//
// K is an upper bound. Clusters that end up empty are dropped, and the
// optional consolidation pass (on by default) joins clusters whose Ward
// merge cost is below SeparationRatio times their own within-cluster sum of
// squares. Halves of one group are joined, separated groups never are, so
// on data made of a few well-separated groups this recovers the groups even
// when K is far larger:
//
//	cfg := kmeans.DefaultConfig()
//	cfg.K = 50
//	cfg.Seed = 42
//	res, err := kmeans.Fit(x, cfg)
//	// two separated blobs ⇒ res.Clusters == 2
//
// Set Consolidate=false for plain k-means with up to K clusters.
//
// Errors: ErrEmptyInput, ErrInvalidK, ErrNaNInf, ErrBadConfig.
package kmeans
