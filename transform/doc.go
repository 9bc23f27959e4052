// SPDX-License-Identifier: MIT

// Package transform resolves feature selections on an AnnData and assigns
// clusters to its observations.
//
// Resolve picks exactly one numeric matrix: an associated (obsm) table when
// one is named, otherwise the requested features (all by default) of a layer
// or of the primary matrix. KMeans chains Resolve with Assign, which calls a
// Clusterer (kmeans.Clusterer by default) and writes
//
//	obs[output]                 : one int label per observation
//	uns[output + "_features"]   : []string features, or the table name
//	uns[output + "_params"]     : k, seed, seeded, clusters
//
// with output defaulting to "kmeans" and k to 3. Validation always precedes
// mutation: a failed call leaves the container untouched.
//
// Reproducibility is explicit: WithSeed threads the seed into the clusterer.
// Without it a fresh seed is drawn for the call and recorded in the params
// entry so the run can be replayed.
package transform
