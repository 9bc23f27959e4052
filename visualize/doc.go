// SPDX-License-Identifier: MIT

// Package visualize draws distributions held in an adata.AnnData.
//
// Histogram plots one feature (a column of the primary matrix or a layer) or
// one observation metadata column, optionally split by a second observation
// column. Numeric data is binned on edges shared by every group; string
// columns are drawn as one bar per category. With grouping, groups are either
// overlaid on one axes (Together, the default) or fanned out to one axes each.
//
// Validation errors carry fixed, user-facing messages:
//
//	Cannot pass both feature_name and observation_name, choose one
//	Must pass either feature_name or observation_name
//	feature_name not found in adata
//	observation_name not found in adata
//	group_by not found in adata
//
// The unknown-name errors also match adata.ErrUnknownFeature and
// adata.ErrUnknownObservation under errors.Is. The container is only read.
package visualize
