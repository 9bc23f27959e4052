// Package cellscope clusters and plots annotated single-cell matrices.
//
// What is an annotated matrix?
//
//	A primary n_obs × n_var matrix (cells × markers) plus:
//		• obs / var tables: typed metadata per observation and per feature
//		• layers: alternative matrices of the same shape (raw counts, …)
//		• obsm: per-observation tables of any width (PCA, derived features)
//		• uns: an unstructured key/value store for provenance and parameters
//
// What can you do with it?
//
//   - Clustering: transform.KMeans labels observations from a feature
//     subset, a layer or an obsm table, and records which inputs were used.
//   - Reproducibility: the seed is an explicit parameter; an unseeded run
//     records the seed it drew, so every result can be replayed.
//   - Plotting: visualize.Histogram draws a feature or an obs column,
//     optionally split by a group column, onto plot figures rendered to PNG.
//
// Packages:
//
//	adata/     : AnnData container and typed tables
//	kmeans/    : seeded k-means++ / Lloyd with Ward consolidation
//	transform/ : feature resolution and the clustering step
//	plot/      : figure/axes model, binning and PNG rendering
//	visualize/ : histograms of AnnData features and metadata
//	dataio/    : CSV and YAML import/export
//	config/    : viper-backed settings with validation
//	logging/   : zap logger construction
//	metrics/   : Prometheus observers for clustering and plotting
//	cmd/cellscope : the command-line front end
//
// Quick example:
//
//	ad, _ := adata.New(x, cells, []string{"gene1", "gene2"})
//	res, _ := transform.KMeans(ad,
//		transform.WithFeatures("gene1", "gene2"),
//		transform.WithK(5),
//		transform.WithSeed(42))
//	fig, _, _ := visualize.Histogram(ad, visualize.HistogramRequest{
//		ObservationName: res.Annotation,
//	})
//	_ = fig.SavePNG("clusters.png")
//
//	go get github.com/katalvlaran/cellscope
package cellscope
