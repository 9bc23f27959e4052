// SPDX-License-Identifier: MIT

package cmd

import (
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/cellscope/config"
	"github.com/katalvlaran/cellscope/dataio"
	"github.com/katalvlaran/cellscope/transform"
)

type kmeansFlags struct {
	inputs
	out    string
	unsOut string
}

func newKMeansCommand(a *app) *cobra.Command {
	f := &kmeansFlags{}
	c := &cobra.Command{
		Use:   "kmeans",
		Short: "Assign k-means cluster labels to observations",
		Long: `Cluster the observations on the selected features (or an associated
table) and write the obs table, including the new label column, as CSV.

Examples:
  cellscope kmeans --matrix x.csv --features gene1,gene2 --k 5 --seed 42
  cellscope kmeans --matrix x.csv --load-layer counts=counts.csv --layer counts --out obs.csv
  cellscope kmeans --matrix x.csv --load-obsm pca=pca.csv --table pca --uns-out uns.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error { return a.runKMeans(cmd, f) },
	}

	fs := c.Flags()
	f.register(fs)
	fs.StringVar(&f.out, "out", "-", "obs table CSV output (- for stdout)")
	fs.StringVar(&f.unsOut, "uns-out", "", "write the unstructured store as YAML")
	fs.String("features", "", "comma separated features (default: all)")
	fs.String("layer", "", "layer to cluster (default: primary matrix)")
	fs.String("table", "", "associated table to cluster instead of features")
	fs.String("k", "3", "number of clusters")
	fs.Int64("seed", 0, "random seed (default: drawn per run)")
	fs.String("output", transform.DefaultOutputAnnotation, "obs column receiving the labels")
	fs.Int("max-iter", 300, "Lloyd iterations per restart")
	fs.Int("n-init", 4, "k-means restarts")
	fs.String("init", "k-means++", "seeding: k-means++ or random")
	fs.Bool("consolidate", true, "merge over-split clusters")
	_ = c.MarkFlagRequired("matrix")

	a.bind(fs, map[string]string{
		config.KeyFeatures:    "features",
		config.KeyLayer:       "layer",
		config.KeyTable:       "table",
		config.KeyK:           "k",
		config.KeySeed:        "seed",
		config.KeyOutput:      "output",
		config.KeyMaxIter:     "max-iter",
		config.KeyNInit:       "n-init",
		config.KeyInit:        "init",
		config.KeyConsolidate: "consolidate",
	})
	return c
}

func (a *app) runKMeans(cmd *cobra.Command, f *kmeansFlags) error {
	ad, err := f.load()
	if err != nil {
		return err
	}

	opts := append(a.cfg.KMeans.Options(), transform.WithLogger(a.log), transform.WithObserver(a.rec))
	res, err := transform.KMeans(ad, opts...)
	if err != nil {
		return err
	}
	a.log.Info("clustering finished",
		zap.String("annotation", res.Annotation),
		zap.Int("k", res.K),
		zap.Int("clusters", res.Clusters),
		zap.Int64("seed", res.Seed),
		zap.Stringer("provenance", res.Provenance))

	if err = createOr(f.out, cmd.OutOrStdout(), func(w io.Writer) error { return dataio.WriteObs(w, ad.Obs()) }); err != nil {
		return err
	}
	if f.unsOut != "" {
		return createOr(f.unsOut, cmd.OutOrStdout(), func(w io.Writer) error { return dataio.WriteUns(w, ad) })
	}
	return nil
}
