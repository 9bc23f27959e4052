// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/cellscope/config"
	"github.com/katalvlaran/cellscope/visualize"
)

type histogramFlags struct {
	inputs
	feature     string
	observation string
	groupBy     string
	layer       string
	png         string
}

func newHistogramCommand(a *app) *cobra.Command {
	f := &histogramFlags{}
	c := &cobra.Command{
		Use:   "histogram",
		Short: "Draw a feature or observation histogram to PNG",
		Long: `Draw the distribution of one feature or one obs column, optionally split
by another obs column, and save it as PNG.

Examples:
  cellscope histogram --matrix x.csv --feature marker1 --png marker1.png
  cellscope histogram --matrix x.csv --obs obs.csv --observation obs1 --png obs1.png
  cellscope histogram --matrix x.csv --obs obs.csv --feature marker1 --group-by obs2 --together=false --png split.png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error { return a.runHistogram(cmd, f) },
	}

	fs := c.Flags()
	f.register(fs)
	fs.StringVar(&f.feature, "feature", "", "feature to plot")
	fs.StringVar(&f.observation, "observation", "", "obs column to plot")
	fs.StringVar(&f.groupBy, "group-by", "", "obs column splitting the observations")
	fs.StringVar(&f.layer, "layer", "", "layer holding the feature (default: primary matrix)")
	fs.StringVar(&f.png, "png", "", "output PNG path")
	fs.Int("bins", visualize.DefaultBins, "number of bins for numeric data")
	fs.Bool("together", visualize.DefaultTogether, "overlay groups on one axes")
	_ = c.MarkFlagRequired("matrix")
	_ = c.MarkFlagRequired("png")

	a.bind(fs, map[string]string{
		config.KeyBins:     "bins",
		config.KeyTogether: "together",
	})
	return c
}

func (a *app) runHistogram(cmd *cobra.Command, f *histogramFlags) error {
	ad, err := f.load()
	if err != nil {
		return err
	}

	req := a.cfg.Histogram.Request()
	req.FeatureName = f.feature
	req.ObservationName = f.observation
	req.GroupBy = f.groupBy
	req.Layer = f.layer

	fig, axes, err := visualize.Histogram(ad, req, visualize.WithLogger(a.log), visualize.WithObserver(a.rec))
	if err != nil {
		return err
	}
	if err = fig.SavePNG(f.png); err != nil {
		return err
	}
	a.log.Info("histogram saved", zap.String("path", f.png), zap.Int("axes", len(axes)))
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s: %d axes\n", f.png, len(axes))
	return err
}
