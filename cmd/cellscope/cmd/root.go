// SPDX-License-Identifier: MIT

// Package cmd holds the cobra commands of the cellscope CLI.
package cmd

import (
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/katalvlaran/cellscope/config"
	"github.com/katalvlaran/cellscope/logging"
	"github.com/katalvlaran/cellscope/metrics"
)

// Version is set at build time.
var Version = "0.1.0"

// app is the state shared by every command of one invocation.
type app struct {
	v       *viper.Viper
	cfgFile string

	cfg *config.Config
	log *zap.Logger
	reg *prometheus.Registry
	rec *metrics.Recorder
}

// NewRootCommand builds the command tree writing to out and errOut.
func NewRootCommand(out, errOut io.Writer) *cobra.Command {
	a := &app{v: config.New(), log: zap.NewNop()}

	root := &cobra.Command{
		Use:   "cellscope",
		Short: "Cluster and plot annotated single-cell matrices",
		Long: `cellscope reads an annotated matrix from CSV files, assigns k-means
cluster labels to its observations and draws feature or metadata histograms.

Commands:
  kmeans     - label observations and write the obs table
  histogram  - draw a histogram to PNG

Settings come from flags, CELLSCOPE_* environment variables and an optional
config file, in that order of precedence.

Example:
  cellscope kmeans --matrix x.csv --features gene1,gene2 --k 5 --seed 42
  cellscope histogram --matrix x.csv --obs obs.csv --feature marker1 --group-by obs2 --png out.png`,
		Version:            Version,
		SilenceUsage:       true,
		PersistentPreRunE:  a.setup,
		PersistentPostRunE: a.teardown,
	}
	root.SetOut(out)
	root.SetErr(errOut)

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (yaml, toml or json)")
	pf.String("log-level", "info", "log level: debug, info, warn, error")
	pf.String("log-format", logging.FormatJSON, "log format: json or console")
	pf.String("metrics-file", "", "write Prometheus metrics to this file on exit")
	a.bind(pf, map[string]string{
		config.KeyLogLevel:    "log-level",
		config.KeyLogFormat:   "log-format",
		config.KeyMetricsFile: "metrics-file",
	})

	root.AddCommand(newKMeansCommand(a), newHistogramCommand(a))
	return root
}

// Execute runs the CLI on the process streams.
func Execute() error {
	return NewRootCommand(os.Stdout, os.Stderr).Execute()
}

// bind maps config keys to flags of fs.
func (a *app) bind(fs *pflag.FlagSet, keys map[string]string) {
	for key, flag := range keys {
		if err := a.v.BindPFlag(key, fs.Lookup(flag)); err != nil {
			panic(err) // flag names are static
		}
	}
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = logging.New(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: cmd.ErrOrStderr()})
	a.reg = prometheus.NewRegistry()
	if a.rec, err = metrics.New(a.reg); err != nil {
		return err
	}
	a.log.Debug("configuration loaded", zap.String("command", cmd.Name()), zap.String("config_file", a.cfgFile))
	return nil
}

func (a *app) teardown(_ *cobra.Command, _ []string) error {
	defer func() { _ = a.log.Sync() }()
	if a.cfg.MetricsFile == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(a.cfg.MetricsFile, a.reg); err != nil {
		return err
	}
	a.log.Debug("metrics written", zap.String("path", a.cfg.MetricsFile))
	return nil
}
