// SPDX-License-Identifier: MIT

// Package config loads cellscope run settings from defaults, an optional
// YAML/TOML/JSON file, CELLSCOPE_* environment variables and bound flags
// (highest precedence last), then validates them.
package config

import (
	"github.com/katalvlaran/cellscope/kmeans"
	"github.com/katalvlaran/cellscope/transform"
	"github.com/katalvlaran/cellscope/visualize"
)

// Config is the validated run configuration.
type Config struct {
	Log         LogConfig
	MetricsFile string
	KMeans      KMeansConfig
	Histogram   HistogramConfig
}

// LogConfig selects the logger.
type LogConfig struct {
	Level  string `validate:"oneof=debug info warn error"`
	Format string `validate:"oneof=json console"`
}

// KMeansConfig mirrors the transform and kmeans options.
type KMeansConfig struct {
	K        int `validate:"gt=0"`
	Seed     int64
	Seeded   bool
	Output   string `validate:"required"`
	Features []string
	Layer    string
	Table    string

	MaxIter         int     `validate:"gt=0"`
	NInit           int     `validate:"gt=0"`
	Tol             float64 `validate:"gte=0"`
	Init            string  `validate:"oneof=k-means++ random"`
	Consolidate     bool
	SeparationRatio float64 `validate:"gt=1"`
}

// HistogramConfig holds histogram defaults.
type HistogramConfig struct {
	Bins     int `validate:"gt=0"`
	Together bool
}

// Clusterer returns the kmeans collaborator configured by c.
func (c KMeansConfig) Clusterer() kmeans.Clusterer {
	cfg := kmeans.DefaultConfig()
	cfg.MaxIter = c.MaxIter
	cfg.NInit = c.NInit
	cfg.Tol = c.Tol
	cfg.Consolidate = c.Consolidate
	cfg.SeparationRatio = c.SeparationRatio
	if c.Init == kmeans.Random.String() {
		cfg.Init = kmeans.Random
	}
	return kmeans.Clusterer{Config: &cfg}
}

// Options returns the transform options described by c. A nil Features
// list selects every feature.
func (c KMeansConfig) Options() []transform.Option {
	opts := []transform.Option{
		transform.WithK(c.K),
		transform.WithOutputAnnotation(c.Output),
		transform.WithLayer(c.Layer),
		transform.WithAssociatedTable(c.Table),
		transform.WithClusterer(c.Clusterer()),
	}
	if len(c.Features) > 0 {
		opts = append(opts, transform.WithFeatures(c.Features...))
	}
	if c.Seeded {
		opts = append(opts, transform.WithSeed(c.Seed))
	}
	return opts
}

// Request returns a histogram request carrying the configured defaults.
func (c HistogramConfig) Request() visualize.HistogramRequest {
	return visualize.HistogramRequest{Bins: c.Bins, Together: visualize.Bool(c.Together)}
}
