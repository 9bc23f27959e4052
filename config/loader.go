// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/viper"

	"github.com/katalvlaran/cellscope/kmeans"
	"github.com/katalvlaran/cellscope/logging"
	"github.com/katalvlaran/cellscope/transform"
	"github.com/katalvlaran/cellscope/visualize"
)

// EnvPrefix prefixes environment overrides: kmeans.k ⇒ CELLSCOPE_KMEANS_K.
const EnvPrefix = "CELLSCOPE"

// Keys understood by Load.
const (
	KeyLogLevel        = "log.level"
	KeyLogFormat       = "log.format"
	KeyMetricsFile     = "metrics_file"
	KeyK               = "kmeans.k"
	KeySeed            = "kmeans.seed"
	KeyOutput          = "kmeans.output"
	KeyFeatures        = "kmeans.features"
	KeyLayer           = "kmeans.layer"
	KeyTable           = "kmeans.table"
	KeyMaxIter         = "kmeans.max_iter"
	KeyNInit           = "kmeans.n_init"
	KeyTol             = "kmeans.tol"
	KeyInit            = "kmeans.init"
	KeyConsolidate     = "kmeans.consolidate"
	KeySeparationRatio = "kmeans.separation_ratio"
	KeyBins            = "histogram.bins"
	KeyTogether        = "histogram.together"
)

// New returns a viper instance with defaults and environment overrides set.
// kmeans.seed has no default: leaving it unset draws a fresh seed per run.
func New() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, logging.FormatJSON)
	v.SetDefault(KeyMetricsFile, "")

	v.SetDefault(KeyK, transform.DefaultK)
	v.SetDefault(KeyOutput, transform.DefaultOutputAnnotation)
	v.SetDefault(KeyLayer, "")
	v.SetDefault(KeyTable, "")
	v.SetDefault(KeyMaxIter, kmeans.DefaultMaxIter)
	v.SetDefault(KeyNInit, kmeans.DefaultNInit)
	v.SetDefault(KeyTol, kmeans.DefaultTol)
	v.SetDefault(KeyInit, kmeans.KMeansPlusPlus.String())
	v.SetDefault(KeyConsolidate, kmeans.DefaultConsolidate)
	v.SetDefault(KeySeparationRatio, kmeans.DefaultSeparationRatio)

	v.SetDefault(KeyBins, visualize.DefaultBins)
	v.SetDefault(KeyTogether, visualize.DefaultTogether)
}

// Load reads file (when non-empty) into v, assembles a Config and validates it.
func Load(v *viper.Viper, file string) (*Config, error) {
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("%w: read %s: %w", ErrInvalidConfig, file, err)
		}
	}

	var cfg Config
	cfg.Log.Level = strings.ToLower(v.GetString(KeyLogLevel))
	cfg.Log.Format = strings.ToLower(v.GetString(KeyLogFormat))
	cfg.MetricsFile = v.GetString(KeyMetricsFile)

	k, err := transform.ParseK(v.Get(KeyK))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, KeyK, err)
	}
	cfg.KMeans.K = k
	if v.IsSet(KeySeed) {
		seed, err := cast.ToInt64E(v.Get(KeySeed))
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, KeySeed, err)
		}
		cfg.KMeans.Seed, cfg.KMeans.Seeded = seed, true
	}
	cfg.KMeans.Output = v.GetString(KeyOutput)
	cfg.KMeans.Features = stringList(v.Get(KeyFeatures))
	cfg.KMeans.Layer = v.GetString(KeyLayer)
	cfg.KMeans.Table = v.GetString(KeyTable)
	cfg.KMeans.MaxIter = v.GetInt(KeyMaxIter)
	cfg.KMeans.NInit = v.GetInt(KeyNInit)
	cfg.KMeans.Tol = v.GetFloat64(KeyTol)
	cfg.KMeans.Init = v.GetString(KeyInit)
	cfg.KMeans.Consolidate = v.GetBool(KeyConsolidate)
	cfg.KMeans.SeparationRatio = v.GetFloat64(KeySeparationRatio)

	cfg.Histogram.Bins = v.GetInt(KeyBins)
	cfg.Histogram.Together = v.GetBool(KeyTogether)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return &cfg, nil
}

// stringList accepts a YAML list or a comma separated string (flags, env).
func stringList(raw any) []string {
	var parts []string
	if s, ok := raw.(string); ok {
		parts = strings.Split(s, ",")
	} else {
		parts = cast.ToStringSlice(raw)
	}
	var out []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
