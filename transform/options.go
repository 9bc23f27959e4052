// SPDX-License-Identifier: MIT

// Package transform: functional configuration for KMeans/Assign.
// This file defines:
//   - Option / Options (functional options with unexported state),
//   - documented defaults (constants),
//   - WithX constructors,
//   - gatherOptions helper that applies defaults then setters in order.
//
// Unlike constructors that panic on nonsensical values, WithK and
// WithOutputAnnotation only record their argument: an invalid k or name is
// user input here, so KMeans reports it as ErrInvalidParameter before any
// computation or mutation.
package transform

import (
	"slices"

	"go.uber.org/zap"

	"github.com/katalvlaran/cellscope/kmeans"
)

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultK is the cluster count used when WithK is not given.
	DefaultK = 3

	// DefaultOutputAnnotation is the obs column written when
	// WithOutputAnnotation is not given.
	DefaultOutputAnnotation = "kmeans"

	// FeaturesSuffix is appended to the output annotation to form the uns
	// key holding the feature provenance.
	FeaturesSuffix = "_features"

	// ParamsSuffix is appended to the output annotation to form the uns key
	// holding the run parameters (k, seed, seeded, clusters).
	ParamsSuffix = "_params"
)

// Option mutates Options. Options are applied in order; later ones win.
type Option func(*Options)

// Options holds the effective configuration of one clustering call.
type Options struct {
	features  []string // nil ⇒ every feature in var order
	layer     string   // "" ⇒ primary matrix
	table     string   // non-empty ⇒ associated table, overrides features/layer
	k         int      // DefaultK
	seed      int64
	seeded    bool // false ⇒ a fresh seed is drawn per call
	output    string
	clusterer Clusterer
	logger    *zap.Logger
	observer  Observer
}

func defaultOptions() Options {
	return Options{
		k:         DefaultK,
		output:    DefaultOutputAnnotation,
		clusterer: kmeans.Clusterer{},
		logger:    zap.NewNop(),
	}
}

func gatherOptions(opts ...Option) Options {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// selection returns the FeatureSelection described by the options.
func (o Options) selection() Selection {
	return Selection{Features: o.features, Layer: o.layer, AssociatedTable: o.table}
}

// ---------- Constructors (WithX) ----------

// WithFeatures restricts clustering to the named features, in the given order.
// Calling it with no names is an explicit empty selection and is rejected.
func WithFeatures(names ...string) Option {
	cp := slices.Clone(names)
	if cp == nil {
		cp = []string{}
	}
	return func(o *Options) { o.features = cp }
}

// WithAllFeatures resets the selection to every feature in var order.
func WithAllFeatures() Option {
	return func(o *Options) { o.features = nil }
}

// WithLayer selects a layer as the source matrix; "" selects the primary matrix.
func WithLayer(name string) Option {
	return func(o *Options) { o.layer = name }
}

// WithAssociatedTable selects an associated (obsm) table as the source.
// It takes precedence over WithFeatures and WithLayer.
func WithAssociatedTable(name string) Option {
	return func(o *Options) { o.table = name }
}

// WithK sets the number of clusters. Must be > 0; checked by KMeans.
// Use ParseK for loosely typed input.
func WithK(k int) Option {
	return func(o *Options) { o.k = k }
}

// WithSeed fixes the seed; identical (matrix, k, seed) give identical labels.
func WithSeed(seed int64) Option {
	return func(o *Options) {
		o.seed = seed
		o.seeded = true
	}
}

// WithOutputAnnotation names the obs column receiving the labels.
func WithOutputAnnotation(name string) Option {
	return func(o *Options) { o.output = name }
}

// WithClusterer replaces the clustering collaborator (default kmeans.Clusterer{}).
// A nil clusterer keeps the default.
func WithClusterer(c Clusterer) Option {
	return func(o *Options) {
		if c != nil {
			o.clusterer = c
		}
	}
}

// WithLogger attaches a logger; the package logs at Debug level only.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithObserver attaches an observer notified after every call.
func WithObserver(obs Observer) Option {
	return func(o *Options) { o.observer = obs }
}
