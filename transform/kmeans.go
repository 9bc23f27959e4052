// SPDX-License-Identifier: MIT

package transform

import (
	"fmt"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/cellscope/adata"
)

// KMeans clusters the observations of ad and records the result in place.
//
// Pipeline:
//  1. Validate k (> 0) and the output annotation (non-empty) ⇒ ErrInvalidParameter.
//  2. Resolve the source matrix (associated table, or features over a
//     layer/the primary matrix); resolution errors are returned unchanged.
//  3. Assign: run the clusterer with (matrix, k, seed) and write
//     obs[output] plus uns[output+"_features"] and uns[output+"_params"].
//
// Nothing is written unless every step succeeds. An existing obs column or
// uns entry with the same name is overwritten.
//
// Example:
//
//	res, err := transform.KMeans(ad,
//		transform.WithFeatures("gene1", "gene2"),
//		transform.WithLayer("counts"),
//		transform.WithSeed(42))
func KMeans(ad *adata.AnnData, opts ...Option) (*Result, error) {
	o := gatherOptions(opts...)
	start := time.Now()

	res, err := runKMeans(ad, o)
	notify(ad, o, res, err, time.Since(start))
	return res, err
}

func runKMeans(ad *adata.AnnData, o Options) (*Result, error) {
	if ad == nil {
		return nil, ErrNilData
	}
	if err := validateParams(o); err != nil {
		return nil, err
	}
	x, prov, err := Resolve(ad, o.selection())
	if err != nil {
		return nil, err
	}
	return assign(ad, x, prov, o)
}

// Assign clusters an already resolved matrix x and writes the labels and
// provenance into ad. It is the second half of KMeans, for callers that
// resolve matrices themselves; x must have one row per observation.
// Selection options (WithFeatures, WithLayer, WithAssociatedTable) are ignored.
func Assign(ad *adata.AnnData, x *mat.Dense, prov Provenance, opts ...Option) (*Result, error) {
	o := gatherOptions(opts...)
	start := time.Now()

	res, err := func() (*Result, error) {
		if ad == nil {
			return nil, ErrNilData
		}
		if err := validateParams(o); err != nil {
			return nil, err
		}
		if x == nil || x.IsEmpty() {
			return nil, adata.ErrNilMatrix
		}
		if r, _ := x.Dims(); r != ad.NObs() {
			return nil, fmt.Errorf("matrix has %d rows, AnnData has %d observations: %w", r, ad.NObs(), adata.ErrShapeMismatch)
		}
		return assign(ad, x, prov, o)
	}()
	notify(ad, o, res, err, time.Since(start))
	return res, err
}

func validateParams(o Options) error {
	if o.k <= 0 {
		return fmt.Errorf("k=%d must be a positive integer: %w", o.k, ErrInvalidParameter)
	}
	if o.output == "" {
		return fmt.Errorf("empty output annotation: %w", ErrInvalidParameter)
	}
	return nil
}

func assign(ad *adata.AnnData, x *mat.Dense, prov Provenance, o Options) (*Result, error) {
	seed := o.seed
	if !o.seeded {
		seed = rand.Int64()
	}
	o.logger.Debug("clustering",
		zap.String("annotation", o.output),
		zap.Int("k", o.k),
		zap.Int64("seed", seed),
		zap.Bool("seeded", o.seeded),
		zap.Stringer("provenance", prov))

	labels, err := o.clusterer.Cluster(x, o.k, seed)
	if err != nil {
		return nil, fmt.Errorf("cluster %q: %w", o.output, err)
	}
	clusters, err := checkLabels(labels, ad.NObs(), o.k)
	if err != nil {
		return nil, err
	}

	// Shape was checked above and validateParams rejects an empty output
	// name, so none of these writes can fail after the first succeeds.
	if err = ad.Obs().SetInt(o.output, labels); err != nil {
		return nil, err
	}
	if err = ad.SetUns(o.output+FeaturesSuffix, prov.Value()); err != nil {
		return nil, err
	}
	if err = ad.SetUns(o.output+ParamsSuffix, map[string]any{
		"k":        o.k,
		"seed":     seed,
		"seeded":   o.seeded,
		"clusters": clusters,
	}); err != nil {
		return nil, err
	}

	o.logger.Debug("clustering done",
		zap.String("annotation", o.output),
		zap.Int("clusters", clusters))

	return &Result{
		Annotation: o.output,
		Labels:     labels,
		K:          o.k,
		Seed:       seed,
		Seeded:     o.seeded,
		Provenance: prov,
		Clusters:   clusters,
	}, nil
}

// checkLabels verifies length and range and returns the distinct label count.
func checkLabels(labels []int, n, k int) (int, error) {
	if len(labels) != n {
		return 0, fmt.Errorf("%d labels for %d observations: %w", len(labels), n, ErrClusterer)
	}
	seen := make([]bool, k)
	distinct := 0
	for i, l := range labels {
		if l < 0 || l >= k {
			return 0, fmt.Errorf("label %d at row %d outside [0,%d): %w", l, i, k, ErrClusterer)
		}
		if !seen[l] {
			seen[l] = true
			distinct++
		}
	}
	return distinct, nil
}

func notify(ad *adata.AnnData, o Options, res *Result, err error, d time.Duration) {
	if o.observer == nil {
		return
	}
	ev := ClusterEvent{Annotation: o.output, K: o.k, Duration: d, Err: err}
	if ad != nil {
		ev.Observations = ad.NObs()
	}
	if res != nil {
		ev.Clusters = res.Clusters
	}
	o.observer.ObserveClustering(ev)
}
