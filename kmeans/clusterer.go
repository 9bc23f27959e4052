// SPDX-License-Identifier: MIT

package kmeans

import "gonum.org/v1/gonum/mat"

// Clusterer adapts Fit to a labels-only contract: Cluster(x, k, seed).
// A nil Config uses DefaultConfig; a non-nil Config is used as given, so an
// explicit Consolidate=false is honoured. K and Seed in Config are ignored
// and replaced by the call arguments.
type Clusterer struct {
	Config *Config
}

// Cluster runs Fit with the given k and seed and returns one label per row.
func (c Clusterer) Cluster(x *mat.Dense, k int, seed int64) ([]int, error) {
	cfg := DefaultConfig()
	if c.Config != nil {
		cfg = *c.Config
	}
	cfg.K = k
	cfg.Seed = seed

	res, err := Fit(x, cfg)
	if err != nil {
		return nil, err
	}
	return res.Labels, nil
}
