// SPDX-License-Identifier: MIT
package transform_test

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/cellscope/adata"
	"github.com/katalvlaran/cellscope/transform"
)

// TestKMeans_SameSeedSameAssignments runs twice with seed=42, deleting the
// annotation in between, and expects identical labels.
func TestKMeans_SameSeedSameAssignments(t *testing.T) {
	ad := uniformData(t)
	opts := []transform.Option{
		transform.WithFeatures("gene1", "gene2"),
		transform.WithLayer("counts"),
		transform.WithSeed(42),
	}

	_, err := transform.KMeans(ad, opts...)
	require.NoError(t, err)
	first := intColumn(t, ad, "kmeans")

	require.True(t, ad.Obs().Delete("kmeans"))
	_, err = transform.KMeans(ad, opts...)
	require.NoError(t, err)
	assert.Equal(t, first, intColumn(t, ad, "kmeans"))
}

// TestKMeans_TypicalCase checks the default annotation and feature provenance.
func TestKMeans_TypicalCase(t *testing.T) {
	ad := uniformData(t)
	res, err := transform.KMeans(ad,
		transform.WithFeatures("gene1", "gene2"),
		transform.WithLayer("counts"))
	require.NoError(t, err)

	assert.True(t, ad.Obs().Has("kmeans"))
	v, ok := ad.Uns("kmeans_features")
	require.True(t, ok)
	assert.Equal(t, []string{"gene1", "gene2"}, v)

	assert.Equal(t, transform.DefaultK, res.K)
	assert.False(t, res.Seeded)
	params, ok := ad.Uns("kmeans_params")
	require.True(t, ok)
	assert.Equal(t, res.Seed, params.(map[string]any)["seed"], "drawn seed is recorded")

	labels := intColumn(t, ad, "kmeans")
	assert.Len(t, labels, nCells)
	for _, l := range labels {
		assert.GreaterOrEqual(t, l, 0)
		assert.Less(t, l, transform.DefaultK)
	}
}

// TestKMeans_ReplayUnseededRun replays a drawn seed and gets the same labels.
func TestKMeans_ReplayUnseededRun(t *testing.T) {
	ad := uniformData(t)
	res, err := transform.KMeans(ad, transform.WithK(4))
	require.NoError(t, err)

	again, err := transform.KMeans(ad, transform.WithK(4), transform.WithSeed(res.Seed),
		transform.WithOutputAnnotation("replay"))
	require.NoError(t, err)
	assert.Equal(t, res.Labels, again.Labels)
}

// TestKMeans_OutputAnnotation writes to the requested column name.
func TestKMeans_OutputAnnotation(t *testing.T) {
	ad := uniformData(t)
	_, err := transform.KMeans(ad,
		transform.WithFeatures("gene1", "gene2"),
		transform.WithLayer("counts"),
		transform.WithOutputAnnotation("my_output_annotation"))
	require.NoError(t, err)

	assert.True(t, ad.Obs().Has("my_output_annotation"))
	assert.False(t, ad.Obs().Has("kmeans"))
	_, ok := ad.Uns("my_output_annotation_features")
	assert.True(t, ok)
}

// TestKMeans_LayerNone clusters the primary matrix.
func TestKMeans_LayerNone(t *testing.T) {
	ad := uniformData(t)
	_, err := transform.KMeans(ad, transform.WithFeatures("gene1", "gene2"), transform.WithLayer(""))
	require.NoError(t, err)

	assert.Len(t, intColumn(t, ad, "kmeans"), nCells)
	v, _ := ad.Uns("kmeans_features")
	assert.Equal(t, []string{"gene1", "gene2"}, v)
}

// TestKMeans_InvalidK rejects bad k before touching the container.
func TestKMeans_InvalidK(t *testing.T) {
	ad := uniformData(t)

	_, err := transform.ParseK("invalid")
	assert.ErrorIs(t, err, transform.ErrInvalidParameter)

	for _, k := range []int{0, -3} {
		_, err = transform.KMeans(ad, transform.WithK(k))
		assert.ErrorIs(t, err, transform.ErrInvalidParameter)
	}
	assert.Empty(t, ad.Obs().Columns())
	assert.Empty(t, ad.UnsKeys())
}

// TestKMeans_InvalidKKeepsPreviousResult leaves an earlier annotation and
// its provenance untouched when a later call is rejected.
func TestKMeans_InvalidKKeepsPreviousResult(t *testing.T) {
	ad := uniformData(t)
	_, err := transform.KMeans(ad, transform.WithFeatures("gene1", "gene2"), transform.WithSeed(3))
	require.NoError(t, err)
	before := intColumn(t, ad, "kmeans")
	params, _ := ad.Uns("kmeans_params")

	_, err = transform.KMeans(ad, transform.WithFeatures("gene3"), transform.WithK(0))
	require.ErrorIs(t, err, transform.ErrInvalidParameter)

	assert.Equal(t, []string{"kmeans"}, ad.Obs().Columns())
	assert.Equal(t, before, intColumn(t, ad, "kmeans"))
	v, _ := ad.Uns("kmeans_features")
	assert.Equal(t, []string{"gene1", "gene2"}, v)
	again, _ := ad.Uns("kmeans_params")
	assert.Equal(t, params, again)
}

// TestKMeans_ThreeSeparatedBlobs keeps every group when k matches them.
func TestKMeans_ThreeSeparatedBlobs(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	x := mat.NewDense(300, 2, nil)
	for i := 0; i < 300; i++ {
		x.Set(i, 0, []float64{0, 20, 1000}[i/100]+rng.NormFloat64())
		x.Set(i, 1, rng.NormFloat64())
	}
	ad, err := adata.New(x, nil, []string{"gene1", "gene2"})
	require.NoError(t, err)

	res, err := transform.KMeans(ad, transform.WithK(3), transform.WithSeed(42))
	require.NoError(t, err)
	assert.Equal(t, 3, res.Clusters)
	assert.Equal(t, 3, distinct(intColumn(t, ad, "kmeans")))
}

// TestKMeans_EmptyOutputAnnotation is a parameter error.
func TestKMeans_EmptyOutputAnnotation(t *testing.T) {
	ad := uniformData(t)
	_, err := transform.KMeans(ad, transform.WithOutputAnnotation(""))
	assert.ErrorIs(t, err, transform.ErrInvalidParameter)
}

// TestKMeans_ClusteringAccuracy collapses k=50 onto the two real groups.
func TestKMeans_ClusteringAccuracy(t *testing.T) {
	ad := separatedData(t)
	_, err := transform.KMeans(ad,
		transform.WithFeatures("gene1", "gene2"),
		transform.WithLayer("counts"),
		transform.WithK(50))
	require.NoError(t, err)

	assert.True(t, ad.Obs().Has("kmeans"))
	assert.Equal(t, 2, distinct(intColumn(t, ad, "kmeans")))
}

// TestKMeans_AssociatedTable clusters an obsm table and records its name.
func TestKMeans_AssociatedTable(t *testing.T) {
	ad := separatedData(t)
	res, err := transform.KMeans(ad,
		transform.WithAllFeatures(),
		transform.WithLayer(""),
		transform.WithK(50),
		transform.WithOutputAnnotation("derived_kmeans"),
		transform.WithAssociatedTable("derived_features"))
	require.NoError(t, err)

	assert.Equal(t, 2, distinct(intColumn(t, ad, "derived_kmeans")))
	assert.True(t, res.Provenance.IsTable())
	v, _ := ad.Uns("derived_kmeans_features")
	assert.Equal(t, "derived_features", v)
}

// TestKMeans_RerunOverwrites keeps one column and the latest provenance.
func TestKMeans_RerunOverwrites(t *testing.T) {
	ad := uniformData(t)
	_, err := transform.KMeans(ad, transform.WithFeatures("gene1"), transform.WithSeed(1))
	require.NoError(t, err)
	_, err = transform.KMeans(ad, transform.WithFeatures("gene2", "gene3"), transform.WithSeed(1))
	require.NoError(t, err)

	assert.Equal(t, []string{"kmeans"}, ad.Obs().Columns())
	v, _ := ad.Uns("kmeans_features")
	assert.Equal(t, []string{"gene2", "gene3"}, v)
}

// TestKMeans_ResolutionErrorsPropagate returns adata sentinels unchanged.
func TestKMeans_ResolutionErrorsPropagate(t *testing.T) {
	ad := uniformData(t)

	_, err := transform.KMeans(ad, transform.WithLayer("raw"))
	assert.ErrorIs(t, err, adata.ErrUnknownLayer)

	_, err = transform.KMeans(ad, transform.WithFeatures("gene1", "nope"))
	assert.ErrorIs(t, err, adata.ErrUnknownFeature)

	_, err = transform.KMeans(ad, transform.WithAssociatedTable("umap"))
	assert.ErrorIs(t, err, adata.ErrUnknownTable)

	_, err = transform.KMeans(nil)
	assert.ErrorIs(t, err, transform.ErrNilData)

	assert.Empty(t, ad.Obs().Columns())
	assert.Empty(t, ad.UnsKeys())
}

// fakeClusterer returns fixed labels or a fixed error.
type fakeClusterer struct {
	labels []int
	err    error
	calls  int
	gotK   int
	gotSd  int64
}

func (f *fakeClusterer) Cluster(_ *mat.Dense, k int, seed int64) ([]int, error) {
	f.calls++
	f.gotK, f.gotSd = k, seed
	return f.labels, f.err
}

// TestKMeans_ClustererFailuresDoNotMutate covers collaborator errors and
// out-of-contract labels.
func TestKMeans_ClustererFailuresDoNotMutate(t *testing.T) {
	boom := errors.New("boom")
	short := make([]int, nCells-1)
	outOfRange := make([]int, nCells)
	outOfRange[10] = 3

	for name, tc := range map[string]struct {
		fc   *fakeClusterer
		want error
	}{
		"error":        {&fakeClusterer{err: boom}, boom},
		"short":        {&fakeClusterer{labels: short}, transform.ErrClusterer},
		"out of range": {&fakeClusterer{labels: outOfRange}, transform.ErrClusterer},
	} {
		t.Run(name, func(t *testing.T) {
			ad := uniformData(t)
			_, err := transform.KMeans(ad, transform.WithClusterer(tc.fc), transform.WithK(3))
			assert.ErrorIs(t, err, tc.want)
			assert.Equal(t, 1, tc.fc.calls)
			assert.Empty(t, ad.Obs().Columns())
			assert.Empty(t, ad.UnsKeys())
		})
	}
}

// TestKMeans_SeedIsThreaded ensures the clusterer sees the caller's k and seed.
func TestKMeans_SeedIsThreaded(t *testing.T) {
	ad := uniformData(t)
	fc := &fakeClusterer{labels: make([]int, nCells)}
	res, err := transform.KMeans(ad, transform.WithClusterer(fc), transform.WithK(7), transform.WithSeed(-5))
	require.NoError(t, err)
	assert.Equal(t, 7, fc.gotK)
	assert.Equal(t, int64(-5), fc.gotSd)
	assert.Equal(t, 1, res.Clusters)
}

// recorder collects observer events.
type recorder struct{ events []transform.ClusterEvent }

func (r *recorder) ObserveClustering(ev transform.ClusterEvent) { r.events = append(r.events, ev) }

// TestKMeans_Observer is notified on success and failure.
func TestKMeans_Observer(t *testing.T) {
	ad := uniformData(t)
	rec := &recorder{}

	_, err := transform.KMeans(ad, transform.WithObserver(rec), transform.WithSeed(3), transform.WithK(2))
	require.NoError(t, err)
	_, err = transform.KMeans(ad, transform.WithObserver(rec), transform.WithK(0))
	require.Error(t, err)

	require.Len(t, rec.events, 2)
	assert.NoError(t, rec.events[0].Err)
	assert.Equal(t, nCells, rec.events[0].Observations)
	assert.Positive(t, rec.events[0].Clusters)
	assert.ErrorIs(t, rec.events[1].Err, transform.ErrInvalidParameter)
	assert.Zero(t, rec.events[1].Clusters)
}

// TestAssign_ShapeCheck rejects matrices with the wrong row count.
func TestAssign_ShapeCheck(t *testing.T) {
	ad := uniformData(t)
	_, err := transform.Assign(ad, mat.NewDense(5, 2, nil), transform.Provenance{Table: "x"})
	assert.ErrorIs(t, err, adata.ErrShapeMismatch)

	_, err = transform.Assign(ad, nil, transform.Provenance{})
	assert.ErrorIs(t, err, adata.ErrNilMatrix)

	x, prov, err := transform.Resolve(ad, transform.Selection{Features: []string{"gene3"}})
	require.NoError(t, err)
	res, err := transform.Assign(ad, x, prov, transform.WithSeed(1), transform.WithOutputAnnotation("g3"))
	require.NoError(t, err)
	assert.Equal(t, "g3", res.Annotation)
	v, _ := ad.Uns("g3_features")
	assert.Equal(t, []string{"gene3"}, v)
}
