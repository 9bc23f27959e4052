// SPDX-License-Identifier: MIT
package metrics_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/cellscope/metrics"
	"github.com/katalvlaran/cellscope/transform"
	"github.com/katalvlaran/cellscope/visualize"
)

func TestRecorder_Clustering(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec, err := metrics.New(reg)
	require.NoError(t, err)

	rec.ObserveClustering(transform.ClusterEvent{Annotation: "kmeans", K: 3, Clusters: 2, Observations: 100, Duration: time.Millisecond})
	rec.ObserveClustering(transform.ClusterEvent{Annotation: "kmeans", K: 0, Observations: 100, Err: errors.New("bad k")})

	expected := `
# HELP cellscope_kmeans_runs_total Clustering calls by output annotation and outcome.
# TYPE cellscope_kmeans_runs_total counter
cellscope_kmeans_runs_total{annotation="kmeans",success="false"} 1
cellscope_kmeans_runs_total{annotation="kmeans",success="true"} 1
# HELP cellscope_kmeans_clusters Distinct labels written by the last successful call.
# TYPE cellscope_kmeans_clusters gauge
cellscope_kmeans_clusters{annotation="kmeans"} 2
# HELP cellscope_kmeans_observations_total Observations labelled by successful calls.
# TYPE cellscope_kmeans_observations_total counter
cellscope_kmeans_observations_total 100
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"cellscope_kmeans_runs_total", "cellscope_kmeans_clusters", "cellscope_kmeans_observations_total"))
	n, err := testutil.GatherAndCount(reg, "cellscope_kmeans_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestRecorder_Histogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec, err := metrics.New(reg)
	require.NoError(t, err)

	rec.ObserveHistogram(visualize.HistogramEvent{Source: "feature", Name: "marker1", Groups: 2, Axes: 2})
	rec.ObserveHistogram(visualize.HistogramEvent{Err: visualize.ErrNoSelection})

	expected := `
# HELP cellscope_histogram_calls_total Histogram calls by source and outcome.
# TYPE cellscope_histogram_calls_total counter
cellscope_histogram_calls_total{source="feature",success="true"} 1
cellscope_histogram_calls_total{source="invalid",success="false"} 1
# HELP cellscope_histogram_axes_total Axes drawn by successful histogram calls.
# TYPE cellscope_histogram_axes_total counter
cellscope_histogram_axes_total 2
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"cellscope_histogram_calls_total", "cellscope_histogram_axes_total"))
}

func TestNew_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := metrics.New(reg)
	require.NoError(t, err)
	_, err = metrics.New(reg)
	assert.Error(t, err)
}
