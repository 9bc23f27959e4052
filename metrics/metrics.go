// SPDX-License-Identifier: MIT

// Package metrics records clustering and plotting calls as Prometheus
// metrics. A Recorder implements both transform.Observer and
// visualize.Observer.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/katalvlaran/cellscope/transform"
	"github.com/katalvlaran/cellscope/visualize"
)

// Namespace prefixes every metric name.
const Namespace = "cellscope"

// Recorder holds the collectors. Build it with New.
type Recorder struct {
	clusterRuns     *prometheus.CounterVec
	clusterDuration *prometheus.HistogramVec
	clusterCount    *prometheus.GaugeVec
	observations    prometheus.Counter
	histograms      *prometheus.CounterVec
	histogramAxes   prometheus.Counter
}

var (
	_ transform.Observer = (*Recorder)(nil)
	_ visualize.Observer = (*Recorder)(nil)
)

// New creates a Recorder and registers its collectors on reg.
func New(reg prometheus.Registerer) (*Recorder, error) {
	r := &Recorder{
		clusterRuns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Subsystem: "kmeans",
				Name:      "runs_total",
				Help:      "Clustering calls by output annotation and outcome.",
			},
			[]string{"annotation", "success"},
		),
		clusterDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Subsystem: "kmeans",
				Name:      "duration_seconds",
				Help:      "Clustering call duration in seconds.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"annotation", "success"},
		),
		clusterCount: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: Namespace,
				Subsystem: "kmeans",
				Name:      "clusters",
				Help:      "Distinct labels written by the last successful call.",
			},
			[]string{"annotation"},
		),
		observations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "kmeans",
			Name:      "observations_total",
			Help:      "Observations labelled by successful calls.",
		}),
		histograms: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Subsystem: "histogram",
				Name:      "calls_total",
				Help:      "Histogram calls by source and outcome.",
			},
			[]string{"source", "success"},
		),
		histogramAxes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "histogram",
			Name:      "axes_total",
			Help:      "Axes drawn by successful histogram calls.",
		}),
	}
	for _, c := range []prometheus.Collector{
		r.clusterRuns, r.clusterDuration, r.clusterCount, r.observations, r.histograms, r.histogramAxes,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// ObserveClustering implements transform.Observer.
func (r *Recorder) ObserveClustering(ev transform.ClusterEvent) {
	ok := strconv.FormatBool(ev.Err == nil)
	r.clusterRuns.WithLabelValues(ev.Annotation, ok).Inc()
	r.clusterDuration.WithLabelValues(ev.Annotation, ok).Observe(ev.Duration.Seconds())
	if ev.Err == nil {
		r.clusterCount.WithLabelValues(ev.Annotation).Set(float64(ev.Clusters))
		r.observations.Add(float64(ev.Observations))
	}
}

// ObserveHistogram implements visualize.Observer.
func (r *Recorder) ObserveHistogram(ev visualize.HistogramEvent) {
	source := ev.Source
	if source == "" {
		source = "invalid"
	}
	r.histograms.WithLabelValues(source, strconv.FormatBool(ev.Err == nil)).Inc()
	if ev.Err == nil {
		r.histogramAxes.Add(float64(ev.Axes))
	}
}
