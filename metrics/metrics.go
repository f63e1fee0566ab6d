/*
 *     Copyright 2020 The Dragonfly Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *      http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"d7y.io/stacklearn/version"
)

const (
	// Namespace is the metrics namespace of stacklearn.
	Namespace = "stacklearn"

	// LearnerSubsystem is the metrics subsystem of base learners.
	LearnerSubsystem = "learner"
)

// Variables declared for metrics.
var (
	FitCount = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Subsystem: LearnerSubsystem,
		Name:      "fit_total",
		Help:      "Counter of the number of the fit.",
	}, []string{"learner", "family"})

	FitFailureCount = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Subsystem: LearnerSubsystem,
		Name:      "fit_failure_total",
		Help:      "Counter of the number of failed of the fit.",
	}, []string{"learner", "family"})

	FitDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace,
		Subsystem: LearnerSubsystem,
		Name:      "fit_duration_seconds",
		Help:      "Histogram of the time each fit took.",
		Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
	}, []string{"learner", "family"})

	PredictCount = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Subsystem: LearnerSubsystem,
		Name:      "predict_total",
		Help:      "Counter of the number of the predict.",
	}, []string{"learner", "family"})

	PredictFailureCount = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Subsystem: LearnerSubsystem,
		Name:      "predict_failure_total",
		Help:      "Counter of the number of failed of the predict.",
	}, []string{"learner", "family"})

	CachedModelGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: Namespace,
		Subsystem: LearnerSubsystem,
		Name:      "cached_models",
		Help:      "Gauge of the number of fitted models held by the server.",
	})

	VersionGauge = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: Namespace,
		Name:      "version",
		Help:      "Version info of the service.",
	}, []string{"major", "minor", "git_version", "git_commit", "platform", "build_time", "go_version"})
)

// New returns the metrics server listening on addr.
func New(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	VersionGauge.WithLabelValues(version.Major, version.Minor, version.GitVersion, version.GitCommit, version.Platform, version.BuildTime, version.GoVersion).Set(1)
	return &http.Server{
		Addr:    addr,
		Handler: mux,
	}
}
