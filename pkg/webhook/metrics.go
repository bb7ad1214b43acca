// Copyright 2022 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package webhook

import "github.com/prometheus/client_golang/prometheus"

// Metrics are the metrics the server records.
type Metrics struct {
	ReviewDuration *prometheus.HistogramVec
	ErrorTotal     *prometheus.CounterVec
}

// NewMetrics creates the server metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ReviewDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Help:      "Review duration distributions",
				Namespace: "kubereview",
				Subsystem: "webhook",
				Name:      "duration_seconds",
				Buckets:   []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
			},
			[]string{"capability", "allowed"},
		),
		ErrorTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Help:      "Total faults that occurred when reviewing requests",
				Namespace: "kubereview",
				Subsystem: "webhook",
				Name:      "error_total",
			},
			[]string{"capability", "code"},
		),
	}
	reg.MustRegister(m.ReviewDuration, m.ErrorTotal)
	return m
}
