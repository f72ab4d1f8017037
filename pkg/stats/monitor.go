// Copyright 2026 LiveKit, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package stats

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Monitor tracks per-pad push timings and selector activity.
type Monitor struct {
	pushTimings      *prometheus.HistogramVec
	buffersForwarded *prometheus.CounterVec
	buffersDropped   *prometheus.CounterVec
	padSwitches      prometheus.Counter
}

func NewMonitor(nodeID string) *Monitor {
	constLabels := prometheus.Labels{"node_id": nodeID}

	return &Monitor{
		pushTimings: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   "livekit",
			Subsystem:   "streamselect",
			Name:        "pad_push_duration_seconds",
			Buckets:     prometheus.ExponentialBuckets(0.0001, 4, 10),
			ConstLabels: constLabels,
		}, []string{"pad"}),
		buffersForwarded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   "livekit",
			Subsystem:   "streamselect",
			Name:        "buffers_forwarded",
			ConstLabels: constLabels,
		}, []string{"pad"}),
		buffersDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   "livekit",
			Subsystem:   "streamselect",
			Name:        "buffers_dropped",
			ConstLabels: constLabels,
		}, []string{"pad"}),
		padSwitches: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "livekit",
			Subsystem:   "streamselect",
			Name:        "pad_switches",
			ConstLabels: constLabels,
		}),
	}
}

// Register adds the monitor's collectors to the given registerer.
func (m *Monitor) Register(registerer prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{
		m.pushTimings, m.buffersForwarded, m.buffersDropped, m.padSwitches,
	} {
		if err := registerer.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// PushStarted returns a func recording the push duration when called.
func (m *Monitor) PushStarted(pad string) func() {
	if m == nil {
		return func() {}
	}
	start := time.Now()
	return func() {
		m.pushTimings.WithLabelValues(pad).Observe(time.Since(start).Seconds())
	}
}

func (m *Monitor) BufferForwarded(pad string) {
	if m == nil {
		return
	}
	m.buffersForwarded.WithLabelValues(pad).Inc()
}

func (m *Monitor) BufferDropped(pad string) {
	if m == nil {
		return
	}
	m.buffersDropped.WithLabelValues(pad).Inc()
}

func (m *Monitor) PadSwitched() {
	if m == nil {
		return
	}
	m.padSwitches.Inc()
}
