// SPDX-License-Identifier: ISC

// Package metrics exposes the block-assembly instrumentation this core
// reports to Prometheus: how long each pipeline run took, how many
// blocks have been appended, and how large the chainstore currently
// is. Grounded on the wrapping idiom of
// _examples/google-trillian/monitoring/prometheus/metrics.go — plain
// prometheus.New*/MustRegister calls — simplified here to the fixed
// set of metrics this core reports rather than a general factory,
// since no SPEC_FULL.md component needs per-label metric creation at
// runtime.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// BlockAssemblyDuration records the wall-clock time of each
	// block.Pipeline assemble call, from token check to storage insert.
	BlockAssemblyDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "hychain",
		Subsystem: "block",
		Name:      "assembly_duration_seconds",
		Help:      "Time taken to assemble and persist one block.",
		Buckets:   prometheus.DefBuckets,
	})

	// BlocksAppended counts successful Storage.PutBlock insertions.
	BlocksAppended = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "hychain",
		Subsystem: "block",
		Name:      "appended_total",
		Help:      "Total number of blocks successfully appended to the chain.",
	})

	// BlockAssemblyFailures counts pipeline runs that returned an error,
	// including a storage write error or rejection.
	BlockAssemblyFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "hychain",
		Subsystem: "block",
		Name:      "assembly_failures_total",
		Help:      "Total number of block assembly attempts that failed.",
	})

	// StorageSize reports the current number of blocks held by a
	// chainstore.Storage, set by callers via SetStorageSize.
	StorageSize = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "hychain",
		Subsystem: "chainstore",
		Name:      "block_count",
		Help:      "Current number of blocks held in the chainstore.",
	})
)

func init() {
	prometheus.MustRegister(BlockAssemblyDuration, BlocksAppended, BlockAssemblyFailures, StorageSize)
}

// SetStorageSize updates the StorageSize gauge to n.
func SetStorageSize(n int) {
	StorageSize.Set(float64(n))
}

// ObserveAssemblyDuration records seconds against BlockAssemblyDuration
// and increments either BlocksAppended or BlockAssemblyFailures
// depending on ok.
func ObserveAssemblyDuration(seconds float64, ok bool) {
	BlockAssemblyDuration.Observe(seconds)
	if ok {
		BlocksAppended.Inc()
	} else {
		BlockAssemblyFailures.Inc()
	}
}
