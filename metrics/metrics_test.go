// SPDX-License-Identifier: ISC

package metrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/hychain/core/metrics"
)

func TestObserveAssemblyDurationSuccessIncrementsAppended(t *testing.T) {
	before := testutil.ToFloat64(metrics.BlocksAppended)

	metrics.ObserveAssemblyDuration(0.01, true)

	after := testutil.ToFloat64(metrics.BlocksAppended)
	assert.Equal(t, before+1, after)
}

func TestObserveAssemblyDurationFailureIncrementsFailures(t *testing.T) {
	before := testutil.ToFloat64(metrics.BlockAssemblyFailures)

	metrics.ObserveAssemblyDuration(0.01, false)

	after := testutil.ToFloat64(metrics.BlockAssemblyFailures)
	assert.Equal(t, before+1, after)
}

func TestSetStorageSizeUpdatesGauge(t *testing.T) {
	metrics.SetStorageSize(7)
	assert.Equal(t, float64(7), testutil.ToFloat64(metrics.StorageSize))

	metrics.SetStorageSize(3)
	assert.Equal(t, float64(3), testutil.ToFloat64(metrics.StorageSize))
}
