package metrics

import (
	"testing"

	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_RegistersAndCounts(t *testing.T) {
	manager, registry := NewTestManagerAndRegistry()

	manager.CounterWorkoutsSaved.Inc()
	manager.CounterWorkoutsSaved.Inc()
	manager.CounterPersonalRecords.Inc()
	manager.CounterRequests.WithLabelValues("GET", "200").Inc()
	manager.GaugeLifeSignal.Set(1)

	families, err := registry.Gather()
	require.NoError(t, err)

	found := make(map[string]*dto.MetricFamily)
	for _, mf := range families {
		found[mf.GetName()] = mf
	}

	saved, ok := found["backend_test_server_workouts_saved"]
	require.True(t, ok)
	require.Len(t, saved.GetMetric(), 1)
	assert.Equal(t, float64(2), saved.GetMetric()[0].GetCounter().GetValue())

	records, ok := found["backend_test_server_personal_records"]
	require.True(t, ok)
	assert.Equal(t, float64(1), records.GetMetric()[0].GetCounter().GetValue())

	requests, ok := found["backend_test_server_request"]
	require.True(t, ok)
	require.Len(t, requests.GetMetric(), 1)
	labels := requests.GetMetric()[0].GetLabel()
	require.Len(t, labels, 2)

	lifeSignal, ok := found["backend_test_server_life_signal"]
	require.True(t, ok)
	assert.Equal(t, float64(1), lifeSignal.GetMetric()[0].GetGauge().GetValue())
}
