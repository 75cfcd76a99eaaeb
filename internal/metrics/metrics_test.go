package metrics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountersRecord(t *testing.T) {
	var c Counters
	c.Record(OutcomeSuccess)
	c.Record(OutcomeSuccess)
	c.Record(OutcomeInvalid)
	c.Record(OutcomeServiceFallback)

	snap := c.Snapshot()
	assert.Equal(t, int64(4), snap["total"])
	assert.Equal(t, int64(2), snap["success"])
	assert.Equal(t, int64(1), snap["invalid"])
	assert.Equal(t, int64(0), snap["config_fallback"])
	assert.Equal(t, int64(1), snap["service_fallback"])
}

func TestCloudWatchDisabledOutsideProduction(t *testing.T) {
	client, err := NewClient(context.Background(), "development")
	require.NoError(t, err)
	assert.False(t, client.enabled)

	// no-ops when disabled
	client.RecordGeneration(time.Second, OutcomeSuccess)
	client.RecordTokenUsage("m", 3, 2, 1)
	client.RecordAPIRequest("/api/generate", 200, time.Millisecond)
}

func TestSentryMetricsWithoutClient(t *testing.T) {
	m := NewSentryMetrics()
	ctx := context.Background()
	m.RecordAPIRequest(ctx, "/api/generate", 500, time.Millisecond)
	m.RecordGeneration(ctx, time.Millisecond, OutcomeServiceFallback)
	m.RecordTokenUsage(ctx, "m", 3, 2, 1)
}

func TestDatumCarriesEnvironment(t *testing.T) {
	client := &Client{environment: "staging"}
	d := datum("Generations", 1, "Count", client.dimensions("Outcome", string(OutcomeSuccess)))

	assert.Equal(t, "Generations", *d.MetricName)
	assert.InDelta(t, 1.0, *d.Value, 0)
	require.Len(t, d.Dimensions, 2)
	assert.Equal(t, "success", *d.Dimensions[0].Value)
	assert.Equal(t, "staging", *d.Dimensions[1].Value)
}
