package metrics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/JulMan-Dev/discord-anti-spam/internal/metrics"
	"github.com/JulMan-Dev/discord-anti-spam/internal/models"
)

func TestRegistryCounters(t *testing.T) {
	t.Parallel()
	r := metrics.NewRegistry()

	r.RecordProcessed()
	r.RecordProcessed()
	r.RecordIgnored()
	r.RecordDeduped()
	r.RecordApplyError()
	r.RecordSanction(models.TierWarn)
	r.RecordSanction(models.TierWarn)
	r.RecordSanction(models.TierBan)

	snap := r.Snapshot()
	assert.Equal(t, uint64(2), snap.Processed)
	assert.Equal(t, uint64(1), snap.Ignored)
	assert.Equal(t, uint64(1), snap.Deduped)
	assert.Equal(t, uint64(1), snap.ApplyErrors)
	assert.Equal(t, uint64(2), snap.Warns)
	assert.Equal(t, uint64(0), snap.Mutes)
	assert.Equal(t, uint64(1), snap.Bans)
}

func TestLatencyStats(t *testing.T) {
	t.Parallel()
	r := metrics.NewRegistry()

	r.RecordDetectionLatency(1000)
	r.RecordDetectionLatency(3000)
	r.RecordDetectionLatency(5000)

	stats := r.Snapshot().Latency
	assert.Equal(t, uint64(3), stats.Count)
	assert.Equal(t, uint64(1000), stats.Min)
	assert.Equal(t, uint64(5000), stats.Max)
	assert.Equal(t, uint64(3000), stats.Avg)
}
