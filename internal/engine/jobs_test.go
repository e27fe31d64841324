package engine_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JulMan-Dev/discord-anti-spam/internal/engine"
	"github.com/JulMan-Dev/discord-anti-spam/internal/models"
)

func job(tier models.Tier) *engine.SanctionJob {
	return &engine.SanctionJob{
		ID:      uuid.New(),
		Tier:    tier,
		GuildID: testGuild,
	}
}

func TestJobQueueFIFO(t *testing.T) {
	t.Parallel()
	q := engine.NewJobQueue(8)

	first := job(models.TierWarn)
	second := job(models.TierMute)
	require.True(t, q.Enqueue(first))
	require.True(t, q.Enqueue(second))
	assert.Equal(t, 2, q.Len())

	got, ok := q.Dequeue()
	require.True(t, ok)
	assert.Equal(t, first.ID, got.ID)

	got, ok = q.Dequeue()
	require.True(t, ok)
	assert.Equal(t, second.ID, got.ID)

	_, ok = q.Dequeue()
	assert.False(t, ok)
}

func TestJobQueueDropsWhenFull(t *testing.T) {
	t.Parallel()
	q := engine.NewJobQueue(4)

	// One slot stays open to distinguish full from empty.
	for i := 0; i < 3; i++ {
		require.True(t, q.Enqueue(job(models.TierWarn)))
	}
	assert.False(t, q.Enqueue(job(models.TierWarn)))
	assert.Equal(t, 3, q.Len())
}

func TestJobQueueWake(t *testing.T) {
	t.Parallel()
	q := engine.NewJobQueue(8)

	require.True(t, q.Enqueue(job(models.TierWarn)))

	select {
	case <-q.Wake():
	default:
		t.Fatal("expected wake signal after enqueue")
	}
}

func TestJobQueueRoundsSizeUp(t *testing.T) {
	t.Parallel()
	q := engine.NewJobQueue(5)

	// Capacity rounds to 8, leaving 7 usable slots.
	for i := 0; i < 7; i++ {
		require.True(t, q.Enqueue(job(models.TierWarn)))
	}
	assert.False(t, q.Enqueue(job(models.TierWarn)))
}
