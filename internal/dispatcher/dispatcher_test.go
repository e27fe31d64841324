package dispatcher_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JulMan-Dev/discord-anti-spam/internal/config"
	"github.com/JulMan-Dev/discord-anti-spam/internal/dispatcher"
	"github.com/JulMan-Dev/discord-anti-spam/internal/engine"
	"github.com/JulMan-Dev/discord-anti-spam/internal/models"
)

type fakeModerator struct {
	mu      sync.Mutex
	applied []*engine.SanctionJob
	deleted [][]*models.MessageRecord
	fail    error
	decline bool
}

func (f *fakeModerator) ApplySanction(_ context.Context, job *engine.SanctionJob) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return false, f.fail
	}
	if f.decline {
		return false, nil
	}
	f.applied = append(f.applied, job)
	return true, nil
}

func (f *fakeModerator) DeleteMessages(_ context.Context, records []*models.MessageRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, records)
	return nil
}

func (f *fakeModerator) appliedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.applied)
}

func newJob(tier models.Tier) *engine.SanctionJob {
	return &engine.SanctionJob{
		ID:        uuid.New(),
		Tier:      tier,
		Member:    models.Member{UserID: 3000, GuildID: 1000},
		GuildID:   1000,
		ChannelID: 2000,
		Reason:    "test sanction",
	}
}

func waitFor(t *testing.T, ch <-chan models.Notification) models.Notification {
	t.Helper()
	select {
	case n := <-ch:
		return n
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for notification")
		return models.Notification{}
	}
}

func TestDispatchAppliesAndNotifies(t *testing.T) {
	t.Parallel()
	eng := engine.New(config.DefaultOptions(), 64)
	mod := &fakeModerator{}
	d := dispatcher.New(eng, mod, 2)

	notifications := make(chan models.Notification, 4)
	eng.Notify(func(n models.Notification) { notifications <- n })

	d.Start()
	defer d.Stop()

	job := newJob(models.TierWarn)
	require.True(t, eng.Queue().Enqueue(job))

	n := waitFor(t, notifications)
	assert.Equal(t, models.TierWarn, n.Tier)
	assert.Equal(t, uint64(3000), n.Member.UserID)
	assert.Equal(t, "test sanction", n.Reason)
	assert.Equal(t, 1, mod.appliedCount())
}

func TestDispatchDeletesJobMessages(t *testing.T) {
	t.Parallel()
	eng := engine.New(config.DefaultOptions(), 64)
	mod := &fakeModerator{}
	d := dispatcher.New(eng, mod, 1)

	notifications := make(chan models.Notification, 1)
	eng.Notify(func(n models.Notification) { notifications <- n })

	d.Start()
	defer d.Stop()

	job := newJob(models.TierMute)
	job.Messages = []*models.MessageRecord{
		{MessageID: 1, ChannelID: 2000},
		{MessageID: 2, ChannelID: 2000},
	}
	require.True(t, eng.Queue().Enqueue(job))

	waitFor(t, notifications)

	mod.mu.Lock()
	defer mod.mu.Unlock()
	require.Len(t, mod.deleted, 1)
	assert.Len(t, mod.deleted[0], 2)
}

func TestDispatchFailureIsFinal(t *testing.T) {
	t.Parallel()
	eng := engine.New(config.DefaultOptions(), 64)
	mod := &fakeModerator{fail: errors.New("missing permissions")}
	d := dispatcher.New(eng, mod, 1)

	notifications := make(chan models.Notification, 1)
	eng.Notify(func(n models.Notification) { notifications <- n })

	d.Start()

	require.True(t, eng.Queue().Enqueue(newJob(models.TierKick)))

	// Give the worker time to fail the job, then stop and confirm nothing
	// was notified or retried.
	time.Sleep(100 * time.Millisecond)
	d.Stop()

	assert.Empty(t, notifications)
	assert.Equal(t, 0, mod.appliedCount())
	assert.Equal(t, 0, eng.Queue().Len())
}

func TestDispatchDeclinedJobNotNotified(t *testing.T) {
	t.Parallel()
	eng := engine.New(config.DefaultOptions(), 64)
	mod := &fakeModerator{decline: true}
	d := dispatcher.New(eng, mod, 1)

	notifications := make(chan models.Notification, 1)
	eng.Notify(func(n models.Notification) { notifications <- n })

	d.Start()

	require.True(t, eng.Queue().Enqueue(newJob(models.TierBan)))

	time.Sleep(100 * time.Millisecond)
	d.Stop()

	assert.Empty(t, notifications)
}

func TestStopDrainsCurrentJob(t *testing.T) {
	t.Parallel()
	eng := engine.New(config.DefaultOptions(), 64)
	mod := &fakeModerator{}
	d := dispatcher.New(eng, mod, 1)

	notifications := make(chan models.Notification, 8)
	eng.Notify(func(n models.Notification) { notifications <- n })

	d.Start()
	for i := 0; i < 3; i++ {
		require.True(t, eng.Queue().Enqueue(newJob(models.TierWarn)))
	}
	for i := 0; i < 3; i++ {
		waitFor(t, notifications)
	}
	d.Stop()

	assert.Equal(t, 3, mod.appliedCount())
}
