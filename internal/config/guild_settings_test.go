package config_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/JulMan-Dev/discord-anti-spam/internal/config"
)

func newStore() *config.SettingsStore {
	config.InitGuildSettings()
	return config.GlobalSettings
}

func TestSettingsStoreDefaults(t *testing.T) {
	s := newStore()

	// Unknown guilds are treated as enabled.
	assert.True(t, s.IsEnabled(10))

	gs := s.Snapshot(10)
	assert.Equal(t, uint64(10), gs.GuildID)
	assert.True(t, gs.Enabled)
}

func TestSettingsStoreToggle(t *testing.T) {
	s := newStore()

	s.SetEnabled(10, false)
	assert.False(t, s.IsEnabled(10))

	s.SetEnabled(10, true)
	assert.True(t, s.IsEnabled(10))
}

func TestSettingsStoreIgnoreLists(t *testing.T) {
	s := newStore()

	assert.False(t, s.IsIgnoredMember(10, 20))
	s.AddIgnoredMember(10, 20)
	assert.True(t, s.IsIgnoredMember(10, 20))
	// Adding twice keeps a single entry.
	s.AddIgnoredMember(10, 20)
	s.RemoveIgnoredMember(10, 20)
	assert.False(t, s.IsIgnoredMember(10, 20))

	s.AddIgnoredChannel(10, 30)
	assert.True(t, s.IsIgnoredChannel(10, 30))
	s.RemoveIgnoredChannel(10, 30)
	assert.False(t, s.IsIgnoredChannel(10, 30))
}

func TestSettingsStoreLogChannel(t *testing.T) {
	s := newStore()

	assert.Equal(t, uint64(0), s.LogChannel(10))
	s.SetLogChannel(10, 999)
	assert.Equal(t, uint64(999), s.LogChannel(10))
	assert.Equal(t, uint64(999), s.Snapshot(10).LogChannelID)
}

func TestSnapshotIsACopy(t *testing.T) {
	s := newStore()

	s.AddIgnoredMember(10, 20)
	snap := s.Snapshot(10)

	// Mutating the snapshot leaves the store untouched.
	snap.Enabled = false
	snap.IgnoredMembers[0] = 99

	assert.True(t, s.IsEnabled(10))
	assert.True(t, s.IsIgnoredMember(10, 20))
	assert.False(t, s.IsIgnoredMember(10, 99))
}

func TestUpdateIsAtomicWithReaders(t *testing.T) {
	s := newStore()

	// Writers mutating through Update while readers poll the same guild;
	// run under the race detector this fails if any field write escapes
	// the store lock.
	var wg sync.WaitGroup
	stop := make(chan struct{})

	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
					s.IsEnabled(10)
					s.LogChannel(10)
					s.IsIgnoredMember(10, 20)
					_ = s.Snapshot(10)
				}
			}
		}()
	}

	for i := 0; i < 200; i++ {
		s.Update(10, func(gs *config.GuildSettings) {
			gs.Enabled = i%2 == 0
			gs.LogChannelID = uint64(i)
			gs.Name = "guild"
		})
	}
	close(stop)
	wg.Wait()

	assert.Equal(t, uint64(199), s.LogChannel(10))
}
