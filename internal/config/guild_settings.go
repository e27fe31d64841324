package config

import "sync"

// GuildSettings is the per-guild runtime state the bot layer consults on
// every event. The database package persists it; this store is the hot
// in-memory view.
type GuildSettings struct {
	GuildID         uint64
	Name            string
	OwnerID         uint64
	Enabled         bool
	LogChannelID    uint64
	IgnoredMembers  []uint64
	IgnoredChannels []uint64
}

// SettingsStore owns every *GuildSettings it holds; entries never leave the
// lock. Readers get copies via Snapshot, writers go through Update or the
// typed setters.
type SettingsStore struct {
	mu     sync.RWMutex
	guilds map[uint64]*GuildSettings
}

var GlobalSettings *SettingsStore

func InitGuildSettings() {
	GlobalSettings = &SettingsStore{
		guilds: make(map[uint64]*GuildSettings),
	}
}

func GetSettingsStore() *SettingsStore {
	if GlobalSettings == nil {
		InitGuildSettings()
	}
	return GlobalSettings
}

// getOrCreateLocked requires s.mu held for writing.
func (s *SettingsStore) getOrCreateLocked(guildID uint64) *GuildSettings {
	if gs, exists := s.guilds[guildID]; exists {
		return gs
	}
	gs := &GuildSettings{
		GuildID: guildID,
		Enabled: true,
	}
	s.guilds[guildID] = gs
	return gs
}

// Snapshot returns a copy of the guild's settings, with defaults for a
// guild never seen before. The copy is the caller's to keep.
func (s *SettingsStore) Snapshot(guildID uint64) GuildSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()

	gs, exists := s.guilds[guildID]
	if !exists {
		return GuildSettings{GuildID: guildID, Enabled: true}
	}

	out := *gs
	out.IgnoredMembers = append([]uint64(nil), gs.IgnoredMembers...)
	out.IgnoredChannels = append([]uint64(nil), gs.IgnoredChannels...)
	return out
}

// Update mutates the guild's settings under the store lock, creating the
// entry if needed. fn must not retain the pointer.
func (s *SettingsStore) Update(guildID uint64, fn func(*GuildSettings)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.getOrCreateLocked(guildID))
}

func (s *SettingsStore) IsEnabled(guildID uint64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	gs, exists := s.guilds[guildID]
	if !exists {
		return true
	}
	return gs.Enabled
}

func (s *SettingsStore) SetEnabled(guildID uint64, enabled bool) {
	s.Update(guildID, func(gs *GuildSettings) {
		gs.Enabled = enabled
	})
}

func (s *SettingsStore) SetLogChannel(guildID, channelID uint64) {
	s.Update(guildID, func(gs *GuildSettings) {
		gs.LogChannelID = channelID
	})
}

// LogChannel returns the guild's configured log channel, 0 when unset.
func (s *SettingsStore) LogChannel(guildID uint64) uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	gs, exists := s.guilds[guildID]
	if !exists {
		return 0
	}
	return gs.LogChannelID
}

func (s *SettingsStore) IsIgnoredMember(guildID, userID uint64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	gs, exists := s.guilds[guildID]
	if !exists {
		return false
	}
	for _, id := range gs.IgnoredMembers {
		if id == userID {
			return true
		}
	}
	return false
}

func (s *SettingsStore) IsIgnoredChannel(guildID, channelID uint64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	gs, exists := s.guilds[guildID]
	if !exists {
		return false
	}
	for _, id := range gs.IgnoredChannels {
		if id == channelID {
			return true
		}
	}
	return false
}

func (s *SettingsStore) AddIgnoredMember(guildID, userID uint64) {
	s.Update(guildID, func(gs *GuildSettings) {
		for _, id := range gs.IgnoredMembers {
			if id == userID {
				return
			}
		}
		gs.IgnoredMembers = append(gs.IgnoredMembers, userID)
	})
}

func (s *SettingsStore) RemoveIgnoredMember(guildID, userID uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	gs, exists := s.guilds[guildID]
	if !exists {
		return
	}
	for i, id := range gs.IgnoredMembers {
		if id == userID {
			gs.IgnoredMembers = append(gs.IgnoredMembers[:i], gs.IgnoredMembers[i+1:]...)
			return
		}
	}
}

func (s *SettingsStore) AddIgnoredChannel(guildID, channelID uint64) {
	s.Update(guildID, func(gs *GuildSettings) {
		for _, id := range gs.IgnoredChannels {
			if id == channelID {
				return
			}
		}
		gs.IgnoredChannels = append(gs.IgnoredChannels, channelID)
	})
}

func (s *SettingsStore) RemoveIgnoredChannel(guildID, channelID uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	gs, exists := s.guilds[guildID]
	if !exists {
		return
	}
	for i, id := range gs.IgnoredChannels {
		if id == channelID {
			gs.IgnoredChannels = append(gs.IgnoredChannels[:i], gs.IgnoredChannels[i+1:]...)
			return
		}
	}
}
