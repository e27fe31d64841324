package state

import (
	"sync"

	"github.com/JulMan-Dev/discord-anti-spam/internal/models"
)

// SanctionState is the per-member sanction history inside one guild. Warn,
// kick and ban are one-shot flags; mute is renewable and therefore not
// tracked.
type SanctionState struct {
	Warned bool
	Kicked bool
	Banned bool
}

type memberKey struct {
	guildID  uint64
	authorID uint64
}

// SanctionTracker gates re-application of one-shot tiers. Safe for
// concurrent use.
type SanctionTracker struct {
	mu      sync.RWMutex
	members map[memberKey]*SanctionState
}

func NewSanctionTracker() *SanctionTracker {
	return &SanctionTracker{
		members: make(map[memberKey]*SanctionState),
	}
}

// Eligible reports whether the tier may still be applied to the member.
// Mute is always eligible; a recorded ban makes every tier ineligible.
func (t *SanctionTracker) Eligible(tier models.Tier, guildID, authorID uint64) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	st, ok := t.members[memberKey{guildID, authorID}]
	if !ok {
		return true
	}
	if st.Banned {
		return false
	}

	switch tier {
	case models.TierWarn:
		return !st.Warned
	case models.TierMute:
		return true
	case models.TierKick:
		return !st.Kicked
	case models.TierBan:
		return !st.Banned
	default:
		return false
	}
}

// Record marks a one-shot tier as applied. Recording a mute is a no-op.
func (t *SanctionTracker) Record(tier models.Tier, guildID, authorID uint64) {
	if tier.Renewable() {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	key := memberKey{guildID, authorID}
	st, ok := t.members[key]
	if !ok {
		st = &SanctionState{}
		t.members[key] = st
	}

	switch tier {
	case models.TierWarn:
		st.Warned = true
	case models.TierKick:
		st.Kicked = true
	case models.TierBan:
		st.Banned = true
	}
}

// Banned reports whether the member has a recorded ban; a banned member is
// no longer evaluated at all.
func (t *SanctionTracker) Banned(guildID, authorID uint64) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	st, ok := t.members[memberKey{guildID, authorID}]
	return ok && st.Banned
}

// State returns a copy of the member's flags.
func (t *SanctionTracker) State(guildID, authorID uint64) (SanctionState, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	st, ok := t.members[memberKey{guildID, authorID}]
	if !ok {
		return SanctionState{}, false
	}
	return *st, true
}

// Clear removes the member's tracked state, called when the member leaves
// the guild. It reports whether any state existed.
func (t *SanctionTracker) Clear(guildID, authorID uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	key := memberKey{guildID, authorID}
	if _, ok := t.members[key]; !ok {
		return false
	}
	delete(t.members, key)
	return true
}

// Reset drops all tracked state.
func (t *SanctionTracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.members = make(map[memberKey]*SanctionState)
}

// Size returns the number of tracked members.
func (t *SanctionTracker) Size() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return len(t.members)
}
