package config

import "time"

// Options is the immutable configuration of one engine instance. Count
// thresholds apply to message volume inside MaxInterval; duplicate
// thresholds apply to identical-content volume inside MaxDuplicatesInterval.
// A threshold of zero disables that signal for its tier.
type Options struct {
	WarnThreshold int `koanf:"warn_threshold"`
	MuteThreshold int `koanf:"mute_threshold"`
	KickThreshold int `koanf:"kick_threshold"`
	BanThreshold  int `koanf:"ban_threshold"`

	MaxInterval           time.Duration `koanf:"max_interval"`
	MaxDuplicatesInterval time.Duration `koanf:"max_duplicates_interval"`

	MaxDuplicatesWarn int `koanf:"max_duplicates_warn"`
	MaxDuplicatesMute int `koanf:"max_duplicates_mute"`
	MaxDuplicatesKick int `koanf:"max_duplicates_kick"`
	MaxDuplicatesBan  int `koanf:"max_duplicates_ban"`

	// UnMuteDuration is handed to the moderation collaborator; the engine
	// manages no unmute timer itself.
	UnMuteDuration time.Duration `koanf:"unmute_duration"`

	IgnoredMembers     IDFilter   `koanf:"-"`
	IgnoredRoles       RoleFilter `koanf:"-"`
	IgnoredGuilds      IDFilter   `koanf:"-"`
	IgnoredChannels    IDFilter   `koanf:"-"`
	IgnoredPermissions []int64    `koanf:"ignored_permissions"`

	IgnoreBots bool `koanf:"ignore_bots"`

	WarnEnabled bool `koanf:"warn_enabled"`
	MuteEnabled bool `koanf:"mute_enabled"`
	KickEnabled bool `koanf:"kick_enabled"`
	BanEnabled  bool `koanf:"ban_enabled"`

	RemoveMessages bool `koanf:"remove_messages"`

	// Debug disables the owner exemption so the engine can be exercised on
	// a test server by its owner.
	Debug   bool `koanf:"debug"`
	Verbose bool `koanf:"verbose"`
}

// DefaultOptions returns the stock escalation ladder.
func DefaultOptions() Options {
	return Options{
		WarnThreshold:         3,
		MuteThreshold:         4,
		KickThreshold:         5,
		BanThreshold:          7,
		MaxInterval:           2000 * time.Millisecond,
		MaxDuplicatesInterval: 2000 * time.Millisecond,
		MaxDuplicatesWarn:     7,
		MaxDuplicatesMute:     9,
		MaxDuplicatesKick:     10,
		MaxDuplicatesBan:      11,
		UnMuteDuration:        10 * time.Minute,
		IgnoreBots:            true,
		WarnEnabled:           true,
		MuteEnabled:           true,
		KickEnabled:           true,
		BanEnabled:            true,
		RemoveMessages:        true,
	}
}

// Retention is how long a record can still influence any threshold; the
// cache evicts beyond it.
func (o *Options) Retention() time.Duration {
	if o.MaxInterval > o.MaxDuplicatesInterval {
		return o.MaxInterval
	}
	return o.MaxDuplicatesInterval
}

// PermissionExempt reports whether a member permission bitmask holds any of
// the ignored permissions.
func (o *Options) PermissionExempt(permissions int64) bool {
	for _, p := range o.IgnoredPermissions {
		if permissions&p != 0 {
			return true
		}
	}
	return false
}
