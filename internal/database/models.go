package database

// GuildSettingsRow is the persisted per-guild configuration. Id lists are
// stored comma-separated, matching how the settings store serializes them.
type GuildSettingsRow struct {
	GuildID         string
	Enabled         bool
	LogChannelID    string
	IgnoredMembers  string
	IgnoredChannels string
	CreatedAt       int64
	UpdatedAt       int64
}

// SanctionRow is one applied sanction.
type SanctionRow struct {
	ID          string
	GuildID     string
	UserID      string
	Tier        string
	Reason      string
	Content     string
	ByDuplicate bool
	DetectionUS int64
	AppliedAt   int64
}
