package database

import (
	"database/sql"
	"errors"
	"time"
)

// GetGuildSettings returns the stored settings for a guild, or defaults
// when none exist yet.
func (d *Database) GetGuildSettings(guildID string) (*GuildSettingsRow, error) {
	row := d.db.QueryRow(`
		SELECT guild_id, enabled, log_channel_id, ignored_members, ignored_channels, created_at, updated_at
		FROM guild_settings WHERE guild_id = ?`, guildID)

	var gs GuildSettingsRow
	var enabled int
	err := row.Scan(&gs.GuildID, &enabled, &gs.LogChannelID, &gs.IgnoredMembers, &gs.IgnoredChannels, &gs.CreatedAt, &gs.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return &GuildSettingsRow{GuildID: guildID, Enabled: true}, nil
	}
	if err != nil {
		return nil, err
	}
	gs.Enabled = enabled != 0
	return &gs, nil
}

// UpsertGuildSettings writes the settings row, stamping timestamps.
func (d *Database) UpsertGuildSettings(gs *GuildSettingsRow) error {
	now := time.Now().Unix()
	enabled := 0
	if gs.Enabled {
		enabled = 1
	}
	_, err := d.db.Exec(`
		INSERT INTO guild_settings (guild_id, enabled, log_channel_id, ignored_members, ignored_channels, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(guild_id) DO UPDATE SET
			enabled = excluded.enabled,
			log_channel_id = excluded.log_channel_id,
			ignored_members = excluded.ignored_members,
			ignored_channels = excluded.ignored_channels,
			updated_at = excluded.updated_at`,
		gs.GuildID, enabled, gs.LogChannelID, gs.IgnoredMembers, gs.IgnoredChannels, now, now)
	return err
}

// LogSanction records one applied sanction.
func (d *Database) LogSanction(s *SanctionRow) error {
	byDup := 0
	if s.ByDuplicate {
		byDup = 1
	}
	if s.AppliedAt == 0 {
		s.AppliedAt = time.Now().Unix()
	}
	_, err := d.db.Exec(`
		INSERT INTO sanctions (id, guild_id, user_id, tier, reason, content, by_duplicate, detection_us, applied_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.ID, s.GuildID, s.UserID, s.Tier, s.Reason, s.Content, byDup, s.DetectionUS, s.AppliedAt)
	return err
}

// RecentSanctions returns the newest sanctions for a guild.
func (d *Database) RecentSanctions(guildID string, limit int) ([]*SanctionRow, error) {
	rows, err := d.db.Query(`
		SELECT id, guild_id, user_id, tier, reason, content, by_duplicate, detection_us, applied_at
		FROM sanctions WHERE guild_id = ?
		ORDER BY applied_at DESC LIMIT ?`, guildID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*SanctionRow
	for rows.Next() {
		var s SanctionRow
		var byDup int
		if err := rows.Scan(&s.ID, &s.GuildID, &s.UserID, &s.Tier, &s.Reason, &s.Content, &byDup, &s.DetectionUS, &s.AppliedAt); err != nil {
			return nil, err
		}
		s.ByDuplicate = byDup != 0
		out = append(out, &s)
	}
	return out, rows.Err()
}

// SanctionCounts returns per-tier totals for a guild.
func (d *Database) SanctionCounts(guildID string) (map[string]int64, error) {
	rows, err := d.db.Query(`
		SELECT tier, COUNT(*) FROM sanctions WHERE guild_id = ? GROUP BY tier`, guildID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]int64)
	for rows.Next() {
		var tier string
		var count int64
		if err := rows.Scan(&tier, &count); err != nil {
			return nil, err
		}
		out[tier] = count
	}
	return out, rows.Err()
}
