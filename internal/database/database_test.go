package database_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JulMan-Dev/discord-anti-spam/internal/database"
)

// The package holds one global connection, so everything runs through a
// single test against one temp store.
func TestDatabaseRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	require.NoError(t, database.Initialize(path))
	defer database.Close()

	db := database.GetDB()
	require.NotNil(t, db)

	t.Run("guild settings default", func(t *testing.T) {
		gs, err := db.GetGuildSettings("123")
		require.NoError(t, err)
		assert.True(t, gs.Enabled)
		assert.Empty(t, gs.LogChannelID)
	})

	t.Run("guild settings upsert", func(t *testing.T) {
		gs := &database.GuildSettingsRow{
			GuildID:        "123",
			Enabled:        false,
			LogChannelID:   "456",
			IgnoredMembers: "1,2,3",
		}
		require.NoError(t, db.UpsertGuildSettings(gs))

		got, err := db.GetGuildSettings("123")
		require.NoError(t, err)
		assert.False(t, got.Enabled)
		assert.Equal(t, "456", got.LogChannelID)
		assert.Equal(t, "1,2,3", got.IgnoredMembers)

		// Second upsert updates in place.
		gs.Enabled = true
		require.NoError(t, db.UpsertGuildSettings(gs))
		got, err = db.GetGuildSettings("123")
		require.NoError(t, err)
		assert.True(t, got.Enabled)
	})

	t.Run("sanction log", func(t *testing.T) {
		for i, tier := range []string{"warn", "warn", "ban"} {
			require.NoError(t, db.LogSanction(&database.SanctionRow{
				ID:        string(rune('a' + i)),
				GuildID:   "123",
				UserID:    "3000",
				Tier:      tier,
				Reason:    "flood",
				AppliedAt: int64(1000 + i),
			}))
		}

		recent, err := db.RecentSanctions("123", 2)
		require.NoError(t, err)
		require.Len(t, recent, 2)
		assert.Equal(t, "ban", recent[0].Tier)

		counts, err := db.SanctionCounts("123")
		require.NoError(t, err)
		assert.Equal(t, int64(2), counts["warn"])
		assert.Equal(t, int64(1), counts["ban"])
	})
}
