package bot

import (
	"github.com/google/uuid"

	"github.com/JulMan-Dev/discord-anti-spam/internal/config"
	"github.com/JulMan-Dev/discord-anti-spam/internal/database"
	"github.com/JulMan-Dev/discord-anti-spam/internal/engine"
	"github.com/JulMan-Dev/discord-anti-spam/internal/logging"
	"github.com/JulMan-Dev/discord-anti-spam/internal/models"
	"github.com/JulMan-Dev/discord-anti-spam/internal/notifier"
	"github.com/JulMan-Dev/discord-anti-spam/pkg/util"
)

// RegisterObservers subscribes the host-side consumers of applied
// sanctions: the log-channel embed and the sanction log table.
func RegisterObservers(eng *engine.Engine, defaultLogChannel uint64) {
	eng.Notify(func(n models.Notification) {
		channelID := defaultLogChannel
		if configured := config.GetSettingsStore().LogChannel(n.Member.GuildID); configured != 0 {
			channelID = configured
		}
		if err := notifier.SendSanctionLog(channelID, n); err != nil {
			logging.Warn("failed to send sanction log for guild %d: %v", n.Member.GuildID, err)
		}
	})

	eng.Notify(func(n models.Notification) {
		db := database.GetDB()
		if db == nil {
			return
		}
		row := &database.SanctionRow{
			ID:          uuid.NewString(),
			GuildID:     util.FormatSnowflake(n.Member.GuildID),
			UserID:      util.FormatSnowflake(n.Member.UserID),
			Tier:        n.Tier.String(),
			Reason:      n.Reason,
			Content:     n.Content,
			ByDuplicate: n.ByDuplicate,
			DetectionUS: n.DetectionTime.Microseconds(),
			AppliedAt:   n.AppliedAt.Unix(),
		}
		if err := db.LogSanction(row); err != nil {
			logging.Warn("failed to persist sanction %s: %v", row.ID, err)
		}
	})
}
