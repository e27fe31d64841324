package commands

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/JulMan-Dev/discord-anti-spam/internal/bot"
	"github.com/JulMan-Dev/discord-anti-spam/internal/config"
	"github.com/JulMan-Dev/discord-anti-spam/internal/database"
	"github.com/JulMan-Dev/discord-anti-spam/internal/logging"
	"github.com/JulMan-Dev/discord-anti-spam/pkg/util"
)

func (h *Handler) handleThresholds(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	opts := h.engine.Options()

	embed := &discordgo.MessageEmbed{
		Title: "⚙️ Escalation Thresholds",
		Color: 0x5865F2,
		Description: fmt.Sprintf("Window: **%s** · Duplicate window: **%s** · Unmute after: **%s**",
			opts.MaxInterval, opts.MaxDuplicatesInterval, opts.UnMuteDuration),
		Fields: []*discordgo.MessageEmbedField{
			{
				Name: "Message count",
				Value: fmt.Sprintf("warn ≥ %d\nmute ≥ %d\nkick ≥ %d\nban ≥ %d",
					opts.WarnThreshold, opts.MuteThreshold, opts.KickThreshold, opts.BanThreshold),
				Inline: true,
			},
			{
				Name: "Duplicate count",
				Value: fmt.Sprintf("warn ≥ %d\nmute ≥ %d\nkick ≥ %d\nban ≥ %d",
					opts.MaxDuplicatesWarn, opts.MaxDuplicatesMute, opts.MaxDuplicatesKick, opts.MaxDuplicatesBan),
				Inline: true,
			},
		},
	}
	return respondEmbed(s, i, embed)
}

func (h *Handler) handleAntispamToggle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	enabled := i.ApplicationCommandData().Options[0].BoolValue()
	guildID := util.ParseSnowflake(i.GuildID)

	config.GetSettingsStore().SetEnabled(guildID, enabled)
	h.persistSettings(i.GuildID, guildID)

	if enabled {
		return respond(s, i, "✅ Anti-spam detection enabled for this guild.")
	}
	return respond(s, i, "🛑 Anti-spam detection disabled for this guild.")
}

func (h *Handler) handleLogChannel(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	channel := i.ApplicationCommandData().Options[0].ChannelValue(s)
	guildID := util.ParseSnowflake(i.GuildID)

	config.GetSettingsStore().SetLogChannel(guildID, util.ParseSnowflake(channel.ID))
	h.persistSettings(i.GuildID, guildID)

	return respond(s, i, fmt.Sprintf("📝 Sanction logs will go to <#%s>.", channel.ID))
}

func (h *Handler) handleIgnore(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	data := i.ApplicationCommandData()
	sub := data.Options[0]
	guildID := util.ParseSnowflake(i.GuildID)
	store := config.GetSettingsStore()

	switch sub.Name {
	case "member":
		user := sub.Options[0].UserValue(s)
		userID := util.ParseSnowflake(user.ID)
		if store.IsIgnoredMember(guildID, userID) {
			store.RemoveIgnoredMember(guildID, userID)
			h.persistSettings(i.GuildID, guildID)
			return respond(s, i, fmt.Sprintf("👁️ <@%s> is watched again.", user.ID))
		}
		store.AddIgnoredMember(guildID, userID)
		h.persistSettings(i.GuildID, guildID)
		return respond(s, i, fmt.Sprintf("🙈 <@%s> is now ignored.", user.ID))

	case "channel":
		channel := sub.Options[0].ChannelValue(s)
		channelID := util.ParseSnowflake(channel.ID)
		if store.IsIgnoredChannel(guildID, channelID) {
			store.RemoveIgnoredChannel(guildID, channelID)
			h.persistSettings(i.GuildID, guildID)
			return respond(s, i, fmt.Sprintf("👁️ <#%s> is watched again.", channel.ID))
		}
		store.AddIgnoredChannel(guildID, channelID)
		h.persistSettings(i.GuildID, guildID)
		return respond(s, i, fmt.Sprintf("🙈 <#%s> is now ignored.", channel.ID))
	}
	return nil
}

func (h *Handler) handleReset(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	h.engine.Reset()
	return respond(s, i, "♻️ Engine state reset: message cache and sanction history cleared.")
}

// persistSettings writes the in-memory guild settings through to SQLite.
func (h *Handler) persistSettings(guildIDStr string, guildID uint64) {
	db := database.GetDB()
	if db == nil {
		return
	}

	gs := config.GetSettingsStore().Snapshot(guildID)
	row := &database.GuildSettingsRow{
		GuildID:         guildIDStr,
		Enabled:         gs.Enabled,
		LogChannelID:    util.FormatSnowflake(gs.LogChannelID),
		IgnoredMembers:  bot.FormatIDList(gs.IgnoredMembers),
		IgnoredChannels: bot.FormatIDList(gs.IgnoredChannels),
		UpdatedAt:       time.Now().Unix(),
	}
	if err := db.UpsertGuildSettings(row); err != nil {
		logging.Warn("failed to persist settings for guild %s: %v", guildIDStr, err)
	}
}
