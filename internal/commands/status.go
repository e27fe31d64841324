package commands

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/JulMan-Dev/discord-anti-spam/internal/config"
	"github.com/JulMan-Dev/discord-anti-spam/internal/database"
	"github.com/JulMan-Dev/discord-anti-spam/internal/metrics"
	"github.com/JulMan-Dev/discord-anti-spam/pkg/util"
)

func (h *Handler) handleStatus(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	snap := metrics.GetRegistry().Snapshot()

	guildID := util.ParseSnowflake(i.GuildID)
	enabled := config.GetSettingsStore().IsEnabled(guildID)
	enabledStr := "enabled"
	if !enabled {
		enabledStr = "disabled"
	}

	embed := &discordgo.MessageEmbed{
		Title: "🛡️ Anti-Spam Status",
		Color: 0x5865F2,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name: "Engine",
				Value: fmt.Sprintf("Processed: **%d**\nIgnored: **%d**\nReplayed: **%d**\nCache size: **%d**",
					snap.Processed, snap.Ignored, snap.Deduped, h.engine.Cache().Size()),
				Inline: true,
			},
			{
				Name: "Sanctions",
				Value: fmt.Sprintf("Warns: **%d**\nMutes: **%d**\nKicks: **%d**\nBans: **%d**\nApply errors: **%d**",
					snap.Warns, snap.Mutes, snap.Kicks, snap.Bans, snap.ApplyErrors),
				Inline: true,
			},
			{
				Name: "Detection latency",
				Value: fmt.Sprintf("avg **%d µs**, max **%d µs** over %d events",
					snap.Latency.Avg/1000, snap.Latency.Max/1000, snap.Latency.Count),
			},
			{
				Name:  "This guild",
				Value: fmt.Sprintf("Detection **%s**", enabledStr),
			},
		},
	}

	if db := database.GetDB(); db != nil {
		if counts, err := db.SanctionCounts(i.GuildID); err == nil && len(counts) > 0 {
			embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
				Name: "Guild history",
				Value: fmt.Sprintf("warn %d / mute %d / kick %d / ban %d",
					counts["warn"], counts["mute"], counts["kick"], counts["ban"]),
			})
		}
	}

	return respondEmbed(s, i, embed)
}
