package commands

import "github.com/bwmarrin/discordgo"

// GetAllCommands returns the slash command definitions.
func GetAllCommands() []*discordgo.ApplicationCommand {
	manageGuild := int64(discordgo.PermissionManageServer)

	return []*discordgo.ApplicationCommand{
		{
			Name:        "ping",
			Description: "Check bot responsiveness",
		},
		{
			Name:        "status",
			Description: "Show anti-spam engine counters and guild state",
		},
		{
			Name:        "stats",
			Description: "Show host system statistics",
		},
		{
			Name:        "thresholds",
			Description: "Show the configured escalation thresholds",
		},
		{
			Name:                     "antispam",
			Description:              "Enable or disable anti-spam for this guild",
			DefaultMemberPermissions: &manageGuild,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionBoolean,
					Name:        "enabled",
					Description: "Whether detection runs in this guild",
					Required:    true,
				},
			},
		},
		{
			Name:                     "logchannel",
			Description:              "Set the sanction log channel",
			DefaultMemberPermissions: &manageGuild,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionChannel,
					Name:        "channel",
					Description: "Channel receiving sanction embeds",
					Required:    true,
				},
			},
		},
		{
			Name:                     "ignore",
			Description:              "Manage ignored members and channels",
			DefaultMemberPermissions: &manageGuild,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "member",
					Description: "Toggle ignoring a member",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionUser,
							Name:        "target",
							Description: "Member to toggle",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "channel",
					Description: "Toggle ignoring a channel",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionChannel,
							Name:        "target",
							Description: "Channel to toggle",
							Required:    true,
						},
					},
				},
			},
		},
		{
			Name:                     "reset",
			Description:              "Reset the engine's message cache and sanction state",
			DefaultMemberPermissions: &manageGuild,
		},
	}
}
