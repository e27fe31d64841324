package bot

import (
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/JulMan-Dev/discord-anti-spam/internal/config"
	"github.com/JulMan-Dev/discord-anti-spam/internal/database"
	"github.com/JulMan-Dev/discord-anti-spam/internal/engine"
	"github.com/JulMan-Dev/discord-anti-spam/internal/logging"
	"github.com/JulMan-Dev/discord-anti-spam/internal/models"
	"github.com/JulMan-Dev/discord-anti-spam/pkg/util"
)

// SetupEventHandlers wires gateway events into the engine.
func (s *Session) SetupEventHandlers(eng *engine.Engine) {
	s.AddHandler(func(dg *discordgo.Session, m *discordgo.MessageCreate) {
		s.handleMessageCreate(dg, m, eng)
	})

	s.AddHandler(func(dg *discordgo.Session, m *discordgo.GuildMemberRemove) {
		guildID := util.ParseSnowflake(m.GuildID)
		userID := util.ParseSnowflake(m.User.ID)
		if eng.MemberDeparted(models.Member{UserID: userID, GuildID: guildID}) {
			logging.Debug("cleared sanction state for departed member %d in guild %d", userID, guildID)
		}
	})

	s.AddHandler(func(dg *discordgo.Session, g *discordgo.GuildCreate) {
		s.syncGuildSettings(g.Guild)
	})
}

func (s *Session) handleMessageCreate(dg *discordgo.Session, m *discordgo.MessageCreate, eng *engine.Engine) {
	if m.Author == nil || m.GuildID == "" {
		return
	}

	guildID := util.ParseSnowflake(m.GuildID)
	settings := config.GetSettingsStore()
	if !settings.IsEnabled(guildID) {
		return
	}

	authorID := util.ParseSnowflake(m.Author.ID)
	channelID := util.ParseSnowflake(m.ChannelID)
	if settings.IsIgnoredMember(guildID, authorID) || settings.IsIgnoredChannel(guildID, channelID) {
		return
	}

	member := models.Member{
		UserID:   authorID,
		GuildID:  guildID,
		Username: m.Author.Username,
		IsBot:    m.Author.Bot,
	}

	if m.Member != nil {
		member.Roles = make([]uint64, 0, len(m.Member.Roles))
		for _, r := range m.Member.Roles {
			member.Roles = append(member.Roles, util.ParseSnowflake(r))
		}
	}

	if guild, err := dg.State.Guild(m.GuildID); err == nil {
		member.IsOwner = guild.OwnerID == m.Author.ID
	}
	if perms, err := dg.State.MessagePermissions(m.Message); err == nil {
		member.Permissions = perms
	}

	sentAt := m.Timestamp
	if sentAt.IsZero() {
		sentAt = time.Now()
	}

	eng.ProcessMessage(&models.MessageEvent{
		MessageID: util.ParseSnowflake(m.ID),
		GuildID:   guildID,
		ChannelID: channelID,
		Content:   m.Content,
		SentAt:    sentAt,
		Author:    member,
	})
}

// syncGuildSettings pulls persisted guild settings into the in-memory
// store when a guild becomes available.
func (s *Session) syncGuildSettings(g *discordgo.Guild) {
	guildID := util.ParseSnowflake(g.ID)
	store := config.GetSettingsStore()

	store.Update(guildID, func(gs *config.GuildSettings) {
		gs.Name = g.Name
		gs.OwnerID = util.ParseSnowflake(g.OwnerID)
	})

	db := database.GetDB()
	if db == nil {
		return
	}

	row, err := db.GetGuildSettings(g.ID)
	if err != nil {
		logging.Warn("failed to load settings for guild %s: %v", g.ID, err)
		return
	}

	store.Update(guildID, func(gs *config.GuildSettings) {
		gs.Enabled = row.Enabled
		gs.LogChannelID = util.ParseSnowflake(row.LogChannelID)
		gs.IgnoredMembers = parseIDList(row.IgnoredMembers)
		gs.IgnoredChannels = parseIDList(row.IgnoredChannels)
	})
}

func parseIDList(s string) []uint64 {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]uint64, 0, len(parts))
	for _, p := range parts {
		if id := util.ParseSnowflake(strings.TrimSpace(p)); id != 0 {
			out = append(out, id)
		}
	}
	return out
}

// FormatIDList is the inverse of the settings row encoding.
func FormatIDList(ids []uint64) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, util.FormatSnowflake(id))
	}
	return strings.Join(parts, ",")
}
