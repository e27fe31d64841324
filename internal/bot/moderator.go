package bot

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/JulMan-Dev/discord-anti-spam/internal/engine"
	"github.com/JulMan-Dev/discord-anti-spam/internal/logging"
	"github.com/JulMan-Dev/discord-anti-spam/internal/models"
	"github.com/JulMan-Dev/discord-anti-spam/pkg/util"
)

// DiscordModerator implements dispatcher.Moderator on top of discordgo,
// with a direct REST fast path for bans.
type DiscordModerator struct {
	session *Session
	fastBan *BanRequestExecutor
}

func NewDiscordModerator(session *Session, httpPoolSize int) *DiscordModerator {
	return &DiscordModerator{
		session: session,
		fastBan: NewBanRequestExecutor(session.Token(), httpPoolSize),
	}
}

func (m *DiscordModerator) ApplySanction(ctx context.Context, job *engine.SanctionJob) (bool, error) {
	dg := m.session.GetDiscord()
	guildID := util.FormatSnowflake(job.GuildID)
	userID := util.FormatSnowflake(job.Member.UserID)

	switch job.Tier {
	case models.TierWarn:
		channelID := util.FormatSnowflake(job.ChannelID)
		msg := fmt.Sprintf("<@%s>, slow down. You have been warned for spamming.", userID)
		if _, err := dg.ChannelMessageSend(channelID, msg, discordgo.WithContext(ctx)); err != nil {
			return false, fmt.Errorf("warn failed: %w", err)
		}
		return true, nil

	case models.TierMute:
		until := time.Now().Add(job.Duration)
		if err := dg.GuildMemberTimeout(guildID, userID, &until, discordgo.WithContext(ctx)); err != nil {
			return false, fmt.Errorf("mute failed: %w", err)
		}
		return true, nil

	case models.TierKick:
		if err := dg.GuildMemberDeleteWithReason(guildID, userID, job.Reason, discordgo.WithContext(ctx)); err != nil {
			return false, fmt.Errorf("kick failed: %w", err)
		}
		return true, nil

	case models.TierBan:
		// Direct REST first; discordgo fallback keeps bans working when
		// the fast path is rate limited.
		if err := m.fastBan.ExecuteBan(job.GuildID, job.Member.UserID, job.Reason); err == nil {
			return true, nil
		} else {
			logging.Debug("fast ban path failed for %s: %v", userID, err)
		}
		if err := dg.GuildBanCreateWithReason(guildID, userID, job.Reason, 0, discordgo.WithContext(ctx)); err != nil {
			return false, fmt.Errorf("ban failed: %w", err)
		}
		return true, nil
	}

	return false, fmt.Errorf("unknown tier %d", job.Tier)
}

// DeleteMessages bulk-deletes the records per channel, best effort.
func (m *DiscordModerator) DeleteMessages(ctx context.Context, records []*models.MessageRecord) error {
	dg := m.session.GetDiscord()

	byChannel := make(map[uint64][]string)
	for _, rec := range records {
		byChannel[rec.ChannelID] = append(byChannel[rec.ChannelID], util.FormatSnowflake(rec.MessageID))
	}

	var firstErr error
	for channelID, ids := range byChannel {
		channel := util.FormatSnowflake(channelID)
		var err error
		if len(ids) == 1 {
			err = dg.ChannelMessageDelete(channel, ids[0], discordgo.WithContext(ctx))
		} else {
			err = dg.ChannelMessagesBulkDelete(channel, ids, discordgo.WithContext(ctx))
		}
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
