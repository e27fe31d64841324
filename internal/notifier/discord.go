package notifier

import (
	"fmt"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"

	"github.com/JulMan-Dev/discord-anti-spam/internal/models"
	"github.com/JulMan-Dev/discord-anti-spam/pkg/util"
)

var discordSession *discordgo.Session

// SetSession sets the Discord session used for log embeds.
func SetSession(session *discordgo.Session) {
	discordSession = session
}

func tierColor(tier models.Tier) int {
	switch tier {
	case models.TierWarn:
		return 0xFEE75C
	case models.TierMute:
		return 0xE67E22
	case models.TierKick:
		return 0xED4245
	case models.TierBan:
		return 0x992D22
	default:
		return 0x5865F2
	}
}

func tierEmoji(tier models.Tier) string {
	switch tier {
	case models.TierWarn:
		return "⚠️"
	case models.TierMute:
		return "🔇"
	case models.TierKick:
		return "👢"
	case models.TierBan:
		return "🔨"
	default:
		return "🛡️"
	}
}

// truncateExcerpt caps the trigger excerpt at max bytes, cutting on a rune
// boundary so multi-byte content never yields invalid UTF-8.
func truncateExcerpt(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "…"
}

// SendSanctionLog posts one embed per applied sanction to the guild's log
// channel. Best effort: failures are returned for logging, never retried.
func SendSanctionLog(channelID uint64, n models.Notification) error {
	if discordSession == nil || channelID == 0 {
		return nil
	}

	excerpt := truncateExcerpt(n.Content, 200)

	signal := "message flood"
	if n.ByDuplicate {
		signal = "duplicate spam"
	}

	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("%s Spam %s", tierEmoji(n.Tier), n.Tier),
		Color:       tierColor(n.Tier),
		Description: fmt.Sprintf("**Reason:** %s", n.Reason),
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "👤 Member",
				Value:  fmt.Sprintf("<@%s> (`%s`)", util.FormatSnowflake(n.Member.UserID), util.FormatSnowflake(n.Member.UserID)),
				Inline: true,
			},
			{
				Name:   "📍 Channel",
				Value:  fmt.Sprintf("<#%s>", util.FormatSnowflake(n.ChannelID)),
				Inline: true,
			},
			{
				Name:   "⚡ Detection",
				Value:  fmt.Sprintf("**%d µs** (%s)", n.DetectionTime.Microseconds(), signal),
				Inline: true,
			},
		},
	}
	if excerpt != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "💬 Trigger",
			Value: excerpt,
		})
	}

	_, err := discordSession.ChannelMessageSendEmbed(util.FormatSnowflake(channelID), embed)
	return err
}
