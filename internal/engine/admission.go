package engine

import "github.com/JulMan-Dev/discord-anti-spam/internal/models"

type admitReason string

const (
	admitOK         admitReason = ""
	admitNoGuild    admitReason = "no guild context"
	admitSelf       admitReason = "own account"
	admitOwner      admitReason = "guild owner"
	admitBot        admitReason = "bot account"
	admitMember     admitReason = "ignored member"
	admitGuild      admitReason = "ignored guild"
	admitChannel    admitReason = "ignored channel"
	admitRole       admitReason = "ignored role"
	admitPermission admitReason = "ignored permission"
)

// admit runs the ignore-policy checks in order. Any non-empty reason means
// the event is dropped with no side effects.
func (e *Engine) admit(ev *models.MessageEvent) admitReason {
	if ev.GuildID == 0 {
		return admitNoGuild
	}
	if self := e.selfID.Load(); self != 0 && ev.Author.UserID == self {
		return admitSelf
	}
	if ev.Author.IsOwner && !e.opts.Debug {
		return admitOwner
	}
	if ev.Author.IsBot && e.opts.IgnoreBots {
		return admitBot
	}
	if e.opts.IgnoredMembers.Contains(ev.Author.UserID) {
		return admitMember
	}
	if e.opts.IgnoredGuilds.Contains(ev.GuildID) {
		return admitGuild
	}
	if e.opts.IgnoredChannels.Contains(ev.ChannelID) {
		return admitChannel
	}
	if e.opts.IgnoredRoles.ContainsAny(ev.Author.Roles) {
		return admitRole
	}
	if e.opts.PermissionExempt(ev.Author.Permissions) {
		return admitPermission
	}
	return admitOK
}
