package models

import "time"

// MessageRecord is one observed message fingerprint. Records are immutable
// once created and owned by the cache; they leave the cache only through
// eviction or a per-author purge.
type MessageRecord struct {
	MessageID uint64
	GuildID   uint64
	AuthorID  uint64
	ChannelID uint64
	Content   string
	SentAt    time.Time
}

// Member carries the author attributes the admission filter needs. The bot
// layer resolves these from session state; library consumers fill them in
// directly.
type Member struct {
	UserID      uint64
	GuildID     uint64
	Username    string
	IsBot       bool
	IsOwner     bool
	Roles       []uint64
	Permissions int64
}

// MessageEvent is one inbound message as handed to the engine.
type MessageEvent struct {
	MessageID uint64
	GuildID   uint64
	ChannelID uint64
	Content   string
	SentAt    time.Time
	Author    Member
}

// Record converts the event into its cacheable fingerprint.
func (e *MessageEvent) Record() *MessageRecord {
	return &MessageRecord{
		MessageID: e.MessageID,
		GuildID:   e.GuildID,
		AuthorID:  e.Author.UserID,
		ChannelID: e.ChannelID,
		Content:   e.Content,
		SentAt:    e.SentAt,
	}
}
