package cache

import (
	"sync"
	"time"

	"github.com/JulMan-Dev/discord-anti-spam/internal/models"
)

// MessageCache holds the recent message fingerprints per guild, in arrival
// order. It de-duplicates by message id, so re-processing the same gateway
// event never double-counts. All methods are safe for concurrent use; no
// method does I/O.
type MessageCache struct {
	mu      sync.RWMutex
	byGuild map[uint64][]*models.MessageRecord
	seen    map[uint64]struct{}
}

func NewMessageCache() *MessageCache {
	return &MessageCache{
		byGuild: make(map[uint64][]*models.MessageRecord),
		seen:    make(map[uint64]struct{}),
	}
}

// Append stores a record for its guild. It returns false when the message id
// was already cached.
func (c *MessageCache) Append(rec *models.MessageRecord) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, dup := c.seen[rec.MessageID]; dup {
		return false
	}
	c.seen[rec.MessageID] = struct{}{}
	c.byGuild[rec.GuildID] = append(c.byGuild[rec.GuildID], rec)
	return true
}

// WindowMatches returns the author's records in the guild sent strictly
// after since, most recent first.
func (c *MessageCache) WindowMatches(guildID, authorID uint64, since time.Time) []*models.MessageRecord {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var out []*models.MessageRecord
	recs := c.byGuild[guildID]
	for i := len(recs) - 1; i >= 0; i-- {
		if recs[i].AuthorID == authorID && recs[i].SentAt.After(since) {
			out = append(out, recs[i])
		}
	}
	return out
}

// DuplicateMatches returns the subset of WindowMatches whose content equals
// content, most recent first.
func (c *MessageCache) DuplicateMatches(guildID, authorID uint64, content string, since time.Time) []*models.MessageRecord {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var out []*models.MessageRecord
	recs := c.byGuild[guildID]
	for i := len(recs) - 1; i >= 0; i-- {
		if recs[i].AuthorID == authorID && recs[i].Content == content && recs[i].SentAt.After(since) {
			out = append(out, recs[i])
		}
	}
	return out
}

// AuthorRecords returns every cached record for the author in the guild,
// most recent first.
func (c *MessageCache) AuthorRecords(guildID, authorID uint64) []*models.MessageRecord {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var out []*models.MessageRecord
	recs := c.byGuild[guildID]
	for i := len(recs) - 1; i >= 0; i-- {
		if recs[i].AuthorID == authorID {
			out = append(out, recs[i])
		}
	}
	return out
}

// PurgeAuthor drops every record for the author across all guilds. Sanction
// cleanup is deliberately not guild-scoped: once sanctioned anywhere, the
// author's entire cached history goes.
func (c *MessageCache) PurgeAuthor(authorID uint64) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for guildID, recs := range c.byGuild {
		kept := recs[:0]
		for _, rec := range recs {
			if rec.AuthorID == authorID {
				delete(c.seen, rec.MessageID)
				removed++
				continue
			}
			kept = append(kept, rec)
		}
		if len(kept) == 0 {
			delete(c.byGuild, guildID)
		} else {
			c.byGuild[guildID] = kept
		}
	}
	return removed
}

// Evict drops records sent at or before cutoff.
func (c *MessageCache) Evict(cutoff time.Time) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for guildID, recs := range c.byGuild {
		kept := recs[:0]
		for _, rec := range recs {
			if !rec.SentAt.After(cutoff) {
				delete(c.seen, rec.MessageID)
				removed++
				continue
			}
			kept = append(kept, rec)
		}
		if len(kept) == 0 {
			delete(c.byGuild, guildID)
		} else {
			c.byGuild[guildID] = kept
		}
	}
	return removed
}

// Reset empties the cache entirely.
func (c *MessageCache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.byGuild = make(map[uint64][]*models.MessageRecord)
	c.seen = make(map[uint64]struct{})
}

// Size returns the number of cached records.
func (c *MessageCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.seen)
}
