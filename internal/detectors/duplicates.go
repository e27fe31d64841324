package detectors

import (
	"time"

	"github.com/JulMan-Dev/discord-anti-spam/internal/models"
)

// DuplicateGroup is the outcome of grouping an author's records against a
// reference content.
//
// Matches holds the identical-content records inside the duplicate window;
// its length feeds the per-tier duplicate thresholds. Run is the contiguous
// most-recent burst of identical messages, used only to pick which messages
// are deleted together with a duplicate-triggered sanction.
type DuplicateGroup struct {
	Matches []*models.MessageRecord
	Run     []*models.MessageRecord
}

// GroupDuplicates expects records most recent first, as returned by the
// cache. The run walks backward from the newest record while content keeps
// matching the first duplicate match encountered, and stops at the first
// record whose content differs: a trailing isolated duplicate deeper in
// history is counted in Matches but excluded from Run.
func GroupDuplicates(records []*models.MessageRecord, content string, since time.Time) DuplicateGroup {
	var group DuplicateGroup

	for _, rec := range records {
		if rec.Content == content && rec.SentAt.After(since) {
			group.Matches = append(group.Matches, rec)
		}
	}

	// No duplicates, no run walk.
	if len(group.Matches) == 0 {
		return group
	}

	reference := group.Matches[0].Content
	for _, rec := range records {
		if rec.Content != reference {
			break
		}
		group.Run = append(group.Run, rec)
	}
	return group
}

// DeletionSet is the union of Matches and Run without repeats, the message
// set handed to the moderation collaborator when the duplicate signal fired.
func (g DuplicateGroup) DeletionSet() []*models.MessageRecord {
	seen := make(map[uint64]struct{}, len(g.Matches)+len(g.Run))
	out := make([]*models.MessageRecord, 0, len(g.Matches)+len(g.Run))
	for _, rec := range g.Matches {
		if _, ok := seen[rec.MessageID]; ok {
			continue
		}
		seen[rec.MessageID] = struct{}{}
		out = append(out, rec)
	}
	for _, rec := range g.Run {
		if _, ok := seen[rec.MessageID]; ok {
			continue
		}
		seen[rec.MessageID] = struct{}{}
		out = append(out, rec)
	}
	return out
}
