package models

import "time"

// Notification is emitted to observers once per successfully applied
// sanction. DetectionTime is the engine-side decision latency.
type Notification struct {
	Tier          Tier
	Member        Member
	ChannelID     uint64
	MessageID     uint64
	Content       string
	Reason        string
	ByDuplicate   bool
	AppliedAt     time.Time
	DetectionTime time.Duration
}
