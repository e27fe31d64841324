package engine

import (
	"github.com/JulMan-Dev/discord-anti-spam/internal/config"
	"github.com/JulMan-Dev/discord-anti-spam/internal/models"
)

// tierRule is one row of the ordered tier table. A zero threshold disables
// that signal for the tier.
type tierRule struct {
	tier               models.Tier
	enabled            bool
	countThreshold     int
	duplicateThreshold int
}

// buildTierRules lays the table out most severe first: evaluation walks
// ban, mute, kick, warn and the first eligible crossing wins.
func buildTierRules(o *config.Options) []tierRule {
	return []tierRule{
		{models.TierBan, o.BanEnabled, o.BanThreshold, o.MaxDuplicatesBan},
		{models.TierMute, o.MuteEnabled, o.MuteThreshold, o.MaxDuplicatesMute},
		{models.TierKick, o.KickEnabled, o.KickThreshold, o.MaxDuplicatesKick},
		{models.TierWarn, o.WarnEnabled, o.WarnThreshold, o.MaxDuplicatesWarn},
	}
}

// evaluate selects the single highest-severity tier whose window-count or
// duplicate-count threshold is crossed and which the tracker still allows.
// An ineligible tier is skipped, not a stop: the walk continues downward.
// byDuplicate reports which signal fired; when both did, the count signal
// wins.
func (e *Engine) evaluate(windowCount, duplicateCount int, guildID, authorID uint64) (models.Tier, bool) {
	for _, rule := range e.rules {
		if !rule.enabled {
			continue
		}

		byCount := rule.countThreshold > 0 && windowCount >= rule.countThreshold
		byDuplicate := rule.duplicateThreshold > 0 && duplicateCount >= rule.duplicateThreshold
		if !byCount && !byDuplicate {
			continue
		}

		if !e.tracker.Eligible(rule.tier, guildID, authorID) {
			continue
		}

		return rule.tier, !byCount
	}
	return models.TierNone, false
}
