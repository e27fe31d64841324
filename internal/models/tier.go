package models

// Tier is one of the four ordered sanction severities. Ordering matters:
// evaluation walks from TierBan down to TierWarn and the first tier whose
// threshold is crossed wins.
type Tier uint8

const (
	TierNone Tier = iota
	TierWarn
	TierMute
	TierKick
	TierBan
)

func (t Tier) String() string {
	switch t {
	case TierWarn:
		return "warn"
	case TierMute:
		return "mute"
	case TierKick:
		return "kick"
	case TierBan:
		return "ban"
	default:
		return "none"
	}
}

// Renewable reports whether the tier may be applied repeatedly to the same
// member. Mute is a renewable timeout, not a one-shot escalation; warn, kick
// and ban are applied at most once per member until state is cleared.
func (t Tier) Renewable() bool {
	return t == TierMute
}
