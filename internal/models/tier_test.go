package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/JulMan-Dev/discord-anti-spam/internal/models"
)

func TestTierOrdering(t *testing.T) {
	t.Parallel()
	assert.True(t, models.TierWarn < models.TierMute)
	assert.True(t, models.TierMute < models.TierKick)
	assert.True(t, models.TierKick < models.TierBan)
}

func TestTierString(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "none", models.TierNone.String())
	assert.Equal(t, "warn", models.TierWarn.String())
	assert.Equal(t, "mute", models.TierMute.String())
	assert.Equal(t, "kick", models.TierKick.String())
	assert.Equal(t, "ban", models.TierBan.String())
}

func TestRenewable(t *testing.T) {
	t.Parallel()
	assert.True(t, models.TierMute.Renewable())
	assert.False(t, models.TierWarn.Renewable())
	assert.False(t, models.TierKick.Renewable())
	assert.False(t, models.TierBan.Renewable())
}
