package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/JulMan-Dev/discord-anti-spam/internal/config"
)

func TestRetention(t *testing.T) {
	t.Parallel()
	opts := config.DefaultOptions()
	opts.MaxInterval = 2 * time.Second
	opts.MaxDuplicatesInterval = 5 * time.Second
	assert.Equal(t, 5*time.Second, opts.Retention())

	opts.MaxDuplicatesInterval = time.Second
	assert.Equal(t, 2*time.Second, opts.Retention())
}

func TestPermissionExempt(t *testing.T) {
	t.Parallel()
	opts := config.DefaultOptions()
	assert.False(t, opts.PermissionExempt(0x8))

	opts.IgnoredPermissions = []int64{0x8, 0x20}
	assert.True(t, opts.PermissionExempt(0x8))
	assert.True(t, opts.PermissionExempt(0x400|0x20))
	assert.False(t, opts.PermissionExempt(0x400))
}

func TestIDFilter(t *testing.T) {
	t.Parallel()
	f := config.IDFilter{IDs: []uint64{1, 2}}
	assert.True(t, f.Contains(2))
	assert.False(t, f.Contains(3))

	f.Match = func(id uint64) bool { return id > 100 }
	assert.True(t, f.Contains(101))
	assert.True(t, f.Contains(1))
	assert.False(t, f.Contains(3))
}

func TestRoleFilterSeesFullRoleSet(t *testing.T) {
	t.Parallel()
	f := config.RoleFilter{IDs: []uint64{7}}
	assert.True(t, f.ContainsAny([]uint64{5, 7}))
	assert.False(t, f.ContainsAny([]uint64{5, 6}))
	assert.False(t, f.ContainsAny(nil))

	// The predicate receives every role the member holds at once.
	f = config.RoleFilter{
		Match: func(roles []uint64) bool { return len(roles) >= 2 },
	}
	assert.True(t, f.ContainsAny([]uint64{1, 2}))
	assert.False(t, f.ContainsAny([]uint64{1}))
}
