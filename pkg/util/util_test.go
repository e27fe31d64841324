package util_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/JulMan-Dev/discord-anti-spam/pkg/util"
)

func TestParseSnowflake(t *testing.T) {
	t.Parallel()
	assert.Equal(t, uint64(170915625722576896), util.ParseSnowflake("170915625722576896"))
	assert.Equal(t, uint64(0), util.ParseSnowflake(""))
	assert.Equal(t, uint64(0), util.ParseSnowflake("not-an-id"))
	assert.Equal(t, uint64(0), util.ParseSnowflake("-5"))
}

func TestFormatSnowflake(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "170915625722576896", util.FormatSnowflake(170915625722576896))
	assert.Equal(t, "0", util.FormatSnowflake(0))
}

func TestTimer(t *testing.T) {
	t.Parallel()
	timer := util.NewTimer()
	time.Sleep(5 * time.Millisecond)

	elapsed := timer.Elapsed()
	assert.GreaterOrEqual(t, elapsed, 5*time.Millisecond)
	assert.GreaterOrEqual(t, timer.ElapsedUs(), int64(5000))

	timer.Reset()
	assert.Less(t, timer.Elapsed(), elapsed)
}
