package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseIDList(t *testing.T) {
	t.Parallel()
	assert.Nil(t, parseIDList(""))
	assert.Equal(t, []uint64{1, 2, 3}, parseIDList("1,2,3"))
	assert.Equal(t, []uint64{10, 20}, parseIDList(" 10 , 20 "))
	// Garbage entries are dropped, not fatal.
	assert.Equal(t, []uint64{5}, parseIDList("5,abc,"))
}

func TestFormatIDList(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "", FormatIDList(nil))
	assert.Equal(t, "1,2,3", FormatIDList([]uint64{1, 2, 3}))
}

func TestIDListRoundTrip(t *testing.T) {
	t.Parallel()
	ids := []uint64{170915625722576896, 1, 42}
	assert.Equal(t, ids, parseIDList(FormatIDList(ids)))
}
