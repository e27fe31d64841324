package detectors_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JulMan-Dev/discord-anti-spam/internal/detectors"
	"github.com/JulMan-Dev/discord-anti-spam/internal/models"
)

// history builds records most recent first from contents given oldest
// first, mirroring how the cache hands them out.
func history(contents []string, base time.Time) []*models.MessageRecord {
	out := make([]*models.MessageRecord, 0, len(contents))
	for i := len(contents) - 1; i >= 0; i-- {
		out = append(out, &models.MessageRecord{
			MessageID: uint64(i + 1),
			GuildID:   10,
			AuthorID:  20,
			Content:   contents[i],
			SentAt:    base.Add(time.Duration(i) * 100 * time.Millisecond),
		})
	}
	return out
}

func TestGroupDuplicatesCountsAndRun(t *testing.T) {
	t.Parallel()
	base := time.Now()
	records := history([]string{"a", "a", "a", "b", "a"}, base)

	group := detectors.GroupDuplicates(records, "a", base.Add(-time.Second))

	// Four matches, but the run stops at the interleaved "b": only the
	// newest "a" is contiguous.
	require.Len(t, group.Matches, 4)
	require.Len(t, group.Run, 1)
	assert.Equal(t, uint64(5), group.Run[0].MessageID)
}

func TestGroupDuplicatesContiguousBurst(t *testing.T) {
	t.Parallel()
	base := time.Now()
	records := history([]string{"b", "a", "a", "a"}, base)

	group := detectors.GroupDuplicates(records, "a", base.Add(-time.Second))

	assert.Len(t, group.Matches, 3)
	assert.Len(t, group.Run, 3)
}

func TestGroupDuplicatesNoMatches(t *testing.T) {
	t.Parallel()
	base := time.Now()
	records := history([]string{"a", "a"}, base)

	group := detectors.GroupDuplicates(records, "z", base.Add(-time.Second))

	assert.Empty(t, group.Matches)
	assert.Empty(t, group.Run)
}

func TestGroupDuplicatesRespectsWindow(t *testing.T) {
	t.Parallel()
	base := time.Now()
	records := history([]string{"a", "a", "a"}, base)

	// Only the two newest fall inside the window.
	group := detectors.GroupDuplicates(records, "a", base.Add(50*time.Millisecond))

	assert.Len(t, group.Matches, 2)
	// The run ignores the window: it reflects the visible burst.
	assert.Len(t, group.Run, 3)
}

func TestDeletionSetUnions(t *testing.T) {
	t.Parallel()
	base := time.Now()
	records := history([]string{"a", "a", "b", "a"}, base)

	group := detectors.GroupDuplicates(records, "a", base.Add(-time.Second))
	set := group.DeletionSet()

	// Matches and Run overlap on the newest record; the union holds each
	// message once.
	ids := make(map[uint64]struct{}, len(set))
	for _, rec := range set {
		ids[rec.MessageID] = struct{}{}
	}
	assert.Len(t, set, 3)
	assert.Len(t, ids, 3)
}
