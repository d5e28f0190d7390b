package sqlite

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/journal/pkg/types"
)

// openTestStore opens a store in a fresh temp directory and closes it when
// the test ends.
func openTestStore(t *testing.T, uniqueDates bool) *Store {
	t.Helper()
	cfg := types.DefaultConfig(t.TempDir())
	cfg.UniqueDates = uniqueDates
	s, err := Open(t.Context(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

// day parses a YYYY-MM-DD literal or fails the test.
func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := types.ParseDate(s)
	require.NoError(t, err)
	return d
}

// newTestEntry builds a fully populated entry for date.
func newTestEntry(t *testing.T, date string) *types.Entry {
	t.Helper()
	e := types.NewEntry(day(t, date))
	e.Content = "<p>Entry for " + date + "</p>"
	e.PrimaryMood = "Happy"
	e.SecondaryMoods = []string{"Calm", "Hopeful"}
	e.Tags = []string{"work", "family"}
	e.CreatedAt = time.Date(2024, 3, 15, 21, 30, 5, 0, time.Local)
	return e
}

// assertEntryEqual compares every field, using Equal for times.
func assertEntryEqual(t *testing.T, want, got *types.Entry) {
	t.Helper()
	require.NotNil(t, got)
	assert.Equal(t, want.ID, got.ID, "ID")
	assert.Equal(t, want.DateString(), got.DateString(), "EntryDate")
	assert.True(t, want.EntryDate.Equal(got.EntryDate), "EntryDate want %v got %v", want.EntryDate, got.EntryDate)
	assert.Equal(t, want.Content, got.Content, "Content")
	assert.Equal(t, want.PrimaryMood, got.PrimaryMood, "PrimaryMood")
	assert.Equal(t, want.SecondaryMoods, got.SecondaryMoods, "SecondaryMoods")
	assert.Equal(t, want.Tags, got.Tags, "Tags")
	assert.True(t, want.CreatedAt.Equal(got.CreatedAt), "CreatedAt want %v got %v", want.CreatedAt, got.CreatedAt)
}

// entryDates returns the persisted dates of entries in order.
func entryDates(entries []*types.Entry) []string {
	dates := make([]string, len(entries))
	for i, e := range entries {
		dates[i] = e.DateString()
	}
	return dates
}
