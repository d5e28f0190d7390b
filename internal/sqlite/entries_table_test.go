package sqlite

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/journal/pkg/types"
)

func TestSave_CreateThenRead(t *testing.T) {
	s := openTestStore(t, true)
	ctx := t.Context()

	e := newTestEntry(t, "2024-03-15")
	e.ID = 999 // ignored on input

	id, err := s.Save(ctx, e)
	require.NoError(t, err)
	assert.Positive(t, id)
	assert.Equal(t, id, e.ID, "Save sets the assigned id on the entry")
	assert.NotEqual(t, int64(999), id)

	got, err := s.GetByID(ctx, id)
	require.NoError(t, err)
	assertEntryEqual(t, e, got)
}

func TestSave_AssignsIncreasingIDs(t *testing.T) {
	s := openTestStore(t, true)
	ctx := t.Context()

	var last int64
	for _, d := range []string{"2024-01-01", "2024-01-02", "2024-01-03"} {
		id, err := s.Save(ctx, newTestEntry(t, d))
		require.NoError(t, err)
		assert.Greater(t, id, last)
		last = id
	}
}

func TestSave_DefaultsCreatedAtAndLists(t *testing.T) {
	s := openTestStore(t, true)
	ctx := t.Context()
	fixed := time.Date(2024, 6, 1, 8, 15, 30, 123456789, time.Local)
	s.now = func() time.Time { return fixed }

	e := &types.Entry{EntryDate: time.Date(2024, 6, 1, 17, 0, 0, 0, time.Local), Content: "plain"}
	id, err := s.Save(ctx, e)
	require.NoError(t, err)

	got, err := s.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "2024-06-01", got.DateString())
	assert.Equal(t, "2024-06-01 08:15:30", types.FormatTimestamp(got.CreatedAt))
	assert.NotNil(t, got.SecondaryMoods)
	assert.NotNil(t, got.Tags)
	assert.Empty(t, got.SecondaryMoods)
	assert.Empty(t, got.Tags)
	assert.Equal(t, "", got.PrimaryMood)
}

func TestSave_RejectsInvalidInput(t *testing.T) {
	s := openTestStore(t, true)
	ctx := t.Context()

	_, err := s.Save(ctx, nil)
	assert.ErrorIs(t, err, types.ErrInvalidEntry)

	_, err = s.Save(ctx, &types.Entry{Content: "no date"})
	assert.ErrorIs(t, err, types.ErrInvalidDate)

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSave_CreatedAtInOtherZone(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("time zone data unavailable: %v", err)
	}
	saved := time.Local
	time.Local = ny
	t.Cleanup(func() { time.Local = saved })

	s := openTestStore(t, true)
	ctx := t.Context()

	e := newTestEntry(t, "2024-03-15")
	e.CreatedAt = time.Date(2024, 3, 15, 21, 30, 5, 500, time.UTC)
	want := time.Date(2024, 3, 15, 21, 30, 5, 0, time.UTC)

	id, err := s.Save(ctx, e)
	require.NoError(t, err)
	assert.True(t, want.Equal(e.CreatedAt), "caller struct holds %v", e.CreatedAt)
	assert.Equal(t, ny, e.CreatedAt.Location())

	got, err := s.GetByID(ctx, id)
	require.NoError(t, err)
	assert.True(t, want.Equal(got.CreatedAt), "read back %v", got.CreatedAt)
	assertEntryEqual(t, e, got)
}

func TestSave_RejectsInvalidUTF8Labels(t *testing.T) {
	s := openTestStore(t, true)
	ctx := t.Context()

	bad := newTestEntry(t, "2024-03-15")
	bad.Tags = []string{"work", "a\xffb"}
	_, err := s.Save(ctx, bad)
	assert.ErrorIs(t, err, types.ErrInvalidText)

	bad = newTestEntry(t, "2024-03-15")
	bad.SecondaryMoods = []string{"\xc3"}
	_, err = s.Save(ctx, bad)
	assert.ErrorIs(t, err, types.ErrInvalidText)

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	good := newTestEntry(t, "2024-03-15")
	id, err := s.Save(ctx, good)
	require.NoError(t, err)

	good.Tags = []string{"\xff"}
	_, err = s.Update(ctx, good)
	assert.ErrorIs(t, err, types.ErrInvalidText)

	got, err := s.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []string{"work", "family"}, got.Tags)
}

func TestSave_DuplicateDatePolicy(t *testing.T) {
	t.Run("unique dates rejects second save", func(t *testing.T) {
		s := openTestStore(t, true)
		ctx := t.Context()

		_, err := s.Save(ctx, newTestEntry(t, "2024-03-15"))
		require.NoError(t, err)

		_, err = s.Save(ctx, newTestEntry(t, "2024-03-15"))
		assert.ErrorIs(t, err, types.ErrDuplicateDate)

		n, err := s.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n, "rejected save must not write")
	})

	t.Run("permissive mode keeps duplicates and first match wins", func(t *testing.T) {
		s := openTestStore(t, false)
		ctx := t.Context()

		first := newTestEntry(t, "2024-03-15")
		first.Content = "first"
		firstID, err := s.Save(ctx, first)
		require.NoError(t, err)

		second := newTestEntry(t, "2024-03-15")
		second.Content = "second"
		_, err = s.Save(ctx, second)
		require.NoError(t, err)

		all, err := s.GetAll(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 2)

		for range 3 {
			got, err := s.GetByDate(ctx, day(t, "2024-03-15"))
			require.NoError(t, err)
			assert.Equal(t, firstID, got.ID)
			assert.Equal(t, "first", got.Content)
		}
	})
}

func TestGetAll_OrderedByDateDescending(t *testing.T) {
	s := openTestStore(t, true)
	ctx := t.Context()

	for _, d := range []string{"2024-01-01", "2024-03-15", "2024-02-10"} {
		_, err := s.Save(ctx, newTestEntry(t, d))
		require.NoError(t, err)
	}

	all, err := s.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-03-15", "2024-02-10", "2024-01-01"}, entryDates(all))
}

func TestGetAll_EmptyStore(t *testing.T) {
	s := openTestStore(t, true)

	all, err := s.GetAll(t.Context())
	require.NoError(t, err)
	assert.NotNil(t, all)
	assert.Empty(t, all)
}

func TestGetAll_TiesStableByID(t *testing.T) {
	s := openTestStore(t, false)
	ctx := t.Context()

	var ids []int64
	for range 3 {
		id, err := s.Save(ctx, newTestEntry(t, "2024-05-05"))
		require.NoError(t, err)
		ids = append(ids, id)
	}

	all, err := s.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	for i, e := range all {
		assert.Equal(t, ids[i], e.ID)
	}
}

func TestGetByID_Missing(t *testing.T) {
	s := openTestStore(t, true)
	ctx := t.Context()

	for _, id := range []int64{-1, 0, 1, 42} {
		_, err := s.GetByID(ctx, id)
		assert.ErrorIs(t, err, types.ErrNotFound, "id %d", id)
	}
}

func TestGetByDate(t *testing.T) {
	s := openTestStore(t, true)
	ctx := t.Context()

	for _, d := range []string{"2024-03-14", "2024-03-15", "2024-03-16"} {
		_, err := s.Save(ctx, newTestEntry(t, d))
		require.NoError(t, err)
	}

	t.Run("exact match", func(t *testing.T) {
		got, err := s.GetByDate(ctx, day(t, "2024-03-15"))
		require.NoError(t, err)
		assert.Equal(t, "2024-03-15", got.DateString())
	})

	t.Run("clock is ignored", func(t *testing.T) {
		got, err := s.GetByDate(ctx, time.Date(2024, 3, 15, 23, 59, 59, 0, time.Local))
		require.NoError(t, err)
		assert.Equal(t, "2024-03-15", got.DateString())
	})

	t.Run("absent despite nearby dates", func(t *testing.T) {
		_, err := s.GetByDate(ctx, day(t, "2024-03-17"))
		assert.ErrorIs(t, err, types.ErrNotFound)
	})

	t.Run("zero date", func(t *testing.T) {
		_, err := s.GetByDate(ctx, time.Time{})
		assert.ErrorIs(t, err, types.ErrInvalidDate)
	})
}

func TestGetRange(t *testing.T) {
	s := openTestStore(t, true)
	ctx := t.Context()

	for _, d := range []string{"2024-01-01", "2024-02-10", "2024-03-15", "2024-04-20"} {
		_, err := s.Save(ctx, newTestEntry(t, d))
		require.NoError(t, err)
	}

	tests := []struct {
		name     string
		from, to string
		want     []string
	}{
		{name: "open both sides", want: []string{"2024-04-20", "2024-03-15", "2024-02-10", "2024-01-01"}},
		{name: "inclusive bounds", from: "2024-02-10", to: "2024-03-15", want: []string{"2024-03-15", "2024-02-10"}},
		{name: "open end", from: "2024-03-01", want: []string{"2024-04-20", "2024-03-15"}},
		{name: "open start", to: "2024-01-31", want: []string{"2024-01-01"}},
		{name: "empty window", from: "2024-05-01", to: "2024-05-31", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var from, to time.Time
			if tt.from != "" {
				from = day(t, tt.from)
			}
			if tt.to != "" {
				to = day(t, tt.to)
			}
			got, err := s.GetRange(ctx, from, to)
			require.NoError(t, err)
			assert.Equal(t, tt.want, entryDates(got))
		})
	}
}

func TestUpdate_PreservesIdentityFields(t *testing.T) {
	s := openTestStore(t, true)
	ctx := t.Context()

	original := newTestEntry(t, "2024-03-15")
	id, err := s.Save(ctx, original)
	require.NoError(t, err)

	changed := &types.Entry{
		ID:             id,
		EntryDate:      day(t, "1999-12-31"),
		CreatedAt:      time.Date(2000, 1, 1, 0, 0, 0, 0, time.Local),
		Content:        "<p>rewritten</p>",
		PrimaryMood:    "Sad",
		SecondaryMoods: []string{"Tired"},
		Tags:           []string{"health"},
	}
	ok, err := s.Update(ctx, changed)
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := s.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "2024-03-15", got.DateString())
	assert.True(t, original.CreatedAt.Equal(got.CreatedAt))
	assert.Equal(t, "<p>rewritten</p>", got.Content)
	assert.Equal(t, "Sad", got.PrimaryMood)
	assert.Equal(t, []string{"Tired"}, got.SecondaryMoods)
	assert.Equal(t, []string{"health"}, got.Tags)
}

func TestUpdate_ClearsLists(t *testing.T) {
	s := openTestStore(t, true)
	ctx := t.Context()

	e := newTestEntry(t, "2024-03-15")
	id, err := s.Save(ctx, e)
	require.NoError(t, err)

	e.SecondaryMoods = nil
	e.Tags = nil
	e.PrimaryMood = ""
	ok, err := s.Update(ctx, e)
	require.NoError(t, err)
	require.True(t, ok)

	got, err := s.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []string{}, got.SecondaryMoods)
	assert.Equal(t, []string{}, got.Tags)
	assert.Equal(t, "", got.PrimaryMood)
}

func TestUpdate_MissingIDIsNoOp(t *testing.T) {
	s := openTestStore(t, true)
	ctx := t.Context()

	other := newTestEntry(t, "2024-03-15")
	_, err := s.Save(ctx, other)
	require.NoError(t, err)

	for _, id := range []int64{0, -3, 12345} {
		ok, err := s.Update(ctx, &types.Entry{ID: id, Content: "ghost"})
		require.NoError(t, err, "id %d", id)
		assert.False(t, ok, "id %d", id)
	}

	_, err = s.Update(ctx, nil)
	assert.ErrorIs(t, err, types.ErrInvalidEntry)

	got, err := s.GetByID(ctx, other.ID)
	require.NoError(t, err)
	assert.Equal(t, other.Content, got.Content)
}

func TestDeleteByID(t *testing.T) {
	s := openTestStore(t, true)
	ctx := t.Context()

	keep := newTestEntry(t, "2024-03-14")
	_, err := s.Save(ctx, keep)
	require.NoError(t, err)
	gone := newTestEntry(t, "2024-03-15")
	id, err := s.Save(ctx, gone)
	require.NoError(t, err)

	ok, err := s.DeleteByID(ctx, id)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = s.GetByID(ctx, id)
	assert.ErrorIs(t, err, types.ErrNotFound)

	ok, err = s.DeleteByID(ctx, id)
	require.NoError(t, err, "second delete is a no-op")
	assert.False(t, ok)

	_, err = s.GetByID(ctx, keep.ID)
	assert.NoError(t, err, "other rows are untouched")

	// The freed date can be written again.
	_, err = s.Save(ctx, newTestEntry(t, "2024-03-15"))
	assert.NoError(t, err)
}

func TestDeleteAll_EmptiesButKeepsTable(t *testing.T) {
	s := openTestStore(t, true)
	ctx := t.Context()

	var lastID int64
	for _, d := range []string{"2024-01-01", "2024-01-02", "2024-01-03"} {
		id, err := s.Save(ctx, newTestEntry(t, d))
		require.NoError(t, err)
		lastID = id
	}

	n, err := s.DeleteAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	all, err := s.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	_, err = os.Stat(s.Path())
	assert.NoError(t, err, "backing file must survive DeleteAll")

	id, err := s.Save(ctx, newTestEntry(t, "2024-01-01"))
	require.NoError(t, err)
	assert.Greater(t, id, lastID, "ids are never reused")

	n, err = s.DeleteAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = s.DeleteAll(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestInjectionSafety(t *testing.T) {
	s := openTestStore(t, true)
	ctx := t.Context()

	bystander := newTestEntry(t, "2024-03-14")
	_, err := s.Save(ctx, bystander)
	require.NoError(t, err)

	hostile := newTestEntry(t, "2024-03-15")
	hostile.Content = "Robert'); DROP TABLE JournalItems;--"
	hostile.PrimaryMood = `'; DELETE FROM JournalItems; --`
	hostile.SecondaryMoods = []string{`"); DROP TABLE JournalItems;--`}
	hostile.Tags = []string{"a'b", `c"d`, "e;f", "[g]"}
	id, err := s.Save(ctx, hostile)
	require.NoError(t, err)

	got, err := s.GetByID(ctx, id)
	require.NoError(t, err)
	assertEntryEqual(t, hostile, got)

	hostile.Content = "x' WHERE 1=1; --"
	_, err = s.Update(ctx, hostile)
	require.NoError(t, err)

	all, err := s.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, bystander.Content, all[1].Content)
	assert.Equal(t, "x' WHERE 1=1; --", all[0].Content)
}

func TestNullColumnsDecodeEmpty(t *testing.T) {
	s := openTestStore(t, true)
	ctx := t.Context()

	// Rows written by other tools may leave the nullable columns NULL or
	// hold malformed list text.
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO JournalItems (EntryDate, Content, PrimaryMood, SecondaryMoods, Tags, CreatedAt) VALUES (?, ?, NULL, NULL, NULL, ?)",
		"2024-03-15", "legacy", "2024-03-15 10:00:00")
	require.NoError(t, err)
	_, err = s.db.ExecContext(ctx,
		"INSERT INTO JournalItems (EntryDate, Content, PrimaryMood, SecondaryMoods, Tags, CreatedAt) VALUES (?, ?, ?, ?, ?, ?)",
		"2024-03-16", "broken lists", "Calm", "not valid", "", "2024-03-16 10:00:00")
	require.NoError(t, err)

	all, err := s.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	for _, e := range all {
		assert.Equal(t, []string{}, e.SecondaryMoods, e.Content)
		assert.Equal(t, []string{}, e.Tags, e.Content)
	}
	assert.Equal(t, "Calm", all[0].PrimaryMood)
	assert.Equal(t, "", all[1].PrimaryMood)
}

func TestGetAll_LenientStoredDates(t *testing.T) {
	s := openTestStore(t, false)
	ctx := t.Context()

	insert := "INSERT INTO JournalItems (EntryDate, Content, PrimaryMood, SecondaryMoods, Tags, CreatedAt) VALUES (?, ?, '', '[]', '[]', ?)"
	rows := []struct{ date, content, created string }{
		{"2024-03-15", "canonical", "2024-03-15 10:00:00"},
		{"2024-03-14T00:00:00", "iso date", "2024-03-14T08:30:00"},
		{"2024-03-13", "bad created", "sometime"},
		{"not a date", "unreadable", "2024-03-12 10:00:00"},
	}
	for _, r := range rows {
		_, err := s.db.ExecContext(ctx, insert, r.date, r.content, r.created)
		require.NoError(t, err)
	}

	all, err := s.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3, "only the unreadable row is left out")

	byContent := map[string]*types.Entry{}
	for _, e := range all {
		byContent[e.Content] = e
	}
	require.Contains(t, byContent, "iso date")
	assert.Equal(t, "2024-03-14", byContent["iso date"].DateString())
	assert.Equal(t, "2024-03-14 08:30:00", types.FormatTimestamp(byContent["iso date"].CreatedAt))
	require.Contains(t, byContent, "bad created")
	assert.True(t, byContent["bad created"].CreatedAt.IsZero())
	assert.NotContains(t, byContent, "unreadable")

	ranged, err := s.GetRange(ctx, time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Len(t, ranged, 3)
}

func TestCount(t *testing.T) {
	s := openTestStore(t, true)
	ctx := t.Context()

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	_, err = s.Save(ctx, newTestEntry(t, "2024-01-01"))
	require.NoError(t, err)

	n, err = s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
