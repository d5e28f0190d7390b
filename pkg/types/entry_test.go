package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEntry(t *testing.T) {
	e := NewEntry(time.Date(2024, 3, 15, 18, 45, 12, 0, time.Local))

	assert.Equal(t, "2024-03-15", e.DateString())
	assert.Equal(t, 0, e.EntryDate.Hour())
	assert.NotNil(t, e.SecondaryMoods)
	assert.NotNil(t, e.Tags)
	assert.Zero(t, e.ID)
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "plain date", input: "2024-03-15", want: "2024-03-15"},
		{name: "surrounding whitespace", input: "  2024-01-01 ", want: "2024-01-01"},
		{name: "timestamp rejected", input: "2024-01-01 10:00:00", wantErr: true},
		{name: "garbage rejected", input: "yesterday", wantErr: true},
		{name: "empty rejected", input: "", wantErr: true},
		{name: "impossible day rejected", input: "2024-02-30", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidDate)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, FormatDate(got))
			assert.Equal(t, time.Local, got.Location())
		})
	}
}

func TestTimestampRoundTrip(t *testing.T) {
	ts := time.Date(2024, 3, 15, 9, 5, 7, 0, time.Local)

	s := FormatTimestamp(ts)
	assert.Equal(t, "2024-03-15 09:05:07", s)

	back, err := ParseTimestamp(s)
	require.NoError(t, err)
	assert.True(t, ts.Equal(back))
}

func TestParseStored(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "canonical timestamp", input: "2024-03-15 21:30:05", want: "2024-03-15 21:30:05"},
		{name: "date only", input: "2024-03-15", want: "2024-03-15 00:00:00"},
		{name: "iso with T", input: "2024-03-15T21:30:05", want: "2024-03-15 21:30:05"},
		{name: "fractional seconds", input: "2024-03-15 21:30:05.1234", want: "2024-03-15 21:30:05"},
		{name: "no seconds", input: "2024-03-15 21:30", want: "2024-03-15 21:30:00"},
		{name: "slashes", input: "2024/03/15", want: "2024-03-15 00:00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseStored(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, FormatTimestamp(got))
			assert.Equal(t, time.Local, got.Location())
		})
	}
}

func TestParseStoredZoned(t *testing.T) {
	want := time.Date(2024, 3, 15, 21, 30, 5, 0, time.UTC)
	got, err := ParseStored("2024-03-15T21:30:05Z")
	require.NoError(t, err)
	assert.True(t, want.Equal(got))
	assert.Equal(t, time.Local, got.Location())
}

func TestParseStoredRejectsGarbage(t *testing.T) {
	for _, s := range []string{"", "yesterday", "15/03/2024x"} {
		_, err := ParseStored(s)
		assert.Error(t, err, s)
	}
}

func TestEntrySetSecondaryMoods(t *testing.T) {
	tests := []struct {
		name    string
		moods   []string
		want    []string
		wantErr error
	}{
		{name: "none", moods: nil, want: []string{}},
		{name: "one", moods: []string{"Calm"}, want: []string{"Calm"}},
		{name: "two", moods: []string{"Calm", "Hopeful"}, want: []string{"Calm", "Hopeful"}},
		{name: "blanks dropped", moods: []string{" ", "Calm", ""}, want: []string{"Calm"}},
		{name: "three rejected", moods: []string{"Calm", "Hopeful", "Tired"}, wantErr: ErrTooManyMoods},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEntry(Today())
			err := e.SetSecondaryMoods(tt.moods...)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, e.SecondaryMoods, "moods must be unchanged on error")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, e.SecondaryMoods)
		})
	}
}

func TestEntryAddTag(t *testing.T) {
	e := NewEntry(Today())

	require.NoError(t, e.AddTag("work"))
	require.NoError(t, e.AddTag(" travel "))
	require.NoError(t, e.AddTag("work"))
	assert.ErrorIs(t, e.AddTag("   "), ErrInvalidTag)

	assert.Equal(t, []string{"work", "travel"}, e.Tags)
	assert.True(t, e.HasTag("travel"))
	assert.False(t, e.HasTag("family"))
}

func TestEntryNormalize(t *testing.T) {
	e := &Entry{}
	e.Normalize()
	assert.Equal(t, []string{}, e.SecondaryMoods)
	assert.Equal(t, []string{}, e.Tags)
}
