package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salesdrive/internal/apierr"
)

func TestNormalizeCalendarDate(t *testing.T) {
	for _, d := range []string{"2023-01-01", "1999-12-31", "2025-02-28", "0000-00-00"} {
		got, err := Normalize(d, StartOfDay)
		require.NoError(t, err)
		assert.Equal(t, d+" 00:00:00", got)

		got, err = Normalize(d, EndOfDay)
		require.NoError(t, err)
		assert.Equal(t, d+" 23:59:59", got)
	}
}

func TestNormalizePassThrough(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "full date-time", input: "2023-01-01 10:15:00"},
		{name: "date-time without seconds", input: "2023-01-01 10:15"},
		{name: "iso timestamp", input: "2023-01-01T10:15:00Z"},
		{name: "arbitrary text", input: "yesterday"},
		{name: "empty", input: ""},
		{name: "short year", input: "23-01-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, def := range []DefaultTime{StartOfDay, EndOfDay} {
				got, err := Normalize(tt.input, def)
				require.NoError(t, err)
				assert.Equal(t, tt.input, got)
			}
		})
	}
}

func TestNormalizeTime(t *testing.T) {
	ts := time.Date(2024, time.March, 5, 7, 8, 9, 0, time.Local)

	got, err := Normalize(ts, EndOfDay)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-05 07:08:09", got)

	got, err = Normalize(&ts, StartOfDay)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-05 07:08:09", got)

	// values in other zones are read on the local calendar, like epoch millis
	utc := time.Date(2024, time.March, 5, 23, 30, 0, 0, time.UTC)
	got, err = Normalize(utc, StartOfDay)
	require.NoError(t, err)
	assert.Equal(t, utc.In(time.Local).Format(Layout), got)

	fromMillis, err := Normalize(utc.UnixMilli(), StartOfDay)
	require.NoError(t, err)
	assert.Equal(t, fromMillis, got)

	var nilTime *time.Time
	_, err = Normalize(nilTime, StartOfDay)
	assert.ErrorIs(t, err, apierr.ErrInvalidArgument)
}

func TestNormalizeEpochMillis(t *testing.T) {
	ts := time.Date(2024, time.June, 1, 12, 30, 0, 0, time.Local)

	got, err := Normalize(ts.UnixMilli(), StartOfDay)
	require.NoError(t, err)
	assert.Equal(t, "2024-06-01 12:30:00", got)

	got, err = Normalize(int(ts.UnixMilli()), StartOfDay)
	require.NoError(t, err)
	assert.Equal(t, "2024-06-01 12:30:00", got)

	// seconds passed where milliseconds are expected land in 1970
	_, err = Normalize(ts.Unix(), StartOfDay)
	assert.ErrorIs(t, err, apierr.ErrInvalidArgument)

	_, err = Normalize(time.Date(2150, 1, 1, 0, 0, 0, 0, time.Local).UnixMilli(), EndOfDay)
	assert.ErrorIs(t, err, apierr.ErrInvalidArgument)
}

func TestNormalizeUnsupported(t *testing.T) {
	_, err := Normalize(true, StartOfDay)
	assert.ErrorIs(t, err, apierr.ErrInvalidArgument)

	_, err = Normalize(nil, StartOfDay)
	assert.ErrorIs(t, err, apierr.ErrInvalidArgument)
}

func TestIsCanonical(t *testing.T) {
	assert.True(t, IsCanonical("2023-01-01 00:00:00"))
	assert.False(t, IsCanonical("2023-01-01"))
	assert.False(t, IsCanonical("2023-01-01T00:00:00"))
}
