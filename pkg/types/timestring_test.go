package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	ts, err := NewTimeStringFromString("09:30")
	require.NoError(t, err)
	assert.Equal(t, "09:30", ts.String())

	_, err = NewTimeStringFromString("25:00")
	assert.Error(t, err)

	_, err = NewTimeStringFromString("9am")
	assert.Error(t, err)
}

func TestTimeStringMinutes(t *testing.T) {
	ts := TimeString("10:45")
	m, err := ts.Minutes()
	require.NoError(t, err)
	assert.Equal(t, 645, m)
}

func TestTimeStringAddMinutes(t *testing.T) {
	ts := TimeString("10:00")
	got, err := ts.AddMinutes(90)
	require.NoError(t, err)
	assert.Equal(t, TimeString("11:30"), got)
}

func TestTimeStringComparisons(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("10:00"))
	assert.False(t, TimeString("10:00").IsBefore("10:00"))
	assert.True(t, TimeString("10:30").IsAfter("10:00"))
}

func TestTimeStringAt(t *testing.T) {
	date := time.Date(2026, 2, 10, 0, 0, 0, 0, time.Local)
	got, err := TimeString("14:05").At(date, time.Local)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 2, 10, 14, 5, 0, 0, time.Local), got)
}

func TestTimeStringScan(t *testing.T) {
	var ts TimeString

	// TIME columns arrive with seconds
	require.NoError(t, ts.Scan("10:00:00"))
	assert.Equal(t, TimeString("10:00"), ts)

	require.NoError(t, ts.Scan([]byte("23:15:59")))
	assert.Equal(t, TimeString("23:15"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(42))
}
