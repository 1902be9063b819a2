package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TimeString
		wantErr bool
	}{
		{"hours and minutes", "09:30", "09:30", false},
		{"with seconds", "18:00:00", "18:00", false},
		{"end of day", "24:00", "24:00", false},
		{"midnight", "00:00", "00:00", false},
		{"single digit hour", "9:30", "", true},
		{"minutes overflow", "10:60", "", true},
		{"after end of day", "24:01", "", true},
		{"garbage", "ten", "", true},
		{"empty", "", "", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tc.input)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestTimeString_AddMinutes(t *testing.T) {
	start := TimeString("10:45")

	got, err := start.AddMinutes(30)
	require.NoError(t, err)
	assert.Equal(t, TimeString("11:15"), got)

	got, err = TimeString("23:30").AddMinutes(30)
	require.NoError(t, err)
	assert.Equal(t, TimeString("24:00"), got)

	_, err = TimeString("23:30").AddMinutes(31)
	assert.ErrorIs(t, err, ErrTimeOverflow)
}

func TestTimeString_Compare(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("09:01"))
	assert.False(t, TimeString("09:00").IsBefore("09:00"))
	assert.True(t, TimeString("12:00").IsAfter("11:59"))
	assert.Equal(t, 615, TimeString("10:15").Minutes())
	assert.Equal(t, -1, TimeString("bad").Minutes())
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan("08:15:00"))
	assert.Equal(t, TimeString("08:15"), ts)

	require.NoError(t, ts.Scan([]byte("17:45:00")))
	assert.Equal(t, TimeString("17:45"), ts)

	require.NoError(t, ts.Scan(time.Date(0, 1, 1, 6, 5, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("06:05"), ts)

	assert.Error(t, ts.Scan(42))
}

func TestTimeString_On(t *testing.T) {
	date := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	got := TimeString("13:20").On(date, time.UTC)
	assert.Equal(t, time.Date(2026, 3, 14, 13, 20, 0, 0, time.UTC), got)
}
