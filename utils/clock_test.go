package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	cases := []struct {
		clock   string
		minutes int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"07:30", 450, false},
		{"23:59", 1439, false},
		{"09:05", 545, false},
		{"24:00", 0, true},
		{"12:60", 0, true},
		{"1230", 0, true},
		{"", 0, true},
		{"ab:cd", 0, true},
	}

	for _, tc := range cases {
		got, err := ParseClock(tc.clock)
		if tc.wantErr {
			assert.Error(t, err, tc.clock)
			continue
		}
		require.NoError(t, err, tc.clock)
		assert.Equal(t, tc.minutes, got, tc.clock)
	}
}

func TestWeekdayLabel(t *testing.T) {
	assert.Equal(t, "월", WeekdayLabel(time.Monday))
	assert.Equal(t, "일", WeekdayLabel(time.Sunday))
	assert.Equal(t, "토", WeekdayLabel(time.Saturday))

	// tomorrow wraps Sunday -> Monday
	assert.Equal(t, "월", NextWeekdayLabel(time.Sunday))
	assert.Equal(t, "화", NextWeekdayLabel(time.Monday))
}

func TestValidDate(t *testing.T) {
	assert.True(t, ValidDate("2025-03-01"))
	assert.False(t, ValidDate("2025-3-1"))
	assert.False(t, ValidDate("20250301"))
}

func TestValidatePhone(t *testing.T) {
	assert.True(t, ValidatePhone("01012345678"))
	assert.True(t, ValidatePhone("0161234567"))
	assert.False(t, ValidatePhone("010-1234-5678"))
	assert.False(t, ValidatePhone("021234567"))
	assert.False(t, ValidatePhone(""))
}
