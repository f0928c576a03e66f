package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DaysOfWeek are the weekday labels used on alarm records, Monday first.
var DaysOfWeek = []string{"월", "화", "수", "목", "금", "토", "일"}

// WeekdayLabel maps a Go weekday to its label (Sunday-indexed to Monday-first).
func WeekdayLabel(w time.Weekday) string {
	return DaysOfWeek[(int(w)+6)%7]
}

// NextWeekdayLabel returns the label of the day after w.
func NextWeekdayLabel(w time.Weekday) string {
	return DaysOfWeek[(int(w)+7)%7]
}

// ParseClock parses an "HH:MM" string into minutes since midnight.
func ParseClock(clock string) (int, error) {
	parts := strings.SplitN(clock, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid clock %q, expected HH:MM", clock)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid clock %q: %w", clock, err)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid clock %q: %w", clock, err)
	}

	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("clock %q out of range", clock)
	}

	return hour*60 + minute, nil
}

// MinuteOfDay returns t's minutes since midnight.
func MinuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// ValidClock reports whether clock is a well-formed "HH:MM" string.
func ValidClock(clock string) bool {
	_, err := ParseClock(clock)
	return err == nil
}

// ValidDate reports whether date is a well-formed "yyyy-mm-dd" string.
func ValidDate(date string) bool {
	_, err := time.Parse("2006-01-02", date)
	return err == nil
}

// ValidMonth reports whether month is a well-formed "yyyy-mm" string.
func ValidMonth(month string) bool {
	_, err := time.Parse("2006-01", month)
	return err == nil
}
