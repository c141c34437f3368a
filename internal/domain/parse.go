package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrBadClock = errors.New("expected HH:MM in 24-hour format")

// ParseClock parses a zero-padded 24-hour "HH:MM" string.
func ParseClock(s string) (hour, minute int, err error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return 0, 0, fmt.Errorf("%w: %q", ErrBadClock, s)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("%w: invalid hour in %q", ErrBadClock, s)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("%w: invalid minute in %q", ErrBadClock, s)
	}
	return hour, minute, nil
}

// FormatClock12 renders a 24-hour "HH:MM" as 12-hour with AM/PM, e.g.
// "09:30" -> "9:30 AM", "00:15" -> "12:15 AM".
func FormatClock12(s string) string {
	h, m, err := ParseClock(s)
	if err != nil {
		return s
	}
	ampm := "AM"
	if h >= 12 {
		ampm = "PM"
	}
	h12 := h % 12
	if h12 == 0 {
		h12 = 12
	}
	return fmt.Sprintf("%d:%02d %s", h12, m, ampm)
}

var dayNames = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// FormatDays renders a weekday set for display. Days must be sorted and
// deduplicated (Schedule.Validate guarantees this).
func FormatDays(days []int) string {
	switch {
	case len(days) == 0:
		return "Never"
	case len(days) == 7:
		return "Every day"
	case equalInts(days, []int{1, 2, 3, 4, 5}):
		return "Weekdays"
	case equalInts(days, []int{0, 6}):
		return "Weekends"
	}
	names := make([]string, 0, len(days))
	for _, d := range days {
		if d >= 0 && d <= 6 {
			names = append(names, dayNames[d])
		}
	}
	return strings.Join(names, ", ")
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
