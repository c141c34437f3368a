package domain

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

var (
	ErrEmptyDays = errors.New("active schedule needs at least one day")
	ErrBadDay    = errors.New("day out of range 0..6")
	ErrEmptyID   = errors.New("schedule id is empty")
)

// Schedule is a recurring delivery rule: fire at Time on each weekday in Days.
// Days uses 0=Sunday..6=Saturday, matching time.Weekday.
type Schedule struct {
	ID            string
	Time          string // "HH:MM", 24-hour, zero-padded
	Days          []int
	Active        bool
	Category      Category   // CategoryAny picks from the whole pool
	LastTriggered *time.Time // UTC, nil until the first fire
}

// Validate checks invariants and normalizes Days (sorted, deduplicated).
func (s *Schedule) Validate() error {
	if s.ID == "" {
		return ErrEmptyID
	}
	if _, _, err := ParseClock(s.Time); err != nil {
		return err
	}
	if _, err := ParseCategory(string(s.Category)); err != nil {
		return fmt.Errorf("category %q: %w", s.Category, err)
	}
	seen := make(map[int]bool, len(s.Days))
	days := make([]int, 0, len(s.Days))
	for _, d := range s.Days {
		if d < 0 || d > 6 {
			return fmt.Errorf("%w: %d", ErrBadDay, d)
		}
		if !seen[d] {
			seen[d] = true
			days = append(days, d)
		}
	}
	sort.Ints(days)
	s.Days = days
	if s.Active && len(s.Days) == 0 {
		return ErrEmptyDays
	}
	return nil
}

// OnDay reports whether the schedule covers the given weekday.
func (s *Schedule) OnDay(wd time.Weekday) bool {
	for _, d := range s.Days {
		if d == int(wd) {
			return true
		}
	}
	return false
}

// IsDue reports whether the schedule matches "now" at minute granularity:
// the weekday must be in Days and the wall clock's HH:MM must equal Time
// exactly. Seconds are ignored, so the due window is the whole minute.
// Suppressing repeat fires inside that minute is the engine's job, not this
// predicate's.
func (s *Schedule) IsDue(now time.Time) bool {
	if !s.OnDay(now.Weekday()) {
		return false
	}
	return now.Format("15:04") == s.Time
}
