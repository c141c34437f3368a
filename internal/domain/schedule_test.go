package domain

import (
	"testing"
	"time"
)

// helper: Monday 2025-05-05 at hh:mm:ss local time
func monday(t *testing.T, hh, mm, ss int) time.Time {
	t.Helper()
	d := time.Date(2025, time.May, 5, hh, mm, ss, 0, time.Local)
	if d.Weekday() != time.Monday {
		t.Fatalf("fixture date is %s, want Monday", d.Weekday())
	}
	return d
}

func TestIsDue_ExactMinute(t *testing.T) {
	s := Schedule{ID: "s1", Time: "09:00", Days: []int{1}, Active: true}

	if !s.IsDue(monday(t, 9, 0, 0)) {
		t.Fatal("09:00:00 should be due")
	}
	if !s.IsDue(monday(t, 9, 0, 59)) {
		t.Fatal("09:00:59 should be due (seconds ignored)")
	}
	if s.IsDue(monday(t, 9, 1, 0)) {
		t.Fatal("09:01:00 should not be due")
	}
	if s.IsDue(monday(t, 8, 59, 59)) {
		t.Fatal("08:59:59 should not be due")
	}
}

func TestIsDue_WrongWeekday(t *testing.T) {
	// Tuesday only; fixture day is Monday.
	s := Schedule{ID: "s1", Time: "09:00", Days: []int{2}, Active: true}
	if s.IsDue(monday(t, 9, 0, 30)) {
		t.Fatal("schedule for Tuesday must not be due on Monday")
	}
}

func TestIsDue_SundayIsZero(t *testing.T) {
	s := Schedule{ID: "s1", Time: "10:30", Days: []int{0}, Active: true}
	sunday := time.Date(2025, time.May, 4, 10, 30, 12, 0, time.Local)
	if sunday.Weekday() != time.Sunday {
		t.Fatalf("fixture date is %s, want Sunday", sunday.Weekday())
	}
	if !s.IsDue(sunday) {
		t.Fatal("day 0 must match Sunday")
	}
}

func TestValidate_NormalizesDays(t *testing.T) {
	s := Schedule{ID: "s1", Time: "07:15", Days: []int{5, 1, 3, 1}, Active: true}
	if err := s.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	want := []int{1, 3, 5}
	if len(s.Days) != len(want) {
		t.Fatalf("days = %v, want %v", s.Days, want)
	}
	for i := range want {
		if s.Days[i] != want[i] {
			t.Fatalf("days = %v, want %v", s.Days, want)
		}
	}
}

func TestValidate_Rejects(t *testing.T) {
	cases := []struct {
		name string
		s    Schedule
	}{
		{"empty id", Schedule{Time: "09:00", Days: []int{1}}},
		{"bad clock", Schedule{ID: "x", Time: "9:00", Days: []int{1}}},
		{"hour out of range", Schedule{ID: "x", Time: "24:00", Days: []int{1}}},
		{"minute out of range", Schedule{ID: "x", Time: "12:60", Days: []int{1}}},
		{"day out of range", Schedule{ID: "x", Time: "12:00", Days: []int{7}}},
		{"negative day", Schedule{ID: "x", Time: "12:00", Days: []int{-1}}},
		{"active without days", Schedule{ID: "x", Time: "12:00", Active: true}},
		{"unknown category", Schedule{ID: "x", Time: "12:00", Days: []int{1}, Category: "spicy"}},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.s.Validate(); err == nil {
				t.Fatalf("expected error for %+v", tc.s)
			}
		})
	}
}

func TestValidate_InactiveMayHaveNoDays(t *testing.T) {
	s := Schedule{ID: "x", Time: "12:00", Active: false}
	if err := s.Validate(); err != nil {
		t.Fatalf("inactive schedule without days should validate, got %v", err)
	}
}
