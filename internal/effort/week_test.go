package effort

import (
	"fmt"
	"testing"
	"time"
)

func date(t *testing.T, iso string) time.Time {
	t.Helper()
	d, err := ParseISO(iso)
	if err != nil {
		t.Fatalf("ParseISO(%q): %v", iso, err)
	}
	return d
}

func TestPartitionWeeksAnchorsOnMonday(t *testing.T) {
	// 2026-01-07 is a Wednesday; the first week must start on Monday the 5th.
	weeks, err := PartitionWeeks(date(t, "2026-01-07"), date(t, "2026-01-20"))
	if err != nil {
		t.Fatalf("PartitionWeeks: %v", err)
	}
	if len(weeks) == 0 {
		t.Fatal("expected at least one week")
	}
	if got := weeks[0].StartDate.Format(ISODate); got != "2026-01-05" {
		t.Errorf("first week starts %s, want 2026-01-05", got)
	}
	if weeks[0].StartDate.Weekday() != time.Monday {
		t.Errorf("first week starts on %s, want Monday", weeks[0].StartDate.Weekday())
	}
}

func TestPartitionWeeksCoverageAndNumbering(t *testing.T) {
	start := date(t, "2026-01-05")
	end := date(t, "2026-01-20")

	weeks, err := PartitionWeeks(start, end)
	if err != nil {
		t.Fatalf("PartitionWeeks: %v", err)
	}
	if len(weeks) != 3 {
		t.Fatalf("got %d weeks, want 3", len(weeks))
	}

	for i, w := range weeks {
		wantNumber := i + 1
		if w.Number != wantNumber {
			t.Errorf("week %d has number %d, want %d", i, w.Number, wantNumber)
		}
		wantID := fmt.Sprintf("week-%d", wantNumber)
		if w.ID != wantID {
			t.Errorf("week %d has id %q, want %q", i, w.ID, wantID)
		}
		if !w.EndDate.Equal(w.StartDate.AddDate(0, 0, 6)) {
			t.Errorf("week %d spans %s to %s, want a 7-day interval", i,
				w.StartDate.Format(ISODate), w.EndDate.Format(ISODate))
		}
		if i > 0 {
			prev := weeks[i-1]
			if !w.StartDate.Equal(prev.EndDate.AddDate(0, 0, 1)) {
				t.Errorf("gap between week %d and week %d", i-1, i)
			}
		}
	}

	// Every date of the range falls inside exactly one week.
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		containing := 0
		for _, w := range weeks {
			if w.Contains(d) {
				containing++
			}
		}
		if containing != 1 {
			t.Errorf("%s is contained in %d weeks, want 1", d.Format(ISODate), containing)
		}
	}

	// The final week is not truncated even though the range ends mid-week.
	last := weeks[len(weeks)-1]
	if got := last.EndDate.Format(ISODate); got != "2026-01-25" {
		t.Errorf("last week ends %s, want 2026-01-25", got)
	}
}

func TestPartitionWeeksSingleDayRange(t *testing.T) {
	d := date(t, "2026-03-11") // Wednesday
	weeks, err := PartitionWeeks(d, d)
	if err != nil {
		t.Fatalf("PartitionWeeks: %v", err)
	}
	if len(weeks) != 1 {
		t.Fatalf("got %d weeks, want 1", len(weeks))
	}
	if !weeks[0].Contains(d) {
		t.Error("single-day range must fall inside its one week")
	}
}

func TestPartitionWeeksInvalidRange(t *testing.T) {
	_, err := PartitionWeeks(date(t, "2026-02-01"), date(t, "2026-01-01"))
	if err != ErrInvalidRange {
		t.Fatalf("got %v, want ErrInvalidRange", err)
	}
}

func TestPartitionWeeksDeterministic(t *testing.T) {
	start := date(t, "2026-01-05")
	end := date(t, "2026-04-24")

	first, err := PartitionWeeks(start, end)
	if err != nil {
		t.Fatalf("PartitionWeeks: %v", err)
	}
	second, err := PartitionWeeks(start, end)
	if err != nil {
		t.Fatalf("PartitionWeeks: %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("week %d differs between calls", i)
		}
	}
}

func TestWeekdayDates(t *testing.T) {
	weeks, err := PartitionWeeks(date(t, "2026-01-05"), date(t, "2026-01-05"))
	if err != nil {
		t.Fatalf("PartitionWeeks: %v", err)
	}
	got := weeks[0].WeekdayDates()
	want := []string{"2026-01-05", "2026-01-06", "2026-01-07", "2026-01-08", "2026-01-09"}
	if len(got) != len(want) {
		t.Fatalf("got %d weekday dates, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("weekday %d is %s, want %s", i, got[i], want[i])
		}
	}
}

func TestWeekStartOf(t *testing.T) {
	cases := []struct {
		day  string
		want string
	}{
		{"2026-01-05", "2026-01-05"}, // Monday maps to itself
		{"2026-01-07", "2026-01-05"}, // Wednesday
		{"2026-01-11", "2026-01-05"}, // Sunday belongs to the preceding Monday
		{"2026-01-12", "2026-01-12"}, // Next Monday
	}
	for _, tc := range cases {
		got := WeekStartOf(date(t, tc.day)).Format(ISODate)
		if got != tc.want {
			t.Errorf("WeekStartOf(%s) = %s, want %s", tc.day, got, tc.want)
		}
	}
}

func TestWeekLabel(t *testing.T) {
	w := Week{Number: 2, StartDate: date(t, "2026-01-12"), EndDate: date(t, "2026-01-18")}
	want := "Week 2: 12-Jan-2026 to 18-Jan-2026"
	if got := w.Label(); got != want {
		t.Errorf("Label() = %q, want %q", got, want)
	}
}

func TestMonthOf(t *testing.T) {
	if got := MonthOf("2026-01-07"); got != "JANUARY" {
		t.Errorf("MonthOf = %q, want JANUARY", got)
	}
	if got := MonthOf("not-a-date"); got != "" {
		t.Errorf("MonthOf on garbage = %q, want empty", got)
	}
}
