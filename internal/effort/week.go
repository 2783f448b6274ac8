package effort

import (
	"fmt"
	"strings"
	"time"
)

// ISODate is the date layout used throughout the effort engine.
const ISODate = "2006-01-02"

// ParseISO parses an ISO date string as a UTC calendar date.
func ParseISO(date string) (time.Time, error) {
	return time.ParseInLocation(ISODate, date, time.UTC)
}

func upperMonth(t time.Time) string {
	return strings.ToUpper(t.Month().String())
}

// Week is a derived Monday-Sunday interval, numbered sequentially from a
// cohort's start. Weeks are never persisted; they are recomputed from the
// cohort's date range on every read so later edits to the cohort cannot
// leave stale week lists behind.
type Week struct {
	ID        string    `json:"id"`
	Number    int       `json:"weekNumber"`
	StartDate time.Time `json:"startDate"` // Monday
	EndDate   time.Time `json:"endDate"`   // Sunday, StartDate+6 days
}

// Label renders the dropdown label the dashboard shows for a week.
func (w Week) Label() string {
	return fmt.Sprintf("Week %d: %s to %s",
		w.Number, w.StartDate.Format("02-Jan-2006"), w.EndDate.Format("02-Jan-2006"))
}

// Contains reports whether day falls inside the week's [start, end] interval.
// Time-of-day is ignored.
func (w Week) Contains(day time.Time) bool {
	d := truncateToDay(day)
	return !d.Before(w.StartDate) && !d.After(w.EndDate)
}

// WeekdayDates returns the five weekday dates (Monday-Friday) of the week as
// ISO date strings. Weekend dates are never eligible for logging.
func (w Week) WeekdayDates() []string {
	dates := make([]string, 0, 5)
	for i := 0; i < 5; i++ {
		dates = append(dates, w.StartDate.AddDate(0, 0, i).Format(ISODate))
	}
	return dates
}

// PartitionWeeks partitions a cohort's date range into an ordered, gapless
// sequence of Monday-start calendar weeks.
//
// The anchor is the Monday on or before startDate. Successive 7-day windows
// are emitted until the window's start passes endDate; the final window is
// not truncated, so the last week may extend past the cohort's formal end.
// Pure function of its inputs: no clock, identical output on every call.
func PartitionWeeks(startDate, endDate time.Time) ([]Week, error) {
	start := truncateToDay(startDate)
	end := truncateToDay(endDate)
	if start.After(end) {
		return nil, ErrInvalidRange
	}

	anchor := mondayOnOrBefore(start)

	var weeks []Week
	number := 1
	for ws := anchor; !ws.After(end); ws = ws.AddDate(0, 0, 7) {
		weeks = append(weeks, Week{
			ID:        fmt.Sprintf("week-%d", number),
			Number:    number,
			StartDate: ws,
			EndDate:   ws.AddDate(0, 0, 6),
		})
		number++
	}
	return weeks, nil
}

// WeekStartOf returns the Monday of the calendar week containing d.
func WeekStartOf(d time.Time) time.Time {
	return mondayOnOrBefore(truncateToDay(d))
}

// mondayOnOrBefore steps back to the Monday of the week containing d:
// 6 days from a Sunday, weekday-1 days otherwise.
func mondayOnOrBefore(d time.Time) time.Time {
	offset := int(d.Weekday()) - int(time.Monday)
	if d.Weekday() == time.Sunday {
		offset = 6
	}
	return d.AddDate(0, 0, -offset)
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
