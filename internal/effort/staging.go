package effort

import (
	"time"

	"acadex/academy-ops/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// dayState is the staging state for one weekday: the draft cells plus the
// local "saved" flag that gates weekly submission.
type dayState struct {
	date    string
	holiday bool
	roles   map[domain.EffortRole]domain.EffortDetail
	saved   bool
}

// WeekLog is the in-memory staging store for exactly one selected week.
// It holds a per-day, per-role draft seeded from any previously persisted
// effort records, tracks a saved flag per day, and becomes read-only once
// the week is completed. All mutations are synchronous and side-effect free;
// persistence timing is the caller's concern.
type WeekLog struct {
	week      Week
	order     []string
	days      map[string]*dayState
	completed bool
}

// NewWeekLog builds the staging store for week. Only the five weekday dates
// are materialized. Each role cell is pre-filled from the most recent
// persisted record for that date+role (zero hours, empty notes otherwise),
// and a day starts out saved when at least one persisted record exists for
// it — the saved flag is derived from server truth, never remembered client
// state. holidays is the location's holiday calendar as ISO dates.
func NewWeekLog(week Week, holidays []string, records []domain.EffortRecord) *WeekLog {
	holidaySet := make(map[string]bool, len(holidays))
	for _, h := range holidays {
		holidaySet[h] = true
	}

	wl := &WeekLog{
		week: week,
		days: make(map[string]*dayState, 5),
	}
	for _, date := range week.WeekdayDates() {
		ds := &dayState{
			date:    date,
			holiday: holidaySet[date],
			roles:   make(map[domain.EffortRole]domain.EffortDetail, len(domain.EffortRoles)),
		}
		for _, role := range domain.EffortRoles {
			ds.roles[role] = domain.EffortDetail{}
		}
		wl.order = append(wl.order, date)
		wl.days[date] = ds
	}

	// Seed from persisted records, keeping the most recent entry per
	// date+role and marking any seeded day as saved. On equal timestamps
	// the later record in slice order wins; callers supply records sorted
	// by creation with insertion order as the tiebreaker.
	latest := make(map[string]time.Time)
	for _, rec := range records {
		ds, ok := wl.days[rec.EffortDate]
		if !ok || !rec.Role.Valid() {
			continue
		}
		key := rec.EffortDate + "/" + string(rec.Role)
		if seen, ok := latest[key]; ok && rec.CreatedAt.Before(seen) {
			ds.saved = true
			continue
		}
		latest[key] = rec.CreatedAt
		ds.roles[rec.Role] = domain.EffortDetail{Hours: rec.EffortHours, Notes: rec.AreaOfWork}
		ds.saved = true
	}
	return wl
}

// Week returns the week this log stages.
func (wl *WeekLog) Week() Week {
	return wl.week
}

func (wl *WeekLog) day(date string) (*dayState, error) {
	if wl.completed {
		return nil, ErrWeekCompleted
	}
	ds, ok := wl.days[date]
	if !ok {
		return nil, ErrUnknownDay
	}
	return ds, nil
}

// SetHours stages an hours value for one role on one day. Values outside
// [0, 9] are rejected with ErrHourBounds and the prior value is retained;
// the cap is a hard business rule, not a soft warning. A successful edit
// clears the day's saved flag.
func (wl *WeekLog) SetHours(date string, role domain.EffortRole, hours float64) error {
	ds, err := wl.day(date)
	if err != nil {
		return err
	}
	if !role.Valid() {
		return ErrUnknownRole
	}
	if err := CheckHours(hours); err != nil {
		return err
	}
	detail := ds.roles[role]
	detail.Hours = hours
	ds.roles[role] = detail
	ds.saved = false
	return nil
}

// SetNotes stages the notes for one role on one day and clears the day's
// saved flag.
func (wl *WeekLog) SetNotes(date string, role domain.EffortRole, notes string) error {
	ds, err := wl.day(date)
	if err != nil {
		return err
	}
	if !role.Valid() {
		return ErrUnknownRole
	}
	detail := ds.roles[role]
	detail.Notes = notes
	ds.roles[role] = detail
	ds.saved = false
	return nil
}

// SaveDay marks a day's draft as staged. It performs no I/O; it is the
// client-side commit that makes the day count toward the submission gate.
func (wl *WeekLog) SaveDay(date string) error {
	ds, err := wl.day(date)
	if err != nil {
		return err
	}
	ds.saved = true
	return nil
}

// Saved reports the staging flag for a day. Unknown dates report false.
func (wl *WeekLog) Saved(date string) bool {
	ds, ok := wl.days[date]
	return ok && ds.saved
}

// SavedFlags returns the per-day staging flags keyed by ISO date.
func (wl *WeekLog) SavedFlags() map[string]bool {
	flags := make(map[string]bool, len(wl.order))
	for date, ds := range wl.days {
		flags[date] = ds.saved
	}
	return flags
}

// DayLogs returns the staged day logs in Monday-Friday order.
func (wl *WeekLog) DayLogs() []domain.DayLog {
	logs := make([]domain.DayLog, 0, len(wl.order))
	for _, date := range wl.order {
		ds := wl.days[date]
		roles := make(map[domain.EffortRole]domain.EffortDetail, len(ds.roles))
		for role, detail := range ds.roles {
			roles[role] = detail
		}
		logs = append(logs, domain.DayLog{Date: ds.date, IsHoliday: ds.holiday, Roles: roles})
	}
	return logs
}

// Holidays returns the week's holiday weekdays as ISO dates.
func (wl *WeekLog) Holidays() []string {
	var holidays []string
	for _, date := range wl.order {
		if wl.days[date].holiday {
			holidays = append(holidays, date)
		}
	}
	return holidays
}

// Stats sums the staged hours per role and overall across all non-holiday
// days. Holiday days contribute zero regardless of any stray cell values.
func (wl *WeekLog) Stats() Totals {
	totals := newTotals()
	for _, date := range wl.order {
		ds := wl.days[date]
		if ds.holiday {
			continue
		}
		for role, detail := range ds.roles {
			totals.ByRole[role] += detail.Hours
			totals.Total += detail.Hours
		}
	}
	return totals
}

// MarkCompleted switches the log to read-only. Every subsequent edit and
// save returns ErrWeekCompleted.
func (wl *WeekLog) MarkCompleted() {
	wl.completed = true
}

// Completed reports whether the log has been locked.
func (wl *WeekLog) Completed() bool {
	return wl.completed
}

// SubmissionParams carries the identity inputs a submission passes through
// unmodified: they come from the authenticated session and the cohort record.
type SubmissionParams struct {
	CohortID    primitive.ObjectID
	CoachID     primitive.ObjectID
	Location    string
	SubmittedBy string
}

// BuildSubmission validates the staged week and assembles the immutable
// weekly effort submission.
//
// The single gating invariant: every non-holiday weekday must be saved,
// otherwise ErrIncompleteLog and nothing is produced. On top of the per-cell
// hour cap it also enforces the cumulative 9-hour ceiling per day across all
// four roles. The caller is responsible for persisting the result; the week
// transitions to completed only once the remote summary exists.
func (wl *WeekLog) BuildSubmission(params SubmissionParams) (*domain.WeeklyEffortSubmission, error) {
	if wl.completed {
		return nil, ErrWeekCompleted
	}
	for _, date := range wl.order {
		ds := wl.days[date]
		if ds.holiday {
			continue
		}
		if !ds.saved {
			return nil, ErrIncompleteLog
		}
		var dayTotal float64
		for _, detail := range ds.roles {
			dayTotal += detail.Hours
		}
		if dayTotal > MaxDailyHours {
			return nil, ErrDayTotal
		}
	}

	return &domain.WeeklyEffortSubmission{
		CohortID:      params.CohortID,
		CoachID:       params.CoachID,
		Location:      params.Location,
		WeekStartDate: wl.week.StartDate.Format(ISODate),
		WeekEndDate:   wl.week.EndDate.Format(ISODate),
		Holidays:      wl.Holidays(),
		DayLogs:       wl.DayLogs(),
		SubmittedBy:   params.SubmittedBy,
		Status:        domain.SubmissionCompleted,
		SubmittedAt:   time.Now().UTC(),
	}, nil
}
