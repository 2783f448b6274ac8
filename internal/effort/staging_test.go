package effort

import (
	"testing"
	"time"

	"acadex/academy-ops/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func testWeek(t *testing.T) Week {
	t.Helper()
	weeks, err := PartitionWeeks(date(t, "2026-01-05"), date(t, "2026-01-05"))
	if err != nil {
		t.Fatalf("PartitionWeeks: %v", err)
	}
	return weeks[0]
}

func fillWeek(t *testing.T, wl *WeekLog, hours float64) {
	t.Helper()
	for _, day := range wl.Week().WeekdayDates() {
		if err := wl.SetHours(day, domain.RoleTechnicalTrainer, hours); err != nil {
			t.Fatalf("SetHours(%s): %v", day, err)
		}
		if err := wl.SaveDay(day); err != nil {
			t.Fatalf("SaveDay(%s): %v", day, err)
		}
	}
}

func TestNewWeekLogSeedsFromRecords(t *testing.T) {
	week := testWeek(t)
	now := time.Now().UTC()
	records := []domain.EffortRecord{
		{
			Role:        domain.RoleTechnicalTrainer,
			EffortDate:  "2026-01-05",
			EffortHours: 4,
			AreaOfWork:  "Java sessions",
			CreatedAt:   now.Add(-time.Hour),
		},
		// A later record for the same date+role wins.
		{
			Role:        domain.RoleTechnicalTrainer,
			EffortDate:  "2026-01-05",
			EffortHours: 6,
			AreaOfWork:  "Java sessions, revised",
			CreatedAt:   now,
		},
		{
			Role:        domain.RoleMentor,
			EffortDate:  "2026-01-06",
			EffortHours: 2,
			CreatedAt:   now,
		},
	}

	wl := NewWeekLog(week, nil, records)

	logs := wl.DayLogs()
	if len(logs) != 5 {
		t.Fatalf("got %d day logs, want 5", len(logs))
	}
	monday := logs[0]
	if got := monday.Roles[domain.RoleTechnicalTrainer].Hours; got != 6 {
		t.Errorf("monday trainer hours = %v, want 6 (latest record)", got)
	}
	if got := monday.Roles[domain.RoleTechnicalTrainer].Notes; got != "Java sessions, revised" {
		t.Errorf("monday trainer notes = %q", got)
	}
	if !wl.Saved("2026-01-05") || !wl.Saved("2026-01-06") {
		t.Error("seeded days must start saved")
	}
	if wl.Saved("2026-01-07") {
		t.Error("day without records must start unsaved")
	}
}

func TestNewWeekLogSeedTieBreak(t *testing.T) {
	week := testWeek(t)
	// Batch inserts stamp every record with the same createdAt; the later
	// record in slice order must win, matching the store's insertion order.
	stamp := time.Now().UTC()
	records := []domain.EffortRecord{
		{
			Role:        domain.RoleTechnicalTrainer,
			EffortDate:  "2026-01-05",
			EffortHours: 3,
			AreaOfWork:  "first entry",
			CreatedAt:   stamp,
		},
		{
			Role:        domain.RoleTechnicalTrainer,
			EffortDate:  "2026-01-05",
			EffortHours: 5,
			AreaOfWork:  "second entry",
			CreatedAt:   stamp,
		},
	}

	wl := NewWeekLog(week, nil, records)

	cell := wl.DayLogs()[0].Roles[domain.RoleTechnicalTrainer]
	if cell.Hours != 5 {
		t.Errorf("hours = %v, want 5 (later record on equal timestamps)", cell.Hours)
	}
	if cell.Notes != "second entry" {
		t.Errorf("notes = %q, want the later record's notes", cell.Notes)
	}
}

func TestSetHoursRejectsOutOfBounds(t *testing.T) {
	wl := NewWeekLog(testWeek(t), nil, nil)

	if err := wl.SetHours("2026-01-05", domain.RoleTechnicalTrainer, 4); err != nil {
		t.Fatalf("SetHours: %v", err)
	}
	if err := wl.SetHours("2026-01-05", domain.RoleTechnicalTrainer, 9.5); err != ErrHourBounds {
		t.Fatalf("got %v, want ErrHourBounds", err)
	}
	if err := wl.SetHours("2026-01-05", domain.RoleTechnicalTrainer, -1); err != ErrHourBounds {
		t.Fatalf("got %v, want ErrHourBounds", err)
	}

	// Prior value survives the rejected edit.
	logs := wl.DayLogs()
	if got := logs[0].Roles[domain.RoleTechnicalTrainer].Hours; got != 4 {
		t.Errorf("hours after rejected edit = %v, want 4", got)
	}
}

func TestSetHoursUnknownDayAndRole(t *testing.T) {
	wl := NewWeekLog(testWeek(t), nil, nil)

	// Saturday of the same week is not a loggable day.
	if err := wl.SetHours("2026-01-10", domain.RoleMentor, 1); err != ErrUnknownDay {
		t.Fatalf("got %v, want ErrUnknownDay", err)
	}
	if err := wl.SetHours("2026-01-05", domain.EffortRole("INTERN"), 1); err != ErrUnknownRole {
		t.Fatalf("got %v, want ErrUnknownRole", err)
	}
}

func TestEditClearsSavedFlag(t *testing.T) {
	wl := NewWeekLog(testWeek(t), nil, nil)

	if err := wl.SaveDay("2026-01-05"); err != nil {
		t.Fatalf("SaveDay: %v", err)
	}
	if !wl.Saved("2026-01-05") {
		t.Fatal("day should be saved")
	}

	if err := wl.SetHours("2026-01-05", domain.RoleBuddyMentor, 2); err != nil {
		t.Fatalf("SetHours: %v", err)
	}
	if wl.Saved("2026-01-05") {
		t.Error("editing hours must clear the saved flag")
	}

	if err := wl.SaveDay("2026-01-05"); err != nil {
		t.Fatalf("SaveDay: %v", err)
	}
	if err := wl.SetNotes("2026-01-05", domain.RoleBuddyMentor, "pairing"); err != nil {
		t.Fatalf("SetNotes: %v", err)
	}
	if wl.Saved("2026-01-05") {
		t.Error("editing notes must clear the saved flag")
	}
}

func TestStatsSkipsHolidays(t *testing.T) {
	wl := NewWeekLog(testWeek(t), []string{"2026-01-06"}, nil)

	if err := wl.SetHours("2026-01-05", domain.RoleTechnicalTrainer, 3); err != nil {
		t.Fatalf("SetHours: %v", err)
	}
	if err := wl.SetHours("2026-01-06", domain.RoleTechnicalTrainer, 5); err != nil {
		t.Fatalf("SetHours: %v", err)
	}

	totals := wl.Stats()
	if totals.Total != 3 {
		t.Errorf("total = %v, want 3 (holiday hours excluded)", totals.Total)
	}
	if got := totals.Hours(domain.RoleTechnicalTrainer); got != 3 {
		t.Errorf("trainer hours = %v, want 3", got)
	}
}

func TestMarkCompletedMakesReadOnly(t *testing.T) {
	wl := NewWeekLog(testWeek(t), nil, nil)
	wl.MarkCompleted()

	if err := wl.SetHours("2026-01-05", domain.RoleMentor, 1); err != ErrWeekCompleted {
		t.Fatalf("SetHours got %v, want ErrWeekCompleted", err)
	}
	if err := wl.SaveDay("2026-01-05"); err != ErrWeekCompleted {
		t.Fatalf("SaveDay got %v, want ErrWeekCompleted", err)
	}
	if _, err := wl.BuildSubmission(SubmissionParams{}); err != ErrWeekCompleted {
		t.Fatalf("BuildSubmission got %v, want ErrWeekCompleted", err)
	}
}

func TestBuildSubmissionRequiresAllDaysSaved(t *testing.T) {
	wl := NewWeekLog(testWeek(t), nil, nil)

	// Save four of five days.
	days := wl.Week().WeekdayDates()
	for _, day := range days[:4] {
		if err := wl.SetHours(day, domain.RoleTechnicalTrainer, 4); err != nil {
			t.Fatalf("SetHours: %v", err)
		}
		if err := wl.SaveDay(day); err != nil {
			t.Fatalf("SaveDay: %v", err)
		}
	}

	if _, err := wl.BuildSubmission(SubmissionParams{}); err != ErrIncompleteLog {
		t.Fatalf("got %v, want ErrIncompleteLog", err)
	}

	// Saving the fifth day lifts the gate.
	if err := wl.SaveDay(days[4]); err != nil {
		t.Fatalf("SaveDay: %v", err)
	}
	if _, err := wl.BuildSubmission(SubmissionParams{}); err != nil {
		t.Fatalf("BuildSubmission: %v", err)
	}
}

func TestBuildSubmissionIgnoresUnsavedHoliday(t *testing.T) {
	wl := NewWeekLog(testWeek(t), []string{"2026-01-07"}, nil)

	for _, day := range wl.Week().WeekdayDates() {
		if day == "2026-01-07" {
			continue // the holiday stays untouched and unsaved
		}
		if err := wl.SaveDay(day); err != nil {
			t.Fatalf("SaveDay: %v", err)
		}
	}

	sub, err := wl.BuildSubmission(SubmissionParams{SubmittedBy: "Coach A"})
	if err != nil {
		t.Fatalf("BuildSubmission: %v", err)
	}
	if len(sub.Holidays) != 1 || sub.Holidays[0] != "2026-01-07" {
		t.Errorf("holidays = %v, want [2026-01-07]", sub.Holidays)
	}
}

func TestBuildSubmissionEnforcesDailyCeiling(t *testing.T) {
	wl := NewWeekLog(testWeek(t), nil, nil)
	fillWeek(t, wl, 4)

	// Each cell is within bounds but Monday's cumulative total crosses 9.
	if err := wl.SetHours("2026-01-05", domain.RoleMentor, 6); err != nil {
		t.Fatalf("SetHours: %v", err)
	}
	if err := wl.SaveDay("2026-01-05"); err != nil {
		t.Fatalf("SaveDay: %v", err)
	}

	if _, err := wl.BuildSubmission(SubmissionParams{}); err != ErrDayTotal {
		t.Fatalf("got %v, want ErrDayTotal", err)
	}
}

func TestBuildSubmissionPayload(t *testing.T) {
	wl := NewWeekLog(testWeek(t), nil, nil)
	fillWeek(t, wl, 4)

	cohortID := primitive.NewObjectID()
	coachID := primitive.NewObjectID()
	sub, err := wl.BuildSubmission(SubmissionParams{
		CohortID:    cohortID,
		CoachID:     coachID,
		Location:    "Chennai",
		SubmittedBy: "Coach A",
	})
	if err != nil {
		t.Fatalf("BuildSubmission: %v", err)
	}

	if sub.CohortID != cohortID || sub.CoachID != coachID {
		t.Error("submission must carry the caller's identity params")
	}
	if sub.WeekStartDate != "2026-01-05" || sub.WeekEndDate != "2026-01-11" {
		t.Errorf("week bounds = %s..%s", sub.WeekStartDate, sub.WeekEndDate)
	}
	if sub.Status != domain.SubmissionCompleted {
		t.Errorf("status = %s, want COMPLETED", sub.Status)
	}
	if len(sub.DayLogs) != 5 {
		t.Errorf("got %d day logs, want 5", len(sub.DayLogs))
	}
	if sub.SubmittedAt.IsZero() {
		t.Error("SubmittedAt must be set")
	}
}
