package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"acadex/academy-ops/internal/domain"
	"acadex/academy-ops/internal/effort"
	"acadex/academy-ops/internal/repository"
	"acadex/academy-ops/internal/storage"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrWeekNotFound       = errors.New("week start date does not match any week of the cohort")
	ErrSubmissionConflict = errors.New("a weekly summary already exists for this week")
	ErrUserNotFound       = errors.New("user not found")
	ErrSummaryNotFound    = errors.New("no weekly summary exists for this week")
	ErrArchiveNotFound    = errors.New("no archived submission exists for this week")
	ErrHolidayExists      = errors.New("holiday already exists for this location and date")
	ErrInvalidHolidayDate = errors.New("holiday date must be a valid yyyy-mm-dd date")
)

// WeekView is one entry of the cohort's week dropdown: the derived week plus
// its lock classification and whether it is the default selection.
type WeekView struct {
	effort.Week
	Label     string        `json:"label"`
	Status    effort.Status `json:"status"`
	IsCurrent bool          `json:"isCurrent"`
}

// WeekLogView is the seeded staging state for one selected week, as handed
// to the client: day logs, per-day saved flags derived from persisted
// records, the week's classification and its current rollup.
type WeekLogView struct {
	Week       effort.Week     `json:"week"`
	Status     effort.Status   `json:"status"`
	DayLogs    []domain.DayLog `json:"dayLogs"`
	SavedFlags map[string]bool `json:"savedFlags"`
	Holidays   []string        `json:"holidays"`
	Stats      WeekStatsView   `json:"stats"`
}

// WeekStatsView is the rollup of staged hours for display.
type WeekStatsView struct {
	TechnicalTrainerHours  float64 `json:"technicalTrainerHours"`
	BehavioralTrainerHours float64 `json:"behavioralTrainerHours"`
	MentorHours            float64 `json:"mentorHours"`
	BuddyMentorHours       float64 `json:"buddyMentorHours"`
	TotalHours             float64 `json:"totalHours"`
}

func statsView(t effort.Totals) WeekStatsView {
	return WeekStatsView{
		TechnicalTrainerHours:  t.Hours(domain.RoleTechnicalTrainer),
		BehavioralTrainerHours: t.Hours(domain.RoleBehavioralTrainer),
		MentorHours:            t.Hours(domain.RoleMentor),
		BuddyMentorHours:       t.Hours(domain.RoleBuddyMentor),
		TotalHours:             t.Total,
	}
}

// DayLogInput is one staged day of a weekly submission as sent by the
// client. Days the client omits count as unsaved and fail the submission
// gate.
type DayLogInput struct {
	Date  string
	Roles map[domain.EffortRole]domain.EffortDetail
}

// DailyEffortInput carries one ad-hoc daily effort entry.
type DailyEffortInput struct {
	CohortID      primitive.ObjectID
	StakeholderID *primitive.ObjectID
	Role          domain.EffortRole
	Mode          domain.EffortMode
	ReasonVirtual string
	AreaOfWork    string
	EffortHours   float64
	EffortDate    string
}

// --- Service Interface ---
type EffortService interface {
	// WeeksForCohort partitions the cohort's range into calendar weeks and
	// classifies each against today and the persisted summaries.
	WeeksForCohort(ctx context.Context, cohortID primitive.ObjectID, today time.Time) ([]WeekView, error)
	// WeekLogForCohort seeds the staging state of one week from persisted
	// effort records and the location's holiday calendar.
	WeekLogForCohort(ctx context.Context, cohortID primitive.ObjectID, weekStartDate string, today time.Time) (*WeekLogView, error)
	// SubmitDailyEffort appends a single effort record, provided the
	// containing week has not been completed.
	SubmitDailyEffort(ctx context.Context, input DailyEffortInput, userID primitive.ObjectID) (*domain.EffortRecord, error)
	// SubmitWeeklyEffort validates a full staged week and creates the
	// immutable submission plus its weekly summary.
	SubmitWeeklyEffort(ctx context.Context, cohortID primitive.ObjectID, weekStartDate string, days []DayLogInput, userID primitive.ObjectID) (*domain.WeeklySummary, error)
	// WeeklySummaries returns the completed-week history of a cohort.
	WeeklySummaries(ctx context.Context, cohortID primitive.ObjectID) ([]domain.WeeklySummary, error)
	// EffortHistory returns a cohort's full append-only record trail with
	// its per-role rollup.
	EffortHistory(ctx context.Context, cohortID primitive.ObjectID) ([]domain.EffortRecord, WeekStatsView, error)
	// SummaryArchiveURL mints a presigned download URL for the archived
	// submission JSON of a completed week.
	SummaryArchiveURL(ctx context.Context, cohortID primitive.ObjectID, weekStartDate string) (string, error)
	// DeleteSummaryArchive removes the archived submission JSON from object
	// storage. The summary itself is never deleted.
	DeleteSummaryArchive(ctx context.Context, cohortID primitive.ObjectID, weekStartDate string) error
	// Holidays exposes the location-keyed holiday calendar.
	Holidays(ctx context.Context, location string) ([]domain.Holiday, error)
	// AddHoliday registers a non-working date for a training location.
	AddHoliday(ctx context.Context, location, date, name string) (*domain.Holiday, error)
}

// --- Service Implementation ---

type effortService struct {
	cohortRepo  repository.CohortRepository
	effortRepo  repository.EffortRepository
	summaryRepo repository.WeeklySummaryRepository
	holidayRepo repository.HolidayRepository
	userRepo    repository.UserRepository
	archive     storage.FileStorage // may be nil; archiving is best effort
}

// NewEffortService creates a new instance of effortService.
func NewEffortService(
	cohortRepo repository.CohortRepository,
	effortRepo repository.EffortRepository,
	summaryRepo repository.WeeklySummaryRepository,
	holidayRepo repository.HolidayRepository,
	userRepo repository.UserRepository,
	archive storage.FileStorage,
) EffortService {
	return &effortService{
		cohortRepo:  cohortRepo,
		effortRepo:  effortRepo,
		summaryRepo: summaryRepo,
		holidayRepo: holidayRepo,
		userRepo:    userRepo,
		archive:     archive,
	}
}

func (s *effortService) getCohort(ctx context.Context, cohortID primitive.ObjectID) (*domain.Cohort, error) {
	cohort, err := s.cohortRepo.GetByID(ctx, cohortID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCohortNotFound
		}
		return nil, err
	}
	return cohort, nil
}

// summarySet returns the week start dates that already have a summary.
func (s *effortService) summarySet(ctx context.Context, cohortID primitive.ObjectID) (map[string]bool, error) {
	summaries, err := s.summaryRepo.GetByCohortID(ctx, cohortID)
	if err != nil {
		return nil, err
	}
	set := make(map[string]bool, len(summaries))
	for _, summary := range summaries {
		set[summary.WeekStartDate] = true
	}
	return set, nil
}

// WeeksForCohort derives the week list fresh from the cohort's date range —
// weeks are never stored, so later edits to the cohort dates cannot drift.
func (s *effortService) WeeksForCohort(ctx context.Context, cohortID primitive.ObjectID, today time.Time) ([]WeekView, error) {
	cohort, err := s.getCohort(ctx, cohortID)
	if err != nil {
		return nil, err
	}

	weeks, err := effort.PartitionWeeks(cohort.StartDate, cohort.EndDate)
	if err != nil {
		return nil, err
	}

	completed, err := s.summarySet(ctx, cohortID)
	if err != nil {
		return nil, err
	}

	current, _ := effort.CurrentWeek(weeks, today)

	views := make([]WeekView, 0, len(weeks))
	for _, week := range weeks {
		start := week.StartDate.Format(effort.ISODate)
		views = append(views, WeekView{
			Week:      week,
			Label:     week.Label(),
			Status:    effort.Classify(week, today, completed[start]),
			IsCurrent: week.ID == current.ID,
		})
	}
	return views, nil
}

func (s *effortService) findWeek(cohort *domain.Cohort, weekStartDate string) (effort.Week, error) {
	weeks, err := effort.PartitionWeeks(cohort.StartDate, cohort.EndDate)
	if err != nil {
		return effort.Week{}, err
	}
	for _, week := range weeks {
		if week.StartDate.Format(effort.ISODate) == weekStartDate {
			return week, nil
		}
	}
	return effort.Week{}, ErrWeekNotFound
}

func (s *effortService) holidayDates(ctx context.Context, location string) ([]string, error) {
	holidays, err := s.holidayRepo.GetByLocation(ctx, location)
	if err != nil {
		return nil, err
	}
	dates := make([]string, 0, len(holidays))
	for _, h := range holidays {
		dates = append(dates, h.Date)
	}
	return dates, nil
}

// WeekLogForCohort rebuilds the staging store for one week. The saved flags
// come from "does a persisted record exist for the date", never from any
// remembered client state, so a page reload always re-derives them.
func (s *effortService) WeekLogForCohort(ctx context.Context, cohortID primitive.ObjectID, weekStartDate string, today time.Time) (*WeekLogView, error) {
	cohort, err := s.getCohort(ctx, cohortID)
	if err != nil {
		return nil, err
	}

	week, err := s.findWeek(cohort, weekStartDate)
	if err != nil {
		return nil, err
	}

	holidays, err := s.holidayDates(ctx, cohort.TrainingLocation)
	if err != nil {
		return nil, err
	}

	records, err := s.effortRepo.GetByCohortAndDateRange(ctx, cohortID,
		week.StartDate.Format(effort.ISODate), week.EndDate.Format(effort.ISODate))
	if err != nil {
		return nil, err
	}

	weekLog := effort.NewWeekLog(week, holidays, records)

	status := effort.StatusOpen
	_, err = s.summaryRepo.GetByCohortAndWeekStart(ctx, cohortID, weekStartDate)
	switch {
	case err == nil:
		weekLog.MarkCompleted()
		status = effort.StatusCompleted
	case errors.Is(err, repository.ErrNotFound):
		status = effort.Classify(week, today, false)
	default:
		return nil, err
	}

	return &WeekLogView{
		Week:       week,
		Status:     status,
		DayLogs:    weekLog.DayLogs(),
		SavedFlags: weekLog.SavedFlags(),
		Holidays:   weekLog.Holidays(),
		Stats:      statsView(weekLog.Stats()),
	}, nil
}

// stakeholderForRole falls back to the cohort's default stakeholder when the
// entry does not name one explicitly.
func stakeholderForRole(cohort *domain.Cohort, role domain.EffortRole) *primitive.ObjectID {
	switch role {
	case domain.RoleTechnicalTrainer:
		return cohort.PrimaryTrainerID
	case domain.RoleBehavioralTrainer:
		return cohort.BehavioralTrainerID
	case domain.RoleMentor:
		return cohort.PrimaryMentorID
	case domain.RoleBuddyMentor:
		return cohort.BuddyMentorID
	}
	return nil
}

// SubmitDailyEffort appends one effort record. Rejected when the containing
// week is already completed: the persisted summary is the lock, not any
// client-side state.
func (s *effortService) SubmitDailyEffort(ctx context.Context, input DailyEffortInput, userID primitive.ObjectID) (*domain.EffortRecord, error) {
	if !input.Role.Valid() {
		return nil, effort.ErrUnknownRole
	}
	if err := effort.CheckHours(input.EffortHours); err != nil {
		return nil, err
	}
	date, err := effort.ParseISO(input.EffortDate)
	if err != nil {
		return nil, fmt.Errorf("invalid effort date: %w", err)
	}

	cohort, err := s.getCohort(ctx, input.CohortID)
	if err != nil {
		return nil, err
	}

	weekStart := effort.WeekStartOf(date).Format(effort.ISODate)
	_, err = s.summaryRepo.GetByCohortAndWeekStart(ctx, input.CohortID, weekStart)
	if err == nil {
		return nil, effort.ErrWeekCompleted
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	stakeholder := input.StakeholderID
	if stakeholder == nil {
		stakeholder = stakeholderForRole(cohort, input.Role)
	}

	mode := input.Mode
	if mode != domain.ModeVirtual {
		mode = domain.ModeInPerson
	}
	area := input.AreaOfWork
	if area == "" {
		area = "Daily effort logging"
	}

	record := &domain.EffortRecord{
		CohortID:      input.CohortID,
		StakeholderID: stakeholder,
		Role:          input.Role,
		Mode:          mode,
		ReasonVirtual: input.ReasonVirtual,
		AreaOfWork:    area,
		EffortHours:   input.EffortHours,
		EffortDate:    input.EffortDate,
		EffortMonth:   effort.MonthOf(input.EffortDate),
		UpdatedBy:     userID,
	}

	recordID, err := s.effortRepo.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	record.ID = recordID
	return record, nil
}

// SubmitWeeklyEffort is the single write path that completes a week.
//
// The staged days from the client are replayed through the staging store so
// every validation (hour bounds, cumulative cap, the all-days-saved gate)
// runs server-side, then the summary is created first — its unique index is
// what actually claims the week — and the append-only records follow. Any
// validation failure or conflict leaves the week OPEN and nothing written.
func (s *effortService) SubmitWeeklyEffort(ctx context.Context, cohortID primitive.ObjectID, weekStartDate string, days []DayLogInput, userID primitive.ObjectID) (*domain.WeeklySummary, error) {
	cohort, err := s.getCohort(ctx, cohortID)
	if err != nil {
		return nil, err
	}

	week, err := s.findWeek(cohort, weekStartDate)
	if err != nil {
		return nil, err
	}

	// Fast-path conflict check; the unique index remains the authority.
	_, err = s.summaryRepo.GetByCohortAndWeekStart(ctx, cohortID, weekStartDate)
	if err == nil {
		return nil, ErrSubmissionConflict
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	submittedBy, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	holidays, err := s.holidayDates(ctx, cohort.TrainingLocation)
	if err != nil {
		return nil, err
	}

	weekLog := effort.NewWeekLog(week, holidays, nil)
	for _, day := range days {
		for role, detail := range day.Roles {
			if err := weekLog.SetHours(day.Date, role, detail.Hours); err != nil {
				return nil, err
			}
			if err := weekLog.SetNotes(day.Date, role, detail.Notes); err != nil {
				return nil, err
			}
		}
		if err := weekLog.SaveDay(day.Date); err != nil {
			return nil, err
		}
	}

	coachID := userID
	if cohort.CoachID != nil {
		coachID = *cohort.CoachID
	}

	submission, err := weekLog.BuildSubmission(effort.SubmissionParams{
		CohortID:    cohortID,
		CoachID:     coachID,
		Location:    cohort.TrainingLocation,
		SubmittedBy: submittedBy.Name,
	})
	if err != nil {
		return nil, err
	}

	records := effort.RecordsFromSubmission(submission)
	for i := range records {
		records[i].StakeholderID = stakeholderForRole(cohort, records[i].Role)
		records[i].UpdatedBy = userID
	}
	totals := effort.Aggregate(records)

	// The archive key is chosen before the summary insert so the summary
	// can record where its submission JSON will live.
	var archiveKey string
	if s.archive != nil {
		archiveKey = fmt.Sprintf("submissions/%s/%s-%s.json",
			cohortID.Hex(), submission.WeekStartDate, uuid.NewString())
	}

	summary := &domain.WeeklySummary{
		CohortID:               cohortID,
		WeekStartDate:          submission.WeekStartDate,
		WeekEndDate:            submission.WeekEndDate,
		TechnicalTrainerHours:  totals.Hours(domain.RoleTechnicalTrainer),
		BehavioralTrainerHours: totals.Hours(domain.RoleBehavioralTrainer),
		MentorHours:            totals.Hours(domain.RoleMentor),
		BuddyMentorHours:       totals.Hours(domain.RoleBuddyMentor),
		TotalHours:             totals.Total,
		Holidays:               submission.Holidays,
		ArchiveObjectKey:       archiveKey,
		SubmittedBy:            submittedBy.Name,
		SummaryDate:            submission.SubmittedAt,
	}

	summaryID, err := s.summaryRepo.Create(ctx, summary)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrSubmissionConflict
		}
		return nil, err
	}
	summary.ID = summaryID

	if err := s.effortRepo.CreateMany(ctx, records); err != nil {
		// The week is already locked by its summary; the day-level records
		// feed history views only.
		log.Printf("WARN: Failed to persist effort records for cohort %s week %s: %v",
			cohortID.Hex(), weekStartDate, err)
	}

	s.archiveSubmission(ctx, archiveKey, submission)

	return summary, nil
}

// archiveSubmission stores the immutable submission JSON in object storage
// for audit. Best effort: a storage failure never fails the submission.
func (s *effortService) archiveSubmission(ctx context.Context, objectKey string, submission *domain.WeeklyEffortSubmission) {
	if s.archive == nil || objectKey == "" {
		return
	}

	payload, err := json.Marshal(submission)
	if err != nil {
		log.Printf("WARN: Failed to marshal weekly submission for archive: %v", err)
		return
	}

	if err := s.archive.PutObject(ctx, objectKey, "application/json", payload); err != nil {
		log.Printf("WARN: Failed to archive weekly submission '%s': %v", objectKey, err)
		return
	}
	log.Printf("INFO: Archived weekly submission as '%s'", objectKey)
}

// summaryWithArchive resolves the summary of a week and checks an archived
// object is on record for it.
func (s *effortService) summaryWithArchive(ctx context.Context, cohortID primitive.ObjectID, weekStartDate string) (*domain.WeeklySummary, error) {
	summary, err := s.summaryRepo.GetByCohortAndWeekStart(ctx, cohortID, weekStartDate)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSummaryNotFound
		}
		return nil, err
	}
	if s.archive == nil || summary.ArchiveObjectKey == "" {
		return nil, ErrArchiveNotFound
	}
	return summary, nil
}

// SummaryArchiveURL mints a short-lived download URL for the archived
// submission JSON of a completed week.
func (s *effortService) SummaryArchiveURL(ctx context.Context, cohortID primitive.ObjectID, weekStartDate string) (string, error) {
	summary, err := s.summaryWithArchive(ctx, cohortID, weekStartDate)
	if err != nil {
		return "", err
	}
	return s.archive.GeneratePresignedDownloadURL(ctx, summary.ArchiveObjectKey, 0)
}

// DeleteSummaryArchive removes a week's archived submission JSON, e.g. under
// a retention policy. The summary and its lock are untouched.
func (s *effortService) DeleteSummaryArchive(ctx context.Context, cohortID primitive.ObjectID, weekStartDate string) error {
	summary, err := s.summaryWithArchive(ctx, cohortID, weekStartDate)
	if err != nil {
		return err
	}
	return s.archive.DeleteObject(ctx, summary.ArchiveObjectKey)
}

// EffortHistory returns every effort record of a cohort in date order along
// with the per-role rollup across the cohort's lifetime.
func (s *effortService) EffortHistory(ctx context.Context, cohortID primitive.ObjectID) ([]domain.EffortRecord, WeekStatsView, error) {
	if _, err := s.getCohort(ctx, cohortID); err != nil {
		return nil, WeekStatsView{}, err
	}
	records, err := s.effortRepo.GetByCohortID(ctx, cohortID)
	if err != nil {
		return nil, WeekStatsView{}, err
	}
	return records, statsView(effort.Aggregate(records)), nil
}

// AddHoliday registers a non-working date for a training location. The
// unique (location, date) index rejects duplicates.
func (s *effortService) AddHoliday(ctx context.Context, location, date, name string) (*domain.Holiday, error) {
	if location == "" {
		return nil, errors.New("holiday location is required")
	}
	if _, err := effort.ParseISO(date); err != nil {
		return nil, ErrInvalidHolidayDate
	}

	holiday := &domain.Holiday{
		Location: location,
		Date:     date,
		Name:     name,
	}

	holidayID, err := s.holidayRepo.Create(ctx, holiday)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrHolidayExists
		}
		return nil, err
	}
	holiday.ID = holidayID
	return holiday, nil
}

// WeeklySummaries returns a cohort's completed-week history.
func (s *effortService) WeeklySummaries(ctx context.Context, cohortID primitive.ObjectID) ([]domain.WeeklySummary, error) {
	if _, err := s.getCohort(ctx, cohortID); err != nil {
		return nil, err
	}
	return s.summaryRepo.GetByCohortID(ctx, cohortID)
}

// Holidays exposes the location-keyed holiday calendar.
func (s *effortService) Holidays(ctx context.Context, location string) ([]domain.Holiday, error) {
	return s.holidayRepo.GetByLocation(ctx, location)
}
