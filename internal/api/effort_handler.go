package api

import (
	"errors"
	"net/http"
	"time"

	"acadex/academy-ops/internal/domain"
	"acadex/academy-ops/internal/effort"
	"acadex/academy-ops/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EffortHandler holds the effort service dependency.
type EffortHandler struct {
	effortService service.EffortService
}

// NewEffortHandler creates a new EffortHandler.
func NewEffortHandler(effortService service.EffortService) *EffortHandler {
	return &EffortHandler{effortService: effortService}
}

// --- DTOs for API ---

// RoleEffortInput is one role's cell of a staged day: hours plus notes.
type RoleEffortInput struct {
	Hours float64 `json:"hours" binding:"min=0,max=9"`
	Notes string  `json:"notes"`
}

// DayLogRequest is one staged day of a weekly submission.
type DayLogRequest struct {
	Date  string                                `json:"date" binding:"required"`
	Roles map[domain.EffortRole]RoleEffortInput `json:"roles" binding:"required"`
}

// WeeklyEffortRequest is the payload completing a week. Days the client
// omits count as unsaved and reject the submission.
type WeeklyEffortRequest struct {
	WeekStartDate string          `json:"weekStartDate" binding:"required"`
	Days          []DayLogRequest `json:"days" binding:"required"`
}

// DailyEffortRequest is a single ad-hoc effort entry.
type DailyEffortRequest struct {
	StakeholderID string            `json:"stakeholderId" binding:"omitempty"`
	Role          domain.EffortRole `json:"role" binding:"required,oneof=TRAINER BH_TRAINER MENTOR BUDDY_MENTOR"`
	Mode          domain.EffortMode `json:"mode" binding:"omitempty,oneof=IN_PERSON VIRTUAL"`
	ReasonVirtual string            `json:"reasonVirtual"`
	AreaOfWork    string            `json:"areaOfWork"`
	EffortHours   float64           `json:"effortHours" binding:"min=0,max=9"`
	EffortDate    string            `json:"effortDate" binding:"required"`
}

// HolidayRequest registers one non-working date for a training location.
type HolidayRequest struct {
	Location string `json:"location" binding:"required"`
	Date     string `json:"date" binding:"required"`
	Name     string `json:"name"`
}

// EffortHistoryResponse carries a cohort's full record trail plus its
// per-role rollup.
type EffortHistoryResponse struct {
	Records []domain.EffortRecord `json:"records"`
	Totals  service.WeekStatsView `json:"totals"`
}

// WeeklySummaryResponse is the DTO for a completed week's aggregate.
type WeeklySummaryResponse struct {
	ID                     string    `json:"id"`
	CohortID               string    `json:"cohortId"`
	WeekStartDate          string    `json:"weekStartDate"`
	WeekEndDate            string    `json:"weekEndDate"`
	TechnicalTrainerHours  float64   `json:"technicalTrainerHours"`
	BehavioralTrainerHours float64   `json:"behavioralTrainerHours"`
	MentorHours            float64   `json:"mentorHours"`
	BuddyMentorHours       float64   `json:"buddyMentorHours"`
	TotalHours             float64   `json:"totalHours"`
	Holidays               []string  `json:"holidays,omitempty"`
	SubmittedBy            string    `json:"submittedBy"`
	SummaryDate            time.Time `json:"summaryDate"`
}

// MapSummaryToResponse converts a domain.WeeklySummary to its DTO.
func MapSummaryToResponse(summary *domain.WeeklySummary) WeeklySummaryResponse {
	if summary == nil {
		return WeeklySummaryResponse{}
	}
	return WeeklySummaryResponse{
		ID:                     summary.ID.Hex(),
		CohortID:               summary.CohortID.Hex(),
		WeekStartDate:          summary.WeekStartDate,
		WeekEndDate:            summary.WeekEndDate,
		TechnicalTrainerHours:  summary.TechnicalTrainerHours,
		BehavioralTrainerHours: summary.BehavioralTrainerHours,
		MentorHours:            summary.MentorHours,
		BuddyMentorHours:       summary.BuddyMentorHours,
		TotalHours:             summary.TotalHours,
		Holidays:               summary.Holidays,
		SubmittedBy:            summary.SubmittedBy,
		SummaryDate:            summary.SummaryDate,
	}
}

// MapSummariesToResponse converts a slice of summaries to DTOs.
func MapSummariesToResponse(summaries []domain.WeeklySummary) []WeeklySummaryResponse {
	responses := make([]WeeklySummaryResponse, len(summaries))
	for i, summary := range summaries {
		responses[i] = MapSummaryToResponse(&summary)
	}
	return responses
}

// --- Helpers ---

func cohortIDParam(c *gin.Context) (primitive.ObjectID, bool) {
	cohortID, err := primitive.ObjectIDFromHex(c.Param("cohortId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid cohort ID format.")
		return primitive.NilObjectID, false
	}
	return cohortID, true
}

func userIDFromToken(c *gin.Context) (primitive.ObjectID, bool) {
	userIDStr, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return primitive.NilObjectID, false
	}
	userID, err := primitive.ObjectIDFromHex(userIDStr)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid user ID format in token.")
		return primitive.NilObjectID, false
	}
	return userID, true
}

// todayParam parses the optional ?today= override, used by clients whose
// local date differs from the server's. Defaults to the server's UTC today.
func todayParam(c *gin.Context) (time.Time, bool) {
	raw := c.Query("today")
	if raw == "" {
		return time.Now().UTC(), true
	}
	today, err := effort.ParseISO(raw)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid 'today' date format, expected yyyy-mm-dd.")
		return time.Time{}, false
	}
	return today, true
}

// --- Handler Methods ---

// GetWeeks returns the cohort's derived week list with lock classification.
func (h *EffortHandler) GetWeeks(c *gin.Context) {
	cohortID, ok := cohortIDParam(c)
	if !ok {
		return
	}
	today, ok := todayParam(c)
	if !ok {
		return
	}

	weeks, err := h.effortService.WeeksForCohort(c.Request.Context(), cohortID, today)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCohortNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, effort.ErrInvalidRange):
			abortWithError(c, http.StatusUnprocessableEntity, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to compute cohort weeks.")
		}
		return
	}

	c.JSON(http.StatusOK, weeks)
}

// GetWeekLog returns the seeded staging state of one week.
func (h *EffortHandler) GetWeekLog(c *gin.Context) {
	cohortID, ok := cohortIDParam(c)
	if !ok {
		return
	}
	today, ok := todayParam(c)
	if !ok {
		return
	}
	weekStartDate := c.Param("weekStart")

	weekLog, err := h.effortService.WeekLogForCohort(c.Request.Context(), cohortID, weekStartDate, today)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCohortNotFound), errors.Is(err, service.ErrWeekNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to load week log.")
		}
		return
	}

	c.JSON(http.StatusOK, weekLog)
}

// SubmitDailyEffort appends a single effort record.
func (h *EffortHandler) SubmitDailyEffort(c *gin.Context) {
	cohortID, ok := cohortIDParam(c)
	if !ok {
		return
	}
	userID, ok := userIDFromToken(c)
	if !ok {
		return
	}

	var req DailyEffortRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	var stakeholderID *primitive.ObjectID
	if req.StakeholderID != "" {
		id, err := primitive.ObjectIDFromHex(req.StakeholderID)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid stakeholder ID format.")
			return
		}
		stakeholderID = &id
	}

	record, err := h.effortService.SubmitDailyEffort(c.Request.Context(), service.DailyEffortInput{
		CohortID:      cohortID,
		StakeholderID: stakeholderID,
		Role:          req.Role,
		Mode:          req.Mode,
		ReasonVirtual: req.ReasonVirtual,
		AreaOfWork:    req.AreaOfWork,
		EffortHours:   req.EffortHours,
		EffortDate:    req.EffortDate,
	}, userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCohortNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, effort.ErrWeekCompleted):
			abortWithError(c, http.StatusConflict, err.Error())
		case errors.Is(err, effort.ErrHourBounds), errors.Is(err, effort.ErrUnknownRole):
			abortWithError(c, http.StatusUnprocessableEntity, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to record daily effort.")
		}
		return
	}

	c.JSON(http.StatusCreated, record)
}

// SubmitWeeklyEffort validates and completes a full staged week.
func (h *EffortHandler) SubmitWeeklyEffort(c *gin.Context) {
	cohortID, ok := cohortIDParam(c)
	if !ok {
		return
	}
	userID, ok := userIDFromToken(c)
	if !ok {
		return
	}

	var req WeeklyEffortRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	days := make([]service.DayLogInput, 0, len(req.Days))
	for _, day := range req.Days {
		roles := make(map[domain.EffortRole]domain.EffortDetail, len(day.Roles))
		for role, input := range day.Roles {
			roles[role] = domain.EffortDetail{Hours: input.Hours, Notes: input.Notes}
		}
		days = append(days, service.DayLogInput{Date: day.Date, Roles: roles})
	}

	summary, err := h.effortService.SubmitWeeklyEffort(c.Request.Context(), cohortID, req.WeekStartDate, days, userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCohortNotFound), errors.Is(err, service.ErrWeekNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrSubmissionConflict), errors.Is(err, effort.ErrWeekCompleted):
			abortWithError(c, http.StatusConflict, err.Error())
		case errors.Is(err, effort.ErrIncompleteLog),
			errors.Is(err, effort.ErrHourBounds),
			errors.Is(err, effort.ErrDayTotal),
			errors.Is(err, effort.ErrUnknownDay),
			errors.Is(err, effort.ErrUnknownRole):
			abortWithError(c, http.StatusUnprocessableEntity, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to submit weekly effort.")
		}
		return
	}

	c.JSON(http.StatusCreated, MapSummaryToResponse(summary))
}

// GetWeeklySummaries returns a cohort's completed-week history.
func (h *EffortHandler) GetWeeklySummaries(c *gin.Context) {
	cohortID, ok := cohortIDParam(c)
	if !ok {
		return
	}

	summaries, err := h.effortService.WeeklySummaries(c.Request.Context(), cohortID)
	if err != nil {
		if errors.Is(err, service.ErrCohortNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to retrieve weekly summaries.")
		}
		return
	}

	if summaries == nil {
		c.JSON(http.StatusOK, []WeeklySummaryResponse{})
		return
	}

	c.JSON(http.StatusOK, MapSummariesToResponse(summaries))
}

// GetEffortHistory returns a cohort's append-only effort records with their
// per-role rollup.
func (h *EffortHandler) GetEffortHistory(c *gin.Context) {
	cohortID, ok := cohortIDParam(c)
	if !ok {
		return
	}

	records, totals, err := h.effortService.EffortHistory(c.Request.Context(), cohortID)
	if err != nil {
		if errors.Is(err, service.ErrCohortNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to retrieve effort history.")
		}
		return
	}

	if records == nil {
		records = []domain.EffortRecord{}
	}
	c.JSON(http.StatusOK, EffortHistoryResponse{Records: records, Totals: totals})
}

// GetSummaryArchive returns a presigned download URL for the archived
// submission JSON of a completed week.
func (h *EffortHandler) GetSummaryArchive(c *gin.Context) {
	cohortID, ok := cohortIDParam(c)
	if !ok {
		return
	}
	weekStartDate := c.Param("weekStart")

	url, err := h.effortService.SummaryArchiveURL(c.Request.Context(), cohortID, weekStartDate)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSummaryNotFound), errors.Is(err, service.ErrArchiveNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to generate archive download URL.")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}

// DeleteSummaryArchive removes the archived submission JSON of a week. The
// summary record and the week lock survive.
func (h *EffortHandler) DeleteSummaryArchive(c *gin.Context) {
	cohortID, ok := cohortIDParam(c)
	if !ok {
		return
	}
	weekStartDate := c.Param("weekStart")

	if err := h.effortService.DeleteSummaryArchive(c.Request.Context(), cohortID, weekStartDate); err != nil {
		switch {
		case errors.Is(err, service.ErrSummaryNotFound), errors.Is(err, service.ErrArchiveNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to delete submission archive.")
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// CreateHoliday registers a holiday for a training location.
func (h *EffortHandler) CreateHoliday(c *gin.Context) {
	var req HolidayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	holiday, err := h.effortService.AddHoliday(c.Request.Context(), req.Location, req.Date, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrHolidayExists):
			abortWithError(c, http.StatusConflict, err.Error())
		case errors.Is(err, service.ErrInvalidHolidayDate):
			abortWithError(c, http.StatusUnprocessableEntity, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to create holiday.")
		}
		return
	}

	c.JSON(http.StatusCreated, holiday)
}

// GetHolidays returns the holiday calendar for a training location.
func (h *EffortHandler) GetHolidays(c *gin.Context) {
	location := c.Query("location")
	if location == "" {
		abortWithError(c, http.StatusBadRequest, "Query parameter 'location' is required.")
		return
	}

	holidays, err := h.effortService.Holidays(c.Request.Context(), location)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve holidays.")
		return
	}

	if holidays == nil {
		c.JSON(http.StatusOK, []domain.Holiday{})
		return
	}

	c.JSON(http.StatusOK, holidays)
}
