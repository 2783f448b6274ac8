package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"acadex/academy-ops/internal/domain"
	"acadex/academy-ops/internal/effort"
	"acadex/academy-ops/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const testSecret = "handler-test-secret"

// stubEffortService returns canned values; errors override per call.
type stubEffortService struct {
	weeks      []service.WeekView
	weekLog    *service.WeekLogView
	record     *domain.EffortRecord
	summary    *domain.WeeklySummary
	summaries  []domain.WeeklySummary
	holidays   []domain.Holiday
	holiday    *domain.Holiday
	records    []domain.EffortRecord
	archiveURL string
	weeksErr   error
	weekLogErr error
	dailyErr   error
	weeklyErr  error
	historyErr error
	archiveErr error
	holidayErr error
}

func (s *stubEffortService) WeeksForCohort(context.Context, primitive.ObjectID, time.Time) ([]service.WeekView, error) {
	return s.weeks, s.weeksErr
}

func (s *stubEffortService) WeekLogForCohort(context.Context, primitive.ObjectID, string, time.Time) (*service.WeekLogView, error) {
	return s.weekLog, s.weekLogErr
}

func (s *stubEffortService) SubmitDailyEffort(context.Context, service.DailyEffortInput, primitive.ObjectID) (*domain.EffortRecord, error) {
	return s.record, s.dailyErr
}

func (s *stubEffortService) SubmitWeeklyEffort(context.Context, primitive.ObjectID, string, []service.DayLogInput, primitive.ObjectID) (*domain.WeeklySummary, error) {
	return s.summary, s.weeklyErr
}

func (s *stubEffortService) WeeklySummaries(context.Context, primitive.ObjectID) ([]domain.WeeklySummary, error) {
	return s.summaries, nil
}

func (s *stubEffortService) EffortHistory(context.Context, primitive.ObjectID) ([]domain.EffortRecord, service.WeekStatsView, error) {
	return s.records, service.WeekStatsView{}, s.historyErr
}

func (s *stubEffortService) SummaryArchiveURL(context.Context, primitive.ObjectID, string) (string, error) {
	return s.archiveURL, s.archiveErr
}

func (s *stubEffortService) DeleteSummaryArchive(context.Context, primitive.ObjectID, string) error {
	return s.archiveErr
}

func (s *stubEffortService) Holidays(context.Context, string) ([]domain.Holiday, error) {
	return s.holidays, nil
}

func (s *stubEffortService) AddHoliday(context.Context, string, string, string) (*domain.Holiday, error) {
	return s.holiday, s.holidayErr
}

func newTestRouter(effortService service.EffortService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	handler := NewEffortHandler(effortService)

	protected := router.Group("/api/v1")
	protected.Use(AuthMiddleware(testSecret))
	{
		protected.GET("/cohorts/:cohortId/weeks", handler.GetWeeks)
		protected.GET("/cohorts/:cohortId/weeks/:weekStart/logs", handler.GetWeekLog)
		protected.POST("/cohorts/:cohortId/efforts/weekly", RoleMiddleware(domain.RoleCoach, domain.RoleAdmin), handler.SubmitWeeklyEffort)
		protected.GET("/cohorts/:cohortId/efforts", handler.GetEffortHistory)
		protected.GET("/cohorts/:cohortId/summaries/:weekStart/archive", RoleMiddleware(domain.RoleAdmin), handler.GetSummaryArchive)
		protected.DELETE("/cohorts/:cohortId/summaries/:weekStart/archive", RoleMiddleware(domain.RoleAdmin), handler.DeleteSummaryArchive)
		protected.GET("/holidays", handler.GetHolidays)
		protected.POST("/holidays", RoleMiddleware(domain.RoleAdmin), handler.CreateHoliday)
	}
	return router
}

func testToken(t *testing.T, role domain.Role) string {
	t.Helper()
	claims := &jwtClaims{
		UserID: primitive.NewObjectID().Hex(),
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func doRequest(t *testing.T, router *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestGetWeeksRequiresAuth(t *testing.T) {
	router := newTestRouter(&stubEffortService{})

	rec := doRequest(t, router, http.MethodGet, "/api/v1/cohorts/"+primitive.NewObjectID().Hex()+"/weeks", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestGetWeeksReturnsWeekList(t *testing.T) {
	stub := &stubEffortService{
		weeks: []service.WeekView{
			{Week: effort.Week{ID: "week-1", Number: 1}, Label: "Week 1: 05-Jan-2026 to 11-Jan-2026", Status: effort.StatusOpen, IsCurrent: true},
		},
	}
	router := newTestRouter(stub)

	rec := doRequest(t, router, http.MethodGet,
		"/api/v1/cohorts/"+primitive.NewObjectID().Hex()+"/weeks?today=2026-01-07",
		testToken(t, domain.RoleCoach), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"week-1"`) {
		t.Errorf("body missing week id: %s", rec.Body.String())
	}
}

func TestGetWeeksRejectsBadToday(t *testing.T) {
	router := newTestRouter(&stubEffortService{})

	rec := doRequest(t, router, http.MethodGet,
		"/api/v1/cohorts/"+primitive.NewObjectID().Hex()+"/weeks?today=garbage",
		testToken(t, domain.RoleCoach), "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestGetWeeksUnknownCohort(t *testing.T) {
	router := newTestRouter(&stubEffortService{weeksErr: service.ErrCohortNotFound})

	rec := doRequest(t, router, http.MethodGet,
		"/api/v1/cohorts/"+primitive.NewObjectID().Hex()+"/weeks",
		testToken(t, domain.RoleCoach), "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestSubmitWeeklyEffortStatusMapping(t *testing.T) {
	body := `{"weekStartDate":"2026-01-05","days":[{"date":"2026-01-05","roles":{"TRAINER":{"hours":4}}}]}`

	cases := []struct {
		name string
		err  error
		want int
	}{
		{"conflict", service.ErrSubmissionConflict, http.StatusConflict},
		{"completed week", effort.ErrWeekCompleted, http.StatusConflict},
		{"incomplete log", effort.ErrIncompleteLog, http.StatusUnprocessableEntity},
		{"day total", effort.ErrDayTotal, http.StatusUnprocessableEntity},
		{"unknown week", service.ErrWeekNotFound, http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router := newTestRouter(&stubEffortService{weeklyErr: tc.err})
			rec := doRequest(t, router, http.MethodPost,
				"/api/v1/cohorts/"+primitive.NewObjectID().Hex()+"/efforts/weekly",
				testToken(t, domain.RoleCoach), body)
			if rec.Code != tc.want {
				t.Fatalf("status = %d, want %d", rec.Code, tc.want)
			}
		})
	}
}

func TestSubmitWeeklyEffortSuccess(t *testing.T) {
	router := newTestRouter(&stubEffortService{
		summary: &domain.WeeklySummary{
			ID:            primitive.NewObjectID(),
			CohortID:      primitive.NewObjectID(),
			WeekStartDate: "2026-01-05",
			WeekEndDate:   "2026-01-11",
			TotalHours:    20,
			SubmittedBy:   "Coach A",
		},
	})

	body := `{"weekStartDate":"2026-01-05","days":[{"date":"2026-01-05","roles":{"TRAINER":{"hours":4}}}]}`
	rec := doRequest(t, router, http.MethodPost,
		"/api/v1/cohorts/"+primitive.NewObjectID().Hex()+"/efforts/weekly",
		testToken(t, domain.RoleCoach), body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"totalHours":20`) {
		t.Errorf("body missing total hours: %s", rec.Body.String())
	}
}

func TestGetHolidaysRequiresLocation(t *testing.T) {
	router := newTestRouter(&stubEffortService{})

	rec := doRequest(t, router, http.MethodGet, "/api/v1/holidays", testToken(t, domain.RoleCoach), "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestGetEffortHistory(t *testing.T) {
	stub := &stubEffortService{
		records: []domain.EffortRecord{
			{ID: primitive.NewObjectID(), Role: domain.RoleMentor, EffortDate: "2026-01-06", EffortHours: 2},
		},
	}
	router := newTestRouter(stub)

	rec := doRequest(t, router, http.MethodGet,
		"/api/v1/cohorts/"+primitive.NewObjectID().Hex()+"/efforts",
		testToken(t, domain.RoleCoach), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"2026-01-06"`) {
		t.Errorf("body missing record date: %s", rec.Body.String())
	}
}

func TestGetSummaryArchive(t *testing.T) {
	router := newTestRouter(&stubEffortService{archiveURL: "https://archive.invalid/submissions/abc/2026-01-05-x.json"})

	rec := doRequest(t, router, http.MethodGet,
		"/api/v1/cohorts/"+primitive.NewObjectID().Hex()+"/summaries/2026-01-05/archive",
		testToken(t, domain.RoleAdmin), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "archive.invalid") {
		t.Errorf("body missing presigned url: %s", rec.Body.String())
	}
}

func TestGetSummaryArchiveNotFound(t *testing.T) {
	for _, err := range []error{service.ErrSummaryNotFound, service.ErrArchiveNotFound} {
		router := newTestRouter(&stubEffortService{archiveErr: err})

		rec := doRequest(t, router, http.MethodGet,
			"/api/v1/cohorts/"+primitive.NewObjectID().Hex()+"/summaries/2026-01-12/archive",
			testToken(t, domain.RoleAdmin), "")
		if rec.Code != http.StatusNotFound {
			t.Fatalf("%v: status = %d, want 404", err, rec.Code)
		}
	}
}

func TestSummaryArchiveAdminOnly(t *testing.T) {
	router := newTestRouter(&stubEffortService{archiveURL: "https://archive.invalid/x"})
	path := "/api/v1/cohorts/" + primitive.NewObjectID().Hex() + "/summaries/2026-01-05/archive"

	for _, method := range []string{http.MethodGet, http.MethodDelete} {
		rec := doRequest(t, router, method, path, testToken(t, domain.RoleCoach), "")
		if rec.Code != http.StatusForbidden {
			t.Fatalf("%s: status = %d, want 403 for coach", method, rec.Code)
		}
	}
}

func TestDeleteSummaryArchive(t *testing.T) {
	router := newTestRouter(&stubEffortService{})

	rec := doRequest(t, router, http.MethodDelete,
		"/api/v1/cohorts/"+primitive.NewObjectID().Hex()+"/summaries/2026-01-05/archive",
		testToken(t, domain.RoleAdmin), "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204: %s", rec.Code, rec.Body.String())
	}
}

func TestCreateHoliday(t *testing.T) {
	router := newTestRouter(&stubEffortService{
		holiday: &domain.Holiday{ID: primitive.NewObjectID(), Location: "Chennai", Date: "2026-01-15", Name: "Pongal"},
	})

	body := `{"location":"Chennai","date":"2026-01-15","name":"Pongal"}`
	rec := doRequest(t, router, http.MethodPost, "/api/v1/holidays", testToken(t, domain.RoleAdmin), body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}
}

func TestCreateHolidayStatusMapping(t *testing.T) {
	body := `{"location":"Chennai","date":"2026-01-15"}`

	cases := []struct {
		name string
		err  error
		want int
	}{
		{"duplicate", service.ErrHolidayExists, http.StatusConflict},
		{"bad date", service.ErrInvalidHolidayDate, http.StatusUnprocessableEntity},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router := newTestRouter(&stubEffortService{holidayErr: tc.err})
			rec := doRequest(t, router, http.MethodPost, "/api/v1/holidays", testToken(t, domain.RoleAdmin), body)
			if rec.Code != tc.want {
				t.Fatalf("status = %d, want %d", rec.Code, tc.want)
			}
		})
	}
}
