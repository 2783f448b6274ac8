package api

import (
	"net/http"

	"acadex/academy-ops/internal/domain"
	"acadex/academy-ops/internal/service"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	cohortService service.CohortService,
	candidateService service.CandidateService,
	effortService service.EffortService,
) {

	authHandler := NewAuthHandler(authService)
	cohortHandler := NewCohortHandler(cohortService)
	candidateHandler := NewCandidateHandler(candidateService)
	effortHandler := NewEffortHandler(effortService)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", func(c *gin.Context) {
			userIDStr, err := getUserIDFromContext(c)
			if err != nil {
				abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
				return
			}
			role, _ := getUserRoleFromContext(c)
			c.JSON(http.StatusOK, gin.H{"userId": userIDStr, "role": role})
		})

		// --- Holiday Calendar ---
		// GET /api/v1/holidays?location=Chennai
		protected.GET("/holidays", effortHandler.GetHolidays)
		// POST /api/v1/holidays — admins maintain the calendar
		protected.POST("/holidays", RoleMiddleware(domain.RoleAdmin), effortHandler.CreateHoliday)

		// --- Cohort Routes ---
		cohortGroup := protected.Group("/cohorts")
		{
			// Cohort administration is admin-only; reads are shared.
			cohortGroup.POST("", RoleMiddleware(domain.RoleAdmin), cohortHandler.CreateCohort)
			cohortGroup.GET("", cohortHandler.GetCohorts)
			cohortGroup.GET("/:cohortId", cohortHandler.GetCohortByID)
			cohortGroup.PUT("/:cohortId", RoleMiddleware(domain.RoleAdmin), cohortHandler.UpdateCohort)
			cohortGroup.DELETE("/:cohortId", RoleMiddleware(domain.RoleAdmin), cohortHandler.DeleteCohort)

			// --- Candidate Roster ---
			cohortGroup.POST("/:cohortId/candidates", RoleMiddleware(domain.RoleAdmin, domain.RoleCoach), candidateHandler.AddCandidate)
			cohortGroup.GET("/:cohortId/candidates", candidateHandler.GetCandidates)

			// --- Weekly Effort Logging ---
			// GET /api/v1/cohorts/{cohortId}/weeks?today=2026-01-07
			cohortGroup.GET("/:cohortId/weeks", effortHandler.GetWeeks)
			// GET /api/v1/cohorts/{cohortId}/weeks/{weekStart}/logs
			cohortGroup.GET("/:cohortId/weeks/:weekStart/logs", effortHandler.GetWeekLog)
			// POST /api/v1/cohorts/{cohortId}/efforts — single daily entry
			cohortGroup.POST("/:cohortId/efforts", RoleMiddleware(domain.RoleCoach, domain.RoleAdmin), effortHandler.SubmitDailyEffort)
			// POST /api/v1/cohorts/{cohortId}/efforts/weekly — completes a week
			cohortGroup.POST("/:cohortId/efforts/weekly", RoleMiddleware(domain.RoleCoach, domain.RoleAdmin), effortHandler.SubmitWeeklyEffort)
			// GET /api/v1/cohorts/{cohortId}/efforts — full record trail + rollup
			cohortGroup.GET("/:cohortId/efforts", effortHandler.GetEffortHistory)
			// GET /api/v1/cohorts/{cohortId}/summaries
			cohortGroup.GET("/:cohortId/summaries", effortHandler.GetWeeklySummaries)
			// Archived submission JSON of a completed week (admin only).
			cohortGroup.GET("/:cohortId/summaries/:weekStart/archive", RoleMiddleware(domain.RoleAdmin), effortHandler.GetSummaryArchive)
			cohortGroup.DELETE("/:cohortId/summaries/:weekStart/archive", RoleMiddleware(domain.RoleAdmin), effortHandler.DeleteSummaryArchive)
		}

		// --- Candidate Status ---
		protected.PATCH("/candidates/:candidateId/status", RoleMiddleware(domain.RoleAdmin, domain.RoleCoach), candidateHandler.UpdateCandidateStatus)
	}
}
