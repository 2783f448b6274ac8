package api

import (
	"errors"
	"net/http"
	"time"

	"acadex/academy-ops/internal/domain"
	"acadex/academy-ops/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CohortHandler holds the cohort service dependency.
type CohortHandler struct {
	cohortService service.CohortService
}

// NewCohortHandler creates a new CohortHandler.
func NewCohortHandler(cohortService service.CohortService) *CohortHandler {
	return &CohortHandler{cohortService: cohortService}
}

// --- DTOs for API ---

// CohortRequest defines the expected JSON for creating or updating a cohort.
// Stakeholder IDs are optional hex ObjectIDs.
type CohortRequest struct {
	Code                string    `json:"code" binding:"required"`
	BU                  string    `json:"bu"`
	Skill               string    `json:"skill"`
	ActiveGencCount     int       `json:"activeGencCount" binding:"omitempty,min=0"`
	TrainingLocation    string    `json:"trainingLocation" binding:"required"`
	CoachID             string    `json:"coachId" binding:"omitempty"`
	PrimaryTrainerID    string    `json:"primaryTrainerId" binding:"omitempty"`
	BehavioralTrainerID string    `json:"behavioralTrainerId" binding:"omitempty"`
	PrimaryMentorID     string    `json:"primaryMentorId" binding:"omitempty"`
	BuddyMentorID       string    `json:"buddyMentorId" binding:"omitempty"`
	StartDate           time.Time `json:"startDate" binding:"required" time_format:"2006-01-02"`
	EndDate             time.Time `json:"endDate" binding:"required" time_format:"2006-01-02"`
}

// CohortResponse is the DTO for returning cohort details.
type CohortResponse struct {
	ID                  string    `json:"id"`
	Code                string    `json:"code"`
	BU                  string    `json:"bu,omitempty"`
	Skill               string    `json:"skill,omitempty"`
	ActiveGencCount     int       `json:"activeGencCount"`
	TrainingLocation    string    `json:"trainingLocation"`
	CoachID             *string   `json:"coachId,omitempty"`
	PrimaryTrainerID    *string   `json:"primaryTrainerId,omitempty"`
	BehavioralTrainerID *string   `json:"behavioralTrainerId,omitempty"`
	PrimaryMentorID     *string   `json:"primaryMentorId,omitempty"`
	BuddyMentorID       *string   `json:"buddyMentorId,omitempty"`
	StartDate           time.Time `json:"startDate"`
	EndDate             time.Time `json:"endDate"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

func hexOrNil(id *primitive.ObjectID) *string {
	if id == nil || *id == primitive.NilObjectID {
		return nil
	}
	hex := id.Hex()
	return &hex
}

// MapCohortToResponse converts a domain.Cohort to CohortResponse DTO.
func MapCohortToResponse(cohort *domain.Cohort) CohortResponse {
	if cohort == nil {
		return CohortResponse{}
	}
	return CohortResponse{
		ID:                  cohort.ID.Hex(),
		Code:                cohort.Code,
		BU:                  cohort.BU,
		Skill:               cohort.Skill,
		ActiveGencCount:     cohort.ActiveGencCount,
		TrainingLocation:    cohort.TrainingLocation,
		CoachID:             hexOrNil(cohort.CoachID),
		PrimaryTrainerID:    hexOrNil(cohort.PrimaryTrainerID),
		BehavioralTrainerID: hexOrNil(cohort.BehavioralTrainerID),
		PrimaryMentorID:     hexOrNil(cohort.PrimaryMentorID),
		BuddyMentorID:       hexOrNil(cohort.BuddyMentorID),
		StartDate:           cohort.StartDate,
		EndDate:             cohort.EndDate,
		CreatedAt:           cohort.CreatedAt,
		UpdatedAt:           cohort.UpdatedAt,
	}
}

// MapCohortsToResponse converts a slice of domain.Cohort to DTOs.
func MapCohortsToResponse(cohorts []domain.Cohort) []CohortResponse {
	responses := make([]CohortResponse, len(cohorts))
	for i, cohort := range cohorts {
		responses[i] = MapCohortToResponse(&cohort)
	}
	return responses
}

func parseOptionalObjectID(hex string) (*primitive.ObjectID, error) {
	if hex == "" {
		return nil, nil
	}
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func cohortInputFromRequest(req CohortRequest) (service.CohortInput, error) {
	input := service.CohortInput{
		Code:             req.Code,
		BU:               req.BU,
		Skill:            req.Skill,
		ActiveGencCount:  req.ActiveGencCount,
		TrainingLocation: req.TrainingLocation,
		StartDate:        req.StartDate,
		EndDate:          req.EndDate,
	}

	var err error
	if input.CoachID, err = parseOptionalObjectID(req.CoachID); err != nil {
		return input, err
	}
	if input.PrimaryTrainerID, err = parseOptionalObjectID(req.PrimaryTrainerID); err != nil {
		return input, err
	}
	if input.BehavioralTrainerID, err = parseOptionalObjectID(req.BehavioralTrainerID); err != nil {
		return input, err
	}
	if input.PrimaryMentorID, err = parseOptionalObjectID(req.PrimaryMentorID); err != nil {
		return input, err
	}
	if input.BuddyMentorID, err = parseOptionalObjectID(req.BuddyMentorID); err != nil {
		return input, err
	}
	return input, nil
}

// --- Handler Methods ---

// CreateCohort creates a new training cohort (Admin only).
func (h *CohortHandler) CreateCohort(c *gin.Context) {
	var req CohortRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	input, err := cohortInputFromRequest(req)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid stakeholder ID format.")
		return
	}

	cohort, err := h.cohortService.CreateCohort(c.Request.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCohortCodeTaken):
			abortWithError(c, http.StatusConflict, err.Error())
		case errors.Is(err, service.ErrCohortInvalidRange), errors.Is(err, service.ErrValidationFailed):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to create cohort.")
		}
		return
	}

	c.JSON(http.StatusCreated, MapCohortToResponse(cohort))
}

// GetCohorts lists cohorts. Admins see every cohort; coaches only their own.
func (h *CohortHandler) GetCohorts(c *gin.Context) {
	role, err := getUserRoleFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	var coachID *primitive.ObjectID
	if role == domain.RoleCoach {
		userIDStr, err := getUserIDFromContext(c)
		if err != nil {
			abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
			return
		}
		id, err := primitive.ObjectIDFromHex(userIDStr)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid user ID format in token.")
			return
		}
		coachID = &id
	}

	cohorts, err := h.cohortService.GetCohorts(c.Request.Context(), coachID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve cohorts.")
		return
	}

	if cohorts == nil {
		c.JSON(http.StatusOK, []CohortResponse{})
		return
	}

	c.JSON(http.StatusOK, MapCohortsToResponse(cohorts))
}

// GetCohortByID retrieves a single cohort.
func (h *CohortHandler) GetCohortByID(c *gin.Context) {
	cohortID, err := primitive.ObjectIDFromHex(c.Param("cohortId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid cohort ID format.")
		return
	}

	cohort, err := h.cohortService.GetCohortByID(c.Request.Context(), cohortID)
	if err != nil {
		if errors.Is(err, service.ErrCohortNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to retrieve cohort.")
		}
		return
	}

	c.JSON(http.StatusOK, MapCohortToResponse(cohort))
}

// UpdateCohort replaces the writable fields of a cohort (Admin only).
func (h *CohortHandler) UpdateCohort(c *gin.Context) {
	cohortID, err := primitive.ObjectIDFromHex(c.Param("cohortId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid cohort ID format.")
		return
	}

	var req CohortRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	input, err := cohortInputFromRequest(req)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid stakeholder ID format.")
		return
	}

	cohort, err := h.cohortService.UpdateCohort(c.Request.Context(), cohortID, input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCohortNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrCohortInvalidRange), errors.Is(err, service.ErrValidationFailed):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to update cohort.")
		}
		return
	}

	c.JSON(http.StatusOK, MapCohortToResponse(cohort))
}

// DeleteCohort removes a cohort (Admin only).
func (h *CohortHandler) DeleteCohort(c *gin.Context) {
	cohortID, err := primitive.ObjectIDFromHex(c.Param("cohortId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid cohort ID format.")
		return
	}

	if err := h.cohortService.DeleteCohort(c.Request.Context(), cohortID); err != nil {
		if errors.Is(err, service.ErrCohortNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to delete cohort.")
		}
		return
	}

	c.Status(http.StatusNoContent)
}
