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

// CandidateHandler holds the candidate service dependency.
type CandidateHandler struct {
	candidateService service.CandidateService
}

// NewCandidateHandler creates a new CandidateHandler.
func NewCandidateHandler(candidateService service.CandidateService) *CandidateHandler {
	return &CandidateHandler{candidateService: candidateService}
}

// --- DTOs for API ---

type AddCandidateRequest struct {
	GencID string `json:"gencId" binding:"required"`
	Name   string `json:"name" binding:"required"`
	Email  string `json:"email" binding:"omitempty,email"`
}

type UpdateCandidateStatusRequest struct {
	Status domain.CandidateStatus `json:"status" binding:"required,oneof=ACTIVE ON_LEAVE DROPPED GRADUATED"`
}

type CandidateResponse struct {
	ID        string                 `json:"id"`
	CohortID  string                 `json:"cohortId"`
	GencID    string                 `json:"gencId"`
	Name      string                 `json:"name"`
	Email     string                 `json:"email,omitempty"`
	Status    domain.CandidateStatus `json:"status"`
	CreatedAt time.Time              `json:"createdAt"`
	UpdatedAt time.Time              `json:"updatedAt"`
}

// MapCandidateToResponse converts a domain.Candidate to CandidateResponse DTO.
func MapCandidateToResponse(candidate *domain.Candidate) CandidateResponse {
	if candidate == nil {
		return CandidateResponse{}
	}
	return CandidateResponse{
		ID:        candidate.ID.Hex(),
		CohortID:  candidate.CohortID.Hex(),
		GencID:    candidate.GencID,
		Name:      candidate.Name,
		Email:     candidate.Email,
		Status:    candidate.Status,
		CreatedAt: candidate.CreatedAt,
		UpdatedAt: candidate.UpdatedAt,
	}
}

// MapCandidatesToResponse converts a slice of domain.Candidate to DTOs.
func MapCandidatesToResponse(candidates []domain.Candidate) []CandidateResponse {
	responses := make([]CandidateResponse, len(candidates))
	for i, candidate := range candidates {
		responses[i] = MapCandidateToResponse(&candidate)
	}
	return responses
}

// --- Handler Methods ---

// AddCandidate enrolls a candidate into a cohort.
func (h *CandidateHandler) AddCandidate(c *gin.Context) {
	cohortID, err := primitive.ObjectIDFromHex(c.Param("cohortId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid cohort ID format.")
		return
	}

	var req AddCandidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	candidate, err := h.candidateService.AddCandidate(c.Request.Context(), cohortID, req.GencID, req.Name, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCohortNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrCandidateExists):
			abortWithError(c, http.StatusConflict, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to add candidate.")
		}
		return
	}

	c.JSON(http.StatusCreated, MapCandidateToResponse(candidate))
}

// GetCandidates lists a cohort's roster.
func (h *CandidateHandler) GetCandidates(c *gin.Context) {
	cohortID, err := primitive.ObjectIDFromHex(c.Param("cohortId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid cohort ID format.")
		return
	}

	candidates, err := h.candidateService.GetCandidatesByCohort(c.Request.Context(), cohortID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve candidates.")
		return
	}

	if candidates == nil {
		c.JSON(http.StatusOK, []CandidateResponse{})
		return
	}

	c.JSON(http.StatusOK, MapCandidatesToResponse(candidates))
}

// UpdateCandidateStatus transitions a candidate's lifecycle status.
func (h *CandidateHandler) UpdateCandidateStatus(c *gin.Context) {
	candidateID, err := primitive.ObjectIDFromHex(c.Param("candidateId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid candidate ID format.")
		return
	}

	var req UpdateCandidateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	candidate, err := h.candidateService.UpdateCandidateStatus(c.Request.Context(), candidateID, req.Status)
	if err != nil {
		if errors.Is(err, service.ErrCandidateNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to update candidate status.")
		}
		return
	}

	c.JSON(http.StatusOK, MapCandidateToResponse(candidate))
}
