package service

import (
	"context"
	"errors"

	"acadex/academy-ops/internal/domain"
	"acadex/academy-ops/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrCandidateNotFound = errors.New("candidate not found")
	ErrCandidateExists   = errors.New("candidate with this genc ID already exists in the cohort")
)

// --- Service Interface ---
type CandidateService interface {
	AddCandidate(ctx context.Context, cohortID primitive.ObjectID, gencID, name, email string) (*domain.Candidate, error)
	GetCandidatesByCohort(ctx context.Context, cohortID primitive.ObjectID) ([]domain.Candidate, error)
	UpdateCandidateStatus(ctx context.Context, candidateID primitive.ObjectID, status domain.CandidateStatus) (*domain.Candidate, error)
}

// --- Service Implementation ---

type candidateService struct {
	candidateRepo repository.CandidateRepository
	cohortRepo    repository.CohortRepository
}

// NewCandidateService creates a new instance of candidateService.
func NewCandidateService(candidateRepo repository.CandidateRepository, cohortRepo repository.CohortRepository) CandidateService {
	return &candidateService{
		candidateRepo: candidateRepo,
		cohortRepo:    cohortRepo,
	}
}

// AddCandidate enrolls a candidate into a cohort.
func (s *candidateService) AddCandidate(ctx context.Context, cohortID primitive.ObjectID, gencID, name, email string) (*domain.Candidate, error) {
	if gencID == "" || name == "" {
		return nil, errors.New("candidate genc ID and name are required")
	}

	if _, err := s.cohortRepo.GetByID(ctx, cohortID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCohortNotFound
		}
		return nil, err
	}

	candidate := &domain.Candidate{
		CohortID: cohortID,
		GencID:   gencID,
		Name:     name,
		Email:    email,
		Status:   domain.CandidateActive,
	}

	candidateID, err := s.candidateRepo.Create(ctx, candidate)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrCandidateExists
		}
		return nil, err
	}
	candidate.ID = candidateID
	return candidate, nil
}

// GetCandidatesByCohort retrieves a cohort's roster.
func (s *candidateService) GetCandidatesByCohort(ctx context.Context, cohortID primitive.ObjectID) ([]domain.Candidate, error) {
	candidates, err := s.candidateRepo.GetByCohortID(ctx, cohortID)
	if err != nil {
		return nil, err
	}
	return candidates, nil
}

// UpdateCandidateStatus transitions a candidate's lifecycle status.
func (s *candidateService) UpdateCandidateStatus(ctx context.Context, candidateID primitive.ObjectID, status domain.CandidateStatus) (*domain.Candidate, error) {
	if err := s.candidateRepo.UpdateStatus(ctx, candidateID, status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCandidateNotFound
		}
		return nil, err
	}
	return s.candidateRepo.GetByID(ctx, candidateID)
}
