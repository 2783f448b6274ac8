package service

import (
	"context"
	"errors"
	"time"

	"acadex/academy-ops/internal/domain"
	"acadex/academy-ops/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrCohortNotFound     = errors.New("cohort not found")
	ErrCohortCodeTaken    = errors.New("cohort with this code already exists")
	ErrCohortInvalidRange = errors.New("cohort start date must not be after end date")
	ErrValidationFailed   = errors.New("cohort validation failed")
)

// CohortInput carries the writable fields of a cohort.
type CohortInput struct {
	Code                string
	BU                  string
	Skill               string
	ActiveGencCount     int
	TrainingLocation    string
	CoachID             *primitive.ObjectID
	PrimaryTrainerID    *primitive.ObjectID
	BehavioralTrainerID *primitive.ObjectID
	PrimaryMentorID     *primitive.ObjectID
	BuddyMentorID       *primitive.ObjectID
	StartDate           time.Time
	EndDate             time.Time
}

// --- Service Interface ---
type CohortService interface {
	CreateCohort(ctx context.Context, input CohortInput) (*domain.Cohort, error)
	GetCohortByID(ctx context.Context, cohortID primitive.ObjectID) (*domain.Cohort, error)
	// GetCohorts lists every cohort for admins, or only the coach's own
	// cohorts when coachID is non-nil.
	GetCohorts(ctx context.Context, coachID *primitive.ObjectID) ([]domain.Cohort, error)
	UpdateCohort(ctx context.Context, cohortID primitive.ObjectID, input CohortInput) (*domain.Cohort, error)
	DeleteCohort(ctx context.Context, cohortID primitive.ObjectID) error
}

// --- Service Implementation ---

type cohortService struct {
	cohortRepo repository.CohortRepository
}

// NewCohortService creates a new instance of cohortService.
func NewCohortService(cohortRepo repository.CohortRepository) CohortService {
	return &cohortService{cohortRepo: cohortRepo}
}

func validateCohortInput(input CohortInput) error {
	if input.Code == "" || input.TrainingLocation == "" {
		return ErrValidationFailed
	}
	if input.StartDate.IsZero() || input.EndDate.IsZero() {
		return ErrValidationFailed
	}
	if input.StartDate.After(input.EndDate) {
		return ErrCohortInvalidRange
	}
	return nil
}

// CreateCohort handles the creation of a new cohort.
func (s *cohortService) CreateCohort(ctx context.Context, input CohortInput) (*domain.Cohort, error) {
	if err := validateCohortInput(input); err != nil {
		return nil, err
	}

	cohort := &domain.Cohort{
		Code:                input.Code,
		BU:                  input.BU,
		Skill:               input.Skill,
		ActiveGencCount:     input.ActiveGencCount,
		TrainingLocation:    input.TrainingLocation,
		CoachID:             input.CoachID,
		PrimaryTrainerID:    input.PrimaryTrainerID,
		BehavioralTrainerID: input.BehavioralTrainerID,
		PrimaryMentorID:     input.PrimaryMentorID,
		BuddyMentorID:       input.BuddyMentorID,
		StartDate:           input.StartDate,
		EndDate:             input.EndDate,
	}

	cohortID, err := s.cohortRepo.Create(ctx, cohort)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrCohortCodeTaken
		}
		return nil, err
	}
	cohort.ID = cohortID
	return s.cohortRepo.GetByID(ctx, cohortID) // Fetch again to get all fields
}

// GetCohortByID retrieves a single cohort.
func (s *cohortService) GetCohortByID(ctx context.Context, cohortID primitive.ObjectID) (*domain.Cohort, error) {
	cohort, err := s.cohortRepo.GetByID(ctx, cohortID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCohortNotFound
		}
		return nil, err
	}
	return cohort, nil
}

// GetCohorts lists cohorts, optionally scoped to one coach.
func (s *cohortService) GetCohorts(ctx context.Context, coachID *primitive.ObjectID) ([]domain.Cohort, error) {
	if coachID != nil {
		return s.cohortRepo.GetByCoachID(ctx, *coachID)
	}
	return s.cohortRepo.GetAll(ctx)
}

// UpdateCohort replaces the writable fields of an existing cohort. Weeks are
// derived from the date range on every read, so date edits need no summary
// or record migration here.
func (s *cohortService) UpdateCohort(ctx context.Context, cohortID primitive.ObjectID, input CohortInput) (*domain.Cohort, error) {
	if err := validateCohortInput(input); err != nil {
		return nil, err
	}

	existing, err := s.cohortRepo.GetByID(ctx, cohortID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCohortNotFound
		}
		return nil, err
	}

	existing.Code = input.Code
	existing.BU = input.BU
	existing.Skill = input.Skill
	existing.ActiveGencCount = input.ActiveGencCount
	existing.TrainingLocation = input.TrainingLocation
	existing.CoachID = input.CoachID
	existing.PrimaryTrainerID = input.PrimaryTrainerID
	existing.BehavioralTrainerID = input.BehavioralTrainerID
	existing.PrimaryMentorID = input.PrimaryMentorID
	existing.BuddyMentorID = input.BuddyMentorID
	existing.StartDate = input.StartDate
	existing.EndDate = input.EndDate

	if err := s.cohortRepo.Update(ctx, existing); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCohortNotFound
		}
		return nil, err
	}
	return existing, nil
}

// DeleteCohort removes a cohort.
func (s *cohortService) DeleteCohort(ctx context.Context, cohortID primitive.ObjectID) error {
	err := s.cohortRepo.Delete(ctx, cohortID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrCohortNotFound
		}
		return err
	}
	return nil
}
