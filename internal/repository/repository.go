package repository

import (
	"context"

	"acadex/academy-ops/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer
var (
	ErrNotFound     = RepositoryError("not found")
	ErrDuplicate    = RepositoryError("duplicate key")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
}

// CohortRepository defines the interface for interacting with cohort data.
type CohortRepository interface {
	Create(ctx context.Context, cohort *domain.Cohort) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Cohort, error)
	GetAll(ctx context.Context) ([]domain.Cohort, error)
	GetByCoachID(ctx context.Context, coachID primitive.ObjectID) ([]domain.Cohort, error)
	Update(ctx context.Context, cohort *domain.Cohort) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// CandidateRepository defines the interface for interacting with candidates.
type CandidateRepository interface {
	Create(ctx context.Context, candidate *domain.Candidate) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Candidate, error)
	GetByCohortID(ctx context.Context, cohortID primitive.ObjectID) ([]domain.Candidate, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status domain.CandidateStatus) error
}

// EffortRepository defines the interface for the append-only effort records.
type EffortRepository interface {
	Create(ctx context.Context, record *domain.EffortRecord) (primitive.ObjectID, error)
	CreateMany(ctx context.Context, records []domain.EffortRecord) error
	GetByCohortID(ctx context.Context, cohortID primitive.ObjectID) ([]domain.EffortRecord, error)
	// GetByCohortAndDateRange returns the records whose effortDate falls in
	// [startDate, endDate], both ISO dates inclusive. Used to seed day logs.
	GetByCohortAndDateRange(ctx context.Context, cohortID primitive.ObjectID, startDate, endDate string) ([]domain.EffortRecord, error)
}

// WeeklySummaryRepository defines the interface for weekly summaries. A
// summary is the lock record of a completed week; Create must fail with
// ErrDuplicate when one already exists for the same (cohort, weekStartDate).
type WeeklySummaryRepository interface {
	Create(ctx context.Context, summary *domain.WeeklySummary) (primitive.ObjectID, error)
	GetByCohortID(ctx context.Context, cohortID primitive.ObjectID) ([]domain.WeeklySummary, error)
	GetByCohortAndWeekStart(ctx context.Context, cohortID primitive.ObjectID, weekStartDate string) (*domain.WeeklySummary, error)
}

// HolidayRepository defines the interface for the location-keyed holiday
// calendar.
type HolidayRepository interface {
	Create(ctx context.Context, holiday *domain.Holiday) (primitive.ObjectID, error)
	// GetByLocation returns every holiday date registered for a location.
	GetByLocation(ctx context.Context, location string) ([]domain.Holiday, error)
}
