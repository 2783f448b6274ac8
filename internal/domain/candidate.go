package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CandidateStatus type for candidate lifecycle within a cohort
type CandidateStatus string

const (
	CandidateActive    CandidateStatus = "ACTIVE"
	CandidateOnLeave   CandidateStatus = "ON_LEAVE"
	CandidateDropped   CandidateStatus = "DROPPED"
	CandidateGraduated CandidateStatus = "GRADUATED"
)

// Candidate is a trainee (GenC) enrolled in a cohort.
type Candidate struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CohortID  primitive.ObjectID `bson:"cohortId" json:"cohortId"`
	GencID    string             `bson:"gencId" json:"gencId"` // Unique per cohort
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Status    CandidateStatus    `bson:"status" json:"status"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
