package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Cohort represents a training batch with a fixed date range.
// Weekly effort is logged against a cohort, one calendar week at a time.
type Cohort struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Code             string             `bson:"code" json:"code"` // Unique batch code, e.g. "GENC-2026-07"
	BU               string             `bson:"bu" json:"bu"`     // Business unit
	Skill            string             `bson:"skill" json:"skill"`
	ActiveGencCount  int                `bson:"activeGencCount" json:"activeGencCount"`
	TrainingLocation string             `bson:"trainingLocation" json:"trainingLocation"` // Keys the holiday calendar

	// Default stakeholders for the four tracked roles. Optional; effort records
	// fall back to these when no explicit stakeholder is named.
	CoachID             *primitive.ObjectID `bson:"coachId,omitempty" json:"coachId,omitempty"`
	PrimaryTrainerID    *primitive.ObjectID `bson:"primaryTrainerId,omitempty" json:"primaryTrainerId,omitempty"`
	BehavioralTrainerID *primitive.ObjectID `bson:"behavioralTrainerId,omitempty" json:"behavioralTrainerId,omitempty"`
	PrimaryMentorID     *primitive.ObjectID `bson:"primaryMentorId,omitempty" json:"primaryMentorId,omitempty"`
	BuddyMentorID       *primitive.ObjectID `bson:"buddyMentorId,omitempty" json:"buddyMentorId,omitempty"`

	StartDate time.Time `bson:"startDate" json:"startDate"`
	EndDate   time.Time `bson:"endDate" json:"endDate"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
