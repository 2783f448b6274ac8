package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WeeklySummary is the server-side aggregate confirming a week's completion.
// One exists per (cohort, weekStartDate) if and only if a weekly effort
// submission for that week has succeeded; week classification treats its
// existence as the authoritative lock signal.
type WeeklySummary struct {
	ID                     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CohortID               primitive.ObjectID `bson:"cohortId" json:"cohortId"`
	WeekStartDate          string             `bson:"weekStartDate" json:"weekStartDate"` // ISO date, always a Monday
	WeekEndDate            string             `bson:"weekEndDate" json:"weekEndDate"`
	TechnicalTrainerHours  float64            `bson:"technicalTrainerHours" json:"technicalTrainerHours"`
	BehavioralTrainerHours float64            `bson:"behavioralTrainerHours" json:"behavioralTrainerHours"`
	MentorHours            float64            `bson:"mentorHours" json:"mentorHours"`
	BuddyMentorHours       float64            `bson:"buddyMentorHours" json:"buddyMentorHours"`
	TotalHours             float64            `bson:"totalHours" json:"totalHours"`
	Holidays               []string           `bson:"holidays,omitempty" json:"holidays,omitempty"`
	// ArchiveObjectKey locates the archived submission JSON in object
	// storage. Empty when archiving was disabled or failed.
	ArchiveObjectKey string    `bson:"archiveObjectKey,omitempty" json:"archiveObjectKey,omitempty"`
	SubmittedBy      string    `bson:"submittedBy" json:"submittedBy"`
	SummaryDate      time.Time `bson:"summaryDate" json:"summaryDate"`
	CreatedAt        time.Time `bson:"createdAt" json:"createdAt"`
}
