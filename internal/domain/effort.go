package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EffortRole identifies which of the four tracked stakeholder categories an
// effort entry belongs to. The wire values are shared with the persisted
// records, so they double as the role keys of a DayLog.
type EffortRole string

const (
	RoleTechnicalTrainer  EffortRole = "TRAINER"
	RoleBehavioralTrainer EffortRole = "BH_TRAINER"
	RoleMentor            EffortRole = "MENTOR"
	RoleBuddyMentor       EffortRole = "BUDDY_MENTOR"
)

// EffortRoles lists the tracked roles in display order.
var EffortRoles = []EffortRole{
	RoleTechnicalTrainer,
	RoleBehavioralTrainer,
	RoleMentor,
	RoleBuddyMentor,
}

// Valid reports whether r is one of the four tracked roles.
func (r EffortRole) Valid() bool {
	switch r {
	case RoleTechnicalTrainer, RoleBehavioralTrainer, RoleMentor, RoleBuddyMentor:
		return true
	}
	return false
}

// EffortMode records whether the effort was delivered in person or virtually.
type EffortMode string

const (
	ModeInPerson EffortMode = "IN_PERSON"
	ModeVirtual  EffortMode = "VIRTUAL"
)

// EffortRecord is one persisted, append-only effort entry: a stakeholder
// spent EffortHours on a cohort on EffortDate in a given role. Multiple
// records may exist for the same cohort+role+date; readers sum them.
type EffortRecord struct {
	ID            primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	CohortID      primitive.ObjectID  `bson:"cohortId" json:"cohortId"`
	StakeholderID *primitive.ObjectID `bson:"stakeholderId,omitempty" json:"stakeholderId,omitempty"`
	Role          EffortRole          `bson:"role" json:"role"`
	Mode          EffortMode          `bson:"mode" json:"mode"`
	ReasonVirtual string              `bson:"reasonVirtual,omitempty" json:"reasonVirtual,omitempty"`
	AreaOfWork    string              `bson:"areaOfWork" json:"areaOfWork"`
	EffortHours   float64             `bson:"effortHours" json:"effortHours"`
	EffortDate    string              `bson:"effortDate" json:"effortDate"`   // ISO date (yyyy-mm-dd)
	EffortMonth   string              `bson:"effortMonth" json:"effortMonth"` // Derived from EffortDate, e.g. "JANUARY"
	UpdatedBy     primitive.ObjectID  `bson:"updatedBy" json:"updatedBy"`
	CreatedAt     time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// EffortDetail is the per-role draft cell of a day log: hours plus free-form
// notes describing the area of work.
type EffortDetail struct {
	Hours float64 `bson:"hours" json:"hours"`
	Notes string  `bson:"notes" json:"notes"`
}

// DayLog is the per-date effort draft for one weekday of a selected week.
// It is a view over persisted effort records plus unsaved local edits; only
// the five weekday dates of a week are ever materialized.
type DayLog struct {
	Date      string                      `bson:"date" json:"date"` // ISO date (yyyy-mm-dd)
	IsHoliday bool                        `bson:"isHoliday" json:"isHoliday"`
	Roles     map[EffortRole]EffortDetail `bson:"roles" json:"roles"`
}

// SubmissionStatus is the lifecycle state of a weekly effort submission.
// COMPLETED is the only persisted value; a week without a submission is open.
type SubmissionStatus string

const SubmissionCompleted SubmissionStatus = "COMPLETED"

// WeeklyEffortSubmission is the immutable record created when a coach submits
// a full week of effort. Its existence locks the week; it is never mutated or
// deleted through this service.
type WeeklyEffortSubmission struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CohortID      primitive.ObjectID `bson:"cohortId" json:"cohortId"`
	CoachID       primitive.ObjectID `bson:"coachId" json:"coachId"`
	Location      string             `bson:"location" json:"location"`
	WeekStartDate string             `bson:"weekStartDate" json:"weekStartDate"` // ISO date, always a Monday
	WeekEndDate   string             `bson:"weekEndDate" json:"weekEndDate"`     // ISO date, startDate+6
	Holidays      []string           `bson:"holidays" json:"holidays"`
	DayLogs       []DayLog           `bson:"dayLogs" json:"dayLogs"`
	SubmittedBy   string             `bson:"submittedBy" json:"submittedBy"`
	Status        SubmissionStatus   `bson:"status" json:"status"`
	SubmittedAt   time.Time          `bson:"submittedAt" json:"submittedAt"`
}
