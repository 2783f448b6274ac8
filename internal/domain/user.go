package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role type to distinguish between user roles
type Role string

// Define constants for roles
const (
	RoleAdmin Role = "ADMIN"
	RoleCoach Role = "COACH"
)

// User represents an operator of the dashboard (an Admin or a Coach).
// Coaches own cohorts and submit weekly effort on their behalf.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EmpID        string             `bson:"empId,omitempty" json:"empId,omitempty"` // Corporate employee ID, e.g. "coach2001"
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`    // Should be unique
	PasswordHash string             `bson:"passwordHash" json:"-"` // Never expose this via JSON
	Role         Role               `bson:"role" json:"role"`
	Location     string             `bson:"location,omitempty" json:"location,omitempty"` // Base training location
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) IsCoach() bool {
	return u.Role == RoleCoach
}
