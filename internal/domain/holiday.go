package domain

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Holiday is one non-working date at a training location. The holiday
// calendar is keyed by location and treated as authoritative when deciding
// whether a day log is eligible for effort hours.
type Holiday struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Location string             `bson:"location" json:"location"`
	Date     string             `bson:"date" json:"date"` // ISO date (yyyy-mm-dd)
	Name     string             `bson:"name,omitempty" json:"name,omitempty"`
}
