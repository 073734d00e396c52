package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Vehicle struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	Plate     string             `json:"plate" bson:"plate"`
	Brand     string             `json:"brand" bson:"brand"`
	Model     string             `json:"model" bson:"model"`
	Year      int                `json:"year" bson:"year"`
	Owner     string             `json:"owner" bson:"owner"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}

// VehicleWithCount pairs a vehicle with the number of inspections that
// reference it.
type VehicleWithCount struct {
	Vehicle
	InspectionCount int64 `json:"inspection_count" bson:"-"`
}

// VehicleDetail is a vehicle together with its inspection history.
type VehicleDetail struct {
	Vehicle
	Inspections []*InspectionDetail `json:"inspections"`
}
