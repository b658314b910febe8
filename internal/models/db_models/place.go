package db_models

import "github.com/google/uuid"

// Place is a collected place owned by the places service. The itinerary
// core only reads it to validate references.
type Place struct {
	BaseModel
	ProjectID uuid.UUID `gorm:"type:uuid;index"`
	Name      string
	Category  string
	Latitude  float64
	Longitude float64
}
