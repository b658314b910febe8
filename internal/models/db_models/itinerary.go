package db_models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Itinerary is the trip-level container of one project. Dates are stored
// date-only (UTC midnight).
type Itinerary struct {
	BaseModel
	ProjectID uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	Title     *string
	StartDate time.Time
	EndDate   time.Time

	Days           []ItineraryDay  `gorm:"foreignKey:ItineraryID;constraint:OnDelete:CASCADE"`
	Accommodations []Accommodation `gorm:"foreignKey:ItineraryID;constraint:OnDelete:CASCADE"`
	Flights        []Flight        `gorm:"foreignKey:ItineraryID;constraint:OnDelete:CASCADE"`
}

type ItineraryDay struct {
	BaseModel
	ItineraryID uuid.UUID `gorm:"type:uuid;index"`
	DayNumber   int
	Date        time.Time

	Items []ItineraryItem `gorm:"foreignKey:DayID;constraint:OnDelete:CASCADE"`
}

// AfterFind keeps dates in UTC; postgres drivers return timestamptz in time.Local.
func (it *Itinerary) AfterFind(tx *gorm.DB) error {
	it.StartDate = it.StartDate.UTC()
	it.EndDate = it.EndDate.UTC()
	return nil
}

func (d *ItineraryDay) AfterFind(tx *gorm.DB) error {
	d.Date = d.Date.UTC()
	return nil
}
