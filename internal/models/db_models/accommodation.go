package db_models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Accommodation struct {
	BaseModel
	ItineraryID uuid.UUID `gorm:"type:uuid;index"`
	Name        string
	Address     *string
	Latitude    *float64
	Longitude   *float64
	CheckIn     time.Time
	CheckOut    time.Time
	Note        *string

	Items []ItineraryItem `gorm:"foreignKey:AccommodationID;constraint:OnDelete:CASCADE"`
}

func (a *Accommodation) AfterFind(tx *gorm.DB) error {
	a.CheckIn = a.CheckIn.UTC()
	a.CheckOut = a.CheckOut.UTC()
	return nil
}
