package db_models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Flight struct {
	BaseModel
	ItineraryID   uuid.UUID `gorm:"type:uuid;index"`
	DepartureCity string
	ArrivalCity   string
	Carrier       *string
	FlightNumber  *string
	DepartureAt   time.Time
	ArrivalAt     time.Time
	Note          *string
}

func (f *Flight) AfterFind(tx *gorm.DB) error {
	f.DepartureAt = f.DepartureAt.UTC()
	f.ArrivalAt = f.ArrivalAt.UTC()
	return nil
}
