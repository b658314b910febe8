package db_models

import "github.com/google/uuid"

type ItemKind string

const (
	ItemKindPlace                 ItemKind = "place"
	ItemKindAccommodationCheckIn  ItemKind = "accommodation_checkin"
	ItemKindAccommodationCheckOut ItemKind = "accommodation_checkout"
	ItemKindAccommodationStay     ItemKind = "accommodation_stay"
)

// IsDerived reports whether items of this kind are owned by an accommodation.
func (k ItemKind) IsDerived() bool {
	switch k {
	case ItemKindAccommodationCheckIn, ItemKindAccommodationCheckOut, ItemKindAccommodationStay:
		return true
	}
	return false
}

// ItineraryItem is one entry of a day's timeline. Exactly one of PlaceID and
// AccommodationID is set, matching Kind. Order is dense (0..n-1) per day.
type ItineraryItem struct {
	BaseModel
	DayID           uuid.UUID  `gorm:"type:uuid;index"`
	Kind            ItemKind   `gorm:"type:varchar(32)"`
	PlaceID         *uuid.UUID `gorm:"type:uuid"`
	AccommodationID *uuid.UUID `gorm:"type:uuid;index"`
	Order           int        `gorm:"column:sort_order"`
	StartTime       *string    `gorm:"size:5"` // "15:04"
	Note            *string
}
