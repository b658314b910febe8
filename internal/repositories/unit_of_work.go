package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// Repositories bundles every store bound to the same *gorm.DB handle, which
// is either the pool or an open transaction.
type Repositories struct {
	Itineraries    ItineraryRepository
	Items          ItemRepository
	Accommodations AccommodationRepository
	Flights        FlightRepository
	Places         PlaceRepository
}

func NewRepositories(db *gorm.DB) Repositories {
	return Repositories{
		Itineraries:    NewItineraryRepository(db),
		Items:          NewItemRepository(db),
		Accommodations: NewAccommodationRepository(db),
		Flights:        NewFlightRepository(db),
		Places:         NewPlaceRepository(db),
	}
}

// UnitOfWork runs fn against repositories bound to a single transaction.
// The transaction commits when fn returns nil and rolls back otherwise.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(repos Repositories) error) error
}

type gormUnitOfWork struct {
	db *gorm.DB
}

func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &gormUnitOfWork{db: db}
}

func (u *gormUnitOfWork) Do(ctx context.Context, fn func(repos Repositories) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(tx))
	})
}

func nowUnix() int64 { return time.Now().Unix() }
