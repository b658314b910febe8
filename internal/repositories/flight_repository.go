package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	dbm "itinera/internal/models/db_models"
)

type FlightRepository interface {
	Create(ctx context.Context, flight *dbm.Flight) error
	GetByID(ctx context.Context, id uuid.UUID) (*dbm.Flight, error)
	Update(ctx context.Context, flight *dbm.Flight) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByItinerary(ctx context.Context, itineraryID uuid.UUID) ([]dbm.Flight, error)
}

type flightRepository struct {
	db *gorm.DB
}

func NewFlightRepository(db *gorm.DB) FlightRepository {
	return &flightRepository{db: db}
}

func (r *flightRepository) Create(ctx context.Context, flight *dbm.Flight) error {
	return r.db.WithContext(ctx).Create(flight).Error
}

func (r *flightRepository) GetByID(ctx context.Context, id uuid.UUID) (*dbm.Flight, error) {
	var flight dbm.Flight
	err := r.db.WithContext(ctx).First(&flight, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &flight, nil
}

func (r *flightRepository) Update(ctx context.Context, flight *dbm.Flight) error {
	res := r.db.WithContext(ctx).Save(flight)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *flightRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&dbm.Flight{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *flightRepository) ListByItinerary(ctx context.Context, itineraryID uuid.UUID) ([]dbm.Flight, error) {
	var flights []dbm.Flight
	err := r.db.WithContext(ctx).
		Where("itinerary_id = ?", itineraryID).
		Order("departure_at ASC").
		Find(&flights).Error
	if err != nil {
		return nil, err
	}
	return flights, nil
}
