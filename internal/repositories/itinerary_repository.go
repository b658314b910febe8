package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	dbm "itinera/internal/models/db_models"
)

type ItineraryRepository interface {
	// Create inserts the itinerary together with its Days slice.
	Create(ctx context.Context, itinerary *dbm.Itinerary) error
	GetByID(ctx context.Context, id uuid.UUID) (*dbm.Itinerary, error)
	GetByProjectID(ctx context.Context, projectID uuid.UUID) (*dbm.Itinerary, error)
	GetDetails(ctx context.Context, id uuid.UUID) (*dbm.Itinerary, error)
	UpdateTitle(ctx context.Context, id uuid.UUID, title *string) error
	// Delete removes the itinerary and everything it owns. Run it inside a
	// unit of work so the cascade is all-or-nothing.
	Delete(ctx context.Context, id uuid.UUID) error

	ListDays(ctx context.Context, itineraryID uuid.UUID) ([]dbm.ItineraryDay, error)
	GetDay(ctx context.Context, dayID uuid.UUID) (*dbm.ItineraryDay, error)
}

type itineraryRepository struct {
	db *gorm.DB
}

func NewItineraryRepository(db *gorm.DB) ItineraryRepository {
	return &itineraryRepository{db: db}
}

func (r *itineraryRepository) Create(ctx context.Context, itinerary *dbm.Itinerary) error {
	return r.db.WithContext(ctx).Create(itinerary).Error
}

func (r *itineraryRepository) GetByID(ctx context.Context, id uuid.UUID) (*dbm.Itinerary, error) {
	var itinerary dbm.Itinerary
	err := r.db.WithContext(ctx).First(&itinerary, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &itinerary, nil
}

func (r *itineraryRepository) GetByProjectID(ctx context.Context, projectID uuid.UUID) (*dbm.Itinerary, error) {
	var itinerary dbm.Itinerary
	err := r.db.WithContext(ctx).First(&itinerary, "project_id = ?", projectID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &itinerary, nil
}

func (r *itineraryRepository) GetDetails(ctx context.Context, id uuid.UUID) (*dbm.Itinerary, error) {
	var itinerary dbm.Itinerary
	err := r.db.WithContext(ctx).
		Preload("Days", func(db *gorm.DB) *gorm.DB {
			return db.Order("day_number ASC")
		}).
		Preload("Days.Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, created_at ASC")
		}).
		Preload("Accommodations", func(db *gorm.DB) *gorm.DB {
			return db.Order("check_in ASC")
		}).
		Preload("Flights", func(db *gorm.DB) *gorm.DB {
			return db.Order("departure_at ASC")
		}).
		First(&itinerary, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &itinerary, nil
}

func (r *itineraryRepository) UpdateTitle(ctx context.Context, id uuid.UUID, title *string) error {
	res := r.db.WithContext(ctx).
		Model(&dbm.Itinerary{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"title": title, "updated_at": nowUnix()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *itineraryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	db := r.db.WithContext(ctx)

	dayIDs := db.Model(&dbm.ItineraryDay{}).
		Select("id").
		Where("itinerary_id = ?", id)

	if err := db.Where("day_id IN (?)", dayIDs).Delete(&dbm.ItineraryItem{}).Error; err != nil {
		return err
	}
	if err := db.Where("itinerary_id = ?", id).Delete(&dbm.ItineraryDay{}).Error; err != nil {
		return err
	}
	if err := db.Where("itinerary_id = ?", id).Delete(&dbm.Accommodation{}).Error; err != nil {
		return err
	}
	if err := db.Where("itinerary_id = ?", id).Delete(&dbm.Flight{}).Error; err != nil {
		return err
	}

	res := db.Delete(&dbm.Itinerary{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *itineraryRepository) ListDays(ctx context.Context, itineraryID uuid.UUID) ([]dbm.ItineraryDay, error) {
	var days []dbm.ItineraryDay
	err := r.db.WithContext(ctx).
		Where("itinerary_id = ?", itineraryID).
		Order("day_number ASC").
		Find(&days).Error
	if err != nil {
		return nil, err
	}
	return days, nil
}

func (r *itineraryRepository) GetDay(ctx context.Context, dayID uuid.UUID) (*dbm.ItineraryDay, error) {
	var day dbm.ItineraryDay
	err := r.db.WithContext(ctx).First(&day, "id = ?", dayID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &day, nil
}
