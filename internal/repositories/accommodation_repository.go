package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	dbm "itinera/internal/models/db_models"
)

type AccommodationRepository interface {
	Create(ctx context.Context, accommodation *dbm.Accommodation) error
	GetByID(ctx context.Context, id uuid.UUID) (*dbm.Accommodation, error)
	Update(ctx context.Context, accommodation *dbm.Accommodation) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByItinerary(ctx context.Context, itineraryID uuid.UUID) ([]dbm.Accommodation, error)
}

type accommodationRepository struct {
	db *gorm.DB
}

func NewAccommodationRepository(db *gorm.DB) AccommodationRepository {
	return &accommodationRepository{db: db}
}

func (r *accommodationRepository) Create(ctx context.Context, accommodation *dbm.Accommodation) error {
	return r.db.WithContext(ctx).Create(accommodation).Error
}

func (r *accommodationRepository) GetByID(ctx context.Context, id uuid.UUID) (*dbm.Accommodation, error) {
	var accommodation dbm.Accommodation
	err := r.db.WithContext(ctx).First(&accommodation, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &accommodation, nil
}

func (r *accommodationRepository) Update(ctx context.Context, accommodation *dbm.Accommodation) error {
	res := r.db.WithContext(ctx).Omit("Items").Save(accommodation)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes only the accommodation row; its derived items are removed
// by the sync engine in the same unit of work.
func (r *accommodationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&dbm.Accommodation{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *accommodationRepository) ListByItinerary(ctx context.Context, itineraryID uuid.UUID) ([]dbm.Accommodation, error) {
	var accommodations []dbm.Accommodation
	err := r.db.WithContext(ctx).
		Where("itinerary_id = ?", itineraryID).
		Order("check_in ASC").
		Find(&accommodations).Error
	if err != nil {
		return nil, err
	}
	return accommodations, nil
}
